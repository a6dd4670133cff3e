package processor

import (
	"context"
	"time"

	"github.com/NextMind-AI/chat-sentiment/history"
	"github.com/NextMind-AI/chat-sentiment/livechat"
	"github.com/NextMind-AI/chat-sentiment/redis"
	"github.com/NextMind-AI/chat-sentiment/report"
)

// CustomerDetector decides whether a thread event was written by the
// customer. The archive feed carries no per-event role, so the default
// implementation is a heuristic and can be swapped for a real lookup.
type CustomerDetector interface {
	IsCustomerAuthored(event livechat.Event, users []livechat.User) bool
}

// RunObserver receives run telemetry. It never influences the result.
type RunObserver interface {
	PageFetched(chats int)
	RunFinished(counts report.Counts, duration time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) PageFetched(int) {}
func (noopObserver) RunFinished(report.Counts, time.Duration, error) {}

// ReportCache keeps recent reports for download.
type ReportCache interface {
	SaveReport(ctx context.Context, run redis.CachedRun, csvBody []byte) error
	GetReport(ctx context.Context, runID string) ([]byte, error)
	GetRun(ctx context.Context, runID string) (*redis.CachedRun, error)
}

// ReportArchive stores reports durably and returns their location.
type ReportArchive interface {
	UploadReport(ctx context.Context, accountID, filename string, csvBody []byte) (string, error)
}

// RunHistory records every run, successful or not.
type RunHistory interface {
	Record(ctx context.Context, run history.Run) error
	Get(ctx context.Context, id string) (*history.Run, error)
	List(ctx context.Context, accountID string, limit int) ([]history.Run, error)
}
