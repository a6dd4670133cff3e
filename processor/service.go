package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NextMind-AI/chat-sentiment/events"
	"github.com/NextMind-AI/chat-sentiment/history"
	"github.com/NextMind-AI/chat-sentiment/redis"
	"github.com/NextMind-AI/chat-sentiment/report"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrRunNotFound is returned when a report can be found neither in the
// cache nor on disk.
var ErrRunNotFound = errors.New("run not found")

// Outputs are the optional sinks a finished report is handed to. A nil
// field disables that sink.
type Outputs struct {
	OutputDir string
	Cache     ReportCache
	Archive   ReportArchive
	History   RunHistory
	Events    events.Publisher
}

// RunResult describes one finished run.
type RunResult struct {
	ID       string         `json:"id"`
	Report   *report.Report `json:"-"`
	Counts   report.Counts  `json:"counts"`
	Filename string         `json:"filename"`
	Path     string         `json:"-"`
	Location string         `json:"location,omitempty"`
}

// ReportService runs the pipeline and delivers the resulting CSV to
// disk, cache, archive, history and the event bus.
type ReportService struct {
	processor *Processor
	outputs   Outputs
	now       func() time.Time
	newID     func() string
}

func NewReportService(processor *Processor, outputs Outputs) *ReportService {
	if outputs.OutputDir == "" {
		outputs.OutputDir = "."
	}
	if outputs.Events == nil {
		outputs.Events = events.NopPublisher{}
	}
	return &ReportService{
		processor: processor,
		outputs:   outputs,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *ReportService) Generate(ctx context.Context, req RunRequest) (*RunResult, error) {
	runID := s.newID()
	started := s.now()

	rep, err := s.processor.Run(ctx, req)
	if err != nil {
		s.finish(ctx, history.Run{
			ID:         runID,
			AccountID:  req.AccountID,
			From:       req.StartDate,
			To:         req.EndDate,
			Status:     history.StatusFailed,
			Error:      err.Error(),
			StartedAt:  started,
			FinishedAt: s.now(),
		})
		return nil, err
	}

	result, err := s.deliver(ctx, runID, req.AccountID, rep)
	if err != nil {
		return nil, err
	}

	counts := result.Counts
	s.finish(ctx, history.Run{
		ID:              runID,
		AccountID:       req.AccountID,
		From:            rep.From,
		To:              rep.To,
		Status:          history.StatusSucceeded,
		Total:           counts.Total,
		WithMessages:    counts.WithMessages,
		WithoutMessages: counts.WithoutMessages,
		Filename:        result.Filename,
		CSVPath:         result.Path,
		Location:        result.Location,
		StartedAt:       started,
		FinishedAt:      s.now(),
	})

	return result, nil
}

func (s *ReportService) deliver(ctx context.Context, runID, accountID string, rep *report.Report) (*RunResult, error) {
	body, err := report.EncodeCSV(rep)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	filename := report.Filename(rep.GeneratedAt)
	runDir := filepath.Join(s.outputs.OutputDir, runID)
	path := filepath.Join(runDir, filename)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	log.Info().Str("run_id", runID).Str("path", path).Msg("Report written")

	result := &RunResult{
		ID:       runID,
		Report:   rep,
		Counts:   rep.Counts(),
		Filename: filename,
		Path:     path,
	}

	if s.outputs.Cache != nil {
		err := s.outputs.Cache.SaveReport(ctx, redis.CachedRun{
			RunID:       runID,
			AccountID:   accountID,
			Filename:    filename,
			GeneratedAt: rep.GeneratedAt,
			Counts:      result.Counts,
		}, body)
		if err != nil {
			log.Warn().Err(err).Str("run_id", runID).Msg("Failed to cache report")
		}
	}

	if s.outputs.Archive != nil {
		location, err := s.outputs.Archive.UploadReport(ctx, accountID, filename, body)
		if err != nil {
			log.Warn().Err(err).Str("run_id", runID).Msg("Failed to archive report")
		} else {
			result.Location = location
		}
	}

	return result, nil
}

// finish records the run and publishes its completion. Failures here
// are logged and never change the run's outcome.
func (s *ReportService) finish(ctx context.Context, run history.Run) {
	if s.outputs.History != nil {
		if err := s.outputs.History.Record(ctx, run); err != nil {
			log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to record run history")
		}
	}

	envelope := events.NewRunCompleted(events.RunCompleted{
		RunID:           run.ID,
		AccountID:       run.AccountID,
		From:            run.From,
		To:              run.To,
		Status:          run.Status,
		Error:           run.Error,
		Total:           run.Total,
		WithMessages:    run.WithMessages,
		WithoutMessages: run.WithoutMessages,
		Filename:        run.Filename,
		Location:        run.Location,
	}, run.FinishedAt)
	if err := s.outputs.Events.Publish(ctx, events.RunCompletedV1, envelope); err != nil {
		log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to publish run event")
	}
}

// Download returns the CSV of a finished run, preferring the cache. A run
// that belongs to another account is reported as not found.
func (s *ReportService) Download(ctx context.Context, accountID, runID string) ([]byte, string, error) {
	if s.outputs.Cache != nil {
		body, filename, err := s.downloadCached(ctx, accountID, runID)
		if err == nil || errors.Is(err, ErrRunNotFound) {
			return body, filename, err
		}
		if !errors.Is(err, redis.ErrReportNotFound) {
			log.Warn().Err(err).Str("run_id", runID).Msg("Report cache lookup failed")
		}
	}

	if s.outputs.History == nil {
		return nil, "", ErrRunNotFound
	}
	run, err := s.outputs.History.Get(ctx, runID)
	if errors.Is(err, history.ErrRunNotFound) {
		return nil, "", ErrRunNotFound
	}
	if err != nil {
		return nil, "", err
	}
	if run.AccountID != accountID || run.CSVPath == "" {
		return nil, "", ErrRunNotFound
	}

	body, err := os.ReadFile(run.CSVPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", ErrRunNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("read report %s: %w", runID, err)
	}
	return body, run.Filename, nil
}

func (s *ReportService) downloadCached(ctx context.Context, accountID, runID string) ([]byte, string, error) {
	run, err := s.outputs.Cache.GetRun(ctx, runID)
	if err != nil {
		return nil, "", err
	}
	if run.AccountID != accountID {
		return nil, "", ErrRunNotFound
	}

	body, err := s.outputs.Cache.GetReport(ctx, runID)
	if err != nil {
		return nil, "", err
	}
	return body, run.Filename, nil
}

// History lists the runs of one account, newest first.
func (s *ReportService) History(ctx context.Context, accountID string, limit int) ([]history.Run, error) {
	if s.outputs.History == nil || accountID == "" {
		return []history.Run{}, nil
	}
	return s.outputs.History.List(ctx, accountID, limit)
}
