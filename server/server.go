package server

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/NextMind-AI/chat-sentiment/execution"
	"github.com/NextMind-AI/chat-sentiment/history"
	"github.com/NextMind-AI/chat-sentiment/processor"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

//go:embed static/index.html
var indexHTML string

// ReportRunner is the report pipeline as seen by the HTTP layer.
type ReportRunner interface {
	Generate(ctx context.Context, req processor.RunRequest) (*processor.RunResult, error)
	Download(ctx context.Context, accountID, runID string) ([]byte, string, error)
	History(ctx context.Context, accountID string, limit int) ([]history.Run, error)
}

type Server struct {
	app        *fiber.App
	reports    ReportRunner
	executions *execution.Manager
	metrics    http.Handler
	ctx        context.Context
	cancel     context.CancelFunc
}

// New builds the server. metricsHandler may be nil to disable /metrics.
func New(reports ReportRunner, executions *execution.Manager, metricsHandler http.Handler) *Server {
	app := fiber.New(fiber.Config{
		AppName: "chatsentiment",
	})

	ctx, cancel := context.WithCancel(context.Background())
	server := &Server{
		app:        app,
		reports:    reports,
		executions: executions,
		metrics:    metricsHandler,
		ctx:        ctx,
		cancel:     cancel,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) Start(port string) error {
	log.Info().Str("port", port).Msg("Starting chat sentiment server")

	return s.app.Listen(":"+port, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
}

// Shutdown cancels running reports and stops accepting requests.
func (s *Server) Shutdown() error {
	s.executions.CancelAll()
	s.cancel()
	return s.app.Shutdown()
}
