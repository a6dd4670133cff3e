// Package chatsentiment wires the LiveChat sentiment report service.
package chatsentiment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/NextMind-AI/chat-sentiment/aws"
	"github.com/NextMind-AI/chat-sentiment/config"
	"github.com/NextMind-AI/chat-sentiment/events"
	"github.com/NextMind-AI/chat-sentiment/execution"
	"github.com/NextMind-AI/chat-sentiment/history"
	"github.com/NextMind-AI/chat-sentiment/livechat"
	"github.com/NextMind-AI/chat-sentiment/metrics"
	"github.com/NextMind-AI/chat-sentiment/openai"
	"github.com/NextMind-AI/chat-sentiment/processor"
	"github.com/NextMind-AI/chat-sentiment/redis"
	"github.com/NextMind-AI/chat-sentiment/sentiment"
	"github.com/NextMind-AI/chat-sentiment/server"

	"github.com/rs/zerolog/log"
)

// App holds the fully wired service.
type App struct {
	config  *config.Config
	reports *processor.ReportService
	metrics *metrics.Metrics
	server  *server.Server
	closers []func() error
}

// New connects every configured backend. Optional backends (Redis, S3,
// SQLite, AMQP) are skipped when their setting is empty.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{config: cfg}
	httpClient := http.Client{}

	scorer, err := newScorer(cfg, httpClient)
	if err != nil {
		return nil, err
	}

	liveChatClient := livechat.NewClient(livechat.Config{
		APIURL:   cfg.LiveChatAPIURL,
		PageSize: cfg.LiveChatPageSize,
		Policy: livechat.FetchPolicy{
			Timeout:    cfg.FetchTimeout,
			MaxRetries: cfg.FetchMaxRetries,
			Backoff:    cfg.FetchRetryBackoff,
		},
	}, httpClient)

	app.metrics = metrics.NewMetrics()

	proc := processor.NewProcessor(&liveChatClient, scorer, nil, processor.Settings{
		PageSize: cfg.LiveChatPageSize,
		MaxPages: cfg.FetchMaxPages,
		Observer: app.metrics,
	})

	outputs := processor.Outputs{OutputDir: cfg.OutputDir}

	if cfg.SQLitePath != "" {
		store, err := history.Open(cfg.SQLitePath)
		if err != nil {
			app.Close()
			return nil, err
		}
		outputs.History = store
		app.closers = append(app.closers, store.Close)
		log.Info().Str("path", cfg.SQLitePath).Msg("Run history enabled")
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ReportTTL)
		if err != nil {
			app.Close()
			return nil, err
		}
		outputs.Cache = redisClient
		app.closers = append(app.closers, redisClient.Close)
	}

	if cfg.S3Bucket != "" {
		awsClient, err := aws.NewClient(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			app.Close()
			return nil, err
		}
		outputs.Archive = awsClient
	}

	if cfg.AMQPURL != "" {
		publisher, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			app.Close()
			return nil, err
		}
		outputs.Events = publisher
		app.closers = append(app.closers, publisher.Close)
	}

	app.reports = processor.NewReportService(proc, outputs)

	return app, nil
}

func newScorer(cfg *config.Config, httpClient http.Client) (sentiment.Scorer, error) {
	switch cfg.Scorer {
	case "", config.ScorerVader:
		log.Info().Msg("Using VADER sentiment scorer")
		return sentiment.NewVaderScorer(), nil
	case config.ScorerOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, errors.New("OPENAI_API_KEY environment variable is required for the openai scorer")
		}
		log.Info().Str("model", cfg.OpenAIModel).Msg("Using OpenAI sentiment scorer")
		client := openai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, httpClient)
		return &client, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", cfg.Scorer)
	}
}

// Reports exposes the report service for one-shot runs.
func (a *App) Reports() *processor.ReportService {
	return a.reports
}

// Serve starts the web front-end and blocks until it stops.
func (a *App) Serve() error {
	a.server = server.New(a.reports, execution.NewManager(), a.metrics.Handler())

	port := a.config.Port
	if port == "" {
		port = "8080"
	}
	return a.server.Start(port)
}

// Close stops the server and releases backend connections.
func (a *App) Close() error {
	var errs []error
	if a.server != nil {
		errs = append(errs, a.server.Shutdown())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
