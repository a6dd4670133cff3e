package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NextMind-AI/chat-sentiment/report"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrReportNotFound is returned when a run's report expired or was never cached.
var ErrReportNotFound = errors.New("report not found in cache")

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// CachedRun is the run summary stored next to the CSV body.
type CachedRun struct {
	RunID       string        `json:"run_id"`
	AccountID   string        `json:"account_id"`
	Filename    string        `json:"filename"`
	GeneratedAt time.Time     `json:"generated_at"`
	Counts      report.Counts `json:"counts"`
}

func NewClient(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	client := &Client{
		rdb: rdb,
		ttl: ttl,
	}

	if err := client.Ping(ctx); err != nil {
		log.Error().Err(err).
			Str("addr", addr).
			Int("db", db).
			Msg("Redis connection failed")
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().
		Str("addr", addr).
		Int("db", db).
		Dur("report_ttl", ttl).
		Msg("Redis connected successfully")

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func csvKey(runID string) string {
	return fmt.Sprintf("report:%s:csv", runID)
}

func runKey(runID string) string {
	return fmt.Sprintf("report:%s:run", runID)
}

// SaveReport stores the CSV body and its run summary with the same TTL.
func (c *Client) SaveReport(ctx context.Context, run CachedRun, csvBody []byte) error {
	runJSON, err := json.Marshal(run)
	if err != nil {
		return err
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, csvKey(run.RunID), csvBody, c.ttl)
		pipe.Set(ctx, runKey(run.RunID), runJSON, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache report %s: %w", run.RunID, err)
	}

	log.Debug().
		Str("run_id", run.RunID).
		Int("bytes", len(csvBody)).
		Msg("Report cached")

	return nil
}

func (c *Client) GetReport(ctx context.Context, runID string) ([]byte, error) {
	body, err := c.rdb.Get(ctx, csvKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", runID, err)
	}
	return body, nil
}

func (c *Client) GetRun(ctx context.Context, runID string) (*CachedRun, error) {
	raw, err := c.rdb.Get(ctx, runKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run %s: %w", runID, err)
	}

	var run CachedRun
	if err := json.Unmarshal(raw, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
