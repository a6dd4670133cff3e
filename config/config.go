package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LiveChatAPIURL    string
	LiveChatPageSize  int
	FetchTimeout      time.Duration
	FetchMaxRetries   int
	FetchRetryBackoff time.Duration
	FetchMaxPages     int

	Scorer      string
	OpenAIKey   string
	OpenAIModel string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ReportTTL     time.Duration

	S3Bucket string
	S3Region string

	SQLitePath string

	AMQPURL      string
	AMQPExchange string

	OutputDir string

	LogLevel  string
	LogPretty bool
}

const (
	ScorerVader  = "vader"
	ScorerOpenAI = "openai"
)

func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		LiveChatAPIURL:    getEnv("LIVECHAT_API_URL", "https://api.livechatinc.com/v3.5/agent/action/list_archives"),
		LiveChatPageSize:  getEnvInt("LIVECHAT_PAGE_SIZE", 100),
		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchMaxRetries:   getEnvInt("FETCH_MAX_RETRIES", 0),
		FetchRetryBackoff: getEnvDuration("FETCH_RETRY_BACKOFF", time.Second),
		FetchMaxPages:     getEnvInt("FETCH_MAX_PAGES", 0),
		Scorer:            getEnv("SCORER", ScorerVader),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		ReportTTL:         getEnvDuration("REPORT_TTL", 24*time.Hour),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		SQLitePath:        getEnv("SQLITE_PATH", "chatsentiment.db"),
		AMQPURL:           getEnv("AMQP_URL", ""),
		AMQPExchange:      getEnv("AMQP_EXCHANGE", "chatsentiment.events"),
		OutputDir:         getEnv("OUTPUT_DIR", "."),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogPretty:         getEnvBool("LOG_PRETTY", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
