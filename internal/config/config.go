package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	DispatchHTTP  = "http"
	DispatchQueue = "queue"
)

// Config holds runtime settings for the bot and the relay.
type Config struct {
	BotToken     string
	EncoderURL   string // base, no trailing slash
	SharedSecret string
	// EncoderTimeout bounds the whole enqueue call.
	EncoderTimeout time.Duration
	HTTPAddr       string

	StoreBackend  string
	RedisAddr     string
	JobTTL        time.Duration
	SweepInterval time.Duration

	DispatchMode     string
	QueueName        string
	RelayConcurrency int
}

var ErrNoBotToken = errors.New("BOT_TOKEN is required")

// Load reads environment variables; call godotenv.Load first to pick up .env.
func Load() Config {
	return Config{
		BotToken:         strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		EncoderURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("ENCODER_URL")), "/"),
		SharedSecret:     os.Getenv("SHARED_SECRET"),
		EncoderTimeout:   time.Duration(Int("ENCODER_TIMEOUT_SEC", 20)) * time.Second,
		HTTPAddr:         ":" + String("PORT", "3000"),
		StoreBackend:     strings.ToLower(String("STORE_BACKEND", StoreMemory)),
		RedisAddr:        String("REDIS_ADDR", "localhost:6379"),
		JobTTL:           time.Duration(Int("JOB_TTL_HOURS", 24)) * time.Hour,
		SweepInterval:    time.Duration(Int("SWEEP_INTERVAL_MIN", 10)) * time.Minute,
		DispatchMode:     strings.ToLower(String("DISPATCH_MODE", DispatchHTTP)),
		QueueName:        String("QUEUE_NAME", "encode"),
		RelayConcurrency: Int("RELAY_CONCURRENCY", 2),
	}
}

// Validate reports the only fatal configuration problem: a missing bot token.
func (c Config) Validate() error {
	if c.BotToken == "" {
		return ErrNoBotToken
	}
	return nil
}

// EncoderConfigured reports whether dispatch has somewhere to go.
func (c Config) EncoderConfigured() bool {
	if c.DispatchMode == DispatchQueue {
		return true
	}
	return c.EncoderURL != ""
}
