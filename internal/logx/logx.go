package logx

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wapuda/tg-encoder-bot/internal/config"
)

// Config via env or code
type Config struct {
	Service        string // "bot" or "relay"
	Level          string // debug|info|warn|error
	Format         string // json|console
	FilePath       string // e.g. /var/log/encbot/bot.log ("" = disabled)
	FileMaxSizeMB  int    // rotate at ~MB (default 50)
	FileMaxBackups int    // keep N old logs (default 3)
	FileMaxAgeDays int    // keep #days (default 7)
	FileCompress   bool   // gzip old logs (default true)
	SampleEveryN   int    // >0 enables BasicSampler (e.g., 10 = keep 1/10 logs)
}

// FromEnv builds config from LOG_* variables.
func FromEnv(service string) Config {
	return Config{
		Service:        service,
		Level:          strings.ToLower(config.String("LOG_LEVEL", "info")),
		Format:         strings.ToLower(config.String("LOG_FORMAT", "json")),
		FilePath:       config.String("LOG_FILE", ""),
		FileMaxSizeMB:  config.Int("LOG_FILE_MAX_SIZE", 50),
		FileMaxBackups: config.Int("LOG_FILE_MAX_BACKUPS", 3),
		FileMaxAgeDays: config.Int("LOG_FILE_MAX_AGE", 7),
		FileCompress:   config.Bool("LOG_FILE_COMPRESS", true),
		SampleEveryN:   config.Int("LOG_SAMPLE_EVERY", 0),
	}
}

// Setup configures the zerolog global `log` and returns the logger instance.
func Setup(c Config) zerolog.Logger {
	return setup(c, os.Stdout)
}

func setup(c Config, stdout io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if c.Format == "console" {
		writers = append(writers, zerolog.ConsoleWriter{Out: stdout, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, stdout)
	}
	if c.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   c.FilePath,
			MaxSize:    c.FileMaxSizeMB,
			MaxBackups: c.FileMaxBackups,
			MaxAge:     c.FileMaxAgeDays,
			Compress:   c.FileCompress,
		})
	}

	logger := zerolog.New(io.MultiWriter(writers...)).Level(lvl).With().
		Timestamp().
		Str("svc", c.Service).
		Logger()

	if c.SampleEveryN > 0 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(c.SampleEveryN)})
	}

	log.Logger = logger
	return logger
}

type ctxKey int

const (
	ctxKeyJobID ctxKey = iota
	ctxKeyChatID
)

// WithJob tags ctx so FromCtx loggers carry job_id and chat_id.
func WithJob(ctx context.Context, jobID string, chatID int64) context.Context {
	if jobID != "" {
		ctx = context.WithValue(ctx, ctxKeyJobID, jobID)
	}
	if chatID != 0 {
		ctx = context.WithValue(ctx, ctxKeyChatID, chatID)
	}
	return ctx
}

// FromCtx attaches standard fields (if present) to the global logger.
func FromCtx(ctx context.Context) zerolog.Logger {
	l := log.Logger
	if ctx == nil {
		return l
	}
	w := l.With()
	if v, ok := ctx.Value(ctxKeyJobID).(string); ok {
		w = w.Str("job_id", v)
	}
	if v, ok := ctx.Value(ctxKeyChatID).(int64); ok {
		w = w.Int64("chat_id", v)
	}
	return w.Logger()
}
