package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wapuda/tg-encoder-bot/internal/bot"
	"github.com/wapuda/tg-encoder-bot/internal/config"
	"github.com/wapuda/tg-encoder-bot/internal/encoder"
	"github.com/wapuda/tg-encoder-bot/internal/health"
	"github.com/wapuda/tg-encoder-bot/internal/logx"
	"github.com/wapuda/tg-encoder-bot/internal/store"
)

func main() {
	_ = godotenv.Load()
	c := config.Load()

	logx.Setup(logx.FromEnv("bot"))
	log.Info().Msg("bot starting")

	if err := c.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Set BOT_TOKEN in the environment or .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Job store
	var (
		st      store.Store
		pending health.Counter
	)
	switch c.StoreBackend {
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", c.RedisAddr).Msg("redis ping failed")
		}
		st = store.NewRedis(rdb, c.JobTTL)
	default:
		mem := store.NewMemory()
		go mem.RunSweeper(ctx, c.JobTTL, c.SweepInterval)
		st, pending = mem, mem
	}
	log.Info().Str("backend", c.StoreBackend).Dur("ttl", c.JobTTL).Msg("job store ready")

	// Encoder; left nil when nothing is configured so dispatch reports it.
	var enc encoder.Encoder
	switch {
	case c.DispatchMode == config.DispatchQueue:
		q := encoder.NewQueue(asynq.RedisClientOpt{Addr: c.RedisAddr}, c.QueueName)
		defer q.Close()
		enc = q
		log.Info().Str("queue", c.QueueName).Msg("dispatching through asynq relay")
	case c.EncoderConfigured():
		enc = encoder.NewHTTP(c.EncoderURL, c.EncoderTimeout)
		log.Info().Str("encoder", c.EncoderURL).Dur("timeout", c.EncoderTimeout).Msg("dispatching over http")
	default:
		log.Warn().Msg("ENCODER_URL not set; button presses will report a configuration error")
	}

	// Liveness endpoint
	hs := &http.Server{Addr: c.HTTPAddr, Handler: health.NewRouter(pending), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", c.HTTPAddr).Msg("web server listening")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("web server stopped")
		}
	}()

	api, err := tgbotapi.NewBotAPI(c.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram auth failed")
	}
	api.Debug = false
	log.Info().Str("username", api.Self.UserName).Msg("bot authorized")

	tg := bot.NewTelegram(api)
	if err := tg.DropPending(); err != nil {
		log.Warn().Err(err).Msg("drop pending updates failed")
	}

	router := bot.NewRouter(tg, bot.NewIntake(tg, st), bot.NewDispatcher(tg, st, enc, c.SharedSecret))
	updates := tg.Updates()

	go func() {
		<-ctx.Done()
		tg.Stop()
	}()

	log.Info().Msg("bot launched")
	router.Run(ctx, updates)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = hs.Shutdown(shutdownCtx)
	log.Info().Msg("bot stopped")
}
