package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/wapuda/tg-encoder-bot/internal/bot"
	"github.com/wapuda/tg-encoder-bot/internal/config"
	"github.com/wapuda/tg-encoder-bot/internal/encoder"
	"github.com/wapuda/tg-encoder-bot/internal/logx"
	"github.com/wapuda/tg-encoder-bot/internal/relay"
)

func main() {
	_ = godotenv.Load()
	c := config.Load()

	logx.Setup(logx.FromEnv("relay"))

	if err := c.Validate(); err != nil {
		log.Fatal().Err(err).Msg("relay needs BOT_TOKEN to report results")
	}
	if c.EncoderURL == "" {
		log.Fatal().Msg("ENCODER_URL required")
	}

	api, err := tgbotapi.NewBotAPI(c.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram auth failed")
	}

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: c.RedisAddr}, asynq.Config{
		Concurrency: c.RelayConcurrency,
		Queues:      map[string]int{c.QueueName: 1},
	})

	mux := asynq.NewServeMux()
	relay.NewHandler(encoder.NewHTTP(c.EncoderURL, c.EncoderTimeout), bot.NewTelegram(api)).Register(mux)

	log.Info().
		Str("queue", c.QueueName).
		Str("encoder", c.EncoderURL).
		Int("concurrency", c.RelayConcurrency).
		Msg("relay starting")
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("relay stopped")
	}
}
