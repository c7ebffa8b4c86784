package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/wapuda/tg-encoder-bot/internal/config"
	"github.com/wapuda/tg-encoder-bot/internal/encoder"
	"github.com/wapuda/tg-encoder-bot/internal/jobs"
	"github.com/wapuda/tg-encoder-bot/internal/logx"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run ./cmd/enqueue <file_url> <resolution> [chat_id]")
		os.Exit(2)
	}
	_ = godotenv.Load()
	c := config.Load()
	logx.Setup(logx.FromEnv("enqueue"))

	if c.EncoderURL == "" {
		fmt.Fprintln(os.Stderr, "ENCODER_URL not set")
		os.Exit(1)
	}

	var chatID int64
	if len(os.Args) > 3 {
		n, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "chat_id must be an integer")
			os.Exit(2)
		}
		chatID = n
	}

	rec := jobs.Record{JobID: jobs.NewID(), FileURL: os.Args[1], ChatID: chatID}
	req := jobs.NewEnqueueRequest(rec, jobs.Resolution(os.Args[2]), c.SharedSecret)

	res, err := encoder.NewHTTP(c.EncoderURL, c.EncoderTimeout).Enqueue(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "enqueue failed:", err)
		os.Exit(1)
	}
	fmt.Printf("job %s queued (position %s)\n", req.JobID, res.Position)
}
