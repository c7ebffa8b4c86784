package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wapuda/tg-encoder-bot/internal/callback"
	"github.com/wapuda/tg-encoder-bot/internal/jobs"
	"github.com/wapuda/tg-encoder-bot/internal/logx"
	"github.com/wapuda/tg-encoder-bot/internal/store"
)

// MediaEvent is an inbound message that may carry a file.
type MediaEvent struct {
	ChatID   int64
	FileID   string // empty when the message had no video or document
	FileName string
	MimeType string
}

// Intake turns uploads into job records and asks for a resolution.
type Intake struct {
	msgr  Messenger
	store store.Store
	newID func() string
	now   func() time.Time
}

func NewIntake(m Messenger, s store.Store) *Intake {
	return &Intake{msgr: m, store: s, newID: jobs.NewID, now: time.Now}
}

// Handle replies to the user on every path; the returned error is for logs.
func (in *Intake) Handle(ctx context.Context, ev MediaEvent) (string, error) {
	if ev.FileID == "" {
		_ = in.msgr.Send(ev.ChatID, msgMediaMissing)
		return "", ErrMediaMissing
	}

	fileURL, err := in.msgr.FileURL(ev.FileID)
	if err != nil {
		_ = in.msgr.Send(ev.ChatID, msgFileLink)
		return "", fmt.Errorf("%w: %v", ErrFileLink, err)
	}

	id := in.newID()
	ctx = logx.WithJob(ctx, id, ev.ChatID)
	l := logx.FromCtx(ctx)

	rec := jobs.Record{JobID: id, FileURL: fileURL, ChatID: ev.ChatID, FileName: ev.FileName, CreatedAt: in.now()}
	if err := in.store.Put(ctx, id, rec); err != nil {
		_ = in.msgr.Send(ev.ChatID, msgPendingErr)
		return "", fmt.Errorf("store job %s: %w", id, err)
	}

	if err := in.msgr.SendMenu(ev.ChatID, msgMenu, resolutionMenu(id)); err != nil {
		// The record stays; the TTL sweep will collect it if nobody resends.
		return id, fmt.Errorf("send menu: %w", err)
	}

	l.Info().Str("file", ev.FileName).Str("mime", ev.MimeType).Msg("job created; asking for resolution")
	return id, nil
}

func resolutionMenu(jobID string) [][]Button {
	rows := make([][]Button, 0, len(jobs.Resolutions))
	for _, res := range jobs.Resolutions {
		data := callback.Encode(callback.New(jobID, res))
		if !callback.Fits(data) {
			log.Warn().Str("data", data).Msg("callback data exceeds telegram limit")
		}
		rows = append(rows, []Button{{Text: res.Label(), Data: data}})
	}
	return rows
}
