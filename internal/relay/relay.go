// Package relay forwards queued encode:enqueue tasks to the HTTP encoder.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/wapuda/tg-encoder-bot/internal/encoder"
	"github.com/wapuda/tg-encoder-bot/internal/jobs"
	"github.com/wapuda/tg-encoder-bot/internal/logx"
)

// Notifier tells the originating chat how the handoff went.
type Notifier interface {
	Send(chatID int64, text string) error
}

type Handler struct {
	enc    encoder.Encoder
	notify Notifier
}

func NewHandler(enc encoder.Encoder, n Notifier) *Handler {
	return &Handler{enc: enc, notify: n}
}

// Register mounts the handler on mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(jobs.TaskEnqueue, h.ProcessTask)
}

// ProcessTask makes one encoder call. Every failure is wrapped in
// asynq.SkipRetry: the handoff contract has no retries.
func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var req jobs.EnqueueRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	ctx = logx.WithJob(ctx, req.JobID, req.ChatID)
	l := logx.FromCtx(ctx).With().Str("resolution", req.Resolution).Logger()

	res, err := h.enc.Enqueue(ctx, req)
	switch {
	case err == nil:
		l.Info().Str("position", res.Position.String()).Msg("relayed to encoder")
		h.send(req.ChatID, fmt.Sprintf("✅ Encoder accepted the job (position %s).", res.Position))
		return nil
	case errors.Is(err, encoder.ErrRejected):
		l.Error().Err(err).Msg("encoder rejected relayed job")
		h.send(req.ChatID, "❌ Failed to enqueue job on encoder.")
	default:
		l.Error().Err(err).Msg("relay enqueue error")
		h.send(req.ChatID, "❌ Could not reach encoder. Make sure ENCODER_URL is correct.")
	}
	return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
}

func (h *Handler) send(chatID int64, text string) {
	if h.notify == nil || chatID == 0 {
		return
	}
	if err := h.notify.Send(chatID, text); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("relay notify failed")
	}
}
