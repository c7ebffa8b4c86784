package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/wapuda/tg-encoder-bot/internal/callback"
	"github.com/wapuda/tg-encoder-bot/internal/encoder"
	"github.com/wapuda/tg-encoder-bot/internal/jobs"
	"github.com/wapuda/tg-encoder-bot/internal/logx"
	"github.com/wapuda/tg-encoder-bot/internal/store"
)

// Outcome is the terminal state of one dispatch attempt.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeExpired
	OutcomeStoreFailed
	OutcomeMisconfigured
	OutcomeDuplicate
	OutcomeEnqueued
	OutcomeRejected
	OutcomeUnreachable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeExpired:
		return "expired"
	case OutcomeStoreFailed:
		return "store_failed"
	case OutcomeMisconfigured:
		return "misconfigured"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeEnqueued:
		return "enqueued"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUnreachable:
		return "unreachable"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// CallbackEvent is a button press on a resolution menu.
type CallbackEvent struct {
	ID        string
	ChatID    int64
	MessageID int
	Data      string
}

// Dispatcher hands selected jobs to the encoder.
type Dispatcher struct {
	msgr   Messenger
	store  store.Store
	enc    encoder.Encoder // nil when no endpoint is configured
	secret string
}

func NewDispatcher(m Messenger, s store.Store, enc encoder.Encoder, secret string) *Dispatcher {
	return &Dispatcher{msgr: m, store: s, enc: enc, secret: secret}
}

// Handle acknowledges the press, decodes the payload and dispatches.
func (d *Dispatcher) Handle(ctx context.Context, cb CallbackEvent) (Outcome, error) {
	_ = d.msgr.AnswerCallback(cb.ID)

	tok, err := callback.Decode(cb.Data)
	if err != nil {
		_ = d.msgr.Edit(cb.ChatID, cb.MessageID, msgInvalid)
		return OutcomeInvalid, err
	}
	return d.Dispatch(ctx, cb.ChatID, cb.MessageID, tok)
}

// Dispatch runs the lookup → claim → enqueue sequence for one token. The
// record is removed only when the encoder accepts the job; on rejection or
// transport failure it is put back and the menu is sent again for a retry.
func (d *Dispatcher) Dispatch(ctx context.Context, chatID int64, messageID int, tok callback.Token) (Outcome, error) {
	ctx = logx.WithJob(ctx, tok.JobID, chatID)
	l := logx.FromCtx(ctx).With().Str("resolution", string(tok.Resolution)).Logger()

	if _, ok, err := d.store.Get(ctx, tok.JobID); err != nil {
		l.Error().Err(err).Str("outcome", OutcomeStoreFailed.String()).Msg("job lookup failed")
		_ = d.msgr.Send(chatID, msgStoreErr)
		return OutcomeStoreFailed, err
	} else if !ok {
		// Reply instead of editing: a concurrent press may own this message.
		l.Info().Str("outcome", OutcomeExpired.String()).Msg("job not found")
		_ = d.msgr.Send(chatID, msgExpired)
		return OutcomeExpired, ErrJobExpired
	}

	if d.enc == nil {
		l.Error().Str("outcome", OutcomeMisconfigured.String()).Msg("no encoder endpoint configured")
		_ = d.msgr.Edit(chatID, messageID, msgMisconfigured)
		return OutcomeMisconfigured, ErrEncoderMisconfigured
	}

	rec, ok, err := d.store.Claim(ctx, tok.JobID)
	if err != nil {
		l.Error().Err(err).Str("outcome", OutcomeStoreFailed.String()).Msg("job claim failed")
		_ = d.msgr.Send(chatID, msgStoreErr)
		return OutcomeStoreFailed, err
	}
	if !ok {
		l.Warn().Str("outcome", OutcomeDuplicate.String()).Msg("job claimed by a concurrent press")
		_ = d.msgr.Send(chatID, msgDuplicate)
		return OutcomeDuplicate, ErrAlreadyClaimed
	}

	if err := d.msgr.Edit(chatID, messageID, fmt.Sprintf(msgQueuedFmt, tok.Resolution)); err != nil {
		l.Debug().Err(err).Msg("edit decision message failed")
	}

	res, err := d.enc.Enqueue(ctx, jobs.NewEnqueueRequest(rec, tok.Resolution, d.secret))
	if err == nil {
		l.Info().Str("outcome", OutcomeEnqueued.String()).Str("position", res.Position.String()).Msg("job enqueued")
		_ = d.msgr.Send(chatID, fmt.Sprintf(msgEnqueuedFmt, res.Position))
		return OutcomeEnqueued, nil
	}

	out, reply := OutcomeUnreachable, msgUnreachable
	if errors.Is(err, encoder.ErrRejected) {
		out, reply = OutcomeRejected, msgRejected
	} else if !errors.Is(err, encoder.ErrUnreachable) {
		err = fmt.Errorf("%w: %v", encoder.ErrUnreachable, err)
	}
	l.Error().Err(err).Str("outcome", out.String()).Msg("enqueue failed")
	_ = d.msgr.Send(chatID, reply)
	d.release(ctx, chatID, rec)
	return out, err
}

// release puts a claimed record back after a failed handoff and offers the
// menu again; the "Queued for" edit removed the original keyboard.
func (d *Dispatcher) release(ctx context.Context, chatID int64, rec jobs.Record) {
	l := logx.FromCtx(ctx)
	if err := d.store.Put(context.WithoutCancel(ctx), rec.JobID, rec); err != nil {
		l.Error().Err(err).Msg("could not restore job record after failed dispatch")
		_ = d.msgr.Send(chatID, msgResendFile)
		return
	}
	if err := d.msgr.SendMenu(chatID, msgRetryMenu, resolutionMenu(rec.JobID)); err != nil {
		l.Warn().Err(err).Msg("could not resend resolution menu")
	}
}
