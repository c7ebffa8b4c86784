package bot

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Router fans Telegram updates out to the intake and the dispatcher.
type Router struct {
	msgr   Messenger
	intake *Intake
	disp   *Dispatcher
	wg     sync.WaitGroup
}

func NewRouter(m Messenger, in *Intake, d *Dispatcher) *Router {
	return &Router{msgr: m, intake: in, disp: d}
}

// Run handles each update in its own goroutine until ctx is done or the
// channel closes, then waits for in-flight handlers.
func (r *Router) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	defer r.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				r.HandleUpdate(ctx, upd)
			}()
		}
	}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		r.onMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		r.onCallback(ctx, upd.CallbackQuery)
	}
}

func (r *Router) onMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.Chat == nil {
		return
	}
	ev := log.Info().Int64("chat_id", m.Chat.ID)
	if m.From != nil {
		ev = ev.Int64("user_id", m.From.ID)
	}
	ev.Msg("message received")

	if m.IsCommand() {
		switch m.Command() {
		case "start":
			_ = r.msgr.Send(m.Chat.ID, msgStart)
		default:
			_ = r.msgr.Send(m.Chat.ID, msgUnknownCmd)
		}
		return
	}

	media, ok := mediaFromMessage(m)
	if !ok {
		return
	}
	if _, err := r.intake.Handle(ctx, media); err != nil {
		lvl := log.Error()
		if errors.Is(err, ErrMediaMissing) {
			lvl = log.Info()
		}
		lvl.Err(err).Int64("chat_id", m.Chat.ID).Msg("handle media error")
	}
}

func (r *Router) onCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		_ = r.msgr.AnswerCallback(cq.ID)
		return
	}
	// Dispatcher logs every outcome itself.
	_, _ = r.disp.Handle(ctx, CallbackEvent{
		ID:        cq.ID,
		ChatID:    cq.Message.Chat.ID,
		MessageID: cq.Message.MessageID,
		Data:      cq.Data,
	})
}

// mediaFromMessage picks the upload out of a message. Video wins over
// Document; documents are taken whatever their MIME type. Plain text yields
// ok == false and is ignored; other attachment kinds yield an empty FileID so
// the user is told what to send.
func mediaFromMessage(m *tgbotapi.Message) (MediaEvent, bool) {
	ev := MediaEvent{ChatID: m.Chat.ID}
	switch {
	case m.Video != nil:
		ev.FileID, ev.FileName, ev.MimeType = m.Video.FileID, m.Video.FileName, m.Video.MimeType
	case m.Document != nil:
		ev.FileID, ev.FileName, ev.MimeType = m.Document.FileID, m.Document.FileName, m.Document.MimeType
	case m.Animation != nil, m.Audio != nil, len(m.Photo) > 0, m.Voice != nil, m.VideoNote != nil, m.Sticker != nil:
	default:
		return ev, false
	}
	return ev, true
}
