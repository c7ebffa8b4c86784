package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram implements Messenger over the Bot API.
type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(api *tgbotapi.BotAPI) *Telegram {
	return &Telegram{api: api}
}

func (t *Telegram) FileURL(fileID string) (string, error) {
	return t.api.GetFileDirectURL(fileID)
}

func (t *Telegram) Send(chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (t *Telegram) SendMenu(chatID int64, text string, rows [][]Button) error {
	kb := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		kb = append(kb, tgbotapi.NewInlineKeyboardRow(r...))
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kb...)
	_, err := t.api.Send(msg)
	return err
}

// Edit goes through Request: editMessageText may answer with a bare true.
func (t *Telegram) Edit(chatID int64, messageID int, text string) error {
	_, err := t.api.Request(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

func (t *Telegram) AnswerCallback(callbackID string) error {
	_, err := t.api.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

// DropPending discards updates queued while the bot was offline.
func (t *Telegram) DropPending() error {
	_, err := t.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
	return err
}

// Updates starts long polling.
func (t *Telegram) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return t.api.GetUpdatesChan(u)
}

func (t *Telegram) Stop() { t.api.StopReceivingUpdates() }
