package bot

// Button is one inline-keyboard key; Data is the opaque callback payload.
type Button struct {
	Text string
	Data string
}

// Messenger is what the handlers need from the chat platform.
type Messenger interface {
	// FileURL resolves an attachment to a direct, time-limited download link.
	FileURL(fileID string) (string, error)
	Send(chatID int64, text string) error
	// SendMenu sends text with an inline keyboard, one slice per row.
	SendMenu(chatID int64, text string, rows [][]Button) error
	Edit(chatID int64, messageID int, text string) error
	AnswerCallback(callbackID string) error
}
