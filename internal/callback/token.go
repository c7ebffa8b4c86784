// Package callback converts resolution choices to and from Telegram callback_data.
package callback

import (
	"errors"
	"strings"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
)

const (
	ActionEncode = "enc"
	Delim        = ":"

	// MaxDataLen is Telegram's limit on callback_data, in bytes.
	MaxDataLen = 64
)

var ErrInvalidToken = errors.New("invalid callback token")

// Token is the decoded form of a menu button.
type Token struct {
	Action     string
	JobID      string
	Resolution jobs.Resolution
}

// New returns an encode-action token.
func New(jobID string, res jobs.Resolution) Token {
	return Token{Action: ActionEncode, JobID: jobID, Resolution: res}
}

// Encode renders t as "enc:<job_id>:<resolution>".
func Encode(t Token) string {
	action := t.Action
	if action == "" {
		action = ActionEncode
	}
	return action + Delim + t.JobID + Delim + string(t.Resolution)
}

// Decode parses a button payload. Only the prefix and the part count are
// checked; the resolution is passed through as-is.
func Decode(data string) (Token, error) {
	if !strings.HasPrefix(data, ActionEncode+Delim) {
		return Token{}, ErrInvalidToken
	}
	parts := strings.Split(data, Delim)
	if len(parts) != 3 {
		return Token{}, ErrInvalidToken
	}
	return Token{Action: parts[0], JobID: parts[1], Resolution: jobs.Resolution(parts[2])}, nil
}

// Fits reports whether data is small enough for callback_data.
func Fits(data string) bool { return len(data) <= MaxDataLen }
