package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
)

type sent struct {
	chatID int64
	text   string
}

type edit struct {
	chatID    int64
	messageID int
	text      string
}

type menu struct {
	chatID int64
	text   string
	rows   [][]Button
}

type fakeMessenger struct {
	mu       sync.Mutex
	fileURL  string
	fileErr  error
	sends    []sent
	edits    []edit
	menus    []menu
	answered []string
}

func (f *fakeMessenger) FileURL(fileID string) (string, error) {
	if f.fileErr != nil {
		return "", f.fileErr
	}
	if f.fileURL != "" {
		return f.fileURL, nil
	}
	return "https://api.telegram.org/file/bot/" + fileID, nil
}

func (f *fakeMessenger) Send(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sent{chatID, text})
	return nil
}

func (f *fakeMessenger) SendMenu(chatID int64, text string, rows [][]Button) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menus = append(f.menus, menu{chatID, text, rows})
	return nil
}

func (f *fakeMessenger) Edit(chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit{chatID, messageID, text})
	return nil
}

func (f *fakeMessenger) AnswerCallback(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, id)
	return nil
}

func (f *fakeMessenger) sentTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sends))
	for _, s := range f.sends {
		out = append(out, s.text)
	}
	return out
}

func (f *fakeMessenger) editTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.edits))
	for _, e := range f.edits {
		out = append(out, e.text)
	}
	return out
}

func (f *fakeMessenger) lastMenu() (menu, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.menus) == 0 {
		return menu{}, false
	}
	return f.menus[len(f.menus)-1], true
}

func containsText(texts []string, sub string) bool {
	for _, t := range texts {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// stubEncoder records calls and returns a fixed result.
type stubEncoder struct {
	mu    sync.Mutex
	calls []jobs.EnqueueRequest
	res   jobs.EnqueueResult
	err   error
	gate  chan struct{} // if set, Enqueue blocks until closed
}

func (s *stubEncoder) Enqueue(_ context.Context, req jobs.EnqueueRequest) (jobs.EnqueueResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return s.res, s.err
}

func (s *stubEncoder) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
