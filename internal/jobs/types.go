package jobs

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

// TaskEnqueue is the asynq task type carrying an EnqueueRequest when the bot
// dispatches through the queue relay instead of calling the encoder directly.
const TaskEnqueue = "encode:enqueue"

type Resolution string

const (
	Res1080 Resolution = "1080"
	Res720  Resolution = "720"
	Res480  Resolution = "480"
	Res360  Resolution = "360"
)

// Resolutions lists the menu tiers, highest first.
var Resolutions = []Resolution{Res1080, Res720, Res480, Res360}

func (r Resolution) Valid() bool {
	for _, x := range Resolutions {
		if r == x {
			return true
		}
	}
	return false
}

// Label is the button caption, e.g. "720p".
func (r Resolution) Label() string { return string(r) + "p" }

// Record is a pending encode request waiting for a resolution choice.
type Record struct {
	JobID     string    `json:"job_id"`
	FileURL   string    `json:"file_url"`  // direct Telegram download link, time-limited
	ChatID    int64     `json:"chat_id"`
	FileName  string    `json:"file_name"` // optional, logs only
	CreatedAt time.Time `json:"created_at"`
}

// NewID returns a fresh job id. ULIDs from the default entropy source are
// monotonic within a millisecond, so ids minted in a tight loop stay distinct.
func NewID() string {
	return ulid.Make().String()
}

// EnqueueRequest is the body POSTed to {ENCODER_URL}/enqueue.
type EnqueueRequest struct {
	JobID      string `json:"job_id"`
	FileURL    string `json:"file_url"`
	ChatID     int64  `json:"chat_id"`
	Resolution string `json:"resolution"`
	Secret     string `json:"secret"`
}

// NewEnqueueRequest builds the handoff payload for rec at resolution res.
func NewEnqueueRequest(rec Record, res Resolution, secret string) EnqueueRequest {
	return EnqueueRequest{
		JobID:      rec.JobID,
		FileURL:    rec.FileURL,
		ChatID:     rec.ChatID,
		Resolution: string(res),
		Secret:     secret,
	}
}

// EnqueueResult is what a 200 from the encoder tells us.
type EnqueueResult struct {
	Position Position `json:"position"`
}

// Position is the encoder's reported queue slot, kept as text. Strings are
// taken verbatim; numbers are normalised (3.0 becomes "3") and zero is dropped.
// Empty means unknown.
type Position string

func (p *Position) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Position(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	if f == 0 {
		*p = ""
		return nil
	}
	*p = Position(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// String renders the position for users; an empty position reads as "unknown".
func (p Position) String() string {
	if p == "" {
		return "unknown"
	}
	return string(p)
}

// PositionOf converts a queue depth into a Position.
func PositionOf(n int) Position {
	if n <= 0 {
		return ""
	}
	return Position(strconv.Itoa(n))
}
