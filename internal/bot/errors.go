package bot

import (
	"errors"

	"github.com/wapuda/tg-encoder-bot/internal/encoder"
)

// Handler failures. Each one is already reported to the user when returned.
var (
	ErrMediaMissing         = errors.New("no video or document attached")
	ErrFileLink             = errors.New("file link resolution failed")
	ErrJobExpired           = errors.New("job not found or expired")
	ErrEncoderMisconfigured = errors.New("encoder endpoint not configured")
	ErrEncoderUnreachable   = encoder.ErrUnreachable
	ErrEncoderRejected      = encoder.ErrRejected
	ErrAlreadyClaimed       = errors.New("job already being dispatched")
)

const (
	msgStart        = "Send a video (mp4 or mkv) as video or document. You will be asked for resolution."
	msgUnknownCmd   = "Unknown command. Send a video to start."
	msgMediaMissing = "Please send a video file (as Video or Document)."
	msgFileLink     = "Failed to read file. Try sending again."
	msgPendingErr   = "Internal error (pending). Try again."
	msgMenu         = "Choose output resolution:"

	msgInvalid       = "Invalid action."
	msgExpired       = "Job not found or expired. Please resend the file."
	msgMisconfigured = "Encoder URL not configured. Set ENCODER_URL secret and restart bot."
	msgStoreErr      = "Internal error (store). Try again."
	msgDuplicate     = "This job is already being dispatched."
	msgQueuedFmt     = "Queued for %sp encoding..."
	msgEnqueuedFmt   = "✅ Job queued (position %s). You will receive progress from the encoder."
	msgRejected      = "❌ Failed to enqueue job on encoder."
	msgUnreachable   = "❌ Could not reach encoder. Make sure ENCODER_URL is correct."
	msgRetryMenu     = "Pick a resolution to try again:"
	msgResendFile    = "Please resend the file to try again."
)
