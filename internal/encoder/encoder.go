// Package encoder hands jobs to the external encoding service.
package encoder

import (
	"context"
	"errors"
	"fmt"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
)

// Encoder accepts one job per call. Implementations never retry.
type Encoder interface {
	Enqueue(ctx context.Context, req jobs.EnqueueRequest) (jobs.EnqueueResult, error)
}

var (
	// ErrUnreachable covers transport failures: DNS, refused connections, timeouts.
	ErrUnreachable = errors.New("encoder unreachable")
	// ErrRejected means the encoder answered but did not accept the job.
	ErrRejected = errors.New("encoder rejected job")
)

// RejectedError carries the response that caused a rejection.
type RejectedError struct {
	Status int    // HTTP status, 0 for queue-side refusals
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", ErrRejected, e.Status)
	}
	return fmt.Sprintf("%s: %s", ErrRejected, e.Reason)
}

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }
