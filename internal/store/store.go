package store

import (
	"context"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
)

// Store holds pending job records keyed by job id.
type Store interface {
	// Put inserts rec, overwriting any record with the same id.
	Put(ctx context.Context, id string, rec jobs.Record) error
	// Get returns the record and true, or false if there is none.
	Get(ctx context.Context, id string) (jobs.Record, bool, error)
	// Delete removes the record; missing ids are a no-op.
	Delete(ctx context.Context, id string) error
	// Claim atomically removes and returns the record. Of concurrent callers
	// for the same id, exactly one gets ok == true.
	Claim(ctx context.Context, id string) (jobs.Record, bool, error)
}
