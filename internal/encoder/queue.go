package encoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
)

// QueueClient drops jobs on an asynq queue for cmd/relay to forward.
type QueueClient struct {
	client *asynq.Client
	insp   *asynq.Inspector
	queue  string
}

func NewQueue(opt asynq.RedisConnOpt, queue string) *QueueClient {
	return &QueueClient{
		client: asynq.NewClient(opt),
		insp:   asynq.NewInspector(opt),
		queue:  queue,
	}
}

// NewTask wraps req as an encode:enqueue task.
func NewTask(req jobs.EnqueueRequest) (*asynq.Task, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(jobs.TaskEnqueue, b), nil
}

func (q *QueueClient) Enqueue(ctx context.Context, req jobs.EnqueueRequest) (jobs.EnqueueResult, error) {
	var res jobs.EnqueueResult

	task, err := NewTask(req)
	if err != nil {
		return res, err
	}
	// MaxRetry(0): a failed relay attempt is final, same as the HTTP path.
	if _, err := q.client.EnqueueContext(ctx, task, asynq.Queue(q.queue), asynq.MaxRetry(0)); err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
			return res, &RejectedError{Reason: err.Error()}
		}
		return res, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	info, err := q.insp.GetQueueInfo(q.queue)
	if err != nil {
		log.Debug().Err(err).Str("queue", q.queue).Msg("queue info unavailable")
		return res, nil
	}
	res.Position = jobs.PositionOf(info.Pending)
	return res, nil
}

func (q *QueueClient) Close() error {
	return errors.Join(q.client.Close(), q.insp.Close())
}
