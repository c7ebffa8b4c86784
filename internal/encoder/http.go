package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
	"github.com/wapuda/tg-encoder-bot/internal/logx"
)

const maxBodyLog = 4 << 10

// HTTPClient POSTs jobs to {base}/enqueue.
type HTTPClient struct {
	base string
	hc   *http.Client
}

func NewHTTP(base string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Enqueue(ctx context.Context, req jobs.EnqueueRequest) (jobs.EnqueueResult, error) {
	var res jobs.EnqueueResult

	body, err := json.Marshal(req)
	if err != nil {
		return res, err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/enqueue", bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	reqID := uuid.NewString()
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("X-Request-Id", reqID)

	l := logx.FromCtx(ctx).With().Str("req_id", reqID).Str("resolution", req.Resolution).Logger()
	start := time.Now()

	resp, err := c.hc.Do(hreq)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	l.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("encoder responded")

	if resp.StatusCode != http.StatusOK {
		logx.NewLineWriter(l, zerolog.WarnLevel, "encoder error body").
			Pipe(io.LimitReader(resp.Body, maxBodyLog))
		return res, &RejectedError{Status: resp.StatusCode}
	}

	// A 200 with an unreadable body is still an accepted job.
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyLog)).Decode(&res); err != nil && err != io.EOF {
		l.Warn().Err(err).Msg("encoder 200 body not decodable; position unknown")
		res = jobs.EnqueueResult{}
	}
	return res, nil
}
