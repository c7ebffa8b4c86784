package encoder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
)

func sampleReq() jobs.EnqueueRequest {
	return jobs.EnqueueRequest{JobID: "J1", FileURL: "https://api.telegram.org/file/x", ChatID: 42, Resolution: "720", Secret: "s"}
}

func TestHTTP_PostsPayloadAndReadsPosition(t *testing.T) {
	var got jobs.EnqueueRequest
	var gotPath, gotCT, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"position":3}`))
	}))
	defer srv.Close()

	c := NewHTTP(srv.URL+"/", time.Second)
	res, err := c.Enqueue(context.Background(), sampleReq())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Position.String() != "3" {
		t.Fatalf("expected position 3, got %s", res.Position)
	}
	if gotPath != "/enqueue" || gotCT != "application/json" || gotReqID == "" {
		t.Fatalf("unexpected request: path=%q ct=%q reqid=%q", gotPath, gotCT, gotReqID)
	}
	if got != sampleReq() {
		t.Fatalf("payload mismatch: %+v", got)
	}
}

func TestHTTP_NonOKIsRejected(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusBadRequest, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("nope\n"))
		}))
		_, err := NewHTTP(srv.URL, time.Second).Enqueue(context.Background(), sampleReq())
		srv.Close()

		if !errors.Is(err, ErrRejected) {
			t.Fatalf("status %d: expected ErrRejected, got %v", status, err)
		}
		var rej *RejectedError
		if !errors.As(err, &rej) || rej.Status != status {
			t.Fatalf("status %d: expected RejectedError with status, got %v", status, err)
		}
		if errors.Is(err, ErrUnreachable) {
			t.Fatalf("rejection must not read as unreachable")
		}
	}
}

func TestHTTP_TimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTP(srv.URL, 50*time.Millisecond).Enqueue(context.Background(), sampleReq())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable on timeout, got %v", err)
	}
}

func TestHTTP_ConnectionRefusedIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTP(url, time.Second).Enqueue(context.Background(), sampleReq())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestHTTP_UndecodableOKBodyIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("queued"))
	}))
	defer srv.Close()

	res, err := NewHTTP(srv.URL, time.Second).Enqueue(context.Background(), sampleReq())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if res.Position.String() != "unknown" {
		t.Fatalf("expected unknown position, got %s", res.Position)
	}
}

func TestNewTask_CarriesPayload(t *testing.T) {
	task, err := NewTask(sampleReq())
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != jobs.TaskEnqueue {
		t.Fatalf("unexpected type %q", task.Type())
	}
	var got jobs.EnqueueRequest
	if err := json.Unmarshal(task.Payload(), &got); err != nil || got != sampleReq() {
		t.Fatalf("payload mismatch: %+v err=%v", got, err)
	}
}
