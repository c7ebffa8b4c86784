package logx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_FILE_COMPRESS", "")

	c := FromEnv("bot")
	if c.Service != "bot" || c.Level != "info" || c.Format != "json" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if !c.FileCompress || c.FileMaxSizeMB != 50 {
		t.Fatalf("unexpected file defaults: %+v", c)
	}
}

func TestSetup_TagsServiceAndFiltersLevel(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	setup(Config{Service: "bot", Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"svc":"bot"`) || !strings.Contains(out, "shown") {
		t.Fatalf("expected warn line tagged with svc, got %s", out)
	}
}

func TestFromCtx_AttachesJobFields(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	ctx := WithJob(context.Background(), "J1", 42)
	l := FromCtx(ctx)
	l.Info().Msg("x")

	out := buf.String()
	if !strings.Contains(out, `"job_id":"J1"`) || !strings.Contains(out, `"chat_id":42`) {
		t.Fatalf("missing ctx fields: %s", out)
	}
}

func TestLineWriter_Pipe(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(zerolog.New(&buf), zerolog.WarnLevel, "encoder body")

	n := lw.Pipe(strings.NewReader("bad secret\n\n  queue full  \n"))
	if n != 2 {
		t.Fatalf("expected 2 lines, got %d", n)
	}
	out := buf.String()
	if !strings.Contains(out, `"line":"bad secret"`) || !strings.Contains(out, `"line":"queue full"`) {
		t.Fatalf("unexpected output: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("expected warn level: %s", out)
	}
}
