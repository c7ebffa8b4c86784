package logx

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// LineWriter turns stream output into per-line zerolog events at a given level.
type LineWriter struct {
	logger zerolog.Logger
	level  zerolog.Level
	msg    string
}

// NewLineWriter logs each line under the "line" field with message msg.
func NewLineWriter(l zerolog.Logger, level zerolog.Level, msg string) *LineWriter {
	return &LineWriter{logger: l, level: level, msg: msg}
}

// Pipe drains r, skipping blank lines. It returns the number of lines logged.
func (lw *LineWriter) Pipe(r io.Reader) int {
	n := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lw.logger.WithLevel(lw.level).Str("line", line).Msg(lw.msg)
		n++
	}
	return n
}
