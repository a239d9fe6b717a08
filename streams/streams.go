// Package streams provides the user-facing output targets of schemaconf: load
// notices ("config: loaded from ...") and check reports. Streams can point at
// the terminal, be discarded, be captured for inspection, or be forwarded to a
// structured logger (zerolog or slog) one record per line.
package streams

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// IOStreams is the contract accepted by config.WithStreams. Interfaces are
// satisfied implicitly, so callers may bring their own implementation.
type IOStreams interface {
	In() io.Reader
	Out() io.Writer
	ErrOut() io.Writer
}

// Basic forwards to the io targets it was built with.
type Basic struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (s Basic) In() io.Reader     { return s.in }
func (s Basic) Out() io.Writer    { return s.out }
func (s Basic) ErrOut() io.Writer { return s.errOut }

// Default returns streams backed by os.Stdin, os.Stdout and os.Stderr.
func Default() Basic {
	return Basic{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
}

// Writers returns streams writing Out to out and ErrOut to errOut. In is os.Stdin.
func Writers(out, errOut io.Writer) Basic {
	return Basic{in: os.Stdin, out: out, errOut: errOut}
}

// Discard drops all output.
func Discard() Basic {
	return Writers(io.Discard, io.Discard)
}

// Capture records output in memory. Writes are serialized, so a Capture may
// be shared by concurrent loads.
type Capture struct {
	out    syncBuffer
	errOut syncBuffer
}

// NewCapture returns an empty Capture.
func NewCapture() *Capture { return &Capture{} }

func (c *Capture) In() io.Reader     { return strings.NewReader("") }
func (c *Capture) Out() io.Writer    { return &c.out }
func (c *Capture) ErrOut() io.Writer { return &c.errOut }

// Strings returns what was written to Out and ErrOut so far.
func (c *Capture) Strings() (out, errOut string) {
	return c.out.String(), c.errOut.String()
}

// Reset clears both buffers.
func (c *Capture) Reset() {
	c.out.Reset()
	c.errOut.Reset()
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func (s *syncBuffer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Reset()
}

// lineWriter turns each written line into one call of emit.
type lineWriter func(msg string)

func (w lineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			w(line)
		}
	}
	return len(p), nil
}

// Zerolog forwards Out lines to l at the info level and ErrOut lines at the
// error level.
func Zerolog(l zerolog.Logger) Basic {
	return ZerologLevels(l, zerolog.InfoLevel, zerolog.ErrorLevel)
}

// ZerologLevels is Zerolog with explicit levels.
func ZerologLevels(l zerolog.Logger, out, errOut zerolog.Level) Basic {
	return Basic{
		in:     os.Stdin,
		out:    lineWriter(func(msg string) { l.WithLevel(out).Msg(msg) }),
		errOut: lineWriter(func(msg string) { l.WithLevel(errOut).Msg(msg) }),
	}
}

// Slog forwards Out lines to l at level out and ErrOut lines at level errOut.
func Slog(l *slog.Logger, out, errOut slog.Level) Basic {
	return Basic{
		in:     os.Stdin,
		out:    lineWriter(func(msg string) { l.Log(context.Background(), out, msg) }),
		errOut: lineWriter(func(msg string) { l.Log(context.Background(), errOut, msg) }),
	}
}
