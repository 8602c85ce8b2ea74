// Package tailer provides append-only tailing of a single EverQuest log file.
package tailer

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nxadm/tail"
)

// tailerErrBuffer is the buffer size for the error channel.
// A small buffer prevents error loss during brief moments when the consumer
// is busy processing lines.
const tailerErrBuffer = 16

// Config holds configuration for tailing.
type Config struct {
	// FromStart reads from the beginning of the file instead of treating
	// the current length as the baseline.
	FromStart bool

	// Poll uses stat-based polling instead of filesystem notifications.
	// EverQuest logs frequently live on network shares or under Wine,
	// where inotify is unreliable.
	Poll bool
}

// DefaultConfig returns the default configuration for EverQuest logs:
// baseline at the current end of file, polled for growth. Truncation is
// detected by the poller and reading restarts from offset zero; a file
// that disappears is a session-fatal error rather than a wait-for-recreate.
func DefaultConfig() Config {
	return Config{
		FromStart: false,
		Poll:      true,
	}
}

// Tailer delivers newly appended log lines from a growing file.
type Tailer struct {
	t      *tail.Tail
	cancel context.CancelFunc
	lines  chan string
	errors chan error
	doneCh chan struct{}

	mu      sync.Mutex
	stopped bool
}

// New creates a Tailer for the given file. The file must exist: selecting
// a missing file is a user input error surfaced before monitoring starts.
// The provided context controls the tailer's lifecycle.
func New(ctx context.Context, filepath string, cfg Config) (*Tailer, error) {
	location := &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	if cfg.FromStart {
		location = &tail.SeekInfo{Offset: 0, Whence: io.SeekStart}
	}

	t, err := tail.TailFile(filepath, tail.Config{
		Follow:    true,
		ReOpen:    false,
		Poll:      cfg.Poll,
		MustExist: true,
		Location:  location,
	})
	if err != nil {
		return nil, fmt.Errorf("opening tail: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	tailer := &Tailer{
		t:      t,
		cancel: cancel,
		lines:  make(chan string),
		errors: make(chan error, tailerErrBuffer),
		doneCh: make(chan struct{}),
	}

	go tailer.run(ctx)

	return tailer, nil
}

// Lines returns the channel that receives appended log lines. The channel
// closes when the tailer stops, including when the file disappears.
func (t *Tailer) Lines() <-chan string {
	return t.lines
}

// Errors returns the channel that receives tailing errors. Sends are
// non-blocking; if the buffer is full, errors are dropped.
func (t *Tailer) Errors() <-chan error {
	return t.errors
}

// Offset reports the byte position up to which the file has been consumed.
// Once every complete appended line has been delivered, the offset equals
// the file length.
func (t *Tailer) Offset() (int64, error) {
	return t.t.Tell()
}

// Stop stops tailing and closes all channels. Safe to call multiple times
// and from outside the delivery loop at any moment; a stop request takes
// effect within one poll cycle.
func (t *Tailer) Stop() error {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return nil
	}
	t.stopped = true
	t.mu.Unlock()

	t.cancel()
	<-t.doneCh // Wait for run() to finish
	return t.t.Stop()
}

func (t *Tailer) run(ctx context.Context) {
	defer close(t.doneCh)
	defer close(t.lines)
	defer close(t.errors)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.t.Lines:
			if !ok {
				// Underlying tail finished: either Stop was called or the
				// file is gone. Surface the terminal error, if any.
				if err := t.t.Err(); err != nil {
					select {
					case t.errors <- fmt.Errorf("tail: %w", err):
					default:
					}
				}
				return
			}
			if line.Err != nil {
				select {
				case t.errors <- fmt.Errorf("tail: %w", line.Err):
				case <-ctx.Done():
					return
				default:
					// Drop only if the buffer is full.
				}
				continue
			}
			select {
			case t.lines <- line.Text:
			case <-ctx.Done():
				return
			}
		}
	}
}
