package eqwho

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/eqwho/eqwho-go/internal/parser"
	"github.com/eqwho/eqwho-go/internal/tailer"
)

// MonitorOption configures Monitor behavior.
type MonitorOption func(*monitorConfig)

type monitorConfig struct {
	fromStart bool
	logger    *slog.Logger
}

// WithMonitorLogger sets the slog logger for debug output.
// If nil (default), logging is disabled.
func WithMonitorLogger(logger *slog.Logger) MonitorOption {
	return func(c *monitorConfig) {
		c.logger = logger
	}
}

// WithMonitorFromStart reads the file from the beginning instead of
// treating the current length as the baseline.
func WithMonitorFromStart() MonitorOption {
	return func(c *monitorConfig) {
		c.fromStart = true
	}
}

// Monitor watches one growing log file and emits the roster snapshots
// assembled from newly appended lines. It is the producing half of the
// capture pipeline: duplicate suppression happens at the consuming side
// (see Session), which funnels all store mutation through one goroutine.
//
// A Monitor is single-use: Start may be called once, and a later
// monitoring session constructs a fresh Monitor, recomputing its baseline
// from the current file length rather than resuming.
type Monitor struct {
	path string
	cfg  monitorConfig

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
	doneCh  chan struct{}
	tl      *tailer.Tailer
}

// NewMonitor creates a monitor for the given file. Validates that the
// file exists (a missing file is a user input error, surfaced before any
// state changes) but starts no goroutines.
func NewMonitor(path string, opts ...MonitorOption) (*Monitor, error) {
	if path == "" {
		return nil, ErrNoFileSelected
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	var cfg monitorConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Monitor{path: path, cfg: cfg}, nil
}

// Start begins watching and returns the snapshot and error channels. Both
// channels close when ctx is cancelled, Close is called, or the file
// disappears (a session-fatal error, reported on the error channel before
// closing). Start can only be called once per Monitor.
func (m *Monitor) Start(ctx context.Context) (<-chan Snapshot, <-chan error, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, nil, ErrAlreadyMonitoring
	}
	if m.started {
		m.mu.Unlock()
		return nil, nil, ErrAlreadyMonitoring
	}
	m.started = true

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.doneCh = make(chan struct{})

	cfg := tailer.DefaultConfig()
	cfg.FromStart = m.cfg.fromStart

	tl, err := tailer.New(ctx, m.path, cfg)
	if err != nil {
		m.started = false
		m.cancel = nil
		m.doneCh = nil
		m.mu.Unlock()
		cancel()
		return nil, nil, fmt.Errorf("starting tail: %w", err)
	}
	m.tl = tl
	m.mu.Unlock()

	snapCh := make(chan Snapshot)
	errCh := make(chan error)

	go m.run(ctx, snapCh, errCh)

	return snapCh, errCh, nil
}

// Offset reports the byte position up to which the monitored file has been
// consumed. Zero until Start has been called.
func (m *Monitor) Offset() (int64, error) {
	m.mu.Lock()
	tl := m.tl
	m.mu.Unlock()

	if tl == nil {
		return 0, nil
	}
	return tl.Offset()
}

// Close stops the monitor and releases resources. Safe to call multiple
// times, from any goroutine, at any point in the polling cycle; the
// accumulated store contents are unaffected. Cancellation is cooperative:
// reads cease within one poll cycle.
func (m *Monitor) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true

	if m.cancel != nil {
		m.cancel()
	}
	doneCh := m.doneCh
	tl := m.tl
	m.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	if tl != nil {
		return tl.Stop()
	}
	return nil
}

func (m *Monitor) run(ctx context.Context, snapCh chan<- Snapshot, errCh chan<- error) {
	defer close(m.doneCh)
	defer close(snapCh)
	defer close(errCh)

	logger := m.cfg.logger

	// One assembler for the whole session: a snapshot split across poll
	// deliveries is still captured once.
	var asm parser.Assembler

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-m.tl.Lines():
			if !ok {
				// Tail finished on its own: the file is gone or truncated
				// beyond recovery. Drain the terminal error, if any.
				select {
				case err, ok := <-m.tl.Errors():
					if ok && err != nil {
						sendError(ctx, errCh, fmt.Errorf("log file lost: %w", err))
					}
				default:
				}
				return
			}

			snap, done := asm.Feed(line)
			if !done {
				continue
			}
			if logger != nil {
				logger.Debug("captured roster snapshot",
					"location", snap.Location,
					"players", snap.PlayerCount)
			}
			select {
			case snapCh <- snap:
			case <-ctx.Done():
				return
			}
		case err, ok := <-m.tl.Errors():
			if !ok {
				return
			}
			sendError(ctx, errCh, err)
		}
	}
}

// sendError delivers an error unless the context is done.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	select {
	case errCh <- err:
	case <-ctx.Done():
	}
}
