package eqwho

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/eqwho/eqwho-go/internal/settings"
)

// SessionOption configures Session behavior.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	settingsPath string
	logger       *slog.Logger
}

// WithSettingsPath overrides the preference file location. The default is
// settings.DefaultPath (~/.config/eqwho/settings.toml or the platform
// equivalent).
func WithSettingsPath(path string) SessionOption {
	return func(c *sessionConfig) {
		c.settingsPath = path
	}
}

// WithLogger sets the slog logger for debug output.
// If nil (default), logging is disabled.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// Session is the application session: it owns the snapshot store, the
// active monitor, and the last-selected-file preference. There are no
// package-level singletons; a presentation layer holds a *Session and
// calls its operations.
//
// The store has a single logical writer: the session's consumer goroutine
// funnels every monitor-produced snapshot through AddIfNew before
// forwarding accepted ones to the caller.
type Session struct {
	cfg   sessionConfig
	store *Store

	mu       sync.Mutex
	logFile  string
	monitor  *Monitor
	starting bool // reserves the monitor slot while a Start is in flight
}

// NewSession creates a session and loads the persisted preference. A
// missing or corrupt settings file, or a remembered log file that no
// longer exists, degrades to "no file selected" rather than an error.
func NewSession(opts ...SessionOption) (*Session, error) {
	var cfg sessionConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.settingsPath == "" {
		// No usable config dir just disables persistence.
		cfg.settingsPath, _ = settings.DefaultPath()
	}

	s := &Session{cfg: cfg, store: NewStore()}

	if cfg.settingsPath != "" {
		saved := settings.Load(cfg.settingsPath)
		if saved.LastLogFile != "" {
			if _, err := os.Stat(saved.LastLogFile); err == nil {
				s.logFile = saved.LastLogFile
			}
		}
	}

	return s, nil
}

// SelectFile chooses the log file to monitor and persists the preference.
// A missing file is rejected with no state change.
func (s *Session) SelectFile(path string) error {
	if path == "" {
		return ErrNoFileSelected
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	s.mu.Lock()
	s.logFile = path
	s.mu.Unlock()

	s.persistSettings()
	return nil
}

// File returns the currently selected log file, or "".
func (s *Session) File() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logFile
}

// FileInfo returns a short human-readable description of the selected
// file, e.g. "eqlog_Accosted_project1999.txt (1.2 MB)".
func (s *Session) FileInfo() (string, error) {
	path := s.File()
	if path == "" {
		return "", ErrNoFileSelected
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return fmt.Sprintf("%s (%s)", filepath.Base(path), FormatFileSize(info.Size())), nil
}

// StartMonitoring begins watching the selected file for new /who results.
// The baseline is the file's current length: only content appended after
// this call is captured. Accepted (non-duplicate) snapshots are stored and
// forwarded on the returned channel; duplicates are silently dropped.
// Both channels close when monitoring ends, including when the file
// disappears mid-session (reported on the error channel; the store is
// left intact).
func (s *Session) StartMonitoring(ctx context.Context) (<-chan Snapshot, <-chan error, error) {
	// Reserve the monitor slot before releasing the lock: a concurrent
	// StartMonitoring must see ErrAlreadyMonitoring rather than racing this
	// one and orphaning a live monitor.
	s.mu.Lock()
	if s.monitor != nil || s.starting {
		s.mu.Unlock()
		return nil, nil, ErrAlreadyMonitoring
	}
	path := s.logFile
	if path == "" {
		s.mu.Unlock()
		return nil, nil, ErrNoFileSelected
	}
	s.starting = true
	s.mu.Unlock()

	mon, err := NewMonitor(path, WithMonitorLogger(s.cfg.logger))
	if err != nil {
		s.releaseStarting()
		return nil, nil, err
	}

	monSnaps, monErrs, err := mon.Start(ctx)
	if err != nil {
		s.releaseStarting()
		return nil, nil, err
	}

	s.mu.Lock()
	s.monitor = mon
	s.starting = false
	s.mu.Unlock()

	out := make(chan Snapshot)
	errs := make(chan error)
	go s.consume(ctx, mon, monSnaps, monErrs, out, errs)

	return out, errs, nil
}

// releaseStarting frees the monitor slot after a failed start.
func (s *Session) releaseStarting() {
	s.mu.Lock()
	s.starting = false
	s.mu.Unlock()
}

// consume is the single store writer for the live path.
func (s *Session) consume(ctx context.Context, mon *Monitor,
	in <-chan Snapshot, inErrs <-chan error,
	out chan<- Snapshot, errs chan<- error) {

	defer close(out)
	defer close(errs)
	defer func() {
		s.mu.Lock()
		if s.monitor == mon {
			s.monitor = nil
		}
		s.mu.Unlock()
	}()

	for in != nil || inErrs != nil {
		select {
		case snap, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			if !s.store.AddIfNew(snap) {
				if s.cfg.logger != nil {
					s.cfg.logger.Debug("duplicate snapshot suppressed",
						"label", snap.DisplayLabel)
				}
				continue
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		case err, ok := <-inErrs:
			if !ok {
				inErrs = nil
				continue
			}
			select {
			case errs <- err:
			case <-ctx.Done():
				return
			}
		}
	}
}

// StopMonitoring stops the active monitoring session. Safe to call at any
// time, including when idle; cancellation is cooperative and takes effect
// within one poll cycle. Accumulated snapshots are kept, and a later
// StartMonitoring computes a fresh baseline rather than resuming.
func (s *Session) StopMonitoring() {
	s.mu.Lock()
	mon := s.monitor
	s.monitor = nil
	s.mu.Unlock()

	if mon != nil {
		_ = mon.Close()
	}
}

// Monitoring reports whether a live monitoring session is active.
func (s *Session) Monitoring() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monitor != nil
}

// LoadHistorical replaces the store's contents with the snapshots found in
// the selected file whose timestamps fall within the last minutesBack
// minutes, sorted ascending by parsed time. Returns the number loaded.
func (s *Session) LoadHistorical(ctx context.Context, minutesBack int) (int, error) {
	path := s.File()
	if path == "" {
		return 0, ErrNoFileSelected
	}
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	cutoff := time.Now().Add(-time.Duration(minutesBack) * time.Minute)
	snaps, err := ScanSince(ctx, path, cutoff)
	if err != nil {
		return 0, err
	}

	s.store.ReplaceAll(snaps)
	return len(snaps), nil
}

// ClearAll removes every captured snapshot.
func (s *Session) ClearAll() {
	s.store.Clear()
}

// Snapshots returns the captured snapshots in insertion order, oldest
// first. Reverse-chronological display is the presentation layer's job.
func (s *Session) Snapshots() []Snapshot {
	return s.store.All()
}

// Count returns the number of captured snapshots.
func (s *Session) Count() int {
	return s.store.Len()
}

// Export renders a snapshot in the tab-separated roster format. Returns
// ErrNoEntries when the snapshot contains no parseable player rows — an
// empty-result condition the caller can report as "nothing to export".
func (s *Session) Export(snap Snapshot) (string, error) {
	rows := ExportRows(snap)
	if rows == "" {
		return "", ErrNoEntries
	}
	return rows, nil
}

// RawText returns the snapshot's unmodified text, for clipboard use.
func (s *Session) RawText(snap Snapshot) string {
	return snap.RawText
}

var (
	filenameStripRe    = regexp.MustCompile(`[^\w\s-]`)
	filenameCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// SaveRecord returns a suggested filename and the file content for saving
// a snapshot, e.g. ("who_Kael_Drakkal_Oct_16.txt", "[<ts>]\n<raw text>").
// Writing the file is the caller's job.
func (s *Session) SaveRecord(snap Snapshot) (filename, content string) {
	location := filenameStripRe.ReplaceAllString(snap.Location, "")
	location = filenameCollapseRe.ReplaceAllString(strings.TrimSpace(location), "_")
	if location == "" {
		location = "unknown_location"
	}

	datePart := time.Now().Format("Jan_2")
	if parts := strings.Fields(snap.Timestamp); len(parts) >= 3 {
		datePart = parts[1] + "_" + parts[2]
	}

	filename = fmt.Sprintf("who_%s_%s.txt", location, datePart)
	content = "[" + snap.Timestamp + "]\n" + snap.RawText
	return filename, content
}

// Close stops monitoring and persists the preference file.
func (s *Session) Close() error {
	s.StopMonitoring()
	s.persistSettings()
	return nil
}

// persistSettings writes the preference file. Failures are downgraded to a
// log entry: preference persistence is never worth failing an operation.
func (s *Session) persistSettings() {
	if s.cfg.settingsPath == "" {
		return
	}
	err := settings.Save(s.cfg.settingsPath, settings.Settings{LastLogFile: s.File()})
	if err != nil && s.cfg.logger != nil {
		s.cfg.logger.Warn("saving settings failed", "error", err)
	}
}
