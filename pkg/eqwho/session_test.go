package eqwho_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eqwho/eqwho-go/pkg/eqwho"
)

func newTestSession(t *testing.T, opts ...eqwho.SessionOption) *eqwho.Session {
	t.Helper()
	opts = append(
		[]eqwho.SessionOption{eqwho.WithSettingsPath(filepath.Join(t.TempDir(), "settings.toml"))},
		opts...)
	session, err := eqwho.NewSession(opts...)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestSession_SelectFile(t *testing.T) {
	session := newTestSession(t)

	if err := session.SelectFile(""); !errors.Is(err, eqwho.ErrNoFileSelected) {
		t.Errorf("SelectFile(\"\") error = %v, want ErrNoFileSelected", err)
	}
	if err := session.SelectFile("/nonexistent/eqlog.txt"); !errors.Is(err, eqwho.ErrFileNotFound) {
		t.Errorf("SelectFile(missing) error = %v, want ErrFileNotFound", err)
	}
	if session.File() != "" {
		t.Error("failed SelectFile changed session state")
	}

	path := writeLog(t, "")
	if err := session.SelectFile(path); err != nil {
		t.Fatalf("SelectFile() error = %v", err)
	}
	if session.File() != path {
		t.Errorf("File() = %q, want %q", session.File(), path)
	}
}

func TestSession_PreferencePersistsAcrossSessions(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	logPath := writeLog(t, "")

	first, err := eqwho.NewSession(eqwho.WithSettingsPath(settingsPath))
	if err != nil {
		t.Fatal(err)
	}
	if err := first.SelectFile(logPath); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := eqwho.NewSession(eqwho.WithSettingsPath(settingsPath))
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if second.File() != logPath {
		t.Errorf("restored File() = %q, want %q", second.File(), logPath)
	}
}

func TestSession_RememberedFileGoneFallsBackToNoSelection(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	logPath := writeLog(t, "")

	first, err := eqwho.NewSession(eqwho.WithSettingsPath(settingsPath))
	if err != nil {
		t.Fatal(err)
	}
	if err := first.SelectFile(logPath); err != nil {
		t.Fatal(err)
	}
	first.Close()

	if err := os.Remove(logPath); err != nil {
		t.Fatal(err)
	}

	second, err := eqwho.NewSession(eqwho.WithSettingsPath(settingsPath))
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if second.File() != "" {
		t.Errorf("File() = %q, want no selection for vanished file", second.File())
	}
}

func TestSession_StartMonitoringWithoutFile(t *testing.T) {
	session := newTestSession(t)

	_, _, err := session.StartMonitoring(context.Background())
	if !errors.Is(err, eqwho.ErrNoFileSelected) {
		t.Errorf("StartMonitoring() error = %v, want ErrNoFileSelected", err)
	}
}

func TestSession_MonitorCapturesAndDeduplicates(t *testing.T) {
	logPath := writeLog(t, "")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	session := newTestSession(t)
	if err := session.SelectFile(logPath); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snaps, errs, err := session.StartMonitoring(ctx)
	if err != nil {
		t.Fatalf("StartMonitoring() error = %v", err)
	}
	if !session.Monitoring() {
		t.Error("Monitoring() = false after StartMonitoring")
	}

	// Give the tailer time to establish its baseline.
	time.Sleep(100 * time.Millisecond)

	blockA := whoBlock("Wed Oct 16 14:23:45 2024", "Kael Drakkal", "Accosted")
	blockB := whoBlock("Wed Oct 16 15:00:00 2024", "Dreadlands", "Toad")

	f.WriteString(blockA)
	f.Sync()

	select {
	case snap := <-snaps:
		if snap.Location != "Kael Drakkal" {
			t.Errorf("first capture location = %q", snap.Location)
		}
	case err := <-errs:
		t.Fatalf("monitor error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for first capture")
	}

	// The same /who text again is a duplicate: silently dropped. A fresh
	// snapshot afterwards proves the pipeline kept running.
	f.WriteString(blockA)
	f.WriteString(blockB)
	f.Sync()

	select {
	case snap := <-snaps:
		if snap.Location != "Dreadlands" {
			t.Errorf("expected the duplicate to be suppressed, got %q", snap.Location)
		}
	case err := <-errs:
		t.Fatalf("monitor error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for second capture")
	}

	if got := session.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}

	session.StopMonitoring()
	if session.Monitoring() {
		t.Error("Monitoring() = true after StopMonitoring")
	}
	// Stopping keeps accumulated snapshots.
	if got := session.Count(); got != 2 {
		t.Errorf("Count() after stop = %d, want 2", got)
	}
}

func TestSession_StartMonitoringConcurrent(t *testing.T) {
	logPath := writeLog(t, "")

	session := newTestSession(t)
	if err := session.SelectFile(logPath); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Racing starts must elect exactly one live monitor; every loser gets
	// ErrAlreadyMonitoring instead of orphaning a second poller.
	const attempts = 8
	var started int32
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := session.StartMonitoring(ctx)
			switch {
			case err == nil:
				atomic.AddInt32(&started, 1)
			case !errors.Is(err, eqwho.ErrAlreadyMonitoring):
				t.Errorf("StartMonitoring() error = %v, want ErrAlreadyMonitoring", err)
			}
		}()
	}
	wg.Wait()

	if started != 1 {
		t.Errorf("StartMonitoring() succeeded %d times, want exactly 1", started)
	}
	if !session.Monitoring() {
		t.Error("Monitoring() = false after a successful start")
	}
}

func TestSession_StopWhenIdleIsSafe(t *testing.T) {
	session := newTestSession(t)
	session.StopMonitoring()
	session.StopMonitoring()
}

func TestSession_LoadHistorical(t *testing.T) {
	now := time.Now()
	recent := now.Add(-5 * time.Minute).Format(eqwho.TimestampLayout)
	old := now.Add(-3 * time.Hour).Format(eqwho.TimestampLayout)

	logPath := writeLog(t,
		whoBlock(old, "Oasis of Marr", "Healbot")+
			whoBlock(recent, "Kael Drakkal", "Accosted"))

	session := newTestSession(t)
	if err := session.SelectFile(logPath); err != nil {
		t.Fatal(err)
	}

	// A historical load replaces whatever was accumulated before.
	session.ClearAll()
	n, err := session.LoadHistorical(context.Background(), 15)
	if err != nil {
		t.Fatalf("LoadHistorical() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("LoadHistorical(15) = %d, want 1", n)
	}
	if got := session.Snapshots(); len(got) != 1 || got[0].Location != "Kael Drakkal" {
		t.Errorf("Snapshots() = %+v, want the recent capture only", got)
	}

	n, err = session.LoadHistorical(context.Background(), 24*60)
	if err != nil {
		t.Fatalf("LoadHistorical() error = %v", err)
	}
	if n != 2 {
		t.Errorf("LoadHistorical(1 day) = %d, want 2", n)
	}
}

func TestSession_LoadHistoricalWithoutFile(t *testing.T) {
	session := newTestSession(t)
	_, err := session.LoadHistorical(context.Background(), 15)
	if !errors.Is(err, eqwho.ErrNoFileSelected) {
		t.Errorf("LoadHistorical() error = %v, want ErrNoFileSelected", err)
	}
}

func TestSession_SaveRecord(t *testing.T) {
	session := newTestSession(t)

	tests := []struct {
		name     string
		snap     eqwho.Snapshot
		wantName string
	}{
		{
			name: "location with spaces",
			snap: eqwho.Snapshot{
				Timestamp: "Wed Oct 16 14:23:45 2024",
				Location:  "Kael Drakkal",
				RawText:   "raw",
			},
			wantName: "who_Kael_Drakkal_Oct_16.txt",
		},
		{
			name: "location with punctuation",
			snap: eqwho.Snapshot{
				Timestamp: "Wed Oct 16 14:23:45 2024",
				Location:  "Firiona Vie (docks)",
				RawText:   "raw",
			},
			wantName: "who_Firiona_Vie_docks_Oct_16.txt",
		},
		{
			name:     "empty location",
			snap:     eqwho.Snapshot{Timestamp: "Wed Oct 16 14:23:45 2024", RawText: "raw"},
			wantName: "who_unknown_location_Oct_16.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename, content := session.SaveRecord(tt.snap)
			if filename != tt.wantName {
				t.Errorf("filename = %q, want %q", filename, tt.wantName)
			}
			want := fmt.Sprintf("[%s]\n%s", tt.snap.Timestamp, tt.snap.RawText)
			if content != want {
				t.Errorf("content = %q, want %q", content, want)
			}
		})
	}
}

func TestSession_RawText(t *testing.T) {
	session := newTestSession(t)
	snap := parseOne(t, sampleWho)
	if got := session.RawText(snap); got != snap.RawText {
		t.Errorf("RawText() = %q, want the snapshot's raw text", got)
	}
}

func TestSession_FileInfo(t *testing.T) {
	session := newTestSession(t)

	if _, err := session.FileInfo(); !errors.Is(err, eqwho.ErrNoFileSelected) {
		t.Errorf("FileInfo() error = %v, want ErrNoFileSelected", err)
	}

	logPath := writeLog(t, "0123456789")
	if err := session.SelectFile(logPath); err != nil {
		t.Fatal(err)
	}
	info, err := session.FileInfo()
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}
	want := filepath.Base(logPath) + " (10.0 B)"
	if info != want {
		t.Errorf("FileInfo() = %q, want %q", info, want)
	}
}
