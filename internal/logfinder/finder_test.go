package logfinder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestLogFile(t *testing.T) {
	dir := t.TempDir()

	// One log file per character; newest-modified is the active one.
	files := []string{
		"eqlog_Accosted_project1999.txt",
		"eqlog_Healbot_project1999.txt",
		"eqlog_Toad_project1999.txt",
	}

	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
		// Set modification time (oldest first)
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindLatestLogFile(dir)
	if err != nil {
		t.Fatalf("FindLatestLogFile() error = %v", err)
	}

	want := files[len(files)-1]
	if filepath.Base(got) != want {
		t.Errorf("FindLatestLogFile() = %v, want %v", filepath.Base(got), want)
	}
}

func TestFindLatestLogFile_NoFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := FindLatestLogFile(dir)
	if err == nil {
		t.Error("FindLatestLogFile() expected error for empty directory")
	}
	if !errors.Is(err, ErrNoLogFiles) {
		t.Errorf("FindLatestLogFile() error = %v, want %v", err, ErrNoLogFiles)
	}
}

func TestFindLatestLogFile_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dbg.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := FindLatestLogFile(dir)
	if !errors.Is(err, ErrNoLogFiles) {
		t.Errorf("FindLatestLogFile() error = %v, want %v", err, ErrNoLogFiles)
	}
}

func TestFindLogDir_EnvVar(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "eqlog_Accosted_project1999.txt")
	if err := os.WriteFile(logFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvLogDir, dir)

	got, err := FindLogDir("")
	if err != nil {
		t.Fatalf("FindLogDir() error = %v", err)
	}

	// Resolve symlinks in expected path for comparison (e.g., /var -> /private/var on macOS)
	want, _ := filepath.EvalSymlinks(dir)
	if want == "" {
		want = dir
	}
	if got != want {
		t.Errorf("FindLogDir() = %v, want %v", got, want)
	}
}

func TestFindLogDir_ExplicitBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "eqlog_Accosted_project1999.txt")
	if err := os.WriteFile(logFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvLogDir, "/some/other/path")

	got, err := FindLogDir(dir)
	if err != nil {
		t.Fatalf("FindLogDir() error = %v", err)
	}

	want, _ := filepath.EvalSymlinks(dir)
	if want == "" {
		want = dir
	}
	if got != want {
		t.Errorf("FindLogDir() = %v, want %v", got, want)
	}
}

func TestFindLogDir_ExplicitInvalid(t *testing.T) {
	_, err := FindLogDir("/nonexistent/path")
	if err == nil {
		t.Error("FindLogDir() expected error for invalid explicit path")
	}
	if !errors.Is(err, ErrLogDirNotFound) {
		t.Errorf("FindLogDir() error = %v, want %v", err, ErrLogDirNotFound)
	}
}

func TestFindLogDir_EnvVarInvalid(t *testing.T) {
	t.Setenv(EnvLogDir, "/nonexistent/path")

	_, err := FindLogDir("")
	if err == nil {
		t.Error("FindLogDir() expected error for invalid env var path")
	}
	if !errors.Is(err, ErrLogDirNotFound) {
		t.Errorf("FindLogDir() error = %v, want %v", err, ErrLogDirNotFound)
	}
}

func TestResolveAndValidateLogDir(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "eqlog_Accosted_project1999.txt")
	if err := os.WriteFile(logFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if resolved := resolveAndValidateLogDir(dir); resolved == "" {
		t.Error("resolveAndValidateLogDir() = empty, want non-empty for valid dir")
	}
}

func TestResolveAndValidateLogDir_NoLogFiles(t *testing.T) {
	dir := t.TempDir()

	if resolved := resolveAndValidateLogDir(dir); resolved != "" {
		t.Error("resolveAndValidateLogDir() = non-empty, want empty for dir without log files")
	}
}
