// Package logfinder provides EverQuest log directory and file detection.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvLogDir is the environment variable name for specifying the log directory.
const EnvLogDir = "EQWHO_LOGDIR"

// logPattern matches per-character EverQuest log files,
// e.g. "eqlog_Accosted_project1999.txt".
const logPattern = "eqlog_*.txt"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// DefaultLogDirs returns candidate EverQuest log directories in priority
// order. The client writes logs into a Logs subdirectory of the install
// directory on modern clients, and into the install directory itself on
// classic-era clients.
func DefaultLogDirs() []string {
	var dirs []string

	if pf := os.Getenv("ProgramFiles(x86)"); pf != "" {
		dirs = append(dirs,
			filepath.Join(pf, "Sony", "EverQuest", "Logs"),
			filepath.Join(pf, "Sony", "EverQuest"),
		)
	}
	if home, err := os.UserHomeDir(); err == nil {
		// Common Wine/Proton and manual-install locations.
		dirs = append(dirs,
			filepath.Join(home, "EverQuest", "Logs"),
			filepath.Join(home, "EverQuest"),
		)
	}

	return dirs
}

// FindLogDir returns the EverQuest log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. EQWHO_LOGDIR environment variable
//  3. Auto-detect from DefaultLogDirs()
//
// Returns ErrLogDirNotFound if no directory containing log files is found.
// The returned path has symlinks resolved for consistency.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveAndValidateLogDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory is invalid or contains no log files", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveAndValidateLogDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	for _, dir := range DefaultLogDirs() {
		if resolved := resolveAndValidateLogDir(dir); resolved != "" {
			return resolved, nil
		}
	}

	return "", ErrLogDirNotFound
}

// FindLatestLogFile returns the path to the most recently modified
// eqlog file in the given directory. With one log file per character,
// newest-modified is the character currently being played.
//
// Returns ErrNoLogFiles if no log files are found.
func FindLatestLogFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, logPattern))
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}

	if len(matches) == 0 {
		return "", ErrNoLogFiles
	}

	sort.Slice(matches, func(i, j int) bool {
		infoI, errI := os.Stat(matches[i])
		infoJ, errJ := os.Stat(matches[j])
		if errI != nil || errJ != nil {
			return false
		}
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return matches[0], nil
}

// resolveAndValidateLogDir resolves symlinks and checks that the directory
// holds at least one log file. Returns the resolved path if valid, empty
// string otherwise.
func resolveAndValidateLogDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}

	matches, err := filepath.Glob(filepath.Join(resolved, logPattern))
	if err != nil || len(matches) == 0 {
		return ""
	}

	return resolved
}
