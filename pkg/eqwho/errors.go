package eqwho

import (
	"errors"

	"github.com/eqwho/eqwho-go/internal/logfinder"
)

// Sentinel errors returned by this package.
var (
	// ErrNoFileSelected is returned when an operation requires a log file
	// and none has been selected.
	ErrNoFileSelected = errors.New("no log file selected")

	// ErrFileNotFound is returned when the selected log file does not
	// exist.
	ErrFileNotFound = errors.New("log file does not exist")

	// ErrAlreadyMonitoring is returned by StartMonitoring while a
	// monitoring session is active.
	ErrAlreadyMonitoring = errors.New("monitoring already active")

	// ErrNoEntries is returned by Export when a snapshot contains no
	// parseable player rows. It is an empty-result condition, not a
	// failure: the caller can report "nothing to export".
	ErrNoEntries = errors.New("no player entries to export")

	// ErrLogDirNotFound is returned when the EverQuest log directory
	// cannot be found or accessed.
	ErrLogDirNotFound = logfinder.ErrLogDirNotFound

	// ErrNoLogFiles is returned when no log files are found in the
	// specified directory.
	ErrNoLogFiles = logfinder.ErrNoLogFiles
)
