package eqwho

import "github.com/eqwho/eqwho-go/internal/logfinder"

// FindLogDir locates the EverQuest log directory. An empty dir means
// auto-detect: the EQWHO_LOGDIR environment variable is consulted first,
// then the standard install locations.
func FindLogDir(dir string) (string, error) {
	return logfinder.FindLogDir(dir)
}

// FindLatestLogFile locates the most recently modified per-character log
// file. An empty dir means auto-detect the log directory first.
func FindLatestLogFile(dir string) (string, error) {
	resolved, err := logfinder.FindLogDir(dir)
	if err != nil {
		return "", err
	}
	return logfinder.FindLatestLogFile(resolved)
}
