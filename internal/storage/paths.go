// Package storage provides a persistent archive of positions keyed by
// their Zobrist hash.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chesscore"

// HomeEnv overrides the platform data directory when set.
const HomeEnv = "CHESSCORE_HOME"

// environment is the part of the process environment that decides the
// data directory.
type environment struct {
	goos    string
	getenv  func(string) string
	homeDir func() (string, error)
}

func processEnvironment() environment {
	return environment{goos: runtime.GOOS, getenv: os.Getenv, homeDir: os.UserHomeDir}
}

// dataDir resolves the application directory without creating it.
//   - $CHESSCORE_HOME if set
//   - macOS: ~/Library/Application Support/chesscore
//   - Windows: %APPDATA%/chesscore
//   - others: $XDG_DATA_HOME/chesscore or ~/.local/share/chesscore
func (env environment) dataDir() (string, error) {
	if dir := env.getenv(HomeEnv); dir != "" {
		return dir, nil
	}

	var base string
	var rel []string
	switch env.goos {
	case "darwin":
		rel = []string{"Library", "Application Support"}
	case "windows":
		base = env.getenv("APPDATA")
		rel = []string{"AppData", "Roaming"}
	default:
		base = env.getenv("XDG_DATA_HOME")
		rel = []string{".local", "share"}
	}

	if base == "" {
		home, err := env.homeDir()
		if err != nil {
			return "", err
		}
		if home == "" {
			return "", errors.New("no home directory")
		}
		base = filepath.Join(append([]string{home}, rel...)...)
	}
	return filepath.Join(base, appName), nil
}

// GetDataDir returns the platform-specific data directory for the
// application, creating it if needed.
func GetDataDir() (string, error) {
	dir, err := processEnvironment().dataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetDatabaseDir returns the default directory of the position archive.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "positions")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
