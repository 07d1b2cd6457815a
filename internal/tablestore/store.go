// Package tablestore persists generated lookup tables so processes can skip
// generation at startup.
package tablestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/pokereval/internal/fileutil"
	"github.com/lox/pokereval/poker"
)

// Load reads an artifact written by Save. Unreadable or malformed files
// yield poker.ErrTableUnavailable.
func Load(path string) (*poker.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", poker.ErrTableUnavailable, err)
	}
	tables, err := poker.UnmarshalTables(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tables, nil
}

// Save writes tables to path atomically.
func Save(path string, tables *poker.Tables) error {
	data, err := tables.MarshalBinary()
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// Open returns the tables stored at path. An empty path uses the shared
// in-process tables. A missing file is generated and written back; a
// corrupt one is an error, never silently replaced.
func Open(path string, logger *log.Logger) (*poker.Tables, error) {
	if path == "" {
		return poker.DefaultTables()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Info("Table artifact not found, generating", "path", path)
		tables, err := poker.NewTables()
		if err != nil {
			return nil, err
		}
		if err := Save(path, tables); err != nil {
			logger.Warn("Failed to write table artifact", "path", path, "error", err)
		}
		return tables, nil
	}

	tables, err := Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded table artifact", "path", path)
	return tables, nil
}
