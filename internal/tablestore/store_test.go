package tablestore

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pokereval/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()
	tables, err := poker.DefaultTables()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tables.bin")
	require.NoError(t, Save(path, tables))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, tables.Equal(loaded))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.bin"))
	assert.ErrorIs(t, err, poker.ErrTableUnavailable)

	corrupt := filepath.Join(dir, "corrupt.bin")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a table artifact"), 0o644))
	_, err = Load(corrupt)
	assert.ErrorIs(t, err, poker.ErrTableUnavailable)
}

func TestOpenGeneratesMissingArtifact(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tables.bin")

	tables, err := Open(path, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, tables.High)

	_, err = os.Stat(path)
	require.NoError(t, err, "artifact written back")

	again, err := Open(path, quietLogger())
	require.NoError(t, err)
	assert.True(t, tables.Equal(again))
}

func TestOpenRejectsCorruptArtifact(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tables.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x0a, 0x03, 'b', 'a', 'd'}, 0o644))

	_, err := Open(path, quietLogger())
	assert.ErrorIs(t, err, poker.ErrTableUnavailable)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x03, 'b', 'a', 'd'}, data, "corrupt file left for inspection")
}

func TestOpenEmptyPathUsesDefaults(t *testing.T) {
	t.Parallel()
	tables, err := Open("", quietLogger())
	require.NoError(t, err)
	defaults, err := poker.DefaultTables()
	require.NoError(t, err)
	assert.Same(t, defaults, tables)
}
