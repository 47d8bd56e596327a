package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironpulse/local-app/internal/model"
)

func TestFileExportImport(t *testing.T) {
	ts := time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC)
	entries := model.EntryList{
		model.JournalEntry{EntryBase: model.EntryBase{ID: "j", Timestamp: ts, Type: model.EntryJournal}, Title: "PR", Content: "New deadlift max"},
		hydration("h", ts.Add(-time.Hour), 500),
	}
	filename := filepath.Join(t.TempDir(), "backup", "alice.json")

	require.NoError(t, FileExport(entries, filename))
	got, err := FileImport(filename)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestFileImportRejectsInvalidEntries(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(filename, []byte(`[{"id":"x","timestamp":"2024-06-01T00:00:00Z","type":"hydration","amountMl":0}]`), 0644))

	_, err := FileImport(filename)
	assert.ErrorIs(t, err, model.ErrInvalidEntry)

	_, err = FileImport(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
