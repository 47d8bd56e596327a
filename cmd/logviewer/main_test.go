package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironpulse/local-app/internal/ui"
)

func TestFormatLogEntry(t *testing.T) {
	entry := LogEntry{
		"timestamp": "not a time",
		"level":     "warn",
		"msg":       "Rejected invalid entry",
		"username":  "alice",
		"error":     "invalid entry",
	}
	got := formatLogEntry(entry)
	assert.Equal(t, "not a time WARN  Rejected invalid entry\n    error: invalid entry\n    username: alice", got)
}

func TestViewerScanIsIncremental(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "info.log")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"level":"info","timestamp":"2024-05-01T10:00:00.000Z","msg":"Entry added","type":"sleep"}
not json
{"level":"error","timestamp":"2024-05-01T10:00:01.000Z","msg":"Failed to store entry"}
`), 0644))

	var out bytes.Buffer
	v := &viewer{ui: ui.NewUI(&out, false), dir: dir, filter: "entry", positions: map[string]int64{}}
	require.NoError(t, v.scan())
	assert.Contains(t, out.String(), "INFO  Entry added")
	assert.Contains(t, out.String(), "type: sleep")
	assert.Contains(t, out.String(), "ERROR Failed to store entry")

	out.Reset()
	require.NoError(t, v.scan())
	assert.Empty(t, out.String(), "nothing new since the last scan")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"level":"info","timestamp":"2024-05-01T10:00:02.000Z","msg":"User logged out"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	v.filter = ""
	require.NoError(t, v.scan())
	assert.Contains(t, out.String(), "User logged out")
}
