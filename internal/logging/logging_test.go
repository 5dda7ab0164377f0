package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name     string
		logsDir  string
		toolName string
		ext      string
		want     string
	}{
		{
			name:     "basic path",
			logsDir:  "placementlogs",
			toolName: "place_player_starts",
			ext:      "log",
			want:     filepath.Join("placementlogs", "place_player_starts.20260212_213836.log"),
		},
		{
			name:     "relative path with dot",
			logsDir:  "./placementlogs",
			toolName: "place_player_starts",
			ext:      "output.jsonl",
			want:     filepath.Join(".", "placementlogs", "place_player_starts.20260212_213836.output.jsonl"),
		},
		{
			name:     "absolute path",
			logsDir:  filepath.Join("/var", "log", "editor"),
			toolName: "place_player_starts",
			ext:      "log",
			want:     filepath.Join("/var", "log", "editor", "place_player_starts.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.toolName, sessionStart, tt.ext)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenLogFile_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.log")

	f, err := OpenLogFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	_, err = f.WriteString("hello\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestOpenLogFile_RotatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0644))

	f, err := OpenLogFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	old, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(old))

	fresh, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, fresh)
}
