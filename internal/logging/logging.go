package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogFilePath builds a session log file path using OS-appropriate path separators.
// ext is the file extension without the dot.
func LogFilePath(logsDir, toolName string, sessionStart time.Time, ext string) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.%s", toolName, sessionStart.Format("20060102_150405"), ext),
	)
}

// OpenLogFile creates the parent directory if needed and opens path for
// appending. An existing file is moved aside to path+".old" first.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".old"); err != nil {
			return nil, fmt.Errorf("failed to rotate %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
