// Package archive moves an offline deck cache aside so the next start
// downloads a fresh copy while the old one is kept for reference.
package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sidecars are the files SQLite may keep next to the database
var sidecars = []string{"-journal", "-wal", "-shm"}

// ArchiveCache moves the cache database into an archive directory next to
// it, stamped with the current time, and returns the new path
func ArchiveCache(cachePath string) (string, error) {
	// Check if the cache exists
	if _, err := os.Stat(cachePath); os.IsNotExist(err) {
		return "", fmt.Errorf("cache file does not exist: %s", cachePath)
	}

	// Get parent directory and create archive path
	parentDir := filepath.Dir(cachePath)
	archiveDir := filepath.Join(parentDir, "archive")

	// Create archive directory if it doesn't exist
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(cachePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	// Generate timestamp
	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", stem, timestamp, ext))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", stem, timestamp, ext))
	}

	if err := os.Rename(cachePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive cache: %w", err)
	}

	for _, suffix := range sidecars {
		if _, err := os.Stat(cachePath + suffix); err != nil {
			continue
		}
		if err := os.Rename(cachePath+suffix, archivePath+suffix); err != nil {
			return archivePath, fmt.Errorf("failed to archive %s: %w", cachePath+suffix, err)
		}
	}

	slog.Info("Deck cache archived", "path", archivePath)
	return archivePath, nil
}
