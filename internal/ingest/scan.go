package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// FileError records a path the walk could not read.
type FileError struct {
	Path string
	Err  string
}

// ScanDirectory walks root, skips hidden entries if requested, and returns
// the card files found in walk order.
func ScanDirectory(root string, skipHidden bool) ([]string, DirStats, []FileError, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, nil, errors.New("root path is required")
	}

	var (
		files  []string
		stats  DirStats
		failed []FileError
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			failed = append(failed, FileError{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		files = append(files, path)
		return nil
	})
	if err != nil {
		return files, stats, failed, fmt.Errorf("walk: %w", err)
	}
	return files, stats, failed, nil
}
