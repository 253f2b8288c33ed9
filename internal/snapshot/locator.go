// Package snapshot locates Cursor state database snapshots and dumps their
// tables into intermediate JSON log documents.
package snapshot

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DefaultBasename is the filename of Cursor's state database snapshots.
const DefaultBasename = "state.vscdb"

// Find recursively collects files named basename under root, in walk order.
// A missing root is not an error; it yields an empty list.
func Find(root, basename string) ([]string, error) {
	if basename == "" {
		basename = DefaultBasename
	}

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == basename {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// FindRecent collects snapshots modified within the trailing days window.
// Pass a very large days value to effectively disable the window.
func FindRecent(root, basename string, days int) ([]string, error) {
	all, err := Find(root, basename)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)

	var recent []string
	for _, path := range all {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			recent = append(recent, path)
		}
	}
	return recent, nil
}
