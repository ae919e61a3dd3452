// Package scan implements the directory snapshot engine: a link-aware
// directory scanner, the recursive tree builder with ignore and truncation
// policies, and the summary aggregation pass.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Entry describes one immediate child of a scanned directory.
type Entry struct {
	Name         string
	AbsolutePath string
	IsSymlink    bool
	IsDirectory  bool
	SizeBytes    int64
}

// ScanDirectory lists the immediate children of directoryPath without
// following symlinks: a symlinked directory is reported as a symlink, never
// recursed into. A directory that cannot be listed yields no entries rather
// than an error, and an entry whose metadata cannot be read is dropped from
// the result.
func ScanDirectory(directoryPath string) []Entry {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil
	}

	entries := make([]Entry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryInfo, infoError := directoryEntry.Info()
		if infoError != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:         directoryEntry.Name(),
			AbsolutePath: filepath.Join(directoryPath, directoryEntry.Name()),
			IsSymlink:    entryInfo.Mode()&fs.ModeSymlink != 0,
			IsDirectory:  entryInfo.IsDir(),
			SizeBytes:    entryInfo.Size(),
		})
	}
	return entries
}
