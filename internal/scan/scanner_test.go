package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/dirsnap/internal/scan"
)

// TestScanDirectoryClassifiesEntries verifies link-aware classification of
// immediate children.
func TestScanDirectoryClassifiesEntries(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeFixtureDirectory(testingHandle, filepath.Join(rootDirectory, "child"))
	writeFixtureFile(testingHandle, filepath.Join(rootDirectory, "data.txt"), "1234")
	symlinkSupported := true
	if symlinkError := os.Symlink(filepath.Join(rootDirectory, "child"), filepath.Join(rootDirectory, "child_link")); symlinkError != nil {
		symlinkSupported = false
	}

	entries := scan.ScanDirectory(rootDirectory)

	entriesByName := map[string]scan.Entry{}
	for _, entry := range entries {
		entriesByName[entry.Name] = entry
	}

	directoryEntry, directoryFound := entriesByName["child"]
	if !directoryFound || !directoryEntry.IsDirectory || directoryEntry.IsSymlink {
		testingHandle.Errorf("unexpected directory entry: %+v", directoryEntry)
	}
	fileEntry, fileFound := entriesByName["data.txt"]
	if !fileFound || fileEntry.IsDirectory || fileEntry.IsSymlink || fileEntry.SizeBytes != 4 {
		testingHandle.Errorf("unexpected file entry: %+v", fileEntry)
	}
	if fileEntry.AbsolutePath != filepath.Join(rootDirectory, "data.txt") {
		testingHandle.Errorf("unexpected absolute path: %s", fileEntry.AbsolutePath)
	}
	if symlinkSupported {
		linkEntry, linkFound := entriesByName["child_link"]
		if !linkFound || !linkEntry.IsSymlink {
			testingHandle.Errorf("symlinked directory must be reported as a symlink: %+v", linkEntry)
		}
		if linkEntry.IsDirectory {
			testingHandle.Errorf("symlinked directory must not be reported as a directory")
		}
	}
}

// TestScanDirectoryUnlistablePath verifies the tolerant policy for
// directories that cannot be listed.
func TestScanDirectoryUnlistablePath(testingHandle *testing.T) {
	missingDirectory := filepath.Join(testingHandle.TempDir(), "gone")

	entries := scan.ScanDirectory(missingDirectory)

	if len(entries) != 0 {
		testingHandle.Fatalf("expected no entries for an unlistable directory, got %d", len(entries))
	}
}
