package util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// TempSibling returns a temporary path in the same directory as final,
// suitable for write-then-rename. Same filesystem keeps the rename atomic;
// the original extension is preserved so tools that sniff it still work.
func TempSibling(final string) string {
	dir := filepath.Dir(final)
	base := filepath.Base(final)
	return filepath.Join(dir, fmt.Sprintf(".tmp-%s-%s", uuid.NewString()[:8], base))
}

// WriteFileAtomic writes data to a temp sibling and renames it into place, so
// a crash mid-write never leaves a partial file at the final path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := TempSibling(path)
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// CleanupFiles removes multiple files, ignoring errors
func CleanupFiles(paths ...string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}
