package mirrorcount

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Count is the number of files directly inside a directory.
type Count int

// Missing marks a directory that does not exist or could not be listed.
const Missing Count = -1

// HiddenPrefix marks entries excluded from counting.
const HiddenPrefix = "."

// IsMissing reports whether c is the Missing sentinel.
func (c Count) IsMissing() bool {
	return c == Missing
}

// String returns the decimal form of c, "-1" for Missing.
func (c Count) String() string {
	return strconv.Itoa(int(c))
}

// CountFiles returns the number of regular files directly inside path,
// ignoring subdirectories and hidden entries.
//
// A nonexistent path yields Missing. A path that exists but cannot be listed
// is reported to warn (if non-nil) and also yields Missing.
func CountFiles(path string, warn func(path string, err error)) Count {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) && warn != nil {
			warn(path, err)
		}

		return Missing
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if warn != nil {
			warn(path, err)
		}

		return Missing
	}

	var count Count

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), HiddenPrefix) {
			continue
		}

		if isRegularFile(path, entry) {
			count++
		}
	}

	return count
}

// isRegularFile reports whether entry is a regular file, resolving symlinks.
func isRegularFile(dir string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}

	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}
