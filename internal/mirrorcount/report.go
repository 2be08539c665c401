package mirrorcount

import (
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Roots holds the three mirrored trees.
type Roots struct {
	// Original is the ground-truth tree that drives the walk.
	Original string `json:"original"`
	// Preview mirrors Original with preview images.
	Preview string `json:"preview"`
	// Thumbnail mirrors Original with thumbnail images.
	Thumbnail string `json:"thumbnail"`
}

// DefaultRoots returns the wallpaper layout relative to the working directory.
func DefaultRoots() Roots {
	return Roots{
		Original:  filepath.Join("wallpaper", "desktop"),
		Preview:   filepath.Join("preview", "desktop"),
		Thumbnail: filepath.Join("thumbnail", "desktop"),
	}
}

// Row is the comparison result for a single directory.
type Row struct {
	// Path is relative to the original root, empty for the root itself.
	Path string `json:"path"`
	// Original is the file count in the original tree.
	Original Count `json:"original"`
	// Preview is the file count in the preview tree.
	Preview Count `json:"preview"`
	// Thumbnail is the file count in the thumbnail tree.
	Thumbnail Count `json:"thumbnail"`
	// Status classifies the three counts.
	Status Status `json:"status"`
}

// OK reports whether the row needs no attention.
func (r Row) OK() bool {
	return r.Status == StatusOK
}

// Report holds the outcome of a full check.
type Report struct {
	// Roots are the trees that were compared.
	Roots Roots `json:"roots"`
	// Rows holds every compared directory ordered by path.
	Rows []Row `json:"rows"`
	// Directories is the number of directories visited under the original root.
	Directories int64 `json:"directories"`
	// Discrepancies indicates whether any row is not OK.
	Discrepancies bool `json:"discrepancies"`
	// Elapsed is the total time taken for the check.
	Elapsed time.Duration `json:"elapsed"`
}

// Problems returns the rows that are not OK.
func (r *Report) Problems() []Row {
	problems := make([]Row, 0)

	for _, row := range r.Rows {
		if !row.OK() {
			problems = append(problems, row)
		}
	}

	return problems
}

// hasDiscrepancies folds rows into a single flag.
func hasDiscrepancies(rows []Row) bool {
	for _, row := range rows {
		if !row.OK() {
			return true
		}
	}

	return false
}

// collector gathers directories from concurrent fastwalk callbacks using a mutex.
type collector struct {
	mu   sync.Mutex // Protect concurrent access
	dirs []string
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{dirs: make([]string, 0)}
}

// add records a directory path relative to the original root. This operation
// is protected by a mutex since fastwalk calls the callback from multiple
// goroutines concurrently.
func (c *collector) add(rel string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dirs = append(c.dirs, rel)
}

// count returns the number of directories collected so far.
func (c *collector) count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return int64(len(c.dirs))
}

// finalize returns the collected directories sorted by path, so that the
// report does not depend on the walk order.
func (c *collector) finalize() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	dirs := make([]string, len(c.dirs))
	copy(dirs, c.dirs)

	sort.Strings(dirs)

	return dirs
}
