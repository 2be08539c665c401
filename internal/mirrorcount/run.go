package mirrorcount

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charlievieth/fastwalk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// ErrBaseMissing is returned when the original root does not exist.
var ErrBaseMissing = errors.New("base directory does not exist")

// Options configures a check.
type Options struct {
	// Roots are the trees to compare.
	Roots Roots
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// Hooks receives events while a check runs. Every field is optional.
type Hooks struct {
	// Begin is called once the original root has been validated.
	Begin func()
	// Row is called for every compared directory, in path order, as soon as it is computed.
	Row func(Row)
	// Warn is called when an existing directory cannot be listed.
	Warn func(path string, err error)
	// Progress is called periodically with the number of directories discovered.
	Progress func(dirs int64)
}

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// relative returns path relative to root, with the root itself as "".
func relative(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}

	if rel == "." {
		return "", nil
	}

	return rel, nil
}

// startProgressReporter invokes hook(dirs) on each tick until the returned
// stop function is called. stop waits for the reporter to exit.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64), interval time.Duration) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.count())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// validateRoot ensures the original root exists and is a directory.
func validateRoot(root string) error {
	info, err := os.Stat(root)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrBaseMissing, filepath.ToSlash(root))
	case err != nil:
		return fmt.Errorf("accessing path %q: %w", root, err)
	case !info.IsDir():
		return fmt.Errorf("path %q is not a directory", root)
	}

	return nil
}

// discover lists every directory below root, relative to root.
func discover(ctx context.Context, root string, c *collector, log logger) error {
	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	return fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.printf("[debug]: error accessing path %s: %v\n", path, err)

			return nil // Counting reports unreadable directories
		}

		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if !d.IsDir() {
			return nil
		}

		rel, err := relative(root, path)
		if err != nil {
			log.printf("[debug]: skipping %s: %v\n", path, err)

			return nil
		}

		// The root is recorded by the caller
		if rel == "" {
			return nil
		}

		c.add(rel)

		return nil
	})
}

// Run compares the original tree against its preview and thumbnail mirrors.
//
// Directories are discovered in parallel and then compared one at a time in
// path order, so repeated runs over an unchanged tree yield identical reports.
// Directories holding no files in any tree are skipped. Every other directory
// becomes a Row, which is passed to hooks.Row before the next one is computed.
//
// The only fatal condition is a missing original root, reported as
// ErrBaseMissing. Unreadable or missing directories degrade to the Missing
// count instead of failing the run.
func Run(ctx context.Context, opt Options, hooks Hooks) (*Report, error) {
	log := logger{enabled: opt.Debug}

	roots := opt.Roots
	roots.Original = filepath.Clean(roots.Original)
	roots.Preview = filepath.Clean(roots.Preview)
	roots.Thumbnail = filepath.Clean(roots.Thumbnail)

	if err := validateRoot(roots.Original); err != nil {
		return nil, err
	}

	log.printf("[debug]: original:  %s\n", roots.Original)
	log.printf("[debug]: preview:   %s\n", roots.Preview)
	log.printf("[debug]: thumbnail: %s\n", roots.Thumbnail)

	start := time.Now()

	collector := newCollector()
	collector.add("")

	// Progress covers discovery only; rows are streamed afterwards
	stopProgress := startProgressReporter(ctx, collector, hooks.Progress, opt.ProgressInterval)
	err := discover(ctx, roots.Original, collector, log)

	stopProgress()

	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", roots.Original, err)
	}

	dirs := collector.finalize()

	log.printf("[debug]: discovered %d directories\n", len(dirs))

	if hooks.Begin != nil {
		hooks.Begin()
	}

	rows := make([]Row, 0)

	for _, rel := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, ok := compare(roots, rel, hooks.Warn)
		if !ok {
			log.printf("[debug]: skipping empty directory %q\n", rel)

			continue
		}

		rows = append(rows, row)

		if hooks.Row != nil {
			hooks.Row(row)
		}
	}

	return &Report{
		Roots:         roots,
		Rows:          rows,
		Directories:   int64(len(dirs)),
		Discrepancies: hasDiscrepancies(rows),
		Elapsed:       time.Since(start),
	}, nil
}

// compare counts a directory in all three trees. It returns false when the
// directory holds no files anywhere and must not be reported.
func compare(roots Roots, rel string, warn func(string, error)) (Row, bool) {
	orig := CountFiles(filepath.Join(roots.Original, rel), warn)
	prev := CountFiles(filepath.Join(roots.Preview, rel), warn)
	thumb := CountFiles(filepath.Join(roots.Thumbnail, rel), warn)

	if !Reportable(orig, prev, thumb) {
		return Row{}, false
	}

	return Row{
		Path:      filepath.ToSlash(rel),
		Original:  orig,
		Preview:   prev,
		Thumbnail: thumb,
		Status:    Classify(orig, prev, thumb),
	}, true
}
