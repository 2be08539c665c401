package mirrorcount

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// mkdir creates dir and its parents under base.
func mkdir(t *testing.T, base string, dir string) string {
	t.Helper()

	path := filepath.Join(base, filepath.FromSlash(dir))
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}

	return path
}

// touch creates n files named file-<i>.jpg inside dir, creating dir if needed.
func touch(t *testing.T, base string, dir string, n int) {
	t.Helper()

	path := mkdir(t, base, dir)

	for i := 0; i < n; i++ {
		name := filepath.Join(path, fmt.Sprintf("file-%d.jpg", i))
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

// setupTrees returns roots inside a fresh temporary directory. The trees
// themselves are not created.
func setupTrees(t *testing.T) (string, Roots) {
	t.Helper()

	base := t.TempDir()

	return base, Roots{
		Original:  filepath.Join(base, "wallpaper", "desktop"),
		Preview:   filepath.Join(base, "preview", "desktop"),
		Thumbnail: filepath.Join(base, "thumbnail", "desktop"),
	}
}

// populate creates the same directory with the given counts in each tree.
// A negative count leaves the directory absent from that tree.
func populate(t *testing.T, roots Roots, dir string, orig, prev, thumb int) {
	t.Helper()

	for _, tree := range []struct {
		root  string
		count int
	}{
		{roots.Original, orig},
		{roots.Preview, prev},
		{roots.Thumbnail, thumb},
	} {
		if tree.count >= 0 {
			touch(t, tree.root, dir, tree.count)
		}
	}
}
