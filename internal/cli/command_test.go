package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/mirrorcount/internal/mirrorcount"
)

// touch creates n files inside dir under the working directory.
func touch(t *testing.T, dir string, n int) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}

	for i := 0; i < n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("%d.jpg", i))
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

// run executes the command in a fresh working directory prepared by setup.
func run(t *testing.T, setup func(), args ...string) (string, string, error) {
	t.Helper()

	wd, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatalf("failed to get working directory: %v", wdErr)
	}

	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	t.Cleanup(func() { _ = os.Chdir(wd) })

	if setup != nil {
		setup()
	}

	var stdout, stderr bytes.Buffer

	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}

	cmd := New("v0.0.0").Command()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestCommand_BaseMissing(t *testing.T) {
	stdout, _, err := run(t, nil)

	if !errors.Is(err, mirrorcount.ErrBaseMissing) {
		t.Fatalf("expected ErrBaseMissing, got %v", err)
	}

	if stdout != "" {
		t.Errorf("expected no report, got:\n%s", stdout)
	}

	if !strings.Contains(err.Error(), "wallpaper/desktop") {
		t.Errorf("expected error to name the base directory, got %q", err)
	}
}

func TestCommand_Mismatch(t *testing.T) {
	stdout, _, err := run(t, func() {
		touch(t, "wallpaper/desktop/cat", 5)
		touch(t, "preview/desktop/cat", 5)
		touch(t, "thumbnail/desktop/cat", 4)
	})
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	want := header +
		"cat                                                | 5     | 5     | 4     | MISMATCH\n" +
		"\nFound discrepancies in the directories listed above.\n"

	if stdout != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", stdout, want)
	}
}

func TestCommand_ExactMirror(t *testing.T) {
	setup := func() {
		for _, tree := range []string{"wallpaper", "preview", "thumbnail"} {
			touch(t, tree+"/desktop", 2)
			touch(t, tree+"/desktop/nature/forest", 3)
			touch(t, tree+"/desktop/nature/sea", 1)
		}
	}

	stdout, _, err := run(t, setup)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if want := header + "\nAll directories match perfectly!\n"; stdout != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", stdout, want)
	}

	again, _, err := run(t, setup)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if again != stdout {
		t.Errorf("runs differ:\n%s\n%s", stdout, again)
	}
}

func TestCommand_MissingThumbnailDir(t *testing.T) {
	stdout, _, err := run(t, func() {
		touch(t, "wallpaper/desktop/dog", 2)
		touch(t, "preview/desktop/dog", 2)
	})
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if !strings.Contains(stdout, "dog                                                | 2     | 2     | -1    | MISSING_DIR\n") {
		t.Errorf("expected MISSING_DIR row, got:\n%s", stdout)
	}
}

func TestCommand_Strict(t *testing.T) {
	setup := func() {
		touch(t, "wallpaper/desktop/cat", 1)
		touch(t, "preview/desktop/cat", 1)
	}

	if _, _, err := run(t, setup); err != nil {
		t.Errorf("expected success without --strict, got %v", err)
	}

	stdout, _, err := run(t, setup, "--strict")
	if !errors.Is(err, ErrDiscrepancies) {
		t.Errorf("expected ErrDiscrepancies, got %v", err)
	}

	if !strings.Contains(stdout, "MISSING_DIR") {
		t.Errorf("expected report before failing, got:\n%s", stdout)
	}
}

func TestCommand_CustomRootsAndJSON(t *testing.T) {
	stdout, _, err := run(t, func() {
		touch(t, "orig/a", 1)
		touch(t, "prev/a", 1)
		touch(t, "thumb/a", 1)
	}, "--original", "orig", "--preview", "prev", "--thumbnail", "thumb", "-o", "json", "--all")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	for _, want := range []string{`"path": "a"`, `"status": "OK"`, `"discrepancies": false`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %s in output:\n%s", want, stdout)
		}
	}
}

func TestCommand_InvalidOutput(t *testing.T) {
	_, _, err := run(t, nil, "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "invalid output format") {
		t.Errorf("expected invalid output error, got %v", err)
	}
}

func TestCommand_RejectsArguments(t *testing.T) {
	if _, _, err := run(t, nil, "somewhere"); err == nil {
		t.Error("expected positional arguments to be rejected")
	}
}

func TestCommand_Version(t *testing.T) {
	stdout, _, err := run(t, nil, "--version")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if stdout != "v0.0.0\n" {
		t.Errorf("expected version, got %q", stdout)
	}
}
