package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exts = []string{".java", ".json"}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFilesFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a-b/x.java", "1")
	writeFile(t, root, "a/x.java", "2")
	writeFile(t, root, "a/z.json", "3")
	writeFile(t, root, "a/readme.txt", "4")
	writeFile(t, root, "Main.java", "5")

	files, err := Files(root, exts)
	require.NoError(t, err)

	want := []string{"Main.java", "a/x.java", "a/z.json", "a-b/x.java"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Files() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesFollowsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	target := writeFile(t, t.TempDir(), "Shared.java", "class Shared {}")
	writeFile(t, root, "Main.java", "class Main {}")
	if err := os.Symlink(target, filepath.Join(root, "Shared.java")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.java"), filepath.Join(root, "Dangling.java")))

	files, err := Files(root, exts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Main.java", "Shared.java"}, files)
}

func TestFilesMissingRoot(t *testing.T) {
	files, err := Files(filepath.Join(t.TempDir(), "absent"), exts)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiff(t *testing.T) {
	t0 := time.Unix(1000, 0)
	t1 := time.Unix(2000, 0)

	prev := Snapshot{"a.java": t0, "b.java": t0, "c.json": t0}
	cur := Snapshot{"a.java": t0, "b.java": t1, "d.java": t0}

	got := cur.Diff(prev)
	want := Change{
		Added:    []string{"d.java"},
		Removed:  []string{"c.json"},
		Modified: []string{"b.java"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, prev.Diff(prev).Empty())
}

func TestTakeTracksModTime(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "pkg/Mod.java", "class Mod {}")
	writeFile(t, root, "notes.md", "ignored")

	before, err := Take(root, exts)
	require.NoError(t, err)
	require.Len(t, before, 1)

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	after, err := Take(root, exts)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/Mod.java"}, after.Diff(before).Modified)
}
