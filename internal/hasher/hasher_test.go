package hasher

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exts = []string{".java", ".json"}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func sampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "main/java/com/topzurdo/mod/TopZurdoMod.java", "public class TopZurdoMod {}")
	writeFile(t, root, "main/java/com/topzurdo/mod/ModConstants.java", "final class ModConstants {}")
	writeFile(t, root, "main/resources/fabric.mod.json", `{"id":"topzurdo"}`)
	writeFile(t, root, "main/resources/README.txt", "docs")
	return root
}

func TestHashIsDeterministic(t *testing.T) {
	root := sampleTree(t)

	first, err := Hash(root, exts)
	require.NoError(t, err)
	second, err := Hash(root, exts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), first.String())
}

func TestHashChangesWithAllowListedContent(t *testing.T) {
	root := sampleTree(t)
	before, err := Hash(root, exts)
	require.NoError(t, err)

	writeFile(t, root, "main/resources/fabric.mod.json", `{"id":"topzurdo2"}`)

	after, err := Hash(root, exts)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestHashIgnoresOtherFiles(t *testing.T) {
	root := sampleTree(t)
	before, err := Hash(root, exts)
	require.NoError(t, err)

	writeFile(t, root, "main/resources/README.txt", "rewritten docs")
	writeFile(t, root, "main/resources/icon.png", "\x89PNG")

	after, err := Hash(root, exts)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestHashIndependentOfRootLocation(t *testing.T) {
	a := sampleTree(t)
	b := sampleTree(t)

	ha, err := Hash(a, exts)
	require.NoError(t, err)
	hb, err := Hash(b, exts)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestHashEmptyTree(t *testing.T) {
	// sha256 of no input
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	got, err := Hash(filepath.Join(t.TempDir(), "missing"), exts)
	require.NoError(t, err)
	assert.Equal(t, Digest(empty), got)
}

func TestHashFollowsFileSymlinks(t *testing.T) {
	plain := t.TempDir()
	writeFile(t, plain, "Shared.java", "class Shared {}")

	shared := t.TempDir()
	writeFile(t, shared, "Shared.java", "class Shared {}")
	linked := t.TempDir()
	if err := os.Symlink(filepath.Join(shared, "Shared.java"), filepath.Join(linked, "Shared.java")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	want, err := Hash(plain, exts)
	require.NoError(t, err)
	got, err := Hash(linked, exts)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
