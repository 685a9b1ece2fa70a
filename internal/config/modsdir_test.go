package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDeployConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deploy.config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveModsDirEnvWins(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(ModsDirKey, envDir)

	file := writeDeployConfig(t, "MODS_DIR=/somewhere/else\n")

	got, err := ResolveModsDir(file)
	require.NoError(t, err)
	assert.Equal(t, envDir, got)
}

func TestResolveModsDirFromConfigFile(t *testing.T) {
	t.Setenv(ModsDirKey, "")
	dir := t.TempDir()

	file := writeDeployConfig(t, "# deploy settings\n\nOTHER=1\nMODS_DIR=  # empty, skipped\nMODS_DIR="+dir+"  # game mods\n")

	got, err := ResolveModsDir(file)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveModsDirExpandsEnv(t *testing.T) {
	t.Setenv(ModsDirKey, "")
	base := t.TempDir()
	t.Setenv("MODWATCH_GAME_DIR", base)

	file := writeDeployConfig(t, "MODS_DIR=$MODWATCH_GAME_DIR/mods\n")

	got, err := ResolveModsDir(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "mods"), got)
}

func TestResolveModsDirKeepsUnsetVars(t *testing.T) {
	t.Setenv(ModsDirKey, "")
	base := t.TempDir()
	t.Setenv("MODWATCH_GAME_DIR", base)

	file := writeDeployConfig(t, "MODS_DIR=${MODWATCH_GAME_DIR}/$MODWATCH_NO_SUCH_VAR/${MODWATCH_NO_SUCH_VAR}\n")

	got, err := ResolveModsDir(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "$MODWATCH_NO_SUCH_VAR", "${MODWATCH_NO_SUCH_VAR}"), got)
}

func TestResolveModsDirUnset(t *testing.T) {
	t.Setenv(ModsDirKey, "")

	_, err := ResolveModsDir(filepath.Join(t.TempDir(), "missing.config"))
	require.ErrorIs(t, err, ErrModsDirUnset)

	file := writeDeployConfig(t, "# MODS_DIR=/commented/out\n")
	_, err = ResolveModsDir(file)
	require.ErrorIs(t, err, ErrModsDirUnset)
}
