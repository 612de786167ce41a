package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Flagged(t *testing.T) {
	setupCmdEnv(t)

	stdout, _, err := executeCommand(t, "classify", "--name", "The Rusty Pub", "--hours", "6pm - 2am")
	require.NoError(t, err)
	assert.Equal(t, "Bar/pub with no daytime hours\n", stdout)
}

func TestClassify_MultipleReasons(t *testing.T) {
	setupCmdEnv(t)

	stdout, _, err := executeCommand(t, "classify", "--name", "Iron Gym", "--hours", "Closes at 5pm")
	require.NoError(t, err)
	assert.Equal(t, "Business type: gym\nCloses early at 5pm\n", stdout)
}

func TestClassify_Suitable(t *testing.T) {
	setupCmdEnv(t)

	stdout, _, err := executeCommand(t, "classify", "--name", "Maple Hall", "--description", "Quiet tables", "--hours", "8am - 6pm")
	require.NoError(t, err)
	assert.Equal(t, "suitable\n", stdout)
}

func TestClassify_RequiresName(t *testing.T) {
	setupCmdEnv(t)

	_, _, err := executeCommand(t, "classify", "--hours", "9am - 5pm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name is required")
}

func TestRules_PrintsDefaultCatalog(t *testing.T) {
	setupCmdEnv(t)

	stdout, _, err := executeCommand(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rules:")
	assert.Contains(t, stdout, "unsuitable_keywords:")
	assert.Contains(t, stdout, "- nightclub")
	assert.Contains(t, stdout, "bar_keywords:")
}

func TestRules_FromConfigPath(t *testing.T) {
	dir := setupCmdEnv(t)
	rulesPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(rulesPath, []byte("rules:\n  unsuitable_keywords: [Bowling Alley]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("rules:\n  path: custom.yaml\n"), 0o644))

	stdout, _, err := executeCommand(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "- bowling alley")
	assert.NotContains(t, stdout, "- nightclub")
}
