package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDir_RepoData(t *testing.T) {
	v := &DataValidator{out: io.Discard}
	require.NoError(t, v.validateDir(filepath.Join("..", "..", "data")))
	assert.Empty(t, v.errors)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestValidateDir_ReportsEverything(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "weapons.yaml"), "weapons:\n  - name: Stick\n    damage: 4\n")
	writeFile(t, filepath.Join(dir, "creatures.yaml"), "creatures:\n  - id: 1\n    name: Rat\n")
	writeFile(t, filepath.Join(dir, "people", "Bad-Name.yaml"), "name: Ann\ndescription: a cook\n")
	writeFile(t, filepath.Join(dir, "people", "ann.yaml"), "name: ann\ndescription: another cook\n")
	writeFile(t, filepath.Join(dir, "people", "rock.yaml"), "description: a rock\n")
	writeFile(t, filepath.Join(dir, "people", "notes.txt"), "ignored")

	v := &DataValidator{out: io.Discard}
	err := v.validateDir(dir)
	require.Error(t, err)

	all := strings.Join(v.errors, "\n")
	assert.Len(t, v.errors, 5, all)
	assert.Contains(t, all, "weapons.yaml")
	assert.Contains(t, all, "failed to read")
	assert.Contains(t, all, "'Bad-Name.yaml' should be lowercase snake_case")
	assert.Contains(t, all, "Bad-Name.yaml and ann.yaml are both named 'ann'")
	assert.Contains(t, all, "rock.yaml")
}

func TestValidateDir_NoPeopleDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "weapons.yaml"), "weapons: []\n")
	writeFile(t, filepath.Join(dir, "armors.yaml"), "armors: []\n")
	writeFile(t, filepath.Join(dir, "creatures.yaml"), "creatures: []\n")

	v := &DataValidator{out: io.Discard}
	assert.NoError(t, v.validateDir(dir))
}

func TestIsValidID(t *testing.T) {
	assert.True(t, isValidID("lord_british"))
	assert.True(t, isValidID("x"))
	assert.False(t, isValidID("Iolo"))
	assert.False(t, isValidID("lord-british"))
	assert.False(t, isValidID("trailing_"))
}
