package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexjean/devify/internal/assistant"
	"github.com/alexjean/devify/internal/catalog"
	"github.com/alexjean/devify/internal/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("DEVIFY_CONFIG_PATH", "")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTracksCommand(t *testing.T) {
	out, err := run(t, "tracks")
	require.NoError(t, err)
	for _, p := range catalog.Default().Projects() {
		assert.Contains(t, out, p.Title)
	}
	assert.Contains(t, out, "3:45")
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := renderTable([]string{"#", "Title"}, [][]string{{"1", "Short"}, {"10"}}, []columnAlignment{alignRight})
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, out, "Short")
	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestAskWithoutKeyPrintsFallback(t *testing.T) {
	out, err := run(t, "ask", "which", "project", "uses", "Redis?")
	require.NoError(t, err)
	assert.Contains(t, out, assistant.FallbackError)
}

func TestGreetWithoutKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.wav")
	_, err := run(t, "greet", "--out", path)
	assert.ErrorIs(t, err, gemini.ErrNoAPIKey)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no partial file is left behind")
}

func TestServeRejectsArgs(t *testing.T) {
	_, err := run(t, "serve", "extra")
	assert.Error(t, err)
}

func TestBadConfigFailsFast(t *testing.T) {
	t.Setenv("DEVIFY_STORAGE", "postgres")
	cmd := newRootCommand()
	cmd.SetArgs([]string{"tracks"})
	cmd.SetOut(&bytes.Buffer{})
	assert.ErrorContains(t, cmd.Execute(), "db.driver")
}
