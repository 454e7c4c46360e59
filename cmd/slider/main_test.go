package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/slider/pkg/carousel"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRender_DefaultsPage(t *testing.T) {
	out, err := execute(t, "render", "--dir", t.TempDir())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>slider</title>")
	assert.Contains(t, out, "Three")
	assert.NotContains(t, out, "<script")
}

func TestRender_FragmentWithOverrides(t *testing.T) {
	path := writeConfig(t, "slider.yaml", "slides: [a, b, c, d]\ncarousel:\n  slidesToShow: 1\n")

	out, err := execute(t, "render", "--fragment", "-c", path, "--show", "2", "--finite", "--class", "hero")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<div"))
	assert.Contains(t, out, "hero")
	assert.Contains(t, out, "--slides-per-page: 2")
	// finite without clones: four slides and two dots
	assert.Equal(t, 6, strings.Count(out, "<li"))
}

func TestRender_CSSToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "slider.css")
	out, err := execute(t, "render", "--css", "--dir", t.TempDir(), "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+dest)

	css, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, carousel.Stylesheet().CSS, string(css))
}

func TestRender_Errors(t *testing.T) {
	_, err := execute(t, "render", "--css", "--fragment", "--dir", t.TempDir())
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = execute(t, "render", "--dir", t.TempDir(), "--pagination", "roman")
	assert.ErrorIs(t, err, carousel.ErrInvalidConfig)

	path := writeConfig(t, "slider.toml", "slides = [\n")
	_, err = execute(t, "render", "-c", path)
	assert.ErrorContains(t, err, "failed to load config")

	_, err = execute(t, "render", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOverrides_OnlyChangedFlags(t *testing.T) {
	path := writeConfig(t, "slider.toml", "slides = [\"a\", \"b\", \"c\"]\n[carousel]\nslidesToShow = 2\nautoplay = \"4s\"\n")

	opts := &rootOptions{}
	cmd := &cobra.Command{Use: "probe"}
	opts.addPersistentFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"-c", path, "--finite", "--autoplay", "1s"}))

	p, err := opts.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, path, p.path)
	assert.Equal(t, 2, p.carousel.SlidesToShow)
	assert.True(t, p.carousel.Finite)
	assert.Equal(t, "1s", p.carousel.AutoplayTimeout.String())
}
