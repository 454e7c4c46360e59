package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/slider/pkg/carousel"
)

const yamlConfig = `
title: Holidays
slides:
  - Beach
  - Mountains
  - City
carousel:
  slidesToShow: 2
  slidesToScroll: 1
  finite: true
  autoplay: 3s
  pagination: spaced
serve:
  port: 9000
`

const tomlConfig = `
title = "Holidays"
slides = ["Beach", "Mountains", "City"]

[carousel]
slidesToShow = 2
slidesToScroll = 1
finite = true
autoplay = "3s"
pagination = "spaced"

[serve]
port = 9000
`

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"yaml", yamlConfig, ".yaml"},
		{"yml", yamlConfig, ".yml"},
		{"toml", tomlConfig, ".toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data), tt.ext)
			require.NoError(t, err)

			assert.Equal(t, "Holidays", cfg.Title)
			assert.Equal(t, []string{"Beach", "Mountains", "City"}, cfg.Slides)
			assert.Equal(t, Duration(3*time.Second), cfg.Carousel.Autoplay)
			assert.Equal(t, "localhost:9000", cfg.Addr())

			cc, err := cfg.CarouselConfig()
			require.NoError(t, err)
			assert.Equal(t, carousel.Config{
				SlidesToShow:    2,
				SlidesToScroll:  1,
				Finite:          true,
				AutoplayTimeout: 3 * time.Second,
				Pagination:      carousel.PaginationSpaced,
			}, cc)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{}`), ".json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse([]byte("carousel:\n  autoplay: soon\n"), ".yaml")
	assert.ErrorContains(t, err, "invalid duration")

	_, err = Parse([]byte("slides = [\n"), ".toml")
	assert.Error(t, err)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("carousel:\n  finite: true\n"), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, Default().Slides, cfg.Slides)
	assert.Equal(t, "slider", cfg.Title)
	assert.Equal(t, "localhost:8080", cfg.Addr())
}

func TestCarouselConfig_Invalid(t *testing.T) {
	cfg := Default()
	cfg.Carousel.Pagination = "roman"
	_, err := cfg.CarouselConfig()
	assert.ErrorIs(t, err, carousel.ErrInvalidConfig)

	cfg = Default()
	cfg.Carousel.SlidesToAppend = -2
	_, err = cfg.CarouselConfig()
	assert.ErrorIs(t, err, carousel.ErrInvalidConfig)
}

func TestParsePagination(t *testing.T) {
	for name, want := range map[string]carousel.PaginationStyle{
		"":        carousel.PaginationNone,
		"none":    carousel.PaginationNone,
		"Compact": carousel.PaginationCompact,
		"spaced":  carousel.PaginationSpaced,
	} {
		got, err := ParsePagination(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, path, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "slider.toml"), []byte(tomlConfig), 0644))
	cfg, path, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slider.toml"), path)
	assert.Equal(t, "Holidays", cfg.Title)

	// YAML wins over TOML
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slider.yaml"), []byte("title: Yaml\n"), 0644))
	cfg, path, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slider.yaml"), path)
	assert.Equal(t, "Yaml", cfg.Title)
}

func TestSave(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := Default()
			want.Carousel.Autoplay = Duration(1500 * time.Millisecond)

			require.NoError(t, Save(want, path))
			got, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	assert.ErrorIs(t, Save(Default(), filepath.Join(t.TempDir(), "out.ini")), ErrUnsupportedFormat)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slider.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slides: [a]\n"), 0644))

	changes := make(chan *Config, 4)
	errs := make(chan error, 4)
	w, err := Watch(path, func(c *Config) { changes <- c }, func(err error) { errs <- err })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("slides: [a, b]\n"), 0644))
	select {
	case cfg := <-changes:
		assert.Equal(t, []string{"a", "b"}, cfg.Slides)
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	require.NoError(t, os.WriteFile(path, []byte("carousel:\n  autoplay: later\n"), 0644))
	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "invalid duration")
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
