package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/recera/slider/pkg/carousel"
)

// FileNames are the config files looked up by Load, in order
var FileNames = []string{"slider.yaml", "slider.yml", "slider.toml"}

// ErrUnsupportedFormat is returned for config files that are neither YAML
// nor TOML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config represents a slider.yaml or slider.toml file
type Config struct {
	// Page title used by render and serve
	Title string `yaml:"title,omitempty" toml:"title,omitempty"`

	// Slides are the texts of the slides, in order
	Slides []string `yaml:"slides" toml:"slides"`

	Carousel CarouselConfig `yaml:"carousel" toml:"carousel"`

	Serve ServeConfig `yaml:"serve" toml:"serve"`
}

// CarouselConfig mirrors carousel.Config with file-friendly types
type CarouselConfig struct {
	SlidesToShow      int      `yaml:"slidesToShow,omitempty" toml:"slidesToShow,omitempty"`
	SlidesToScroll    int      `yaml:"slidesToScroll,omitempty" toml:"slidesToScroll,omitempty"`
	SlidesToAppend    int      `yaml:"slidesToAppend,omitempty" toml:"slidesToAppend,omitempty"`
	Finite            bool     `yaml:"finite,omitempty" toml:"finite,omitempty"`
	InitialSlide      int      `yaml:"initialSlide,omitempty" toml:"initialSlide,omitempty"`
	SlidableWithMouse bool     `yaml:"slidableWithMouse,omitempty" toml:"slidableWithMouse,omitempty"`
	Autoplay          Duration `yaml:"autoplay,omitempty" toml:"autoplay,omitempty"`
	AdaptiveHeight    bool     `yaml:"adaptiveHeight,omitempty" toml:"adaptiveHeight,omitempty"`

	// Pagination is "none", "compact" or "spaced"
	Pagination string `yaml:"pagination,omitempty" toml:"pagination,omitempty"`

	Class string `yaml:"class,omitempty" toml:"class,omitempty"`
}

// ServeConfig contains the live server settings
type ServeConfig struct {
	Host string `yaml:"host,omitempty" toml:"host,omitempty"`
	Port int    `yaml:"port,omitempty" toml:"port,omitempty"`
}

// Duration is a time.Duration written as "3s" or "1m30s"
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Title:  "slider",
		Slides: []string{"One", "Two", "Three", "Four", "Five"},
		Carousel: CarouselConfig{
			SlidesToShow: 1,
			Pagination:   "compact",
		},
		Serve: ServeConfig{
			Host: "localhost",
			Port: 8080,
		},
	}
}

// Find returns the first config file present in dir, or "" when there is
// none
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load loads the config file found in dir, or the defaults when there is
// none. The returned path is "" for defaults.
func Load(dir string) (*Config, string, error) {
	path := Find(dir)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFile(path)
	return cfg, path, err
}

// LoadFile parses the file at path according to its extension
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or
// ".toml") and applies defaults
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes cfg to path in the format named by its extension
func Save(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		data, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyDefaults fills the values a file left out
func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if cfg.Slides == nil {
		cfg.Slides = defaults.Slides
	}
	if cfg.Serve.Host == "" {
		cfg.Serve.Host = defaults.Serve.Host
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = defaults.Serve.Port
	}
}

var paginationStyles = []string{"none", "compact", "spaced"}

// ParsePagination maps a pagination name to its style. "" means none.
func ParsePagination(name string) (carousel.PaginationStyle, error) {
	if name == "" {
		return carousel.PaginationNone, nil
	}
	i := slices.Index(paginationStyles, strings.ToLower(name))
	if i < 0 {
		return 0, fmt.Errorf("%w: unknown pagination %q", carousel.ErrInvalidConfig, name)
	}
	return carousel.PaginationStyle(i), nil
}

// CarouselConfig converts the file settings and validates them
func (c *Config) CarouselConfig() (carousel.Config, error) {
	pagination, err := ParsePagination(c.Carousel.Pagination)
	if err != nil {
		return carousel.Config{}, err
	}
	cc := carousel.Config{
		SlidesToShow:      c.Carousel.SlidesToShow,
		SlidesToScroll:    c.Carousel.SlidesToScroll,
		SlidesToAppend:    c.Carousel.SlidesToAppend,
		Finite:            c.Carousel.Finite,
		InitialSlide:      c.Carousel.InitialSlide,
		SlidableWithMouse: c.Carousel.SlidableWithMouse,
		AutoplayTimeout:   time.Duration(c.Carousel.Autoplay),
		AdaptiveHeight:    c.Carousel.AdaptiveHeight,
		Pagination:        pagination,
		Class:             c.Carousel.Class,
	}
	if err := cc.Validate(); err != nil {
		return carousel.Config{}, err
	}
	return cc, nil
}

// Addr is the listen address of the live server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Serve.Host, c.Serve.Port)
}
