package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/recera/slider/cmd/slider/internal/config"
	"github.com/recera/slider/pkg/carousel"
	"github.com/recera/slider/pkg/debug"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath string
	dir        string
	debug      bool

	show       int
	scroll     int
	clones     int
	finite     bool
	initial    int
	mouse      bool
	autoplay   time.Duration
	adaptive   bool
	pagination string
	class      string
}

func (o *rootOptions) addPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Config file (defaults to slider.yaml, slider.yml or slider.toml in --dir)")
	flags.StringVar(&o.dir, "dir", ".", "Directory searched for a config file")
	flags.BoolVar(&o.debug, "debug", false, "Log scheduler, state and carousel internals")

	// Carousel overrides, applied on top of the config file
	flags.IntVar(&o.show, "show", 1, "Slides visible at once")
	flags.IntVar(&o.scroll, "scroll", 0, "Slides moved per navigation (0 means --show)")
	flags.IntVar(&o.clones, "append", 0, "Extra clones on each end of the track")
	flags.BoolVar(&o.finite, "finite", false, "Stop at both ends instead of looping")
	flags.IntVar(&o.initial, "initial", 0, "Initial slide")
	flags.BoolVar(&o.mouse, "mouse", false, "Allow dragging with the mouse")
	flags.DurationVar(&o.autoplay, "autoplay", 0, "Advance automatically after this long (0 disables)")
	flags.BoolVar(&o.adaptive, "adaptive", false, "Size the viewport to the active slide")
	flags.StringVar(&o.pagination, "pagination", "", `Page label: "none", "compact" or "spaced"`)
	flags.StringVar(&o.class, "class", "", "Extra class on the carousel root")
}

func (o *rootOptions) setupLogging() {
	if o.debug {
		log.SetFlags(log.Ltime | log.Lmicroseconds)
		debug.EnableLogging(log.Println)
	}
}

// overrides returns a func applying the carousel flags set on the command
// line to a loaded config
func (o *rootOptions) overrides(cmd *cobra.Command) func(*config.Config) {
	changed := cmd.Flags().Changed
	return func(cfg *config.Config) {
		c := &cfg.Carousel
		if changed("show") {
			c.SlidesToShow = o.show
		}
		if changed("scroll") {
			c.SlidesToScroll = o.scroll
		}
		if changed("append") {
			c.SlidesToAppend = o.clones
		}
		if changed("finite") {
			c.Finite = o.finite
		}
		if changed("initial") {
			c.InitialSlide = o.initial
		}
		if changed("mouse") {
			c.SlidableWithMouse = o.mouse
		}
		if changed("autoplay") {
			c.Autoplay = config.Duration(o.autoplay)
		}
		if changed("adaptive") {
			c.AdaptiveHeight = o.adaptive
		}
		if changed("pagination") {
			c.Pagination = o.pagination
		}
		if changed("class") {
			c.Class = o.class
		}
	}
}

// project is a loaded config with the command line applied
type project struct {
	path     string
	file     *config.Config
	carousel carousel.Config
	apply    func(*config.Config)
}

// load reads the config file (or defaults) and applies the flags
func (o *rootOptions) load(cmd *cobra.Command) (*project, error) {
	var (
		file *config.Config
		path = o.configPath
		err  error
	)
	if path != "" {
		file, err = config.LoadFile(path)
	} else {
		file, path, err = config.Load(o.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path == "" {
		log.Printf("[Slider] No config file in %s, using defaults", o.dir)
	}

	p := &project{path: path, apply: o.overrides(cmd)}
	if err := p.update(file); err != nil {
		return nil, err
	}
	return p, nil
}

// update applies the flags to a freshly loaded file and converts it
func (p *project) update(file *config.Config) error {
	p.apply(file)
	cc, err := file.CarouselConfig()
	if err != nil {
		if p.path != "" {
			return fmt.Errorf("%s: %w", p.path, err)
		}
		return err
	}
	p.file, p.carousel = file, cc
	return nil
}

// watch calls onChange with every valid version of the config file until
// the returned func is called. Without a config file it does nothing.
func (p *project) watch(onChange func(*project)) (stop func(), err error) {
	if p.path == "" {
		return func() {}, nil
	}
	w, err := config.Watch(p.path, func(file *config.Config) {
		if err := p.update(file); err != nil {
			log.Printf("[Slider] Ignoring config change: %v", err)
			return
		}
		onChange(p)
	}, nil)
	if err != nil {
		return nil, err
	}
	log.Printf("[Slider] Watching %s for changes", p.path)
	return func() { w.Close() }, nil
}
