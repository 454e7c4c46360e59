package main

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recera/slider/cmd/slider/internal/ui"
	"github.com/recera/slider/pkg/carousel"
)

func newPlayCommand(opts *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Preview the carousel in the terminal",
		Long: `Plays the carousel in the terminal. Use the arrow keys or the mouse to
navigate; edits to the config file are applied while it runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alternate screen owns the terminal
			if opts.debug {
				f, err := tea.LogToFile(logFile, "slider")
				if err != nil {
					return err
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			p, err := opts.load(cmd)
			if err != nil {
				return err
			}
			// The mouse is the only pointer a terminal has
			mouse := !cmd.Flags().Changed("mouse") || opts.mouse
			withMouse := func(p *project) carousel.Config {
				cfg := p.carousel
				cfg.SlidableWithMouse = mouse
				return cfg
			}

			reloads := make(chan ui.ReloadMsg, 1)
			defer close(reloads)
			stop, err := p.watch(func(p *project) {
				reloads <- ui.ReloadMsg{
					Title:  p.file.Title,
					Config: withMouse(p),
					Slides: p.file.Slides,
				}
			})
			if err != nil {
				return err
			}
			defer stop()

			return ui.Run(p.file.Title, withMouse(p), p.file.Slides, reloads)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "slider-debug.log", "Debug log destination while --debug is set")

	return cmd
}
