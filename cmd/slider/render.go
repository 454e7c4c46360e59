package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/slider/pkg/carousel"
	"github.com/recera/slider/pkg/live"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var output string
	var fragment bool
	var css bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the carousel to static HTML",
		Long: `Renders the initial state of the carousel as a standalone HTML page, or as
a markup fragment (--fragment) or stylesheet (--css) to embed elsewhere.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fragment && css {
				return fmt.Errorf("--fragment and --css are mutually exclusive")
			}
			p, err := opts.load(cmd)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			switch {
			case css:
				_, err = io.WriteString(w, carousel.Stylesheet().CSS)
			case fragment:
				err = live.RenderFragment(w, p.carousel, p.file.Slides)
			default:
				err = live.RenderPage(w, p.file.Title, "", p.carousel, p.file.Slides)
			}
			if err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "✅ Wrote %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "Render only the carousel markup")
	cmd.Flags().BoolVar(&css, "css", false, "Render only the carousel stylesheet")

	return cmd
}
