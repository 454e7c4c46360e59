package live

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/recera/slider/pkg/carousel"
	"github.com/recera/slider/pkg/renderer/html"
	"github.com/recera/slider/pkg/scheduler"
	"github.com/recera/slider/pkg/styling"
	"github.com/recera/slider/pkg/vango/vdom"
	"github.com/recera/slider/pkg/vex/builder"
)

//go:embed client.js
var clientScript string

const pageCSS = `
body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 960px; padding: 24px; }
.slide { padding: 48px 16px; margin: 0 4px; border-radius: 8px; background: #eef2f7; text-align: center; font-size: 1.4em; }
`

var pageStyle = styling.StyleWithRegistry(pageCSS)

// renderOptions is shared by the page and the sessions so both produce
// the same markup
var renderOptions = carousel.RenderOptions[string]{
	Slide: func(slide string, _ int) *vdom.VNode {
		return builder.Div().Class(pageStyle.Class("slide")).Text(slide).Build()
	},
}

// clientConfig is handed to the browser script
type clientConfig struct {
	Session  string   `json:"session"`
	Path     string   `json:"path"`
	Active   []string `json:"active"`
	Disabled []string `json:"disabled"`
	Adaptive bool     `json:"adaptive"`
}

// RenderPage writes the server-rendered page for one session. The markup
// is the carousel's initial state; the embedded client takes over once the
// websocket connects. An empty sessionID renders a static page without the
// client.
func RenderPage(w io.Writer, title, sessionID string, cfg carousel.Config, slides []string) error {
	view, err := renderView(cfg, slides)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	head := builder.Head().Children(
		builder.Meta().Charset("utf-8").Build(),
		builder.Meta().Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1").Build(),
		builder.Title().Text(title).Build(),
		builder.StyleTag().Text(styling.GetAllCSS()).Build(),
	).Build()

	var script *vdom.VNode
	if sessionID != "" {
		sheet := carousel.Stylesheet()
		boot, err := json.Marshal(clientConfig{
			Session:  sessionID,
			Path:     LivePath,
			Active:   []string{"active", sheet.Class("active")},
			Disabled: []string{"disabled", sheet.Class("disabled")},
			Adaptive: cfg.AdaptiveHeight,
		})
		if err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		script = builder.Script().Text("window.__slider = " + string(boot) + ";\n" + clientScript).Build()
	}
	body := builder.Body().Children(view, script).Build()

	doc := builder.Html().Lang("en").Children(head, body).Build()
	return html.RenderDocument(w, doc)
}

// RenderFragment writes the carousel markup alone, for embedding into an
// existing page next to the stylesheet
func RenderFragment(w io.Writer, cfg carousel.Config, slides []string) error {
	view, err := renderView(cfg, slides)
	if err != nil {
		return fmt.Errorf("render fragment: %w", err)
	}
	markup, err := html.RenderToString(view)
	if err != nil {
		return fmt.Errorf("render fragment: %w", err)
	}
	_, err = io.WriteString(w, markup)
	return err
}

// renderView renders the initial state of a carousel on a throwaway
// timeline
func renderView(cfg carousel.Config, slides []string) (*vdom.VNode, error) {
	ctrl, err := carousel.New(cfg, slides, carousel.WithTimers(scheduler.NewVirtual()))
	if err != nil {
		return nil, err
	}
	defer ctrl.Close()
	return carousel.Render(ctrl, renderOptions), nil
}
