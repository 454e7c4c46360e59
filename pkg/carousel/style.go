package carousel

import "github.com/recera/slider/pkg/styling"

const stylesheet = `
.slider { position: relative; }
.main { display: flex; align-items: center; gap: 8px; }
.track { flex: 1; overflow: hidden; transition: height 0.5s; touch-action: pan-y; }
.track > ul {
	display: flex;
	margin: 0;
	padding: 0;
	list-style: none;
	transition-property: transform;
	transition-timing-function: ease;
}
.track > ul > li { flex: 0 0 calc(100% / var(--slides-per-page)); min-width: 0; }
.arrow { cursor: pointer; }
.arrow.disabled { opacity: 0.4; cursor: default; }
.dots { display: flex; justify-content: center; gap: 6px; margin: 8px 0 0; padding: 0; list-style: none; }
.dots .active button { font-weight: bold; }
.pages { display: block; text-align: center; }
`

var sheet = styling.StyleWithRegistry(stylesheet)

// Stylesheet returns the default carousel styles. The markup carries both
// the plain class names and their scoped variants, so pages may ship
// their own CSS instead.
func Stylesheet() *styling.ComponentStyle {
	return sheet
}

// classes expands each name into itself plus its scoped name when the
// default stylesheet defines it.
func classes(names ...string) []string {
	out := make([]string, 0, 2*len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		out = append(out, name)
		if sheet.Has(name) {
			out = append(out, sheet.Class(name))
		}
	}
	return out
}
