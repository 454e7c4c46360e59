package styling

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyle(t *testing.T) {
	css := `
		.track {
			display: flex;
			transition: transform 0.5s ease;
		}
		.track > li.active {
			opacity: 1;
		}
	`

	style := Style(css)
	require.NotEmpty(t, style.Hash)
	assert.True(t, strings.HasPrefix(style.Hash, "_"))
	assert.Equal(t, css, style.Source)

	track := style.Class("track")
	assert.Equal(t, style.Hash+"_track", track)
	assert.Equal(t, style.Hash+"_active", style.Class("active"))
	assert.True(t, style.Has("track"))
	assert.False(t, style.Has("5s"), "declaration values must not be scoped")

	assert.Contains(t, style.CSS, "."+track+" {")
	assert.Contains(t, style.CSS, "."+track+" > li."+style.Class("active"))
	assert.Contains(t, style.CSS, "transform 0.5s ease")
}

func TestStyle_StableHash(t *testing.T) {
	a := Style(`.dots { margin: 0; }`)
	b := Style(`.dots { margin: 0; }`)
	c := Style(`.dots { margin: 1px; }`)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestStyle_AtRules(t *testing.T) {
	style := Style(`@media (max-width: 600px) { .arrow { display: none; } } .pages { width: 1.5em; }`)

	assert.Contains(t, style.CSS, "."+style.Class("arrow")+" {")
	assert.Contains(t, style.CSS, "."+style.Class("pages")+" {")
	assert.Contains(t, style.CSS, "width: 1.5em")
	assert.True(t, style.Has("arrow"))
}

func TestStyle_Comments(t *testing.T) {
	style := Style("/* .hidden { } */.main { color: red; }/* trailing")

	assert.False(t, style.Has("hidden"))
	assert.True(t, style.Has("main"))
	assert.NotContains(t, style.CSS, "trailing")
}

func TestComponentStyle_Classes(t *testing.T) {
	style := Style(`.arrow { } .disabled { }`)

	assert.Equal(t, style.Class("arrow")+" "+style.Class("disabled"), style.Classes("arrow", "", "disabled"))
	assert.Equal(t, "unknown", style.Class("unknown"))

	var nilStyle *ComponentStyle
	assert.Equal(t, "arrow", nilStyle.Class("arrow"))
	assert.False(t, nilStyle.Has("arrow"))
	assert.Empty(t, nilStyle.GetHash())
}

func TestStyleRegistry(t *testing.T) {
	Reset()
	defer Reset()

	style1 := StyleWithRegistry(`.test1 { color: red; }`)
	_ = StyleWithRegistry(`.test2 { color: blue; }`)
	Register(style1)
	Register(nil)

	allCSS := GetAllCSS()
	assert.Equal(t, 1, strings.Count(allCSS, "color: red"))
	assert.Contains(t, allCSS, "color: blue")
	assert.Contains(t, allCSS, style1.Class("test1"))

	Reset()
	assert.Empty(t, GetAllCSS())
}

func TestStyleRegistry_Ordered(t *testing.T) {
	r := NewRegistry()
	a := Style(`.a { }`)
	b := Style(`.b { }`)
	r.Register(b)
	r.Register(a)

	first, second := a, b
	if b.Hash < a.Hash {
		first, second = b, a
	}
	assert.Equal(t, first.CSS+"\n"+second.CSS+"\n", r.CSS())
}
