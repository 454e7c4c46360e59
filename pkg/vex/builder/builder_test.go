package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/slider/pkg/vango/vdom"
)

func TestBuilder_Element(t *testing.T) {
	clicked := false
	node := Button().
		Class("arrow").
		ClassIf(true, "disabled").
		ClassIf(false, "hidden").
		Disabled(true).
		AriaLabel("Next").
		OnClick(func() { clicked = true }).
		Text("Next").
		Build()

	require.Equal(t, vdom.KindElement, node.Kind)
	assert.Equal(t, "button", node.Tag)
	assert.Equal(t, "arrow disabled", node.Props["class"])
	assert.Equal(t, true, node.Props["disabled"])
	assert.Equal(t, "Next", node.Props["aria-label"])
	assert.True(t, node.HasFlag(vdom.FlagHasEvents))
	assert.Equal(t, "Next", node.TextContent())

	node.Props["onclick"].(func())()
	assert.True(t, clicked)
}

func TestBuilder_StyleKeepsOrder(t *testing.T) {
	node := Ul().
		Style("--slides-per-page", "2").
		Style("transform", "translateX(-50%)").
		Style("transition-duration", "0.5s").
		Build()

	assert.Equal(t, "--slides-per-page: 2; transform: translateX(-50%); transition-duration: 0.5s", node.Props["style"])
}

func TestBuilder_ChildrenSkipNil(t *testing.T) {
	var missing *vdom.VNode
	node := Div().Children(
		Li().Key("a").Build(),
		missing,
		Li().Key("b").Build(),
	).Build()

	require.Len(t, node.Kids, 2)
	assert.Equal(t, "a", node.Kids[0].GetKey())
	assert.True(t, node.Kids[1].HasFlag(vdom.FlagHasKey))
}

func TestBuilder_DataAndPointerHandlers(t *testing.T) {
	noop := func() {}
	node := Div().
		Data("carousel", "viewport").
		OnMouseDown(noop).
		OnTouchStart(noop).
		Build()

	assert.Equal(t, "viewport", node.Props["data-carousel"])
	assert.Contains(t, node.Props, "onmousedown")
	assert.Contains(t, node.Props, "ontouchstart")
	assert.Same(t, node, node.Find("data-carousel", "viewport"))
}
