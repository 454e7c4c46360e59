package vdom

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents a DOM element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents a fragment (multiple children without parent)
	KindFragment
)

// VNodeFlags are bitwise flags for VNode optimizations
type VNodeFlags uint8

const (
	// FlagHasKey indicates this node has a key for list reconciliation
	FlagHasKey VNodeFlags = 1 << iota
	// FlagHasRef indicates this node has a ref callback
	FlagHasRef
	// FlagHasEvents indicates this node has event listeners
	FlagHasEvents
)

// Props represents the properties/attributes of a VNode.
// Event handlers live here too, under "on"-prefixed keys.
type Props map[string]any

// VNode represents a virtual DOM node.
// Once built a VNode is treated as immutable.
type VNode struct {
	Kind VKind

	// Tag is the element tag name, only used when Kind == KindElement
	Tag string

	Props Props

	// Kids contains child nodes; nil for text nodes
	Kids []VNode

	// Key is used for keyed list reconciliation
	Key string

	Flags VNodeFlags

	// Text content, only used when Kind == KindText
	Text string
}

// NewElement creates a new element VNode
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	var flags VNodeFlags
	for k := range props {
		if isEventProp(k) {
			flags |= FlagHasEvents
		}
	}
	if _, ok := props["key"]; ok {
		flags |= FlagHasKey
	}
	if _, ok := props["ref"]; ok {
		flags |= FlagHasRef
	}

	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  collect(children),
		Flags: flags,
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	return &VNode{
		Kind: KindFragment,
		Kids: collect(children),
	}
}

// collect converts child pointers to values, dropping nils so optional
// children can be passed inline.
func collect(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool {
	return v.Kind == KindElement
}

// IsText returns true if this is a text node
func (v VNode) IsText() bool {
	return v.Kind == KindText
}

// HasFlag returns true if the specified flag is set
func (v VNode) HasFlag(flag VNodeFlags) bool {
	return v.Flags&flag != 0
}

// GetKey returns the key of this node, preferring the "key" prop
func (v VNode) GetKey() string {
	if key, ok := v.Props["key"].(string); ok {
		return key
	}
	return v.Key
}

// Find returns the first element in the tree (depth first, including v)
// whose prop equals value. Used by tests and by renderers that need to
// reach a well-known node such as the carousel track.
func (v *VNode) Find(prop string, value any) *VNode {
	if v == nil {
		return nil
	}
	if v.Kind == KindElement {
		if got, ok := v.Props[prop]; ok && got == value {
			return v
		}
	}
	for i := range v.Kids {
		if found := v.Kids[i].Find(prop, value); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates all text below v
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	s := ""
	for i := range v.Kids {
		s += v.Kids[i].TextContent()
	}
	return s
}
