package builder

// === Form Attributes ===

// Disabled sets the disabled attribute
func (b *ElementBuilder) Disabled(disabled bool) *ElementBuilder {
	if disabled {
		b.props["disabled"] = true
	}
	return b
}

// Type sets the type attribute
func (b *ElementBuilder) Type(t string) *ElementBuilder {
	b.props["type"] = t
	return b
}

// === Document Attributes ===

// Charset sets the charset attribute
func (b *ElementBuilder) Charset(charset string) *ElementBuilder {
	b.props["charset"] = charset
	return b
}

// Lang sets the lang attribute
func (b *ElementBuilder) Lang(lang string) *ElementBuilder {
	b.props["lang"] = lang
	return b
}

// === Accessibility Attributes ===

// AriaLabel sets the aria-label attribute
func (b *ElementBuilder) AriaLabel(label string) *ElementBuilder {
	b.props["aria-label"] = label
	return b
}

// AriaCurrent marks the element as the current item of a set
func (b *ElementBuilder) AriaCurrent(current bool) *ElementBuilder {
	if current {
		b.props["aria-current"] = "true"
	}
	return b
}

// === Data Attributes ===

// Data sets a data attribute
func (b *ElementBuilder) Data(key, value string) *ElementBuilder {
	b.props["data-"+key] = value
	return b
}

// === Pointer Event Handlers ===

// OnMouseDown sets the onmousedown handler
func (b *ElementBuilder) OnMouseDown(handler interface{}) *ElementBuilder {
	b.props["onmousedown"] = handler
	return b
}

// OnMouseMove sets the onmousemove handler
func (b *ElementBuilder) OnMouseMove(handler interface{}) *ElementBuilder {
	b.props["onmousemove"] = handler
	return b
}

// OnMouseUp sets the onmouseup handler
func (b *ElementBuilder) OnMouseUp(handler interface{}) *ElementBuilder {
	b.props["onmouseup"] = handler
	return b
}

// OnTouchStart sets the ontouchstart handler
func (b *ElementBuilder) OnTouchStart(handler interface{}) *ElementBuilder {
	b.props["ontouchstart"] = handler
	return b
}

// OnTouchMove sets the ontouchmove handler
func (b *ElementBuilder) OnTouchMove(handler interface{}) *ElementBuilder {
	b.props["ontouchmove"] = handler
	return b
}

// OnTouchEnd sets the ontouchend handler
func (b *ElementBuilder) OnTouchEnd(handler interface{}) *ElementBuilder {
	b.props["ontouchend"] = handler
	return b
}

// === Custom Attributes ===

// Attr sets a custom attribute
func (b *ElementBuilder) Attr(key string, value interface{}) *ElementBuilder {
	b.props[key] = value
	return b
}

