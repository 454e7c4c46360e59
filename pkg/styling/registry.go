package styling

import (
	"sort"
	"strings"
	"sync"
)

// StyleRegistry collects component styles for injection into a page
type StyleRegistry struct {
	mu     sync.RWMutex
	styles map[string]*ComponentStyle
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *StyleRegistry {
	return &StyleRegistry{styles: make(map[string]*ComponentStyle)}
}

// Register adds a component style, deduplicated by hash
func (r *StyleRegistry) Register(style *ComponentStyle) {
	if style == nil || style.CSS == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[style.Hash] = style
}

// CSS returns all registered CSS ordered by hash
func (r *StyleRegistry) CSS() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.styles))
	for k := range r.styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var cssBuilder strings.Builder
	for _, k := range keys {
		cssBuilder.WriteString(r.styles[k].CSS)
		cssBuilder.WriteString("\n")
	}
	return cssBuilder.String()
}

// Register adds a component style to the global registry
func Register(style *ComponentStyle) {
	globalRegistry.Register(style)
}

// GetAllCSS returns all globally registered CSS
func GetAllCSS() string {
	return globalRegistry.CSS()
}

// Reset clears all registered styles (useful for testing)
func Reset() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.styles = make(map[string]*ComponentStyle)
}

// StyleWithRegistry creates a new ComponentStyle and registers it
func StyleWithRegistry(css string) *ComponentStyle {
	style := Style(css)
	Register(style)
	return style
}
