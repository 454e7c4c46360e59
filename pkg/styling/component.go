package styling

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ComponentStyle represents a component's scoped styles
type ComponentStyle struct {
	// Hash is derived from the source CSS
	Hash string

	// names maps original class names to hashed class names
	// e.g., "track" -> "_1a2b3c_track"
	names map[string]string

	// CSS is the stylesheet with every class selector rewritten to its
	// hashed name
	CSS string

	// Source is the stylesheet as written
	Source string
}

// Style creates a new ComponentStyle, scoping every class selector in css
func Style(css string) *ComponentStyle {
	h := sha256.Sum256([]byte(css))
	hash := "_" + hex.EncodeToString(h[:])[:6]

	names := make(map[string]string)
	scoped := rewriteSelectors(removeComments(css), func(class string) string {
		hashed, ok := names[class]
		if !ok {
			hashed = hash + "_" + class
			names[class] = hashed
		}
		return hashed
	})

	return &ComponentStyle{
		Hash:   hash,
		names:  names,
		CSS:    scoped,
		Source: css,
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// rewriteSelectors replaces class names in selector position. Declaration
// blocks are copied untouched so values such as 0.5s are never mistaken
// for classes. Blocks opened by at-rules keep selector context.
func rewriteSelectors(css string, rename func(string) string) string {
	var out strings.Builder
	out.Grow(len(css) + len(css)/4)

	// stack holds whether each open block contains selectors
	var stack []bool
	inSelectors := true
	segmentStart := 0

	for i := 0; i < len(css); i++ {
		c := css[i]
		switch {
		case c == '{':
			atRule := strings.HasPrefix(strings.TrimSpace(css[segmentStart:i]), "@")
			stack = append(stack, inSelectors)
			inSelectors = inSelectors && atRule
			out.WriteByte(c)
			segmentStart = i + 1
		case c == '}':
			if len(stack) > 0 {
				inSelectors = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
			out.WriteByte(c)
			segmentStart = i + 1
		case c == ';' && inSelectors:
			// end of an at-rule statement such as @import
			out.WriteByte(c)
			segmentStart = i + 1
		case c == '.' && inSelectors && i+1 < len(css) && isIdentStart(css[i+1]):
			end := i + 1
			for end < len(css) && isIdent(css[end]) {
				end++
			}
			out.WriteByte('.')
			out.WriteString(rename(css[i+1 : end]))
			i = end - 1
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// removeComments removes CSS comments from the string
func removeComments(css string) string {
	result := strings.Builder{}
	i := 0
	for i < len(css) {
		if i < len(css)-1 && css[i] == '/' && css[i+1] == '*' {
			end := strings.Index(css[i+2:], "*/")
			if end < 0 {
				break
			}
			i += 2 + end + 2
		} else {
			result.WriteByte(css[i])
			i++
		}
	}
	return result.String()
}

// Class returns the hashed class name for the given original name.
// Unknown names are returned unchanged.
func (c *ComponentStyle) Class(name string) string {
	if c == nil {
		return name
	}
	if v, ok := c.names[name]; ok {
		return v
	}
	return name
}

// Classes returns multiple hashed class names separated by space
func (c *ComponentStyle) Classes(names ...string) string {
	hashed := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			hashed = append(hashed, c.Class(name))
		}
	}
	return strings.Join(hashed, " ")
}

// Has returns whether a class name exists in this component's styles
func (c *ComponentStyle) Has(name string) bool {
	if c == nil || c.names == nil {
		return false
	}
	_, ok := c.names[name]
	return ok
}

// GetHash returns the hash for this component's styles
func (c *ComponentStyle) GetHash() string {
	if c == nil {
		return ""
	}
	return c.Hash
}
