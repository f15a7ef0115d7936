package dom

import (
	"strings"
	"unicode"
)

// Style is an element's inline style declaration. Every change is reflected
// into the element's style attribute.
type Style struct {
	owner *Element

	decls map[string]*styleDecl

	// order keeps declaration order for serialization.
	order []string
}

type styleDecl struct {
	value    string
	priority string // "important" or ""
}

// Set assigns a property the way `el.style[name] = value` does: the name may
// be camelCase, the priority is reset, and an empty value removes the
// property.
func (s *Style) Set(name, value string) {
	s.SetProperty(name, value, "")
}

// SetProperty sets a property with an optional "important" priority.
func (s *Style) SetProperty(name, value, priority string) {
	name = normalizePropertyName(name)
	if name == "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		s.RemoveProperty(name)
		return
	}
	s.put(name, value, priority)
	s.sync()
}

func (s *Style) put(name, value, priority string) {
	pri := ""
	if strings.EqualFold(priority, "important") {
		pri = "important"
	}
	if _, ok := s.decls[name]; !ok {
		s.order = append(s.order, name)
	}
	s.decls[name] = &styleDecl{value: value, priority: pri}
}

// GetPropertyValue returns the value of a property or "".
func (s *Style) GetPropertyValue(name string) string {
	if d, ok := s.decls[normalizePropertyName(name)]; ok {
		return d.value
	}
	return ""
}

// GetPropertyPriority returns "important" or "".
func (s *Style) GetPropertyPriority(name string) string {
	if d, ok := s.decls[normalizePropertyName(name)]; ok {
		return d.priority
	}
	return ""
}

// RemoveProperty removes a property and returns its previous value.
func (s *Style) RemoveProperty(name string) string {
	name = normalizePropertyName(name)
	d, ok := s.decls[name]
	if !ok {
		return ""
	}
	delete(s.decls, name)
	for i, p := range s.order {
		if p == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.sync()
	return d.value
}

// Len returns the number of declarations.
func (s *Style) Len() int { return len(s.order) }

// Names returns property names in declaration order.
func (s *Style) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// CSSText serializes the declaration block.
func (s *Style) CSSText() string {
	parts := make([]string, 0, len(s.order))
	for _, name := range s.order {
		d := s.decls[name]
		part := name + ": " + d.value
		if d.priority == "important" {
			part += " !important"
		}
		parts = append(parts, part+";")
	}
	return strings.Join(parts, " ")
}

// SetCSSText replaces every declaration with those parsed from text.
func (s *Style) SetCSSText(text string) {
	s.parse(text)
	s.sync()
}

// parse resets the declarations from a style attribute value. Semicolons
// inside strings or url() are not supported.
func (s *Style) parse(text string) {
	s.decls = make(map[string]*styleDecl)
	s.order = nil

	for _, decl := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = normalizePropertyName(name)
		value = strings.TrimSpace(value)
		priority := ""
		if i := strings.LastIndex(value, "!"); i >= 0 &&
			strings.EqualFold(strings.TrimSpace(value[i+1:]), "important") {
			priority = "important"
			value = strings.TrimSpace(value[:i])
		}
		if name == "" || value == "" {
			continue
		}
		s.put(name, value, priority)
	}
}

// sync reflects the declarations into the style attribute.
func (s *Style) sync() {
	if s.owner == nil {
		return
	}
	if len(s.order) == 0 {
		if s.owner.HasAttribute("style") {
			s.owner.setAttr("style", "")
		}
		return
	}
	s.owner.setAttr("style", s.CSSText())
}

// normalizePropertyName converts camelCase names such as "backgroundColor"
// to their CSS form "background-color". Custom properties are kept as-is.
func normalizePropertyName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "--") {
		return name
	}
	if name == "cssFloat" {
		return "float"
	}

	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
