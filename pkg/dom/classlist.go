package dom

import "strings"

// ClassList is the live token list backing an element's class attribute.
type ClassList struct {
	owner *Element
}

func (cl *ClassList) tokens() []string {
	return strings.Fields(cl.owner.GetAttribute("class"))
}

func (cl *ClassList) setTokens(tokens []string) {
	cl.owner.SetAttribute("class", strings.Join(tokens, " "))
}

// Len returns the number of classes.
func (cl *ClassList) Len() int { return len(cl.tokens()) }

// Item returns the class at index, or "" when out of range.
func (cl *ClassList) Item(index int) string {
	t := cl.tokens()
	if index < 0 || index >= len(t) {
		return ""
	}
	return t[index]
}

// Contains reports whether the class is present.
func (cl *ClassList) Contains(token string) bool {
	for _, t := range cl.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add appends each class that is not already present, preserving order.
// Empty tokens and tokens containing whitespace are skipped.
func (cl *ClassList) Add(tokens ...string) {
	current := cl.tokens()
	changed := false
	for _, tok := range tokens {
		if tok == "" || strings.ContainsAny(tok, " \t\n\r\f") || contains(current, tok) {
			continue
		}
		current = append(current, tok)
		changed = true
	}
	if changed {
		cl.setTokens(current)
	}
}

// Remove removes each given class.
func (cl *ClassList) Remove(tokens ...string) {
	current := cl.tokens()
	out := current[:0]
	for _, t := range current {
		if !contains(tokens, t) {
			out = append(out, t)
		}
	}
	cl.setTokens(out)
}

// Toggle removes the class if present and adds it otherwise. It reports
// whether the class is present afterwards.
func (cl *ClassList) Toggle(token string) bool {
	if cl.Contains(token) {
		cl.Remove(token)
		return false
	}
	cl.Add(token)
	return true
}

// Values returns the classes in order.
func (cl *ClassList) Values() []string { return cl.tokens() }

// String returns the serialized class attribute.
func (cl *ClassList) String() string { return strings.Join(cl.tokens(), " ") }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
