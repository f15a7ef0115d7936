package h

import (
	"regexp"

	"github.com/vango-dev/hyperdom/pkg/dom"
)

// selectorToken matches one "tag", ".class" or "#id" token. Escapes are not
// supported, so class names and ids cannot contain '.', '#' or whitespace.
var selectorToken = regexp.MustCompile(`[.#]?[^\s#.]+`)

// defaultTag is used when the shorthand starts with a class or id.
const defaultTag = "div"

// parseSelector creates the element described by a "tag.class#id"
// shorthand. It returns nil when the string holds no tokens.
func parseSelector(doc *dom.Document, s string) *dom.Element {
	tokens := selectorToken.FindAllString(s, -1)
	if len(tokens) == 0 {
		return nil
	}

	var e *dom.Element
	if first := tokens[0]; first[0] == '.' || first[0] == '#' {
		e = doc.CreateElement(defaultTag)
	} else {
		e = doc.CreateElement(first)
		tokens = tokens[1:]
	}

	for _, tok := range tokens {
		switch tok[0] {
		case '.':
			e.ClassList().Add(tok[1:])
		case '#':
			e.SetAttribute("id", tok[1:])
		}
	}
	return e
}
