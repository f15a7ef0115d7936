package h

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

// Props is a record of handlers, properties, styles and attributes.
//
// Keys are applied in sorted order:
//   - "on..." keys holding a dom.EventHandler, func(*dom.Event) or func()
//     become event handler properties;
//   - reactive.Observable values are bound to the property of that name;
//   - "style" takes a CSS string or a record of style properties;
//   - "attrs" takes a record of literal attributes;
//   - "data-..." keys are set as attributes;
//   - anything else is assigned as an element property.
type Props map[string]any

var (
	handlerKey = regexp.MustCompile(`^on\w+`)

	// importantValue captures the value in front of a trailing !important.
	importantValue = regexp.MustCompile(`(.*)\W+!important\W*$`)
)

// assign applies a record to the element under construction.
func (b *build) assign(rec map[string]any) {
	el := b.require("record")

	for _, k := range sortedKeys(rec) {
		v := rec[k]

		if IsHandlerKey(k) {
			if fn, ok := asHandler(v); ok {
				el.SetHandler(k, fn)
				continue
			}
		}
		if obs, ok := v.(reactive.Observable); ok {
			b.bindProperty(el, k, obs)
			continue
		}

		switch {
		case k == "style":
			b.assignStyle(el, v)
		case k == "attrs":
			b.assignAttrs(el, v)
		case strings.HasPrefix(k, "data-"):
			el.SetAttribute(k, toText(v))
		default:
			el.SetProperty(k, v)
		}
	}
}

// IsHandlerKey reports whether a record key names an event handler
// property: "on" followed by at least one word character.
func IsHandlerKey(key string) bool {
	return handlerKey.MatchString(key)
}

func (b *build) assignStyle(el *dom.Element, v any) {
	if s, ok := v.(string); ok {
		el.Style().SetCSSText(s)
		return
	}
	rec, ok := toRecord(v)
	if !ok {
		b.ctx.logger.Debug("ignoring style value", "value", v)
		return
	}

	for _, name := range sortedKeys(rec) {
		switch sv := rec[name].(type) {
		case reactive.Observable:
			// Observables are bound before any !important parsing.
			b.bindStyle(el, name, sv)
		case string:
			if m := importantValue.FindStringSubmatch(sv); m != nil {
				el.Style().SetProperty(name, m[1], "important")
			} else {
				el.Style().Set(name, sv)
			}
		default:
			el.Style().Set(name, toText(sv))
		}
	}
}

func (b *build) assignAttrs(el *dom.Element, v any) {
	rec, ok := toRecord(v)
	if !ok {
		b.ctx.logger.Debug("ignoring attrs value", "value", v)
		return
	}
	for _, name := range sortedKeys(rec) {
		el.SetAttribute(name, toText(rec[name]))
	}
}

// asHandler reports whether v has one of the accepted handler shapes.
func asHandler(v any) (dom.EventHandler, bool) {
	switch fn := v.(type) {
	case dom.EventHandler:
		return fn, fn != nil
	case func(*dom.Event):
		return fn, fn != nil
	case func():
		if fn == nil {
			return nil, false
		}
		return func(*dom.Event) { fn() }, true
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
