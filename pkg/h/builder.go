package h

import (
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/vango-dev/hyperdom/internal/errors"
	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

// build is the state of a single H call.
type build struct {
	ctx *Context
	el  *dom.Element
}

// H builds one element from args and returns it. It returns nil when no
// argument established an element.
func (c *Context) H(args ...any) *dom.Element {
	b := &build{ctx: c}
	for _, arg := range args {
		b.item(arg)
	}
	return b.el
}

// item folds one argument into the element under construction and returns
// the node it inserted, if any.
func (b *build) item(arg any) dom.Node {
	switch v := arg.(type) {
	case nil:
		return nil

	case string:
		if b.el == nil {
			if b.el = parseSelector(b.ctx.doc, v); b.el != nil {
				b.ctx.metrics.ElementBuilt()
			}
			return nil
		}
		return b.appendText(v)

	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, time.Time, []byte:
		return b.appendText(toText(v))

	case *regexp.Regexp:
		if v == nil {
			return nil
		}
		return b.appendText(toText(v))

	case []any:
		for _, x := range v {
			b.item(x)
		}
		return nil

	case *dom.Element:
		if v == nil {
			return nil
		}
		if b.el == nil {
			// An existing element stands in for the selector.
			b.el = v
			return nil
		}
		return b.appendNode(v)

	case dom.Node:
		if !dom.IsNode(v) {
			return nil
		}
		return b.appendNode(v)

	case reactive.Observable:
		return b.bindChild(v)
	}

	if rec, ok := toRecord(arg); ok {
		b.assign(rec)
		return nil
	}

	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.String:
		// Named string types behave like strings.
		return b.item(rv.String())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return b.appendText(toText(arg))
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			b.item(rv.Index(i).Interface())
		}
		return nil
	}

	b.ctx.logger.Debug("ignoring unsupported argument", "type", fmt.Sprintf("%T", arg))
	return nil
}

// require returns the element under construction or panics when there is
// none.
func (b *build) require(what string) *dom.Element {
	if b.el == nil {
		panic(errors.New("E001").WithDetailf("%s given before a selector or element", what))
	}
	return b.el
}

func (b *build) appendText(s string) dom.Node {
	el := b.require("text")
	t := b.ctx.doc.CreateTextNode(s)
	if err := el.AppendChild(t); err != nil {
		b.ctx.logger.Warn("append failed", "error", err)
		return nil
	}
	return t
}

func (b *build) appendNode(n dom.Node) dom.Node {
	el := b.require("node")
	if err := el.AppendChild(n); err != nil {
		b.ctx.logger.Warn("append failed", "node", n.NodeName(), "error", err)
		return nil
	}
	return n
}

// toRecord normalizes Props and other string-keyed maps.
func toRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Props:
		return m, true
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
