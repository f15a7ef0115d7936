package script

import (
	"regexp"
	"strconv"

	"github.com/dop251/goja"

	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/h"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

// toArg converts a JS value into an h argument:
//   - undefined and null become nil;
//   - primitives are exported as Go scalars;
//   - arrays become []any, converted element by element;
//   - Date and RegExp become time.Time and *regexp.Regexp;
//   - functions from observable() become their signal, other functions
//     become observables following the fn() / fn(listener) convention;
//   - wrapped Go nodes and observables pass through;
//   - any other object becomes h.Props.
func (r *Runtime) toArg(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return v.Export()
	}

	if obs, ok := r.observables[obj]; ok {
		return obs
	}
	if fn, ok := goja.AssertFunction(obj); ok {
		return r.funcObservable(fn)
	}

	switch obj.ClassName() {
	case "Array":
		return r.toArgs(obj)
	case "Date":
		return obj.Export()
	case "RegExp":
		return toRegexp(obj)
	}

	switch x := obj.Export().(type) {
	case dom.Node:
		return x
	case reactive.Observable:
		return x
	case h.Props:
		return x
	}
	return r.toProps(obj)
}

func (r *Runtime) toArgs(arr *goja.Object) []any {
	n := int(arr.Get("length").ToInteger())
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.toArg(arr.Get(strconv.Itoa(i))))
	}
	return out
}

// toProps converts a plain object. Functions under on* keys become event
// handlers; everything else goes through toArg.
func (r *Runtime) toProps(obj *goja.Object) h.Props {
	keys := obj.Keys()
	props := make(h.Props, len(keys))
	for _, k := range keys {
		v := obj.Get(k)
		if h.IsHandlerKey(k) {
			if fo, ok := v.(*goja.Object); ok {
				if _, isObs := r.observables[fo]; !isObs {
					if fn, ok := goja.AssertFunction(fo); ok {
						props[k] = r.handler(fn)
						continue
					}
				}
			}
		}
		props[k] = r.toArg(v)
	}
	return props
}

// handler wraps a JS function as an event handler. this is the current
// target and the only argument is the event.
func (r *Runtime) handler(fn goja.Callable) dom.EventHandler {
	return func(ev *dom.Event) {
		var this goja.Value = goja.Undefined()
		if ev.CurrentTarget != nil {
			this = r.vm.ToValue(ev.CurrentTarget)
		}
		if _, err := fn(this, r.vm.ToValue(ev)); err != nil {
			r.logger.Error("event handler failed", "event", ev.Type, "error", err)
		}
	}
}

// funcObservable adapts a function that returns its value when called with
// no arguments and, called with a listener, subscribes it and returns a
// function that removes it.
func (r *Runtime) funcObservable(fn goja.Callable) reactive.Observable {
	read := func() any {
		v, err := fn(goja.Undefined())
		if err != nil {
			r.logger.Warn("observable read failed", "error", err)
			return nil
		}
		return r.toArg(v)
	}
	subscribe := func(cb func(any)) func() {
		listener := r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			cb(r.toArg(call.Argument(0)))
			return goja.Undefined()
		})
		ret, err := fn(goja.Undefined(), listener)
		if err != nil {
			r.logger.Warn("observable subscribe failed", "error", err)
			return nil
		}
		stop, ok := goja.AssertFunction(ret)
		if !ok {
			return nil
		}
		return func() {
			if _, err := stop(goja.Undefined()); err != nil {
				r.logger.Warn("observable unsubscribe failed", "error", err)
			}
		}
	}
	return reactive.Func(read, subscribe)
}

// toRegexp compiles a JS RegExp's source. Patterns Go cannot compile are
// rendered from their source text.
func toRegexp(obj *goja.Object) any {
	src := obj.Get("source").String()
	re, err := regexp.Compile(src)
	if err != nil {
		return "/" + src + "/"
	}
	return re
}
