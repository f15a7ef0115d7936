package script

import (
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/vango-dev/hyperdom/internal/errors"
	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/h"
	"github.com/vango-dev/hyperdom/pkg/reactive"
)

func (r *Runtime) setupGlobals() {
	vm := r.vm
	vm.Set("h", r.builderFunc(r.builder))
	vm.Set("observable", r.newObservable)
	vm.Set("document", r.doc)
	r.setupConsole()
	r.setupTimers()
}

// builderFunc exposes a context as a JS function with cleanup and context
// methods attached.
func (r *Runtime) builderFunc(c *h.Context) *goja.Object {
	vm := r.vm
	fn := vm.ToValue(func(call goja.FunctionCall) goja.Value {
		args := make([]any, len(call.Arguments))
		for i, a := range call.Arguments {
			args[i] = r.toArg(a)
		}
		el, err := build(c, args)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		if el == nil {
			return goja.Null()
		}
		return vm.ToValue(el)
	}).(*goja.Object)

	_ = fn.Set("cleanup", func(goja.FunctionCall) goja.Value {
		c.Cleanup()
		return goja.Undefined()
	})
	_ = fn.Set("context", func(goja.FunctionCall) goja.Value {
		return r.builderFunc(r.newContext())
	})
	return fn
}

// build calls H and turns the content-before-element panic into an error.
func build(c *h.Context, args []any) (el *dom.Element, err error) {
	defer func() {
		if p := recover(); p != nil {
			e, ok := p.(error)
			if !ok || !errors.HasCode(e, "E001") {
				panic(p)
			}
			err = e
		}
	}()
	return c.H(args...), nil
}

// newObservable implements observable(initial). The returned function reads
// the value when called with no arguments, subscribes when called with a
// function (returning the unsubscribe function) and writes otherwise. It
// also has a set method.
func (r *Runtime) newObservable(call goja.FunctionCall) goja.Value {
	vm := r.vm
	sig := reactive.NewSignal[any](r.toArg(call.Argument(0)))

	obj := vm.ToValue(func(c goja.FunctionCall) goja.Value {
		if len(c.Arguments) == 0 {
			return vm.ToValue(sig.Get())
		}
		arg := c.Argument(0)
		if listener, ok := goja.AssertFunction(arg); ok {
			unsub := sig.Subscribe(func(v any) {
				if _, err := listener(goja.Undefined(), vm.ToValue(v)); err != nil {
					r.logger.Error("observable listener failed", "error", err)
				}
			})
			return vm.ToValue(func(goja.FunctionCall) goja.Value {
				unsub()
				return goja.Undefined()
			})
		}
		sig.Set(r.toArg(arg))
		return goja.Undefined()
	}).(*goja.Object)

	_ = obj.Set("set", func(c goja.FunctionCall) goja.Value {
		sig.Set(r.toArg(c.Argument(0)))
		return goja.Undefined()
	})
	r.observables[obj] = sig
	return obj
}

// setupConsole routes console output to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	logger := r.logger.With("source", "console")

	_ = console.Set("log", func(call goja.FunctionCall) goja.Value {
		logger.Info(formatArgs(call.Arguments))
		return goja.Undefined()
	})
	_ = console.Set("info", func(call goja.FunctionCall) goja.Value {
		logger.Info(formatArgs(call.Arguments))
		return goja.Undefined()
	})
	_ = console.Set("debug", func(call goja.FunctionCall) goja.Value {
		logger.Debug(formatArgs(call.Arguments))
		return goja.Undefined()
	})
	_ = console.Set("warn", func(call goja.FunctionCall) goja.Value {
		logger.Warn(formatArgs(call.Arguments))
		return goja.Undefined()
	})
	_ = console.Set("error", func(call goja.FunctionCall) goja.Value {
		logger.Error(formatArgs(call.Arguments))
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// setupTimers creates setTimeout, setInterval, clearTimeout and
// clearInterval.
func (r *Runtime) setupTimers() {
	vm := r.vm

	schedule := func(call goja.FunctionCall, repeat bool) goja.Value {
		callback, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			return goja.Undefined()
		}
		delay := call.Argument(1).ToInteger()
		if delay < 0 {
			delay = 0
		}
		var args []goja.Value
		if len(call.Arguments) > 2 {
			args = call.Arguments[2:]
		}

		d := time.Duration(delay) * time.Millisecond
		if repeat {
			return vm.ToValue(r.timers.setInterval(callback, d, args))
		}
		return vm.ToValue(r.timers.setTimeout(callback, d, args))
	}
	clearTimer := func(call goja.FunctionCall) goja.Value {
		r.timers.clear(int(call.Argument(0).ToInteger()))
		return goja.Undefined()
	}

	vm.Set("setTimeout", func(call goja.FunctionCall) goja.Value {
		return schedule(call, false)
	})
	vm.Set("setInterval", func(call goja.FunctionCall) goja.Value {
		return schedule(call, true)
	})
	vm.Set("clearTimeout", clearTimer)
	vm.Set("clearInterval", clearTimer)
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatValue(arg)
	}
	return strings.Join(parts, " ")
}

func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	if n, ok := v.Export().(dom.Node); ok && dom.IsNode(n) {
		if s, err := dom.OuterHTML(n); err == nil {
			return s
		}
	}
	return v.String()
}
