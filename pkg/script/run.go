package script

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/dop251/goja"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hyperdom/internal/errors"
	"github.com/vango-dev/hyperdom/pkg/dom"
)

var (
	// syntaxPos finds "Line 3:14" in compiler errors.
	syntaxPos = regexp.MustCompile(`Line (\d+):(\d+)`)

	// framePos finds "file.js:3:14(" in exception stack frames.
	framePos = regexp.MustCompile(`:(\d+):(\d+)\(`)
)

// RunFile reads and runs a script file.
func (r *Runtime) RunFile(ctx context.Context, path string) (*dom.Element, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E014").WithDetail(path).Wrap(err)
	}
	return r.Run(ctx, path, string(src))
}

// Run compiles and runs src on the event loop. name is used in error
// locations. The value of the last expression must be an element.
func (r *Runtime) Run(ctx context.Context, name, src string) (el *dom.Element, err error) {
	ctx, span := r.tracer.Start(ctx, "script.run",
		trace.WithAttributes(
			attribute.String("script.name", name),
			attribute.Int("script.size", len(src)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return nil, locate(errors.New("E010").Wrap(err), name, err.Error(), syntaxPos)
	}

	err = r.Do(ctx, func(vm *goja.Runtime) error {
		v, err := vm.RunProgram(prog)
		if err != nil {
			if errors.HasCode(err, "E013") {
				return err
			}
			return locate(errors.New("E011").Wrap(err), name, err.Error(), framePos)
		}
		var ok bool
		if el, ok = v.Export().(*dom.Element); !ok || el == nil {
			return errors.New("E012").WithDetailf("%s evaluated to %s", name, describe(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("script ran", "name", name, "root", el.TagName())
	return el, nil
}

// locate adds the first position pattern finds in msg to err.
func locate(err *errors.HyperError, name, msg string, pattern *regexp.Regexp) *errors.HyperError {
	m := pattern.FindStringSubmatch(msg)
	if m == nil {
		return err
	}
	line, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	return err.WithLocation(name, line, col)
}

func describe(v goja.Value) string {
	switch {
	case v == nil || goja.IsUndefined(v):
		return "undefined"
	case goja.IsNull(v):
		return "null"
	}
	if x := v.Export(); x != nil {
		return fmt.Sprintf("%T", x)
	}
	return v.String()
}
