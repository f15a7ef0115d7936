package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string  { return color(colorRed, text) }
func cyan(text string) string { return color(colorCyan, text) }
func gray(text string) string { return color(colorGray, text) }
func bold(text string) string { return color(colorBold, text) }

// Format returns a multi-line error message for terminal display.
func (e *HyperError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(red(bold("ERROR ")))
		b.WriteString(bold(e.Code + ": "))
	} else {
		b.WriteString(red(bold("ERROR: ")))
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Location != nil {
		b.WriteString("  ")
		b.WriteString(cyan(e.Location.String()))
		b.WriteString("\n\n")

		if len(e.Context) > 0 {
			startLine := e.Location.Line - len(e.Context)/2
			if startLine < 1 {
				startLine = 1
			}
			for i, line := range e.Context {
				lineNum := startLine + i
				if lineNum == e.Location.Line {
					b.WriteString("  ")
					b.WriteString(red("→ "))
				} else {
					b.WriteString("    ")
				}
				b.WriteString(fmt.Sprintf("%4d", lineNum))
				b.WriteString(gray(" │ "))
				b.WriteString(line)
				b.WriteString("\n")

				if lineNum == e.Location.Line && e.Location.Column > 0 {
					b.WriteString("       ")
					b.WriteString(gray("│ "))
					b.WriteString(strings.Repeat(" ", e.Location.Column-1))
					b.WriteString(red("^"))
					b.WriteString("\n")
				}
			}
			b.WriteString("\n")
		}
	}

	detail := e.Detail
	if e.Wrapped != nil {
		if detail != "" {
			detail += ": "
		}
		detail += e.Wrapped.Error()
	}
	for _, line := range wrapText(detail, 70) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if detail != "" {
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *HyperError) FormatCompact() string {
	var b strings.Builder

	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Error())

	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// Fprint writes a formatted error to w.
func Fprint(w io.Writer, err error) {
	var he *HyperError
	if errors.As(err, &he) {
		fmt.Fprint(w, he.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", red(bold("ERROR:")), err.Error())
}
