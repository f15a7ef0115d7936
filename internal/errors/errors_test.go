package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "builder error",
			code:    "E001",
			wantMsg: "Content added before an element exists",
			wantCat: CategoryBuilder,
		},
		{
			name:    "script error",
			code:    "E011",
			wantMsg: "Script threw an exception",
			wantCat: CategoryScript,
		},
		{
			name:    "publish error",
			code:    "E031",
			wantMsg: "Snapshot upload failed",
			wantCat: CategoryPublish,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("E031").WithDetail("bucket=site").Wrap(cause)

	want := "E031: Snapshot upload failed: bucket=site: boom"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("errors.Is should find the wrapped cause")
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("render: %w", New("E012"))

	if !stderrors.Is(err, New("E012")) {
		t.Fatal("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E011")) {
		t.Fatal("errors.Is should not match a different code")
	}
	if !HasCode(err, "E012") {
		t.Fatal("HasCode(E012) = false")
	}
}

func TestHasCodeNested(t *testing.T) {
	inner := New("E031").Wrap(stderrors.New("denied"))
	outer := New("E050").Wrap(inner)

	if !HasCode(outer, "E031") {
		t.Fatal("HasCode should walk wrapped HyperErrors")
	}
	if HasCode(stderrors.New("plain"), "E031") {
		t.Fatal("HasCode on a plain error should be false")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E011") != nil {
		t.Fatal("FromError(nil) should be nil")
	}

	existing := New("E010")
	if FromError(fmt.Errorf("x: %w", existing), "E011") != existing {
		t.Fatal("FromError should return the wrapped HyperError")
	}

	wrapped := FromError(stderrors.New("io"), "E014")
	if wrapped.Code != "E014" || wrapped.Wrapped == nil {
		t.Fatalf("FromError = %+v", wrapped)
	}
}

func TestWithLocationReadsContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.js")
	src := "line1\nline2\nline3\nline4\nline5\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E011").WithLocation(path, 3, 2)
	if len(err.Context) != 5 || err.Context[2] != "line3" {
		t.Fatalf("Context = %v", err.Context)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E010").Wrap(stderrors.New("unexpected token"))
	err.Location = &Location{File: "page.js", Line: 2, Column: 3}
	err.Context = []string{"h('div',", "  ,", ")"}

	out := err.Format()
	for _, want := range []string{
		"ERROR E010: Script failed to compile",
		"page.js:2:3",
		"→    2 │   ,",
		"unexpected token",
		"Hint: Check the script for syntax errors",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Fatalf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Fatal("empty text should produce no lines")
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate("E001"); !ok {
		t.Fatal("E001 should be registered")
	}
}
