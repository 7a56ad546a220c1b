package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
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
			name:    "runtime error",
			code:    "E001",
			wantMsg: "Hook called outside a component render",
			wantCat: CategoryRuntime,
		},
		{
			name:    "legacy root unsupported",
			code:    "E020",
			wantMsg: "LegacyRoot is not supported by this runtime",
			wantCat: CategoryConfig,
		},
		{
			name:    "internal invariant",
			code:    "E021",
			wantMsg: "Attempted to hydrate a non-hydrateable root. This is a bug in vtl",
			wantCat: CategoryInternal,
		},
		{
			name:    "hydration error",
			code:    "E040",
			wantMsg: "Hydration mismatch",
			wantCat: CategoryHydration,
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

func TestNewf(t *testing.T) {
	err := Newf(CategoryQuery, "no role %q", "dialog")
	if err.Message != `no role "dialog"` {
		t.Errorf("Message = %q, want %q", err.Message, `no role "dialog"`)
	}
	if err.Category != CategoryQuery {
		t.Errorf("Category = %q, want %q", err.Category, CategoryQuery)
	}
}

func TestVtlError_Error(t *testing.T) {
	err := New("E011")
	if got, want := err.Error(), "E011: Maximum update depth exceeded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &VtlError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}

	err3 := New("E031").Wrap(fmt.Errorf("permission denied"))
	if got, want := err3.Error(), "E031: Configuration file could not be read: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLegacyRootCarriesRemediation(t *testing.T) {
	err := New("E020")
	if !strings.Contains(err.Suggestion, "runtime.NewLegacy") {
		t.Errorf("Suggestion = %q, want mention of runtime.NewLegacy", err.Suggestion)
	}
	if !strings.Contains(err.FormatCompact(), "Remove the LegacyRoot option") {
		t.Errorf("FormatCompact() = %q, want remediation text", err.FormatCompact())
	}
}

func TestVtlError_Builders(t *testing.T) {
	err := New("E001").
		WithSuggestion("call it in render").
		WithDetail("custom detail").
		WithExample("n, setN := reactive.UseState(0)")

	if err.Suggestion != "call it in render" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if err.Detail != "custom detail" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Example != "n, setN := reactive.UseState(0)" {
		t.Errorf("Example = %q", err.Example)
	}
}

func TestVtlError_Wrap(t *testing.T) {
	inner := New("E002")
	outer := New("E003").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, Sentinel("E002")) {
		t.Error("errors.Is should find the wrapped code")
	}
}

func TestVtlError_Is(t *testing.T) {
	err := fmt.Errorf("render: %w", New("E020"))
	if !stderrors.Is(err, Sentinel("E020")) {
		t.Error("errors.Is(E020) = false, want true")
	}
	if stderrors.Is(err, Sentinel("E021")) {
		t.Error("errors.Is(E021) = true, want false")
	}
	if stderrors.Is(&VtlError{Message: "x"}, &VtlError{Message: "x"}) {
		t.Error("errors without code must not match")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	ve := New("E001")
	if FromError(ve, "E002") != ve {
		t.Error("FromError should return VtlError as-is")
	}

	stdErr := stderrors.New("boom")
	result := FromError(stdErr, "E070")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Code != "E070" {
		t.Errorf("Code = %q, want E070", result.Code)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E010").WithExample("vtest.Act(func() { setN(1) })").Format()
	for _, want := range []string{
		"ERROR E010: An update was not wrapped in Act",
		"Hint: Wrap code that causes state updates in vtest.Act",
		"Example:",
		"    vtest.Act(func() { setN(1) })",
		"Learn more: https://vango.dev/docs/testing/errors/E010",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() contains ANSI codes with colors disabled")
	}
}

func TestFormatJSON(t *testing.T) {
	var got map[string]string
	if err := json.Unmarshal([]byte(New("E040").FormatJSON()), &got); err != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v", err)
	}
	if got["code"] != "E040" || got["category"] != "hydration" {
		t.Errorf("FormatJSON() = %v", got)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Fprint() = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, line := range lines {
		if len(line) > 20 {
			t.Errorf("line %q longer than 20", line)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if tmpl.Message == "" || tmpl.DocURL == "" {
			t.Errorf("%s: template incomplete: %+v", code, tmpl)
		}
	}

	Register("E999", ErrorTemplate{Category: CategoryCLI, Message: "custom"})
	defer delete(registry, "E999")
	if New("E999").Message != "custom" {
		t.Error("Register did not take effect")
	}
}
