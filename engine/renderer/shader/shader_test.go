package shader

import (
	"strings"
	"testing"
)

const testSource = `//#include viewport
//#include anchor

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}

@fragment
fn fs_alt() -> @location(0) vec4<f32> {
    return vec4<f32>(0.5);
}
`

func TestProcessExpandsIncludes(t *testing.T) {
	got, err := NewPreProcessor().Process(testSource)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !strings.Contains(got, "struct Viewport") {
		t.Error("viewport include not expanded")
	}
	if !strings.Contains(got, "fn resolve_anchor") {
		t.Error("anchor include not expanded")
	}
	if strings.Contains(got, includePrefix) {
		t.Error("directive text leaked into processed source")
	}
}

func TestProcessDeduplicatesIncludes(t *testing.T) {
	src := "//#include viewport\n//#include viewport\n"
	got, err := NewPreProcessor().Process(src)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if n := strings.Count(got, "struct Viewport"); n != 1 {
		t.Errorf("viewport expanded %d times, want 1", n)
	}
}

func TestProcessUnknownInclude(t *testing.T) {
	_, err := NewPreProcessor().Process("//#include nonsense\n")
	if err == nil {
		t.Fatal("expected error for unknown include")
	}
	if !strings.Contains(err.Error(), "nonsense") {
		t.Errorf("error should name the include, got %v", err)
	}
}

func TestProcessMalformedInclude(t *testing.T) {
	_, err := NewPreProcessor().Process("//#include two words\n")
	if err == nil {
		t.Fatal("expected error for malformed directive")
	}
}

func TestProcessLeavesPlainSourceUntouched(t *testing.T) {
	src := "fn noop() {}\n// a comment, not a directive\n"
	got, err := NewPreProcessor().Process(src)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if got != src {
		t.Errorf("plain source changed:\n%q\nwant\n%q", got, src)
	}
}

func TestNewShaderParsesEntryPoints(t *testing.T) {
	s, err := NewShader("test", testSource)
	if err != nil {
		t.Fatalf("NewShader returned error: %v", err)
	}
	if s.VertexEntryPoint() != "vs_main" {
		t.Errorf("VertexEntryPoint = %q, want vs_main", s.VertexEntryPoint())
	}
	if s.FragmentEntryPoint() != "fs_main" {
		t.Errorf("FragmentEntryPoint = %q, want fs_main", s.FragmentEntryPoint())
	}
	if s.Module() == nil || s.Module().WGSLDescriptor.Code != s.Source() {
		t.Error("module descriptor not built from processed source")
	}
}

func TestNewShaderFragmentOverride(t *testing.T) {
	s, err := NewShader("test", testSource, WithFragmentEntryPoint("fs_alt"))
	if err != nil {
		t.Fatalf("NewShader returned error: %v", err)
	}
	if s.FragmentEntryPoint() != "fs_alt" {
		t.Errorf("FragmentEntryPoint = %q, want fs_alt", s.FragmentEntryPoint())
	}

	if _, err := NewShader("test", testSource, WithFragmentEntryPoint("fs_missing")); err == nil {
		t.Error("expected error for a missing fragment entry point")
	}
}

func TestNewShaderRequiresBothStages(t *testing.T) {
	if _, err := NewShader("test", "fn nothing() {}\n"); err == nil {
		t.Error("expected error for source without entry points")
	}
}
