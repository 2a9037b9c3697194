package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseManifest(t *testing.T) {
	input := strings.Join([]string{
		"# user interface",
		"ui/panel.png Static",
		"",
		"fonts/nexon_lv2.fnt Static # bitmap font descriptor",
		"shaders/sprite.wgsl Dynamic",
		"user.settings Optional",
	}, "\n")

	list, err := ParseManifest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(list))
	}

	want := map[string]AssetType{
		"ui/panel.png":        AssetTypeStatic,
		"fonts/nexon_lv2.fnt": AssetTypeStatic,
		"shaders/sprite.wgsl": AssetTypeDynamic,
		"user.settings":       AssetTypeOptional,
	}
	for path, wantType := range want {
		got, ok := list[path]
		if !ok {
			t.Errorf("missing entry %q", path)
			continue
		}
		if got != wantType {
			t.Errorf("entry %q: got %v, want %v", path, got, wantType)
		}
	}
}

func TestParseManifestErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "missing type", input: "ui/panel.png", wantErr: "invalid syntax (line 1)"},
		{name: "extra field", input: "ui/panel.png Static Extra", wantErr: "invalid syntax (line 1)"},
		{name: "unknown type", input: "ui/panel.png Embedded", wantErr: `invalid type "Embedded" (line 1)`},
		{name: "duplicate path", input: "a.png Static\na.png Dynamic", wantErr: `duplicate path "a.png" (line 2)`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("got error %q, want %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestAssetTypePermissions(t *testing.T) {
	if !AssetTypeStatic.Readable() || AssetTypeStatic.Writable() || AssetTypeStatic.Creatable() {
		t.Error("Static should be read-only")
	}
	if !AssetTypeDynamic.Writable() || AssetTypeDynamic.Creatable() {
		t.Error("Dynamic should be writable but not creatable")
	}
	if !AssetTypeOptional.Writable() || !AssetTypeOptional.Creatable() {
		t.Error("Optional should be writable and creatable")
	}
}

// writeTestRoot lays down an asset root with a manifest, a 4x4 red PNG, and a
// shader source file.
func writeTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	manifest := strings.Join([]string{
		"red.png Static",
		"shader.wgsl Dynamic",
		"user.settings Optional",
	}, "\n")
	if err := os.WriteFile(filepath.Join(root, "AssetLists.txt"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "red.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(root, "shader.wgsl"), []byte("fn vs_main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	return root
}

func TestManagerImage(t *testing.T) {
	m, err := NewManager(writeTestRoot(t))
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	defer m.Close()

	img, err := m.Image("red.png")
	if err != nil {
		t.Fatalf("Image returned error: %v", err)
	}
	if img.Width != 4 || img.Height != 4 {
		t.Errorf("got %dx%d, want 4x4", img.Width, img.Height)
	}
	if len(img.Pixels) != 4*4*4 {
		t.Errorf("got %d pixel bytes, want %d", len(img.Pixels), 4*4*4)
	}
	if img.Pixels[0] != 255 || img.Pixels[1] != 0 || img.Pixels[3] != 255 {
		t.Errorf("first texel = %v, want opaque red", img.Pixels[:4])
	}
}

func TestManagerScaledImage(t *testing.T) {
	m, err := NewManager(writeTestRoot(t))
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	defer m.Close()

	img, err := m.ScaledImage("red.png", 2)
	if err != nil {
		t.Fatalf("ScaledImage returned error: %v", err)
	}
	if img.Width != 8 || img.Height != 8 {
		t.Errorf("got %dx%d, want 8x8", img.Width, img.Height)
	}
	if len(img.Pixels) != 8*8*4 {
		t.Errorf("got %d pixel bytes, want %d", len(img.Pixels), 8*8*4)
	}
}

func TestManagerShaderSource(t *testing.T) {
	m, err := NewManager(writeTestRoot(t))
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	defer m.Close()

	src, err := m.ShaderSource("shader.wgsl")
	if err != nil {
		t.Fatalf("ShaderSource returned error: %v", err)
	}
	if !strings.Contains(src, "vs_main") {
		t.Errorf("shader source missing expected content: %q", src)
	}

	if _, err := m.ShaderSource("unknown.wgsl"); err == nil {
		t.Error("expected error for unregistered asset")
	}
}

func TestManagerWriteFile(t *testing.T) {
	m, err := NewManager(writeTestRoot(t))
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	defer m.Close()

	if err := m.WriteFile("red.png", []byte("x")); err == nil {
		t.Error("expected error writing a Static asset")
	}

	// Optional assets can be created from nothing.
	if err := m.WriteFile("user.settings", []byte("resolution = 'W1280H720'")); err != nil {
		t.Errorf("WriteFile optional asset: %v", err)
	}

	// Dynamic assets can be overwritten.
	if err := m.WriteFile("shader.wgsl", []byte("fn fs_main() {}\n")); err != nil {
		t.Errorf("WriteFile dynamic asset: %v", err)
	}
	src, err := m.ShaderSource("shader.wgsl")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(src, "fs_main") {
		t.Errorf("overwrite not visible: %q", src)
	}
}
