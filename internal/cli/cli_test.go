package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with a config path that does not exist,
// so every command starts from the built-in defaults.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&out)
	root.SetErr(&out)
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	root.SetArgs(append(args, "--config", cfg))
	err := root.Execute()
	return out.String(), err
}

func TestRenderWritesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sine.png")
	out, err := run(t, "render", "sin(x)", "-o", path, "--size", "64x48")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Saved "+path+" (64x48 pixels)") {
		t.Errorf("output missing save line:\n%s", out)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("image size = %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}

func TestRenderViewFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"window", []string{"--window", "-2,2,-1,1"}, "over [-2, 2]x[-1, 1]"},
		{"zoom", []string{"--zoom", "2"}, "over [-5, 5]x[-5, 5]"},
		{"pan", []string{"--pan", "25,0"}, "over [-11, 9]x[-10, 10]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.png")
			args := append([]string{"render", "x", "-o", path}, tt.args...)
			out, err := run(t, args...)
			if err != nil {
				t.Fatalf("render: %v\n%s", err, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderJPEGByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	if out, err := run(t, "render", "x", "-o", path, "--size", "32x32"); err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Errorf("file does not start with a JPEG SOI marker")
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"compile error", []string{"x +* "}},
		{"bad window", []string{"x", "--window", "1,2,3"}},
		{"inverted window", []string{"x", "--window", "2,1,0,1"}},
		{"bad size", []string{"x", "--size", "0x10"}},
		{"bad zoom", []string{"x", "--zoom", "-1"}},
		{"bad pan", []string{"x", "--pan", "nan,0"}},
		{"bad format", []string{"x", "--format", "bmp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.png")
			args := append([]string{"render", "-o", path}, tt.args...)
			if _, err := run(t, args...); err == nil {
				t.Fatal("expected an error")
			}
			if _, err := os.Stat(path); err == nil {
				t.Error("no image should be written on error")
			}
		})
	}
}

func TestOpsListsFrame(t *testing.T) {
	out, err := run(t, "ops", "x", "--size", "100x100")
	if err != nil {
		t.Fatalf("ops: %v", err)
	}
	if !strings.HasPrefix(out, "=== Operations (") {
		t.Errorf("missing header:\n%.200s", out)
	}
	if !strings.Contains(out, "    1: clearRect 0.00 0.00 100.00 100.00") {
		t.Errorf("first op should clear the surface:\n%.400s", out)
	}
	if !strings.Contains(out, `strokeStyle "#0000ff"`) {
		t.Error("curve stroke color not listed")
	}
}

func TestTraceShowsSegments(t *testing.T) {
	out, err := run(t, "trace", "1/x")
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	for _, want := range []string{
		"y = 1/x",
		"Window: [-10, 10]x[-10, 10]",
		"Surface: 500x500 pixels",
		"501 samples, 2 segments",
		"   0: ",
		"   1: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFunctionsListing(t *testing.T) {
	out, err := run(t, "functions")
	if err != nil {
		t.Fatalf("functions: %v", err)
	}
	if !strings.HasPrefix(out, "=== Functions (") {
		t.Errorf("missing header:\n%s", out)
	}
	for _, want := range []string{"  abs\n", "  fact\n", "  sin\n", "Variable: x"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "  pi\n") {
		t.Error("constants should not be listed as functions")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grapher.yaml")
	exec := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := NewRootCommand("test")
		root.SetOut(&out)
		root.SetArgs(append(args, "--config", path))
		err := root.Execute()
		return out.String(), err
	}

	if out, err := exec("config", "init"); err != nil || !strings.Contains(out, "Wrote "+path) {
		t.Fatalf("config init = %q, %v", out, err)
	}
	if _, err := exec("config", "init"); err == nil {
		t.Error("second init should refuse to overwrite")
	}
	if _, err := exec("config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := exec("config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"expression: sin(x)", "xmin: -10", "addr: localhost:8080"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUsesConfigExpression(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "grapher.yaml")
	out := filepath.Join(dir, "from-config.png")
	data := "expression: \"100\"\noutput: " + out + "\nsize:\n  width: 40\n  height: 30\n"
	if err := os.WriteFile(cfg, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&buf)
	root.SetArgs([]string{"render", "--config", cfg})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "0 segments") {
		t.Errorf("y = 100 should plot nothing inside [-10, 10]:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "(40x30 pixels)") {
		t.Errorf("config size not applied:\n%s", buf.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("config output not written: %v", err)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		w, h int
		err  bool
	}{
		{"800x600", 800, 600, false},
		{"64X48", 64, 48, false},
		{" 10 x 20 ", 10, 20, false},
		{"800", 0, 0, true},
		{"0x5", 0, 0, true},
		{"ax5", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("parseSize(%q) = %d, %d; want %d, %d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}
