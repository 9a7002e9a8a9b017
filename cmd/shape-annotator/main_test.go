package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/shape-annotator/internal/config"
)

// createTriangleImage writes a filled green triangle on a white canvas and
// returns its path
func createTriangleImage(t *testing.T) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 160, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 160; x++ {
			img.Set(x, y, color.White)
		}
	}
	// Apex at (80,30), base from (30,120) to (130,120)
	for y := 30; y <= 120; y++ {
		half := (y - 30) * 50 / 90
		for x := 80 - half; x <= 80+half; x++ {
			img.Set(x, y, color.NRGBA{G: 200, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "triangle.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func testConfig() *config.Config {
	return &config.Config{LogLevel: "info", Backend: "native", OutputSuffix: "_annotated"}
}

func execute(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, testConfig(), "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "shape-annotator "+Version) {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "native") {
		t.Errorf("backends should be listed: %q", out)
	}
}

func TestAnnotateCommand_JSON(t *testing.T) {
	input := createTriangleImage(t)
	output := filepath.Join(t.TempDir(), "out.png")

	out, err := execute(t, testConfig(), "", "annotate", input, "-o", output, "--json")
	if err != nil {
		t.Fatalf("annotate failed: %v", err)
	}

	var report struct {
		RunID   string `json:"run_id"`
		Output  string `json:"output"`
		Backend string `json:"backend"`
		Regions []struct {
			Color string `json:"color"`
			Shape string `json:"shape"`
			Label string `json:"label"`
		} `json:"regions"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}

	if report.Output != output || report.Backend != "native" || report.RunID == "" {
		t.Errorf("unexpected report header: %+v", report)
	}
	if len(report.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(report.Regions))
	}
	if report.Regions[0].Shape != "Triangle" {
		t.Errorf("Shape: got %q, want Triangle", report.Regions[0].Shape)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("annotated file not written: %v", err)
	}
}

func TestAnnotateCommand_DefaultOutput(t *testing.T) {
	input := createTriangleImage(t)
	cfg := testConfig()
	cfg.OutputSuffix = "_shapes"

	out, err := execute(t, cfg, "", "annotate", input)
	if err != nil {
		t.Fatalf("annotate failed: %v", err)
	}

	want := filepath.Join(filepath.Dir(input), "triangle_shapes.png")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("annotated file not written to %s: %v", want, err)
	}
	if !strings.Contains(out, "LABEL") || !strings.Contains(out, "Triangle") {
		t.Errorf("table output missing: %q", out)
	}
}

func TestAnnotateCommand_Errors(t *testing.T) {
	input := createTriangleImage(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"annotate", filepath.Join(t.TempDir(), "missing.png")}},
		{"no argument", []string{"annotate"}},
		{"overwrite input", []string{"annotate", input, "-o", input}},
		{"unknown backend", []string{"annotate", input, "--backend", "opencl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, testConfig(), "", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestServeCommand(t *testing.T) {
	stdin := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	out, err := execute(t, testConfig(), stdin, "serve")
	if err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	var resp struct {
		ID     float64                `json:"id"`
		Result map[string]interface{} `json:"result"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &resp); err != nil {
		t.Fatalf("invalid response %q: %v", out, err)
	}
	if resp.ID != 1 {
		t.Errorf("ID: got %v, want 1", resp.ID)
	}
}
