package gantt

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flowshop/pkg/flowshop"
)

func mustResult(t *testing.T, m flowshop.Matrix, seq []int) *flowshop.Result {
	t.Helper()
	r, err := flowshop.NewResult("test", m, seq)
	if err != nil {
		t.Fatalf("NewResult: %v", err)
	}
	return r
}

func TestRenderSVG(t *testing.T) {
	r := mustResult(t, flowshop.Matrix{{5, 2}, {1, 6}, {4, 3}}, []int{1, 2, 0})
	svg := string(RenderSVG(r, WithTitle("Johnson <classic>")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg header: %.80s", svg)
	}
	if got := strings.Count(svg, `class="bar"`); got != 6 {
		t.Errorf("bars = %d, want 6", got)
	}
	for _, want := range []string{
		`id="bar-1-0"`,
		`J2 on M1: 0→1`,
		`J1 on M2: 10→12`,
		`>M1</text>`,
		`>M2</text>`,
		`>12</text>`,
		`Johnson &lt;classic&gt;`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if got := strings.Count(svg, `class="swatch"`); got != 3 {
		t.Errorf("legend swatches = %d, want 3", got)
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	r := mustResult(t, flowshop.Matrix{{3, 1, 2}, {1, 4, 5}, {2, 2, 1}}, []int{1, 2, 0})
	dec := xml.NewDecoder(strings.NewReader(string(RenderSVG(r))))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return
			}
			t.Fatalf("invalid XML: %v", err)
		}
	}
}

func TestRenderSVGSkipsZeroDurations(t *testing.T) {
	r := mustResult(t, flowshop.Matrix{{0, 2}, {3, 0}}, []int{0, 1})
	svg := string(RenderSVG(r))
	if got := strings.Count(svg, `class="bar"`); got != 2 {
		t.Errorf("bars = %d, want 2", got)
	}
	if strings.Contains(svg, `id="bar-0-0"`) || strings.Contains(svg, `id="bar-1-1"`) {
		t.Error("zero-length operations should not be drawn")
	}
}

func TestRenderSVGAllZero(t *testing.T) {
	r := mustResult(t, flowshop.Matrix{{0, 0}, {0, 0}}, []int{0, 1})
	svg := string(RenderSVG(r))
	if strings.Contains(svg, `class="bar"`) {
		t.Error("all-zero schedule should have no bars")
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("scale must stay finite")
	}
}

func TestOptions(t *testing.T) {
	r := mustResult(t, flowshop.Matrix{{5, 2}, {1, 6}, {4, 3}}, []int{1, 2, 0})

	svg := string(RenderSVG(r, WithPalette("#000000"), WithoutLabels(), WithWidth(120), WithLaneHeight(10)))
	if strings.Contains(svg, `class="bar-label"`) {
		t.Error("WithoutLabels should drop bar labels")
	}
	if strings.Contains(svg, defaultPalette[1]) {
		t.Error("WithPalette should replace the default colors")
	}
	if !strings.Contains(svg, `width="200"`) {
		t.Errorf("expected total width 200 for a 120px plot")
	}

	// Non-positive sizes keep the defaults.
	sr := newSVGRenderer(WithWidth(0), WithLaneHeight(-1), WithPalette())
	if sr.width != 800 || sr.laneHeight != 32 || len(sr.palette) != len(defaultPalette) {
		t.Errorf("defaults overridden: %+v", sr)
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		makespan int
		want     []int
	}{
		{0, []int{0}},
		{1, []int{0, 1}},
		{12, []int{0, 2, 4, 6, 8, 10, 12}},
		{13, []int{0, 2, 4, 6, 8, 10, 13}},
		{100, []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}},
		{137, []int{0, 20, 40, 60, 80, 100, 120, 137}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ticks(tt.makespan)); diff != "" {
			t.Errorf("ticks(%d) mismatch (-want +got):\n%s", tt.makespan, diff)
		}
	}
}
