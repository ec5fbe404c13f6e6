package network

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/render"
	"github.com/matzehuels/flowshop/pkg/report"
)

// Options configures network rendering.
type Options struct {
	// Critical highlights the operations and edges of [CriticalPath].
	Critical bool

	// Detailed adds the processing window to each node label.
	// When false, only the job and machine are shown.
	Detailed bool
}

// ToDOT converts a schedule to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Positions run left to right and machines top to bottom, so the layout
// mirrors the schedule grid.
func ToDOT(r *flowshop.Result, opts Options) string {
	critical := map[[2]int]bool{}
	if opts.Critical {
		for _, op := range CriticalPath(r) {
			critical[[2]int{op.Position, op.Machine}] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	machines := r.Machines()
	for p, job := range r.Sequence {
		fmt.Fprintf(&buf, "  subgraph pos%d {\n    rank=same;\n", p)
		for k := range machines {
			attrs := []string{fmt.Sprintf("label=%q", fmtLabel(r, p, job, k, opts.Detailed))}
			if critical[[2]int{p, k}] {
				attrs = append(attrs, "fillcolor=\"#fde0dd\"", "color=\"#c51b8a\"", "penwidth=2")
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", nodeID(p, k), strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for p := range r.Sequence {
		for k := range machines {
			if k+1 < machines {
				writeEdge(&buf, p, k, p, k+1, critical, "solid")
			}
			if p+1 < len(r.Sequence) {
				writeEdge(&buf, p, k, p+1, k, critical, "dashed")
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(p, k int) string { return fmt.Sprintf("p%d_m%d", p, k) }

func fmtLabel(r *flowshop.Result, p, job, k int, detailed bool) string {
	label := report.JobLabel(job) + " / " + report.MachineLabel(k)
	if !detailed {
		return label
	}
	t := r.Timings[p][k]
	return fmt.Sprintf("%s\n%d→%d", label, t.Start, t.End)
}

// writeEdge draws job order edges solid and machine order edges dashed.
func writeEdge(buf *bytes.Buffer, p1, k1, p2, k2 int, critical map[[2]int]bool, style string) {
	attrs := []string{"style=" + style}
	if critical[[2]int{p1, k1}] && critical[[2]int{p2, k2}] {
		attrs = append(attrs, "color=\"#c51b8a\"", "penwidth=2")
	}
	fmt.Fprintf(buf, "  %q -> %q [%s];\n", nodeID(p1, k1), nodeID(p2, k2), strings.Join(attrs, ", "))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox swaps Graphviz's point-based svg header for a plain
// pixel one so the image scales like the Gantt chart.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
