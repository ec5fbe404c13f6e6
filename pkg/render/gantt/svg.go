package gantt

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/report"
)

const (
	marginLeft   = 56.0
	marginRight  = 24.0
	marginTop    = 24.0
	titleHeight  = 28.0
	axisHeight   = 28.0
	legendHeight = 28.0
	laneGap      = 8.0
	swatchSize   = 12.0
	legendStep   = 56.0
	maxTicks     = 10
)

var defaultPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	width      float64
	laneHeight float64
	palette    []string
	labels     bool
}

// WithTitle sets a heading above the chart.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithWidth sets the width of the plotting area in pixels.
func WithWidth(w float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// WithLaneHeight sets the height of one machine lane in pixels.
func WithLaneHeight(h float64) SVGOption {
	return func(r *svgRenderer) {
		if h > 0 {
			r.laneHeight = h
		}
	}
}

// WithPalette replaces the job colors. Colors repeat when there are more
// jobs than entries.
func WithPalette(colors ...string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// WithoutLabels drops job labels from the bars.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		width:      800,
		laneHeight: 32,
		palette:    defaultPalette,
		labels:     true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws r as a Gantt chart.
func RenderSVG(r *flowshop.Result, opts ...SVGOption) []byte {
	sr := newSVGRenderer(opts...)
	machines := r.Machines()

	scale := 0.0
	if r.Makespan > 0 {
		scale = sr.width / float64(r.Makespan)
	}

	top := marginTop
	if sr.title != "" {
		top += titleHeight
	}
	lanesHeight := float64(machines) * (sr.laneHeight + laneGap)
	totalWidth := marginLeft + sr.width + marginRight
	totalHeight := top + lanesHeight + axisHeight + legendHeight + marginTop

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalWidth, totalHeight, totalWidth, totalHeight)
	buf.WriteString(`  <style>text { font-family: sans-serif; font-size: 12px; } .bar-label { fill: white; } .grid { stroke: #ddd; }</style>` + "\n")
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	if sr.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.1f" y="%.1f" font-size="16" font-weight="bold">%s</text>`+"\n",
			marginLeft, marginTop+16, html.EscapeString(sr.title))
	}

	axisY := top + lanesHeight
	renderGrid(&buf, r.Makespan, scale, top, axisY)
	renderLanes(&buf, &sr, r, scale, top)
	renderAxis(&buf, r.Makespan, scale, axisY)
	renderLegend(&buf, &sr, r.Sequence, axisY+axisHeight+8)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLanes(buf *bytes.Buffer, sr *svgRenderer, r *flowshop.Result, scale, top float64) {
	for k := range r.Machines() {
		y := top + float64(k)*(sr.laneHeight+laneGap)
		fmt.Fprintf(buf, `  <text class="lane" x="%.1f" y="%.1f" text-anchor="end">%s</text>`+"\n",
			marginLeft-8, y+sr.laneHeight/2+4, report.MachineLabel(k))

		for p, job := range r.Sequence {
			t := r.Timings[p][k]
			if t.End <= t.Start {
				continue
			}
			x := marginLeft + float64(t.Start)*scale
			w := float64(t.End-t.Start) * scale
			fmt.Fprintf(buf, `  <rect class="bar" id="bar-%d-%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="white"><title>%s on %s: %d→%d</title></rect>`+"\n",
				job, k, x, y, w, sr.laneHeight, sr.color(p), report.JobLabel(job), report.MachineLabel(k), t.Start, t.End)
			if sr.labels && w >= 24 {
				fmt.Fprintf(buf, `  <text class="bar-label" x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n",
					x+w/2, y+sr.laneHeight/2+4, report.JobLabel(job))
			}
		}
	}
}

func renderGrid(buf *bytes.Buffer, makespan int, scale, top, bottom float64) {
	for _, tick := range ticks(makespan) {
		x := marginLeft + float64(tick)*scale
		fmt.Fprintf(buf, `  <line class="grid" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, top, x, bottom)
	}
}

func renderAxis(buf *bytes.Buffer, makespan int, scale, y float64) {
	fmt.Fprintf(buf, `  <line class="axis" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n",
		marginLeft, y, marginLeft+float64(makespan)*scale, y)
	for _, tick := range ticks(makespan) {
		x := marginLeft + float64(tick)*scale
		fmt.Fprintf(buf, `  <text class="tick" x="%.1f" y="%.1f" text-anchor="middle">%d</text>`+"\n", x, y+16, tick)
	}
}

func renderLegend(buf *bytes.Buffer, sr *svgRenderer, seq []int, y float64) {
	for p, job := range seq {
		x := marginLeft + float64(p)*legendStep
		fmt.Fprintf(buf, `  <rect class="swatch" x="%.1f" y="%.1f" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
			x, y, swatchSize, swatchSize, sr.color(p))
		fmt.Fprintf(buf, `  <text class="legend" x="%.1f" y="%.1f">%s</text>`+"\n",
			x+swatchSize+4, y+swatchSize-1, report.JobLabel(job))
	}
}

// color is chosen by sequence position so neighbouring bars always differ.
func (r *svgRenderer) color(pos int) string {
	return r.palette[pos%len(r.palette)]
}

// ticks returns axis marks from 0 to makespan on a 1-2-5 step, always
// ending at the makespan itself.
func ticks(makespan int) []int {
	if makespan <= 0 {
		return []int{0}
	}
	step := niceStep(makespan)
	var out []int
	for t := 0; t < makespan; t += step {
		out = append(out, t)
	}
	if len(out) > 1 && makespan-out[len(out)-1] <= step/2 {
		out = out[:len(out)-1]
	}
	return append(out, makespan)
}

func niceStep(makespan int) int {
	for base := 1; ; base *= 10 {
		for _, m := range []int{1, 2, 5} {
			if step := base * m; makespan/step <= maxTicks {
				return step
			}
		}
	}
}
