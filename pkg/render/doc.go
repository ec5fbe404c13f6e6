// Package render draws schedules.
//
// It contains two renderers and the format conversion they share:
//
//   - [gantt]: an SVG timeline with one lane per machine
//   - [network]: the operation precedence graph, laid out by Graphviz, with
//     the critical path highlighted
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg := gantt.RenderSVG(result)
//	png, err := render.ToPNG(svg, 2.0)
package render
