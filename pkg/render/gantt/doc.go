// Package gantt renders a schedule as an SVG Gantt chart.
//
// Each machine gets a horizontal lane. Every operation with a non-zero
// processing time becomes a bar colored by job, so a job can be followed
// across lanes. The time axis is scaled to the makespan in input time units
// and a legend lists the jobs in sequence order.
//
//	svg := gantt.RenderSVG(result, gantt.WithTitle("Johnson"), gantt.WithWidth(1200))
package gantt
