// Package network renders the operation network of a schedule.
//
// Every (job, machine) operation is a node. Two kinds of edge constrain it:
// the job must finish on the previous machine, and the machine must finish
// the previous job in the sequence. The longest chain of operations through
// this graph, weighted by processing time, is the critical path; its length
// equals the makespan. [ToDOT] builds the graph in Graphviz DOT format with
// the critical path highlighted and [RenderSVG] lays it out with Graphviz.
//
//	dot := network.ToDOT(result, network.Options{Critical: true})
//	svg, err := network.RenderSVG(dot)
package network
