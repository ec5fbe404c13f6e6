package network

import "github.com/matzehuels/flowshop/pkg/flowshop"

// Operation identifies one node of the network.
type Operation struct {
	Position int `json:"position"`
	Job      int `json:"job"`
	Machine  int `json:"machine"`
}

// CriticalPath returns a longest chain of operations from the first job on
// the first machine to the last job on the last machine. The durations
// along it sum to the makespan. When two predecessors tie, the one on the
// same machine is preferred.
func CriticalPath(r *flowshop.Result) []Operation {
	n, m := len(r.Sequence), r.Machines()
	if n == 0 || m == 0 {
		return nil
	}

	longest := make([][]int, n)
	for p := range n {
		longest[p] = make([]int, m)
		for k := range m {
			best := 0
			if p > 0 {
				best = longest[p-1][k]
			}
			if k > 0 && longest[p][k-1] > best {
				best = longest[p][k-1]
			}
			longest[p][k] = best + duration(r, p, k)
		}
	}

	var path []Operation
	p, k := n-1, m-1
	for {
		path = append(path, Operation{Position: p, Job: r.Sequence[p], Machine: k})
		if p == 0 && k == 0 {
			break
		}
		rest := longest[p][k] - duration(r, p, k)
		if p > 0 && longest[p-1][k] == rest {
			p--
		} else {
			k--
		}
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func duration(r *flowshop.Result, p, k int) int {
	t := r.Timings[p][k]
	return t.End - t.Start
}
