package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/io"
	"github.com/matzehuels/flowshop/pkg/render"
	"github.com/matzehuels/flowshop/pkg/render/gantt"
	"github.com/matzehuels/flowshop/pkg/render/network"
	"github.com/matzehuels/flowshop/pkg/solver"
)

const pngScale = 2.0

// artifactPaths names the files written after a solve. Empty paths are skipped.
type artifactPaths struct {
	gantt   string
	network string
	json    string
}

// writeArtifacts writes every requested file and prints its path.
func (c *CLI) writeArtifacts(out *solver.Outcome, paths artifactPaths) error {
	if paths.gantt != "" {
		data, err := ganttBytes(out.Result, paths.gantt)
		if err != nil {
			return err
		}
		if err := c.writeFile(paths.gantt, data); err != nil {
			return err
		}
	}
	if paths.network != "" {
		data, err := networkBytes(out.Result, paths.network)
		if err != nil {
			return err
		}
		if err := c.writeFile(paths.network, data); err != nil {
			return err
		}
	}
	if paths.json != "" && paths.json != stdoutPath {
		var buf bytes.Buffer
		if err := io.WriteJSON(out, &buf); err != nil {
			return err
		}
		if err := c.writeFile(paths.json, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// stdoutPath sends JSON output to stdout in place of the text report.
const stdoutPath = "-"

func (c *CLI) writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.Logger.Debug("Wrote artifact", "path", path, "bytes", len(data))
	printFile(c.out, path)
	return nil
}

// ganttBytes renders the chart as SVG, or PNG for a .png path.
func ganttBytes(r *flowshop.Result, path string) ([]byte, error) {
	svg := gantt.RenderSVG(r, gantt.WithTitle(fmt.Sprintf("%s, makespan %d", r.Method, r.Makespan)))
	switch ext(path) {
	case "svg":
		return svg, nil
	case "png":
		return render.ToPNG(svg, pngScale)
	case "pdf":
		return render.ToPDF(svg)
	}
	return nil, fmt.Errorf("unsupported gantt format %q (use .svg, .png or .pdf)", filepath.Ext(path))
}

// networkBytes renders the operation network as DOT text, SVG, PNG or PDF.
func networkBytes(r *flowshop.Result, path string) ([]byte, error) {
	dot := network.ToDOT(r, network.Options{Critical: true, Detailed: true})
	switch ext(path) {
	case "dot", "gv":
		return []byte(dot), nil
	case "svg":
		return network.RenderSVG(dot)
	case "png":
		return network.RenderPNG(dot, pngScale)
	case "pdf":
		return network.RenderPDF(dot)
	}
	return nil, fmt.Errorf("unsupported network format %q (use .dot, .svg, .png or .pdf)", filepath.Ext(path))
}

func ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
