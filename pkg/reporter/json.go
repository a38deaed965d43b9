package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/display"
	"github.com/yaklabco/spanrender/pkg/engine"
	"github.com/yaklabco/spanrender/pkg/present"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string            `json:"version"`
	DisplayText string            `json:"displayText"`
	TextLength  int               `json:"textLength"`
	Links       []bodyrange.Range `json:"links"`
	Ranges      []bodyrange.Range `json:"ranges"`
	Nodes       []display.Node    `json:"nodes"`
	Elements    []present.Element `json:"elements"`
	Dropped     []engine.Dropped  `json:"dropped"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *engine.Result) (err error) {
	defer flush(r.bw, &err)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(buildJSONOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func buildJSONOutput(result *engine.Result) *JSONOutput {
	output := &JSONOutput{
		Version:  "1.0.0",
		Links:    []bodyrange.Range{},
		Ranges:   []bodyrange.Range{},
		Nodes:    []display.Node{},
		Elements: []present.Element{},
		Dropped:  []engine.Dropped{},
	}
	if result == nil {
		return output
	}

	output.DisplayText = result.DisplayText
	output.TextLength = result.TextLength
	output.Links = append(output.Links, result.Links...)
	output.Ranges = append(output.Ranges, result.Ranges...)
	output.Nodes = append(output.Nodes, result.Nodes...)
	output.Elements = append(output.Elements, result.Elements...)
	output.Dropped = append(output.Dropped, result.Dropped...)
	return output
}
