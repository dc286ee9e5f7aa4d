package pipeline

import (
	"encoding/json"
	"strings"
)

// Step is one stage of a pipeline. Steps render independently and know
// nothing about their neighbors.
type Step interface {
	// Prql renders the step as a standalone PRQL fragment.
	Prql(dialect Dialect) string

	isStep()
}

// Pipeline is an ordered sequence of steps. Order is preserved exactly as it
// arrived; no reordering or validation across steps happens here.
type Pipeline []Step

// Prql renders every step and joins the fragments with " | ".
func (p Pipeline) Prql(dialect Dialect) string {
	parts := make([]string, 0, len(p))
	for _, step := range p {
		parts = append(parts, step.Prql(dialect))
	}
	return strings.Join(parts, " | ")
}

func (p *Pipeline) UnmarshalJSON(data []byte) error {
	var rawSteps []json.RawMessage
	if err := json.Unmarshal(data, &rawSteps); err != nil {
		return newParseError("pipeline must be an array of steps")
	}
	steps := make(Pipeline, 0, len(rawSteps))
	for i, raw := range rawSteps {
		step, err := decodeStep(raw)
		if err != nil {
			return parseErrorf("step %d: %v", i, err)
		}
		steps = append(steps, step)
	}
	*p = steps
	return nil
}

// Parse decodes a JSON pipeline document. Any failure, including malformed
// JSON, is reported as a ParseError.
func Parse(data []byte) (Pipeline, error) {
	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		if IsParseError(err) {
			return nil, err
		}
		return nil, parseErrorf("invalid pipeline document: %v", err)
	}
	return p, nil
}
