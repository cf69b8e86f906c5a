package insight

import (
	"context"
	"strings"
)

// InputType declares how Request.Input should be interpreted.
type InputType string

// InputType constants.
const (
	InputText InputType = "text"
	InputURL  InputType = "url"
)

// Request is a single analysis request.
type Request struct {
	Input string    `json:"input"`
	Type  InputType `json:"inputType"`
}

// Validate returns an error if the request has no input.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Input) == "" {
		return Errorf(EINVALID, "please provide input to analyze")
	}
	return nil
}

// Result is the outcome of a successful analysis.
type Result struct {
	Text string `json:"result"`
}

// Analyzer runs the extraction, prompt and model-call pipeline.
type Analyzer interface {
	// Analyze returns EINVALID for empty input, ECONFIG when no model
	// credential is configured, EEXTRACT when URL content cannot be loaded
	// and EANALYSIS when the model call fails.
	Analyze(ctx context.Context, req *Request) (*Result, error)
}
