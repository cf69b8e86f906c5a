package main

import (
	"fmt"

	"github.com/fwojciec/insight"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	req := &insight.Request{Input: c.Input, Type: insight.InputText}
	if c.URL {
		req.Type = insight.InputURL
	}

	res, err := deps.Analyzer.Analyze(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", insight.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, res.Text)
	return nil
}
