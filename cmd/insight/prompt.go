package main

import (
	iyaml "github.com/fwojciec/insight/yaml"
)

// Run executes the prompt command.
func (c *PromptCmd) Run(deps *Dependencies) error {
	return iyaml.EncodeTemplate(deps.Stdout, deps.Template)
}
