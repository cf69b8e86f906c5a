package main

import (
	igin "github.com/fwojciec/insight/gin"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := igin.NewServer(deps.Analyzer, deps.Logger)
	return srv.ListenAndServe(deps.Ctx, c.Addr)
}
