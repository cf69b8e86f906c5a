package main_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/insight/cmd/insight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, cli *main.CLI, stdout *bytes.Buffer) *kong.Kong {
	t.Helper()

	parser, err := kong.New(cli,
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)
	return parser
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	parser := newParser(t, &main.CLI{}, stdout)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"serve", "analyze", "prompt"} {
		assert.Contains(t, stdout.String(), cmd, "help should mention %s command", cmd)
	}
}

func TestCLI_ParsesSharedFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser := newParser(t, cli, &bytes.Buffer{})

	_, err := parser.Parse([]string{
		"analyze", "https://example.com", "--url",
		"--provider", "gemini",
		"--generic", "trafilatura",
		"--fetcher", "browser",
		"--fetch-timeout", "3s",
		"--fetch-rps", "2",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cli.Analyze.Input)
	assert.True(t, cli.Analyze.URL)
	assert.Equal(t, "gemini", cli.Provider)
	assert.Equal(t, "trafilatura", cli.Generic)
	assert.Equal(t, "browser", cli.Fetcher)
	assert.Equal(t, 3*time.Second, cli.FetchTimeout)
	assert.InDelta(t, 2.0, cli.FetchRPS, 1e-9)
}

func TestCLI_RejectsUnknownStrategy(t *testing.T) {
	t.Parallel()

	parser := newParser(t, &main.CLI{}, &bytes.Buffer{})

	_, err := parser.Parse([]string{"analyze", "text", "--generic", "magic"})

	require.Error(t, err)
}
