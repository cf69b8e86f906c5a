package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/insight"
	main "github.com/fwojciec/insight/cmd/insight"
	"github.com/fwojciec/insight/gemini"
	"github.com/fwojciec/insight/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func newTestMain() *main.Main {
	m := main.NewMain()
	m.Getenv = noEnv
	return m
}

func TestMain_Run_HelpShowsCommands(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}

	err := newTestMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	for _, cmd := range []string{"serve", "analyze", "prompt"} {
		assert.Contains(t, stdout.String(), cmd)
	}
}

func TestMain_Run_NoArgsIsAnError(t *testing.T) {
	t.Parallel()

	err := newTestMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_AnalyzeUsesInjectedAnalyzer(t *testing.T) {
	t.Parallel()

	m := newTestMain()
	m.Analyzer = &mock.Analyzer{
		AnalyzeFn: func(_ context.Context, req *insight.Request) (*insight.Result, error) {
			return &insight.Result{Text: "analyzed: " + req.Input}, nil
		},
	}
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"analyze", "hello"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "analyzed: hello\n", stdout.String())
}

func TestMain_Run_MissingCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		provider string
		setting  string
	}{
		{"openai", main.OpenAIKeyEnv},
		{"gemini", main.GeminiKeyEnv},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Parallel()

			stderr := &bytes.Buffer{}

			err := newTestMain().Run(context.Background(),
				[]string{"analyze", "https://www.reddit.com/r/x/comments/1/y", "--url", "--provider", tt.provider, "--api-key", ""},
				&bytes.Buffer{}, stderr)

			require.Error(t, err)
			assert.Equal(t, insight.ECONFIG, insight.ErrorCode(err))
			assert.Equal(t, tt.setting+" is not set", insight.ErrorMessage(err))
			assert.Contains(t, stderr.String(), "error: "+tt.setting+" is not set")
		})
	}
}

func TestMain_Run_EmptyInput(t *testing.T) {
	t.Parallel()

	err := newTestMain().Run(context.Background(), []string{"analyze", "  "}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, insight.EINVALID, insight.ErrorCode(err))
}

func TestMain_Run_PromptPrintsDefaultTemplate(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}

	err := newTestMain().Run(context.Background(), []string{"prompt"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "user_prefix:")
	assert.Contains(t, stdout.String(), insight.DefaultUserPrefix)
}

func TestMain_Run_PromptFile(t *testing.T) {
	t.Parallel()

	t.Run("loads the template", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "prompt.yaml")
		require.NoError(t, os.WriteFile(path, []byte("system: Custom persona.\n"), 0o600))
		stdout := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"prompt", "--prompt", path}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "system: Custom persona.")
	})

	t.Run("missing file is a configuration error", func(t *testing.T) {
		t.Parallel()

		err := newTestMain().Run(context.Background(),
			[]string{"prompt", "--prompt", filepath.Join(t.TempDir(), "missing.yaml")},
			&bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, insight.ECONFIG, insight.ErrorCode(err))
	})
}

func TestMain_Run_ServeStopsWithContext(t *testing.T) {
	t.Parallel()

	m := newTestMain()
	m.Analyzer = &mock.Analyzer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Run(ctx, []string{"serve", "--addr", "127.0.0.1:0"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, err)
}

func TestMain_Run_WiringErrorIsReported(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}

	err := newTestMain().Run(context.Background(),
		[]string{"analyze", "hello", "--api-key", "sk-test", "--fetch-rps=-1"},
		&bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, insight.EINVALID, insight.ErrorCode(err))
	assert.Contains(t, stderr.String(), "error: --fetch-rps must not be negative")
}

func TestMain_Model(t *testing.T) {
	t.Parallel()

	env := func(key string) string {
		if key == main.OpenAIModelEnv {
			return "gpt-env"
		}
		return ""
	}

	tests := []struct {
		name string
		cfg  main.Config
		env  func(string) string
		want string
	}{
		{"openai default", main.Config{Provider: "openai"}, noEnv, insight.DefaultModel},
		{"openai from environment", main.Config{Provider: "openai"}, env, "gpt-env"},
		{"openai flag wins", main.Config{Provider: "openai", Model: "gpt-flag"}, env, "gpt-flag"},
		{"gemini ignores openai environment", main.Config{Provider: "gemini"}, env, gemini.DefaultModel},
		{"gemini flag", main.Config{Provider: "gemini", Model: "gemini-2.5-pro"}, env, "gemini-2.5-pro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := main.NewMain()
			m.Getenv = tt.env

			assert.Equal(t, tt.want, m.Model(&tt.cfg))
		})
	}
}

func TestMain_Run_AnalyzeSendsResolvedModel(t *testing.T) {
	t.Parallel()

	models := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var req struct {
			Model string `json:"model"`
		}
		_ = json.Unmarshal(data, &req)
		models <- req.Model
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"m",`+
			`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"fine"}}]}`)
	}))
	defer srv.Close()

	m := main.NewMain()
	m.Getenv = func(key string) string {
		switch key {
		case main.OpenAIKeyEnv:
			return "sk-test"
		case main.OpenAIModelEnv:
			return "gpt-env"
		}
		return ""
	}
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(),
		[]string{"analyze", "some text", "--provider", "openai", "--base-url", srv.URL + "/v1/"},
		stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "fine\n", stdout.String())
	assert.Equal(t, "gpt-env", <-models)
}
