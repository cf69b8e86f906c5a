package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/mock"
	islog "github.com/fwojciec/insight/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("logs input type and result size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{
			AnalyzeFn: func(context.Context, *insight.Request) (*insight.Result, error) {
				return &insight.Result{Text: "abc"}, nil
			},
		}

		a := islog.NewLoggingAnalyzer(inner, logger)
		res, err := a.Analyze(context.Background(), &insight.Request{Input: "text", Type: insight.InputText})

		require.NoError(t, err)
		assert.Equal(t, "abc", res.Text)
		output := buf.String()
		assert.Contains(t, output, "input_type=text")
		assert.Contains(t, output, "input_bytes=4")
		assert.Contains(t, output, "result_bytes=3")
	})

	t.Run("logs code and cause on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{
			AnalyzeFn: func(context.Context, *insight.Request) (*insight.Result, error) {
				return nil, insight.WrapErrorf(errors.New("upstream 503"), insight.EANALYSIS, "analysis failed, try again later")
			},
		}

		a := islog.NewLoggingAnalyzer(inner, logger)
		_, err := a.Analyze(context.Background(), &insight.Request{Input: "text", Type: insight.InputText})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "code=analysis")
		assert.Contains(t, output, `err="upstream 503"`)
	})
}
