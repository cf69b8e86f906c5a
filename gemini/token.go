// Package gemini implements the language-model concerns of insight with
// Google Gemini: completions through the Gemini API and local token
// counting.
package gemini

import (
	"context"

	"github.com/fwojciec/insight"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ insight.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens offline with the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model. An empty
// model selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.ECONFIG, "unsupported tokenizer model %q", model)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens text occupies as a user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
