// Package tiktoken counts OpenAI model tokens with tiktoken-go.
package tiktoken

import (
	"context"
	"sync"

	"github.com/fwojciec/insight"
	"github.com/pkoukk/tiktoken-go"
)

// FallbackEncoding is used for models tiktoken does not recognize.
const FallbackEncoding = "cl100k_base"

var _ insight.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens for one model. The encoding is loaded on first
// use because tiktoken may download it.
type TokenCounter struct {
	model string

	once sync.Once
	tkm  *tiktoken.Tiktoken
	err  error
}

// NewTokenCounter creates a new TokenCounter for model.
func NewTokenCounter(model string) *TokenCounter {
	return &TokenCounter{model: model}
}

// CountTokens counts the tokens in text.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	tkm, err := tc.encoding()
	if err != nil {
		return 0, err
	}
	return len(tkm.Encode(text, nil, nil)), nil
}

func (tc *TokenCounter) encoding() (*tiktoken.Tiktoken, error) {
	tc.once.Do(func() {
		tc.tkm, tc.err = tiktoken.EncodingForModel(tc.model)
		if tc.err != nil {
			tc.tkm, tc.err = tiktoken.GetEncoding(FallbackEncoding)
		}
	})
	return tc.tkm, tc.err
}
