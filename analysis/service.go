package analysis

import (
	"context"
	"strings"

	"github.com/fwojciec/insight"
)

// Fixed user-facing outcomes of the model call.
const (
	FailedMessage     = "analysis failed, try again later"
	UnavailableResult = "result unavailable"
)

var _ insight.Analyzer = (*Service)(nil)

// Service runs one analysis per request: optional extraction, prompt
// construction and a single completion. It never retries.
type Service struct {
	registry   insight.ExtractorRegistry
	completer  insight.Completer
	credential insight.Credential
	template   insight.PromptTemplate
	settings   insight.CompletionSettings
}

// Option configures a Service.
type Option func(*Service)

// WithTemplate overrides the default prompt template.
func WithTemplate(t insight.PromptTemplate) Option {
	return func(s *Service) {
		s.template = t
	}
}

// WithSettings overrides the default completion settings.
func WithSettings(settings insight.CompletionSettings) Option {
	return func(s *Service) {
		s.settings = settings
	}
}

// NewService creates a Service. The credential is checked on every request
// before any network call.
func NewService(
	registry insight.ExtractorRegistry,
	completer insight.Completer,
	credential insight.Credential,
	opts ...Option,
) *Service {
	s := &Service{
		registry:   registry,
		completer:  completer,
		credential: credential,
		template:   insight.DefaultPromptTemplate(),
		settings:   insight.DefaultCompletionSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze implements insight.Analyzer.
func (s *Service) Analyze(ctx context.Context, req *insight.Request) (*insight.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.credential.Validate(); err != nil {
		return nil, err
	}

	content, err := s.content(ctx, req)
	if err != nil {
		return nil, err
	}

	text, err := s.completer.Complete(ctx, s.template.Build(content), s.settings)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EANALYSIS, FailedMessage)
	}
	if strings.TrimSpace(text) == "" {
		text = UnavailableResult
	}
	return &insight.Result{Text: text}, nil
}

// content returns the text the prompt is built from. Input types other
// than insight.InputURL are analyzed verbatim.
func (s *Service) content(ctx context.Context, req *insight.Request) (string, error) {
	if req.Type != insight.InputURL {
		return req.Input, nil
	}

	rawURL := strings.TrimSpace(req.Input)
	_, extractor := s.registry.ForURL(rawURL)
	if extractor == nil {
		return "", insight.Errorf(insight.EINTERNAL, "no extractor registered")
	}

	doc, err := extractor.Extract(ctx, rawURL)
	if err != nil {
		if insight.ErrorCode(err) == insight.EEXTRACT {
			return "", err
		}
		return "", insight.WrapErrorf(err, insight.EEXTRACT, insight.GenericFailedMessage)
	}
	return doc.Markdown(), nil
}
