package semantic

import (
	"context"
	"errors"
)

// Analysis is the judgement returned by an external semantic provider.
type Analysis struct {
	MatchScore int      `json:"matchScore"`
	Strengths  []string `json:"strengths"`
	Gaps       []string `json:"gaps"`
	Assessment string   `json:"assessment"`
}

// Provider compares a resume with a job description. Implementations may call a
// hosted model, a local one or a test stub; callers treat every error as "unavailable".
type Provider interface {
	Analyze(ctx context.Context, resumeText, jobText string) (Analysis, error)
}

// Unwrapper is implemented by providers that decorate another provider.
type Unwrapper interface {
	Unwrap() Provider
}

// Base strips every decorating layer (retry, cache) and returns the provider
// that actually does the work.
func Base(p Provider) Provider {
	for {
		u, ok := p.(Unwrapper)
		if !ok {
			return p
		}
		next := u.Unwrap()
		if next == nil {
			return p
		}
		p = next
	}
}

// ErrNotConfigured is returned by Placeholder.
var ErrNotConfigured = errors.New("semantic provider not configured")

// Placeholder is used when no provider is configured.
type Placeholder struct{}

func (Placeholder) Analyze(ctx context.Context, resumeText, jobText string) (Analysis, error) {
	return Analysis{}, ErrNotConfigured
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, resumeText, jobText string) (Analysis, error)

func (f ProviderFunc) Analyze(ctx context.Context, resumeText, jobText string) (Analysis, error) {
	return f(ctx, resumeText, jobText)
}
