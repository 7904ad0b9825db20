package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"

	"resume-matcher/internal/semantic"
	"resume-matcher/internal/shared/telemetry"
)

const defaultModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Provider implements semantic.Provider on top of the Google GenAI SDK.
type Provider struct {
	generator contentGenerator
}

// New creates a Provider for the Gemini API backend.
func New(ctx context.Context, apiKey, model string) (*Provider, error) {
	gen, err := newGenerator(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return &Provider{generator: gen}, nil
}

func (p *Provider) Analyze(ctx context.Context, resumeText, jobText string) (semantic.Analysis, error) {
	prompt := semantic.BuildPrompt(resumeText, jobText)
	raw, err := p.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return semantic.Analysis{}, err
	}
	telemetry.Info("semantic.gemini.response", map[string]any{
		"prompt_length":   utf8.RuneCountInString(prompt),
		"response_length": utf8.RuneCountInString(raw),
	})
	return semantic.ParseAnalysis(raw)
}

type generator struct {
	client    *genai.Client
	modelName string
}

func newGenerator(ctx context.Context, apiKey, model string) (*generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &generator{client: client, modelName: model}, nil
}

// GenerateContent sends the prompt and returns the concatenated text parts of the answer.
func (g *generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(semantic.SystemMessage, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

var _ semantic.Provider = (*Provider)(nil)
