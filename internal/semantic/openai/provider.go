package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-matcher/internal/semantic"
	"resume-matcher/internal/shared/telemetry"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
)

// Provider implements semantic.Provider using OpenAI Chat Completions in JSON mode.
type Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New constructs a Provider. An empty model selects the default model.
func New(apiKey, model string) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Provider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (p *Provider) Analyze(ctx context.Context, resumeText, jobText string) (semantic.Analysis, error) {
	content, err := p.complete(ctx, []chatMessage{
		{Role: "system", Content: semantic.SystemMessage},
		{Role: "user", Content: semantic.BuildPrompt(resumeText, jobText)},
	})
	if err != nil {
		return semantic.Analysis{}, err
	}
	return semantic.ParseAnalysis(content)
}

func (p *Provider) complete(ctx context.Context, messages []chatMessage) (string, error) {
	temp := float32(0)
	payload, err := json.Marshal(chatRequest{
		Model:          p.model,
		Messages:       messages,
		Temperature:    &temp,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(p.baseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", fmt.Errorf("openai http status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai http status %d: %s (%s)", resp.StatusCode, parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("openai http status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai response empty content")
	}

	fields := map[string]any{"model": p.model}
	if parsed.Usage != nil {
		fields["prompt_tokens"] = parsed.Usage.PromptTokens
		fields["completion_tokens"] = parsed.Usage.CompletionTokens
		fields["total_tokens"] = parsed.Usage.TotalTokens
	}
	telemetry.Info("semantic.openai.response", fields)

	return content, nil
}

var _ semantic.Provider = (*Provider)(nil)
