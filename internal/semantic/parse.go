package semantic

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidResponse is returned when provider output is not a usable analysis.
var ErrInvalidResponse = errors.New("invalid semantic response")

// ParseAnalysis decodes a provider's JSON answer. Fenced code blocks are tolerated,
// numeric fields may arrive as strings, and the score is clamped to 0-100.
func ParseAnalysis(raw string) (Analysis, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	score := math.NaN()
	for _, key := range []string{"matchScore", "match_score", "score"} {
		if v, ok := data[key]; ok {
			score = coerceFloat(v)
			break
		}
	}
	if math.IsNaN(score) {
		return Analysis{}, fmt.Errorf("%w: missing matchScore", ErrInvalidResponse)
	}

	return Analysis{
		MatchScore: ClampScore(score),
		Strengths:  coerceStrings(data["strengths"]),
		Gaps:       coerceStrings(data["gaps"]),
		Assessment: coerceString(data["assessment"]),
	}, nil
}

// ClampScore rounds v to the nearest integer within 0-100.
func ClampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "%"))
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func coerceStrings(v any) []string {
	var items []any
	switch val := v.(type) {
	case []any:
		items = val
	case string:
		items = []any{val}
	default:
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
