package semantic

import (
	_ "embed"
	"strings"
	"unicode/utf8"
)

//go:embed prompt.md
var promptTemplate string

// maxPromptTextRunes bounds each document inside the prompt.
const maxPromptTextRunes = 12000

// SystemMessage is sent as the system role by chat-style providers.
const SystemMessage = "You are a precise recruiting assistant. Respond with valid JSON only."

// BuildPrompt renders the analysis prompt for one resume/job pair.
func BuildPrompt(resumeText, jobText string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME}}", truncate(strings.TrimSpace(resumeText), maxPromptTextRunes))
	return strings.ReplaceAll(prompt, "{{JOB}}", truncate(strings.TrimSpace(jobText), maxPromptTextRunes))
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
