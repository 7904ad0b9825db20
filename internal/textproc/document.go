package textproc

// ProcessedDocument is the normalized form of one resume or job description.
// It is built once at ingestion and never modified afterwards.
type ProcessedDocument struct {
	Text      string             `json:"text"`
	WordCount int                `json:"wordCount"`
	Sections  map[Section]string `json:"sections"`
	Keywords  []string           `json:"keywords"`
}

// Process normalizes raw extracted text and derives its sections and keywords.
func Process(raw string) ProcessedDocument {
	text := Normalize(raw)
	return ProcessedDocument{
		Text:      text,
		WordCount: WordCount(text),
		Sections:  ExtractSections(text),
		Keywords:  ExtractKeywords(text),
	}
}

// HasText reports whether the document carries usable normalized text.
func (d *ProcessedDocument) HasText() bool {
	return d != nil && d.Text != ""
}
