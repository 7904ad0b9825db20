package textproc

import (
	"regexp"
	"sort"
	"strings"
)

// Section names a resume segment.
type Section string

const (
	SectionContact    Section = "contact"
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// Sections lists every section in detection order.
var Sections = []Section{SectionContact, SectionSummary, SectionExperience, SectionEducation, SectionSkills}

// maxHeaderLen bounds how long a line may be and still count as a header.
const maxHeaderLen = 48

var sectionHeaders = map[Section]*regexp.Regexp{
	SectionContact:    headerPattern(`contact(?:\s+(?:info|information|details))?`, `personal\s+(?:information|details)`),
	SectionSummary:    headerPattern(`summary`, `profile`, `objective`, `about(?:\s+me)?`, `professional\s+summary`),
	SectionExperience: headerPattern(`experience`, `work(?:\s+history)?`, `employment(?:\s+history)?`, `career(?:\s+history)?`, `professional\s+experience`),
	SectionEducation:  headerPattern(`education`, `academic(?:\s+background)?`, `qualifications`, `degrees?`),
	SectionSkills:     headerPattern(`skills`, `technical\s+skills`, `competencies`, `technologies`, `expertise`),
}

var (
	emailPattern = regexp.MustCompile(`[\w.\-]+@[\w\-]+\.[\w.\-]+`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
)

func headerPattern(synonyms ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(?:` + strings.Join(synonyms, `|`) + `)\b`)
}

type headerLine struct {
	section Section
	start   int // offset of the header line
	body    int // offset just past the header line
}

// ExtractSections segments normalized text into named resume sections.
// Sections are detected independently and may overlap; a key is present only
// when its header was found.
func ExtractSections(text string) map[Section]string {
	out := make(map[Section]string)
	headers := findHeaders(text)
	if len(headers) == 0 {
		if preambleIsContact(text) {
			out[SectionContact] = strings.TrimSpace(text)
		}
		return out
	}

	for _, section := range Sections {
		for i, h := range headers {
			if h.section != section {
				continue
			}
			end := len(text)
			for _, next := range headers[i+1:] {
				if next.start > h.start {
					end = next.start
					break
				}
			}
			if _, seen := out[section]; !seen {
				out[section] = strings.TrimSpace(text[h.body:end])
			}
			break
		}
	}

	if _, ok := out[SectionContact]; !ok {
		preamble := text[:headers[0].start]
		if preambleIsContact(preamble) {
			out[SectionContact] = strings.TrimSpace(preamble)
		}
	}
	return out
}

func findHeaders(text string) []headerLine {
	var headers []headerLine
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		start := offset
		offset += len(line)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) > maxHeaderLen {
			continue
		}
		for _, section := range Sections {
			if sectionHeaders[section].MatchString(trimmed) {
				headers = append(headers, headerLine{section: section, start: start, body: offset})
			}
		}
	}
	sort.SliceStable(headers, func(i, j int) bool { return headers[i].start < headers[j].start })
	return headers
}

func preambleIsContact(text string) bool {
	return emailPattern.MatchString(text) || phonePattern.MatchString(text)
}
