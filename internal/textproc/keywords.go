package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxKeywords caps the keyword set of one document.
const MaxKeywords = 50

const minWordLen = 3

// Category groups keywords that get their own strength and recommendation wording.
type Category string

const (
	CategoryLanguage   Category = "programming_language"
	CategoryTechnology Category = "technology"
	CategorySoftSkill  Category = "soft_skill"
	CategoryJobTitle   Category = "job_title"
)

type category struct {
	name  Category
	find  *regexp.Regexp
	whole *regexp.Regexp
}

// categories are scanned in this order; earlier categories win the keyword budget.
var categories = []category{
	newCategory(CategoryLanguage,
		`javascript`, `typescript`, `python`, `java`, `golang`, `ruby`, `php`, `swift`,
		`kotlin`, `scala`, `rust`, `perl`, `sql`, `html`, `css`, `bash`, `matlab`,
	),
	newCategory(CategoryTechnology,
		`react`, `angular`, `vue`, `node\.?js`, `next\.?js`, `django`, `flask`, `fastapi`,
		`spring`, `rails`, `docker`, `kubernetes`, `aws`, `azure`, `gcp`, `terraform`,
		`ansible`, `jenkins`, `git`, `linux`, `postgresql`, `postgres`, `mysql`, `mongodb`,
		`redis`, `kafka`, `rabbitmq`, `elasticsearch`, `graphql`, `grpc`, `microservices`,
		`tensorflow`, `pytorch`, `spark`, `hadoop`, `machine[\s-]+learning`, `ci[\s-]*cd`,
	),
	newCategory(CategorySoftSkill,
		`leadership`, `communication`, `teamwork`, `collaboration`, `mentoring`,
		`problem[\s-]+solving`, `critical[\s-]+thinking`, `time[\s-]+management`,
		`adaptability`, `creativity`, `negotiation`, `presentation`, `ownership`,
	),
	newCategory(CategoryJobTitle,
		`engineer`, `developer`, `architect`, `manager`, `analyst`, `designer`,
		`consultant`, `scientist`, `administrator`, `lead`, `senior`, `junior`,
		`intern`, `director`, `specialist`,
	),
}

var separatorRun = regexp.MustCompile(`[\s-]+`)

var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "any": true,
	"use": true, "using": true, "used": true, "such": true, "other": true,
	"had": true, "his": true, "her": true, "she": true, "him": true,
	"them": true, "these": true, "those": true, "there": true, "then": true,
	"when": true, "where": true, "while": true, "would": true, "could": true,
	"should": true, "shall": true, "may": true, "might": true, "must": true,
	"does": true, "did": true, "doing": true, "being": true, "some": true,
	"only": true, "over": true, "under": true, "very": true, "just": true,
	"onto": true, "upon": true, "per": true, "via": true, "etc": true,
	"both": true, "most": true, "own": true, "same": true, "out": true,
}

func newCategory(name Category, alternatives ...string) category {
	alt := strings.Join(alternatives, `|`)
	return category{
		name:  name,
		find:  regexp.MustCompile(`(?i)\b(?:` + alt + `)\b`),
		whole: regexp.MustCompile(`(?i)^(?:` + alt + `)$`),
	}
}

// ExtractKeywords derives the ordered keyword set of normalized text: category
// matches first, then generic significant words in first-seen order. The result is
// lower-cased, de-duplicated and holds at most MaxKeywords entries.
func ExtractKeywords(text string) []string {
	seen := make(map[string]bool)
	keywords := make([]string, 0, MaxKeywords)
	add := func(kw string) bool {
		if seen[kw] {
			return true
		}
		seen[kw] = true
		keywords = append(keywords, kw)
		return len(keywords) < MaxKeywords
	}

	for _, c := range categories {
		for _, match := range c.find.FindAllString(text, -1) {
			if !add(canonicalKeyword(match)) {
				return keywords
			}
		}
	}

	for _, word := range splitWords(text) {
		word = strings.ToLower(word)
		if !significantWord(word) {
			continue
		}
		if !add(word) {
			return keywords
		}
	}
	return keywords
}

// CategoryOf reports which keyword category kw belongs to, if any.
func CategoryOf(kw string) (Category, bool) {
	kw = canonicalKeyword(kw)
	for _, c := range categories {
		if c.whole.MatchString(kw) {
			return c.name, true
		}
	}
	return "", false
}

func canonicalKeyword(s string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) })
}

func significantWord(w string) bool {
	if utf8.RuneCountInString(w) < minWordLen || stopWords[w] {
		return false
	}
	return strings.IndexFunc(w, unicode.IsLetter) >= 0
}
