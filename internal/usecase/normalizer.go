package usecase

import "strings"

// Profile selects how aggressively Normalize rewrites a label.
type Profile int

const (
	// ProfileLight lower-cases and strips punctuation only. Used for product
	// names, where descriptive words carry identity and must survive.
	ProfileLight Profile = iota

	// ProfileStrict additionally removes producer stop-words, so that legal
	// and brewery boilerplate cannot keep two spellings of the same producer
	// apart.
	ProfileStrict
)

// defaultProducerStopWords is the boilerplate vocabulary stripped under
// ProfileStrict: legal-entity suffixes, generic brewery words, French
// articles and cooperative terms. "Microbrasserie Le Castor Inc." and
// "Castor Brewing Co." both normalize to "castor".
var defaultProducerStopWords = []string{
	"microbrasserie", "brasserie", "inc", "inc.",
	"ltée", "ltd", "limited", "brewing", "brewery",
	"co", "company", "the", "le", "la", "les",
	"coopérative", "de", "travail", "brassicole", "brouërie",
}

// punctuationRunes are replaced with spaces before any comparison. The en
// dash appears in scraped names alongside the ASCII hyphen.
var punctuationRunes = map[rune]bool{
	'.': true, ',': true, '!': true, '?': true, ';': true, ':': true,
	'(': true, ')': true, '[': true, ']': true, '{': true, '}': true,
	'"': true, '\'': true, '-': true, '–': true,
}

// Normalizer collapses raw labels into comparable canonical strings. It is
// stateless after construction and safe for concurrent use.
type Normalizer struct {
	stopWords map[string]bool
}

// NewNormalizer creates a normalizer. An empty stopWords slice selects the
// default producer vocabulary; passing a custom list replaces it entirely.
func NewNormalizer(stopWords []string) *Normalizer {
	if len(stopWords) == 0 {
		stopWords = defaultProducerStopWords
	}
	set := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		set[w] = true
	}
	return &Normalizer{stopWords: set}
}

// Normalize lower-cases text, replaces punctuation with spaces, drops
// stop-words under ProfileStrict and collapses whitespace. Pure and
// locale-independent; empty input returns the empty string.
func (n *Normalizer) Normalize(text string, profile Profile) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if punctuationRunes[r] {
			return ' '
		}
		return r
	}, text)

	words := strings.Fields(text)
	if profile == ProfileStrict {
		kept := words[:0]
		for _, w := range words {
			if !n.stopWords[w] {
				kept = append(kept, w)
			}
		}
		words = kept
	}

	return strings.Join(words, " ")
}
