package usecase

import (
	"strings"

	"github.com/brewdex/backend/internal/domain"
)

// defaultVariantKeywords is the hand-curated French/English vocabulary of
// flavor and attribute words that make two listings different products even
// when their names otherwise match. Gaps in the list (a fruit word nobody
// added yet) are a known coverage limitation to be fixed through
// configuration, not by guessing additions here.
var defaultVariantKeywords = []string{
	"lime", "citron", "lemon", "framboise", "raspberry", "cerise", "cherry",
	"mangue", "mango", "passion", "pamplemousse", "grapefruit",
	"sure", "sour", "lactose", "vanille", "vanilla", "chocolat", "chocolate",
	"café", "coffee", "barrel aged", "vieilli", "aged", "nitro",
	"imperial", "double", "triple", "blonde", "brune", "rousse", "noire",
	"blanche", "wheat", "wit", "weizen", "stout", "porter",
	"pêche", "peach", "abricot", "apricot", "orange", "tangerine",
}

// defaultPackMarkers flag multi-unit listings in name/url/volume text.
var defaultPackMarkers = []string{
	"4-pack", "4pack", "4 pack",
	"6-pack", "6pack", "6 pack",
	"8-pack", "8pack", "8 pack",
	"12-pack", "12pack", "12 pack",
	"pack de", "x4", "x6", "x8", "x12",
	"caisse", "case",
}

// defaultPackURLMarkers flag photo or product URLs that point at a pack shot.
var defaultPackURLMarkers = []string{
	"pack", "caisse", "case",
	"x4", "x6", "x8", "x12",
	"4-pack", "6-pack",
}

// Vocabulary is the keyword configuration for a Classifier. Empty lists fall
// back to the defaults above, so a zero Vocabulary is ready to use.
type Vocabulary struct {
	VariantKeywords []string
	PackMarkers     []string
	PackURLMarkers  []string
}

// Classifier derives variant signatures and package formats from a record's
// free-text fields. Pure functions of the text; no external state.
type Classifier struct {
	variantKeywords []string
	packMarkers     []string
	packURLMarkers  []string
}

// NewClassifier creates a classifier with the given vocabulary.
func NewClassifier(vocab Vocabulary) *Classifier {
	c := &Classifier{
		variantKeywords: vocab.VariantKeywords,
		packMarkers:     vocab.PackMarkers,
		packURLMarkers:  vocab.PackURLMarkers,
	}
	if len(c.variantKeywords) == 0 {
		c.variantKeywords = defaultVariantKeywords
	}
	if len(c.packMarkers) == 0 {
		c.packMarkers = defaultPackMarkers
	}
	if len(c.packURLMarkers) == 0 {
		c.packURLMarkers = defaultPackURLMarkers
	}
	return c
}

// VariantSignature returns the subset of variant keywords occurring as
// substrings of the lower-cased name. An empty name yields an empty set.
func (c *Classifier) VariantSignature(name string) map[string]bool {
	signature := make(map[string]bool)
	if name == "" {
		return signature
	}

	lower := strings.ToLower(name)
	for _, keyword := range c.variantKeywords {
		if strings.Contains(lower, keyword) {
			signature[keyword] = true
		}
	}
	return signature
}

// SignaturesEqual reports exact set equality of two variant signatures.
// Overlap is not enough: "Blonde" and "Blonde Framboise" are different SKUs.
func SignaturesEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// PackageFormat scans the record's name, URL and volume text for pack
// markers and reports single or pack.
func (c *Classifier) PackageFormat(r domain.RawRecord) domain.PackageFormat {
	text := strings.ToLower(r.Name + " " + r.URL + " " + r.Volume)
	for _, marker := range c.packMarkers {
		if strings.Contains(text, marker) {
			return domain.FormatPack
		}
	}
	return domain.FormatSingle
}

// IsPackURL reports whether a URL looks like it belongs to a pack listing or
// a pack product photo.
func (c *Classifier) IsPackURL(url string) bool {
	lower := strings.ToLower(url)
	for _, marker := range c.packURLMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
