package usecase

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ScoreMode selects the similarity formula for one comparison.
type ScoreMode int

const (
	// ModeProducer uses strict normalization and the raw sequence ratio.
	ModeProducer ScoreMode = iota

	// ModeName uses light normalization and blends the sequence ratio with
	// token-set overlap.
	ModeName
)

// Scorer computes a [0,1] similarity between two raw labels.
type Scorer struct {
	normalizer *Normalizer
}

// NewScorer creates a scorer on top of the given normalizer.
func NewScorer(normalizer *Normalizer) *Scorer {
	return &Scorer{normalizer: normalizer}
}

// Similarity scores two raw labels. Missing data never matches: if either
// side normalizes to empty the score is 0.
//
// Containment short-circuits the full comparison. In name mode a prefix
// containment ("Blonde" vs "Blonde du Quartier") scores 1.0 and a
// mid-string containment 0.95; in producer mode any containment scores 1.0.
//
// Otherwise the base is a Ratcliff/Obershelp sequence ratio. Name mode blends
// it 50/50 with token-set overlap: pure alignment punishes reordered brand
// words too harshly, pure token overlap misses character-level near
// duplicates. The default 0.6/0.8 thresholds are tuned against this exact
// blend, so the weights must not drift independently of them.
func (s *Scorer) Similarity(a, b string, mode ScoreMode) float64 {
	profile := ProfileStrict
	if mode == ModeName {
		profile = ProfileLight
	}

	na := s.normalizer.Normalize(a, profile)
	nb := s.normalizer.Normalize(b, profile)
	if na == "" || nb == "" {
		return 0.0
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		if mode == ModeProducer {
			return 1.0
		}
		shorter, longer := na, nb
		if len(shorter) > len(longer) {
			shorter, longer = longer, shorter
		}
		if strings.HasPrefix(longer, shorter) {
			return 1.0
		}
		return 0.95
	}

	base := sequenceRatio(na, nb)
	if mode == ModeName {
		return base*0.5 + tokenOverlap(na, nb)*0.5
	}
	return base
}

// sequenceRatio is the longest-matching-blocks ratio 2*M/T over characters,
// the same figure difflib's SequenceMatcher reports.
func sequenceRatio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// tokenOverlap is |intersection| / max(|a|, |b|) over whitespace-split token
// sets of two normalized strings.
func tokenOverlap(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	common := 0
	for t := range ta {
		if tb[t] {
			common++
		}
	}

	larger := len(ta)
	if len(tb) > larger {
		larger = len(tb)
	}
	return float64(common) / float64(larger)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}
