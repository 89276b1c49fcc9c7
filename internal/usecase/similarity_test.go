package usecase

import (
	"math"
	"testing"
)

func newTestScorer() *Scorer {
	return NewScorer(NewNormalizer(nil))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimilarityEmptyInputs(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name string
		a, b string
		mode ScoreMode
	}{
		{"both empty producer", "", "", ModeProducer},
		{"one empty name", "Blonde", "", ModeName},
		{"stop words only normalize to empty", "The Brewing Company", "Unibroue", ModeProducer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Similarity(tt.a, tt.b, tt.mode); got != 0.0 {
				t.Errorf("Similarity(%q, %q) = %v, want 0.0", tt.a, tt.b, got)
			}
		})
	}
}

func TestSimilarityContainment(t *testing.T) {
	s := newTestScorer()

	t.Run("identical names score 1.0", func(t *testing.T) {
		if got := s.Similarity("Péché Mortel", "Péché Mortel", ModeName); got != 1.0 {
			t.Errorf("score = %v, want 1.0", got)
		}
	})

	t.Run("prefix containment scores 1.0 in name mode", func(t *testing.T) {
		// same root name plus a suffix
		if got := s.Similarity("Blonde", "Blonde du Quartier", ModeName); got != 1.0 {
			t.Errorf("score = %v, want 1.0", got)
		}
	})

	t.Run("mid-string containment scores 0.95 in name mode", func(t *testing.T) {
		if got := s.Similarity("Mortel", "Péché Mortel", ModeName); got != 0.95 {
			t.Errorf("score = %v, want 0.95", got)
		}
	})

	t.Run("any containment scores 1.0 in producer mode", func(t *testing.T) {
		if got := s.Similarity("Castor", "Les Bières Castor", ModeProducer); got != 1.0 {
			t.Errorf("score = %v, want 1.0", got)
		}
	})
}

func TestSimilarityProducerRatio(t *testing.T) {
	s := newTestScorer()

	t.Run("boilerplate variants of one producer clear the default threshold", func(t *testing.T) {
		got := s.Similarity("Brasserie Exemple", "Exemple Brewing Inc.", ModeProducer)
		if got < defaultProducerThreshold {
			t.Errorf("score = %v, want >= %v", got, defaultProducerThreshold)
		}
	})

	t.Run("unrelated producers score low", func(t *testing.T) {
		got := s.Similarity("Unibroue", "Dieu du Ciel", ModeProducer)
		if got >= defaultProducerThreshold {
			t.Errorf("score = %v, want < %v", got, defaultProducerThreshold)
		}
	})
}

func TestSimilarityNameBlend(t *testing.T) {
	s := newTestScorer()

	t.Run("reordered words benefit from token overlap", func(t *testing.T) {
		got := s.Similarity("Ale Pale India", "India Pale Ale", ModeName)
		// full token overlap lifts the blend to at least 0.5 regardless of
		// how the character alignment scores
		if got < 0.5 {
			t.Errorf("score = %v, want >= 0.5", got)
		}
	})

	t.Run("blend is the mean of ratio and overlap", func(t *testing.T) {
		a, b := "stout au café", "porter au café"
		want := sequenceRatio("stout au café", "porter au café")*0.5 + tokenOverlap("stout au café", "porter au café")*0.5
		if got := s.Similarity(a, b, ModeName); !almostEqual(got, want) {
			t.Errorf("score = %v, want %v", got, want)
		}
	})

	t.Run("unrelated names score low", func(t *testing.T) {
		got := s.Similarity("Raspberry Sour", "Imperial Stout", ModeName)
		if got >= defaultNameThreshold {
			t.Errorf("score = %v, want < %v", got, defaultNameThreshold)
		}
	})
}

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 1.0},
		{"abc", "xyz", 0.0},
		// 2*M/T with M=3 matched runes over T=7 total
		{"abcd", "bcd", 6.0 / 7.0},
	}

	for _, tt := range tests {
		if got := sequenceRatio(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("sequenceRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"india pale ale", "india pale ale", 1.0},
		{"india pale ale", "pale ale", 2.0 / 3.0},
		{"stout", "porter", 0.0},
		{"", "pale ale", 0.0},
	}

	for _, tt := range tests {
		if got := tokenOverlap(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("tokenOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
