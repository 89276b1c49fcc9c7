package usecase

import (
	"log"

	"github.com/brewdex/backend/internal/domain"
)

// Default thresholds, tuned together with the scoring blend in similarity.go.
const (
	defaultProducerThreshold = 0.6
	defaultNameThreshold     = 0.8
)

// MatchConfig holds configuration for the match engine.
type MatchConfig struct {
	ProducerThreshold  float64
	NameThreshold      float64
	EnableDebugLogging bool
}

// MatchEngine decides whether two records denote the same product. It is a
// pure, stateless predicate over two records plus one flag; thresholds are
// fixed at construction time and apply uniformly to every comparison.
type MatchEngine struct {
	scorer             *Scorer
	classifier         *Classifier
	producerThreshold  float64
	nameThreshold      float64
	enableDebugLogging bool
}

// NewMatchEngine creates a match engine with the given configuration.
// Thresholds outside (0,1] fall back to the defaults.
func NewMatchEngine(scorer *Scorer, classifier *Classifier, config MatchConfig) *MatchEngine {
	producerThreshold := config.ProducerThreshold
	if producerThreshold <= 0 || producerThreshold > 1 {
		producerThreshold = defaultProducerThreshold
	}

	nameThreshold := config.NameThreshold
	if nameThreshold <= 0 || nameThreshold > 1 {
		nameThreshold = defaultNameThreshold
	}

	return &MatchEngine{
		scorer:             scorer,
		classifier:         classifier,
		producerThreshold:  producerThreshold,
		nameThreshold:      nameThreshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Evaluate runs the identity checks in order, cheapest and most
// discriminating first, and short-circuits on the first failure:
//
//  1. both records carry a producer (no identity without that anchor)
//  2. producer similarity reaches the producer threshold
//  3. both records carry a name
//  4. name similarity reaches the name threshold
//  5. variant signatures are exactly equal; a mismatch vetoes the match no
//     matter how similar the names score, so a fruited variant can never
//     collapse into its base beer
//  6. package formats agree, unless ignoreFormat trades format purity for
//     grouping a pack listing under its single-unit sibling
//
// A record missing producer or name therefore never matches anything and
// survives as its own canonical entry; partial data degrades to "distinct
// product", never to an error.
func (e *MatchEngine) Evaluate(a, b domain.RawRecord, ignoreFormat bool) domain.MatchDecision {
	var decision domain.MatchDecision

	if a.Producer == "" || b.Producer == "" {
		return decision
	}
	decision.ProducerScore = e.scorer.Similarity(a.Producer, b.Producer, ModeProducer)
	if decision.ProducerScore < e.producerThreshold {
		return decision
	}

	if a.Name == "" || b.Name == "" {
		return decision
	}
	decision.NameScore = e.scorer.Similarity(a.Name, b.Name, ModeName)
	if decision.NameScore < e.nameThreshold {
		return decision
	}

	if !SignaturesEqual(e.classifier.VariantSignature(a.Name), e.classifier.VariantSignature(b.Name)) {
		if e.enableDebugLogging {
			log.Printf("[MATCH] variant veto: %q vs %q", a.Name, b.Name)
		}
		return decision
	}

	if !ignoreFormat && e.classifier.PackageFormat(a) != e.classifier.PackageFormat(b) {
		return decision
	}

	decision.Match = true
	return decision
}

// IsSameProduct is Evaluate reduced to its verdict.
func (e *MatchEngine) IsSameProduct(a, b domain.RawRecord, ignoreFormat bool) bool {
	return e.Evaluate(a, b, ignoreFormat).Match
}
