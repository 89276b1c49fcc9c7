package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/brewdex/backend/internal/domain"
)

// SearchService answers producer/name queries over the raw record stream
// using the same normalizer, scorer and thresholds the merge engine uses.
type SearchService struct {
	scorer             *Scorer
	producerThreshold  float64
	nameThreshold      float64
	enableDebugLogging bool
}

// NewSearchService creates a search service. Thresholds outside (0,1] fall
// back to the same defaults the match engine uses.
func NewSearchService(scorer *Scorer, config MatchConfig) *SearchService {
	producerThreshold := config.ProducerThreshold
	if producerThreshold <= 0 || producerThreshold > 1 {
		producerThreshold = defaultProducerThreshold
	}

	nameThreshold := config.NameThreshold
	if nameThreshold <= 0 || nameThreshold > 1 {
		nameThreshold = defaultNameThreshold
	}

	return &SearchService{
		scorer:             scorer,
		producerThreshold:  producerThreshold,
		nameThreshold:      nameThreshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search scans the records for those matching the query's producer and/or
// name criteria and returns them sorted by overall score, best first. The
// overall score is the mean of the non-zero criterion scores. A record
// missing a queried field never matches. Queries with neither criterion are
// invalid.
func (s *SearchService) Search(ctx context.Context, query domain.SearchQuery, records []domain.RawRecord) ([]domain.SearchResult, error) {
	if query.Producer == "" && query.Name == "" {
		return nil, fmt.Errorf("%w: producer or name is required", domain.ErrInvalidRequest)
	}

	if s.enableDebugLogging {
		log.Printf("[SEARCH] producer=%q name=%q fuzzy=%v over %d records",
			query.Producer, query.Name, query.Fuzzy, len(records))
	}

	var results []domain.SearchResult
	for _, record := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		producerMatch, producerScore := s.matchField(query.Producer, record.Producer, ModeProducer, query.Fuzzy, s.producerThreshold)
		if !producerMatch {
			continue
		}
		nameMatch, nameScore := s.matchField(query.Name, record.Name, ModeName, query.Fuzzy, s.nameThreshold)
		if !nameMatch {
			continue
		}

		results = append(results, domain.SearchResult{
			Record:        record,
			MatchScore:    overallScore(producerScore, nameScore),
			ProducerScore: producerScore,
			NameScore:     nameScore,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results, nil
}

// matchField scores one criterion against one record field. An empty
// criterion matches everything with score 0; an empty field fails any
// criterion.
func (s *SearchService) matchField(criterion, value string, mode ScoreMode, fuzzy bool, threshold float64) (bool, float64) {
	if criterion == "" {
		return true, 0.0
	}
	if value == "" {
		return false, 0.0
	}

	if fuzzy {
		score := s.scorer.Similarity(criterion, value, mode)
		return score >= threshold, score
	}

	if strings.Contains(strings.ToLower(value), strings.ToLower(criterion)) {
		return true, 1.0
	}
	return false, 0.0
}

// overallScore averages the non-zero criterion scores.
func overallScore(scores ...float64) float64 {
	sum, n := 0.0, 0
	for _, score := range scores {
		if score > 0 {
			sum += score
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}
