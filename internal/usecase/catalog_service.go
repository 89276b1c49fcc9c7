package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/brewdex/backend/internal/domain"
)

// CatalogServiceConfig holds configuration for the catalog service.
type CatalogServiceConfig struct {
	CacheTTL           time.Duration
	ProducerThreshold  float64
	NameThreshold      float64
	EnableDebugLogging bool
	ProducerStopWords  []string
	Vocabulary         Vocabulary
}

// CatalogService is the orchestration layer: it loads source records through
// the store, folds them into the canonical catalog, serves searches over the
// raw stream and caches search results.
type CatalogService struct {
	store    domain.RecordStore
	cache    domain.CacheRepository
	merger   *MergeService
	searcher *SearchService
	cacheTTL time.Duration

	mu        sync.RWMutex
	raw       []domain.RawRecord
	canonical []domain.CanonicalRecord
	stats     domain.MergeStats
	loaded    bool
}

// NewCatalogService wires the full engine stack from one configuration.
func NewCatalogService(
	store domain.RecordStore,
	cache domain.CacheRepository,
	config CatalogServiceConfig,
) *CatalogService {
	normalizer := NewNormalizer(config.ProducerStopWords)
	scorer := NewScorer(normalizer)
	classifier := NewClassifier(config.Vocabulary)

	matchConfig := MatchConfig{
		ProducerThreshold:  config.ProducerThreshold,
		NameThreshold:      config.NameThreshold,
		EnableDebugLogging: config.EnableDebugLogging,
	}
	engine := NewMatchEngine(scorer, classifier, matchConfig)

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	return &CatalogService{
		store:    store,
		cache:    cache,
		merger:   NewMergeService(engine, classifier),
		searcher: NewSearchService(scorer, matchConfig),
		cacheTTL: cacheTTL,
	}
}

// Reload pulls every source collection from the store, rebuilds the
// canonical catalog and persists it. The new catalog is swapped in
// atomically; a failed load leaves the previous one serving.
func (s *CatalogService) Reload(ctx context.Context) (domain.MergeStats, error) {
	records, err := s.store.LoadRecords(ctx)
	if err != nil {
		return domain.MergeStats{}, fmt.Errorf("loading source records: %w", err)
	}

	canonical, stats := s.merger.MergeAll(records)

	s.mu.Lock()
	s.raw = records
	s.canonical = canonical
	s.stats = stats
	s.loaded = true
	s.mu.Unlock()

	if err := s.store.SaveCanonical(ctx, canonical); err != nil {
		// the in-memory catalog is already serving; persistence is best
		// effort
		log.Printf("[MERGE] failed to persist canonical catalog: %v", err)
	}

	return stats, nil
}

// Merge folds caller-supplied source collections without touching the loaded
// catalog. Records are tagged with their collection's source before the fold,
// so collection order and in-collection order together define the stream.
func (s *CatalogService) Merge(ctx context.Context, collections []domain.SourceCollection) ([]domain.CanonicalRecord, domain.MergeStats, error) {
	if len(collections) == 0 {
		return nil, domain.MergeStats{}, fmt.Errorf("%w: at least one source collection is required", domain.ErrInvalidRequest)
	}

	var records []domain.RawRecord
	for _, collection := range collections {
		for _, record := range collection.Records {
			record.Source = collection.Source
			records = append(records, record)
		}
	}

	select {
	case <-ctx.Done():
		return nil, domain.MergeStats{}, ctx.Err()
	default:
	}

	canonical, stats := s.merger.MergeAll(records)
	return canonical, stats, nil
}

// Search runs a query over the loaded raw records, consulting the cache
// first. Cache failures degrade silently to a fresh search.
func (s *CatalogService) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	s.mu.RLock()
	records := s.raw
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		return nil, domain.ErrCatalogNotLoaded
	}

	cacheKey := s.searchCacheKey(query)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if results, ok := cached.([]domain.SearchResult); ok {
			return results, nil
		}
	}

	results, err := s.searcher.Search(ctx, query, records)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, results, s.cacheTTL); err != nil {
		log.Printf("[SEARCH] failed to cache results: %v", err)
	}

	return results, nil
}

// Canonical returns the loaded canonical catalog and its merge statistics.
func (s *CatalogService) Canonical() ([]domain.CanonicalRecord, domain.MergeStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, domain.MergeStats{}, domain.ErrCatalogNotLoaded
	}
	return s.canonical, s.stats, nil
}

// searchCacheKey normalizes the query into a stable cache key.
// Format: "search:{producer}:{name}:{fuzzy}".
func (s *CatalogService) searchCacheKey(query domain.SearchQuery) string {
	normalizer := s.searcher.scorer.normalizer
	return fmt.Sprintf("search:%s:%s:%v",
		normalizer.Normalize(query.Producer, ProfileLight),
		normalizer.Normalize(query.Name, ProfileLight),
		query.Fuzzy,
	)
}
