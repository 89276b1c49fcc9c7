package usecase

import (
	"log"
	"strings"

	"github.com/brewdex/backend/internal/domain"
)

// MergeService folds a stream of source-tagged records into a canonical
// list. Processing is strictly sequential: match outcomes and first-wins
// ties depend on input order, so the order of the input stream is part of
// the contract, not an implementation detail.
type MergeService struct {
	engine             *MatchEngine
	classifier         *Classifier
	enableDebugLogging bool
}

// NewMergeService creates a merge service sharing the match engine's
// classifier for format decisions.
func NewMergeService(engine *MatchEngine, classifier *Classifier) *MergeService {
	return &MergeService{
		engine:             engine,
		classifier:         classifier,
		enableDebugLogging: engine.enableDebugLogging,
	}
}

// MergeAll folds the records, in input order, into canonical entries. Each
// incoming record is probed against existing entries front to back with the
// format check suspended, so pack listings group under their single-unit
// siblings; the first hit wins and absorbs the record, otherwise the record
// becomes a new canonical entry. The scan is O(n²), which is fine for
// catalogs in the thousands and keeps outcomes easy to reason about.
//
// Merged entries are computed into a fresh value and committed to the slot
// in one assignment, so a partially built merge is never visible.
func (s *MergeService) MergeAll(records []domain.RawRecord) ([]domain.CanonicalRecord, domain.MergeStats) {
	canon := make([]domain.CanonicalRecord, 0, len(records))
	stats := domain.MergeStats{Loaded: len(records)}

	for _, r := range records {
		matched := false
		for i := range canon {
			if s.engine.IsSameProduct(r, canon[i].RawRecord, true) {
				canon[i] = s.mergeRecord(canon[i], r)
				matched = true
				stats.Duplicates++
				break
			}
		}
		if !matched {
			canon = append(canon, s.mergeRecord(domain.CanonicalRecord{}, r))
		}
	}

	stats.Canonical = len(canon)
	for i := range canon {
		if len(canon[i].Sources) > 1 {
			stats.MultiSource++
		}
		if canon[i].Pack != nil && len(canon[i].Pack.URLs) > 0 {
			stats.WithPack++
		}
	}

	if s.enableDebugLogging {
		log.Printf("[MERGE] %d records folded into %d canonical entries (%d duplicates)",
			stats.Loaded, stats.Canonical, stats.Duplicates)
	}

	return canon, stats
}

// mergeRecord returns a fresh canonical value with one record's contribution
// applied. A new entry is the same operation run against the zero canonical,
// so a single-record entry carries exactly the shape a merged one does.
//
// The field policy: sources and urls union append-only; pack-format
// contributions route price/photo/description/url into the pack section and
// never touch the single-item maps; name, producer, volume and alcohol are
// first non-empty wins (pack contributions have pack markers stripped from
// the name first); the per-source maps take single-format values keyed by
// source; region, availability, upc and ibu are first non-empty wins
// regardless of format. Nothing is ever deleted and no map shrinks.
func (s *MergeService) mergeRecord(existing domain.CanonicalRecord, r domain.RawRecord) domain.CanonicalRecord {
	merged := cloneCanonical(existing)
	source := r.Source

	if !containsString(merged.Sources, source) {
		merged.Sources = append(merged.Sources, source)
	}
	if r.URL != "" && !containsString(merged.URLs, r.URL) {
		merged.URLs = append(merged.URLs, r.URL)
	}

	format := s.classifier.PackageFormat(r)

	if format == domain.FormatPack {
		if merged.Pack == nil {
			merged.Pack = &domain.PackInfo{}
		}
		if r.URL != "" && !containsString(merged.Pack.URLs, r.URL) {
			merged.Pack.URLs = append(merged.Pack.URLs, r.URL)
		}
		if r.Price != "" {
			setMapValue(&merged.Pack.Prices, source, r.Price)
		}
		if r.PhotoURL != "" {
			setMapValue(&merged.Pack.PhotoURLs, source, r.PhotoURL)
		}
		if r.Description != "" {
			setMapValue(&merged.Pack.Descriptions, source, r.Description)
		}
	}

	if merged.Name == "" && r.Name != "" {
		name := r.Name
		if format == domain.FormatPack {
			// packs often append a pack marker that should not leak into
			// the canonical display name
			name = stripPackMarker(name)
		}
		merged.Name = name
	}
	if merged.Producer == "" {
		merged.Producer = r.Producer
	}
	if merged.Volume == "" {
		merged.Volume = r.Volume
	}
	if merged.Alcohol == "" {
		merged.Alcohol = r.Alcohol
	}
	if merged.Source == "" {
		merged.Source = source
	}
	if merged.URL == "" {
		merged.URL = r.URL
	}

	if format == domain.FormatSingle {
		if r.Price != "" {
			setMapValue(&merged.Prices, source, r.Price)
		}
		if r.Description != "" {
			setMapValue(&merged.Descriptions, source, r.Description)
		}
		if r.Style != "" {
			setMapValue(&merged.Styles, source, r.Style)
		}
		if r.SubStyle != "" {
			setMapValue(&merged.SubStyles, source, r.SubStyle)
		}
		if r.PhotoURL != "" {
			setMapValue(&merged.PhotoURLs, source, r.PhotoURL)
		}
	}

	if merged.Region == "" {
		merged.Region = r.Region
	}
	if merged.Availability == "" {
		merged.Availability = r.Availability
	}
	if merged.UPC == "" {
		merged.UPC = r.UPC
	}
	if merged.IBU == "" {
		merged.IBU = r.IBU
	}

	merged.PhotoURL = s.selectPhoto(merged)

	return merged
}

// selectPhoto re-derives the display photo from the single-format photo map,
// walking entries in insertion order (the order sources contributed).
// Upstream scrapers sometimes ship a multi-pack shot or a placeholder image
// on a single-SKU page, so: first entry that is neither pack-looking nor a
// placeholder; failing that, the first non-placeholder; failing that, the
// first entry at all.
func (s *MergeService) selectPhoto(c domain.CanonicalRecord) string {
	if len(c.PhotoURLs) == 0 {
		return ""
	}

	var first, firstClean string
	for _, source := range c.Sources {
		url, ok := c.PhotoURLs[source]
		if !ok || url == "" {
			continue
		}
		if first == "" {
			first = url
		}
		if strings.Contains(strings.ToLower(url), "placeholder") {
			continue
		}
		if firstClean == "" {
			firstClean = url
		}
		if !s.classifier.IsPackURL(url) {
			return url
		}
	}

	if firstClean != "" {
		return firstClean
	}
	return first
}

// stripPackMarker removes literal pack markers from a name contributed by a
// pack-format listing.
func stripPackMarker(name string) string {
	name = strings.ReplaceAll(name, "(pack)", "")
	name = strings.ReplaceAll(name, "pack", "")
	return strings.TrimSpace(name)
}

// cloneCanonical deep-copies the slices and maps of a canonical record so a
// merge can be built up without mutating the committed entry.
func cloneCanonical(c domain.CanonicalRecord) domain.CanonicalRecord {
	out := c
	out.Sources = append([]string(nil), c.Sources...)
	out.URLs = append([]string(nil), c.URLs...)
	out.Prices = cloneMap(c.Prices)
	out.Descriptions = cloneMap(c.Descriptions)
	out.PhotoURLs = cloneMap(c.PhotoURLs)
	out.Styles = cloneMap(c.Styles)
	out.SubStyles = cloneMap(c.SubStyles)
	if c.Pack != nil {
		out.Pack = &domain.PackInfo{
			URLs:         append([]string(nil), c.Pack.URLs...),
			Prices:       cloneMap(c.Pack.Prices),
			PhotoURLs:    cloneMap(c.Pack.PhotoURLs),
			Descriptions: cloneMap(c.Pack.Descriptions),
		}
	}
	return out
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func setMapValue(m *map[string]string, key, value string) {
	if *m == nil {
		*m = make(map[string]string)
	}
	(*m)[key] = value
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
