package domain

// PackageFormat tells whether a listing describes a single unit or a
// multi-unit pack of the same product.
type PackageFormat string

const (
	FormatSingle PackageFormat = "single"
	FormatPack   PackageFormat = "pack"
)

// RawRecord is one product listing as scraped from a source site. Every field
// is an opaque optional string; nothing is parsed or validated here. Records
// are immutable once created and consumed read-only by the merge engine.
type RawRecord struct {
	Source       string `json:"source,omitempty"`
	URL          string `json:"url,omitempty"`
	Name         string `json:"name,omitempty"`
	Producer     string `json:"producer,omitempty"`
	Style        string `json:"style,omitempty"`
	SubStyle     string `json:"sub_style,omitempty"`
	Volume       string `json:"volume,omitempty"`
	Alcohol      string `json:"alcohol,omitempty"`
	Description  string `json:"description,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Price        string `json:"price,omitempty"`
	Availability string `json:"availability,omitempty"`
	IBU          string `json:"ibu,omitempty"`
	Region       string `json:"region,omitempty"`
	UPC          string `json:"upc,omitempty"`
}

// SourceCollection groups the records contributed by one origin site. Merge
// input is an ordered sequence of these; order is observable because it
// decides first-wins ties.
type SourceCollection struct {
	Source  string      `json:"source"`
	Records []RawRecord `json:"records"`
}

// PackInfo collects pack-format contributions separately so that they never
// pollute the single-item maps on the canonical record.
type PackInfo struct {
	URLs         []string          `json:"urls,omitempty"`
	Prices       map[string]string `json:"prices,omitempty"`
	PhotoURLs    map[string]string `json:"photo_urls,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
}

// CanonicalRecord is the deduplicated representation of one product after
// folding in all matching source records. Scalar fields follow first
// non-empty wins, except fields promoted to a per-source map below; PhotoURL
// is always re-derived from PhotoURLs. Maps and slices only ever grow.
type CanonicalRecord struct {
	RawRecord

	// Sources lists contributing sites in the order they were first seen;
	// each source appears at most once. URLs tracks every distinct listing
	// URL across contributors.
	Sources []string `json:"sources"`
	URLs    []string `json:"urls,omitempty"`

	// Per-source maps, populated only by single-format contributions.
	Prices       map[string]string `json:"prices,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	PhotoURLs    map[string]string `json:"photo_urls,omitempty"`
	Styles       map[string]string `json:"styles,omitempty"`
	SubStyles    map[string]string `json:"sub_styles,omitempty"`

	// Pack holds pack-format contributions, kept disjoint from the maps
	// above.
	Pack *PackInfo `json:"pack_info,omitempty"`
}

// MatchDecision is the ephemeral verdict for one record pair, with the
// intermediate scores that produced it. It is never stored.
type MatchDecision struct {
	Match         bool    `json:"match"`
	ProducerScore float64 `json:"producer_score"`
	NameScore     float64 `json:"name_score"`
}

// MergeStats summarizes one merge run.
type MergeStats struct {
	Loaded      int `json:"loaded"`
	Canonical   int `json:"canonical"`
	Duplicates  int `json:"duplicates"`
	MultiSource int `json:"multi_source"`
	WithPack    int `json:"with_pack_info"`
}

// SearchQuery asks for records matching a producer and/or a name. With Fuzzy
// set, similarity scoring and the configured thresholds apply; otherwise
// matching falls back to case-insensitive substring containment.
type SearchQuery struct {
	Producer string `json:"producer,omitempty"`
	Name     string `json:"name,omitempty"`
	Fuzzy    bool   `json:"fuzzy"`
}

// SearchResult is one scored hit from a catalog search.
type SearchResult struct {
	Record        RawRecord `json:"record"`
	MatchScore    float64   `json:"match_score"`
	ProducerScore float64   `json:"producer_score"`
	NameScore     float64   `json:"name_score"`
}
