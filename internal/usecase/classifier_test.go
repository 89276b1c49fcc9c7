package usecase

import (
	"testing"

	"github.com/brewdex/backend/internal/domain"
)

func TestVariantSignature(t *testing.T) {
	c := NewClassifier(Vocabulary{})

	tests := []struct {
		name    string
		product string
		want    []string
	}{
		{
			name:    "no variant keywords",
			product: "India Pale Ale",
			want:    nil,
		},
		{
			name:    "single fruit keyword",
			product: "Blonde Framboise",
			want:    []string{"blonde", "framboise"},
		},
		{
			name:    "case insensitive",
			product: "IMPERIAL STOUT NITRO",
			want:    []string{"imperial", "stout", "nitro"},
		},
		{
			name:    "barrel aged detects both keywords",
			product: "Barrel Aged Porter",
			want:    []string{"barrel aged", "aged", "porter"},
		},
		{
			name:    "french accented keyword",
			product: "Stout au Café",
			want:    []string{"café", "stout"},
		},
		{
			name:    "empty name",
			product: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.VariantSignature(tt.product)
			if len(got) != len(tt.want) {
				t.Fatalf("VariantSignature(%q) = %v, want keywords %v", tt.product, got, tt.want)
			}
			for _, keyword := range tt.want {
				if !got[keyword] {
					t.Errorf("VariantSignature(%q) missing %q: %v", tt.product, keyword, got)
				}
			}
		})
	}
}

func TestSignaturesEqual(t *testing.T) {
	c := NewClassifier(Vocabulary{})

	t.Run("equal signatures", func(t *testing.T) {
		a := c.VariantSignature("Blonde Framboise")
		b := c.VariantSignature("La Blonde framboise 473ml")
		if !SignaturesEqual(a, b) {
			t.Errorf("signatures %v and %v should be equal", a, b)
		}
	})

	t.Run("empty vs non-empty differ", func(t *testing.T) {
		a := c.VariantSignature("India Pale Ale")
		b := c.VariantSignature("India Pale Ale Framboise")
		if SignaturesEqual(a, b) {
			t.Error("base beer and fruited variant must not share a signature")
		}
	})

	t.Run("both empty are equal", func(t *testing.T) {
		if !SignaturesEqual(map[string]bool{}, map[string]bool{}) {
			t.Error("two empty signatures should be equal")
		}
	})
}

func TestPackageFormat(t *testing.T) {
	c := NewClassifier(Vocabulary{})

	tests := []struct {
		name   string
		record domain.RawRecord
		want   domain.PackageFormat
	}{
		{
			name:   "plain single",
			record: domain.RawRecord{Name: "Péché Mortel", Volume: "473ml"},
			want:   domain.FormatSingle,
		},
		{
			name:   "pack marker in name",
			record: domain.RawRecord{Name: "Péché Mortel 4-Pack"},
			want:   domain.FormatPack,
		},
		{
			name:   "pack marker in url only",
			record: domain.RawRecord{Name: "Péché Mortel", URL: "https://shop.example/peche-mortel-x4"},
			want:   domain.FormatPack,
		},
		{
			name:   "french case marker in volume",
			record: domain.RawRecord{Name: "Blonde", Volume: "caisse de 12"},
			want:   domain.FormatPack,
		},
		{
			name:   "spaced marker",
			record: domain.RawRecord{Name: "Blonde 6 pack"},
			want:   domain.FormatPack,
		},
		{
			name:   "empty record",
			record: domain.RawRecord{},
			want:   domain.FormatSingle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.PackageFormat(tt.record); got != tt.want {
				t.Errorf("PackageFormat(%+v) = %v, want %v", tt.record, got, tt.want)
			}
		})
	}
}

func TestIsPackURL(t *testing.T) {
	c := NewClassifier(Vocabulary{})

	tests := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example/photos/beer-4-pack.jpg", true},
		{"https://cdn.example/photos/caisse-12.jpg", true},
		{"https://cdn.example/photos/beer.jpg", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := c.IsPackURL(tt.url); got != tt.want {
			t.Errorf("IsPackURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestClassifierCustomVocabulary(t *testing.T) {
	c := NewClassifier(Vocabulary{
		VariantKeywords: []string{"citra"},
		PackMarkers:     []string{"bundle"},
	})

	t.Run("custom variant keyword detected", func(t *testing.T) {
		got := c.VariantSignature("India Pale Ale - Citra Edition")
		if !got["citra"] {
			t.Errorf("signature = %v, want citra detected", got)
		}
	})

	t.Run("default keywords replaced", func(t *testing.T) {
		got := c.VariantSignature("Blonde Framboise")
		if len(got) != 0 {
			t.Errorf("signature = %v, want empty with custom vocabulary", got)
		}
	})

	t.Run("custom pack marker", func(t *testing.T) {
		record := domain.RawRecord{Name: "Blonde bundle"}
		if c.PackageFormat(record) != domain.FormatPack {
			t.Error("custom pack marker not detected")
		}
	})

	t.Run("default pack markers replaced", func(t *testing.T) {
		record := domain.RawRecord{Name: "Blonde 4-pack"}
		if c.PackageFormat(record) != domain.FormatSingle {
			t.Error("default pack markers should be replaced by custom list")
		}
	})
}
