package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/brewdex/backend/config"
	httpDelivery "github.com/brewdex/backend/internal/delivery/http"
	"github.com/brewdex/backend/internal/infrastructure/cache"
	"github.com/brewdex/backend/internal/infrastructure/store"
	"github.com/brewdex/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting BrewDex Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Data dir: %s", cfg.Catalog.DataDir)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	recordStore := store.NewFileStore(cfg.Catalog.DataDir, cfg.Catalog.OutputFile)

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(
		recordStore,
		memoryCache,
		usecase.CatalogServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			ProducerThreshold:  cfg.Matching.ProducerThreshold,
			NameThreshold:      cfg.Matching.NameThreshold,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
			ProducerStopWords:  cfg.Vocabulary.ProducerStopWords,
			Vocabulary: usecase.Vocabulary{
				VariantKeywords: cfg.Vocabulary.VariantKeywords,
				PackMarkers:     cfg.Vocabulary.PackMarkers,
				PackURLMarkers:  cfg.Vocabulary.PackURLMarkers,
			},
		},
	)

	log.Printf("Matching: producer=%.2f, name=%.2f, debug=%v",
		cfg.Matching.ProducerThreshold,
		cfg.Matching.NameThreshold,
		cfg.Matching.EnableDebugLogging)

	// Build the canonical catalog. A failed load is not fatal: the merge and
	// search endpoints report their own state, and a reload can be triggered
	// by restarting once the data files are in place.
	if stats, err := catalogService.Reload(context.Background()); err != nil {
		log.Printf("WARNING: catalog not loaded: %v", err)
	} else {
		log.Printf("Catalog loaded: %d records -> %d canonical (%d duplicates, %d multi-source, %d with packs)",
			stats.Loaded, stats.Canonical, stats.Duplicates, stats.MultiSource, stats.WithPack)
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
