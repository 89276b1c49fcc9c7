package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brewdex/backend/internal/domain"
)

const (
	recordFilePrefix = "beers_"
	recordFileSuffix = ".json"
)

// FileStore loads scraped source collections from a data directory and
// persists the merged catalog to a single JSON file. Each source drops its
// records as beers_<source>.json; the source name comes from the filename.
type FileStore struct {
	dataDir    string
	outputFile string
}

// NewFileStore creates a file store. outputFile may be empty, in which case
// SaveCanonical is a no-op.
func NewFileStore(dataDir, outputFile string) *FileStore {
	return &FileStore{
		dataDir:    dataDir,
		outputFile: outputFile,
	}
}

// LoadRecords reads every beers_<source>.json file in the data directory, in
// lexical filename order, and returns one source-tagged stream. The file
// order fixes which source wins first-wins ties, so it has to be stable
// across runs. A file that cannot be read or parsed is logged and skipped;
// the load fails only when no file yields any records.
func (s *FileStore) LoadRecords(ctx context.Context) ([]domain.RawRecord, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory %s: %w", s.dataDir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, recordFilePrefix) || !strings.HasSuffix(name, recordFileSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var records []domain.RawRecord
	loadedFiles := 0
	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		source := sourceFromFilename(name)
		fileRecords, err := s.loadFile(filepath.Join(s.dataDir, name), source)
		if err != nil {
			log.Printf("[STORE] skipping %s: %v", name, err)
			continue
		}

		records = append(records, fileRecords...)
		loadedFiles++
	}

	if loadedFiles == 0 {
		return nil, domain.ErrNoRecordFiles
	}

	log.Printf("[STORE] loaded %d records from %d files in %s", len(records), loadedFiles, s.dataDir)
	return records, nil
}

// SaveCanonical writes the merged catalog to the configured output file.
func (s *FileStore) SaveCanonical(ctx context.Context, records []domain.CanonicalRecord) error {
	if s.outputFile == "" {
		return nil
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding canonical catalog: %w", err)
	}

	if err := os.WriteFile(s.outputFile, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.outputFile, err)
	}

	return nil
}

func (s *FileStore) loadFile(path, source string) ([]domain.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}

	for i := range records {
		records[i].Source = source
	}

	return records, nil
}

// sourceFromFilename extracts the source name from beers_<source>.json.
func sourceFromFilename(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, recordFilePrefix), recordFileSuffix)
}
