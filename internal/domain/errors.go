package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogNotLoaded is returned when a search runs before any source
	// records have been loaded
	ErrCatalogNotLoaded = errors.New("catalog has not been loaded")

	// ErrNoRecordFiles is returned when the data directory contains no
	// readable record files
	ErrNoRecordFiles = errors.New("no record files found in data directory")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
