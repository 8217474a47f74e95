package ayahcontent

import "errors"

// Validation errors (rejected before any I/O)
var (
	ErrInvalidRange = errors.New("invalid ayah range")
)

// Canonical-store validation errors (rejected before any mutation)
var (
	ErrSurahNotFound     = errors.New("surah not found")
	ErrRangeExceedsSurah = errors.New("ayah range exceeds surah ayah count")
	ErrRangeIncomplete   = errors.New("not all ayahs in range exist")
)

// Repository-level errors
var (
	ErrGroupNotFound = errors.New("ayah group not found")
)
