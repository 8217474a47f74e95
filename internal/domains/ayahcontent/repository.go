package ayahcontent

import (
	"context"

	"github.com/google/uuid"
)

// GroupPatch carries the group fields an upsert may change. Nil means
// "leave untouched".
type GroupPatch struct {
	Status    *string
	IsGrouped *bool
}

// IsZero reports whether the patch changes nothing.
func (p GroupPatch) IsZero() bool {
	return p.Status == nil && p.IsGrouped == nil
}

// ContentSets carries per-type content replacements. A nil pointer leaves
// that content type untouched; a non-nil empty slice clears it. The two must
// never be conflated — callers rely on the distinction.
type ContentSets struct {
	Infos        *[]AyahInfo
	Translations *[]AyahTranslation
	Tafsirs      *[]AyahTafsir
}

// Repository is the persistence contract for ayah groups and their content.
// Multi-row writes are transactional inside the implementation: either every
// row change commits or none does.
type Repository interface {
	// FindByRange looks up a group by its natural key. (nil, nil) when absent.
	FindByRange(ctx context.Context, surahID, startAyah, endAyah int) (*GroupWithContent, error)

	// FindContaining returns every published group whose range contains the
	// ayah. Overlap is expected; no ordering is guaranteed beyond recency.
	FindContaining(ctx context.Context, surahID, ayahNumber int) ([]AyahGroup, error)

	// FindBySurah returns all groups of a surah ordered by start, then end.
	FindBySurah(ctx context.Context, surahID int) ([]GroupWithContent, error)

	// FindByID returns a group with content. (nil, nil) when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*GroupWithContent, error)

	// CreateWithContent inserts the group and all supplied content rows in
	// one transaction. If the natural key already exists the existing group
	// is returned unchanged with reused=true and the supplied sets are not
	// written; the caller decides how to apply them to the winner.
	CreateWithContent(ctx context.Context, group AyahGroup, sets ContentSets) (created *GroupWithContent, reused bool, err error)

	// UpdateWithContent patches the group and, for each supplied set,
	// replaces that content type wholesale, all in one transaction.
	// Returns ErrGroupNotFound when the group does not exist.
	UpdateWithContent(ctx context.Context, id uuid.UUID, patch GroupPatch, sets ContentSets) (*GroupWithContent, error)

	// Keyed single-row upserts: insert when the natural key is absent,
	// field-level update when present. Other content rows are untouched.
	UpsertInfo(ctx context.Context, info AyahInfo) error
	UpsertTranslation(ctx context.Context, translation AyahTranslation) error
	UpsertTafsir(ctx context.Context, tafsir AyahTafsir) error

	// ListContent returns the group's content rows, optionally filtered to
	// one language.
	ListContent(ctx context.Context, groupID uuid.UUID, languageID *int) ([]AyahInfo, []AyahTranslation, []AyahTafsir, error)

	// Delete removes the group and cascades to all child content rows.
	// Returns ErrGroupNotFound when the group does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CanonicalReader is the read-only view of the canonical text store used to
// confirm a range is realizable. This service never writes to that store.
type CanonicalReader interface {
	// GetVerseCount returns the surah's total ayah count.
	// Returns ErrSurahNotFound for an unknown surah.
	GetVerseCount(ctx context.Context, surahID int) (int, error)

	// CountVersesInRange counts canonical ayahs numbered within [start, end].
	CountVersesInRange(ctx context.Context, surahID, start, end int) (int, error)
}
