package ayahcontent

import (
	"context"

	"github.com/google/uuid"
)

// Service is the lifecycle and resolution contract for ayah annotation
// content. Every mutating operation validates the range against the
// canonical text store first and executes as one atomic unit of work.
type Service interface {
	// CreateOrReuseGroup creates a group with its content, or returns the
	// existing group for the same range unchanged. Idempotent.
	CreateOrReuseGroup(ctx context.Context, req CreateGroupRequest) (*GroupWithContent, error)

	// UpsertGroupByRange patches an existing group (whole-set replace for
	// each explicitly supplied content list) or creates it when absent.
	UpsertGroupByRange(ctx context.Context, req UpsertGroupRequest) (*UpsertGroupResult, error)

	// GetGroupByID returns a group with all content.
	// Returns ErrGroupNotFound when absent.
	GetGroupByID(ctx context.Context, id uuid.UUID) (*GroupWithContent, error)

	// ListGroupsBySurah returns all groups of a surah, ordered by range.
	ListGroupsBySurah(ctx context.Context, surahID int) ([]GroupWithContent, error)

	// ResolveForAyah selects the best-matching group for a single ayah:
	// explicit groups beat implicit single-ayah ones, then narrower ranges,
	// then more recently created. Returns (nil, nil) when no published group
	// covers the ayah — callers fall back to bare canonical text.
	ResolveForAyah(ctx context.Context, surahID, ayahNumber int, languageID *int) (*GroupWithContent, error)

	// Single-item keyed upserts. Creates an implicit single-ayah group when
	// no exact group exists for the target ayah.
	UpsertAyahInfo(ctx context.Context, req UpsertInfoRequest) (*MutationResult, error)
	UpsertAyahTranslation(ctx context.Context, req UpsertTranslationRequest) (*MutationResult, error)
	UpsertAyahTafsir(ctx context.Context, req UpsertTafsirRequest) (*MutationResult, error)

	// CombinedUpsert replaces any combination of content types on the
	// resolved group in one transaction.
	CombinedUpsert(ctx context.Context, req CombinedUpsertRequest) (*MutationResult, error)

	// DeleteGroup removes a group and all its content rows.
	// Returns ErrGroupNotFound when absent.
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}
