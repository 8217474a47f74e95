package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
)

// canonicalReader answers coverage questions against the canonical text
// tables. Those tables are quoted camelCase identifiers, populated by the
// corpus importer, and are read-only from this service's point of view.
type canonicalReader struct {
	pool *pgxpool.Pool
}

func NewCanonicalReader(pool *pgxpool.Pool) model.CanonicalReader {
	return &canonicalReader{pool: pool}
}

func (r *canonicalReader) GetVerseCount(ctx context.Context, surahID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT "ayahCount" FROM "Surah" WHERE "surahId" = $1`,
		surahID,
	).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, model.ErrSurahNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query surah verse count: %w", err)
	}
	return count, nil
}

func (r *canonicalReader) CountVersesInRange(ctx context.Context, surahID, start, end int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM "Ayah"
		 WHERE "surahId" = (SELECT id FROM "Surah" WHERE "surahId" = $1)
		   AND "ayahNumber" BETWEEN $2 AND $3`,
		surahID, start, end,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count verses in range: %w", err)
	}
	return count, nil
}
