package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/akmmubashir/quran-backend/internal/domains/quran"
)

// Canonical tables carry quoted camelCase identifiers; every query below
// quotes them explicitly.
const (
	surahCols = `"surahId", "nameArabic", "nameComplex", "nameEnglish", "revelationPlace", "revelationOrder", "ayahCount", "bismillahPre"`
	ayahCols  = `a.id, s."surahId", a."ayahNumber", a."ayahKey", a."textUthmani", a."textImlaei", a."pageNumber", a."juzNumber", a."hizbNumber", a."rubElHizbNumber"`
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) model.Repository {
	return &postgresRepository{pool: pool}
}

func scanSurah(row pgx.Row) (model.Surah, error) {
	var s model.Surah
	err := row.Scan(&s.ID, &s.SurahID, &s.NameArabic, &s.NameComplex, &s.NameEnglish,
		&s.RevelationPlace, &s.RevelationOrder, &s.AyahCount, &s.BismillahPre)
	return s, err
}

func scanAyah(row pgx.Row) (model.Ayah, error) {
	var a model.Ayah
	err := row.Scan(&a.ID, &a.SurahNumber, &a.AyahNumber, &a.AyahKey,
		&a.TextUthmani, &a.TextImlaei, &a.PageNumber, &a.JuzNumber,
		&a.HizbNumber, &a.RubNumber)
	return a, err
}

func collectAyahs(rows pgx.Rows) ([]model.Ayah, error) {
	defer rows.Close()
	ayahs := make([]model.Ayah, 0)
	for rows.Next() {
		a, err := scanAyah(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ayah: %w", err)
		}
		ayahs = append(ayahs, a)
	}
	return ayahs, rows.Err()
}

func (r *postgresRepository) ListSurahs(ctx context.Context) ([]model.Surah, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM "Surah" ORDER BY "surahId"`, surahCols)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query surahs: %w", err)
	}
	defer rows.Close()

	surahs := make([]model.Surah, 0, 114)
	for rows.Next() {
		s, err := scanSurah(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan surah: %w", err)
		}
		surahs = append(surahs, s)
	}
	return surahs, rows.Err()
}

func (r *postgresRepository) GetSurah(ctx context.Context, number int) (*model.Surah, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM "Surah" WHERE "surahId" = $1`, surahCols)
	s, err := scanSurah(r.pool.QueryRow(ctx, query, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query surah: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) ListAyahs(ctx context.Context, surahNumber, page, perPage int) ([]model.Ayah, int, error) {
	surah, err := r.GetSurah(ctx, surahNumber)
	if err != nil {
		return nil, 0, err
	}
	if surah == nil {
		return nil, 0, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM "Ayah" a
		 JOIN "Surah" s ON s.id = a."surahId"
		 WHERE s."surahId" = $1
		 ORDER BY a."ayahNumber"
		 LIMIT $2 OFFSET $3`,
		ayahCols,
	)
	rows, err := r.pool.Query(ctx, query, surahNumber, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ayahs: %w", err)
	}
	ayahs, err := collectAyahs(rows)
	if err != nil {
		return nil, 0, err
	}
	return ayahs, surah.AyahCount, nil
}

// listByDivision serves the mushaf division reads that share one shape:
// filter on a single "Ayah" column, order by chapter then ayah number.
func (r *postgresRepository) listByDivision(ctx context.Context, column string, number int) ([]model.Ayah, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Ayah" a
		 JOIN "Surah" s ON s.id = a."surahId"
		 WHERE a.%q = $1
		 ORDER BY s."surahId", a."ayahNumber"`,
		ayahCols, column,
	)
	rows, err := r.pool.Query(ctx, query, number)
	if err != nil {
		return nil, fmt.Errorf("failed to query ayahs by %s: %w", column, err)
	}
	return collectAyahs(rows)
}

func (r *postgresRepository) ListAyahsByPage(ctx context.Context, pageNumber int) ([]model.Ayah, error) {
	return r.listByDivision(ctx, "pageNumber", pageNumber)
}

func (r *postgresRepository) ListAyahsByJuz(ctx context.Context, juzNumber, page, perPage int) ([]model.Ayah, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM "Ayah" WHERE "juzNumber" = $1`, juzNumber,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ayahs in juz: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM "Ayah" a
		 JOIN "Surah" s ON s.id = a."surahId"
		 WHERE a."juzNumber" = $1
		 ORDER BY s."surahId", a."ayahNumber"
		 LIMIT $2 OFFSET $3`,
		ayahCols,
	)
	rows, err := r.pool.Query(ctx, query, juzNumber, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ayahs by juz: %w", err)
	}
	ayahs, err := collectAyahs(rows)
	if err != nil {
		return nil, 0, err
	}
	return ayahs, total, nil
}

func (r *postgresRepository) ListAyahsByHizb(ctx context.Context, hizbNumber int) ([]model.Ayah, error) {
	return r.listByDivision(ctx, "hizbNumber", hizbNumber)
}

func (r *postgresRepository) ListAyahsByRub(ctx context.Context, rubNumber int) ([]model.Ayah, error) {
	return r.listByDivision(ctx, "rubElHizbNumber", rubNumber)
}

func (r *postgresRepository) GetRandomAyah(ctx context.Context) (*model.Ayah, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Ayah" a
		 JOIN "Surah" s ON s.id = a."surahId"
		 ORDER BY random()
		 LIMIT 1`,
		ayahCols,
	)
	a, err := scanAyah(r.pool.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query random ayah: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) GetAyah(ctx context.Context, surahNumber, ayahNumber int) (*model.Ayah, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Ayah" a
		 JOIN "Surah" s ON s.id = a."surahId"
		 WHERE s."surahId" = $1 AND a."ayahNumber" = $2`,
		ayahCols,
	)
	a, err := scanAyah(r.pool.QueryRow(ctx, query, surahNumber, ayahNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ayah: %w", err)
	}
	return &a, nil
}
