package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same table
// helpers work inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// contentTable is the shared child-table abstraction for the three content
// kinds. They have identical CRUD shape but different natural keys, so the
// per-kind differences are reduced to column lists and bind/scan functions —
// one place to fix instead of three.
type contentTable[T any] struct {
	name        string   // table name
	insertCols  []string // columns written on insert, ayah_group_id first
	conflictKey []string // natural key columns for the keyed upsert
	selectCols  []string // columns read back, matching scan

	// values returns the insert values in insertCols order.
	values func(T) []any
	// scan reads one row in selectCols order.
	scan func(pgx.Rows) (T, error)
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

func (t *contentTable[T]) insertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t.name,
		strings.Join(t.insertCols, ", "),
		placeholders(len(t.insertCols)),
	)
}

// upsertSQL is the keyed upsert: insert on a fresh natural key, field-level
// update otherwise. The unique indexes are declared NULLS NOT DISTINCT so a
// NULL in the key (tafsir source) still conflicts.
func (t *contentTable[T]) upsertSQL() string {
	keySet := make(map[string]struct{}, len(t.conflictKey))
	for _, c := range t.conflictKey {
		keySet[c] = struct{}{}
	}

	updates := make([]string, 0, len(t.insertCols))
	for _, c := range t.insertCols {
		if c == "ayah_group_id" {
			continue
		}
		if _, isKey := keySet[c]; isKey {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	updates = append(updates, "updated_at = now()")

	return fmt.Sprintf(
		"%s ON CONFLICT (%s) DO UPDATE SET %s",
		t.insertSQL(),
		strings.Join(t.conflictKey, ", "),
		strings.Join(updates, ", "),
	)
}

// upsertOne inserts or field-updates exactly one row by natural key.
func (t *contentTable[T]) upsertOne(ctx context.Context, q querier, item T) error {
	if _, err := q.Exec(ctx, t.upsertSQL(), t.values(item)...); err != nil {
		return fmt.Errorf("failed to upsert %s row: %w", t.name, err)
	}
	return nil
}

// replaceAll deletes every row of the group and inserts the given set.
// Callers must run this inside a transaction together with the group patch.
func (t *contentTable[T]) replaceAll(ctx context.Context, q querier, groupID uuid.UUID, items []T) error {
	if _, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE ayah_group_id = $1", t.name), groupID); err != nil {
		return fmt.Errorf("failed to clear %s rows: %w", t.name, err)
	}
	return t.insertAll(ctx, q, items)
}

func (t *contentTable[T]) insertAll(ctx context.Context, q querier, items []T) error {
	for _, item := range items {
		if _, err := q.Exec(ctx, t.insertSQL(), t.values(item)...); err != nil {
			return fmt.Errorf("failed to insert %s row: %w", t.name, err)
		}
	}
	return nil
}

// listForGroup returns the group's rows, optionally filtered to one language,
// ordered by id for stable responses.
func (t *contentTable[T]) listForGroup(ctx context.Context, q querier, groupID uuid.UUID, languageID *int) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE ayah_group_id = $1", strings.Join(t.selectCols, ", "), t.name)
	args := []any{groupID}
	if languageID != nil {
		query += " AND language_id = $2"
		args = append(args, *languageID)
	}
	query += " ORDER BY id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s rows: %w", t.name, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", t.name, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ========================================
// TABLE INSTANCES
// ========================================

func infoTable() *contentTable[model.AyahInfo] {
	return &contentTable[model.AyahInfo]{
		name:        "ayah_info",
		insertCols:  []string{"ayah_group_id", "language_id", "info_text", "status"},
		conflictKey: []string{"ayah_group_id", "language_id"},
		selectCols:  []string{"id", "ayah_group_id", "language_id", "info_text", "status", "created_at", "updated_at"},
		values: func(i model.AyahInfo) []any {
			return []any{i.AyahGroupID, i.LanguageID, i.InfoText, i.Status}
		},
		scan: func(rows pgx.Rows) (model.AyahInfo, error) {
			var i model.AyahInfo
			err := rows.Scan(&i.ID, &i.AyahGroupID, &i.LanguageID, &i.InfoText, &i.Status, &i.CreatedAt, &i.UpdatedAt)
			return i, err
		},
	}
}

func translationTable() *contentTable[model.AyahTranslation] {
	return &contentTable[model.AyahTranslation]{
		name:        "ayah_translation",
		insertCols:  []string{"ayah_group_id", "language_id", "translation_text", "translator", "status"},
		conflictKey: []string{"ayah_group_id", "language_id", "translator"},
		selectCols:  []string{"id", "ayah_group_id", "language_id", "translation_text", "translator", "status", "created_at", "updated_at"},
		values: func(t model.AyahTranslation) []any {
			return []any{t.AyahGroupID, t.LanguageID, t.TranslationText, t.Translator, t.Status}
		},
		scan: func(rows pgx.Rows) (model.AyahTranslation, error) {
			var t model.AyahTranslation
			err := rows.Scan(&t.ID, &t.AyahGroupID, &t.LanguageID, &t.TranslationText, &t.Translator, &t.Status, &t.CreatedAt, &t.UpdatedAt)
			return t, err
		},
	}
}

func tafsirTable() *contentTable[model.AyahTafsir] {
	return &contentTable[model.AyahTafsir]{
		name:        "ayah_tafsir",
		insertCols:  []string{"ayah_group_id", "language_id", "tafsir_text", "scholar", "source", "status"},
		conflictKey: []string{"ayah_group_id", "language_id", "source"},
		selectCols:  []string{"id", "ayah_group_id", "language_id", "tafsir_text", "scholar", "source", "status", "created_at", "updated_at"},
		values: func(t model.AyahTafsir) []any {
			return []any{t.AyahGroupID, t.LanguageID, t.TafsirText, t.Scholar, t.Source, t.Status}
		},
		scan: func(rows pgx.Rows) (model.AyahTafsir, error) {
			var t model.AyahTafsir
			err := rows.Scan(&t.ID, &t.AyahGroupID, &t.LanguageID, &t.TafsirText, &t.Scholar, &t.Source, &t.Status, &t.CreatedAt, &t.UpdatedAt)
			return t, err
		},
	}
}
