package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
	"github.com/akmmubashir/quran-backend/pkg/database"
)

const groupCols = "id, surah_id, start_ayah, end_ayah, is_grouped, status, created_at, updated_at"

// uniqueViolation is the Postgres error code raised when an insert hits the
// (surah_id, start_ayah, end_ayah) unique constraint.
const uniqueViolation = "23505"

type postgresRepository struct {
	pool         *pgxpool.Pool
	infos        *contentTable[model.AyahInfo]
	translations *contentTable[model.AyahTranslation]
	tafsirs      *contentTable[model.AyahTafsir]
}

func NewPostgresRepository(pool *pgxpool.Pool) model.Repository {
	return &postgresRepository{
		pool:         pool,
		infos:        infoTable(),
		translations: translationTable(),
		tafsirs:      tafsirTable(),
	}
}

func scanGroup(row pgx.Row) (model.AyahGroup, error) {
	var g model.AyahGroup
	err := row.Scan(&g.ID, &g.SurahID, &g.StartAyah, &g.EndAyah, &g.IsGrouped, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// loadContent attaches all three content sets to a group.
func (r *postgresRepository) loadContent(ctx context.Context, q querier, group model.AyahGroup, languageID *int) (*model.GroupWithContent, error) {
	infos, err := r.infos.listForGroup(ctx, q, group.ID, languageID)
	if err != nil {
		return nil, err
	}
	translations, err := r.translations.listForGroup(ctx, q, group.ID, languageID)
	if err != nil {
		return nil, err
	}
	tafsirs, err := r.tafsirs.listForGroup(ctx, q, group.ID, languageID)
	if err != nil {
		return nil, err
	}
	return &model.GroupWithContent{
		AyahGroup:    group,
		Infos:        infos,
		Translations: translations,
		Tafsirs:      tafsirs,
	}, nil
}

func (r *postgresRepository) findGroup(ctx context.Context, q querier, query string, args ...any) (*model.GroupWithContent, error) {
	group, err := scanGroup(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ayah group: %w", err)
	}
	return r.loadContent(ctx, q, group, nil)
}

func (r *postgresRepository) FindByRange(ctx context.Context, surahID, startAyah, endAyah int) (*model.GroupWithContent, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM ayah_groups WHERE surah_id = $1 AND start_ayah = $2 AND end_ayah = $3",
		groupCols,
	)
	return r.findGroup(ctx, r.pool, query, surahID, startAyah, endAyah)
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GroupWithContent, error) {
	query := fmt.Sprintf("SELECT %s FROM ayah_groups WHERE id = $1", groupCols)
	return r.findGroup(ctx, r.pool, query, id)
}

// FindContaining returns bare published groups covering the ayah. Ordering
// beyond recency is the resolver's job, not the store's.
func (r *postgresRepository) FindContaining(ctx context.Context, surahID, ayahNumber int) ([]model.AyahGroup, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM ayah_groups
		 WHERE surah_id = $1 AND start_ayah <= $2 AND end_ayah >= $2 AND status = $3
		 ORDER BY created_at DESC, id`,
		groupCols,
	)
	rows, err := r.pool.Query(ctx, query, surahID, ayahNumber, model.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to query containing groups: %w", err)
	}
	defer rows.Close()

	groups := make([]model.AyahGroup, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ayah group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *postgresRepository) FindBySurah(ctx context.Context, surahID int) ([]model.GroupWithContent, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM ayah_groups WHERE surah_id = $1 ORDER BY start_ayah ASC, end_ayah ASC",
		groupCols,
	)
	rows, err := r.pool.Query(ctx, query, surahID)
	if err != nil {
		return nil, fmt.Errorf("failed to query surah groups: %w", err)
	}

	groups := make([]model.AyahGroup, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan ayah group: %w", err)
		}
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]model.GroupWithContent, 0, len(groups))
	for _, g := range groups {
		gwc, err := r.loadContent(ctx, r.pool, g, nil)
		if err != nil {
			return nil, err
		}
		result = append(result, *gwc)
	}
	return result, nil
}

func (r *postgresRepository) CreateWithContent(ctx context.Context, group model.AyahGroup, sets model.ContentSets) (*model.GroupWithContent, bool, error) {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}

	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.GroupWithContent, error) {
		row := tx.QueryRow(ctx,
			`INSERT INTO ayah_groups (id, surah_id, start_ayah, end_ayah, is_grouped, status)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING `+groupCols,
			group.ID, group.SurahID, group.StartAyah, group.EndAyah, group.IsGrouped, group.Status,
		)
		inserted, err := scanGroup(row)
		if err != nil {
			return nil, fmt.Errorf("failed to insert ayah group: %w", err)
		}

		if err := r.writeSets(ctx, tx, inserted.ID, sets); err != nil {
			return nil, err
		}
		return r.loadContent(ctx, tx, inserted, nil)
	})

	if err != nil {
		// Lost a check-then-create race on the natural key: fall back to
		// re-reading the winner instead of surfacing a conflict. The seed
		// content was rolled back with the insert, so report the reuse and
		// let the caller re-apply it against the winner.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			existing, findErr := r.FindByRange(ctx, group.SurahID, group.StartAyah, group.EndAyah)
			if findErr == nil && existing != nil {
				return existing, true, nil
			}
		}
		return nil, false, err
	}
	return created, false, nil
}

// writeSets inserts the supplied content rows for a freshly created group.
func (r *postgresRepository) writeSets(ctx context.Context, q querier, groupID uuid.UUID, sets model.ContentSets) error {
	if sets.Infos != nil {
		if err := r.infos.insertAll(ctx, q, rekeyInfos(*sets.Infos, groupID)); err != nil {
			return err
		}
	}
	if sets.Translations != nil {
		if err := r.translations.insertAll(ctx, q, rekeyTranslations(*sets.Translations, groupID)); err != nil {
			return err
		}
	}
	if sets.Tafsirs != nil {
		if err := r.tafsirs.insertAll(ctx, q, rekeyTafsirs(*sets.Tafsirs, groupID)); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepository) UpdateWithContent(ctx context.Context, id uuid.UUID, patch model.GroupPatch, sets model.ContentSets) (*model.GroupWithContent, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.GroupWithContent, error) {
		setClauses := []string{"updated_at = now()"}
		args := []any{id}
		idx := 2
		if patch.Status != nil {
			setClauses = append(setClauses, fmt.Sprintf("status = $%d", idx))
			args = append(args, *patch.Status)
			idx++
		}
		if patch.IsGrouped != nil {
			setClauses = append(setClauses, fmt.Sprintf("is_grouped = $%d", idx))
			args = append(args, *patch.IsGrouped)
			idx++
		}

		query := fmt.Sprintf(
			"UPDATE ayah_groups SET %s WHERE id = $1 RETURNING %s",
			strings.Join(setClauses, ", "), groupCols,
		)
		updated, err := scanGroup(tx.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGroupNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update ayah group: %w", err)
		}

		if sets.Infos != nil {
			if err := r.infos.replaceAll(ctx, tx, id, rekeyInfos(*sets.Infos, id)); err != nil {
				return nil, err
			}
		}
		if sets.Translations != nil {
			if err := r.translations.replaceAll(ctx, tx, id, rekeyTranslations(*sets.Translations, id)); err != nil {
				return nil, err
			}
		}
		if sets.Tafsirs != nil {
			if err := r.tafsirs.replaceAll(ctx, tx, id, rekeyTafsirs(*sets.Tafsirs, id)); err != nil {
				return nil, err
			}
		}

		return r.loadContent(ctx, tx, updated, nil)
	})
}

func (r *postgresRepository) UpsertInfo(ctx context.Context, info model.AyahInfo) error {
	return r.infos.upsertOne(ctx, r.pool, info)
}

func (r *postgresRepository) UpsertTranslation(ctx context.Context, translation model.AyahTranslation) error {
	return r.translations.upsertOne(ctx, r.pool, translation)
}

func (r *postgresRepository) UpsertTafsir(ctx context.Context, tafsir model.AyahTafsir) error {
	return r.tafsirs.upsertOne(ctx, r.pool, tafsir)
}

func (r *postgresRepository) ListContent(ctx context.Context, groupID uuid.UUID, languageID *int) ([]model.AyahInfo, []model.AyahTranslation, []model.AyahTafsir, error) {
	infos, err := r.infos.listForGroup(ctx, r.pool, groupID, languageID)
	if err != nil {
		return nil, nil, nil, err
	}
	translations, err := r.translations.listForGroup(ctx, r.pool, groupID, languageID)
	if err != nil {
		return nil, nil, nil, err
	}
	tafsirs, err := r.tafsirs.listForGroup(ctx, r.pool, groupID, languageID)
	if err != nil {
		return nil, nil, nil, err
	}
	return infos, translations, tafsirs, nil
}

// Delete removes the group and its children in one transaction. The child
// deletes are explicit rather than relying on FK cascade alone, so the
// in-memory fake used in tests behaves identically.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, table := range []string{"ayah_info", "ayah_translation", "ayah_tafsir"} {
			if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE ayah_group_id = $1", table), id); err != nil {
				return fmt.Errorf("failed to delete %s rows: %w", table, err)
			}
		}

		tag, err := tx.Exec(ctx, "DELETE FROM ayah_groups WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete ayah group: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrGroupNotFound
		}
		return nil
	})
}

// rekey helpers stamp the owning group id onto rows before writing.

func rekeyInfos(items []model.AyahInfo, groupID uuid.UUID) []model.AyahInfo {
	out := make([]model.AyahInfo, len(items))
	for i, item := range items {
		item.AyahGroupID = groupID
		out[i] = item
	}
	return out
}

func rekeyTranslations(items []model.AyahTranslation, groupID uuid.UUID) []model.AyahTranslation {
	out := make([]model.AyahTranslation, len(items))
	for i, item := range items {
		item.AyahGroupID = groupID
		out[i] = item
	}
	return out
}

func rekeyTafsirs(items []model.AyahTafsir, groupID uuid.UUID) []model.AyahTafsir {
	out := make([]model.AyahTafsir, len(items))
	for i, item := range items {
		item.AyahGroupID = groupID
		out[i] = item
	}
	return out
}
