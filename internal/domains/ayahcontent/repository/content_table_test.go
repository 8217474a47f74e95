package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
)

func sampleInfo() model.AyahInfo {
	return model.AyahInfo{AyahGroupID: uuid.New(), LanguageID: 1, InfoText: "note", Status: model.StatusPublished}
}

func sampleTranslation() model.AyahTranslation {
	return model.AyahTranslation{AyahGroupID: uuid.New(), LanguageID: 1, TranslationText: "text", Translator: "sahih", Status: model.StatusPublished}
}

func sampleTafsir() model.AyahTafsir {
	return model.AyahTafsir{AyahGroupID: uuid.New(), LanguageID: 1, TafsirText: "commentary", Status: model.StatusPublished}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1", placeholders(1))
	assert.Equal(t, "$1, $2, $3", placeholders(3))
}

func TestInfoTableSQL(t *testing.T) {
	table := infoTable()

	assert.Equal(t,
		"INSERT INTO ayah_info (ayah_group_id, language_id, info_text, status) VALUES ($1, $2, $3, $4)",
		table.insertSQL(),
	)

	assert.Equal(t,
		"INSERT INTO ayah_info (ayah_group_id, language_id, info_text, status) VALUES ($1, $2, $3, $4)"+
			" ON CONFLICT (ayah_group_id, language_id) DO UPDATE SET"+
			" info_text = EXCLUDED.info_text, status = EXCLUDED.status, updated_at = now()",
		table.upsertSQL(),
	)
}

func TestTranslationTableSQL(t *testing.T) {
	table := translationTable()

	// translator is part of the key and must not appear in the update list.
	sql := table.upsertSQL()
	assert.Contains(t, sql, "ON CONFLICT (ayah_group_id, language_id, translator)")
	assert.Contains(t, sql, "translation_text = EXCLUDED.translation_text")
	assert.NotContains(t, sql, "translator = EXCLUDED.translator")
}

func TestTafsirTableSQL(t *testing.T) {
	table := tafsirTable()

	// source is in the key, scholar is payload.
	sql := table.upsertSQL()
	assert.Contains(t, sql, "ON CONFLICT (ayah_group_id, language_id, source)")
	assert.Contains(t, sql, "scholar = EXCLUDED.scholar")
	assert.NotContains(t, sql, "source = EXCLUDED.source")
}

func TestTableShapesAgree(t *testing.T) {
	// values must bind exactly the insert columns, and the conflict key must
	// be a subset of them.
	info := infoTable()
	translation := translationTable()
	tafsir := tafsirTable()

	assert.Len(t, info.values(sampleInfo()), len(info.insertCols))
	assert.Len(t, translation.values(sampleTranslation()), len(translation.insertCols))
	assert.Len(t, tafsir.values(sampleTafsir()), len(tafsir.insertCols))

	for _, cols := range [][2][]string{
		{info.conflictKey, info.insertCols},
		{translation.conflictKey, translation.insertCols},
		{tafsir.conflictKey, tafsir.insertCols},
	} {
		assert.Subset(t, cols[1], cols[0])
	}
}
