package ayahcontent

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStatus is applied when a caller does not supply a status.
// Only published groups take part in per-ayah resolution.
const (
	DefaultStatus   = "published"
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// AyahGroup is a contiguous ayah range [StartAyah, EndAyah] within one surah
// that annotation content attaches to. (surah_id, start_ayah, end_ayah) is
// unique; overlap between different groups is allowed.
//
// IsGrouped distinguishes an explicit multi-ayah annotation unit from an
// implicit single-ayah placeholder created on first content write.
type AyahGroup struct {
	ID        uuid.UUID `json:"id"`
	SurahID   int       `json:"surahId"`
	StartAyah int       `json:"startAyah"`
	EndAyah   int       `json:"endAyah"`
	IsGrouped bool      `json:"isGrouped"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Width is the span of the range. Narrower groups are considered more
// specific during resolution.
func (g AyahGroup) Width() int {
	return g.EndAyah - g.StartAyah
}

// Contains reports whether the ayah number falls inside the range.
func (g AyahGroup) Contains(ayahNumber int) bool {
	return g.StartAyah <= ayahNumber && ayahNumber <= g.EndAyah
}

// AyahInfo is an explanatory note. Unique per (ayah_group_id, language_id).
type AyahInfo struct {
	ID          int64     `json:"id"`
	AyahGroupID uuid.UUID `json:"ayahGroupId"`
	LanguageID  int       `json:"languageId"`
	InfoText    string    `json:"infoText"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AyahTranslation is a translation of the range. Unique per
// (ayah_group_id, language_id, translator) so one language can carry
// several translators side by side.
type AyahTranslation struct {
	ID              int64     `json:"id"`
	AyahGroupID     uuid.UUID `json:"ayahGroupId"`
	LanguageID      int       `json:"languageId"`
	TranslationText string    `json:"translationText"`
	Translator      string    `json:"translator"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AyahTafsir is scholarly commentary. Unique per
// (ayah_group_id, language_id, source).
type AyahTafsir struct {
	ID          int64     `json:"id"`
	AyahGroupID uuid.UUID `json:"ayahGroupId"`
	LanguageID  int       `json:"languageId"`
	TafsirText  string    `json:"tafsirText"`
	Scholar     *string   `json:"scholar"`
	Source      *string   `json:"source"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GroupWithContent is a group plus all of its attached content rows.
// This is the shape the API returns.
type GroupWithContent struct {
	AyahGroup
	Infos        []AyahInfo        `json:"infos"`
	Translations []AyahTranslation `json:"translations"`
	Tafsirs      []AyahTafsir      `json:"tafsirs"`
}
