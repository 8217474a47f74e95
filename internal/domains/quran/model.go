package quran

import (
	ayahcontent "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
)

// Surah is one chapter of the canonical text. SurahID is the canonical
// chapter number (1..114); ID is the internal primary key the ayah rows
// reference.
type Surah struct {
	ID              int     `json:"-"`
	SurahID         int     `json:"surahId"`
	NameArabic      string  `json:"nameArabic"`
	NameComplex     *string `json:"nameComplex,omitempty"`
	NameEnglish     *string `json:"nameEnglish,omitempty"`
	RevelationPlace *string `json:"revelationPlace,omitempty"`
	RevelationOrder *int    `json:"revelationOrder,omitempty"`
	AyahCount       int     `json:"ayahCount"`
	BismillahPre    bool    `json:"bismillahPre"`
}

// Ayah is one verse. AyahKey is the "surah:ayah" form used across quran
// tooling, e.g. "2:255".
type Ayah struct {
	ID          int64   `json:"-"`
	SurahNumber int     `json:"surahId"`
	AyahNumber  int     `json:"ayahNumber"`
	AyahKey     string  `json:"ayahKey"`
	TextUthmani *string `json:"textUthmani,omitempty"`
	TextImlaei  *string `json:"textImlaei,omitempty"`
	PageNumber  *int    `json:"pageNumber,omitempty"`
	JuzNumber   *int    `json:"juzNumber,omitempty"`
	HizbNumber  *int    `json:"hizbNumber,omitempty"`
	RubNumber   *int    `json:"rubElHizbNumber,omitempty"`
}

// Mushaf division bounds. Division numbers outside these ranges do not
// exist in the canonical text.
const (
	MaxPageNumber = 604
	MaxJuzNumber  = 30
	MaxHizbNumber = 60
	MaxRubNumber  = 240
)

// AyahDetail is a verse plus the annotation content resolved for it.
// Content is nil when no published group covers the ayah.
type AyahDetail struct {
	Ayah
	Content *ayahcontent.GroupWithContent `json:"content,omitempty"`
}
