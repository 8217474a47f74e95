package quran

import "context"

// Repository reads the canonical text tables. The tables are populated by an
// external importer and never written from this service.
type Repository interface {
	// ListSurahs returns all chapters ordered by canonical number.
	ListSurahs(ctx context.Context) ([]Surah, error)

	// GetSurah looks a chapter up by canonical number.
	// Returns (nil, nil) when absent.
	GetSurah(ctx context.Context, number int) (*Surah, error)

	// ListAyahs returns one page of a chapter's verses ordered by ayah
	// number, plus the chapter's total verse count.
	ListAyahs(ctx context.Context, surahNumber, page, perPage int) ([]Ayah, int, error)

	// GetAyah looks a single verse up. Returns (nil, nil) when absent.
	GetAyah(ctx context.Context, surahNumber, ayahNumber int) (*Ayah, error)

	// ListAyahsByPage returns every verse on one mushaf page, ordered by
	// chapter then ayah number. A page holds around fifteen verses, so
	// the read is unpaginated.
	ListAyahsByPage(ctx context.Context, pageNumber int) ([]Ayah, error)

	// ListAyahsByJuz returns one page of a juz's verses plus the juz's
	// total verse count. A juz spans hundreds of verses.
	ListAyahsByJuz(ctx context.Context, juzNumber, page, perPage int) ([]Ayah, int, error)

	// ListAyahsByHizb returns every verse of one hizb.
	ListAyahsByHizb(ctx context.Context, hizbNumber int) ([]Ayah, error)

	// ListAyahsByRub returns every verse of one rub el hizb.
	ListAyahsByRub(ctx context.Context, rubNumber int) ([]Ayah, error)

	// GetRandomAyah returns one uniformly chosen verse.
	// Returns (nil, nil) when the verse table is empty.
	GetRandomAyah(ctx context.Context) (*Ayah, error)
}
