package service

import (
	"context"

	ayahcontent "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
	model "github.com/akmmubashir/quran-backend/internal/domains/quran"
	"github.com/akmmubashir/quran-backend/pkg/logger"
)

// Service reads the canonical text and decorates single verses with resolved
// annotation content.
type Service interface {
	ListSurahs(ctx context.Context) ([]model.Surah, error)

	// GetSurah returns ErrSurahNotFound when the chapter number is unknown.
	GetSurah(ctx context.Context, number int) (*model.Surah, error)

	// ListAyahs returns one page of verses plus the chapter's total count.
	ListAyahs(ctx context.Context, surahNumber, page, perPage int) ([]model.Ayah, int, error)

	// GetAyahDetail returns a verse with the best-matching published
	// annotation group attached. A resolution failure degrades to the bare
	// verse rather than failing the read.
	GetAyahDetail(ctx context.Context, surahNumber, ayahNumber int, languageID *int) (*model.AyahDetail, error)

	// Mushaf division reads. Each returns ErrPageNotFound, ErrJuzNotFound,
	// ErrHizbNotFound or ErrRubNotFound when the division number is out of
	// range for the canonical text.
	ListAyahsByPage(ctx context.Context, pageNumber int) ([]model.Ayah, error)
	ListAyahsByJuz(ctx context.Context, juzNumber, page, perPage int) ([]model.Ayah, int, error)
	ListAyahsByHizb(ctx context.Context, hizbNumber int) ([]model.Ayah, error)
	ListAyahsByRub(ctx context.Context, rubNumber int) ([]model.Ayah, error)

	// GetRandomAyah returns one uniformly chosen verse.
	GetRandomAyah(ctx context.Context) (*model.Ayah, error)
}

type quranService struct {
	repo     model.Repository
	resolver ayahcontent.Service
}

func NewQuranService(repo model.Repository, resolver ayahcontent.Service) Service {
	return &quranService{repo: repo, resolver: resolver}
}

func (s *quranService) ListSurahs(ctx context.Context) ([]model.Surah, error) {
	return s.repo.ListSurahs(ctx)
}

func (s *quranService) GetSurah(ctx context.Context, number int) (*model.Surah, error) {
	surah, err := s.repo.GetSurah(ctx, number)
	if err != nil {
		return nil, err
	}
	if surah == nil {
		return nil, model.ErrSurahNotFound
	}
	return surah, nil
}

func (s *quranService) ListAyahs(ctx context.Context, surahNumber, page, perPage int) ([]model.Ayah, int, error) {
	if _, err := s.GetSurah(ctx, surahNumber); err != nil {
		return nil, 0, err
	}
	return s.repo.ListAyahs(ctx, surahNumber, page, perPage)
}

func (s *quranService) GetAyahDetail(ctx context.Context, surahNumber, ayahNumber int, languageID *int) (*model.AyahDetail, error) {
	ayah, err := s.repo.GetAyah(ctx, surahNumber, ayahNumber)
	if err != nil {
		return nil, err
	}
	if ayah == nil {
		if _, err := s.GetSurah(ctx, surahNumber); err != nil {
			return nil, err
		}
		return nil, model.ErrAyahNotFound
	}

	detail := &model.AyahDetail{Ayah: *ayah}

	content, err := s.resolver.ResolveForAyah(ctx, surahNumber, ayahNumber, languageID)
	if err != nil {
		logger.Warn("annotation resolution failed, returning bare ayah", err)
		return detail, nil
	}
	detail.Content = content
	return detail, nil
}

func (s *quranService) ListAyahsByPage(ctx context.Context, pageNumber int) ([]model.Ayah, error) {
	if pageNumber < 1 || pageNumber > model.MaxPageNumber {
		return nil, model.ErrPageNotFound
	}
	return s.repo.ListAyahsByPage(ctx, pageNumber)
}

func (s *quranService) ListAyahsByJuz(ctx context.Context, juzNumber, page, perPage int) ([]model.Ayah, int, error) {
	if juzNumber < 1 || juzNumber > model.MaxJuzNumber {
		return nil, 0, model.ErrJuzNotFound
	}
	return s.repo.ListAyahsByJuz(ctx, juzNumber, page, perPage)
}

func (s *quranService) ListAyahsByHizb(ctx context.Context, hizbNumber int) ([]model.Ayah, error) {
	if hizbNumber < 1 || hizbNumber > model.MaxHizbNumber {
		return nil, model.ErrHizbNotFound
	}
	return s.repo.ListAyahsByHizb(ctx, hizbNumber)
}

func (s *quranService) ListAyahsByRub(ctx context.Context, rubNumber int) ([]model.Ayah, error) {
	if rubNumber < 1 || rubNumber > model.MaxRubNumber {
		return nil, model.ErrRubNotFound
	}
	return s.repo.ListAyahsByRub(ctx, rubNumber)
}

func (s *quranService) GetRandomAyah(ctx context.Context) (*model.Ayah, error) {
	ayah, err := s.repo.GetRandomAyah(ctx)
	if err != nil {
		return nil, err
	}
	if ayah == nil {
		return nil, model.ErrAyahNotFound
	}
	return ayah, nil
}
