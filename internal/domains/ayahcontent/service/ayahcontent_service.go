package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
	"github.com/akmmubashir/quran-backend/pkg/cache"
	"github.com/akmmubashir/quran-backend/pkg/logger"
)

type ayahContentService struct {
	repo       model.Repository
	canonical  model.CanonicalReader
	cache      cache.Cache
	resolveTTL time.Duration
}

func NewAyahContentService(repo model.Repository, canonical model.CanonicalReader, c cache.Cache, resolveTTL time.Duration) model.Service {
	return &ayahContentService{
		repo:       repo,
		canonical:  canonical,
		cache:      c,
		resolveTTL: resolveTTL,
	}
}

// ========================================
// RANGE VALIDATION
// ========================================

// validateRange is the pure structural check, run before touching any store.
func validateRange(startAyah, endAyah int) error {
	if startAyah < 1 {
		return fmt.Errorf("%w: startAyah must be >= 1, got %d", model.ErrInvalidRange, startAyah)
	}
	if endAyah < startAyah {
		return fmt.Errorf("%w: endAyah %d precedes startAyah %d", model.ErrInvalidRange, endAyah, startAyah)
	}
	return nil
}

// validateCoverage checks the range against the canonical text: the surah
// must exist, the range must fit inside it, and every ayah in the range must
// be present.
func (s *ayahContentService) validateCoverage(ctx context.Context, surahID, startAyah, endAyah int) error {
	verseCount, err := s.canonical.GetVerseCount(ctx, surahID)
	if err != nil {
		return err
	}
	if endAyah > verseCount {
		return fmt.Errorf("%w: surah %d has %d ayahs, range ends at %d",
			model.ErrRangeExceedsSurah, surahID, verseCount, endAyah)
	}

	expected := endAyah - startAyah + 1
	found, err := s.canonical.CountVersesInRange(ctx, surahID, startAyah, endAyah)
	if err != nil {
		return err
	}
	if found != expected {
		return fmt.Errorf("%w: expected %d ayahs in [%d, %d] of surah %d, found %d",
			model.ErrRangeIncomplete, expected, startAyah, endAyah, surahID, found)
	}
	return nil
}

func (s *ayahContentService) validateWriteRange(ctx context.Context, surahID, startAyah, endAyah int) error {
	if err := validateRange(startAyah, endAyah); err != nil {
		return err
	}
	return s.validateCoverage(ctx, surahID, startAyah, endAyah)
}

// ========================================
// GROUP LIFECYCLE
// ========================================

func (s *ayahContentService) CreateOrReuseGroup(ctx context.Context, req model.CreateGroupRequest) (*model.GroupWithContent, error) {
	if err := s.validateWriteRange(ctx, req.SurahID, req.StartAyah, req.EndAyah); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByRange(ctx, req.SurahID, req.StartAyah, req.EndAyah)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	group := model.AyahGroup{
		SurahID:   req.SurahID,
		StartAyah: req.StartAyah,
		EndAyah:   req.EndAyah,
		IsGrouped: derivedIsGrouped(req.IsGrouped, req.StartAyah, req.EndAyah),
		Status:    statusOrDefault(req.Status),
	}

	infos := model.InfosToModels(req.Infos, uuid.Nil)
	translations := model.TranslationsToModels(req.Translations, uuid.Nil)
	tafsirs := model.TafsirsToModels(req.Tafsirs, uuid.Nil)

	created, reused, err := s.repo.CreateWithContent(ctx, group, model.ContentSets{
		Infos:        &infos,
		Translations: &translations,
		Tafsirs:      &tafsirs,
	})
	if err != nil {
		return nil, err
	}
	if reused {
		// Lost the race to a concurrent creator: same reuse semantics as
		// the FindByRange hit above, the winner comes back unchanged.
		return created, nil
	}

	s.invalidateSurah(ctx, req.SurahID)
	logger.Info("ayah group created", map[string]interface{}{
		"group_id": created.ID, "surah_id": req.SurahID,
		"start_ayah": req.StartAyah, "end_ayah": req.EndAyah,
	})
	return created, nil
}

func (s *ayahContentService) UpsertGroupByRange(ctx context.Context, req model.UpsertGroupRequest) (*model.UpsertGroupResult, error) {
	if err := s.validateWriteRange(ctx, req.SurahID, req.StartAyah, req.EndAyah); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByRange(ctx, req.SurahID, req.StartAyah, req.EndAyah)
	if err != nil {
		return nil, err
	}

	sets := model.ContentSets{}
	if req.Infos != nil {
		infos := model.InfosToModels(*req.Infos, uuid.Nil)
		sets.Infos = &infos
	}
	if req.Translations != nil {
		translations := model.TranslationsToModels(*req.Translations, uuid.Nil)
		sets.Translations = &translations
	}
	if req.Tafsirs != nil {
		tafsirs := model.TafsirsToModels(*req.Tafsirs, uuid.Nil)
		sets.Tafsirs = &tafsirs
	}

	if existing == nil {
		status := model.DefaultStatus
		if req.Status != nil {
			status = *req.Status
		}
		group := model.AyahGroup{
			SurahID:   req.SurahID,
			StartAyah: req.StartAyah,
			EndAyah:   req.EndAyah,
			IsGrouped: derivedIsGrouped(req.IsGrouped, req.StartAyah, req.EndAyah),
			Status:    status,
		}
		created, reused, err := s.repo.CreateWithContent(ctx, group, sets)
		if err != nil {
			return nil, err
		}
		if !reused {
			s.invalidateSurah(ctx, req.SurahID)
			return &model.UpsertGroupResult{GroupWithContent: *created, IsNew: true}, nil
		}
		// A concurrent creator won the range; apply the request to the
		// winner through the update path instead of dropping it.
		existing = created
	}

	patch := model.GroupPatch{Status: req.Status, IsGrouped: req.IsGrouped}
	if patch.IsZero() && sets.Infos == nil && sets.Translations == nil && sets.Tafsirs == nil {
		return &model.UpsertGroupResult{GroupWithContent: *existing, IsNew: false}, nil
	}

	updated, err := s.repo.UpdateWithContent(ctx, existing.ID, patch, sets)
	if err != nil {
		return nil, err
	}
	s.invalidateSurah(ctx, req.SurahID)
	return &model.UpsertGroupResult{GroupWithContent: *updated, IsNew: false}, nil
}

func (s *ayahContentService) GetGroupByID(ctx context.Context, id uuid.UUID) (*model.GroupWithContent, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, model.ErrGroupNotFound
	}
	return group, nil
}

func (s *ayahContentService) ListGroupsBySurah(ctx context.Context, surahID int) ([]model.GroupWithContent, error) {
	return s.repo.FindBySurah(ctx, surahID)
}

func (s *ayahContentService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return model.ErrGroupNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSurah(ctx, group.SurahID)
	logger.Info("ayah group deleted", map[string]interface{}{
		"group_id": id, "surah_id": group.SurahID,
	})
	return nil
}

// ========================================
// RESOLUTION
// ========================================

func (s *ayahContentService) ResolveForAyah(ctx context.Context, surahID, ayahNumber int, languageID *int) (*model.GroupWithContent, error) {
	key := resolveCacheKey(surahID, ayahNumber, languageID)
	if s.cache != nil {
		var cached model.GroupWithContent
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("resolve cache read failed", err)
		} else if found {
			return &cached, nil
		}
	}

	candidates, err := s.repo.FindContaining(ctx, surahID, ayahNumber)
	if err != nil {
		return nil, err
	}
	best := pickBest(candidates)
	if best == nil {
		return nil, nil
	}

	infos, translations, tafsirs, err := s.repo.ListContent(ctx, best.ID, languageID)
	if err != nil {
		return nil, err
	}
	resolved := &model.GroupWithContent{
		AyahGroup:    *best,
		Infos:        infos,
		Translations: translations,
		Tafsirs:      tafsirs,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resolved, s.resolveTTL); err != nil {
			logger.Warn("resolve cache write failed", err)
		}
	}
	return resolved, nil
}

// ========================================
// SINGLE-ITEM AND COMBINED UPSERTS
// ========================================

// ensureGroupForRange locates the write target: an explicit group by id, an
// exact single-ayah group, or a freshly created implicit one. When a group is
// created, seed rides the same transaction, so the returned flag tells the
// caller the content write already happened.
func (s *ayahContentService) ensureGroupForRange(ctx context.Context, groupID *uuid.UUID, surahID, ayahNumber int, status string, seed model.ContentSets) (*model.GroupWithContent, bool, error) {
	if groupID != nil {
		group, err := s.repo.FindByID(ctx, *groupID)
		if err != nil {
			return nil, false, err
		}
		if group == nil {
			return nil, false, model.ErrGroupNotFound
		}
		return group, false, nil
	}

	if err := s.validateWriteRange(ctx, surahID, ayahNumber, ayahNumber); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByRange(ctx, surahID, ayahNumber, ayahNumber)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	created, reused, err := s.repo.CreateWithContent(ctx, model.AyahGroup{
		SurahID:   surahID,
		StartAyah: ayahNumber,
		EndAyah:   ayahNumber,
		IsGrouped: false,
		Status:    status,
	}, seed)
	if err != nil {
		return nil, false, err
	}
	// When a concurrent creator won the range the seed was rolled back
	// with the losing insert, so report the group as unseeded and let the
	// caller fall through to the keyed upsert.
	return created, !reused, nil
}

func (s *ayahContentService) UpsertAyahInfo(ctx context.Context, req model.UpsertInfoRequest) (*model.MutationResult, error) {
	row := model.AyahInfo{
		LanguageID: req.LanguageID,
		InfoText:   req.InfoText,
		Status:     statusOrDefault(req.Status),
	}
	seed := model.ContentSets{Infos: &[]model.AyahInfo{row}}

	group, seeded, err := s.ensureGroupForRange(ctx, req.AyahGroupID, req.SurahID, req.AyahID, statusOrDefault(req.Status), seed)
	if err != nil {
		return nil, err
	}
	if !seeded {
		row.AyahGroupID = group.ID
		if err := s.repo.UpsertInfo(ctx, row); err != nil {
			return nil, err
		}
	}

	s.invalidateSurah(ctx, group.SurahID)
	return &model.MutationResult{Success: true, GroupID: group.ID, Message: "ayah info saved"}, nil
}

func (s *ayahContentService) UpsertAyahTranslation(ctx context.Context, req model.UpsertTranslationRequest) (*model.MutationResult, error) {
	row := model.AyahTranslation{
		LanguageID:      req.LanguageID,
		TranslationText: req.TranslationText,
		Translator:      req.Translator,
		Status:          statusOrDefault(req.Status),
	}
	seed := model.ContentSets{Translations: &[]model.AyahTranslation{row}}

	group, seeded, err := s.ensureGroupForRange(ctx, req.AyahGroupID, req.SurahID, req.AyahID, statusOrDefault(req.Status), seed)
	if err != nil {
		return nil, err
	}
	if !seeded {
		row.AyahGroupID = group.ID
		if err := s.repo.UpsertTranslation(ctx, row); err != nil {
			return nil, err
		}
	}

	s.invalidateSurah(ctx, group.SurahID)
	return &model.MutationResult{Success: true, GroupID: group.ID, Message: "ayah translation saved"}, nil
}

func (s *ayahContentService) UpsertAyahTafsir(ctx context.Context, req model.UpsertTafsirRequest) (*model.MutationResult, error) {
	row := model.AyahTafsir{
		LanguageID: req.LanguageID,
		TafsirText: req.TafsirText,
		Scholar:    req.Scholar,
		Source:     req.Source,
		Status:     statusOrDefault(req.Status),
	}
	seed := model.ContentSets{Tafsirs: &[]model.AyahTafsir{row}}

	group, seeded, err := s.ensureGroupForRange(ctx, req.AyahGroupID, req.SurahID, req.AyahID, statusOrDefault(req.Status), seed)
	if err != nil {
		return nil, err
	}
	if !seeded {
		row.AyahGroupID = group.ID
		if err := s.repo.UpsertTafsir(ctx, row); err != nil {
			return nil, err
		}
	}

	s.invalidateSurah(ctx, group.SurahID)
	return &model.MutationResult{Success: true, GroupID: group.ID, Message: "ayah tafsir saved"}, nil
}

func (s *ayahContentService) CombinedUpsert(ctx context.Context, req model.CombinedUpsertRequest) (*model.MutationResult, error) {
	sets := model.ContentSets{}
	if req.Infos != nil {
		infos := model.InfosToModels(*req.Infos, uuid.Nil)
		sets.Infos = &infos
	}
	if req.Translations != nil {
		translations := model.TranslationsToModels(*req.Translations, uuid.Nil)
		sets.Translations = &translations
	}
	if req.Tafsirs != nil {
		tafsirs := model.TafsirsToModels(*req.Tafsirs, uuid.Nil)
		sets.Tafsirs = &tafsirs
	}

	group, seeded, err := s.ensureGroupForRange(ctx, req.AyahGroupID, req.SurahID, req.AyahID, statusOrDefault(req.Status), sets)
	if err != nil {
		return nil, err
	}

	if !seeded && (sets.Infos != nil || sets.Translations != nil || sets.Tafsirs != nil) {
		if _, err := s.repo.UpdateWithContent(ctx, group.ID, model.GroupPatch{}, sets); err != nil {
			return nil, err
		}
	}

	s.invalidateSurah(ctx, group.SurahID)
	return &model.MutationResult{Success: true, GroupID: group.ID, Message: "ayah content saved"}, nil
}

// ========================================
// HELPERS
// ========================================

func derivedIsGrouped(explicit *bool, startAyah, endAyah int) bool {
	if explicit != nil {
		return *explicit
	}
	return startAyah != endAyah
}

func statusOrDefault(status string) string {
	if status == "" {
		return model.DefaultStatus
	}
	return status
}

func resolveCacheKey(surahID, ayahNumber int, languageID *int) string {
	lang := "all"
	if languageID != nil {
		lang = fmt.Sprintf("%d", *languageID)
	}
	return fmt.Sprintf("ayahcontent:resolve:%d:%d:%s", surahID, ayahNumber, lang)
}

// invalidateSurah drops cached resolutions for a surah after any mutation.
// Cache failures are logged and ignored; the store stays authoritative.
func (s *ayahContentService) invalidateSurah(ctx context.Context, surahID int) {
	if s.cache == nil {
		return
	}
	pattern := fmt.Sprintf("ayahcontent:resolve:%d:*", surahID)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		logger.Warn("resolve cache invalidation failed", err)
	}
}
