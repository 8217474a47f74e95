package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
)

func newTestService(t *testing.T) (model.Service, *fakeRepo, *fakeCache) {
	t.Helper()
	repo := newFakeRepo()
	canonical := &fakeCanonical{surahs: denseSurahs(map[int]int{1: 7, 2: 286})}
	c := newFakeCache()
	svc := NewAyahContentService(repo, canonical, c, time.Minute)
	return svc, repo, c
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateOrReuseGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a group with content", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{
			SurahID:   1,
			StartAyah: 1,
			EndAyah:   7,
			Infos:     []model.InfoInput{{LanguageID: 1, InfoText: "opening chapter"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, created.SurahID)
		assert.True(t, created.IsGrouped, "multi-ayah range defaults to grouped")
		assert.Equal(t, model.StatusPublished, created.Status)
		require.Len(t, created.Infos, 1)
		assert.Equal(t, created.ID, created.Infos[0].AyahGroupID)
	})

	t.Run("is idempotent for the same range", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		first, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{
			SurahID: 1, StartAyah: 2, EndAyah: 4,
			Infos: []model.InfoInput{{LanguageID: 1, InfoText: "original"}},
		})
		require.NoError(t, err)

		second, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{
			SurahID: 1, StartAyah: 2, EndAyah: 4,
			Infos: []model.InfoInput{{LanguageID: 1, InfoText: "should be ignored"}},
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		require.Len(t, second.Infos, 1)
		assert.Equal(t, "original", second.Infos[0].InfoText, "reuse must not overwrite existing content")
	})

	t.Run("single-ayah range defaults to ungrouped", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{SurahID: 1, StartAyah: 3, EndAyah: 3})
		require.NoError(t, err)
		assert.False(t, created.IsGrouped)
	})

	t.Run("explicit isGrouped wins over the default", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{
			SurahID: 1, StartAyah: 3, EndAyah: 3, IsGrouped: boolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, created.IsGrouped)
	})

	t.Run("rejects inverted ranges before touching stores", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{SurahID: 1, StartAyah: 5, EndAyah: 2})
		assert.ErrorIs(t, err, model.ErrInvalidRange)
	})

	t.Run("rejects unknown surahs", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{SurahID: 115, StartAyah: 1, EndAyah: 1})
		assert.ErrorIs(t, err, model.ErrSurahNotFound)
	})

	t.Run("rejects ranges past the end of the surah", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{SurahID: 1, StartAyah: 5, EndAyah: 9})
		assert.ErrorIs(t, err, model.ErrRangeExceedsSurah)
	})

	t.Run("rejects ranges crossing a hole in the verse table", func(t *testing.T) {
		// Surah row declares 10 ayahs but ayah 8 never made it into the
		// verse table, so any range spanning it is not fully backed.
		canonical := &fakeCanonical{surahs: map[int]fakeSurah{
			9: {ayahCount: 10, missing: map[int]bool{8: true}},
		}}
		svc := NewAyahContentService(newFakeRepo(), canonical, newFakeCache(), time.Minute)

		_, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{SurahID: 9, StartAyah: 5, EndAyah: 10})
		assert.ErrorIs(t, err, model.ErrRangeIncomplete)

		_, err = svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{SurahID: 9, StartAyah: 5, EndAyah: 7})
		assert.NoError(t, err, "ranges below the hole are fully backed")
	})
}

func TestUpsertGroupByRange(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when absent and reports isNew", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		result, err := svc.UpsertGroupByRange(ctx, model.UpsertGroupRequest{
			SurahID: 1, StartAyah: 1, EndAyah: 3,
		})
		require.NoError(t, err)
		assert.True(t, result.IsNew)
	})

	t.Run("patches status on an existing group", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		first, err := svc.UpsertGroupByRange(ctx, model.UpsertGroupRequest{SurahID: 1, StartAyah: 1, EndAyah: 3})
		require.NoError(t, err)

		second, err := svc.UpsertGroupByRange(ctx, model.UpsertGroupRequest{
			SurahID: 1, StartAyah: 1, EndAyah: 3, Status: strPtr(model.StatusDraft),
		})
		require.NoError(t, err)
		assert.False(t, second.IsNew)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, model.StatusDraft, second.Status)
	})

	t.Run("omitted list leaves content untouched, empty list clears it", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.UpsertGroupByRange(ctx, model.UpsertGroupRequest{
			SurahID: 1, StartAyah: 1, EndAyah: 3,
			Infos:        &[]model.InfoInput{{LanguageID: 1, InfoText: "note"}},
			Translations: &[]model.TranslationInput{{LanguageID: 1, TranslationText: "text", Translator: "sahih"}},
		})
		require.NoError(t, err)

		// Infos omitted entirely: must survive. Translations explicitly
		// empty: must be cleared.
		result, err := svc.UpsertGroupByRange(ctx, model.UpsertGroupRequest{
			SurahID: 1, StartAyah: 1, EndAyah: 3,
			Translations: &[]model.TranslationInput{},
		})
		require.NoError(t, err)
		assert.Len(t, result.Infos, 1)
		assert.Empty(t, result.Translations)
	})

	t.Run("no-op upsert returns the group unchanged", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		first, err := svc.UpsertGroupByRange(ctx, model.UpsertGroupRequest{SurahID: 1, StartAyah: 2, EndAyah: 5})
		require.NoError(t, err)

		second, err := svc.UpsertGroupByRange(ctx, model.UpsertGroupRequest{SurahID: 1, StartAyah: 2, EndAyah: 5})
		require.NoError(t, err)
		assert.False(t, second.IsNew)
		assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	})
}

func TestGetGroupByID(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	created, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{SurahID: 1, StartAyah: 1, EndAyah: 2})
	require.NoError(t, err)

	found, err := svc.GetGroupByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetGroupByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrGroupNotFound)
}

func TestDeleteGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the group and its content", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		created, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{
			SurahID: 1, StartAyah: 1, EndAyah: 7,
			Infos: []model.InfoInput{{LanguageID: 1, InfoText: "note"}},
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteGroup(ctx, created.ID))
		assert.Empty(t, repo.groups)

		err = svc.DeleteGroup(ctx, created.ID)
		assert.ErrorIs(t, err, model.ErrGroupNotFound)
	})
}

func TestUpsertAyahInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an implicit single-ayah group on first write", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		result, err := svc.UpsertAyahInfo(ctx, model.UpsertInfoRequest{
			SurahID: 1, AyahID: 5, LanguageID: 1, InfoText: "first note",
		})
		require.NoError(t, err)
		require.True(t, result.Success)

		group, err := svc.GetGroupByID(ctx, result.GroupID)
		require.NoError(t, err)
		assert.Equal(t, 5, group.StartAyah)
		assert.Equal(t, 5, group.EndAyah)
		assert.False(t, group.IsGrouped, "implicit groups are ungrouped")
		require.Len(t, group.Infos, 1)
		assert.Equal(t, "first note", group.Infos[0].InfoText)
	})

	t.Run("second write for the same language replaces, not duplicates", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		first, err := svc.UpsertAyahInfo(ctx, model.UpsertInfoRequest{
			SurahID: 1, AyahID: 5, LanguageID: 1, InfoText: "v1",
		})
		require.NoError(t, err)

		second, err := svc.UpsertAyahInfo(ctx, model.UpsertInfoRequest{
			SurahID: 1, AyahID: 5, LanguageID: 1, InfoText: "v2",
		})
		require.NoError(t, err)
		assert.Equal(t, first.GroupID, second.GroupID)

		group, err := svc.GetGroupByID(ctx, second.GroupID)
		require.NoError(t, err)
		require.Len(t, group.Infos, 1)
		assert.Equal(t, "v2", group.Infos[0].InfoText)
	})

	t.Run("different language adds a second row", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		result, err := svc.UpsertAyahInfo(ctx, model.UpsertInfoRequest{
			SurahID: 1, AyahID: 5, LanguageID: 1, InfoText: "english",
		})
		require.NoError(t, err)
		_, err = svc.UpsertAyahInfo(ctx, model.UpsertInfoRequest{
			SurahID: 1, AyahID: 5, LanguageID: 2, InfoText: "arabic",
		})
		require.NoError(t, err)

		group, err := svc.GetGroupByID(ctx, result.GroupID)
		require.NoError(t, err)
		assert.Len(t, group.Infos, 2)
	})

	t.Run("targets an explicit group without canonical validation", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{SurahID: 1, StartAyah: 1, EndAyah: 7})
		require.NoError(t, err)

		result, err := svc.UpsertAyahInfo(ctx, model.UpsertInfoRequest{
			AyahGroupID: &created.ID, LanguageID: 1, InfoText: "ranged note",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, result.GroupID)
	})

	t.Run("unknown explicit group id fails", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		id := uuid.New()
		_, err := svc.UpsertAyahInfo(ctx, model.UpsertInfoRequest{
			AyahGroupID: &id, LanguageID: 1, InfoText: "note",
		})
		assert.ErrorIs(t, err, model.ErrGroupNotFound)
	})

	t.Run("lands on the winner when a concurrent creator takes the range", func(t *testing.T) {
		repo := newFakeRepo()
		canonical := &fakeCanonical{surahs: denseSurahs(map[int]int{1: 7})}
		winner, _, err := repo.CreateWithContent(ctx, model.AyahGroup{
			SurahID: 1, StartAyah: 5, EndAyah: 5, Status: model.StatusPublished,
		}, model.ContentSets{Infos: &[]model.AyahInfo{{LanguageID: 1, InfoText: "winner note"}}})
		require.NoError(t, err)

		racing := &racingRepo{fakeRepo: repo, hideRange: 1}
		svc := NewAyahContentService(racing, canonical, newFakeCache(), time.Minute)

		result, err := svc.UpsertAyahInfo(ctx, model.UpsertInfoRequest{
			SurahID: 1, AyahID: 5, LanguageID: 2, InfoText: "late note",
		})
		require.NoError(t, err)
		assert.Equal(t, winner.ID, result.GroupID)

		group, err := svc.GetGroupByID(ctx, winner.ID)
		require.NoError(t, err)
		require.Len(t, group.Infos, 2, "the losing write must land via the keyed upsert")
		texts := []string{group.Infos[0].InfoText, group.Infos[1].InfoText}
		assert.Contains(t, texts, "winner note")
		assert.Contains(t, texts, "late note")
	})
}

func TestUpsertAyahTranslation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	first, err := svc.UpsertAyahTranslation(ctx, model.UpsertTranslationRequest{
		SurahID: 1, AyahID: 2, LanguageID: 1, TranslationText: "v1", Translator: "sahih",
	})
	require.NoError(t, err)

	// Same translator replaces, different translator coexists.
	_, err = svc.UpsertAyahTranslation(ctx, model.UpsertTranslationRequest{
		SurahID: 1, AyahID: 2, LanguageID: 1, TranslationText: "v2", Translator: "sahih",
	})
	require.NoError(t, err)
	_, err = svc.UpsertAyahTranslation(ctx, model.UpsertTranslationRequest{
		SurahID: 1, AyahID: 2, LanguageID: 1, TranslationText: "other", Translator: "pickthall",
	})
	require.NoError(t, err)

	group, err := svc.GetGroupByID(ctx, first.GroupID)
	require.NoError(t, err)
	require.Len(t, group.Translations, 2)
	for _, tr := range group.Translations {
		if tr.Translator == "sahih" {
			assert.Equal(t, "v2", tr.TranslationText)
		}
	}
}

func TestUpsertAyahTafsir(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	first, err := svc.UpsertAyahTafsir(ctx, model.UpsertTafsirRequest{
		SurahID: 1, AyahID: 2, LanguageID: 1, TafsirText: "v1",
	})
	require.NoError(t, err)

	// nil source matches nil source: this is a replace, not an insert.
	_, err = svc.UpsertAyahTafsir(ctx, model.UpsertTafsirRequest{
		SurahID: 1, AyahID: 2, LanguageID: 1, TafsirText: "v2",
	})
	require.NoError(t, err)

	_, err = svc.UpsertAyahTafsir(ctx, model.UpsertTafsirRequest{
		SurahID: 1, AyahID: 2, LanguageID: 1, TafsirText: "ibn kathir text", Source: strPtr("ibn-kathir"),
	})
	require.NoError(t, err)

	group, err := svc.GetGroupByID(ctx, first.GroupID)
	require.NoError(t, err)
	require.Len(t, group.Tafsirs, 2)
	for _, tf := range group.Tafsirs {
		if tf.Source == nil {
			assert.Equal(t, "v2", tf.TafsirText)
		}
	}
}

func TestCombinedUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds a new implicit group with all supplied types", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		result, err := svc.CombinedUpsert(ctx, model.CombinedUpsertRequest{
			SurahID: 1, AyahID: 4,
			Infos:        &[]model.InfoInput{{LanguageID: 1, InfoText: "note"}},
			Translations: &[]model.TranslationInput{{LanguageID: 1, TranslationText: "text", Translator: "sahih"}},
		})
		require.NoError(t, err)

		group, err := svc.GetGroupByID(ctx, result.GroupID)
		require.NoError(t, err)
		assert.Len(t, group.Infos, 1)
		assert.Len(t, group.Translations, 1)
		assert.Empty(t, group.Tafsirs)
	})

	t.Run("replaces only the supplied types on an existing group", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		created, err := svc.CreateOrReuseGroup(ctx, model.CreateGroupRequest{
			SurahID: 1, StartAyah: 4, EndAyah: 4,
			Infos:        []model.InfoInput{{LanguageID: 1, InfoText: "keep me"}},
			Translations: []model.TranslationInput{{LanguageID: 1, TranslationText: "old", Translator: "sahih"}},
		})
		require.NoError(t, err)

		_, err = svc.CombinedUpsert(ctx, model.CombinedUpsertRequest{
			SurahID: 1, AyahID: 4,
			Translations: &[]model.TranslationInput{{LanguageID: 1, TranslationText: "new", Translator: "sahih"}},
		})
		require.NoError(t, err)

		group, err := svc.GetGroupByID(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, group.Infos, 1)
		assert.Equal(t, "keep me", group.Infos[0].InfoText)
		require.Len(t, group.Translations, 1)
		assert.Equal(t, "new", group.Translations[0].TranslationText)
	})
}
