package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
)

// fakeSurah mirrors the canonical tables: ayahCount is the declared count on
// the surah row, missing marks declared verses with no row in the verse table.
type fakeSurah struct {
	ayahCount int
	missing   map[int]bool
}

type fakeCanonical struct {
	surahs map[int]fakeSurah
}

func denseSurahs(counts map[int]int) map[int]fakeSurah {
	out := make(map[int]fakeSurah, len(counts))
	for id, count := range counts {
		out[id] = fakeSurah{ayahCount: count}
	}
	return out
}

func (f *fakeCanonical) GetVerseCount(_ context.Context, surahID int) (int, error) {
	surah, ok := f.surahs[surahID]
	if !ok {
		return 0, model.ErrSurahNotFound
	}
	return surah.ayahCount, nil
}

func (f *fakeCanonical) CountVersesInRange(_ context.Context, surahID, start, end int) (int, error) {
	surah, ok := f.surahs[surahID]
	if !ok {
		return 0, nil
	}
	if end > surah.ayahCount {
		end = surah.ayahCount
	}
	count := 0
	for n := start; n <= end; n++ {
		if !surah.missing[n] {
			count++
		}
	}
	return count, nil
}

// fakeRepo is an in-memory Repository. Mutations are trivially atomic, and
// created_at advances by one second per create so recency ordering is
// deterministic.
type fakeRepo struct {
	mu     sync.Mutex
	groups map[uuid.UUID]*storedGroup
	clock  time.Time
}

type storedGroup struct {
	group        model.AyahGroup
	infos        []model.AyahInfo
	translations []model.AyahTranslation
	tafsirs      []model.AyahTafsir
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		groups: make(map[uuid.UUID]*storedGroup),
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepo) snapshot(sg *storedGroup) *model.GroupWithContent {
	out := &model.GroupWithContent{
		AyahGroup:    sg.group,
		Infos:        append([]model.AyahInfo{}, sg.infos...),
		Translations: append([]model.AyahTranslation{}, sg.translations...),
		Tafsirs:      append([]model.AyahTafsir{}, sg.tafsirs...),
	}
	return out
}

func (f *fakeRepo) findByRangeLocked(surahID, startAyah, endAyah int) *storedGroup {
	for _, sg := range f.groups {
		g := sg.group
		if g.SurahID == surahID && g.StartAyah == startAyah && g.EndAyah == endAyah {
			return sg
		}
	}
	return nil
}

func (f *fakeRepo) FindByRange(_ context.Context, surahID, startAyah, endAyah int) (*model.GroupWithContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sg := f.findByRangeLocked(surahID, startAyah, endAyah); sg != nil {
		return f.snapshot(sg), nil
	}
	return nil, nil
}

func (f *fakeRepo) FindContaining(_ context.Context, surahID, ayahNumber int) ([]model.AyahGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.AyahGroup, 0)
	for _, sg := range f.groups {
		g := sg.group
		if g.SurahID == surahID && g.Contains(ayahNumber) && g.Status == model.StatusPublished {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindBySurah(_ context.Context, surahID int) ([]model.GroupWithContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.GroupWithContent, 0)
	for _, sg := range f.groups {
		if sg.group.SurahID == surahID {
			out = append(out, *f.snapshot(sg))
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.GroupWithContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sg, ok := f.groups[id]; ok {
		return f.snapshot(sg), nil
	}
	return nil, nil
}

func (f *fakeRepo) CreateWithContent(_ context.Context, group model.AyahGroup, sets model.ContentSets) (*model.GroupWithContent, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sg := f.findByRangeLocked(group.SurahID, group.StartAyah, group.EndAyah); sg != nil {
		return f.snapshot(sg), true, nil
	}

	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	now := f.tick()
	group.CreatedAt = now
	group.UpdatedAt = now

	sg := &storedGroup{group: group}
	f.groups[group.ID] = sg
	f.applySetsLocked(sg, sets)
	return f.snapshot(sg), false, nil
}

func (f *fakeRepo) applySetsLocked(sg *storedGroup, sets model.ContentSets) {
	if sets.Infos != nil {
		sg.infos = nil
		for _, row := range *sets.Infos {
			row.AyahGroupID = sg.group.ID
			sg.infos = append(sg.infos, row)
		}
	}
	if sets.Translations != nil {
		sg.translations = nil
		for _, row := range *sets.Translations {
			row.AyahGroupID = sg.group.ID
			sg.translations = append(sg.translations, row)
		}
	}
	if sets.Tafsirs != nil {
		sg.tafsirs = nil
		for _, row := range *sets.Tafsirs {
			row.AyahGroupID = sg.group.ID
			sg.tafsirs = append(sg.tafsirs, row)
		}
	}
}

func (f *fakeRepo) UpdateWithContent(_ context.Context, id uuid.UUID, patch model.GroupPatch, sets model.ContentSets) (*model.GroupWithContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sg, ok := f.groups[id]
	if !ok {
		return nil, model.ErrGroupNotFound
	}
	if patch.Status != nil {
		sg.group.Status = *patch.Status
	}
	if patch.IsGrouped != nil {
		sg.group.IsGrouped = *patch.IsGrouped
	}
	sg.group.UpdatedAt = f.tick()
	f.applySetsLocked(sg, sets)
	return f.snapshot(sg), nil
}

func (f *fakeRepo) UpsertInfo(_ context.Context, info model.AyahInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sg := f.groups[info.AyahGroupID]
	for i, existing := range sg.infos {
		if existing.LanguageID == info.LanguageID {
			sg.infos[i].InfoText = info.InfoText
			sg.infos[i].Status = info.Status
			return nil
		}
	}
	sg.infos = append(sg.infos, info)
	return nil
}

func (f *fakeRepo) UpsertTranslation(_ context.Context, translation model.AyahTranslation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sg := f.groups[translation.AyahGroupID]
	for i, existing := range sg.translations {
		if existing.LanguageID == translation.LanguageID && existing.Translator == translation.Translator {
			sg.translations[i].TranslationText = translation.TranslationText
			sg.translations[i].Status = translation.Status
			return nil
		}
	}
	sg.translations = append(sg.translations, translation)
	return nil
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *fakeRepo) UpsertTafsir(_ context.Context, tafsir model.AyahTafsir) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sg := f.groups[tafsir.AyahGroupID]
	for i, existing := range sg.tafsirs {
		if existing.LanguageID == tafsir.LanguageID && strPtrEqual(existing.Source, tafsir.Source) {
			sg.tafsirs[i].TafsirText = tafsir.TafsirText
			sg.tafsirs[i].Scholar = tafsir.Scholar
			sg.tafsirs[i].Status = tafsir.Status
			return nil
		}
	}
	sg.tafsirs = append(sg.tafsirs, tafsir)
	return nil
}

func (f *fakeRepo) ListContent(_ context.Context, groupID uuid.UUID, languageID *int) ([]model.AyahInfo, []model.AyahTranslation, []model.AyahTafsir, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sg, ok := f.groups[groupID]
	if !ok {
		return nil, nil, nil, nil
	}

	infos := make([]model.AyahInfo, 0)
	for _, row := range sg.infos {
		if languageID == nil || row.LanguageID == *languageID {
			infos = append(infos, row)
		}
	}
	translations := make([]model.AyahTranslation, 0)
	for _, row := range sg.translations {
		if languageID == nil || row.LanguageID == *languageID {
			translations = append(translations, row)
		}
	}
	tafsirs := make([]model.AyahTafsir, 0)
	for _, row := range sg.tafsirs {
		if languageID == nil || row.LanguageID == *languageID {
			tafsirs = append(tafsirs, row)
		}
	}
	return infos, translations, tafsirs, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.groups[id]; !ok {
		return model.ErrGroupNotFound
	}
	delete(f.groups, id)
	return nil
}

// fakeCache is an in-memory Cache with prefix-glob pattern deletes.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			delete(f.entries, key)
		}
	}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }

// racingRepo hides existing groups from the next hideRange FindByRange calls,
// reproducing a concurrent creator winning the range between the service's
// existence check and its insert.
type racingRepo struct {
	*fakeRepo
	hideRange int
}

func (r *racingRepo) FindByRange(ctx context.Context, surahID, startAyah, endAyah int) (*model.GroupWithContent, error) {
	if r.hideRange > 0 {
		r.hideRange--
		return nil, nil
	}
	return r.fakeRepo.FindByRange(ctx, surahID, startAyah, endAyah)
}

func (f *fakeCache) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
