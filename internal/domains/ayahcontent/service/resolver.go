package service

import (
	"sort"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
)

// rankCandidates orders published groups covering one ayah by resolution
// precedence: explicit groups before implicit single-ayah ones, then narrower
// ranges, then more recently created. The sort is stable so equally ranked
// candidates keep the store's recency order.
func rankCandidates(groups []model.AyahGroup) []model.AyahGroup {
	ranked := make([]model.AyahGroup, len(groups))
	copy(ranked, groups)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.IsGrouped != b.IsGrouped {
			return a.IsGrouped
		}
		if a.Width() != b.Width() {
			return a.Width() < b.Width()
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return ranked
}

// pickBest returns the winning candidate, or nil when none cover the ayah.
func pickBest(groups []model.AyahGroup) *model.AyahGroup {
	ranked := rankCandidates(groups)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}
