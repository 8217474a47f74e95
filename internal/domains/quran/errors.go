package quran

import "errors"

var (
	ErrSurahNotFound = errors.New("surah not found")
	ErrAyahNotFound  = errors.New("ayah not found")
	ErrPageNotFound  = errors.New("page not found")
	ErrJuzNotFound   = errors.New("juz not found")
	ErrHizbNotFound  = errors.New("hizb not found")
	ErrRubNotFound   = errors.New("rub not found")
)
