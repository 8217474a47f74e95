package ayahcontent

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// CONTENT INPUTS
// ========================================

type InfoInput struct {
	LanguageID int    `json:"languageId"`
	InfoText   string `json:"infoText"`
	Status     string `json:"status,omitempty"`
}

func (i InfoInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&i.InfoText, validation.Required.Error("infoText is required")),
	)
}

type TranslationInput struct {
	LanguageID      int    `json:"languageId"`
	TranslationText string `json:"translationText"`
	Translator      string `json:"translator"`
	Status          string `json:"status,omitempty"`
}

func (t TranslationInput) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&t.TranslationText, validation.Required.Error("translationText is required")),
		validation.Field(&t.Translator, validation.Required.Error("translator is required"), validation.Length(1, 255)),
	)
}

type TafsirInput struct {
	LanguageID int     `json:"languageId"`
	TafsirText string  `json:"tafsirText"`
	Scholar    *string `json:"scholar,omitempty"`
	Source     *string `json:"source,omitempty"`
	Status     string  `json:"status,omitempty"`
}

func (t TafsirInput) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&t.TafsirText, validation.Required.Error("tafsirText is required")),
		validation.Field(&t.Scholar, validation.Length(0, 255)),
		validation.Field(&t.Source, validation.Length(0, 255)),
	)
}

// ========================================
// GROUP REQUESTS
// ========================================

// CreateGroupRequest creates (or reuses) a group for an explicit range.
// When IsGrouped is omitted it defaults to startAyah != endAyah.
type CreateGroupRequest struct {
	SurahID      int                `json:"surahId"`
	StartAyah    int                `json:"startAyah"`
	EndAyah      int                `json:"endAyah"`
	IsGrouped    *bool              `json:"isGrouped,omitempty"`
	Status       string             `json:"status,omitempty"`
	Infos        []InfoInput        `json:"infos,omitempty"`
	Translations []TranslationInput `json:"translations,omitempty"`
	Tafsirs      []TafsirInput      `json:"tafsirs,omitempty"`
}

func (r CreateGroupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SurahID, validation.Required.Error("surahId is required"), validation.Min(1), validation.Max(114)),
		validation.Field(&r.StartAyah, validation.Required.Error("startAyah is required"), validation.Min(1)),
		validation.Field(&r.EndAyah, validation.Required.Error("endAyah is required"), validation.Min(1)),
		validation.Field(&r.Infos),
		validation.Field(&r.Translations),
		validation.Field(&r.Tafsirs),
	)
}

// UpsertGroupRequest updates a group identified by its range, creating it when
// absent. Content-type fields use pointers: nil means "leave untouched", an
// explicit empty list means "clear all rows of this type".
type UpsertGroupRequest struct {
	SurahID      int                 `json:"surahId"`
	StartAyah    int                 `json:"startAyah"`
	EndAyah      int                 `json:"endAyah"`
	IsGrouped    *bool               `json:"isGrouped,omitempty"`
	Status       *string             `json:"status,omitempty"`
	Infos        *[]InfoInput        `json:"infos,omitempty"`
	Translations *[]TranslationInput `json:"translations,omitempty"`
	Tafsirs      *[]TafsirInput      `json:"tafsirs,omitempty"`
}

func (r UpsertGroupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SurahID, validation.Required.Error("surahId is required"), validation.Min(1), validation.Max(114)),
		validation.Field(&r.StartAyah, validation.Required.Error("startAyah is required"), validation.Min(1)),
		validation.Field(&r.EndAyah, validation.Required.Error("endAyah is required"), validation.Min(1)),
		validation.Field(&r.Infos),
		validation.Field(&r.Translations),
		validation.Field(&r.Tafsirs),
	)
}

// ========================================
// SINGLE-ITEM REQUESTS
// ========================================

// UpsertInfoRequest writes exactly one info row. The target group is either
// given explicitly by AyahGroupID or located (and created if missing) from
// (surahId, ayahId) as an implicit single-ayah group.
type UpsertInfoRequest struct {
	SurahID     int        `json:"surahId,omitempty"`
	AyahID      int        `json:"ayahId,omitempty"`
	AyahGroupID *uuid.UUID `json:"ayahGroupId,omitempty"`
	LanguageID  int        `json:"languageId"`
	InfoText    string     `json:"infoText"`
	Status      string     `json:"status,omitempty"`
}

func (r UpsertInfoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SurahID, validation.Min(1), validation.Max(114), validation.Required.When(r.AyahGroupID == nil).Error("surahId is required when ayahGroupId is not set")),
		validation.Field(&r.AyahID, validation.Min(1), validation.Required.When(r.AyahGroupID == nil).Error("ayahId is required when ayahGroupId is not set")),
		validation.Field(&r.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&r.InfoText, validation.Required.Error("infoText is required")),
	)
}

type UpsertTranslationRequest struct {
	SurahID         int        `json:"surahId,omitempty"`
	AyahID          int        `json:"ayahId,omitempty"`
	AyahGroupID     *uuid.UUID `json:"ayahGroupId,omitempty"`
	LanguageID      int        `json:"languageId"`
	TranslationText string     `json:"translationText"`
	Translator      string     `json:"translator"`
	Status          string     `json:"status,omitempty"`
}

func (r UpsertTranslationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SurahID, validation.Min(1), validation.Max(114), validation.Required.When(r.AyahGroupID == nil).Error("surahId is required when ayahGroupId is not set")),
		validation.Field(&r.AyahID, validation.Min(1), validation.Required.When(r.AyahGroupID == nil).Error("ayahId is required when ayahGroupId is not set")),
		validation.Field(&r.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&r.TranslationText, validation.Required.Error("translationText is required")),
		validation.Field(&r.Translator, validation.Required.Error("translator is required"), validation.Length(1, 255)),
	)
}

type UpsertTafsirRequest struct {
	SurahID     int        `json:"surahId,omitempty"`
	AyahID      int        `json:"ayahId,omitempty"`
	AyahGroupID *uuid.UUID `json:"ayahGroupId,omitempty"`
	LanguageID  int        `json:"languageId"`
	TafsirText  string     `json:"tafsirText"`
	Scholar     *string    `json:"scholar,omitempty"`
	Source      *string    `json:"source,omitempty"`
	Status      string     `json:"status,omitempty"`
}

func (r UpsertTafsirRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SurahID, validation.Min(1), validation.Max(114), validation.Required.When(r.AyahGroupID == nil).Error("surahId is required when ayahGroupId is not set")),
		validation.Field(&r.AyahID, validation.Min(1), validation.Required.When(r.AyahGroupID == nil).Error("ayahId is required when ayahGroupId is not set")),
		validation.Field(&r.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&r.TafsirText, validation.Required.Error("tafsirText is required")),
	)
}

// CombinedUpsertRequest writes any combination of the three content types in
// one call, with whole-set replace semantics per supplied list (same pointer
// convention as UpsertGroupRequest).
type CombinedUpsertRequest struct {
	SurahID      int                 `json:"surahId,omitempty"`
	AyahID       int                 `json:"ayahId,omitempty"`
	AyahGroupID  *uuid.UUID          `json:"ayahGroupId,omitempty"`
	Infos        *[]InfoInput        `json:"info,omitempty"`
	Translations *[]TranslationInput `json:"translation,omitempty"`
	Tafsirs      *[]TafsirInput      `json:"tafsir,omitempty"`
	Status       string              `json:"status,omitempty"`
}

func (r CombinedUpsertRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SurahID, validation.Min(1), validation.Max(114), validation.Required.When(r.AyahGroupID == nil).Error("surahId is required when ayahGroupId is not set")),
		validation.Field(&r.AyahID, validation.Min(1), validation.Required.When(r.AyahGroupID == nil).Error("ayahId is required when ayahGroupId is not set")),
		validation.Field(&r.Infos),
		validation.Field(&r.Translations),
		validation.Field(&r.Tafsirs),
	)
}

// ========================================
// RESULTS
// ========================================

// UpsertGroupResult tags the returned group with whether it was newly created.
type UpsertGroupResult struct {
	GroupWithContent
	IsNew bool `json:"isNew"`
}

// MutationResult is the response shape for single-item and combined upserts.
type MutationResult struct {
	Success bool      `json:"success"`
	GroupID uuid.UUID `json:"groupId"`
	Message string    `json:"message"`
}

// ========================================
// DTO → MODEL CONVERSION
// ========================================

func statusOrDefault(status string) string {
	if status == "" {
		return DefaultStatus
	}
	return status
}

// ToModel converts an info input to a model row owned by groupID.
func (i InfoInput) ToModel(groupID uuid.UUID) AyahInfo {
	return AyahInfo{
		AyahGroupID: groupID,
		LanguageID:  i.LanguageID,
		InfoText:    i.InfoText,
		Status:      statusOrDefault(i.Status),
	}
}

func (t TranslationInput) ToModel(groupID uuid.UUID) AyahTranslation {
	return AyahTranslation{
		AyahGroupID:     groupID,
		LanguageID:      t.LanguageID,
		TranslationText: t.TranslationText,
		Translator:      t.Translator,
		Status:          statusOrDefault(t.Status),
	}
}

func (t TafsirInput) ToModel(groupID uuid.UUID) AyahTafsir {
	return AyahTafsir{
		AyahGroupID: groupID,
		LanguageID:  t.LanguageID,
		TafsirText:  t.TafsirText,
		Scholar:     t.Scholar,
		Source:      t.Source,
		Status:      statusOrDefault(t.Status),
	}
}

// InfosToModels converts a list of info inputs to model rows.
func InfosToModels(inputs []InfoInput, groupID uuid.UUID) []AyahInfo {
	out := make([]AyahInfo, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, in.ToModel(groupID))
	}
	return out
}

func TranslationsToModels(inputs []TranslationInput, groupID uuid.UUID) []AyahTranslation {
	out := make([]AyahTranslation, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, in.ToModel(groupID))
	}
	return out
}

func TafsirsToModels(inputs []TafsirInput, groupID uuid.UUID) []AyahTafsir {
	out := make([]AyahTafsir, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, in.ToModel(groupID))
	}
	return out
}
