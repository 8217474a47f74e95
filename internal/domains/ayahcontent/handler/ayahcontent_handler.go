package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	model "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
	"github.com/akmmubashir/quran-backend/internal/shared/response"
	"github.com/akmmubashir/quran-backend/pkg/logger"
)

type Handler struct {
	service model.Service
}

func NewHandler(service model.Service) *Handler {
	return &Handler{service: service}
}

// handleServiceError maps domain errors onto HTTP responses. Range and
// coverage violations are client errors; anything unrecognized is a 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidRange):
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case errors.Is(err, model.ErrRangeExceedsSurah):
		response.ErrorResponse(c, http.StatusBadRequest, "RANGE_EXCEEDS_SURAH", err.Error())
	case errors.Is(err, model.ErrRangeIncomplete):
		response.ErrorResponse(c, http.StatusBadRequest, "RANGE_INCOMPLETE", err.Error())
	case errors.Is(err, model.ErrSurahNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrGroupNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("ayah content operation failed", err)
		response.InternalServerError(c, "internal server error")
	}
}

func bindAndValidate(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verrs)
		} else {
			response.BadRequest(c, err.Error())
		}
		return false
	}
	return true
}

func parseGroupID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return uuid.Nil, false
	}
	return id, true
}

func parseIntParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

// CreateGroup handles POST /api/v1/ayah-content
func (h *Handler) CreateGroup(c *gin.Context) {
	var req model.CreateGroupRequest
	if !bindAndValidate(c, &req) {
		return
	}

	group, err := h.service.CreateOrReuseGroup(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, group)
}

// UpsertGroup handles PUT /api/v1/ayah-content/:id. The body carries the
// range that identifies the group; the path id only has to be well formed.
func (h *Handler) UpsertGroup(c *gin.Context) {
	if _, ok := parseGroupID(c); !ok {
		return
	}

	var req model.UpsertGroupRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.UpsertGroupByRange(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.IsNew {
		status = http.StatusCreated
	}
	response.Success(c, status, result)
}

// GetGroup handles GET /api/v1/ayah-content/:id
func (h *Handler) GetGroup(c *gin.Context) {
	id, ok := parseGroupID(c)
	if !ok {
		return
	}

	group, err := h.service.GetGroupByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, group)
}

// ListBySurah handles GET /api/v1/ayah-content/surah/:surahId
func (h *Handler) ListBySurah(c *gin.Context) {
	surahID, ok := parseIntParam(c, "surahId")
	if !ok {
		return
	}

	groups, err := h.service.ListGroupsBySurah(c.Request.Context(), surahID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, groups, &response.Meta{Total: len(groups)})
}

// Resolve handles GET /api/v1/ayah-content/surah/:surahId/ayah/:ayahNumber.
// Optional query param languageId narrows the returned content.
func (h *Handler) Resolve(c *gin.Context) {
	surahID, ok := parseIntParam(c, "surahId")
	if !ok {
		return
	}
	ayahNumber, ok := parseIntParam(c, "ayahNumber")
	if !ok {
		return
	}

	var languageID *int
	if raw := c.Query("languageId"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			response.BadRequest(c, "invalid languageId")
			return
		}
		languageID = &v
	}

	resolved, err := h.service.ResolveForAyah(c.Request.Context(), surahID, ayahNumber, languageID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if resolved == nil {
		response.NotFound(c, "no published content covers this ayah")
		return
	}
	response.Success(c, http.StatusOK, resolved)
}

// DeleteGroup handles DELETE /api/v1/ayah-content/:id
func (h *Handler) DeleteGroup(c *gin.Context) {
	id, ok := parseGroupID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteGroup(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// UpsertInfo handles POST|PUT /api/v1/ayah-content/info
func (h *Handler) UpsertInfo(c *gin.Context) {
	var req model.UpsertInfoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.UpsertAyahInfo(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// UpsertTranslation handles POST|PUT /api/v1/ayah-content/translation
func (h *Handler) UpsertTranslation(c *gin.Context) {
	var req model.UpsertTranslationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.UpsertAyahTranslation(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// UpsertTafsir handles POST|PUT /api/v1/ayah-content/tafsir
func (h *Handler) UpsertTafsir(c *gin.Context) {
	var req model.UpsertTafsirRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.UpsertAyahTafsir(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// CombinedUpsert handles POST /api/v1/ayah-content/combined
func (h *Handler) CombinedUpsert(c *gin.Context) {
	var req model.CombinedUpsertRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.CombinedUpsert(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// RegisterRoutes mounts the ayah-content endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	content := rg.Group("/ayah-content")
	{
		content.POST("", h.CreateGroup)
		content.GET("/surah/:surahId", h.ListBySurah)
		content.GET("/surah/:surahId/ayah/:ayahNumber", h.Resolve)

		content.POST("/info", h.UpsertInfo)
		content.PUT("/info", h.UpsertInfo)
		content.POST("/translation", h.UpsertTranslation)
		content.PUT("/translation", h.UpsertTranslation)
		content.POST("/tafsir", h.UpsertTafsir)
		content.PUT("/tafsir", h.UpsertTafsir)
		content.POST("/combined", h.CombinedUpsert)

		content.GET("/:id", h.GetGroup)
		content.PUT("/:id", h.UpsertGroup)
		content.DELETE("/:id", h.DeleteGroup)
	}
}
