package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	model "github.com/akmmubashir/quran-backend/internal/domains/quran"
	"github.com/akmmubashir/quran-backend/internal/domains/quran/service"
	"github.com/akmmubashir/quran-backend/internal/shared/response"
	"github.com/akmmubashir/quran-backend/pkg/logger"
)

const (
	defaultPerPage = 20
	maxPerPage     = 300
)

type Handler struct {
	service service.Service
}

func NewHandler(service service.Service) *Handler {
	return &Handler{service: service}
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrSurahNotFound), errors.Is(err, model.ErrAyahNotFound),
		errors.Is(err, model.ErrPageNotFound), errors.Is(err, model.ErrJuzNotFound),
		errors.Is(err, model.ErrHizbNotFound), errors.Is(err, model.ErrRubNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("quran read failed", err)
		response.InternalServerError(c, "internal server error")
	}
}

func parseIntParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parsePagination(c *gin.Context) (page, perPage int) {
	page = 1
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	perPage = defaultPerPage
	if raw := c.Query("perPage"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxPerPage {
			perPage = v
		}
	}
	return page, perPage
}

// ListSurahs handles GET /api/v1/quran/surahs
func (h *Handler) ListSurahs(c *gin.Context) {
	surahs, err := h.service.ListSurahs(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, surahs, &response.Meta{Total: len(surahs)})
}

// GetSurah handles GET /api/v1/quran/surahs/:number
func (h *Handler) GetSurah(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}

	surah, err := h.service.GetSurah(c.Request.Context(), number)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, surah)
}

// ListAyahs handles GET /api/v1/quran/surahs/:number/ayahs with page/perPage
// query params.
func (h *Handler) ListAyahs(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}

	page, perPage := parsePagination(c)

	ayahs, total, err := h.service.ListAyahs(c.Request.Context(), number, page, perPage)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, ayahs, &response.Meta{
		Page:  page,
		Limit: perPage,
		Total: total,
	})
}

// GetAyah handles GET /api/v1/quran/surahs/:number/ayahs/:ayah. Resolved
// annotation content rides along when a published group covers the verse.
func (h *Handler) GetAyah(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	ayahNumber, ok := parseIntParam(c, "ayah")
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

	detail, err := h.service.GetAyahDetail(c.Request.Context(), number, ayahNumber, languageID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// ListAyahsByPage handles GET /api/v1/quran/pages/:number/ayahs
func (h *Handler) ListAyahsByPage(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}

	ayahs, err := h.service.ListAyahsByPage(c.Request.Context(), number)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, ayahs, &response.Meta{Total: len(ayahs)})
}

// ListAyahsByJuz handles GET /api/v1/quran/juzs/:number/ayahs with page/perPage
// query params. A juz spans hundreds of verses, so the read is paginated.
func (h *Handler) ListAyahsByJuz(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	page, perPage := parsePagination(c)

	ayahs, total, err := h.service.ListAyahsByJuz(c.Request.Context(), number, page, perPage)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, ayahs, &response.Meta{
		Page:  page,
		Limit: perPage,
		Total: total,
	})
}

// ListAyahsByHizb handles GET /api/v1/quran/hizbs/:number/ayahs
func (h *Handler) ListAyahsByHizb(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}

	ayahs, err := h.service.ListAyahsByHizb(c.Request.Context(), number)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, ayahs, &response.Meta{Total: len(ayahs)})
}

// ListAyahsByRub handles GET /api/v1/quran/rubs/:number/ayahs
func (h *Handler) ListAyahsByRub(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}

	ayahs, err := h.service.ListAyahsByRub(c.Request.Context(), number)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, ayahs, &response.Meta{Total: len(ayahs)})
}

// GetRandomAyah handles GET /api/v1/quran/ayahs/random
func (h *Handler) GetRandomAyah(c *gin.Context) {
	ayah, err := h.service.GetRandomAyah(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ayah)
}

// RegisterRoutes mounts the canonical text endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	quran := rg.Group("/quran")
	{
		quran.GET("/surahs", h.ListSurahs)
		quran.GET("/surahs/:number", h.GetSurah)
		quran.GET("/surahs/:number/ayahs", h.ListAyahs)
		quran.GET("/surahs/:number/ayahs/:ayah", h.GetAyah)
		quran.GET("/pages/:number/ayahs", h.ListAyahsByPage)
		quran.GET("/juzs/:number/ayahs", h.ListAyahsByJuz)
		quran.GET("/hizbs/:number/ayahs", h.ListAyahsByHizb)
		quran.GET("/rubs/:number/ayahs", h.ListAyahsByRub)
		quran.GET("/ayahs/random", h.GetRandomAyah)
	}
}
