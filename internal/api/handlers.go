package api

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/romangod6/queuer-site/internal/models"
	"github.com/romangod6/queuer-site/internal/site"
	"github.com/romangod6/queuer-site/internal/sitemap"
	"github.com/romangod6/queuer-site/internal/storage"
)

type Handler struct {
	renderer *site.Renderer
	sitemap  *sitemap.Generator
	store    storage.Store
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count,omitempty"`
}

// NewHandler wires the page renderer, the sitemap generator and an optional build store.
func NewHandler(renderer *site.Renderer, generator *sitemap.Generator, store storage.Store) *Handler {
	return &Handler{
		renderer: renderer,
		sitemap:  generator,
		store:    store,
	}
}

func (h *Handler) RenderPage(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := h.locale(c)

		var buf bytes.Buffer
		if err := h.renderer.Render(&buf, route, locale); err != nil {
			if errors.Is(err, site.ErrPageNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "Page not found"})
				return
			}
			log.Printf("Error rendering %s: %v", route, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render page"})
			return
		}

		c.Header("Content-Language", locale)
		c.Header("Vary", "Accept-Language")
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

// locale prefers an explicit ?lang= over Accept-Language.
func (h *Handler) locale(c *gin.Context) string {
	bundle := h.renderer.Bundle()
	if lang := c.Query("lang"); lang != "" && bundle.Has(lang) {
		return lang
	}
	return bundle.Match(c.GetHeader("Accept-Language"))
}

func (h *Handler) Sitemap(c *gin.Context) {
	data, err := h.sitemap.Render()
	if err != nil {
		log.Printf("Error rendering sitemap: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate sitemap"})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

func (h *Handler) ListBuilds(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Build history is not configured"})
		return
	}

	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	builds, err := h.store.ListBuilds(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch builds"})
		return
	}

	if builds == nil {
		builds = []*models.BuildRecord{}
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:  builds,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) GetBuild(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Build history is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid build ID"})
		return
	}

	build, err := h.store.GetBuild(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch build"})
		return
	}

	if build == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Build not found"})
		return
	}

	c.JSON(http.StatusOK, build)
}

func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Page not found"})
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
