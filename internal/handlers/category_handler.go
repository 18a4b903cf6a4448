package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/infra/cache"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type CategoryHandler struct {
	db       *gorm.DB
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewCategoryHandler(db *gorm.DB, c cache.Cache, cacheTTL time.Duration) *CategoryHandler {
	return &CategoryHandler{db: db, cache: c, cacheTTL: cacheTTL}
}

func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var categories []models.Category
	if cache.GetJSON(ctx, h.cache, cache.CategoriesKey, &categories) {
		httpresp.List(c, categories)
		return
	}

	if err := h.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := cache.SetJSON(ctx, h.cache, cache.CategoriesKey, categories, h.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache categories")
	}

	httpresp.List(c, categories)
}
