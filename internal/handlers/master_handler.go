package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/infra/cache"
	"github.com/BruksfildServices01/room-booking/internal/infra/storage"
	"github.com/BruksfildServices01/room-booking/internal/middleware"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

var errMasterProfileNotFound = httperr.ErrNotFound("master_profile_not_found", "Master profile not found.")

type MasterHandler struct {
	db       *gorm.DB
	cache    cache.Cache
	cacheTTL time.Duration
	images   storage.ImageStore
}

func NewMasterHandler(
	db *gorm.DB,
	c cache.Cache,
	cacheTTL time.Duration,
	images storage.ImageStore,
) *MasterHandler {
	return &MasterHandler{
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
		images:   images,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateMasterRequest struct {
	PlaceName    *string  `json:"place_name"`
	PhoneNumber1 *string  `json:"phone_number_1"`
	PhoneNumber2 *string  `json:"phone_number_2"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Description  *string  `json:"description"`
	CategoryID   *uint    `json:"category_id"`
	IsAvailable  *bool    `json:"is_available"`
}

// ======================================================
// QUERIES
// ======================================================

func (h *MasterHandler) publicMasters(ctx context.Context) *gorm.DB {
	return h.db.WithContext(ctx).
		Table("masters m").
		Select(`
			m.id, m.user_id, u.first_name, u.last_name,
			m.place_name, m.phone_number_1, m.phone_number_2,
			m.latitude, m.longitude, m.description, m.category_id,
			m.image_url, m.is_available, m.rating, m.created_at
		`).
		Joins("JOIN users u ON u.id = m.user_id")
}

// ownMaster loads the master profile of the calling account.
func (h *MasterHandler) ownMaster(c *gin.Context) (*models.Master, error) {
	var m models.Master
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", middleware.UserID(c)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errMasterProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *MasterHandler) invalidate(ctx context.Context, masterID uint) {
	if err := h.cache.Delete(ctx, cache.MasterKey(masterID)); err != nil {
		log.Warn().Err(err).Uint("master_id", masterID).Msg("failed to invalidate master cache")
	}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *MasterHandler) List(c *gin.Context) {
	q := h.publicMasters(c.Request.Context())

	if cat := c.Query("category_id"); cat != "" {
		q = q.Where("m.category_id = ?", cat)
	}
	if c.Query("available") == "true" {
		q = q.Where("m.is_available = ?", true)
	}

	var masters []dto.MasterDTO
	if err := q.Order("m.rating DESC, m.id ASC").Scan(&masters).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, masters)
}

func (h *MasterHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid master id.")
		return
	}

	ctx := c.Request.Context()
	key := cache.MasterKey(id)

	var cached dto.MasterDTO
	if cache.GetJSON(ctx, h.cache, key, &cached) {
		httpresp.OK(c, cached)
		return
	}

	var masters []dto.MasterDTO
	if err := h.publicMasters(ctx).
		Where("m.id = ?", id).
		Limit(1).
		Scan(&masters).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if len(masters) == 0 {
		httperr.NotFound(c, "master_not_found", "Master not found.")
		return
	}

	if err := cache.SetJSON(ctx, h.cache, key, masters[0], h.cacheTTL); err != nil {
		log.Warn().Err(err).Uint("master_id", id).Msg("failed to cache master")
	}

	httpresp.OK(c, masters[0])
}

// ======================================================
// OWN PROFILE (masters only)
// ======================================================

func (h *MasterHandler) GetProfile(c *gin.Context) {
	m, err := h.ownMaster(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MasterHandler) UpdateProfile(c *gin.Context) {
	var req UpdateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile payload.")
		return
	}

	m, err := h.ownMaster(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	updates := map[string]any{}
	if req.PlaceName != nil && *req.PlaceName != "" {
		updates["place_name"] = *req.PlaceName
	}
	if req.PhoneNumber1 != nil && *req.PhoneNumber1 != "" {
		updates["phone_number_1"] = *req.PhoneNumber1
	}
	if req.PhoneNumber2 != nil {
		updates["phone_number_2"] = optional(*req.PhoneNumber2)
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			httperr.BadRequest(c, "invalid_location", "latitude must be between -90 and 90.")
			return
		}
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			httperr.BadRequest(c, "invalid_location", "longitude must be between -180 and 180.")
			return
		}
		updates["longitude"] = *req.Longitude
	}
	if req.Description != nil {
		updates["description"] = optional(*req.Description)
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(m).
			Updates(updates).Error; err != nil {
			if httperr.IsForeignKeyViolation(err) {
				httperr.BadRequest(c, "invalid_category", "Category does not exist.")
				return
			}
			httperr.FromError(c, err)
			return
		}
		h.invalidate(c.Request.Context(), m.ID)
	}

	updated, err := h.ownMaster(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, updated)
}

func (h *MasterHandler) UploadImage(c *gin.Context) {
	m, err := h.ownMaster(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	url, ok := uploadImage(c, h.images, "masters")
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(m).
		Update("image_url", url).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	h.invalidate(c.Request.Context(), m.ID)

	httpresp.OK(c, gin.H{"image_url": url})
}
