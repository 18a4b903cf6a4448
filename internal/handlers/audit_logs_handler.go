package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/middleware"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the caller's own audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	page := httpresp.ParsePage(c)

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	// --------------------------------------------------
	// Base query, always scoped to the caller
	// --------------------------------------------------

	scope := func() *gorm.DB {
		q := h.db.WithContext(c.Request.Context()).
			Model(&models.AuditLog{}).
			Where("user_id = ?", userID)

		if action != "" {
			q = q.Where("action = ?", action)
		}
		if entity != "" {
			q = q.Where("entity = ?", entity)
		}
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at < ?", to.Add(24*time.Hour))
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	var logs []models.AuditLog
	if err := scope().
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, page, logs, total)
}
