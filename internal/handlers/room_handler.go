package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/infra/storage"
	"github.com/BruksfildServices01/room-booking/internal/middleware"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

var errRoomNotFound = httperr.ErrNotFound("room_not_found", "Room not found or not owned by this master.")

type RoomHandler struct {
	db     *gorm.DB
	images storage.ImageStore
	audit  *audit.Dispatcher
}

func NewRoomHandler(db *gorm.DB, images storage.ImageStore, audit *audit.Dispatcher) *RoomHandler {
	return &RoomHandler{db: db, images: images, audit: audit}
}

// --------- Requests ---------

type CreateRoomRequest struct {
	RoomNumber  string  `json:"room_number" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type UpdateRoomRequest struct {
	RoomNumber  *string  `json:"room_number"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"is_available"`
}

// --------- Helpers ---------

func (h *RoomHandler) masterID(c *gin.Context) (uint, error) {
	var m models.Master
	err := h.db.WithContext(c.Request.Context()).
		Select("id").
		Where("user_id = ?", middleware.UserID(c)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errMasterProfileNotFound
	}
	return m.ID, err
}

// ownRoom loads a room by the :id param, scoped to the calling master.
func (h *RoomHandler) ownRoom(c *gin.Context) (*models.Room, error) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, httperr.ErrValidation("invalid_id", "Invalid room id.")
	}

	masterID, err := h.masterID(c)
	if err != nil {
		return nil, err
	}

	var room models.Room
	err = h.db.WithContext(c.Request.Context()).
		Where("id = ? AND master_id = ?", id, masterID).
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (h *RoomHandler) listFor(c *gin.Context, masterID uint) {
	var rooms []models.Room
	if err := h.db.WithContext(c.Request.Context()).
		Where("master_id = ?", masterID).
		Order("id ASC").
		Find(&rooms).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, rooms)
}

// --------- Handlers ---------

func (h *RoomHandler) ListOwn(c *gin.Context) {
	masterID, err := h.masterID(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	h.listFor(c, masterID)
}

func (h *RoomHandler) ListForPlace(c *gin.Context) {
	masterID, ok := parseIDParam(c, "master_id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid master id.")
		return
	}
	h.listFor(c, masterID)
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "room_number is required and price must not be negative.")
		return
	}

	masterID, err := h.masterID(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	room := models.Room{
		MasterID:    masterID,
		RoomNumber:  req.RoomNumber,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&room).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	userID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "room_created",
		Entity:   "room",
		EntityID: &room.ID,
	})

	httpresp.Created(c, room)
}

func (h *RoomHandler) Update(c *gin.Context) {
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid room payload.")
		return
	}

	room, err := h.ownRoom(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	updates := map[string]any{}
	if req.RoomNumber != nil && *req.RoomNumber != "" {
		updates["room_number"] = *req.RoomNumber
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "price must not be negative.")
			return
		}
		updates["price"] = *req.Price
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(room).
			Updates(updates).Error; err != nil {
			httperr.FromError(c, err)
			return
		}
	}

	httpresp.OK(c, room)
}

func (h *RoomHandler) Delete(c *gin.Context) {
	room, err := h.ownRoom(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(room).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.BadRequest(c, "room_in_use", "Cannot delete this room because it has orders.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	userID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "room_deleted",
		Entity:   "room",
		EntityID: &room.ID,
	})

	httpresp.OK(c, gin.H{"message": "Room deleted."})
}

func (h *RoomHandler) UploadImage(c *gin.Context) {
	room, err := h.ownRoom(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	url, ok := uploadImage(c, h.images, "rooms")
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(room).
		Update("image_url", url).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, room)
}
