package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-booking/internal/domain/order"
	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/middleware"
	"github.com/BruksfildServices01/room-booking/internal/models"
	ucOrder "github.com/BruksfildServices01/room-booking/internal/usecase/order"
)

// ======================================================
// DEPENDENCIES
// ======================================================

type orderCreator interface {
	Execute(ctx context.Context, in ucOrder.CreateOrderInput) (*models.Order, error)
}

type orderStatusUpdater interface {
	Execute(ctx context.Context, actor order.Actor, orderID uint, status string) (*models.Order, error)
}

type orderLister interface {
	Execute(ctx context.Context, actor order.Actor, page httpresp.PageParams) ([]dto.OrderListDTO, int64, error)
}

type actorResolver interface {
	Execute(ctx context.Context, userID uint, role string) (order.Actor, error)
}

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	create  orderCreator
	update  orderStatusUpdater
	list    orderLister
	resolve actorResolver
}

func NewOrderHandler(
	create orderCreator,
	update orderStatusUpdater,
	list orderLister,
	resolve actorResolver,
) *OrderHandler {
	return &OrderHandler{
		create:  create,
		update:  update,
		list:    list,
		resolve: resolve,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateOrderRequest struct {
	MasterID    uint   `json:"master_id" binding:"required"`
	RoomID      uint   `json:"room_id" binding:"required"`
	Description string `json:"description"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "master_id and room_id are required.")
		return
	}

	o, err := h.create.Execute(c.Request.Context(), ucOrder.CreateOrderInput{
		UserID:      middleware.UserID(c),
		MasterID:    req.MasterID,
		RoomID:      req.RoomID,
		Description: req.Description,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, o)
}

// ======================================================
// LIST
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	actor, err := h.resolve.Execute(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	page := httpresp.ParsePage(c)

	orders, total, err := h.list.Execute(c.Request.Context(), actor, page)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, page, orders, total)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid order id.")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	actor, err := h.resolve.Execute(c.Request.Context(), middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	o, err := h.update.Execute(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, o)
}
