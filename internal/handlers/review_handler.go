package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/middleware"
	"github.com/BruksfildServices01/room-booking/internal/models"
	ucReview "github.com/BruksfildServices01/room-booking/internal/usecase/review"
)

type reviewCreator interface {
	Execute(ctx context.Context, in ucReview.CreateReviewInput) (*models.Review, error)
}

type reviewLister interface {
	Execute(ctx context.Context, masterID uint, page httpresp.PageParams) ([]dto.ReviewListDTO, int64, error)
}

type ReviewHandler struct {
	create reviewCreator
	list   reviewLister
}

func NewReviewHandler(create reviewCreator, list reviewLister) *ReviewHandler {
	return &ReviewHandler{create: create, list: list}
}

type CreateReviewRequest struct {
	MasterID uint   `json:"master_id" binding:"required"`
	OrderID  uint   `json:"order_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "master_id, order_id and rating are required.")
		return
	}

	r, err := h.create.Execute(c.Request.Context(), ucReview.CreateReviewInput{
		UserID:   middleware.UserID(c),
		MasterID: req.MasterID,
		OrderID:  req.OrderID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, r)
}

func (h *ReviewHandler) ListForMaster(c *gin.Context) {
	masterID, ok := parseIDParam(c, "master_id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid master id.")
		return
	}

	page := httpresp.ParsePage(c)

	reviews, total, err := h.list.Execute(c.Request.Context(), masterID, page)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, page, reviews, total)
}
