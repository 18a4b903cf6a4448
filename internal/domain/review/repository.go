package review

import (
	"context"

	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// FindCompletedOrder returns ErrOrderNotReviewable unless an order with
	// this id, owner and master exists in status completed.
	FindCompletedOrder(
		ctx context.Context,
		orderID uint,
		userID uint,
		masterID uint,
	) (*models.Order, error)

	HasReview(
		ctx context.Context,
		orderID uint,
		userID uint,
	) (bool, error)

	CreateReview(
		ctx context.Context,
		r *models.Review,
	) error

	// LockMaster serialises rating recomputes for one master.
	LockMaster(
		ctx context.Context,
		masterID uint,
	) error

	RatingsForMaster(
		ctx context.Context,
		masterID uint,
	) ([]int, error)

	SetMasterRating(
		ctx context.Context,
		masterID uint,
		rating float64,
	) error

	ListForMaster(
		ctx context.Context,
		masterID uint,
		page httpresp.PageParams,
	) ([]dto.ReviewListDTO, int64, error)
}
