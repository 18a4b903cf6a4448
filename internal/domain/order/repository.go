package order

import (
	"context"

	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. Returning an error from fn rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Master --------
	GetMasterIDByUser(
		ctx context.Context,
		userID uint,
	) (uint, error)

	// -------- Room --------
	LockRoom(
		ctx context.Context,
		roomID uint,
	) (*models.Room, error)

	SetRoomAvailability(
		ctx context.Context,
		roomID uint,
		available bool,
	) error

	// -------- Order --------
	CreateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	LockOrder(
		ctx context.Context,
		orderID uint,
	) (*models.Order, error)

	UpdateOrderStatus(
		ctx context.Context,
		o *models.Order,
	) error

	ListOrdersForMaster(
		ctx context.Context,
		masterID uint,
		page httpresp.PageParams,
	) ([]dto.OrderListDTO, int64, error)

	ListOrdersForUser(
		ctx context.Context,
		userID uint,
		page httpresp.PageParams,
	) ([]dto.OrderListDTO, int64, error)
}
