package order

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	domain "github.com/BruksfildServices01/room-booking/internal/domain/order"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	UserID      uint
	MasterID    uint
	RoomID      uint
	Description string
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateOrder {
	return &CreateOrder{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*models.Order, error) {

	var created *models.Order

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Room (row locked until commit)
		// --------------------------------------------------
		room, err := tx.LockRoom(ctx, in.RoomID)
		if errors.Is(err, domain.ErrRoomNotFound) {
			return domain.ErrRoomNotAvailable
		}
		if err != nil {
			return err
		}

		if !room.IsAvailable {
			return domain.ErrRoomNotAvailable
		}
		if room.MasterID != in.MasterID {
			return domain.ErrRoomMismatch
		}

		// --------------------------------------------------
		// Order
		// --------------------------------------------------
		roomID := room.ID
		o := &models.Order{
			UserID:      in.UserID,
			MasterID:    in.MasterID,
			RoomID:      &roomID,
			Description: in.Description,
			Status:      string(domain.InitialStatus()),
		}

		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}

		if err := tx.SetRoomAvailability(ctx, room.ID, false); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &created.ID,
		Metadata: map[string]any{"room_id": in.RoomID, "master_id": in.MasterID},
	})

	return created, nil
}
