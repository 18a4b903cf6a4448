package order

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	domain "github.com/BruksfildServices01/room-booking/internal/domain/order"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type UpdateOrderStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOrderStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateOrderStatus {
	return &UpdateOrderStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateOrderStatus) Execute(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
	status string,
) (*models.Order, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		updated  *models.Order
		previous domain.Status
	)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		o, err := tx.LockOrder(ctx, orderID)
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if !actor.CanAccess(o) {
			return domain.ErrForbidden
		}

		previous = domain.Status(o.Status)
		if err := domain.CanTransition(previous, next, actor.Role()); err != nil {
			return err
		}

		o.Status = string(next)
		if err := tx.UpdateOrderStatus(ctx, o); err != nil {
			return err
		}

		if next.IsTerminal() && o.RoomID != nil {
			if err := tx.SetRoomAvailability(ctx, *o.RoomID, true); err != nil {
				return err
			}
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	userID := actor.UserID()
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "order_status_changed",
		Entity:   "order",
		EntityID: &updated.ID,
		Metadata: map[string]any{"from": previous, "to": next},
	})

	return updated, nil
}
