package order

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/room-booking/internal/domain/order"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

// ResolveActor turns the authenticated user into an order actor. A master
// account without a profile resolves to a Provider with MasterID 0, which
// owns no orders.
type ResolveActor struct {
	repo domain.Repository
}

func NewResolveActor(repo domain.Repository) *ResolveActor {
	return &ResolveActor{repo: repo}
}

func (uc *ResolveActor) Execute(
	ctx context.Context,
	userID uint,
	role string,
) (domain.Actor, error) {

	if role != models.RoleMaster {
		return domain.Customer{ID: userID}, nil
	}

	masterID, err := uc.repo.GetMasterIDByUser(ctx, userID)
	if errors.Is(err, domain.ErrMasterProfileNotFound) {
		return domain.Provider{ID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	return domain.Provider{ID: userID, MasterID: masterID}, nil
}
