package order

import (
	"context"

	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// Actor is the authenticated caller seen through what it may do with orders.
type Actor interface {
	UserID() uint
	Role() Role
	CanAccess(o *models.Order) bool
	ListOrders(
		ctx context.Context,
		repo Repository,
		page httpresp.PageParams,
	) ([]dto.OrderListDTO, int64, error)
}

// Customer books rooms and sees the orders it placed.
type Customer struct {
	ID uint
}

func (c Customer) UserID() uint { return c.ID }
func (c Customer) Role() Role { return RoleCustomer }

func (c Customer) CanAccess(o *models.Order) bool {
	return o.UserID == c.ID
}

func (c Customer) ListOrders(
	ctx context.Context,
	repo Repository,
	page httpresp.PageParams,
) ([]dto.OrderListDTO, int64, error) {
	return repo.ListOrdersForUser(ctx, c.ID, page)
}

// Provider is a master account acting on orders placed with its profile.
// MasterID is 0 when the account has no master profile yet.
type Provider struct {
	ID       uint
	MasterID uint
}

func (p Provider) UserID() uint { return p.ID }
func (p Provider) Role() Role { return RoleProvider }

func (p Provider) CanAccess(o *models.Order) bool {
	return p.MasterID != 0 && o.MasterID == p.MasterID
}

func (p Provider) ListOrders(
	ctx context.Context,
	repo Repository,
	page httpresp.PageParams,
) ([]dto.OrderListDTO, int64, error) {
	if p.MasterID == 0 {
		return nil, 0, ErrMasterNotFound
	}
	return repo.ListOrdersForMaster(ctx, p.MasterID, page)
}
