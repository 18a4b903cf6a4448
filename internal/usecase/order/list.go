package order

import (
	"context"

	domain "github.com/BruksfildServices01/room-booking/internal/domain/order"
	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
)

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(
	ctx context.Context,
	actor domain.Actor,
	page httpresp.PageParams,
) ([]dto.OrderListDTO, int64, error) {
	return actor.ListOrders(ctx, uc.repo, page)
}
