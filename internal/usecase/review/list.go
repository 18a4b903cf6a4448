package review

import (
	"context"

	domain "github.com/BruksfildServices01/room-booking/internal/domain/review"
	"github.com/BruksfildServices01/room-booking/internal/dto"
	"github.com/BruksfildServices01/room-booking/internal/httpresp"
)

type ListReviewsForMaster struct {
	repo domain.Repository
}

func NewListReviewsForMaster(repo domain.Repository) *ListReviewsForMaster {
	return &ListReviewsForMaster{repo: repo}
}

func (uc *ListReviewsForMaster) Execute(
	ctx context.Context,
	masterID uint,
	page httpresp.PageParams,
) ([]dto.ReviewListDTO, int64, error) {
	return uc.repo.ListForMaster(ctx, masterID, page)
}
