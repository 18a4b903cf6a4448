package review

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/room-booking/internal/audit"
	domain "github.com/BruksfildServices01/room-booking/internal/domain/review"
	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/infra/cache"
	"github.com/BruksfildServices01/room-booking/internal/models"
)

type CreateReviewInput struct {
	UserID   uint
	MasterID uint
	OrderID  uint
	Rating   int
	Comment  string
}

type CreateReview struct {
	repo  domain.Repository
	cache cache.Cache
	audit *audit.Dispatcher
}

func NewCreateReview(
	repo domain.Repository,
	c cache.Cache,
	audit *audit.Dispatcher,
) *CreateReview {
	return &CreateReview{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*models.Review, error) {

	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	var created *models.Review

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Only the customer's own completed order
		// --------------------------------------------------
		if _, err := tx.FindCompletedOrder(ctx, in.OrderID, in.UserID, in.MasterID); err != nil {
			if errors.Is(err, domain.ErrOrderNotReviewable) {
				return domain.ErrNotReviewable
			}
			return err
		}

		// --------------------------------------------------
		// One review per order
		// --------------------------------------------------
		exists, err := tx.HasReview(ctx, in.OrderID, in.UserID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyReviewed
		}

		// --------------------------------------------------
		// Insert + full recompute under the master row lock
		// --------------------------------------------------
		if err := tx.LockMaster(ctx, in.MasterID); err != nil {
			return err
		}

		r := &models.Review{
			UserID:   in.UserID,
			MasterID: in.MasterID,
			OrderID:  in.OrderID,
			Rating:   in.Rating,
			Comment:  in.Comment,
		}
		if err := tx.CreateReview(ctx, r); err != nil {
			if httperr.IsUniqueViolation(err) {
				return domain.ErrAlreadyReviewed
			}
			return err
		}

		ratings, err := tx.RatingsForMaster(ctx, in.MasterID)
		if err != nil {
			return err
		}

		if err := tx.SetMasterRating(ctx, in.MasterID, domain.Mean(ratings)); err != nil {
			return err
		}

		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, cache.MasterKey(in.MasterID)); err != nil {
		log.Warn().Err(err).Uint("master_id", in.MasterID).Msg("failed to invalidate master cache")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &created.ID,
		Metadata: map[string]any{"master_id": in.MasterID, "rating": in.Rating},
	})

	return created, nil
}
