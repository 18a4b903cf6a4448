package review

import (
	"errors"

	"github.com/BruksfildServices01/room-booking/internal/httperr"
)

var (
	ErrOrderNotReviewable = errors.New("order not reviewable")
	ErrMasterNotFound     = errors.New("master not found")
)

var (
	ErrNotReviewable   = httperr.ErrForbidden("order_not_reviewable", "You can only review a completed order.")
	ErrAlreadyReviewed = httperr.ErrConflict("already_reviewed", "You have already reviewed this order.")
)
