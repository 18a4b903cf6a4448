package order

import (
	"errors"

	"github.com/BruksfildServices01/room-booking/internal/httperr"
)

// Repositories return these when the requested row does not exist.
var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrMasterProfileNotFound = errors.New("master profile not found")
)

var (
	ErrRoomNotAvailable = httperr.ErrValidation("room_not_available", "This room is not available for booking.")
	ErrRoomMismatch     = httperr.ErrValidation("room_master_mismatch", "This room does not belong to the selected master.")
	ErrNotFound         = httperr.ErrNotFound("order_not_found", "Order not found.")
	ErrForbidden        = httperr.ErrForbidden("order_forbidden", "Not authorized to update this order.")
	ErrMasterNotFound   = httperr.ErrNotFound("master_profile_not_found", "Master profile not found.")
)
