package dto

import "time"

// OrderListDTO is one row of GET /orders. Customer fields are filled for a
// master's listing, master fields for a customer's listing.
type OrderListDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	MasterID    uint      `json:"master_id"`
	RoomID      *uint     `json:"room_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	RoomNumber  *string   `json:"room_number"`

	UserFirstName *string `json:"user_first_name,omitempty"`
	UserLastName  *string `json:"user_last_name,omitempty"`

	MasterFirstName *string `json:"master_first_name,omitempty"`
	MasterLastName  *string `json:"master_last_name,omitempty"`
	PlaceName       *string `json:"place_name,omitempty"`
}
