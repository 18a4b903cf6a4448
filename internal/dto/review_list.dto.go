package dto

import "time"

type ReviewListDTO struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	MasterID  uint      `json:"master_id"`
	OrderID   uint      `json:"order_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	FirstName string    `json:"first_name"`
	LastName  *string   `json:"last_name"`
}
