package dto

import "time"

// MasterDTO is the public view of a master joined with its account name.
type MasterDTO struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     *string   `json:"last_name"`
	PlaceName    string    `json:"place_name"`
	PhoneNumber1 string    `gorm:"column:phone_number_1" json:"phone_number_1"`
	PhoneNumber2 *string   `gorm:"column:phone_number_2" json:"phone_number_2"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Description  *string   `json:"description"`
	CategoryID   uint      `json:"category_id"`
	ImageURL     *string   `json:"image_url"`
	IsAvailable  bool      `json:"is_available"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}
