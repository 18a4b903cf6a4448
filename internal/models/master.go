package models

import "time"

type Master struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PlaceName    string  `gorm:"size:150;not null" json:"place_name"`
	PhoneNumber1 string  `gorm:"column:phone_number_1;size:20;not null" json:"phone_number_1"`
	PhoneNumber2 *string `gorm:"column:phone_number_2;size:20" json:"phone_number_2"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Description  *string `gorm:"type:text" json:"description"`

	CategoryID uint     `gorm:"not null" json:"category_id"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ImageURL    *string `gorm:"size:512" json:"image_url"`
	IsAvailable bool    `gorm:"default:true;not null" json:"is_available"`
	Rating      float64 `gorm:"default:0;not null" json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
