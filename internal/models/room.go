package models

import "time"

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MasterID uint   `gorm:"index;not null" json:"master_id"`
	Master   Master `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	RoomNumber  string  `gorm:"size:50;not null" json:"room_number"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    *string `gorm:"size:512" json:"image_url"`
	IsAvailable bool    `gorm:"default:true;not null" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
