package models

import "time"

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	Role string `gorm:"size:20;default:'stylist'" json:"role"`
	Bio  string `gorm:"size:500" json:"bio"`

	ProfileImageURL string `gorm:"size:255" json:"profile_image_url"`
	CalendarColor   string `gorm:"size:7;default:'#D4AF37'" json:"calendar_color"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
