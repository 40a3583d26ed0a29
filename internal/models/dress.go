package models

import "time"

// Dress is a lookbook item shown on the public site.
type Dress struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Designer string `gorm:"size:100" json:"designer"`
	Category string `gorm:"size:50" json:"category"`

	ImageURL string `gorm:"size:255" json:"image_url"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
