package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:1000" json:"description"`

	DurationMin  int `json:"duration_min"`
	BufferBefore int `gorm:"default:0" json:"buffer_before"`
	BufferAfter  int `gorm:"default:0" json:"buffer_after"`

	Price    float64 `json:"price"`
	Deposit  float64 `json:"deposit"`
	Currency string  `gorm:"size:3;default:'NOK'" json:"currency"`

	Category string `gorm:"size:50" json:"category"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OccupiedMinutes is the interval a booking of this service blocks on the
// calendar: the service itself plus its pre/post buffers.
func (s *Service) OccupiedMinutes() int {
	return s.BufferBefore + s.DurationMin + s.BufferAfter
}

func (s *Service) OccupiedDuration() time.Duration {
	return time.Duration(s.OccupiedMinutes()) * time.Minute
}
