package models

import "time"

// Blackout is a one-off unavailable interval (vacation, closure, reserved
// slot). A NULL StaffID is a salon-wide closure and blocks everyone.
type Blackout struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID *uint `gorm:"index:idx_blackouts_staff_window" json:"staff_id"`
	RoomID  *uint `json:"room_id"`

	Start time.Time `gorm:"index:idx_blackouts_staff_window;not null" json:"start"`
	End   time.Time `gorm:"not null" json:"end"`

	Reason string `gorm:"size:200" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
