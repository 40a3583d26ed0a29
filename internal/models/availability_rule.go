package models

import "time"

// AvailabilityRule is a recurring weekly template: on this weekday the staff
// member is bookable between StartTime and EndTime (wall clock, salon
// timezone). A NULL StaffID scopes the rule to a fitting room instead of a
// person; slot expansion only consumes staff-scoped rules.
type AvailabilityRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID *uint `gorm:"index:idx_rules_staff_weekday" json:"staff_id"`
	RoomID  *uint `json:"room_id"`

	Weekday   int    `gorm:"index:idx_rules_staff_weekday" json:"weekday"` // 0 = Sunday
	StartTime string `gorm:"size:5;not null" json:"start_time"`            // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Capacity int `gorm:"default:1" json:"capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
