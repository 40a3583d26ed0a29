package appointment

import "time"

type AvailabilityInput struct {
	ServiceID uint
	StaffID   uint // 0 = every active stylist
	Date      time.Time
}

type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	StaffID   uint      `json:"staff_id"`
	StaffName string    `json:"staff_name"`
}
