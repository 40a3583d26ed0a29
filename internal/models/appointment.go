package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StaffID uint  `gorm:"index:idx_appointments_staff_start" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	StartTime time.Time `gorm:"index:idx_appointments_staff_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	// OrderRef is the payment-provider order identifier (uuid, assigned at
	// creation so both providers share one reference).
	OrderRef string `gorm:"size:36;uniqueIndex" json:"order_ref"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;index" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	PreferredStyle string `gorm:"size:200" json:"preferred_style"`
	Notes          string `gorm:"size:1000" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	PaymentDate *time.Time `json:"payment_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
