package models

import "time"

// Payment is one payment attempt against an appointment's deposit. An
// appointment can accumulate several (e.g. an expired Vipps session followed
// by a successful card payment).
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	Provider string `gorm:"size:20;not null" json:"provider"` // stripe | vipps
	OrderRef string `gorm:"size:36;index" json:"order_ref"`

	// ProviderRef is the provider-side id (Stripe payment intent, Vipps
	// checkout session).
	ProviderRef string `gorm:"size:100" json:"provider_ref"`

	Amount   float64 `json:"amount"`
	Currency string  `gorm:"size:3;default:'NOK'" json:"currency"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
