package appointment

import (
	"time"

	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves an appointment to target, stamping the matching
// timestamp. The record is untouched when the move is illegal.
func Transition(ap *models.Appointment, target Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), target); err != nil {
		return err
	}

	ap.Status = string(target)
	switch target {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted, StatusNoShow:
		ap.CompletedAt = &now
	}
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusNoShow, now)
}

// ===============================
// Payment Events
// ===============================

// PaymentEvent is a provider-neutral payment outcome; the Stripe and Vipps
// handlers translate their wire events into one of these.
type PaymentEvent string

const (
	PaymentSucceeded      PaymentEvent = "payment_succeeded"
	PaymentEventFailed    PaymentEvent = "payment_failed"
	PaymentEventCancelled PaymentEvent = "payment_cancelled"
	PaymentEventExpired   PaymentEvent = "payment_expired"
)

// ApplyPaymentEvent drives the lifecycle from a payment outcome and keeps
// the payment status in step with it.
func ApplyPaymentEvent(ap *models.Appointment, ev PaymentEvent, now time.Time) error {
	switch ev {
	case PaymentSucceeded:
		if err := Transition(ap, StatusConfirmed, now); err != nil {
			return err
		}
		ap.PaymentStatus = string(PaymentPaid)
		ap.PaymentDate = &now
	case PaymentEventFailed:
		if err := Transition(ap, StatusFailed, now); err != nil {
			return err
		}
		ap.PaymentStatus = string(PaymentFailed)
	case PaymentEventCancelled:
		if err := Transition(ap, StatusCancelled, now); err != nil {
			return err
		}
		ap.PaymentStatus = string(PaymentCancelled)
	case PaymentEventExpired:
		if err := Transition(ap, StatusCancelled, now); err != nil {
			return err
		}
		ap.PaymentStatus = string(PaymentExpired)
	}
	return nil
}
