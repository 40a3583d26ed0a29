package stripe

import (
	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
)

// EventFor maps a Stripe webhook event type to a payment event. Event types
// outside the payment intent lifecycle map to no event and are acknowledged
// without side effects.
func EventFor(eventType string) (domain.PaymentEvent, bool) {
	switch eventType {
	case "payment_intent.succeeded":
		return domain.PaymentSucceeded, true
	case "payment_intent.payment_failed":
		return domain.PaymentEventFailed, true
	case "payment_intent.canceled":
		return domain.PaymentEventCancelled, true
	default:
		return "", false
	}
}
