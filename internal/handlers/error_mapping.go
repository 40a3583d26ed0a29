package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
)

// User-facing messages are Norwegian; error codes stay machine-readable.
var businessMessages = map[string]string{
	"missing_field":             "Påkrevd felt mangler.",
	"invalid_email":             "Ugyldig e-postadresse.",
	"invalid_phone":             "Ugyldig telefonnummer.",
	"invalid_date_or_time":      "Ugyldig dato eller klokkeslett.",
	"start_in_past":             "Tidspunktet er allerede passert.",
	"invalid_status":            "Ugyldig status.",
	"service_not_found":         "Tjenesten ble ikke funnet.",
	"staff_not_found":           "Stylisten ble ikke funnet.",
	"appointment_not_found":     "Avtalen ble ikke funnet.",
	"payment_not_found":         "Betalingen ble ikke funnet.",
	"time_conflict":             "Tidspunktet er dessverre ikke lenger ledig.",
	"invalid_status_transition": "Avtalen kan ikke endres til denne statusen.",
}

func messageFor(code string) string {
	if msg, ok := businessMessages[code]; ok {
		return msg
	}
	return "Noe gikk galt."
}

// writeBusinessError translates a use case error into the matching HTTP
// response. Unknown errors become a generic 500 without leaking detail.
func writeBusinessError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Noe gikk galt.")
		return
	}

	msg := messageFor(be.Code)
	switch be.Code {
	case "missing_field", "invalid_email", "invalid_phone", "invalid_date_or_time",
		"invalid_status", "start_in_past":
		httperr.Validation(c, be.Code, be.Field, msg)
	case "service_not_found", "staff_not_found", "appointment_not_found", "payment_not_found":
		httperr.NotFound(c, be.Code, msg)
	case "time_conflict", "invalid_status_transition":
		httperr.Conflict(c, be.Code, msg)
	default:
		httperr.BadRequest(c, be.Code, msg)
	}
}
