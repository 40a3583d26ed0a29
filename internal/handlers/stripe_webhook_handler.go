package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	stripeEvents "github.com/kristins-brudesalong/salon-scheduler/internal/payments/stripe"
	ucAppointment "github.com/kristins-brudesalong/salon-scheduler/internal/usecase/appointment"
)

// StripeWebhookHandler receives payment intent events. There is no JWT on
// this route; the signature check is the authentication.
type StripeWebhookHandler struct {
	webhookSecret string
	applyEventUC  *ucAppointment.ApplyPaymentEvent
}

func NewStripeWebhookHandler(
	webhookSecret string,
	applyEventUC *ucAppointment.ApplyPaymentEvent,
) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		webhookSecret: webhookSecret,
		applyEventUC:  applyEventUC,
	}
}

func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	if strings.TrimSpace(h.webhookSecret) == "" {
		httperr.Write(c, http.StatusServiceUnavailable, "stripe_not_configured", "Stripe er ikke konfigurert.")
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if strings.TrimSpace(sig) == "" {
		httperr.BadRequest(c, "missing_signature", "Mangler Stripe-signatur.")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "Kunne ikke lese forespørselen.")
		return
	}

	evt, err := webhook.ConstructEvent(body, sig, h.webhookSecret)
	if err != nil {
		httperr.BadRequest(c, "invalid_signature", "Ugyldig Stripe-signatur.")
		return
	}

	ev, ok := stripeEvents.EventFor(string(evt.Type))
	if !ok {
		// Unrelated event type; acknowledge so Stripe stops retrying.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(evt.Data.Raw, &pi); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Ugyldig hendelse.")
		return
	}

	orderRef := strings.TrimSpace(pi.Metadata["order_ref"])
	if orderRef == "" {
		log.Printf("stripe webhook: event %s without order_ref metadata", evt.ID)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if _, err := h.applyEventUC.ExecuteByOrderRef(c.Request.Context(), orderRef, ev); err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") ||
			httperr.IsBusiness(err, "invalid_status_transition") {
			// The intent references a booking we no longer have, or one
			// already moved to a terminal state (say, cancelled by an admin
			// before the event landed); retrying will not change that.
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
