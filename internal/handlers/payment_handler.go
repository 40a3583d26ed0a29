package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/payments/vipps"
	ucAppointment "github.com/kristins-brudesalong/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	repo  domain.Repository
	vipps *vipps.Client

	applyEventUC *ucAppointment.ApplyPaymentEvent
}

func NewPaymentHandler(
	repo domain.Repository,
	vippsClient *vipps.Client,
	applyEventUC *ucAppointment.ApplyPaymentEvent,
) *PaymentHandler {
	return &PaymentHandler{
		repo:         repo,
		vipps:        vippsClient,
		applyEventUC: applyEventUC,
	}
}

// ======================================================
// STRIPE — PAYMENT INTENT
// ======================================================

// CreateStripeIntent opens a payment intent for the appointment's deposit
// and hands the client secret back to the frontend.
func (h *PaymentHandler) CreateStripeIntent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig avtale-ID.")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), uint(id))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	if ap.Status != string(domain.StatusPending) {
		httperr.Conflict(c, "invalid_status_transition", messageFor("invalid_status_transition"))
		return
	}

	deposit := ap.Service.Deposit
	if deposit <= 0 {
		httperr.BadRequest(c, "no_deposit_required", "Denne tjenesten krever ikke depositum.")
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(deposit * 100))),
		Currency: stripe.String(strings.ToLower(ap.Service.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_ref", ap.OrderRef)
	params.AddMetadata("appointment_id", strconv.FormatUint(uint64(ap.ID), 10))

	pi, err := paymentintent.New(params)
	if err != nil {
		httperr.Internal(c, "stripe_error", "Kunne ikke starte betalingen.")
		return
	}

	if err := h.repo.SavePayment(c.Request.Context(), &models.Payment{
		AppointmentID: ap.ID,
		Provider:      "stripe",
		OrderRef:      ap.OrderRef,
		ProviderRef:   pi.ID,
		Amount:        deposit,
		Currency:      ap.Service.Currency,
		Status:        string(domain.PaymentPending),
	}); err != nil {
		httperr.Internal(c, "payment_record_failed", "Kunne ikke registrere betalingen.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client_secret": pi.ClientSecret,
		"amount":        deposit,
		"currency":      ap.Service.Currency,
	})
}

// ======================================================
// VIPPS — CHECKOUT SESSION
// ======================================================

type VippsSessionRequest struct {
	ReturnURL string `json:"return_url" binding:"required"`
}

func (h *PaymentHandler) CreateVippsSession(c *gin.Context) {
	if h.vipps == nil || !h.vipps.Configured() {
		httperr.Write(c, http.StatusServiceUnavailable, "vipps_not_configured", "Vipps er ikke tilgjengelig.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Ugyldig avtale-ID.")
		return
	}

	var req VippsSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Ugyldige data.")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), uint(id))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	if ap.Status != string(domain.StatusPending) {
		httperr.Conflict(c, "invalid_status_transition", messageFor("invalid_status_transition"))
		return
	}

	deposit := ap.Service.Deposit
	if deposit <= 0 {
		httperr.BadRequest(c, "no_deposit_required", "Denne tjenesten krever ikke depositum.")
		return
	}

	sess, err := h.vipps.CreateCheckoutSession(c.Request.Context(), vipps.CheckoutInput{
		OrderRef:    ap.OrderRef,
		Amount:      deposit,
		Currency:    ap.Service.Currency,
		Description: "Depositum: " + ap.Service.Name,
		ReturnURL:   req.ReturnURL,
	})
	if err != nil {
		httperr.Internal(c, "vipps_error", "Kunne ikke starte betalingen.")
		return
	}

	if err := h.repo.SavePayment(c.Request.Context(), &models.Payment{
		AppointmentID: ap.ID,
		Provider:      "vipps",
		OrderRef:      ap.OrderRef,
		ProviderRef:   sess.SessionID,
		Amount:        deposit,
		Currency:      ap.Service.Currency,
		Status:        string(domain.PaymentPending),
	}); err != nil {
		httperr.Internal(c, "payment_record_failed", "Kunne ikke registrere betalingen.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"checkout_url": sess.URL,
		"session_id":   sess.SessionID,
	})
}

// VippsCallback is hit when the customer returns from Vipps checkout. The
// session state is polled server-side; the redirect itself proves nothing.
func (h *PaymentHandler) VippsCallback(c *gin.Context) {
	if h.vipps == nil || !h.vipps.Configured() {
		httperr.Write(c, http.StatusServiceUnavailable, "vipps_not_configured", "Vipps er ikke tilgjengelig.")
		return
	}

	orderRef := strings.TrimSpace(c.Query("order_ref"))
	if orderRef == "" {
		httperr.BadRequest(c, "missing_params", "Ordre-referanse er påkrevd.")
		return
	}

	state, err := h.vipps.GetSessionState(c.Request.Context(), orderRef)
	if err != nil {
		httperr.Internal(c, "vipps_error", "Kunne ikke hente betalingsstatus.")
		return
	}

	ev, ok := vipps.EventForState(state)
	if !ok {
		// Payment still in flight; nothing to apply yet.
		c.JSON(http.StatusOK, gin.H{"state": state, "settled": false})
		return
	}

	ap, err := h.applyEventUC.ExecuteByOrderRef(c.Request.Context(), orderRef, ev)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":       state,
		"settled":     true,
		"appointment": ap,
	})
}
