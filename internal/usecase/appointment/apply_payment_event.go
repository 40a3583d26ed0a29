package appointment

import (
	"context"

	"github.com/kristins-brudesalong/salon-scheduler/internal/audit"
	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
)

// ApplyPaymentEvent settles an appointment from a payment outcome reported
// by Stripe or Vipps. Providers redeliver events, so a replay whose target
// matches the current status is acknowledged without touching the record.
type ApplyPaymentEvent struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewApplyPaymentEvent(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	tz string,
) *ApplyPaymentEvent {
	return &ApplyPaymentEvent{
		repo:  repo,
		audit: auditDisp,
		tz:    tz,
	}
}

func (uc *ApplyPaymentEvent) ExecuteByID(
	ctx context.Context,
	appointmentID uint,
	ev domain.PaymentEvent,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, ap, ev)
}

func (uc *ApplyPaymentEvent) ExecuteByOrderRef(
	ctx context.Context,
	orderRef string,
	ev domain.PaymentEvent,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByOrderRef(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, ap, ev)
}

func (uc *ApplyPaymentEvent) apply(
	ctx context.Context,
	ap *models.Appointment,
	ev domain.PaymentEvent,
) (*models.Appointment, error) {

	if string(eventTarget(ev)) == ap.Status {
		return ap, nil // redelivery, already settled
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.ApplyPaymentEvent(ap, ev, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Keep the payment record in step. A missing record is not an error:
	// the appointment may predate the payment flow.
	p, err := uc.repo.GetPaymentByOrderRef(ctx, ap.OrderRef)
	if err == nil {
		p.Status = ap.PaymentStatus
		if err := uc.repo.SavePayment(ctx, p); err != nil {
			return nil, err
		}
	} else if !httperr.IsBusiness(err, "payment_not_found") {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   string(ev),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"status":         ap.Status,
			"payment_status": ap.PaymentStatus,
		},
	})

	return ap, nil
}

func eventTarget(ev domain.PaymentEvent) domain.Status {
	switch ev {
	case domain.PaymentSucceeded:
		return domain.StatusConfirmed
	case domain.PaymentEventFailed:
		return domain.StatusFailed
	default: // cancelled, expired
		return domain.StatusCancelled
	}
}
