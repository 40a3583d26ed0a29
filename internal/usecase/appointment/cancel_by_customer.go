package appointment

import (
	"context"
	"strings"

	"github.com/kristins-brudesalong/salon-scheduler/internal/audit"
	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
)

// CancelByCustomer cancels an appointment from the public site. The caller
// must present the email the appointment was booked with; a mismatch is
// reported as not found so the endpoint leaks nothing about other bookings.
type CancelByCustomer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCancelByCustomer(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	tz string,
) *CancelByCustomer {
	return &CancelByCustomer{
		repo:  repo,
		audit: auditDisp,
		tz:    tz,
	}
}

func (uc *CancelByCustomer) Execute(
	ctx context.Context,
	appointmentID uint,
	customerEmail string,
) (*models.Appointment, error) {

	email := strings.ToLower(strings.TrimSpace(customerEmail))
	if email == "" {
		return nil, httperr.ErrValidation("missing_field", "customer_email")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.CustomerEmail != email {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled_by_customer",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
