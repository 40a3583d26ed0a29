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

// UpdateStatus moves an appointment to an explicit target status on behalf
// of an admin. Every move goes through the lifecycle rules, so a terminal
// appointment can never be revived here either.
type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewUpdateStatus(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	tz string,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: auditDisp,
		tz:    tz,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
	target string,
) (*models.Appointment, error) {

	status := domain.Status(strings.ToLower(strings.TrimSpace(target)))
	if !domain.IsValidStatus(status) {
		return nil, httperr.ErrValidation("invalid_status", "status")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	now := timezone.NowIn(uc.tz)
	if err := domain.Transition(ap, status, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   ap.Status,
		},
	})

	return ap, nil
}
