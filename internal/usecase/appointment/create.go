package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kristins-brudesalong/salon-scheduler/internal/audit"
	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
	"github.com/kristins-brudesalong/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID uint
	StaffID   uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	PreferredStyle string
	Notes          string
}

type CreateAppointmentOutput struct {
	Appointment   *models.Appointment
	DepositAmount float64
	Currency      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	location *time.Location

	// now is swappable so tests can pin the clock.
	now func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    auditDisp,
		location: timezone.Location(tz),
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentOutput, error) {

	// 1. Input validation, naming the offending field.
	if err := uc.validate(&in); err != nil {
		return nil, err
	}

	// 2. Service and stylist must exist and be active.
	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetActiveStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	// 3. Requested interval in the salon timezone. The occupied interval
	// folds the service buffers in, so conflicts account for setup and
	// cleanup time.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		uc.location,
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "date")
	}
	if start.Before(uc.now().In(uc.location)) {
		return nil, httperr.ErrValidation("start_in_past", "date")
	}
	end := start.Add(svc.OccupiedDuration())

	// 4 + 5. Conflict re-check and insert run atomically per stylist in
	// the repository; availability shown earlier may already be stale.
	ap := &models.Appointment{
		ServiceID:      svc.ID,
		StaffID:        staff.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.StatusPending),
		PaymentStatus:  string(domain.PaymentPending),
		OrderRef:       uuid.NewString(),
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerEmail:  strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
		PreferredStyle: strings.TrimSpace(in.PreferredStyle),
		Notes:          strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"staff_id": ap.StaffID,
			"start":    ap.StartTime,
			"end":      ap.EndTime,
		},
	})

	return &CreateAppointmentOutput{
		Appointment:   ap,
		DepositAmount: svc.Deposit,
		Currency:      svc.Currency,
	}, nil
}

func (uc *CreateAppointment) validate(in *CreateAppointmentInput) error {
	required := []struct {
		field string
		value string
	}{
		{"date", in.Date},
		{"time", in.Time},
		{"customer_name", in.CustomerName},
		{"customer_email", in.CustomerEmail},
		{"customer_phone", in.CustomerPhone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return httperr.ErrValidation("missing_field", f.field)
		}
	}
	if in.ServiceID == 0 {
		return httperr.ErrValidation("missing_field", "service_id")
	}
	if in.StaffID == 0 {
		return httperr.ErrValidation("missing_field", "staff_id")
	}

	if !validators.IsEmailValid(strings.TrimSpace(in.CustomerEmail)) {
		return httperr.ErrValidation("invalid_email", "customer_email")
	}
	if !validators.IsPhoneValid(strings.TrimSpace(in.CustomerPhone)) {
		return httperr.ErrValidation("invalid_phone", "customer_phone")
	}
	return nil
}
