package appointment

import (
	"context"
	"time"

	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Staff --------
	GetActiveStaff(
		ctx context.Context,
		id uint,
	) (*models.Staff, error)

	ListActiveStaff(
		ctx context.Context,
	) ([]models.Staff, error)

	// -------- Availability inputs --------
	ListRulesForWeekday(
		ctx context.Context,
		staffID uint,
		weekday int,
	) ([]models.AvailabilityRule, error)

	// ListBlackoutsOverlapping returns staff-scoped and salon-wide blackouts
	// intersecting [start, end).
	ListBlackoutsOverlapping(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Blackout, error)

	// ListBlockingAppointments returns the staff member's pending/confirmed
	// appointments intersecting [start, end).
	ListBlockingAppointments(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointmentIfFree re-checks the overlap against current
	// pending/confirmed appointments for the staff member and inserts only
	// if free, as one atomic unit per staff member. A lost race surfaces as
	// the time_conflict business error.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change / lookup) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByOrderRef(
		ctx context.Context,
		orderRef string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		staffID uint, // 0 = every staff member
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Payment records --------
	SavePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPaymentByOrderRef(
		ctx context.Context,
		orderRef string,
	) (*models.Payment, error)
}
