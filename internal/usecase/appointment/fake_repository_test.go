package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
)

// fakeRepo is an in-memory Repository. CreateAppointmentIfFree serializes
// the conflict re-check and insert under a mutex, mirroring the row-lock
// behavior of the real implementation.
type fakeRepo struct {
	mu sync.Mutex

	services     map[uint]*models.Service
	staff        map[uint]*models.Staff
	rules        []models.AvailabilityRule
	blackouts    []models.Blackout
	appointments map[uint]*models.Appointment
	payments     map[string]*models.Payment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		staff:        map[uint]*models.Staff{},
		appointments: map[uint]*models.Appointment{},
		payments:     map[string]*models.Payment{},
		nextID:       1,
	}
}

func (r *fakeRepo) GetActiveService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	cp := *svc
	return &cp, nil
}

func (r *fakeRepo) GetActiveStaff(_ context.Context, id uint) (*models.Staff, error) {
	st, ok := r.staff[id]
	if !ok || !st.Active {
		return nil, httperr.ErrBusiness("staff_not_found")
	}
	cp := *st
	return &cp, nil
}

func (r *fakeRepo) ListActiveStaff(_ context.Context) ([]models.Staff, error) {
	out := []models.Staff{}
	for _, st := range r.staff {
		if st.Active {
			out = append(out, *st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) ListRulesForWeekday(_ context.Context, staffID uint, weekday int) ([]models.AvailabilityRule, error) {
	out := []models.AvailabilityRule{}
	for _, rule := range r.rules {
		if rule.Weekday != weekday {
			continue
		}
		if rule.StaffID == nil || *rule.StaffID != staffID {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

func (r *fakeRepo) ListBlackoutsOverlapping(_ context.Context, staffID uint, start, end time.Time) ([]models.Blackout, error) {
	out := []models.Blackout{}
	for _, b := range r.blackouts {
		if b.StaffID != nil && *b.StaffID != staffID {
			continue
		}
		if b.Start.Before(end) && start.Before(b.End) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBlockingAppointments(_ context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.StaffID != staffID || !domain.Status(ap.Status).Blocks() {
			continue
		}
		if ap.StartTime.Before(end) && start.Before(ap.EndTime) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.appointments {
		if other.StaffID != ap.StaffID || !domain.Status(other.Status).Blocks() {
			continue
		}
		if other.StartTime.Before(ap.EndTime) && ap.StartTime.Before(other.EndTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	ap.ID = r.nextID
	r.nextID++
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) GetAppointmentByOrderRef(_ context.Context, orderRef string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.OrderRef == orderRef {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for id := uint(1); id < r.nextID; id++ {
		ap, ok := r.appointments[id]
		if !ok {
			continue
		}
		if staffID != 0 && ap.StaffID != staffID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) SavePayment(_ context.Context, p *models.Payment) error {
	cp := *p
	r.payments[p.OrderRef] = &cp
	return nil
}

func (r *fakeRepo) GetPaymentByOrderRef(_ context.Context, orderRef string) (*models.Payment, error) {
	p, ok := r.payments[orderRef]
	if !ok {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	cp := *p
	return &cp, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
