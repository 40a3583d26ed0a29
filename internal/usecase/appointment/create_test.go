package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
)

func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		ServiceID:     1,
		StaffID:       1,
		Date:          "2026-03-12",
		Time:          "11:30",
		CustomerName:  "Anne Berg",
		CustomerEmail: "Anne.Berg@example.com",
		CustomerPhone: "+47 912 34 567",
	}
}

func newCreateUC(repo *fakeRepo) *CreateAppointment {
	uc := NewCreateAppointment(repo, nil, timezone.DefaultTimezone)
	// Pin the clock a week and a half before the booked Thursday.
	uc.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 0, 0, 0, timezone.Location(timezone.DefaultTimezone))
	}
	return uc
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	out, err := newCreateUC(repo).Execute(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	ap := out.Appointment
	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("new appointment status = %q, want pending", ap.Status)
	}
	if ap.PaymentStatus != string(domain.PaymentPending) {
		t.Fatalf("payment status = %q, want pending", ap.PaymentStatus)
	}
	if ap.OrderRef == "" {
		t.Fatal("order ref must be assigned at creation")
	}
	if ap.CustomerEmail != "anne.berg@example.com" {
		t.Fatalf("email not normalized: %q", ap.CustomerEmail)
	}

	// Occupied interval folds the 15+60+15 minute buffers in.
	if got := ap.EndTime.Sub(ap.StartTime); got != 90*time.Minute {
		t.Fatalf("occupied interval = %v, want 90m", got)
	}

	loc := timezone.Location(timezone.DefaultTimezone)
	wantStart := time.Date(2026, 3, 12, 11, 30, 0, 0, loc)
	if !ap.StartTime.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", ap.StartTime, wantStart)
	}

	if out.DepositAmount != 500 || out.Currency != "NOK" {
		t.Fatalf("deposit = %v %s, want 500 NOK", out.DepositAmount, out.Currency)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := newCreateUC(repo)

	cases := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		code   string
		field  string
	}{
		{"missing name", func(in *CreateAppointmentInput) { in.CustomerName = "  " }, "missing_field", "customer_name"},
		{"missing service", func(in *CreateAppointmentInput) { in.ServiceID = 0 }, "missing_field", "service_id"},
		{"missing staff", func(in *CreateAppointmentInput) { in.StaffID = 0 }, "missing_field", "staff_id"},
		{"bad email", func(in *CreateAppointmentInput) { in.CustomerEmail = "not-an-email" }, "invalid_email", "customer_email"},
		{"bad phone", func(in *CreateAppointmentInput) { in.CustomerPhone = "12345" }, "invalid_phone", "customer_phone"},
		{"bad time", func(in *CreateAppointmentInput) { in.Time = "25:99" }, "invalid_date_or_time", "date"},
		{"bad date", func(in *CreateAppointmentInput) { in.Date = "2026-13-40" }, "invalid_date_or_time", "date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			var be httperr.BusinessError
			if !asBusiness(err, &be) || be.Code != tc.code || be.Field != tc.field {
				t.Fatalf("got %v, want %s on %s", err, tc.code, tc.field)
			}
		})
	}
}

func TestCreateAppointmentRejectsPastStart(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := newCreateUC(repo)

	in := validInput()
	in.Date = "2026-02-26" // a Thursday before the pinned clock

	_, err := uc.Execute(context.Background(), in)
	var be httperr.BusinessError
	if !asBusiness(err, &be) || be.Code != "start_in_past" || be.Field != "date" {
		t.Fatalf("got %v, want start_in_past on date", err)
	}
	if len(repo.appointments) != 0 {
		t.Fatalf("past booking must not be stored, got %d", len(repo.appointments))
	}
}

func TestCreateAppointmentUnknownServiceAndStaff(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := newCreateUC(repo)

	in := validInput()
	in.ServiceID = 42
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}

	in = validInput()
	in.StaffID = 42
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "staff_not_found") {
		t.Fatalf("expected staff_not_found, got %v", err)
	}
}

// Two identical bookings must end as exactly one pending appointment and
// one time_conflict, regardless of interleaving.
func TestCreateAppointmentDoubleBooking(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := newCreateUC(repo)

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatal(err)
	}
	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}
	if n := len(repo.appointments); n != 1 {
		t.Fatalf("expected exactly one stored appointment, got %d", n)
	}
}

func TestCreateAppointmentOverlapNotJustEqual(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := newCreateUC(repo)

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatal(err)
	}

	// 12:00 starts inside the 11:30-13:00 occupied interval.
	in := validInput()
	in.Time = "12:00"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict for overlap, got %v", err)
	}

	// 13:00 is the first start that only touches the boundary.
	in = validInput()
	in.Time = "13:00"
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("back-to-back booking must succeed, got %v", err)
	}
}

func TestCreateAppointmentConcurrentRace(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	uc := newCreateUC(repo)

	const racers = 8
	errs := make([]error, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validInput())
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case httperr.IsBusiness(err, "time_conflict"):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("%d bookings won the race, want exactly 1", won)
	}
	if n := len(repo.appointments); n != 1 {
		t.Fatalf("expected one stored appointment, got %d", n)
	}
}

func asBusiness(err error, be *httperr.BusinessError) bool {
	if err == nil {
		return false
	}
	b, ok := err.(httperr.BusinessError)
	if !ok {
		return false
	}
	*be = b
	return true
}
