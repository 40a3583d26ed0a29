package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
)

// 2026-03-12 is a Thursday.
var thursday = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

func hm(h, m int) time.Time {
	return thursday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func uintPtr(v uint) *uint { return &v }

// seedSalon sets up one 90-minute-occupancy service and one stylist working
// Thursdays 10:00-18:00.
func seedSalon(repo *fakeRepo) {
	repo.services[1] = &models.Service{
		ID:           1,
		Name:         "Bridal gown fitting",
		DurationMin:  60,
		BufferBefore: 15,
		BufferAfter:  15,
		Deposit:      500,
		Currency:     "NOK",
		Active:       true,
	}
	repo.staff[1] = &models.Staff{ID: 1, Name: "Kari", Active: true}
	repo.rules = append(repo.rules, models.AvailabilityRule{
		ID:        1,
		StaffID:   uintPtr(1),
		Weekday:   int(time.Thursday),
		StartTime: "10:00",
		EndTime:   "18:00",
	})
}

func TestGetAvailabilityThursday(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	// One blackout and one confirmed fitting on the day.
	repo.blackouts = append(repo.blackouts, models.Blackout{
		ID:      1,
		StaffID: uintPtr(1),
		Start:   hm(13, 0),
		End:     hm(14, 0),
	})
	repo.appointments[99] = &models.Appointment{
		ID:        99,
		StaffID:   1,
		StartTime: hm(10, 0),
		EndTime:   hm(11, 30),
		Status:    string(domain.StatusConfirmed),
	}
	repo.nextID = 100

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      thursday,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []time.Time{hm(11, 30), hm(14, 0), hm(15, 30), hm(16, 30)}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots %v, want %d", len(slots), slots, len(want))
	}
	for i, w := range want {
		if !slots[i].Start.Equal(w) {
			t.Fatalf("slot %d starts %s, want %s",
				i, slots[i].Start.Format("15:04"), w.Format("15:04"))
		}
		if !slots[i].End.Equal(w.Add(90 * time.Minute)) {
			t.Fatalf("slot %d ends %s, want %s",
				i, slots[i].End.Format("15:04"), w.Add(90*time.Minute).Format("15:04"))
		}
		if slots[i].StaffID != 1 || slots[i].StaffName != "Kari" {
			t.Fatalf("slot %d attributed to %d/%q", i, slots[i].StaffID, slots[i].StaffName)
		}
	}
}

func TestGetAvailabilityPendingBlocksToo(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	repo.appointments[1] = &models.Appointment{
		ID:        1,
		StaffID:   1,
		StartTime: hm(10, 0),
		EndTime:   hm(11, 30),
		Status:    string(domain.StatusPending),
	}
	repo.nextID = 2

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      thursday,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) == 0 || !slots[0].Start.Equal(hm(11, 30)) {
		t.Fatalf("pending appointment must block 10:00, got %v", slots)
	}
}

func TestGetAvailabilityCancelledFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	repo.appointments[1] = &models.Appointment{
		ID:        1,
		StaffID:   1,
		StartTime: hm(10, 0),
		EndTime:   hm(11, 30),
		Status:    string(domain.StatusCancelled),
	}
	repo.nextID = 2

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      thursday,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) == 0 || !slots[0].Start.Equal(hm(10, 0)) {
		t.Fatalf("cancelled appointment must free 10:00, got %v", slots)
	}
}

func TestGetAvailabilitySalonWideBlackout(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	// No StaffID: the whole salon is closed.
	repo.blackouts = append(repo.blackouts, models.Blackout{
		ID:    1,
		Start: hm(0, 0),
		End:   hm(23, 59),
	})

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      thursday,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots during salon-wide blackout, got %v", slots)
	}
}

func TestGetAvailabilityIgnoresRoomScopedRules(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	repo.rules = nil

	// A rule without a stylist describes a fitting room, not a person;
	// it must never make a stylist bookable.
	repo.rules = append(repo.rules, models.AvailabilityRule{
		ID:        1,
		Weekday:   int(time.Thursday),
		StartTime: "10:00",
		EndTime:   "12:00",
	})

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      thursday,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Fatalf("room-scoped rule produced %d staff slots, want 0: %v", len(slots), slots)
	}
}

func TestGetAvailabilityNoRulesIsEmptyNotError(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	monday := thursday.AddDate(0, 0, 4)
	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      monday,
	})
	if err != nil {
		t.Fatal(err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("day without rules must be an empty list, got %v", slots)
	}
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	uc := NewGetAvailability(repo)
	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 42,
		Date:      thursday,
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}

func TestGetAvailabilityInactiveStaff(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	repo.staff[1].Active = false

	uc := NewGetAvailability(repo)
	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		StaffID:   1,
		Date:      thursday,
	})
	if !httperr.IsBusiness(err, "staff_not_found") {
		t.Fatalf("expected staff_not_found, got %v", err)
	}

	// Without an explicit stylist the inactive one is simply skipped.
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      thursday,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Fatalf("inactive stylist must contribute no slots, got %v", slots)
	}
}

func TestGetAvailabilityMergesStylists(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	repo.staff[2] = &models.Staff{ID: 2, Name: "Ingrid", Active: true}
	repo.rules = append(repo.rules, models.AvailabilityRule{
		ID:        2,
		StaffID:   uintPtr(2),
		Weekday:   int(time.Thursday),
		StartTime: "10:00",
		EndTime:   "13:00",
	})

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ServiceID: 1,
		Date:      thursday,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Both stylists offer 10:00; ties order by staff id.
	if len(slots) < 2 {
		t.Fatalf("expected slots from both stylists, got %v", slots)
	}
	if !slots[0].Start.Equal(hm(10, 0)) || slots[0].StaffID != 1 {
		t.Fatalf("first slot = %v/%d, want 10:00/staff 1", slots[0].Start, slots[0].StaffID)
	}
	if !slots[1].Start.Equal(hm(10, 0)) || slots[1].StaffID != 2 {
		t.Fatalf("second slot = %v/%d, want 10:00/staff 2", slots[1].Start, slots[1].StaffID)
	}
}
