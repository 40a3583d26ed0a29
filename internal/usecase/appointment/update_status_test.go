package appointment

import (
	"context"
	"testing"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
)

func seedAppointment(repo *fakeRepo, status domain.Status) *models.Appointment {
	ap := &models.Appointment{
		ID:            repo.nextID,
		ServiceID:     1,
		StaffID:       1,
		StartTime:     hm(11, 30),
		EndTime:       hm(13, 0),
		Status:        string(status),
		PaymentStatus: string(domain.PaymentPending),
		OrderRef:      "ref-1",
		CustomerEmail: "anne.berg@example.com",
	}
	repo.appointments[ap.ID] = ap
	repo.nextID++
	return ap
}

func TestUpdateStatusConfirmThenComplete(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedAppointment(repo, domain.StatusPending)

	uc := NewUpdateStatus(repo, nil, timezone.DefaultTimezone)

	got, err := uc.Execute(context.Background(), 7, ap.ID, "confirmed")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != string(domain.StatusConfirmed) || got.ConfirmedAt == nil {
		t.Fatalf("confirm left %q / ConfirmedAt=%v", got.Status, got.ConfirmedAt)
	}

	got, err = uc.Execute(context.Background(), 7, ap.ID, "completed")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != string(domain.StatusCompleted) || got.CompletedAt == nil {
		t.Fatalf("complete left %q / CompletedAt=%v", got.Status, got.CompletedAt)
	}
}

func TestUpdateStatusIllegalMove(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedAppointment(repo, domain.StatusPending)

	uc := NewUpdateStatus(repo, nil, timezone.DefaultTimezone)

	// pending cannot jump straight to completed.
	if _, err := uc.Execute(context.Background(), 7, ap.ID, "completed"); !httperr.IsBusiness(err, "invalid_status_transition") {
		t.Fatalf("expected invalid_status_transition, got %v", err)
	}

	// And the stored record is untouched.
	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	if stored.Status != string(domain.StatusPending) {
		t.Fatalf("stored status mutated to %q", stored.Status)
	}
}

func TestUpdateStatusTerminalIsFinal(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedAppointment(repo, domain.StatusCancelled)

	uc := NewUpdateStatus(repo, nil, timezone.DefaultTimezone)
	for _, target := range []string{"pending", "confirmed", "completed"} {
		if _, err := uc.Execute(context.Background(), 7, ap.ID, target); !httperr.IsBusiness(err, "invalid_status_transition") {
			t.Fatalf("cancelled -> %s must be refused, got %v", target, err)
		}
	}
}

func TestUpdateStatusUnknownTargetOrAppointment(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedAppointment(repo, domain.StatusPending)

	uc := NewUpdateStatus(repo, nil, timezone.DefaultTimezone)

	if _, err := uc.Execute(context.Background(), 7, ap.ID, "postponed"); err == nil {
		t.Fatal("unknown status must be refused")
	}
	if _, err := uc.Execute(context.Background(), 7, 9999, "confirmed"); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestCancelByCustomer(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedAppointment(repo, domain.StatusConfirmed)

	uc := NewCancelByCustomer(repo, nil, timezone.DefaultTimezone)

	// Wrong email reads as not found.
	if _, err := uc.Execute(context.Background(), ap.ID, "other@example.com"); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found for email mismatch, got %v", err)
	}

	// Case and whitespace in the email are forgiven.
	got, err := uc.Execute(context.Background(), ap.ID, "  Anne.Berg@Example.com ")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != string(domain.StatusCancelled) || got.CancelledAt == nil {
		t.Fatalf("cancel left %q / CancelledAt=%v", got.Status, got.CancelledAt)
	}
}
