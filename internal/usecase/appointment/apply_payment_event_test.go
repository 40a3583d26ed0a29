package appointment

import (
	"context"
	"testing"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/httperr"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"github.com/kristins-brudesalong/salon-scheduler/internal/timezone"
)

func TestApplyPaymentEventSucceeded(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedAppointment(repo, domain.StatusPending)
	repo.payments[ap.OrderRef] = &models.Payment{
		ID:            1,
		AppointmentID: ap.ID,
		Provider:      "vipps",
		OrderRef:      ap.OrderRef,
		Status:        string(domain.PaymentPending),
	}

	uc := NewApplyPaymentEvent(repo, nil, timezone.DefaultTimezone)

	got, err := uc.ExecuteByOrderRef(context.Background(), ap.OrderRef, domain.PaymentSucceeded)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Fatalf("status = %q, want confirmed", got.Status)
	}
	if got.PaymentStatus != string(domain.PaymentPaid) || got.PaymentDate == nil {
		t.Fatalf("payment = %q / date=%v, want paid with date", got.PaymentStatus, got.PaymentDate)
	}

	p, _ := repo.GetPaymentByOrderRef(context.Background(), ap.OrderRef)
	if p.Status != string(domain.PaymentPaid) {
		t.Fatalf("payment record = %q, want paid", p.Status)
	}
}

func TestApplyPaymentEventReplayIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedAppointment(repo, domain.StatusPending)

	uc := NewApplyPaymentEvent(repo, nil, timezone.DefaultTimezone)

	first, err := uc.ExecuteByID(context.Background(), ap.ID, domain.PaymentSucceeded)
	if err != nil {
		t.Fatal(err)
	}

	// Providers redeliver; the second delivery must succeed without
	// touching the record.
	second, err := uc.ExecuteByID(context.Background(), ap.ID, domain.PaymentSucceeded)
	if err != nil {
		t.Fatalf("replay must be acknowledged, got %v", err)
	}
	if !second.ConfirmedAt.Equal(*first.ConfirmedAt) {
		t.Fatal("replay re-stamped ConfirmedAt")
	}
}

func TestApplyPaymentEventFailureAndExpiry(t *testing.T) {
	cases := []struct {
		ev          domain.PaymentEvent
		wantStatus  domain.Status
		wantPayment domain.PaymentStatus
	}{
		{domain.PaymentEventFailed, domain.StatusFailed, domain.PaymentFailed},
		{domain.PaymentEventCancelled, domain.StatusCancelled, domain.PaymentCancelled},
		{domain.PaymentEventExpired, domain.StatusCancelled, domain.PaymentExpired},
	}

	for _, tc := range cases {
		t.Run(string(tc.ev), func(t *testing.T) {
			repo := newFakeRepo()
			seedSalon(repo)
			ap := seedAppointment(repo, domain.StatusPending)

			uc := NewApplyPaymentEvent(repo, nil, timezone.DefaultTimezone)
			got, err := uc.ExecuteByID(context.Background(), ap.ID, tc.ev)
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != string(tc.wantStatus) || got.PaymentStatus != string(tc.wantPayment) {
				t.Fatalf("got %s/%s, want %s/%s",
					got.Status, got.PaymentStatus, tc.wantStatus, tc.wantPayment)
			}
		})
	}
}

func TestApplyPaymentEventAfterCompletionRefused(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)
	ap := seedAppointment(repo, domain.StatusCompleted)

	uc := NewApplyPaymentEvent(repo, nil, timezone.DefaultTimezone)
	_, err := uc.ExecuteByID(context.Background(), ap.ID, domain.PaymentEventFailed)
	if !httperr.IsBusiness(err, "invalid_status_transition") {
		t.Fatalf("expected invalid_status_transition, got %v", err)
	}
}

func TestApplyPaymentEventUnknownOrderRef(t *testing.T) {
	repo := newFakeRepo()
	seedSalon(repo)

	uc := NewApplyPaymentEvent(repo, nil, timezone.DefaultTimezone)
	_, err := uc.ExecuteByOrderRef(context.Background(), "no-such-ref", domain.PaymentSucceeded)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}
