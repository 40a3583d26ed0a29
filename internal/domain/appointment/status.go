package appointment

import "github.com/kristins-brudesalong/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

// PaymentStatus tracks the deposit payment independently of the appointment
// lifecycle.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentExpired   PaymentStatus = "expired"
)

// transitions is the whole lifecycle. cancelled, failed, completed and
// no-show are terminal; a terminal appointment is never reopened, a new one
// is booked instead.
var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
		StatusFailed:    true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusCompleted: true,
		StatusNoShow:    true,
	},
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusFailed, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Blocks reports whether an appointment in this status occupies its slot.
// cancelled frees the slot immediately; no-show and completed hold no future
// capacity.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

// BlockingStatuses are the statuses every conflict check consults.
func BlockingStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

// CanTransition validates a lifecycle move and names both states in the
// error so the caller knows exactly what was refused.
func CanTransition(from, to Status) error {
	if transitions[from][to] {
		return nil
	}
	return httperr.ErrBusinessDetail(
		"invalid_status_transition",
		string(from)+" -> "+string(to),
	)
}
