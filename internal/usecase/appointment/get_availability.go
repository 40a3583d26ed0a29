package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
	"github.com/kristins-brudesalong/salon-scheduler/internal/domain/schedule"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute computes the bookable slots for a service on a date, per eligible
// stylist. No availability is an empty list, not an error; only an unknown
// or inactive service/stylist is an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	var staff []models.Staff
	if in.StaffID != 0 {
		st, err := uc.repo.GetActiveStaff(ctx, in.StaffID)
		if err != nil {
			return nil, err
		}
		staff = []models.Staff{*st}
	} else {
		staff, err = uc.repo.ListActiveStaff(ctx)
		if err != nil {
			return nil, err
		}
	}

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		in.Date.Location(),
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	slot := svc.OccupiedDuration()
	weekday := int(in.Date.Weekday())

	slots := []domain.TimeSlot{}

	for _, st := range staff {
		rules, err := uc.repo.ListRulesForWeekday(ctx, st.ID, weekday)
		if err != nil {
			return nil, err
		}
		if len(rules) == 0 {
			continue
		}

		busy, err := uc.busyIntervals(ctx, st.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		for _, rule := range rules {
			starts, err := schedule.Bookable(
				schedule.Rule{Weekday: rule.Weekday, Start: rule.StartTime, End: rule.EndTime},
				in.Date,
				slot,
				busy,
			)
			if err != nil {
				return nil, err
			}

			for _, start := range starts {
				slots = append(slots, domain.TimeSlot{
					Start:     start,
					End:       start.Add(slot),
					StaffID:   st.ID,
					StaffName: st.Name,
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		return slots[i].StaffID < slots[j].StaffID
	})

	return slots, nil
}

func (uc *GetAvailability) busyIntervals(
	ctx context.Context,
	staffID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]schedule.Interval, error) {

	blackouts, err := uc.repo.ListBlackoutsOverlapping(ctx, staffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListBlockingAppointments(ctx, staffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(blackouts)+len(appointments))
	for _, b := range blackouts {
		busy = append(busy, schedule.Interval{Start: b.Start, End: b.End})
	}
	for _, ap := range appointments {
		busy = append(busy, schedule.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return busy, nil
}
