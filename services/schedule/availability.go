package schedule

import (
	"context"
	"time"

	"bookable/models"
	"bookable/services/timezone"
	"bookable/utils"

	"go.uber.org/zap"
)

// Decision is the outcome of an availability evaluation. SlotID names the
// first free capacity lane when Bookable is true.
type Decision struct {
	Bookable bool
	SlotID   string
	// Reason says which check failed, for logging only.
	Reason string
}

// Engine decides whether a candidate interval may be booked. It never
// returns an error for a business-logic negative, only for infrastructure
// failure. A true result is advisory until the booking is persisted.
type Engine struct {
	Resolver timezone.Resolver
	Logger   *zap.Logger
}

// NewEngine builds an availability engine.
func NewEngine(resolver timezone.Resolver) *Engine {
	return &Engine{Resolver: resolver, Logger: utils.GetLogger()}
}

// IsBookable reports whether the candidate interval may be booked for the
// business (and offering, when given).
func (e *Engine) IsBookable(ctx context.Context, biz *models.Business, off *models.Offering, start, end models.TimeRecord) (bool, error) {
	d, err := e.Evaluate(ctx, biz, off, start, end)
	if err != nil {
		return false, err
	}
	return d.Bookable, nil
}

// Evaluate runs the availability checks in order, short-circuiting at the
// first failure: unavailability overlap, operating-hours membership,
// multi-day continuity, slot capacity.
func (e *Engine) Evaluate(ctx context.Context, biz *models.Business, off *models.Offering, start, end models.TimeRecord) (Decision, error) {
	startUnix, endUnix := start.Unix, end.Unix

	if overlapsWindow(biz.Unavailability, startUnix, endUnix) {
		return Decision{Reason: "unavailability window"}, nil
	}

	hours := biz.Hours
	if off != nil {
		hours = off.CustomHours
	}

	startLocal, err := e.localize(ctx, biz.Location, startUnix)
	if err != nil {
		return Decision{}, err
	}
	endLocal, err := e.localize(ctx, biz.Location, endUnix)
	if err != nil {
		return Decision{}, err
	}

	if !withinHours(startLocal, hours) || !withinHours(endLocal, hours) {
		return Decision{Reason: "outside operating hours"}, nil
	}

	if !continuouslyOpen(startLocal, endLocal, hours) {
		return Decision{Reason: "closed across a day boundary"}, nil
	}

	if slotID, ok := freeSlot(biz.Slots, off, startUnix, endUnix); ok {
		return Decision{Bookable: true, SlotID: slotID}, nil
	}
	return Decision{Reason: "no free slot"}, nil
}

// overlapsWindow tests the candidate against every blackout window on UTC
// instants with inclusive boundaries: touching a window edge still counts
// as overlapping.
func overlapsWindow(windows []models.UnavailabilityWindow, startUnix, endUnix int64) bool {
	for _, w := range windows {
		if w.Start.Unix <= endUnix && w.End.Unix >= startUnix {
			return true
		}
	}
	return false
}

// localize shifts a UTC instant into the business's local wall clock. The
// returned time carries local fields in the UTC frame, which is all the
// weekday/minute math needs.
func (e *Engine) localize(ctx context.Context, loc models.GeoPoint, unix int64) (time.Time, error) {
	off, err := e.Resolver.LookupOffset(ctx, loc, unix)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0).UTC().Add(time.Duration(off.Total()) * time.Second), nil
}

// withinHours checks one endpoint: the local weekday must be open and the
// time-of-day must fall within [start, end) of that day's half-hour slots.
func withinHours(local time.Time, hours models.OperatingHours) bool {
	day := hours.ForWeekday(local.Weekday())
	if day.IsClosed {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= day.Start*30 && minutes < day.End*30
}

// continuouslyOpen verifies the multi-day spanning rule. A day boundary may
// be crossed only when the earlier day closes at slot 48 (midnight) and the
// later day opens at slot 0, with neither day closed. Iterates local
// calendar dates rather than weekday arithmetic so intervals longer than a
// week behave.
func continuouslyOpen(startLocal, endLocal time.Time, hours models.OperatingHours) bool {
	cur := startLocal.Truncate(24 * time.Hour)
	last := endLocal.Truncate(24 * time.Hour)

	for cur.Before(last) {
		day := hours.ForWeekday(cur.Weekday())
		next := hours.ForWeekday(cur.AddDate(0, 0, 1).Weekday())
		if day.IsClosed || next.IsClosed || day.End != 48 || next.Start != 0 {
			return false
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return true
}

// freeSlot scans each eligible slot's time-ordered bookings for one with no
// interval intersecting the candidate. Slots are independent lanes, so the
// first free one wins.
func freeSlot(slots []models.Slot, off *models.Offering, startUnix, endUnix int64) (string, bool) {
	for _, slot := range slots {
		if off != nil && len(slot.AppliesToOfferings) > 0 && !contains(slot.AppliesToOfferings, off.ID) {
			continue
		}
		busy := false
		for _, b := range slot.Bookings {
			if b.Start >= endUnix {
				break // bookings are ordered; nothing later can intersect
			}
			if b.End > startUnix {
				busy = true
				break
			}
		}
		if !busy {
			return slot.ID, true
		}
	}
	return "", false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
