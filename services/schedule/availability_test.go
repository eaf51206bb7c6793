package schedule

import (
	"context"
	"testing"
	"time"

	"bookable/models"
	"bookable/services/timezone"

	"go.uber.org/zap"
)

// utcEngine evaluates against a resolver pinned to UTC so local time math in
// tests is the calendar date itself.
func utcEngine() *Engine {
	return &Engine{
		Resolver: &fakeResolver{offset: timezone.ZoneOffset{IANAZone: "UTC"}},
		Logger:   zap.NewNop(),
	}
}

func utcRecord(tt time.Time) models.TimeRecord {
	return models.TimeRecord{
		Local:    tt.Format("2006-01-02T15:04:05"),
		UTC:      tt.Format(time.RFC3339),
		Unix:     tt.Unix(),
		IANAZone: "UTC",
	}
}

// day builds a timestamp on a fixed week: 2030-01-06 is a Sunday.
func day(weekday time.Weekday, hour, min int) time.Time {
	return time.Date(2030, time.January, 6+int(weekday), hour, min, 0, 0, time.UTC)
}

func testBusiness(slots ...models.Slot) *models.Business {
	return &models.Business{
		ID:       "biz1",
		Name:     "Test Cleaners",
		Location: models.GeoPoint{Lat: 0, Lng: 0},
		Hours:    models.DefaultOperatingHours(),
		Slots:    slots,
	}
}

func TestEvaluate_OperatingHours(t *testing.T) {
	e := utcEngine()
	biz := testBusiness(models.Slot{ID: "s1", Name: "bay 1"})

	closedSunday := biz.Hours
	closedSunday[int(time.Sunday)].IsClosed = true

	tests := []struct {
		name       string
		hours      models.OperatingHours
		start, end time.Time
		bookable   bool
	}{
		{"inside hours", biz.Hours, day(time.Monday, 10, 0), day(time.Monday, 11, 0), true},
		{"starts before opening", biz.Hours, day(time.Monday, 8, 0), day(time.Monday, 9, 30), false},
		{"ends after closing", biz.Hours, day(time.Monday, 16, 30), day(time.Monday, 17, 30), false},
		{"opening minute is within", biz.Hours, day(time.Monday, 9, 0), day(time.Monday, 10, 0), true},
		{"closing minute is not within", biz.Hours, day(time.Monday, 16, 0), day(time.Monday, 17, 0), false},
		{"closed weekday", closedSunday, day(time.Sunday, 10, 0), day(time.Sunday, 11, 0), false},
		{"open weekday on same table", closedSunday, day(time.Saturday, 10, 0), day(time.Saturday, 11, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			biz.Hours = tc.hours
			d, err := e.Evaluate(context.Background(), biz, nil, utcRecord(tc.start), utcRecord(tc.end))
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if d.Bookable != tc.bookable {
				t.Fatalf("bookable = %v (%s), want %v", d.Bookable, d.Reason, tc.bookable)
			}
			if d.Bookable && d.SlotID != "s1" {
				t.Fatalf("SlotID = %q, want s1", d.SlotID)
			}
		})
	}
}

func TestEvaluate_UnavailabilityOverlap(t *testing.T) {
	e := utcEngine()
	winStart := day(time.Monday, 10, 0)
	winEnd := day(time.Monday, 12, 0)

	biz := testBusiness(models.Slot{ID: "s1"})
	biz.Unavailability = []models.UnavailabilityWindow{{
		Name:  "maintenance",
		Start: utcRecord(winStart),
		End:   utcRecord(winEnd),
	}}

	tests := []struct {
		name       string
		start, end time.Time
		bookable   bool
	}{
		{"candidate contains window", day(time.Monday, 9, 30), day(time.Monday, 12, 30), false},
		{"candidate inside window", day(time.Monday, 10, 30), day(time.Monday, 11, 0), false},
		{"overlaps window start", day(time.Monday, 9, 30), day(time.Monday, 10, 30), false},
		{"overlaps window end", day(time.Monday, 11, 30), day(time.Monday, 12, 30), false},
		{"touches window end exactly", day(time.Monday, 12, 0), day(time.Monday, 13, 0), false},
		{"touches window start exactly", day(time.Monday, 9, 0), day(time.Monday, 10, 0), false},
		{"clear of the window", day(time.Monday, 13, 0), day(time.Monday, 14, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := e.Evaluate(context.Background(), biz, nil, utcRecord(tc.start), utcRecord(tc.end))
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if d.Bookable != tc.bookable {
				t.Fatalf("bookable = %v (%s), want %v", d.Bookable, d.Reason, tc.bookable)
			}
		})
	}
}

func TestEvaluate_MultiDayContinuity(t *testing.T) {
	e := utcEngine()

	alwaysOpen := models.OperatingHours{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		alwaysOpen[int(d)] = models.DayHours{Weekday: d, Start: 0, End: 48}
	}

	// Open around the clock except Sunday closes at 22:00.
	sundayCloses := alwaysOpen
	sundayCloses[int(time.Sunday)].End = 44

	tests := []struct {
		name       string
		hours      models.OperatingHours
		start, end time.Time
		bookable   bool
	}{
		{"overnight across open midnight", alwaysOpen, day(time.Friday, 23, 0), day(time.Saturday, 1, 0), true},
		{"several continuous days", alwaysOpen, day(time.Monday, 10, 0), day(time.Thursday, 10, 0), true},
		{"boundary not continuously open", models.DefaultOperatingHours(), day(time.Friday, 16, 0), day(time.Saturday, 10, 0), false},
		{"early close breaks the span", sundayCloses, day(time.Sunday, 10, 0), day(time.Monday, 10, 0), false},
		{"same table, single day still fine", sundayCloses, day(time.Sunday, 10, 0), day(time.Sunday, 21, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			biz := testBusiness(models.Slot{ID: "s1"})
			biz.Hours = tc.hours
			d, err := e.Evaluate(context.Background(), biz, nil, utcRecord(tc.start), utcRecord(tc.end))
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if d.Bookable != tc.bookable {
				t.Fatalf("bookable = %v (%s), want %v", d.Bookable, d.Reason, tc.bookable)
			}
		})
	}
}

func TestEvaluate_SlotCapacity(t *testing.T) {
	e := utcEngine()
	book := func(id string, start, end time.Time) models.SlotBooking {
		return models.SlotBooking{BookingID: id, Start: start.Unix(), End: end.Unix()}
	}

	taken := book("b1", day(time.Monday, 10, 0), day(time.Monday, 11, 0))

	tests := []struct {
		name       string
		slots      []models.Slot
		start, end time.Time
		bookable   bool
		wantSlot   string
	}{
		{
			name:  "no slots at all",
			slots: nil,
			start: day(time.Monday, 10, 0), end: day(time.Monday, 11, 0),
		},
		{
			name:  "single busy slot",
			slots: []models.Slot{{ID: "s1", Bookings: []models.SlotBooking{taken}}},
			start: day(time.Monday, 10, 30), end: day(time.Monday, 11, 30),
		},
		{
			name: "second lane absorbs the overlap",
			slots: []models.Slot{
				{ID: "s1", Bookings: []models.SlotBooking{taken}},
				{ID: "s2"},
			},
			start: day(time.Monday, 10, 30), end: day(time.Monday, 11, 30),
			bookable: true, wantSlot: "s2",
		},
		{
			name:  "back to back is not an overlap",
			slots: []models.Slot{{ID: "s1", Bookings: []models.SlotBooking{taken}}},
			start: day(time.Monday, 11, 0), end: day(time.Monday, 12, 0),
			bookable: true, wantSlot: "s1",
		},
		{
			name: "scan respects time order",
			slots: []models.Slot{{ID: "s1", Bookings: []models.SlotBooking{
				book("b1", day(time.Monday, 9, 0), day(time.Monday, 10, 0)),
				book("b2", day(time.Monday, 12, 0), day(time.Monday, 13, 0)),
			}}},
			start: day(time.Monday, 10, 30), end: day(time.Monday, 11, 30),
			bookable: true, wantSlot: "s1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			biz := testBusiness(tc.slots...)
			d, err := e.Evaluate(context.Background(), biz, nil, utcRecord(tc.start), utcRecord(tc.end))
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if d.Bookable != tc.bookable {
				t.Fatalf("bookable = %v (%s), want %v", d.Bookable, d.Reason, tc.bookable)
			}
			if d.SlotID != tc.wantSlot {
				t.Fatalf("SlotID = %q, want %q", d.SlotID, tc.wantSlot)
			}
		})
	}
}

func TestEvaluate_OfferingScoping(t *testing.T) {
	e := utcEngine()
	start, end := day(time.Monday, 10, 0), day(time.Monday, 11, 0)

	biz := testBusiness(
		models.Slot{ID: "s1", AppliesToOfferings: []string{"other"}},
		models.Slot{ID: "s2", AppliesToOfferings: []string{"off1"}},
	)

	off := &models.Offering{ID: "off1", BusinessID: "biz1", CustomHours: models.DefaultOperatingHours()}

	d, err := e.Evaluate(context.Background(), biz, off, utcRecord(start), utcRecord(end))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !d.Bookable || d.SlotID != "s2" {
		t.Fatalf("got %+v, want bookable in s2", d)
	}

	// Offering custom hours override the business table.
	off.CustomHours[int(time.Monday)].IsClosed = true
	d, err = e.Evaluate(context.Background(), biz, off, utcRecord(start), utcRecord(end))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if d.Bookable {
		t.Fatalf("offering closed on Monday should not be bookable")
	}
}
