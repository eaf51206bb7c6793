package models

import "time"

// DayHours is one weekday's operating-hours entry. Start and End are
// half-hour slots from local midnight: slot N is N*30 minutes, so 18..34
// encodes 09:00-17:00 and 48 is the following midnight.
type DayHours struct {
	Weekday  time.Weekday `bson:"weekday" json:"weekday"`
	Start    int          `bson:"start" json:"start"` // 0..47
	End      int          `bson:"end" json:"end"`     // 0..48
	IsClosed bool         `bson:"isClosed" json:"isClosed"`
}

// OperatingHours holds exactly one entry per weekday, Sunday first.
type OperatingHours [7]DayHours

// ForWeekday returns the entry for the given weekday.
func (h OperatingHours) ForWeekday(w time.Weekday) DayHours {
	return h[int(w)]
}

// DefaultOperatingHours is 09:00-17:00 every day.
func DefaultOperatingHours() OperatingHours {
	var hours OperatingHours
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[int(d)] = DayHours{Weekday: d, Start: 18, End: 34}
	}
	return hours
}

// UnavailabilityWindow is an explicit blackout interval overriding normal
// operating hours. Name is unique within its owner.
type UnavailabilityWindow struct {
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Start       TimeRecord `bson:"start" json:"start"`
	End         TimeRecord `bson:"end" json:"end"`
}

// SlotBooking is one booked interval inside a slot, in UTC unix seconds.
// A slot's list is kept ordered by Start.
type SlotBooking struct {
	BookingID string `bson:"bookingId" json:"bookingId"`
	Start     int64  `bson:"start" json:"start"`
	End       int64  `bson:"end" json:"end"`
}

// Slot is an independent capacity lane for concurrent bookings. An interval
// is bookable in a slot when it overlaps none of the slot's bookings.
type Slot struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	// Bookings is kept time-ordered by Start.
	Bookings []SlotBooking `bson:"bookings" json:"bookings"`
	// AppliesToOfferings restricts the slot to the listed offerings.
	// Empty means the slot serves every offering of the business.
	AppliesToOfferings []string `bson:"appliesToOfferings,omitempty" json:"appliesToOfferings,omitempty"`
}

// Business owns operating hours, blackout windows and capacity slots.
type Business struct {
	ID             string                 `bson:"id" json:"id"`
	Name           string                 `bson:"name" json:"name"`
	Email          string                 `bson:"email" json:"email"`
	Location       GeoPoint               `bson:"location" json:"location"`
	Hours          OperatingHours         `bson:"hours" json:"hours"`
	Unavailability []UnavailabilityWindow `bson:"unavailability" json:"unavailability"`
	Slots          []Slot                 `bson:"slots" json:"slots"`
	// Version guards concurrent slot mutation; bumped on every slot write.
	Version   int       `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SlotByID returns a pointer into the business's slot list, or nil.
func (b *Business) SlotByID(id string) *Slot {
	for i := range b.Slots {
		if b.Slots[i].ID == id {
			return &b.Slots[i]
		}
	}
	return nil
}
