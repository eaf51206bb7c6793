package models

import "time"

// Answer is one client response addressed by the full dot-joined path of an
// option node.
type Answer struct {
	Path  string `bson:"path" json:"path"`
	Value any    `bson:"answer" json:"answer"`
}

// Booking is a confirmed booking record. It is only ever constructed by the
// booking write-gate after availability and answer validation pass.
type Booking struct {
	ID         string     `bson:"id" json:"id"`
	BusinessID string     `bson:"businessId" json:"businessId"`
	ClientID   string     `bson:"clientId" json:"clientId"`
	OfferingID string     `bson:"offeringId" json:"offeringId"`
	SlotID     string     `bson:"slotId" json:"slotId"`
	Start      TimeRecord `bson:"start" json:"start"`
	End        TimeRecord `bson:"end" json:"end"`
	Answers    []Answer   `bson:"answers" json:"answers"`
	// SpecialRequest and ProvidedAddress are free-form client inputs,
	// accepted only when the offering enables them.
	SpecialRequest  string    `bson:"specialRequest,omitempty" json:"specialRequest,omitempty"`
	ProvidedAddress string    `bson:"providedAddress,omitempty" json:"providedAddress,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// ScheduleInput is the wire form of a requested interval: local start/end
// plus a timezone hint, either an IANA zone name or a coordinate.
type ScheduleInput struct {
	Start       string    `json:"start" binding:"required"`
	End         string    `json:"end" binding:"required"`
	IANA        string    `json:"iana,omitempty"`
	GeoLocation *GeoPoint `json:"geoLocation,omitempty"`
}

// BookingInput is the booking submission payload.
type BookingInput struct {
	BusinessID      string        `json:"businessId" binding:"required"`
	OfferingID      string        `json:"offeringId" binding:"required"`
	ClientID        string        `json:"clientId" binding:"required"`
	Schedule        ScheduleInput `json:"schedule" binding:"required"`
	Answers         []Answer      `json:"answers"`
	SpecialRequest  string        `json:"specialRequest,omitempty"`
	ProvidedAddress string        `json:"providedAddress,omitempty"`
}
