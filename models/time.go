package models

import "time"

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// TimeRecord is the canonical normalized-time value. Either IANAZone or
// GeoLocation is present; UTC is always derivable from Local plus the zone
// offset in effect at that instant.
type TimeRecord struct {
	Local string `bson:"local" json:"local"` // local wall clock, ISO 8601
	UTC   string `bson:"utc" json:"utc"`     // RFC 3339, Z offset
	// Unix mirrors UTC in unix seconds so interval math and Mongo range
	// queries never re-parse the string.
	Unix         int64     `bson:"unix" json:"unix"`
	IANAZone     string    `bson:"ianaZone" json:"ianaZone"`
	GeoLocation  *GeoPoint `bson:"geoLocation,omitempty" json:"geoLocation,omitempty"`
	LastResolved int64     `bson:"lastResolved" json:"lastResolved"` // unix seconds of last zone resolution
}

// Instant returns the UTC instant of the record.
func (t TimeRecord) Instant() time.Time {
	return time.Unix(t.Unix, 0).UTC()
}
