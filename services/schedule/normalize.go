package schedule

import (
	"context"
	"fmt"
	"time"

	"bookable/models"
	"bookable/services/timezone"
	"bookable/utils"

	"go.uber.org/zap"
)

const (
	// DefaultStaleAfter is how old a TimeRecord's resolution may get before
	// it is lazily re-resolved. DST rules can change offsets for bookings
	// computed far in advance.
	DefaultStaleAfter = 30 * 24 * time.Hour

	// startTolerance allows a start time slightly in the past so a request
	// has time to travel.
	startTolerance = time.Hour
)

// ZoneHint carries the client's timezone information: an IANA zone name, a
// coordinate, or both.
type ZoneHint struct {
	IANA        string
	GeoLocation *models.GeoPoint
}

// Normalizer converts local time strings into canonical TimeRecords.
type Normalizer struct {
	Resolver   timezone.Resolver
	StaleAfter time.Duration
	// Now is stubbed in tests.
	Now func() time.Time
}

// NewNormalizer builds a Normalizer with the default stale threshold.
func NewNormalizer(resolver timezone.Resolver) *Normalizer {
	return &Normalizer{Resolver: resolver, StaleAfter: DefaultStaleAfter, Now: time.Now}
}

var localLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseLocal accepts ISO 8601 timestamps with or without an explicit offset.
func parseLocal(s string) (wall time.Time, hasOffset bool, err error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true, nil
	}
	for _, layout := range localLayouts[1:] {
		// No zone in the layout, so the wall-clock fields come back in UTC.
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, utils.InvalidInput(fmt.Sprintf("%q is not a valid ISO 8601 timestamp", s))
}

// Normalize converts a local time string plus a zone hint into a TimeRecord.
func (n *Normalizer) Normalize(ctx context.Context, local string, hint ZoneHint) (models.TimeRecord, error) {
	return n.normalize(ctx, n.Resolver, local, hint)
}

func (n *Normalizer) normalize(ctx context.Context, resolver timezone.Resolver, local string, hint ZoneHint) (models.TimeRecord, error) {
	wall, hasOffset, err := parseLocal(local)
	if err != nil {
		return models.TimeRecord{}, err
	}

	geo, zoneFallback, err := n.resolveGeo(ctx, wall, hint)
	if err != nil {
		return models.TimeRecord{}, err
	}

	if zoneFallback != nil {
		return n.recordFromLocation(local, wall, hasOffset, hint.IANA, zoneFallback), nil
	}

	// Approximate the instant with the wall clock before the offset is
	// known; the Time Zone API tolerates this for DST boundary purposes.
	off, err := resolver.LookupOffset(ctx, *geo, wall.Unix())
	if err != nil {
		return models.TimeRecord{}, err
	}

	utc := wall.Add(-time.Duration(off.Total()) * time.Second)
	if hasOffset {
		// The client supplied an explicit offset; trust it for the instant
		// and keep the resolver's zone name.
		utc = wall.UTC()
	}

	return models.TimeRecord{
		Local:        local,
		UTC:          utc.UTC().Format(time.RFC3339),
		Unix:         utc.Unix(),
		IANAZone:     off.IANAZone,
		GeoLocation:  geo,
		LastResolved: n.Now().Unix(),
	}, nil
}

// resolveGeo turns the hint into a coordinate for the resolver. When only a
// zone name is given and no representative coordinate is known, it falls back
// to the local tz database and returns the location instead.
func (n *Normalizer) resolveGeo(ctx context.Context, wall time.Time, hint ZoneHint) (*models.GeoPoint, *time.Location, error) {
	if hint.GeoLocation != nil {
		if !validGeo(*hint.GeoLocation) {
			return nil, nil, utils.InvalidInput("geoLocation is out of range")
		}
		geo := *hint.GeoLocation
		return &geo, nil, nil
	}

	if hint.IANA != "" {
		geo, err := n.Resolver.CoordinateForZone(ctx, hint.IANA)
		if err == nil {
			return &geo, nil, nil
		}
		if utils.CodeOf(err) == utils.CodeNotFound {
			if loc, lerr := time.LoadLocation(hint.IANA); lerr == nil {
				return nil, loc, nil
			}
			return nil, nil, utils.TimezoneUnresolvable(fmt.Sprintf("unknown timezone %q", hint.IANA))
		}
		return nil, nil, err
	}

	return nil, nil, utils.TimezoneUnresolvable("neither an IANA zone nor a coordinate was supplied")
}

// recordFromLocation computes offsets from the local tz database when the
// external resolver has no coordinate for the zone.
func (n *Normalizer) recordFromLocation(local string, wall time.Time, hasOffset bool, iana string, loc *time.Location) models.TimeRecord {
	var utc time.Time
	if hasOffset {
		utc = wall.UTC()
	} else {
		lt := time.Date(wall.Year(), wall.Month(), wall.Day(),
			wall.Hour(), wall.Minute(), wall.Second(), 0, loc)
		utc = lt.UTC()
	}
	return models.TimeRecord{
		Local:        local,
		UTC:          utc.Format(time.RFC3339),
		Unix:         utc.Unix(),
		IANAZone:     iana,
		LastResolved: n.Now().Unix(),
	}
}

// NormalizeRange normalizes a start/end pair sharing one zone hint,
// deduplicating resolver calls for identical (coordinate, instant) pairs,
// and validates interval sanity: end after start, start no further in the
// past than the tolerance.
func (n *Normalizer) NormalizeRange(ctx context.Context, startLocal, endLocal string, hint ZoneHint) (models.TimeRecord, models.TimeRecord, error) {
	memo := &memoResolver{inner: n.Resolver, seen: make(map[string]timezone.ZoneOffset)}

	start, err := n.normalize(ctx, memo, startLocal, hint)
	if err != nil {
		return models.TimeRecord{}, models.TimeRecord{}, err
	}
	end, err := n.normalize(ctx, memo, endLocal, hint)
	if err != nil {
		return models.TimeRecord{}, models.TimeRecord{}, err
	}

	if end.Unix <= start.Unix {
		return models.TimeRecord{}, models.TimeRecord{}, utils.InvalidInput("end time must be after start time")
	}
	if start.Unix < n.Now().Add(-startTolerance).Unix() {
		return models.TimeRecord{}, models.TimeRecord{}, utils.InvalidInput("start time is in the past")
	}
	return start, end, nil
}

// Refresh lazily re-resolves a stale record. Failure is non-fatal: the stale
// record stays usable and the error is returned for the caller to log at
// warning level. The boolean reports whether the record was re-resolved.
func (n *Normalizer) Refresh(ctx context.Context, rec *models.TimeRecord) (bool, error) {
	staleAfter := n.StaleAfter
	if staleAfter == 0 {
		staleAfter = DefaultStaleAfter
	}
	if n.Now().Unix()-rec.LastResolved < int64(staleAfter/time.Second) {
		return false, nil
	}

	hint := ZoneHint{IANA: rec.IANAZone, GeoLocation: rec.GeoLocation}
	fresh, err := n.Normalize(ctx, rec.Local, hint)
	if err != nil {
		return false, err
	}
	fresh.GeoLocation = rec.GeoLocation
	*rec = fresh
	return true, nil
}

// RefreshWindows re-resolves stale records on a business's blackout windows
// in place, logging failures without aborting.
func (n *Normalizer) RefreshWindows(ctx context.Context, windows []models.UnavailabilityWindow, logger *zap.Logger) {
	for i := range windows {
		for _, rec := range []*models.TimeRecord{&windows[i].Start, &windows[i].End} {
			if _, err := n.Refresh(ctx, rec); err != nil {
				logger.Warn("stale time record re-resolution failed",
					zap.String("window", windows[i].Name), zap.Error(err))
			}
		}
	}
}

func validGeo(p models.GeoPoint) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// memoResolver dedupes repeated (coordinate, instant) lookups inside one
// normalization call.
type memoResolver struct {
	inner timezone.Resolver
	seen  map[string]timezone.ZoneOffset
}

func (m *memoResolver) LookupOffset(ctx context.Context, loc models.GeoPoint, unixTime int64) (timezone.ZoneOffset, error) {
	key := fmt.Sprintf("%.6f:%.6f:%d", loc.Lat, loc.Lng, unixTime)
	if off, ok := m.seen[key]; ok {
		return off, nil
	}
	off, err := m.inner.LookupOffset(ctx, loc, unixTime)
	if err != nil {
		return timezone.ZoneOffset{}, err
	}
	m.seen[key] = off
	return off, nil
}

func (m *memoResolver) CoordinateForZone(ctx context.Context, iana string) (models.GeoPoint, error) {
	return m.inner.CoordinateForZone(ctx, iana)
}
