package timezone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"bookable/models"
	"bookable/utils"
)

// ZoneOffset is the offset data in effect for a coordinate at an instant.
type ZoneOffset struct {
	IANAZone         string `json:"ianaZone"`
	RawOffsetSeconds int    `json:"rawOffsetSeconds"`
	DSTOffsetSeconds int    `json:"dstOffsetSeconds"`
}

// Total returns the full UTC offset in seconds.
func (z ZoneOffset) Total() int {
	return z.RawOffsetSeconds + z.DSTOffsetSeconds
}

// Resolver maps coordinates to timezone offset data and zone names back to a
// representative coordinate.
type Resolver interface {
	// LookupOffset returns the offsets in effect at the given instant.
	// Timeouts are reported as timezoneUnresolvable, other transport
	// failures as dependencyFailure.
	LookupOffset(ctx context.Context, loc models.GeoPoint, unixTime int64) (ZoneOffset, error)
	// CoordinateForZone returns a representative coordinate for an IANA
	// zone name, or notFound.
	CoordinateForZone(ctx context.Context, iana string) (models.GeoPoint, error)
}

const googleTimezoneURL = "https://maps.googleapis.com/maps/api/timezone/json"

// GoogleResolver resolves offsets through the Google Time Zone API with a
// short timeout and no retries.
type GoogleResolver struct {
	APIKey     string
	HTTPClient *http.Client
	// BaseURL overrides the Google endpoint, for tests.
	BaseURL string
}

// NewGoogleResolver builds a resolver with the given key and call timeout.
func NewGoogleResolver(apiKey string, timeout time.Duration) *GoogleResolver {
	return &GoogleResolver{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type timezoneAPIResponse struct {
	Status       string  `json:"status"`
	TimeZoneID   string  `json:"timeZoneId"`
	RawOffset    float64 `json:"rawOffset"`
	DSTOffset    float64 `json:"dstOffset"`
	ErrorMessage string  `json:"errorMessage"`
}

func (r *GoogleResolver) LookupOffset(ctx context.Context, loc models.GeoPoint, unixTime int64) (ZoneOffset, error) {
	base := r.BaseURL
	if base == "" {
		base = googleTimezoneURL
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	q.Set("timestamp", fmt.Sprintf("%d", unixTime))
	q.Set("key", r.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return ZoneOffset{}, utils.DependencyFailure("failed to build timezone request", err)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ZoneOffset{}, utils.TimezoneUnresolvable("timezone lookup timed out")
		}
		return ZoneOffset{}, utils.DependencyFailure("timezone lookup failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ZoneOffset{}, utils.DependencyFailure(
			fmt.Sprintf("timezone API returned status %d", resp.StatusCode), nil)
	}

	var data timezoneAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return ZoneOffset{}, utils.DependencyFailure("decoding timezone response failed", err)
	}

	if data.Status != "OK" {
		return ZoneOffset{}, utils.TimezoneUnresolvable(
			fmt.Sprintf("timezone API status %s: %s", data.Status, data.ErrorMessage))
	}

	return ZoneOffset{
		IANAZone:         data.TimeZoneID,
		RawOffsetSeconds: int(data.RawOffset),
		DSTOffsetSeconds: int(data.DSTOffset),
	}, nil
}

func (r *GoogleResolver) CoordinateForZone(ctx context.Context, iana string) (models.GeoPoint, error) {
	if pt, ok := zoneCoordinates[iana]; ok {
		return pt, nil
	}
	return models.GeoPoint{}, utils.NotFound(fmt.Sprintf("no representative coordinate for zone %q", iana))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
