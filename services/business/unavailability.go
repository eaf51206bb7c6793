package business

import (
	"context"
	"fmt"

	"bookable/models"
	"bookable/services/schedule"
	"bookable/utils"

	"go.uber.org/zap"
)

// AddUnavailability normalizes and stores a blackout window on the
// business, then cascades a copy into every offering. The cascade is
// eventually consistent: an offering that fails to update is logged and
// retried on the next sync, never rolled back.
func (s *DefaultService) AddUnavailability(ctx context.Context, businessID string, input UnavailabilityInput) (*models.Business, error) {
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	hint := schedule.ZoneHint{IANA: input.IANA, GeoLocation: input.GeoLocation}
	if hint.IANA == "" && hint.GeoLocation == nil {
		// Fall back to the business's registered location.
		loc := biz.Location
		hint.GeoLocation = &loc
	}

	start, end, err := s.Normalizer.NormalizeRange(ctx, input.Start, input.End, hint)
	if err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = fmt.Sprintf("%s-%s", start.Local, end.Local)
	}
	for _, w := range biz.Unavailability {
		if w.Name == name {
			return nil, utils.Conflict(fmt.Sprintf("an unavailability window named %q already exists", name))
		}
	}

	biz.Unavailability = append(biz.Unavailability, models.UnavailabilityWindow{
		Name:        name,
		Description: input.Description,
		Start:       start,
		End:         end,
	})
	if err := s.Businesses.Update(ctx, biz); err != nil {
		return nil, err
	}

	s.syncOfferings(ctx, biz)
	return biz, nil
}

// RemoveUnavailability drops a window by name and removes the copies from
// the business's offerings. Removing an unknown name is a no-op.
func (s *DefaultService) RemoveUnavailability(ctx context.Context, businessID, name string) (*models.Business, error) {
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	kept := biz.Unavailability[:0]
	for _, w := range biz.Unavailability {
		if w.Name != name {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(biz.Unavailability) {
		return biz, nil
	}
	biz.Unavailability = kept

	if err := s.Businesses.Update(ctx, biz); err != nil {
		return nil, err
	}

	s.syncOfferings(ctx, biz)
	return biz, nil
}

// syncOfferings makes every offering's denormalized window list match the
// business's. Idempotent; safe to run any number of times.
func (s *DefaultService) syncOfferings(ctx context.Context, biz *models.Business) {
	offerings, err := s.Offerings.FindByBusiness(ctx, biz.ID)
	if err != nil {
		s.Logger.Warn("unavailability sync: could not list offerings",
			zap.String("businessID", biz.ID), zap.Error(err))
		return
	}

	for i := range offerings {
		off := &offerings[i]
		if windowsEqual(off.Unavailability, biz.Unavailability) {
			continue
		}
		off.Unavailability = append([]models.UnavailabilityWindow(nil), biz.Unavailability...)
		if err := s.Offerings.Update(ctx, off); err != nil {
			s.Logger.Warn("unavailability sync: offering update failed",
				zap.String("offeringID", off.ID), zap.Error(err))
		}
	}
}

func windowsEqual(a, b []models.UnavailabilityWindow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name ||
			a[i].Start.Unix != b[i].Start.Unix ||
			a[i].End.Unix != b[i].End.Unix {
			return false
		}
	}
	return true
}
