package booking

import (
	"context"
	"time"

	bkRepo "bookable/database/repository/booking"
	bizRepo "bookable/database/repository/business"
	offRepo "bookable/database/repository/offering"
	"bookable/models"
	"bookable/services/catalog"
	"bookable/services/schedule"
	"bookable/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultService implements the booking write-gate.
type DefaultService struct {
	Businesses bizRepo.Repository
	Offerings  offRepo.Repository
	Bookings   bkRepo.Repository
	Normalizer *schedule.Normalizer
	Engine     *schedule.Engine
	Logger     *zap.Logger

	locks keyedMutex
}

// NewService wires the default booking service.
func NewService(
	businesses bizRepo.Repository,
	offerings offRepo.Repository,
	bookings bkRepo.Repository,
	normalizer *schedule.Normalizer,
	engine *schedule.Engine,
) *DefaultService {
	return &DefaultService{
		Businesses: businesses,
		Offerings:  offerings,
		Bookings:   bookings,
		Normalizer: normalizer,
		Engine:     engine,
		Logger:     utils.GetLogger(),
	}
}

// Submit validates a booking request end to end (target existence,
// availability, option-tree answers) and persists the Booking
// all-or-nothing. Availability and commit run under the business's lock.
func (s *DefaultService) Submit(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	off, err := s.Offerings.GetByID(ctx, input.OfferingID)
	if err != nil {
		return nil, err
	}
	if off.BusinessID != input.BusinessID {
		return nil, utils.NotFound("offering does not belong to this business")
	}

	start, end, err := s.Normalizer.NormalizeRange(ctx, input.Schedule.Start, input.Schedule.End,
		schedule.ZoneHint{IANA: input.Schedule.IANA, GeoLocation: input.Schedule.GeoLocation})
	if err != nil {
		return nil, err
	}

	if err := catalog.VerifyAnswers(&off.Items, input.Answers); err != nil {
		return nil, err
	}
	if input.SpecialRequest != "" && !off.SpecialRequest {
		return nil, utils.InvalidInput("this offering does not accept special requests")
	}
	if input.ProvidedAddress == "" && off.ProvideAddress {
		return nil, utils.InvalidInput("this offering requires an address")
	}

	unlock := s.locks.Lock(input.BusinessID)
	defer unlock()

	// Re-read inside the lock so the slot ledger reflects any booking
	// committed while we waited.
	biz, err := s.Businesses.GetByID(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}

	s.Normalizer.RefreshWindows(ctx, biz.Unavailability, s.Logger)

	decision, err := s.Engine.Evaluate(ctx, biz, off, start, end)
	if err != nil {
		return nil, err
	}
	if !decision.Bookable {
		s.Logger.Info("booking rejected",
			zap.String("businessID", biz.ID), zap.String("reason", decision.Reason))
		return nil, utils.Unavailable("the requested interval is not available")
	}

	// A cancelled request must not commit a partially applied booking.
	if err := ctx.Err(); err != nil {
		return nil, utils.DependencyFailure("booking request cancelled before commit", err)
	}

	bk := &models.Booking{
		ID:              uuid.New().String(),
		BusinessID:      biz.ID,
		ClientID:        input.ClientID,
		OfferingID:      off.ID,
		SlotID:          decision.SlotID,
		Start:           start,
		End:             end,
		Answers:         input.Answers,
		SpecialRequest:  input.SpecialRequest,
		ProvidedAddress: input.ProvidedAddress,
		CreatedAt:       time.Now(),
	}

	if err := s.Bookings.Commit(ctx, bk, biz.Version); err != nil {
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("bookingID", bk.ID),
		zap.String("businessID", biz.ID),
		zap.String("slotID", bk.SlotID))
	return bk, nil
}

// CheckAvailability runs the availability decision without reserving
// anything. The result is advisory and may be stale by the time a booking
// is submitted.
func (s *DefaultService) CheckAvailability(ctx context.Context, businessID, offeringID string, sched models.ScheduleInput) (bool, error) {
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return false, err
	}

	var off *models.Offering
	if offeringID != "" {
		off, err = s.Offerings.GetByID(ctx, offeringID)
		if err != nil {
			return false, err
		}
		if off.BusinessID != businessID {
			return false, utils.NotFound("offering does not belong to this business")
		}
	}

	start, end, err := s.Normalizer.NormalizeRange(ctx, sched.Start, sched.End,
		schedule.ZoneHint{IANA: sched.IANA, GeoLocation: sched.GeoLocation})
	if err != nil {
		return false, err
	}

	s.Normalizer.RefreshWindows(ctx, biz.Unavailability, s.Logger)
	return s.Engine.IsBookable(ctx, biz, off, start, end)
}
