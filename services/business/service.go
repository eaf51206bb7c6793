package business

import (
	"context"
	"fmt"
	"time"

	bizRepo "bookable/database/repository/business"
	offRepo "bookable/database/repository/offering"
	"bookable/models"
	"bookable/services/schedule"
	"bookable/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// minDuration is the shortest offering duration accepted.
const minDuration = 60 // seconds

// DefaultService implements Service.
type DefaultService struct {
	Businesses bizRepo.Repository
	Offerings  offRepo.Repository
	Normalizer *schedule.Normalizer
	Logger     *zap.Logger
}

// NewService wires the default business service.
func NewService(businesses bizRepo.Repository, offerings offRepo.Repository, normalizer *schedule.Normalizer) *DefaultService {
	return &DefaultService{
		Businesses: businesses,
		Offerings:  offerings,
		Normalizer: normalizer,
		Logger:     utils.GetLogger(),
	}
}

func (s *DefaultService) CreateBusiness(ctx context.Context, input BusinessInput) (*models.Business, error) {
	if input.Name == "" || input.Email == "" {
		return nil, utils.InvalidInput("business name and email must be provided")
	}

	if _, err := s.Businesses.GetByEmail(ctx, input.Email); err == nil {
		return nil, utils.Conflict("a business with this email already exists")
	} else if utils.CodeOf(err) != utils.CodeNotFound {
		return nil, err
	}

	hours := models.DefaultOperatingHours()
	if input.Hours != nil {
		if err := ValidateOperatingHours(*input.Hours); err != nil {
			return nil, err
		}
		hours = *input.Hours
	}

	biz := &models.Business{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Location:  input.Location,
		Hours:     hours,
		CreatedAt: time.Now(),
	}
	if err := s.Businesses.Create(ctx, biz); err != nil {
		return nil, err
	}
	return biz, nil
}

func (s *DefaultService) GetBusiness(ctx context.Context, id string) (*models.Business, error) {
	return s.Businesses.GetByID(ctx, id)
}

func (s *DefaultService) UpdateOperatingHours(ctx context.Context, businessID string, hours models.OperatingHours) (*models.Business, error) {
	if err := ValidateOperatingHours(hours); err != nil {
		return nil, err
	}

	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	biz.Hours = hours
	if err := s.Businesses.Update(ctx, biz); err != nil {
		return nil, err
	}
	return biz, nil
}

func (s *DefaultService) AddSlot(ctx context.Context, businessID, name string, appliesTo []string) (*models.Business, error) {
	if name == "" {
		return nil, utils.InvalidInput("slot name must be provided")
	}

	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	for _, slot := range biz.Slots {
		if slot.Name == name {
			return nil, utils.Conflict(fmt.Sprintf("a slot named %q already exists", name))
		}
	}

	biz.Slots = append(biz.Slots, models.Slot{
		ID:                 uuid.New().String(),
		Name:               name,
		AppliesToOfferings: appliesTo,
	})
	biz.Version++
	if err := s.Businesses.Update(ctx, biz); err != nil {
		return nil, err
	}
	return biz, nil
}

// ValidateOperatingHours checks the 7-entry weekday table: one entry per
// weekday Sunday first, slots within 0..48, start not past end. Midnight
// spanning is expressed by the continuation rule (end 48, next start 0),
// not by inverted ranges.
func ValidateOperatingHours(hours models.OperatingHours) error {
	for i, day := range hours {
		if day.Weekday != time.Weekday(i) {
			return utils.InvalidInput(fmt.Sprintf("hours entry %d must be for %s", i, time.Weekday(i)))
		}
		if day.Start < 0 || day.Start > 47 || day.End < 0 || day.End > 48 {
			return utils.InvalidInput(fmt.Sprintf("%s: half-hour slots must be within 0..48", day.Weekday))
		}
		if !day.IsClosed && day.Start > day.End {
			return utils.InvalidInput(fmt.Sprintf("%s: opening slot is after closing slot", day.Weekday))
		}
	}
	return nil
}
