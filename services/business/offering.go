package business

import (
	"context"
	"fmt"
	"time"

	"bookable/models"
	"bookable/services/catalog"
	"bookable/utils"

	"github.com/google/uuid"
)

// CreateOffering creates a bookable offering under a business. Custom hours
// default to the business's table; the business's blackout windows are
// copied in at creation.
func (s *DefaultService) CreateOffering(ctx context.Context, businessID string, input OfferingInput) (*models.Offering, error) {
	if input.Name == "" {
		return nil, utils.InvalidInput("offering name must be provided")
	}
	if input.Duration < minDuration {
		return nil, utils.InvalidInput("duration cannot be less than one minute")
	}

	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Offerings.FindByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	for _, o := range existing {
		if o.Name == input.Name {
			return nil, utils.Conflict(fmt.Sprintf("an offering named %q already exists", input.Name))
		}
	}

	hours := biz.Hours
	if input.CustomHours != nil {
		if err := ValidateOperatingHours(*input.CustomHours); err != nil {
			return nil, err
		}
		hours = *input.CustomHours
	}

	off := &models.Offering{
		ID:             uuid.New().String(),
		BusinessID:     businessID,
		Name:           input.Name,
		ServiceType:    input.ServiceType,
		Tags:           input.Tags,
		Description:    input.Description,
		Duration:       input.Duration,
		PrepTime:       input.PrepTime,
		CustomHours:    hours,
		Unavailability: append([]models.UnavailabilityWindow(nil), biz.Unavailability...),
		ProvideAddress: input.ProvideAddress,
		SpecialRequest: input.SpecialRequest,
		CreatedAt:      time.Now(),
	}
	if err := s.Offerings.Create(ctx, off); err != nil {
		return nil, err
	}
	return off, nil
}

func (s *DefaultService) GetOffering(ctx context.Context, id string) (*models.Offering, error) {
	return s.Offerings.GetByID(ctx, id)
}

// AddOfferingItem adds an option node under parentPath (empty for a root).
func (s *DefaultService) AddOfferingItem(ctx context.Context, offeringID, parentPath string, node models.OptionNode) (*models.Offering, error) {
	off, err := s.Offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if _, err := catalog.CreateNode(&off.Items, parentPath, node); err != nil {
		return nil, err
	}
	if err := s.Offerings.Update(ctx, off); err != nil {
		return nil, err
	}
	return off, nil
}

// RemoveOfferingItem removes the node at path and its subtree; removing a
// path that does not exist is a no-op, not an error.
func (s *DefaultService) RemoveOfferingItem(ctx context.Context, offeringID, path string) (*models.Offering, error) {
	off, err := s.Offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	catalog.RemoveNode(&off.Items, path)
	if err := s.Offerings.Update(ctx, off); err != nil {
		return nil, err
	}
	return off, nil
}

// UpdateOfferingItem replaces the non-structural fields of the node at path.
func (s *DefaultService) UpdateOfferingItem(ctx context.Context, offeringID, path string, fields models.FlatNode) (*models.Offering, error) {
	off, err := s.Offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if err := catalog.UpdateNode(&off.Items, path, fields); err != nil {
		return nil, err
	}
	if err := s.Offerings.Update(ctx, off); err != nil {
		return nil, err
	}
	return off, nil
}

// FlattenOfferingItems returns the canonical path-keyed view of the tree.
func (s *DefaultService) FlattenOfferingItems(ctx context.Context, offeringID string) (map[string]models.FlatNode, error) {
	off, err := s.Offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	return catalog.Flatten(&off.Items), nil
}
