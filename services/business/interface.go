package business

import (
	"context"

	"bookable/models"
)

// BusinessInput is the payload for registering a business.
type BusinessInput struct {
	Name     string                 `json:"name" binding:"required"`
	Email    string                 `json:"email" binding:"required"`
	Location models.GeoPoint        `json:"location" binding:"required"`
	Hours    *models.OperatingHours `json:"hours,omitempty"`
}

// UnavailabilityInput is the payload for adding a blackout window. The zone
// hint defaults to the business's registered location when absent.
type UnavailabilityInput struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Start       string           `json:"start" binding:"required"`
	End         string           `json:"end" binding:"required"`
	IANA        string           `json:"iana,omitempty"`
	GeoLocation *models.GeoPoint `json:"geoLocation,omitempty"`
}

// OfferingInput is the payload for creating an offering.
type OfferingInput struct {
	Name        string   `json:"name" binding:"required"`
	ServiceType string   `json:"serviceType,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	// Duration and PrepTime are in seconds.
	Duration       int64                  `json:"duration" binding:"required"`
	PrepTime       int64                  `json:"prepTime,omitempty"`
	CustomHours    *models.OperatingHours `json:"customHours,omitempty"`
	ProvideAddress bool                   `json:"provideAddress,omitempty"`
	SpecialRequest bool                   `json:"specialRequest,omitempty"`
}

// Service manages businesses, their offerings and the denormalized
// unavailability copies.
type Service interface {
	CreateBusiness(ctx context.Context, input BusinessInput) (*models.Business, error)
	GetBusiness(ctx context.Context, id string) (*models.Business, error)
	UpdateOperatingHours(ctx context.Context, businessID string, hours models.OperatingHours) (*models.Business, error)
	AddSlot(ctx context.Context, businessID, name string, appliesTo []string) (*models.Business, error)

	AddUnavailability(ctx context.Context, businessID string, input UnavailabilityInput) (*models.Business, error)
	RemoveUnavailability(ctx context.Context, businessID, name string) (*models.Business, error)

	CreateOffering(ctx context.Context, businessID string, input OfferingInput) (*models.Offering, error)
	GetOffering(ctx context.Context, id string) (*models.Offering, error)
	AddOfferingItem(ctx context.Context, offeringID, parentPath string, node models.OptionNode) (*models.Offering, error)
	RemoveOfferingItem(ctx context.Context, offeringID, path string) (*models.Offering, error)
	UpdateOfferingItem(ctx context.Context, offeringID, path string, fields models.FlatNode) (*models.Offering, error)
	FlattenOfferingItems(ctx context.Context, offeringID string) (map[string]models.FlatNode, error)
}
