package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PropertyIntelLTD/property-intel-server/internal/connect"
	"github.com/PropertyIntelLTD/property-intel-server/internal/helpers"
	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
)

type PropertyService struct {
	propertyRepo models.PropertyRepo
}

func NewPropertyService(propertyRepo models.PropertyRepo) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
	}
}

func isHostedURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// CreateProperty validates the payload and inserts the row. Landlords
// and agents are pinned to their own listings regardless of what the
// payload claimed.
func (ps *PropertyService) CreateProperty(ctx context.Context, insert *models.PropertyInsert, role models.Role, actorID int64) (*models.Property, error) {
	switch role {
	case models.RoleLandlord:
		insert.LandlordID = &actorID
	case models.RoleAgent:
		insert.AgentID = &actorID
	}

	if err := models.Validate.Struct(insert); err != nil {
		return nil, fmt.Errorf("%w: property data: %v", models.ErrInvalidInput, err)
	}
	if err := models.ValidatePricing(insert.Status, insert.Rent, insert.Price); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	if insert.ImageURL != "" && !isHostedURL(insert.ImageURL) {
		url, err := helpers.UploadImage(ctx, connect.Cld, insert.ImageURL, helpers.PropertyFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload property image: %v", err)
		}
		insert.ImageURL = url
	}

	return ps.propertyRepo.CreateProperty(ctx, insert)
}

func (ps *PropertyService) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	return ps.propertyRepo.GetPropertyByID(ctx, id)
}

// ListProperties applies the central role-scoping policy on top of
// whatever equality filter the caller supplied. A landlord only ever
// sees their own rows, an agent only assigned rows; admins and
// tenants browse everything.
func (ps *PropertyService) ListProperties(ctx context.Context, role models.Role, actorID int64, filter map[string]string) ([]*models.Property, error) {
	merged := map[string]string{}
	for column, value := range filter {
		merged[column] = value
	}
	for column, value := range models.ScopeFilterFor(role, actorID, models.EntityProperties) {
		merged[column] = value
	}

	return ps.propertyRepo.ListProperties(ctx, merged)
}

// UpdateProperty stamps updated_at regardless of the caller's payload
// and enforces row ownership for non-admin roles.
func (ps *PropertyService) UpdateProperty(ctx context.Context, id int64, fields map[string]interface{}, role models.Role, actorID int64) (*models.Property, error) {
	if err := ps.authorizeRowAccess(ctx, id, role, actorID); err != nil {
		return nil, err
	}

	if img, ok := fields["image_url"].(string); ok && img != "" && !isHostedURL(img) {
		url, err := helpers.UploadImage(ctx, connect.Cld, img, helpers.PropertyFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload property image: %v", err)
		}
		fields["image_url"] = url
	}

	fields["updated_at"] = time.Now()
	return ps.propertyRepo.UpdateProperty(ctx, id, fields)
}

func (ps *PropertyService) DeleteProperty(ctx context.Context, id int64, role models.Role, actorID int64) error {
	if err := ps.authorizeRowAccess(ctx, id, role, actorID); err != nil {
		return err
	}
	return ps.propertyRepo.DeleteProperty(ctx, id)
}

func (ps *PropertyService) authorizeRowAccess(ctx context.Context, id int64, role models.Role, actorID int64) error {
	if role == models.RoleAdmin {
		return nil
	}

	property, err := ps.propertyRepo.GetPropertyByID(ctx, id)
	if err != nil {
		return err
	}
	if property == nil {
		return fmt.Errorf("property %d: %w", id, models.ErrNotFound)
	}

	switch role {
	case models.RoleLandlord:
		if property.LandlordID != nil && *property.LandlordID == actorID {
			return nil
		}
	case models.RoleAgent:
		if property.AgentID != nil && *property.AgentID == actorID {
			return nil
		}
	}
	return fmt.Errorf("property %d: %w", id, models.ErrForbidden)
}
