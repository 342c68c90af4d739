package models

import (
	"fmt"
	"strings"
	"time"
)

type PropertyStatus string

const (
	StatusForRent PropertyStatus = "For Rent"
	StatusForSale PropertyStatus = "For Sale"
	StatusSold    PropertyStatus = "Sold"
	StatusRented  PropertyStatus = "Rented"
)

type PropertyType string

const (
	TypeApartment PropertyType = "Apartment"
	TypeHouse     PropertyType = "House"
	TypeVilla     PropertyType = "Villa"
	TypeLoft      PropertyType = "Loft"
	TypeStudio    PropertyType = "Studio"
	TypePenthouse PropertyType = "Penthouse"
	TypeCottage   PropertyType = "Cottage"
)

// Property is the full persisted row. Landlord and Agent are weak
// references; the sub-objects are only populated when the read asked
// for relation expansion.
type Property struct {
	ID          int64          `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Address     string         `db:"address" json:"address"`
	City        string         `db:"city" json:"city"`
	Postcode    string         `db:"postcode" json:"postcode"`
	Country     string         `db:"country" json:"country"`
	Bedrooms    int            `db:"bedrooms" json:"bedrooms"`
	Bathrooms   int            `db:"bathrooms" json:"bathrooms"`
	Size        float64        `db:"size" json:"size"`
	Rent        *float64       `db:"rent" json:"rent"`
	Price       *float64       `db:"price" json:"price"`
	Status      PropertyStatus `db:"status" json:"status"`
	Type        PropertyType   `db:"type" json:"type"`
	Featured    bool           `db:"featured" json:"featured"`
	ImageURL    string         `db:"image_url" json:"image_url,omitempty"`
	LandlordID  *int64         `db:"landlord_id" json:"landlord_id"`
	AgentID     *int64         `db:"agent_id" json:"agent_id"`
	Landlord    *User          `json:"landlord,omitempty"`
	Agent       *User          `json:"agent,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// PropertyInsert is the creation payload.
type PropertyInsert struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Address     string         `json:"address" validate:"required"`
	City        string         `json:"city" validate:"required"`
	Postcode    string         `json:"postcode" validate:"required"`
	Country     string         `json:"country" validate:"required"`
	Bedrooms    int            `json:"bedrooms" validate:"min=0"`
	Bathrooms   int            `json:"bathrooms" validate:"min=0"`
	Size        float64        `json:"size" validate:"min=0"`
	Rent        *float64       `json:"rent,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	Status      PropertyStatus `json:"status" validate:"required,oneof='For Rent' 'For Sale' Sold Rented"`
	Type        PropertyType   `json:"type" validate:"required,oneof=Apartment House Villa Loft Studio Penthouse Cottage"`
	Featured    bool           `json:"featured"`
	ImageURL    string         `json:"image_url,omitempty"`
	LandlordID  *int64         `json:"landlord_id,omitempty"`
	AgentID     *int64         `json:"agent_id,omitempty"`
}

// ValidatePricing enforces the caller-side convention that the active
// money field matches the status: For Rent/Rented use rent, For
// Sale/Sold use price. The schema itself does not enforce this.
func ValidatePricing(status PropertyStatus, rent, price *float64) error {
	switch status {
	case StatusForRent, StatusRented:
		if rent == nil || *rent <= 0 {
			return fmt.Errorf("rent must be set and > 0 for status %q", status)
		}
	case StatusForSale, StatusSold:
		if price == nil || *price <= 0 {
			return fmt.Errorf("price must be set and > 0 for status %q", status)
		}
	default:
		return fmt.Errorf("unsupported status: %q", status)
	}
	return nil
}

// ActiveAmount returns the money field the status makes meaningful,
// or nil if it was never set.
func (p *Property) ActiveAmount() *float64 {
	switch p.Status {
	case StatusForRent, StatusRented:
		return p.Rent
	case StatusForSale, StatusSold:
		return p.Price
	}
	return nil
}

// Location is a display helper for listing pages.
func (p *Property) Location() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.City, p.Postcode, p.Country} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
