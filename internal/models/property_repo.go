package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// propertyColumns embeds the landlord and agent rows so reads come
// back with the weak references already resolved. PostgREST picks the
// foreign key from the column name after the bang.
const propertyColumns = "*, landlord:users!landlord_id(id,auth_id,name,email,phone,role,avatar_url,created_at,updated_at), agent:users!agent_id(id,auth_id,name,email,phone,role,avatar_url,created_at,updated_at)"

type PropertyRepo interface {
	CreateProperty(ctx context.Context, insert *PropertyInsert) (*Property, error)
	GetPropertyByID(ctx context.Context, id int64) (*Property, error)
	ListProperties(ctx context.Context, filter map[string]string) ([]*Property, error)
	UpdateProperty(ctx context.Context, id int64, fields map[string]interface{}) (*Property, error)
	DeleteProperty(ctx context.Context, id int64) error
}

func (su *SupabaseRepo) CreateProperty(ctx context.Context, insert *PropertyInsert) (*Property, error) {
	raw, count, err := su.supabaseClient.
		From(PropertiesTable).
		Insert(insert, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, TranslateRestError("create property", 0, err)
	}

	var properties []Property
	if err := json.Unmarshal(raw, &properties); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created property: %v", err)
	}
	if count == 0 || len(properties) == 0 {
		return nil, fmt.Errorf("no property data returned after insert")
	}

	return &properties[0], nil
}

// GetPropertyByID returns (nil, nil) when no row exists.
func (su *SupabaseRepo) GetPropertyByID(ctx context.Context, id int64) (*Property, error) {
	raw, _, err := su.supabaseClient.
		From(PropertiesTable).
		Select(propertyColumns, "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Single().
		Execute()
	if err != nil {
		if IsSingleRowNotFound(err) {
			return nil, nil
		}
		return nil, TranslateRestError("get property", 0, err)
	}

	property := &Property{}
	if err := json.Unmarshal(raw, property); err != nil {
		return nil, fmt.Errorf("failed to unmarshal property row: %v", err)
	}

	return property, nil
}

// ListProperties returns every row matching the equality filter, each
// with its landlord and agent resolved. An empty filter lists all.
func (su *SupabaseRepo) ListProperties(ctx context.Context, filter map[string]string) ([]*Property, error) {
	query := su.supabaseClient.From(PropertiesTable).Select(propertyColumns, "exact", false)
	for column, value := range filter {
		query = query.Eq(column, value)
	}

	raw, count, err := query.Execute()
	if err != nil {
		return nil, TranslateRestError("list properties", 0, err)
	}
	if count == 0 {
		return []*Property{}, nil
	}

	var properties []*Property
	if err := json.Unmarshal(raw, &properties); err != nil {
		return nil, fmt.Errorf("failed to unmarshal property rows: %v", err)
	}

	return properties, nil
}

func (su *SupabaseRepo) UpdateProperty(ctx context.Context, id int64, fields map[string]interface{}) (*Property, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	raw, count, err := su.supabaseClient.
		From(PropertiesTable).
		Update(fields, "", "exact").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return nil, TranslateRestError("update property", 0, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("update property %d: %w", id, ErrNotFound)
	}

	var properties []Property
	if err := json.Unmarshal(raw, &properties); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated property: %v", err)
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("no property data returned after update")
	}

	return &properties[0], nil
}

func (su *SupabaseRepo) DeleteProperty(ctx context.Context, id int64) error {
	_, count, err := su.supabaseClient.
		From(PropertiesTable).
		Delete("", "exact").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return TranslateRestError("delete property", 0, err)
	}
	if count == 0 {
		return fmt.Errorf("delete property %d: %w", id, ErrNotFound)
	}

	return nil
}
