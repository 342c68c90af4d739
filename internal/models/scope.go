package models

import "strconv"

// EntityKind names a persisted collection for scoping decisions.
type EntityKind string

const (
	EntityUsers      EntityKind = "users"
	EntityProperties EntityKind = "properties"
	EntityBlogPosts  EntityKind = "blog_posts"
)

// ScopeFilterFor is the single place the role-to-filter mapping lives.
// It returns the equality filter a caller with the given role may list
// the entity with; nil means the listing is unrestricted.
//
// Landlords see only their own properties, agents only properties they
// are assigned to; admins and tenants browse everything. No other
// entity is scoped by role at the query layer.
func ScopeFilterFor(role Role, userID int64, entity EntityKind) map[string]string {
	if entity != EntityProperties {
		return nil
	}
	switch role {
	case RoleLandlord:
		return map[string]string{"landlord_id": strconv.FormatInt(userID, 10)}
	case RoleAgent:
		return map[string]string{"agent_id": strconv.FormatInt(userID, 10)}
	}
	return nil
}
