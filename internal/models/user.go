package models

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleLandlord, RoleTenant:
		return true
	}
	return false
}

// User is the full persisted row. AuthID links the row to exactly one
// GoTrue identity; the id column itself is a plain bigint.
type User struct {
	ID        int64     `db:"id" json:"id"`
	AuthID    string    `db:"auth_id" json:"auth_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Role      Role      `db:"role" json:"role"`
	AvatarURL string    `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UserInsert is the creation payload; id and timestamps are filled by
// the server.
type UserInsert struct {
	AuthID    string `json:"auth_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role" validate:"required,oneof=admin agent landlord tenant"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
