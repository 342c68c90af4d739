package helpers

// EnhancedClaims combines the raw token claims with the profile row
// resolved during authentication.
type EnhancedClaims struct {
	*CustomClaims
	Role      string `json:"role"`
	UserID    int64  `json:"id"`
	AuthID    string `json:"auth_id"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (ec *EnhancedClaims) IsAdmin() bool {
	return ec.Role == "admin"
}

func (ec *EnhancedClaims) IsAgent() bool {
	return ec.Role == "agent"
}

func (ec *EnhancedClaims) IsLandlord() bool {
	return ec.Role == "landlord"
}

func (ec *EnhancedClaims) HasRole(role string) bool {
	return ec.Role == role
}

func (ec *EnhancedClaims) IsOwner(userID int64) bool {
	return ec.UserID == userID
}

// CanManageListings reports whether the caller may create or edit
// property rows at all; per-row scoping happens in the service layer.
func (ec *EnhancedClaims) CanManageListings() bool {
	return ec.IsAdmin() || ec.IsAgent() || ec.IsLandlord()
}
