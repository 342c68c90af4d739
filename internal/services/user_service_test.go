package services

import (
	"context"
	"testing"
	"time"

	"github.com/PropertyIntelLTD/property-intel-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfile(t *testing.T, repo *fakeUserRepo, email string, role models.Role) *models.User {
	t.Helper()
	authID, err := repo.SignUp(context.Background(), email, "Sup3rSecret")
	require.NoError(t, err)
	user, err := repo.CreateProfile(context.Background(), &models.UserInsert{
		AuthID: authID,
		Name:   "Seeded User",
		Email:  email,
		Role:   role,
	})
	require.NoError(t, err)
	return user
}

func TestUpdateProfileStripsProtectedFields(t *testing.T) {
	repo := newFakeUserRepo()
	us := NewUserService(repo)
	user := seedProfile(t, repo, "ama@example.com", models.RoleTenant)

	before := user.UpdatedAt
	time.Sleep(5 * time.Millisecond)

	fields := map[string]interface{}{
		"name":    "Renamed",
		"role":    models.RoleAdmin,
		"auth_id": "spoofed",
		"id":      int64(999),
	}
	updated, err := us.UpdateProfile(context.Background(), user.ID, fields)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.RoleTenant, updated.Role, "role must not change through profile edits")
	assert.Equal(t, user.AuthID, updated.AuthID)
	assert.Equal(t, user.ID, updated.ID)
	assert.True(t, updated.UpdatedAt.After(before), "updated_at must be stamped")

	_, hasStamp := fields["updated_at"]
	assert.True(t, hasStamp)
}

func TestUpdateProfileNothingLeftToUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	us := NewUserService(repo)
	user := seedProfile(t, repo, "ama@example.com", models.RoleTenant)

	_, err := us.UpdateProfile(context.Background(), user.ID, map[string]interface{}{
		"role": models.RoleAdmin,
	})
	assert.Error(t, err)
}

func TestUpdateProfileMissingUser(t *testing.T) {
	repo := newFakeUserRepo()
	us := NewUserService(repo)

	_, err := us.UpdateProfile(context.Background(), 42, map[string]interface{}{"name": "X"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetRole(t *testing.T) {
	repo := newFakeUserRepo()
	us := NewUserService(repo)
	user := seedProfile(t, repo, "ama@example.com", models.RoleTenant)

	updated, err := us.SetRole(context.Background(), user.ID, models.RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAgent, updated.Role)

	_, err = us.SetRole(context.Background(), user.ID, models.Role("superuser"))
	assert.Error(t, err)
}

func TestCreateUserProvisionsIdentityAndProfile(t *testing.T) {
	repo := newFakeUserRepo()
	us := NewUserService(repo)

	user, err := us.CreateUser(context.Background(), "agent@example.com", "Sup3rSecret", "New Agent", "0201234567", models.RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, repo.identities["agent@example.com"], user.AuthID)
	assert.Equal(t, models.RoleAgent, user.Role)
	assert.Equal(t, "0201234567", user.Phone)
}

func TestDeleteUserRemovesIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	us := NewUserService(repo)
	user := seedProfile(t, repo, "ama@example.com", models.RoleTenant)

	require.NoError(t, us.DeleteUser(context.Background(), user.ID))

	gone, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, []string{user.AuthID}, repo.deletedIdentities)
}

func TestDeleteUserMissing(t *testing.T) {
	repo := newFakeUserRepo()
	us := NewUserService(repo)

	err := us.DeleteUser(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, repo.deletedIdentities)
}

func TestListUsersRoleFilter(t *testing.T) {
	repo := newFakeUserRepo()
	us := NewUserService(repo)
	seedProfile(t, repo, "landlord@example.com", models.RoleLandlord)
	seedProfile(t, repo, "tenant1@example.com", models.RoleTenant)
	seedProfile(t, repo, "tenant2@example.com", models.RoleTenant)

	tenants, err := us.ListUsers(context.Background(), map[string]string{"role": "tenant"})
	require.NoError(t, err)
	assert.Len(t, tenants, 2)
	for _, u := range tenants {
		assert.Equal(t, models.RoleTenant, u.Role)
	}

	all, err := us.ListUsers(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
