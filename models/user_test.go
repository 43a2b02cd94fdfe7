package models

import (
	"testing"
	"travelworld/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	setupDB(t)

	u, err := UserCreate(" Ada ", "Lovelace", "555-0100", "Ada@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "Ada Lovelace", u.DisplayName())
	assert.NotEqual(t, "secret1", u.Password)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := UserCreate("Other", "Person", "555-0101", "ada@example.com", "secret2")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
	t.Run("duplicate email with other case is a conflict", func(t *testing.T) {
		_, err := UserCreate("Other", "Person", "555-0101", " ADA@example.COM", "secret2")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	var count int64
	require.NoError(t, db.Instance.Model(&User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserLogin(t *testing.T) {
	setupDB(t)
	created, err := UserCreate("Ada", "Lovelace", "555-0100", "ada@example.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "ada@example.com", "secret1", nil},
		{"email case ignored", "ADA@example.com", "secret1", nil},
		{"wrong password", "ada@example.com", "secret2", ErrInvalidCredentials},
		{"unknown email", "bob@example.com", "secret1", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := UserLogin(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, u.ID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.ID, u.ID)
			assert.Equal(t, RoleUser, u.Role)
		})
	}
}

func TestSeedAdmin(t *testing.T) {
	setupDB(t)

	created, err := SeedAdmin("admin@123", "password")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin("admin@123", "other")
	require.NoError(t, err)
	assert.False(t, created, "second seed is a no-op")

	admin, err := UserLogin("admin@123", "password")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.HasRoles([]Role{RoleAdmin}))
}

func TestUser_HasRoles(t *testing.T) {
	user := User{Role: RoleUser}
	admin := User{Role: RoleAdmin}
	assert.True(t, user.HasRoles(nil))
	assert.True(t, user.HasRoles([]Role{RoleUser}))
	assert.False(t, user.HasRoles([]Role{RoleAdmin}))
	assert.True(t, admin.HasRoles([]Role{RoleUser, RoleAdmin}))
}
