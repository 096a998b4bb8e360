package database

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsUnknownType(t *testing.T) {
	_, err := Connect(&config.Config{DBType: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteMigrateAndConstraints(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(db))

	orgID, userID := uuid.New(), uuid.New()
	first := models.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: models.RoleOwner}
	require.NoError(t, db.Create(&first).Error)

	dup := models.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: models.RoleMember}
	err = db.Create(&dup).Error
	require.Error(t, err)
	assert.Equal(t, apperr.KindDatabase, apperr.KindOf(err))
}

func TestUserCreateProvisionsProfile(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	user := models.User{Email: "ada@example.com", Password: "hash", FullName: "Ada"}
	require.NoError(t, db.Create(&user).Error)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", user.ID).Error)
	assert.Equal(t, "Ada", profile.FullName)
	assert.Equal(t, "ada@example.com", profile.Email)
}
