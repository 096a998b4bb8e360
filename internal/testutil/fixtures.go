package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Config returns settings suitable for tests: sqlite, short polls.
func Config() *config.Config {
	return &config.Config{
		AppEnv:              "test",
		AppBaseURL:          "http://localhost:8080",
		CORSOrigins:         "*",
		DBType:              "sqlite",
		DBPath:              ":memory:",
		JWTSecret:           "test-secret",
		JWTAccessExpiry:     15 * time.Minute,
		JWTRefreshExpiry:    24 * time.Hour,
		SessionCookieName:   "session",
		InvitationExpiry:    7 * 24 * time.Hour,
		ProfilePollAttempts: 3,
		ProfilePollDelay:    time.Millisecond,
		LogRetentionDays:    30,
	}
}

// CreateUser inserts a user (and, through its hook, a profile).
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: strings.ToLower(email), Password: "x", FullName: strings.Split(email, "@")[0]}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Session returns the signed-in session for user.
func Session(user *models.User) *tenant.Session {
	return &tenant.Session{UserID: user.ID, Email: user.Email}
}

// CreateWorkspace inserts an organization owned by owner.
func CreateWorkspace(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Organization {
	t.Helper()
	org := &models.Organization{Name: name, Slug: strings.ToLower(strings.ReplaceAll(name, " ", "-")), CreatedBy: owner.ID}
	require.NoError(t, db.Create(org).Error)
	AddMember(t, db, org, owner, models.RoleOwner)
	return org
}

// AddMember grants user role in org.
func AddMember(t *testing.T, db *gorm.DB, org *models.Organization, user *models.User, role models.Role) {
	t.Helper()
	require.NoError(t, db.Create(&models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           role,
	}).Error)
}
