package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pw")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.InvitationExpiry)
	assert.Equal(t, 15, cfg.ProfilePollAttempts)
	assert.Equal(t, 300*time.Millisecond, cfg.ProfilePollDelay)
	assert.Equal(t, "session", cfg.SessionCookieName)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", "/tmp/test.sqlite")
	t.Setenv("INVITATION_EXPIRY", "48h")
	t.Setenv("PROFILE_POLL_ATTEMPTS", "not-a-number")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()
	assert.Equal(t, 48*time.Hour, cfg.InvitationExpiry)
	assert.Equal(t, 15, cfg.ProfilePollAttempts)
	assert.True(t, cfg.CookieSecure)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"missing secret", Config{DBType: "postgres", DBPassword: "x"}, false},
		{"postgres without password", Config{JWTSecret: "s", DBType: "postgres"}, false},
		{"postgres with url", Config{JWTSecret: "s", DBType: "postgres", DatabaseURL: "postgres://x"}, true},
		{"unknown driver", Config{JWTSecret: "s", DBType: "oracle"}, false},
		{"sqlite", Config{JWTSecret: "s", DBType: "sqlite", DBPath: "db.sqlite"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@h/db", DBHost: "ignored"}
	assert.Equal(t, "postgres://u:p@h/db", cfg.DSN())

	cfg = &Config{DBHost: "h", DBUser: "u", DBPassword: "p", DBName: "d", DBPort: "5432", DBSSLMode: "disable"}
	assert.Contains(t, cfg.DSN(), "host=h user=u password=p dbname=d port=5432")
}
