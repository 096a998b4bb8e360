package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService is the in-process identity provider: accounts, password
// sign-in and rotating refresh tokens.
type AuthService struct {
	db          *gorm.DB
	cfg         *config.Config
	gate        *access.Gate
	invitations *InvitationService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, gate *access.Gate, invitations *InvitationService) *AuthService {
	return &AuthService{db: db, cfg: cfg, gate: gate, invitations: invitations}
}

func (s *AuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	fullName, err := cleanName("full name", req.FullName, 2)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperr.Database(err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hash),
		FullName: fullName,
	}
	if err := db.Create(&user).Error; err != nil {
		if apperr.IsConstraintViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, apperr.Database(err)
	}

	if !s.waitForProfile(ctx, user.ID) {
		slog.Warn("profile not provisioned in time, continuing sign-up", "user_id", user.ID)
	}

	resp, err := s.generateTokenPair(ctx, &user, fullName)
	if err != nil {
		return nil, err
	}
	slog.Info("user signed up", "action", "auth.signup", "user_id", user.ID)

	if token := strings.TrimSpace(req.InvitationToken); token != "" {
		sess := &tenant.Session{UserID: user.ID, Email: user.Email}
		member, err := s.invitations.Accept(ctx, sess, token)
		if err != nil {
			slog.Warn("invitation not accepted during sign-up", "user_id", user.ID, "error", err)
		} else {
			resp.JoinedWorkspaceID = &member.OrganizationID
		}
	}
	return resp, nil
}

// waitForProfile polls for the provisioned profile row. It gives up after
// the configured attempts rather than failing the sign-up.
func (s *AuthService) waitForProfile(ctx context.Context, userID uuid.UUID) bool {
	for attempt := 0; attempt < s.cfg.ProfilePollAttempts; attempt++ {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", userID).Count(&count).Error
		if err == nil && count > 0 {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(s.cfg.ProfilePollDelay):
		}
	}
	return false
}

func (s *AuthService) SignIn(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Database(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(ctx, &user, s.displayName(ctx, user.ID))
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrInvalidToken
	}
	db := s.db.WithContext(ctx)

	var stored models.RefreshToken
	if err := db.Where("token_hash = ? AND revoked = ?", hashToken(refreshToken), false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	res := db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked = ?", stored.ID, false).
		Update("revoked", true)
	if res.Error != nil {
		return nil, apperr.Database(res.Error)
	}
	if res.RowsAffected == 0 || time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, ErrInvalidToken
	}

	return s.generateTokenPair(ctx, &user, s.displayName(ctx, user.ID))
}

func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashToken(refreshToken)).
		Update("revoked", true).Error
	if err != nil {
		return apperr.Database(err)
	}
	return nil
}

// GetUser resolves the signed-in identity with its profile.
func (s *AuthService) GetUser(ctx context.Context, sess *tenant.Session) (*dto.UserResponse, error) {
	userID, err := s.gate.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Database(err)
	}
	return &dto.UserResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
	}, nil
}

// UpdateProfile changes the display name, the only mutable profile attribute.
func (s *AuthService) UpdateProfile(ctx context.Context, sess *tenant.Session, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	userID, err := s.gate.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	fullName, err := cleanName("full name", req.FullName, 2)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", userID).Update("full_name", fullName)
	if res.Error != nil {
		return nil, apperr.Database(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	slog.Info("profile updated", "action", "profile.update", "user_id", userID)
	return s.GetUser(ctx, sess)
}

func (s *AuthService) displayName(ctx context.Context, userID uuid.UUID) string {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Select("full_name").First(&profile, "id = ?", userID).Error; err != nil {
		return ""
	}
	return profile.FullName
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User, fullName string) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
		User: dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: fullName,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawToken, err := GenerateToken()
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", apperr.Database(err)
	}

	return rawToken, nil
}

// GenerateToken returns 32 random bytes, URL-safe encoded.
func GenerateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
