package services

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvitationService manages single-use workspace invitations.
//
// An invitation is pending until accepted; expiry is derived from
// expires_at and never stored. Revoking deletes the row.
type InvitationService struct {
	db   *gorm.DB
	cfg  *config.Config
	gate *access.Gate
	now  func() time.Time
}

func NewInvitationService(db *gorm.DB, cfg *config.Config, gate *access.Gate) *InvitationService {
	return &InvitationService{db: db, cfg: cfg, gate: gate, now: time.Now}
}

// Invite issues a token for email to join workspaceID with role. Only
// owners and admins may invite, and only one unaccepted invitation may
// exist per address.
func (s *InvitationService) Invite(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	userID, err := s.gate.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	if _, err := s.gate.RequireRole(ctx, userID, workspaceID, access.ManagerRoles...); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return nil, apperr.Validation("unsupported role %q", role)
	}

	db := s.db.WithContext(ctx)
	var pending int64
	if err := db.Model(&models.WorkspaceInvitation{}).
		Scopes(tenant.ForOrganization(workspaceID)).
		Where("email = ? AND accepted_at IS NULL", email).
		Count(&pending).Error; err != nil {
		return nil, apperr.Database(err)
	}
	if pending > 0 {
		return nil, ErrInvitationPending
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}
	expires := s.now().Add(s.cfg.InvitationExpiry)
	inv := models.WorkspaceInvitation{
		OrganizationID:  workspaceID,
		Email:           email,
		Token:           token,
		Role:            role,
		CreatedByUserID: userID,
		ExpiresAt:       &expires,
	}
	if err := db.Create(&inv).Error; err != nil {
		return nil, apperr.Database(err)
	}

	slog.Info("invitation created", "action", "invitation.create", "user_id", userID, "workspace_id", workspaceID, "invitation_id", inv.ID)
	resp := s.toResponse(&inv)
	return &resp, nil
}

// Accept consumes token for the signed-in caller. Membership insert and
// acceptance commit together or not at all.
func (s *InvitationService) Accept(ctx context.Context, sess *tenant.Session, token string) (*models.OrganizationMember, error) {
	userID, err := s.gate.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	inv, err := s.byToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if inv.AcceptedAt != nil {
		return nil, ErrInvitationAccepted
	}
	if inv.Expired(now) {
		return nil, ErrInvitationExpired
	}
	if !strings.EqualFold(inv.Email, sess.Email) {
		return nil, ErrInvitationEmailMismatch
	}

	member := models.OrganizationMember{
		OrganizationID: inv.OrganizationID,
		UserID:         userID,
		Role:           inv.Role,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.OrganizationMember{}).
			Scopes(tenant.ForOrganization(inv.OrganizationID)).
			Where("user_id = ?", userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyMember
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		res := tx.Model(&models.WorkspaceInvitation{}).
			Where("id = ? AND accepted_at IS NULL", inv.ID).
			Updates(map[string]any{
				"accepted_at":         now,
				"accepted_by_user_id": userID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvitationAccepted
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyMember), errors.Is(err, ErrInvitationAccepted):
			return nil, err
		case apperr.IsConstraintViolation(err):
			return nil, ErrAlreadyMember
		}
		slog.Error("invitation accept failed", "action", "invitation.accept", "user_id", userID, "workspace_id", inv.OrganizationID, "error", err)
		return nil, apperr.Database(err)
	}

	slog.Info("invitation accepted", "action", "invitation.accept", "user_id", userID, "workspace_id", inv.OrganizationID, "invitation_id", inv.ID)
	return &member, nil
}

// Revoke deletes an invitation. Owners and admins only.
func (s *InvitationService) Revoke(ctx context.Context, sess *tenant.Session, invitationID uuid.UUID) error {
	inv, err := s.gate.Invitation(ctx, sess, invitationID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.WorkspaceInvitation{}, "id = ?", inv.ID).Error; err != nil {
		return apperr.Database(err)
	}
	slog.Info("invitation revoked", "action", "invitation.revoke", "user_id", sess.UserID, "workspace_id", inv.OrganizationID, "invitation_id", inv.ID)
	return nil
}

// List returns the workspace's invitations, newest first.
func (s *InvitationService) List(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID) ([]dto.InvitationResponse, error) {
	userID, err := s.gate.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	if _, err := s.gate.RequireRole(ctx, userID, workspaceID, access.ManagerRoles...); err != nil {
		return nil, err
	}
	var invs []models.WorkspaceInvitation
	err = s.db.WithContext(ctx).
		Scopes(tenant.ForOrganization(workspaceID), tenant.NewestFirst).
		Find(&invs).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	out := make([]dto.InvitationResponse, len(invs))
	for i := range invs {
		out[i] = s.toResponse(&invs[i])
	}
	return out, nil
}

// Preview describes an invitation to whoever holds its token; no session needed.
func (s *InvitationService) Preview(ctx context.Context, token string) (*dto.InvitationPreview, error) {
	inv, err := s.byToken(ctx, token)
	if err != nil {
		return nil, err
	}
	var org models.Organization
	if err := s.db.WithContext(ctx).Select("name").First(&org, "id = ?", inv.OrganizationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrInvitationNotFound
		}
		return nil, apperr.Database(err)
	}
	return &dto.InvitationPreview{
		WorkspaceName: org.Name,
		Email:         inv.Email,
		Role:          inv.Role,
		Status:        inv.Status(s.now()),
		ExpiresAt:     inv.ExpiresAt,
	}, nil
}

// Link is the URL an invitee opens to accept.
func (s *InvitationService) Link(token string) string {
	return strings.TrimRight(s.cfg.AppBaseURL, "/") + "/invitations/" + url.PathEscape(token)
}

func (s *InvitationService) byToken(ctx context.Context, token string) (*models.WorkspaceInvitation, error) {
	if token == "" {
		return nil, access.ErrInvitationNotFound
	}
	var inv models.WorkspaceInvitation
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrInvitationNotFound
		}
		return nil, apperr.Database(err)
	}
	return &inv, nil
}

func (s *InvitationService) toResponse(inv *models.WorkspaceInvitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Role:           inv.Role,
		Token:          inv.Token,
		Link:           s.Link(inv.Token),
		Status:         inv.Status(s.now()),
		CreatedAt:      inv.CreatedAt,
		ExpiresAt:      inv.ExpiresAt,
		AcceptedAt:     inv.AcceptedAt,
		AcceptedBy:     inv.AcceptedByUserID,
	}
}
