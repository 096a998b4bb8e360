package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// WorkspaceInvitation lets a named email join an organization once.
type WorkspaceInvitation struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_workspace_invitations_org_email,priority:1" json:"organization_id"`
	Email            string     `gorm:"size:255;not null;index:idx_workspace_invitations_org_email,priority:2" json:"email"`
	Token            string     `gorm:"size:64;not null;uniqueIndex" json:"token"`
	Role             Role       `gorm:"size:20;not null;default:'member'" json:"role"`
	CreatedByUserID  uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_user_id"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        *time.Time `json:"expires_at"`
	AcceptedAt       *time.Time `json:"accepted_at"`
	AcceptedByUserID *uuid.UUID `gorm:"type:uuid" json:"accepted_by_user_id"`
}

func (i *WorkspaceInvitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Expired is derived from ExpiresAt; it is never stored.
func (i *WorkspaceInvitation) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

func (i *WorkspaceInvitation) Status(now time.Time) InvitationStatus {
	switch {
	case i.AcceptedAt != nil:
		return InvitationAccepted
	case i.Expired(now):
		return InvitationExpired
	default:
		return InvitationPending
	}
}
