package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// WorkspaceSummary is a workspace as seen by one of its members.
type WorkspaceSummary struct {
	models.Organization
	Role models.Role `json:"role"`
}

type MemberResponse struct {
	ID       uuid.UUID   `json:"id"`
	UserID   uuid.UUID   `json:"user_id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

type CreateInvitationRequest struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type InvitationResponse struct {
	ID             uuid.UUID               `json:"id"`
	OrganizationID uuid.UUID               `json:"organization_id"`
	Email          string                  `json:"email"`
	Role           models.Role             `json:"role"`
	Token          string                  `json:"token"`
	Link           string                  `json:"link"`
	Status         models.InvitationStatus `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	ExpiresAt      *time.Time              `json:"expires_at"`
	AcceptedAt     *time.Time              `json:"accepted_at"`
	AcceptedBy     *uuid.UUID              `json:"accepted_by_user_id"`
}

// InvitationPreview is what an invitee sees before signing in.
type InvitationPreview struct {
	WorkspaceName string                  `json:"workspace_name"`
	Email         string                  `json:"email"`
	Role          models.Role             `json:"role"`
	Status        models.InvitationStatus `json:"status"`
	ExpiresAt     *time.Time              `json:"expires_at"`
}

type AcceptInvitationResponse struct {
	OrganizationID uuid.UUID   `json:"organization_id"`
	Role           models.Role `json:"role"`
}
