package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Organization is the tenant boundary, shown to users as a workspace.
type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:255;not null;uniqueIndex:idx_organizations_creator_slug,priority:2" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_organizations_creator_slug,priority:1" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrganizationMember grants a user a role inside one organization.
type OrganizationMember struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_organization_members_org_user,priority:1" json:"organization_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_organization_members_org_user,priority:2" json:"user_id"`
	Role           Role      `gorm:"size:20;not null;default:'member'" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

func (m *OrganizationMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// HasRole reports whether the member holds one of roles.
func (m *OrganizationMember) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if m.Role == r {
			return true
		}
	}
	return false
}
