// Package access is the single authorization gate every workspace-scoped
// operation goes through: authenticate, resolve the owning workspace,
// then confirm membership (and, for invitation management, role).
package access

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotAuthenticated  = apperr.Authentication("you must be logged in")
	ErrNoWorkspaceAccess = apperr.Authorization("you do not have access to this workspace")
	ErrInsufficientRole  = apperr.Authorization("you do not have permission to manage this workspace")

	ErrProjectNotFound    = apperr.NotFound("Project")
	ErrTableNotFound      = apperr.NotFound("Table")
	ErrFieldNotFound      = apperr.NotFound("Field")
	ErrRecordNotFound     = apperr.NotFound("Record")
	ErrInvitationNotFound = apperr.NotFound("Invitation")
)

// ManagerRoles may manage invitations.
var ManagerRoles = []models.Role{models.RoleOwner, models.RoleAdmin}

type Gate struct {
	db *gorm.DB
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{db: db}
}

// RequireAuth returns the caller's user id or ErrNotAuthenticated.
func (g *Gate) RequireAuth(sess *tenant.Session) (uuid.UUID, error) {
	if sess == nil || sess.UserID == uuid.Nil {
		return uuid.Nil, ErrNotAuthenticated
	}
	return sess.UserID, nil
}

// RequireWorkspaceAccess confirms userID is a member of workspaceID and
// returns the membership row.
func (g *Gate) RequireWorkspaceAccess(ctx context.Context, userID, workspaceID uuid.UUID) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	err := g.db.WithContext(ctx).
		Scopes(tenant.ForOrganization(workspaceID)).
		Where("user_id = ?", userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoWorkspaceAccess
		}
		return nil, apperr.Database(err)
	}
	return &member, nil
}

// RequireRole is RequireWorkspaceAccess plus a role check.
func (g *Gate) RequireRole(ctx context.Context, userID, workspaceID uuid.UUID, roles ...models.Role) (*models.OrganizationMember, error) {
	member, err := g.RequireWorkspaceAccess(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if !member.HasRole(roles...) {
		return nil, ErrInsufficientRole
	}
	return member, nil
}

// Workspace authenticates sess and checks membership of workspaceID.
func (g *Gate) Workspace(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID) (*models.OrganizationMember, error) {
	userID, err := g.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	return g.RequireWorkspaceAccess(ctx, userID, workspaceID)
}

// RequireProjectInWorkspace rejects project references that belong to a
// different workspace.
func (g *Gate) RequireProjectInWorkspace(ctx context.Context, projectID, workspaceID uuid.UUID) error {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Project{}).
		Scopes(tenant.ForWorkspace(workspaceID)).
		Where("id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return apperr.Database(err)
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Project loads a project and authorizes the caller against its workspace.
// A project in a workspace the caller cannot see is reported as not found.
func (g *Gate) Project(ctx context.Context, sess *tenant.Session, projectID uuid.UUID) (*models.Project, *models.OrganizationMember, error) {
	userID, err := g.RequireAuth(sess)
	if err != nil {
		return nil, nil, err
	}
	var project models.Project
	if err := g.first(ctx, &project, projectID, ErrProjectNotFound); err != nil {
		return nil, nil, err
	}
	member, err := g.RequireWorkspaceAccess(ctx, userID, project.WorkspaceID)
	if err != nil {
		return nil, nil, hide(err, ErrProjectNotFound)
	}
	return &project, member, nil
}

// Table loads a table and authorizes the caller against its workspace.
func (g *Gate) Table(ctx context.Context, sess *tenant.Session, tableID uuid.UUID) (*models.EntityTable, *models.OrganizationMember, error) {
	userID, err := g.RequireAuth(sess)
	if err != nil {
		return nil, nil, err
	}
	var table models.EntityTable
	if err := g.first(ctx, &table, tableID, ErrTableNotFound); err != nil {
		return nil, nil, err
	}
	member, err := g.RequireWorkspaceAccess(ctx, userID, table.WorkspaceID)
	if err != nil {
		return nil, nil, hide(err, ErrTableNotFound)
	}
	return &table, member, nil
}

// Field walks field -> table -> workspace.
func (g *Gate) Field(ctx context.Context, sess *tenant.Session, fieldID uuid.UUID) (*models.EntityField, *models.EntityTable, error) {
	userID, err := g.RequireAuth(sess)
	if err != nil {
		return nil, nil, err
	}
	var field models.EntityField
	if err := g.first(ctx, &field, fieldID, ErrFieldNotFound); err != nil {
		return nil, nil, err
	}
	var table models.EntityTable
	if err := g.first(ctx, &table, field.TableID, ErrFieldNotFound); err != nil {
		return nil, nil, err
	}
	if _, err := g.RequireWorkspaceAccess(ctx, userID, table.WorkspaceID); err != nil {
		return nil, nil, hide(err, ErrFieldNotFound)
	}
	return &field, &table, nil
}

// Invitation loads an invitation and requires an owner or admin of its workspace.
func (g *Gate) Invitation(ctx context.Context, sess *tenant.Session, invitationID uuid.UUID) (*models.WorkspaceInvitation, error) {
	userID, err := g.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	var inv models.WorkspaceInvitation
	if err := g.first(ctx, &inv, invitationID, ErrInvitationNotFound); err != nil {
		return nil, err
	}
	if _, err := g.RequireRole(ctx, userID, inv.OrganizationID, ManagerRoles...); err != nil {
		return nil, hide(err, ErrInvitationNotFound)
	}
	return &inv, nil
}

func (g *Gate) first(ctx context.Context, dest any, id uuid.UUID, notFound error) error {
	err := g.db.WithContext(ctx).First(dest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return apperr.Database(err)
	}
	return nil
}

// hide maps a missing membership to notFound, so lookups by id do not reveal
// that a resource exists in another tenant.
func hide(err, notFound error) error {
	if errors.Is(err, ErrNoWorkspaceAccess) {
		return notFound
	}
	return err
}
