package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewWorkspaceService(db *gorm.DB, gate *access.Gate) *WorkspaceService {
	return &WorkspaceService{db: db, gate: gate}
}

// Create inserts the organization and its owner membership in one
// transaction. A blank slug is derived from the name.
func (s *WorkspaceService) Create(ctx context.Context, sess *tenant.Session, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceSummary, error) {
	userID, err := s.gate.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	name, err := cleanName("name", req.Name, 2)
	if err != nil {
		return nil, err
	}
	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(name)
	}
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	if err := checkDescription(req.Description); err != nil {
		return nil, err
	}

	org := models.Organization{
		Name:        name,
		Slug:        slug,
		Description: req.Description,
		CreatedBy:   userID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Organization{}).
			Where("created_by = ? AND slug = ?", userID, slug).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugTaken
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         userID,
			Role:           models.RoleOwner,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrSlugTaken) || apperr.IsConstraintViolation(err) {
			return nil, ErrSlugTaken
		}
		slog.Error("workspace create failed", "action", "workspace.create", "user_id", userID, "error", err)
		return nil, apperr.Database(err)
	}

	slog.Info("workspace created", "action", "workspace.create", "user_id", userID, "workspace_id", org.ID)
	return &dto.WorkspaceSummary{Organization: org, Role: models.RoleOwner}, nil
}

// ListMine returns the caller's workspaces in the order they were joined.
func (s *WorkspaceService) ListMine(ctx context.Context, sess *tenant.Session) ([]dto.WorkspaceSummary, error) {
	userID, err := s.gate.RequireAuth(sess)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var memberships []models.OrganizationMember
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&memberships).Error; err != nil {
		return nil, apperr.Database(err)
	}
	if len(memberships) == 0 {
		return []dto.WorkspaceSummary{}, nil
	}

	ids := make([]uuid.UUID, len(memberships))
	for i, m := range memberships {
		ids[i] = m.OrganizationID
	}
	var orgs []models.Organization
	if err := db.Where("id IN ?", ids).Find(&orgs).Error; err != nil {
		return nil, apperr.Database(err)
	}
	byID := make(map[uuid.UUID]models.Organization, len(orgs))
	for _, o := range orgs {
		byID[o.ID] = o
	}

	out := make([]dto.WorkspaceSummary, 0, len(memberships))
	for _, m := range memberships {
		if org, ok := byID[m.OrganizationID]; ok {
			out = append(out, dto.WorkspaceSummary{Organization: org, Role: m.Role})
		}
	}
	return out, nil
}

// HasWorkspace reports whether userID belongs to any workspace.
func (s *WorkspaceService) HasWorkspace(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.OrganizationMember{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, apperr.Database(err)
	}
	return count > 0, nil
}

func (s *WorkspaceService) Get(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID) (*dto.WorkspaceSummary, error) {
	member, err := s.gate.Workspace(ctx, sess, workspaceID)
	if err != nil {
		return nil, err
	}
	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, apperr.Database(err)
	}
	return &dto.WorkspaceSummary{Organization: org, Role: member.Role}, nil
}

// ListMembers returns members in join order with their profile details.
func (s *WorkspaceService) ListMembers(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID) ([]dto.MemberResponse, error) {
	if _, err := s.gate.Workspace(ctx, sess, workspaceID); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var members []models.OrganizationMember
	if err := db.Scopes(tenant.ForOrganization(workspaceID)).Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, apperr.Database(err)
	}

	userIDs := make([]uuid.UUID, len(members))
	for i, m := range members {
		userIDs[i] = m.UserID
	}
	profiles := map[uuid.UUID]models.Profile{}
	if len(userIDs) > 0 {
		var rows []models.Profile
		if err := db.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			slog.Warn("member profiles unavailable", "workspace_id", workspaceID, "error", err)
		}
		for _, p := range rows {
			profiles[p.ID] = p
		}
	}

	out := make([]dto.MemberResponse, len(members))
	for i, m := range members {
		p := profiles[m.UserID]
		out[i] = dto.MemberResponse{
			ID:       m.ID,
			UserID:   m.UserID,
			Email:    p.Email,
			FullName: p.FullName,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// ListTables returns every table of the workspace, newest first.
func (s *WorkspaceService) ListTables(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID) ([]models.EntityTable, error) {
	if _, err := s.gate.Workspace(ctx, sess, workspaceID); err != nil {
		return nil, err
	}
	tables := []models.EntityTable{}
	err := s.db.WithContext(ctx).
		Scopes(tenant.ForWorkspace(workspaceID), tenant.NewestFirst).
		Find(&tables).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return tables, nil
}

// Delete removes a workspace and everything it owns. Owners only.
func (s *WorkspaceService) Delete(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID) error {
	userID, err := s.gate.RequireAuth(sess)
	if err != nil {
		return err
	}
	if _, err := s.gate.RequireRole(ctx, userID, workspaceID, models.RoleOwner); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := tableIDs(tx, tenant.ForWorkspace(workspaceID))
		if err != nil {
			return err
		}
		if err := deleteTables(tx, ids); err != nil {
			return err
		}
		if err := tx.Scopes(tenant.ForWorkspace(workspaceID)).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(tenant.ForOrganization(workspaceID)).Delete(&models.WorkspaceInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(tenant.ForOrganization(workspaceID)).Delete(&models.OrganizationMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Organization{}, "id = ?", workspaceID).Error
	})
	if err != nil {
		slog.Error("workspace delete failed", "action", "workspace.delete", "user_id", userID, "workspace_id", workspaceID, "error", err)
		return apperr.Database(err)
	}
	slog.Info("workspace deleted", "action", "workspace.delete", "user_id", userID, "workspace_id", workspaceID)
	return nil
}
