package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewProjectService(db *gorm.DB, gate *access.Gate) *ProjectService {
	return &ProjectService{db: db, gate: gate}
}

func (s *ProjectService) Create(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID, req *dto.CreateProjectRequest) (*models.Project, error) {
	member, err := s.gate.Workspace(ctx, sess, workspaceID)
	if err != nil {
		return nil, err
	}
	name, err := cleanName("name", req.Name, 1)
	if err != nil {
		return nil, err
	}
	if err := checkDescription(req.Description); err != nil {
		return nil, err
	}
	color := DefaultColor
	if req.Color != nil {
		color = NormalizeColor(*req.Color)
	}

	project := models.Project{
		WorkspaceID: workspaceID,
		Name:        name,
		Description: req.Description,
		Color:       color,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, apperr.Database(err)
	}
	slog.Info("project created", "action", "project.create", "user_id", member.UserID, "workspace_id", workspaceID, "project_id", project.ID)
	return &project, nil
}

// Get returns a project with its tables, newest first.
func (s *ProjectService) Get(ctx context.Context, sess *tenant.Session, projectID uuid.UUID) (*dto.ProjectWithTables, error) {
	project, _, err := s.gate.Project(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	tables := []models.EntityTable{}
	err = s.db.WithContext(ctx).
		Scopes(tenant.ForWorkspace(project.WorkspaceID), tenant.NewestFirst).
		Where("project_id = ?", project.ID).
		Find(&tables).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return &dto.ProjectWithTables{Project: *project, Tables: tables}, nil
}

// Update applies only the supplied attributes.
func (s *ProjectService) Update(ctx context.Context, sess *tenant.Session, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	if req.Empty() {
		return nil, ErrEmptyUpdate
	}
	project, member, err := s.gate.Project(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name, err := cleanName("name", *req.Name, 1)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Description != nil {
		if err := checkDescription(req.Description); err != nil {
			return nil, err
		}
		updates["description"] = *req.Description
	}
	if req.Color != nil {
		updates["color"] = NormalizeColor(*req.Color)
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(project).Updates(updates).Error; err != nil {
		return nil, apperr.Database(err)
	}
	if err := db.First(project, "id = ?", project.ID).Error; err != nil {
		return nil, apperr.Database(err)
	}
	slog.Info("project updated", "action", "project.update", "user_id", member.UserID, "workspace_id", project.WorkspaceID, "project_id", project.ID)
	return project, nil
}

// Delete removes the project and, transitively, its tables.
func (s *ProjectService) Delete(ctx context.Context, sess *tenant.Session, projectID uuid.UUID) error {
	project, member, err := s.gate.Project(ctx, sess, projectID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := tableIDs(tx, func(db *gorm.DB) *gorm.DB {
			return db.Where("project_id = ?", project.ID)
		})
		if err != nil {
			return err
		}
		if err := deleteTables(tx, ids); err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", project.ID).Error
	})
	if err != nil {
		slog.Error("project delete failed", "action", "project.delete", "workspace_id", project.WorkspaceID, "error", err)
		return apperr.Database(err)
	}
	slog.Info("project deleted", "action", "project.delete", "user_id", member.UserID, "workspace_id", project.WorkspaceID, "project_id", project.ID)
	return nil
}

// Hierarchy groups the workspace's tables under their projects; tables with
// no project are returned separately. Both lists are newest first. Tables
// are fetched in one query and bucketed by project.
func (s *ProjectService) Hierarchy(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID) (*dto.Hierarchy, error) {
	if _, err := s.gate.Workspace(ctx, sess, workspaceID); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var projects []models.Project
	if err := db.Scopes(tenant.ForWorkspace(workspaceID), tenant.NewestFirst).Find(&projects).Error; err != nil {
		return nil, apperr.Database(err)
	}
	var tables []models.EntityTable
	if err := db.Scopes(tenant.ForWorkspace(workspaceID), tenant.NewestFirst).Find(&tables).Error; err != nil {
		return nil, apperr.Database(err)
	}

	byProject := make(map[uuid.UUID][]models.EntityTable, len(projects))
	orphans := []models.EntityTable{}
	for _, t := range tables {
		if t.ProjectID == nil {
			orphans = append(orphans, t)
			continue
		}
		byProject[*t.ProjectID] = append(byProject[*t.ProjectID], t)
	}

	out := &dto.Hierarchy{
		Projects:             make([]dto.ProjectWithTables, len(projects)),
		TablesWithoutProject: orphans,
	}
	for i, p := range projects {
		pt := byProject[p.ID]
		if pt == nil {
			pt = []models.EntityTable{}
		}
		out.Projects[i] = dto.ProjectWithTables{Project: p, Tables: pt}
	}
	return out, nil
}
