package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewTableService(db *gorm.DB, gate *access.Gate) *TableService {
	return &TableService{db: db, gate: gate}
}

// Create adds a table to a workspace, optionally under one of its projects.
func (s *TableService) Create(ctx context.Context, sess *tenant.Session, workspaceID uuid.UUID, req *dto.CreateTableRequest) (*models.EntityTable, error) {
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
	if req.ProjectID != nil {
		if err := s.gate.RequireProjectInWorkspace(ctx, *req.ProjectID, workspaceID); err != nil {
			return nil, err
		}
	}

	table := models.EntityTable{
		WorkspaceID: workspaceID,
		ProjectID:   req.ProjectID,
		Name:        name,
		Description: req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&table).Error; err != nil {
		return nil, apperr.Database(err)
	}
	slog.Info("table created", "action", "table.create", "user_id", member.UserID, "workspace_id", workspaceID, "table_id", table.ID)
	return &table, nil
}

// GetWithFields returns the table and its fields in ascending order_index.
func (s *TableService) GetWithFields(ctx context.Context, sess *tenant.Session, tableID uuid.UUID) (*dto.TableWithFields, error) {
	table, _, err := s.gate.Table(ctx, sess, tableID)
	if err != nil {
		return nil, err
	}
	fields := []models.EntityField{}
	if err := s.db.WithContext(ctx).Scopes(tenant.ForTable(table.ID)).Order("created_at ASC").Find(&fields).Error; err != nil {
		return nil, apperr.Database(err)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].OrderIndex < fields[j].OrderIndex
	})
	return &dto.TableWithFields{EntityTable: *table, Fields: fields}, nil
}

func (s *TableService) Update(ctx context.Context, sess *tenant.Session, tableID uuid.UUID, req *dto.UpdateTableRequest) (*models.EntityTable, error) {
	if req.Empty() {
		return nil, ErrEmptyUpdate
	}
	table, member, err := s.gate.Table(ctx, sess, tableID)
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
	switch {
	case req.DetachProject:
		updates["project_id"] = nil
	case req.ProjectID != nil:
		if err := s.gate.RequireProjectInWorkspace(ctx, *req.ProjectID, table.WorkspaceID); err != nil {
			return nil, err
		}
		updates["project_id"] = *req.ProjectID
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(table).Updates(updates).Error; err != nil {
		return nil, apperr.Database(err)
	}
	if err := db.First(table, "id = ?", table.ID).Error; err != nil {
		return nil, apperr.Database(err)
	}
	slog.Info("table updated", "action", "table.update", "user_id", member.UserID, "workspace_id", table.WorkspaceID, "table_id", table.ID)
	return table, nil
}

// Delete removes the table with its fields and records.
func (s *TableService) Delete(ctx context.Context, sess *tenant.Session, tableID uuid.UUID) error {
	table, member, err := s.gate.Table(ctx, sess, tableID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteTables(tx, []uuid.UUID{table.ID})
	})
	if err != nil {
		slog.Error("table delete failed", "action", "table.delete", "workspace_id", table.WorkspaceID, "error", err)
		return apperr.Database(err)
	}
	slog.Info("table deleted", "action", "table.delete", "user_id", member.UserID, "workspace_id", table.WorkspaceID, "table_id", table.ID)
	return nil
}
