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
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FieldService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewFieldService(db *gorm.DB, gate *access.Gate) *FieldService {
	return &FieldService{db: db, gate: gate}
}

// Create appends a field to the table. Its order_index is one past the
// current maximum (0 for the first field), computed inside the insert
// transaction.
func (s *FieldService) Create(ctx context.Context, sess *tenant.Session, tableID uuid.UUID, req *dto.CreateFieldRequest) (*models.EntityField, error) {
	table, member, err := s.gate.Table(ctx, sess, tableID)
	if err != nil {
		return nil, err
	}
	name, err := cleanName("name", req.Name, 1)
	if err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, apperr.Validation("unsupported field type %q", req.Type)
	}

	field := models.EntityField{
		TableID: table.ID,
		Name:    name,
		Type:    req.Type,
		Options: datatypes.JSONMap(req.Options),
	}
	if field.Options == nil {
		field.Options = datatypes.JSONMap{}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent appends to the same table.
		if tx.Dialector.Name() == "postgres" {
			var locked models.EntityTable
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, "id = ?", table.ID).Error; err != nil {
				return err
			}
		}
		var maxIndex int
		if err := tx.Model(&models.EntityField{}).
			Scopes(tenant.ForTable(table.ID)).
			Select("COALESCE(MAX(order_index), -1)").
			Scan(&maxIndex).Error; err != nil {
			return err
		}
		field.OrderIndex = maxIndex + 1
		return tx.Create(&field).Error
	})
	if err != nil {
		slog.Error("field create failed", "action", "field.create", "workspace_id", table.WorkspaceID, "error", err)
		return nil, apperr.Database(err)
	}
	slog.Info("field created", "action", "field.create", "user_id", member.UserID, "workspace_id", table.WorkspaceID, "field_id", field.ID)
	return &field, nil
}

// Update applies only the supplied keys; an empty update is rejected.
func (s *FieldService) Update(ctx context.Context, sess *tenant.Session, fieldID uuid.UUID, req *dto.UpdateFieldRequest) (*models.EntityField, error) {
	if req.Empty() {
		return nil, ErrEmptyUpdate
	}
	field, table, err := s.gate.Field(ctx, sess, fieldID)
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
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, apperr.Validation("unsupported field type %q", *req.Type)
		}
		updates["type"] = *req.Type
	}
	if req.Options != nil {
		updates["options"] = datatypes.JSONMap(req.Options)
	}
	if req.OrderIndex != nil {
		if *req.OrderIndex < 0 {
			return nil, apperr.Validation("order_index must not be negative")
		}
		updates["order_index"] = *req.OrderIndex
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(field).Updates(updates).Error; err != nil {
		return nil, apperr.Database(err)
	}
	if err := db.First(field, "id = ?", field.ID).Error; err != nil {
		return nil, apperr.Database(err)
	}
	slog.Info("field updated", "action", "field.update", "user_id", sess.UserID, "workspace_id", table.WorkspaceID, "field_id", field.ID)
	return field, nil
}

// Delete removes the field definition. Record data keyed by it is kept.
func (s *FieldService) Delete(ctx context.Context, sess *tenant.Session, fieldID uuid.UUID) error {
	field, table, err := s.gate.Field(ctx, sess, fieldID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.EntityField{}, "id = ?", field.ID).Error; err != nil {
		return apperr.Database(err)
	}
	slog.Info("field deleted", "action", "field.delete", "user_id", sess.UserID, "workspace_id", table.WorkspaceID, "field_id", field.ID)
	return nil
}
