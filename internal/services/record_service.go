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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordService stores record data as-is. Keys are expected to be field ids
// but neither keys nor values are checked against the table's fields.
type RecordService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewRecordService(db *gorm.DB, gate *access.Gate) *RecordService {
	return &RecordService{db: db, gate: gate}
}

// List pages through a table's records, newest first.
func (s *RecordService) List(ctx context.Context, sess *tenant.Session, tableID uuid.UUID, page, pageSize int) (*dto.RecordPage, error) {
	table, _, err := s.gate.Table(ctx, sess, tableID)
	if err != nil {
		return nil, err
	}
	p := NewPagination(page, pageSize)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.EntityRecord{}).Scopes(tenant.ForTable(table.ID)).Count(&total).Error; err != nil {
		return nil, apperr.Database(err)
	}

	records := []models.EntityRecord{}
	err = db.Scopes(tenant.ForTable(table.ID), tenant.NewestFirst).
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&records).Error
	if err != nil {
		return nil, apperr.Database(err)
	}

	totalPages := p.TotalPages(total)
	return &dto.RecordPage{
		Records:         records,
		Total:           total,
		Page:            p.Page,
		PageSize:        p.PageSize,
		TotalPages:      totalPages,
		HasNextPage:     p.Page < totalPages,
		HasPreviousPage: p.Page > 1,
	}, nil
}

func (s *RecordService) Get(ctx context.Context, sess *tenant.Session, tableID, recordID uuid.UUID) (*models.EntityRecord, error) {
	table, _, err := s.gate.Table(ctx, sess, tableID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, table.ID, recordID)
}

func (s *RecordService) Create(ctx context.Context, sess *tenant.Session, tableID uuid.UUID, data map[string]any) (*models.EntityRecord, error) {
	table, member, err := s.gate.Table(ctx, sess, tableID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	record := models.EntityRecord{TableID: table.ID, Data: datatypes.JSONMap(data)}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, apperr.Database(err)
	}
	slog.Info("record created", "action", "record.create", "user_id", member.UserID, "workspace_id", table.WorkspaceID, "record_id", record.ID)
	return &record, nil
}

// Update replaces the whole data map. The record must belong to tableID.
func (s *RecordService) Update(ctx context.Context, sess *tenant.Session, tableID, recordID uuid.UUID, data map[string]any) (*models.EntityRecord, error) {
	table, member, err := s.gate.Table(ctx, sess, tableID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	res := s.db.WithContext(ctx).Model(&models.EntityRecord{}).
		Where("id = ?", recordID).
		Scopes(tenant.ForTable(table.ID)).
		Update("data", datatypes.JSONMap(data))
	if res.Error != nil {
		return nil, apperr.Database(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, access.ErrRecordNotFound
	}
	slog.Info("record updated", "action", "record.update", "user_id", member.UserID, "workspace_id", table.WorkspaceID, "record_id", recordID)
	return s.find(ctx, table.ID, recordID)
}

func (s *RecordService) Delete(ctx context.Context, sess *tenant.Session, tableID, recordID uuid.UUID) error {
	table, member, err := s.gate.Table(ctx, sess, tableID)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("id = ?", recordID).
		Scopes(tenant.ForTable(table.ID)).
		Delete(&models.EntityRecord{})
	if res.Error != nil {
		return apperr.Database(res.Error)
	}
	if res.RowsAffected == 0 {
		return access.ErrRecordNotFound
	}
	slog.Info("record deleted", "action", "record.delete", "user_id", member.UserID, "workspace_id", table.WorkspaceID, "record_id", recordID)
	return nil
}

func (s *RecordService) find(ctx context.Context, tableID, recordID uuid.UUID) (*models.EntityRecord, error) {
	var record models.EntityRecord
	err := s.db.WithContext(ctx).
		Scopes(tenant.ForTable(tableID)).
		First(&record, "id = ?", recordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrRecordNotFound
		}
		return nil, apperr.Database(err)
	}
	return &record, nil
}
