package services

import (
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// deleteTables removes tables together with their fields and records.
// Callers run it inside a transaction.
func deleteTables(tx *gorm.DB, tableIDs []uuid.UUID) error {
	if len(tableIDs) == 0 {
		return nil
	}
	if err := tx.Where("table_id IN ?", tableIDs).Delete(&models.EntityRecord{}).Error; err != nil {
		return err
	}
	if err := tx.Where("table_id IN ?", tableIDs).Delete(&models.EntityField{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", tableIDs).Delete(&models.EntityTable{}).Error
}

func tableIDs(tx *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&models.EntityTable{}).Scopes(scope).Pluck("id", &ids).Error
	return ids, err
}
