package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForWorkspace returns a GORM scope that filters by workspace_id.
func ForWorkspace(workspaceID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("workspace_id = ?", workspaceID)
	}
}

// ForOrganization filters membership and invitation rows by organization_id.
func ForOrganization(orgID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", orgID)
	}
}

// ForTable filters field and record rows by their parent table.
func ForTable(tableID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("table_id = ?", tableID)
	}
}

// NewestFirst orders by creation time, most recent first. Rows created in
// the same instant fall back to id order so pages never overlap.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
