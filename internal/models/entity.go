package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldDate     FieldType = "date"
	FieldBoolean  FieldType = "boolean"
	FieldEmail    FieldType = "email"
	FieldURL      FieldType = "url"
	FieldRichText FieldType = "richtext"
	FieldJSON     FieldType = "json"
	FieldRelation FieldType = "relation"
)

var FieldTypes = []FieldType{
	FieldText, FieldNumber, FieldSelect, FieldDate, FieldBoolean,
	FieldEmail, FieldURL, FieldRichText, FieldJSON, FieldRelation,
}

func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// Project groups related tables inside a workspace.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:20;not null;default:'blue'" json:"color"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EntityTable is a user-defined schema container.
type EntityTable struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *EntityTable) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// EntityField is one typed column of an EntityTable. For select fields
// Options holds "choices": [{id,label,color}]; for relation fields it holds
// "target_table_id".
type EntityField struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	TableID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"table_id"`
	Name       string            `gorm:"size:255;not null" json:"name"`
	Type       FieldType         `gorm:"size:20;not null" json:"type"`
	OrderIndex int               `gorm:"not null;default:0" json:"order_index"`
	Options    datatypes.JSONMap `json:"options"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (f *EntityField) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// EntityRecord is one row of data, keyed by field id. Keys and values are
// not checked against the table's fields.
type EntityRecord struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	TableID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"table_id"`
	Data      datatypes.JSONMap `json:"data"`
	CreatedAt time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (r *EntityRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
