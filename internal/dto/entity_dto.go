package dto

import (
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (r UpdateProjectRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Color == nil
}

type ProjectWithTables struct {
	models.Project
	Tables []models.EntityTable `json:"tables"`
}

type Hierarchy struct {
	Projects             []ProjectWithTables  `json:"projects"`
	TablesWithoutProject []models.EntityTable `json:"tables_without_project"`
}

type CreateTableRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	ProjectID   *uuid.UUID `json:"project_id"`
}

// UpdateTableRequest moves a table with ProjectID or makes it an orphan
// with DetachProject.
type UpdateTableRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	ProjectID     *uuid.UUID `json:"project_id"`
	DetachProject bool       `json:"detach_project"`
}

func (r UpdateTableRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.ProjectID == nil && !r.DetachProject
}

type TableWithFields struct {
	models.EntityTable
	Fields []models.EntityField `json:"fields"`
}

type CreateFieldRequest struct {
	Name    string           `json:"name"`
	Type    models.FieldType `json:"type"`
	Options map[string]any   `json:"options"`
}

type UpdateFieldRequest struct {
	Name       *string           `json:"name"`
	Type       *models.FieldType `json:"type"`
	Options    map[string]any    `json:"options"`
	OrderIndex *int              `json:"order_index"`
}

func (r UpdateFieldRequest) Empty() bool {
	return r.Name == nil && r.Type == nil && r.Options == nil && r.OrderIndex == nil
}

// RecordRequest carries the full data map of a record.
type RecordRequest struct {
	Data map[string]any `json:"data"`
}

type RecordPage struct {
	Records         []models.EntityRecord `json:"records"`
	Total           int64                 `json:"total"`
	Page            int                   `json:"page"`
	PageSize        int                   `json:"page_size"`
	TotalPages      int                   `json:"total_pages"`
	HasNextPage     bool                  `json:"has_next_page"`
	HasPreviousPage bool                  `json:"has_previous_page"`
}

type PaletteColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}
