package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db          *gorm.DB
	cfg         *config.Config
	auth        *AuthService
	workspaces  *WorkspaceService
	projects    *ProjectService
	tables      *TableService
	fields      *FieldService
	records     *RecordService
	invitations *InvitationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := testutil.Config()
	gate := access.NewGate(db)
	invitations := NewInvitationService(db, cfg, gate)
	return &env{
		db:          db,
		cfg:         cfg,
		auth:        NewAuthService(db, cfg, gate, invitations),
		workspaces:  NewWorkspaceService(db, gate),
		projects:    NewProjectService(db, gate),
		tables:      NewTableService(db, gate),
		fields:      NewFieldService(db, gate),
		records:     NewRecordService(db, gate),
		invitations: invitations,
	}
}

// user creates an account and returns its session.
func (e *env) user(t *testing.T, email string) *tenant.Session {
	t.Helper()
	return testutil.Session(testutil.CreateUser(t, e.db, email))
}

func (e *env) workspace(t *testing.T, sess *tenant.Session, name string) *dto.WorkspaceSummary {
	t.Helper()
	ws, err := e.workspaces.Create(context.Background(), sess, &dto.CreateWorkspaceRequest{Name: name})
	require.NoError(t, err)
	return ws
}

func (e *env) table(t *testing.T, sess *tenant.Session, ws *dto.WorkspaceSummary, name string) *models.EntityTable {
	t.Helper()
	table, err := e.tables.Create(context.Background(), sess, ws.ID, &dto.CreateTableRequest{Name: name})
	require.NoError(t, err)
	return table
}

func ptr[T any](v T) *T { return &v }
