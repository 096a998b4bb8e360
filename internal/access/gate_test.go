package access

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	g := NewGate(testutil.NewDB(t))

	_, err := g.RequireAuth(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestRequireWorkspaceAccess(t *testing.T) {
	db := testutil.NewDB(t)
	g := NewGate(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@example.com")
	outsider := testutil.CreateUser(t, db, "outsider@example.com")
	ws := testutil.CreateWorkspace(t, db, owner, "Acme")

	member, err := g.RequireWorkspaceAccess(ctx, owner.ID, ws.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, member.Role)

	_, err = g.RequireWorkspaceAccess(ctx, outsider.ID, ws.ID)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))

	_, err = g.RequireWorkspaceAccess(ctx, owner.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNoWorkspaceAccess)
}

func TestRequireRole(t *testing.T) {
	db := testutil.NewDB(t)
	g := NewGate(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@example.com")
	plain := testutil.CreateUser(t, db, "member@example.com")
	ws := testutil.CreateWorkspace(t, db, owner, "Acme")
	testutil.AddMember(t, db, ws, plain, models.RoleMember)

	_, err := g.RequireRole(ctx, owner.ID, ws.ID, ManagerRoles...)
	assert.NoError(t, err)

	_, err = g.RequireRole(ctx, plain.ID, ws.ID, ManagerRoles...)
	assert.ErrorIs(t, err, ErrInsufficientRole)
}

func TestTableAndFieldResolution(t *testing.T) {
	db := testutil.NewDB(t)
	g := NewGate(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@example.com")
	outsider := testutil.CreateUser(t, db, "outsider@example.com")
	ws := testutil.CreateWorkspace(t, db, owner, "Acme")

	table := &models.EntityTable{WorkspaceID: ws.ID, Name: "Customers"}
	require.NoError(t, db.Create(table).Error)
	field := &models.EntityField{TableID: table.ID, Name: "Name", Type: models.FieldText}
	require.NoError(t, db.Create(field).Error)

	got, member, err := g.Table(ctx, testutil.Session(owner), table.ID)
	require.NoError(t, err)
	assert.Equal(t, table.ID, got.ID)
	assert.Equal(t, models.RoleOwner, member.Role)

	_, _, err = g.Table(ctx, testutil.Session(outsider), table.ID)
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, _, err = g.Table(ctx, testutil.Session(owner), uuid.New())
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, parent, err := g.Field(ctx, testutil.Session(owner), field.ID)
	require.NoError(t, err)
	assert.Equal(t, table.ID, parent.ID)

	_, _, err = g.Field(ctx, testutil.Session(outsider), field.ID)
	assert.ErrorIs(t, err, ErrFieldNotFound)

	_, _, err = g.Field(ctx, nil, field.ID)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRequireProjectInWorkspace(t *testing.T) {
	db := testutil.NewDB(t)
	g := NewGate(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@example.com")
	wsA := testutil.CreateWorkspace(t, db, owner, "Alpha")
	wsB := testutil.CreateWorkspace(t, db, owner, "Beta")

	project := &models.Project{WorkspaceID: wsA.ID, Name: "CRM"}
	require.NoError(t, db.Create(project).Error)

	assert.NoError(t, g.RequireProjectInWorkspace(ctx, project.ID, wsA.ID))
	assert.ErrorIs(t, g.RequireProjectInWorkspace(ctx, project.ID, wsB.ID), ErrProjectNotFound)
}
