package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBugTrackerWalkthrough(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a@example.com")

	ws, err := e.workspaces.Create(ctx, a, &dto.CreateWorkspaceRequest{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, ws.Role)

	research, err := e.projects.Create(ctx, a, ws.ID, &dto.CreateProjectRequest{Name: "Research", Color: ptr("blue")})
	require.NoError(t, err)
	assert.Equal(t, "blue", research.Color)

	bugs, err := e.tables.Create(ctx, a, ws.ID, &dto.CreateTableRequest{Name: "Bugs", ProjectID: &research.ID})
	require.NoError(t, err)

	severity, err := e.fields.Create(ctx, a, bugs.ID, &dto.CreateFieldRequest{
		Name: "Severity",
		Type: models.FieldSelect,
		Options: map[string]any{
			"choices": []any{map[string]any{"id": "s1", "label": "High", "color": "red"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, severity.OrderIndex)

	rec, err := e.records.Create(ctx, a, bugs.ID, map[string]any{severity.ID.String(): "s1"})
	require.NoError(t, err)

	page, err := e.records.List(ctx, a, bugs.ID, 1, 50)
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, rec.ID, page.Records[0].ID)
	assert.Equal(t, "s1", page.Records[0].Data[severity.ID.String()])

	// B was never invited.
	b := e.user(t, "b@example.com")
	got, err := e.tables.GetWithFields(ctx, b, bugs.ID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, access.ErrTableNotFound)
}

func TestInvitationWalkthrough(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.user(t, "a@example.com")
	ws := e.workspace(t, a, "Acme")

	inv, err := e.invitations.Invite(ctx, a, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com", Role: models.RoleMember})
	require.NoError(t, err)
	assert.Nil(t, inv.AcceptedAt)

	signed := signUp(t, e, "bob@example.com")
	bob := &tenant.Session{UserID: signed.User.ID, Email: signed.User.Email}

	_, err = e.invitations.Accept(ctx, bob, inv.Token)
	require.NoError(t, err)

	var member models.OrganizationMember
	require.NoError(t, e.db.Where("organization_id = ? AND user_id = ?", ws.ID, bob.UserID).First(&member).Error)
	assert.Equal(t, models.RoleMember, member.Role)

	var stored models.WorkspaceInvitation
	require.NoError(t, e.db.First(&stored, "id = ?", inv.ID).Error)
	require.NotNil(t, stored.AcceptedAt)
	assert.Equal(t, bob.UserID, *stored.AcceptedByUserID)

	// Membership alone is enough for table work.
	_, err = e.tables.Create(ctx, bob, ws.ID, &dto.CreateTableRequest{Name: "Notes"})
	assert.NoError(t, err)
}
