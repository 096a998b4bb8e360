package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteRequiresManagerRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	carol := e.user(t, "carol@example.com")
	mallory := e.user(t, "mallory@example.com")
	ws := e.workspace(t, alice, "Acme")
	require.NoError(t, e.db.Create(&models.OrganizationMember{OrganizationID: ws.ID, UserID: carol.UserID, Role: models.RoleMember}).Error)

	_, err := e.invitations.Invite(ctx, carol, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	assert.ErrorIs(t, err, access.ErrInsufficientRole)

	_, err = e.invitations.Invite(ctx, mallory, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	assert.ErrorIs(t, err, access.ErrNoWorkspaceAccess)

	_, err = e.invitations.Invite(ctx, nil, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	assert.ErrorIs(t, err, access.ErrNotAuthenticated)

	_, err = e.invitations.List(ctx, carol, ws.ID)
	assert.ErrorIs(t, err, access.ErrInsufficientRole)
}

func TestInviteIssuesTokenAndRejectsDuplicates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	ws := e.workspace(t, alice, "Acme")

	inv, err := e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "Bob@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", inv.Email)
	assert.Equal(t, models.RoleMember, inv.Role)
	assert.Equal(t, models.InvitationPending, inv.Status)
	assert.NotEmpty(t, inv.Token)
	assert.Nil(t, inv.AcceptedAt)
	assert.True(t, strings.HasSuffix(inv.Link, "/invitations/"+inv.Token))
	require.NotNil(t, inv.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), *inv.ExpiresAt, time.Minute)

	_, err = e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrInvitationPending)

	_, err = e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "carol@example.com", Role: "superuser"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	list, err := e.invitations.List(ctx, alice, ws.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inv.ID, list[0].ID)
}

func TestAcceptInvitation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	ws := e.workspace(t, alice, "Acme")
	inv, err := e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	bob := e.user(t, "bob@example.com")
	member, err := e.invitations.Accept(ctx, bob, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, member.Role)
	assert.Equal(t, ws.ID, member.OrganizationID)

	var stored models.WorkspaceInvitation
	require.NoError(t, e.db.First(&stored, "id = ?", inv.ID).Error)
	require.NotNil(t, stored.AcceptedAt)
	require.NotNil(t, stored.AcceptedByUserID)
	assert.Equal(t, bob.UserID, *stored.AcceptedByUserID)

	_, err = e.invitations.Accept(ctx, bob, inv.Token)
	assert.ErrorIs(t, err, ErrInvitationAccepted)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	var count int64
	e.db.Model(&models.OrganizationMember{}).Where("organization_id = ? AND user_id = ?", ws.ID, bob.UserID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAcceptInvitationEmailMustMatch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	ws := e.workspace(t, alice, "Acme")
	inv, err := e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	require.NoError(t, err)

	eve := e.user(t, "eve@example.com")
	_, err = e.invitations.Accept(ctx, eve, inv.Token)
	assert.ErrorIs(t, err, ErrInvitationEmailMismatch)

	// Case differences are not a mismatch.
	bob := e.user(t, "bob@example.com")
	upper := &tenant.Session{UserID: bob.UserID, Email: "BOB@EXAMPLE.COM"}
	_, err = e.invitations.Accept(ctx, upper, inv.Token)
	assert.NoError(t, err)
}

func TestAcceptInvitationFailures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	ws := e.workspace(t, alice, "Acme")

	_, err := e.invitations.Accept(ctx, alice, "no-such-token")
	assert.ErrorIs(t, err, access.ErrInvitationNotFound)

	// Inviting an existing member is allowed; accepting is not.
	self, err := e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = e.invitations.Accept(ctx, alice, self.Token)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	var stored models.WorkspaceInvitation
	require.NoError(t, e.db.First(&stored, "id = ?", self.ID).Error)
	assert.Nil(t, stored.AcceptedAt)

	inv, err := e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	require.NoError(t, err)
	bob := e.user(t, "bob@example.com")
	e.invitations.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err = e.invitations.Accept(ctx, bob, inv.Token)
	assert.ErrorIs(t, err, ErrInvitationExpired)

	preview, err := e.invitations.Preview(ctx, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationExpired, preview.Status)
}

func TestRevokeInvitation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	carol := e.user(t, "carol@example.com")
	ws := e.workspace(t, alice, "Acme")
	require.NoError(t, e.db.Create(&models.OrganizationMember{OrganizationID: ws.ID, UserID: carol.UserID, Role: models.RoleMember}).Error)

	inv, err := e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	require.NoError(t, err)

	assert.ErrorIs(t, e.invitations.Revoke(ctx, carol, inv.ID), access.ErrInsufficientRole)

	// A stranger cannot tell a foreign invitation from a missing one.
	mallory := e.user(t, "mallory@example.com")
	assert.ErrorIs(t, e.invitations.Revoke(ctx, mallory, inv.ID), access.ErrInvitationNotFound)
	assert.ErrorIs(t, e.invitations.Revoke(ctx, mallory, uuid.New()), access.ErrInvitationNotFound)

	require.NoError(t, e.invitations.Revoke(ctx, alice, inv.ID))

	_, err = e.invitations.Preview(ctx, inv.Token)
	assert.ErrorIs(t, err, access.ErrInvitationNotFound)

	// Revoking frees the address for a new invitation.
	_, err = e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	assert.NoError(t, err)
}

func TestPreviewInvitation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice@example.com")
	ws := e.workspace(t, alice, "Acme")
	inv, err := e.invitations.Invite(ctx, alice, ws.ID, &dto.CreateInvitationRequest{Email: "bob@example.com"})
	require.NoError(t, err)

	preview, err := e.invitations.Preview(ctx, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, "Acme", preview.WorkspaceName)
	assert.Equal(t, "bob@example.com", preview.Email)
	assert.Equal(t, models.InvitationPending, preview.Status)
}
