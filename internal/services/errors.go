package services

import (
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
)

var (
	ErrEmailTaken         = apperr.Validation("email already registered")
	ErrInvalidCredentials = apperr.Authentication("invalid email or password")
	ErrInvalidToken       = apperr.Authentication("invalid or expired refresh token")
	ErrUserNotFound       = apperr.NotFound("User")

	ErrWorkspaceNotFound = apperr.NotFound("Workspace")
	ErrSlugTaken         = apperr.Validation("you already have a workspace with this slug")
	ErrEmptyUpdate       = apperr.Validation("at least one field must be provided")

	ErrInvitationPending       = apperr.Validation("an invitation is already pending for this email")
	ErrInvitationAccepted      = apperr.New(apperr.KindNotFound, "this invitation has already been accepted")
	ErrInvitationExpired       = apperr.New(apperr.KindNotFound, "this invitation has expired")
	ErrInvitationEmailMismatch = apperr.Authorization("this invitation was sent to a different email address")
	ErrAlreadyMember           = apperr.Validation("you are already a member of this workspace")
)
