package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles within a workspace. The creator is always "admin";
// everyone who redeems a join code comes in as "member".
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is a registered account. Accounts are global — a user can belong
// to many workspaces through workspace_members rows.
//
// PasswordHash never holds plaintext: the service layer hashes before
// the row is written, and the field is excluded from JSON so it can't
// leak through an API response.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Workspace is the top-level collaboration unit (like a Slack workspace).
//
// Members and Channels are loaded by the repository when the workspace is
// fetched by ID: Members ordered by join time, Channels by creation time.
// Immediately after creation a workspace has exactly one admin member
// (its creator) and one "general" channel.
type Workspace struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	JoinCode    string            `json:"join_code"`
	Members     []WorkspaceMember `json:"members"`
	Channels    []Channel         `json:"channels"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// WorkspaceMember records a user's membership and privilege level within
// a workspace. It is owned by its workspace — there is no standalone
// member resource in the API.
type WorkspaceMember struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	MemberID    uuid.UUID `json:"member_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Channel is a named room inside a workspace. The workspace references
// channels by ID only; deleting a workspace deletes its channels first,
// sequenced in the service layer.
type Channel struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}
