package service

import (
	"time"

	"lumenportal/internal/auth"
	"lumenportal/internal/model"
)

// Kind classifies why an operation failed. Handlers map kinds to HTTP status
// codes; callers never have to parse messages.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// Result is the outcome every public operation returns. Operations are total:
// they never return a Go error to the caller, expected failures are carried
// here and unexpected ones collapse to KindInternal.
type Result struct {
	OK      bool   `json:"success"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(message string) Result {
	return Result{OK: true, Message: message}
}

func fail(kind Kind, message string) Result {
	return Result{Kind: kind, Message: message}
}

// UserInfo is the public identity payload bound into a session.
type UserInfo struct {
	ID     uint       `json:"id"`
	Name   string     `json:"usuario"`
	Email  string     `json:"email"`
	Sector string     `json:"setor"`
	Role   model.Role `json:"role"`
}

// LoginResult carries the issued token on success.
type LoginResult struct {
	Result
	Token string     `json:"token,omitempty"`
	Role  model.Role `json:"role,omitempty"`
	User  *UserInfo  `json:"user,omitempty"`
}

// AuthResult carries the verified claim set on success.
type AuthResult struct {
	Result
	User *auth.Claims `json:"user,omitempty"`
}

// UserView is a user row as exposed to administrators: derived role label
// included, password hash excluded.
type UserView struct {
	ID        uint              `json:"id"`
	Name      string            `json:"usuario"`
	Email     string            `json:"email"`
	Sector    string            `json:"setor"`
	Level     model.AccessLevel `json:"nivel"`
	Role      model.Role        `json:"role"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ListUsersResult carries the user listing on success.
type ListUsersResult struct {
	Result
	Data []UserView `json:"data,omitempty"`
}

// UpdateUserInput holds the partial-update fields for UpdateUser. Blank
// strings and a nil level mean "leave unchanged".
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Level    *model.AccessLevel
	Sector   string
}
