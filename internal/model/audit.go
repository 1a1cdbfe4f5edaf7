package model

import "time"

// AuditAction tags a user-lifecycle event in the audit trail.
type AuditAction string

const (
	AuditUserCreate       AuditAction = "users.create"
	AuditUserUpdate       AuditAction = "users.update"
	AuditUserUpdateRole   AuditAction = "users.update_role"
	AuditUserDelete       AuditAction = "users.delete"
	AuditUserSelfRegister AuditAction = "users.self_register"
)

// LogEntry is a generic append-only log row. Writes are best-effort and must
// never fail the caller's primary operation.
type LogEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	Action    string    `json:"action" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"not null"`
	Details   *string   `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the table name used by the existing portal database.
func (LogEntry) TableName() string { return "logs" }

// UserAuditLog is an append-only record of a privileged user-lifecycle action.
// ActorID is nil for self-registration.
type UserAuditLog struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	ActorID   *uint       `json:"user_id_admin" gorm:"column:user_id_admin;index"`
	TargetID  uint        `json:"user_id_target" gorm:"column:user_id_target;index"`
	Action    AuditAction `json:"action" gorm:"size:255;not null"`
	Details   *string     `json:"details"`
	CreatedAt time.Time   `json:"created_at" gorm:"index:idx_user_audit_logs_created_at,sort:desc"`
}

// TableName keeps the table name used by the existing portal database.
func (UserAuditLog) TableName() string { return "user_audit_logs" }
