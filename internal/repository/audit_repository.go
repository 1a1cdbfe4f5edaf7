package repository

import (
	"context"

	"gorm.io/gorm"

	"lumenportal/internal/model"
)

// AuditRepository persists the two append-only trails: generic error logs and
// user-lifecycle audit events.
type AuditRepository interface {
	InsertLog(ctx context.Context, entry *model.LogEntry) error
	InsertAudit(ctx context.Context, entry *model.UserAuditLog) error
	ListAudits(ctx context.Context, limit int) ([]model.UserAuditLog, error)
	ListLogs(ctx context.Context, limit int) ([]model.LogEntry, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository builds a GORM-backed audit repository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) InsertLog(ctx context.Context, entry *model.LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) InsertAudit(ctx context.Context, entry *model.UserAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) ListAudits(ctx context.Context, limit int) ([]model.UserAuditLog, error) {
	var entries []model.UserAuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *auditRepository) ListLogs(ctx context.Context, limit int) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
