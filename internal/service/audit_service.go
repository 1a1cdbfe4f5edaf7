package service

import (
	"context"

	"lumenportal/internal/model"
	"lumenportal/internal/repository"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

// AuditListResult carries user-lifecycle audit entries on success.
type AuditListResult struct {
	Result
	Data []model.UserAuditLog `json:"data,omitempty"`
}

// LogListResult carries generic log entries on success.
type LogListResult struct {
	Result
	Data []model.LogEntry `json:"data,omitempty"`
}

// AuditService is the read path over the two append-only trails, backing the
// audit viewer page.
type AuditService interface {
	ListEvents(ctx context.Context, token string, limit int) AuditListResult
	ListLogs(ctx context.Context, token string, limit int) LogListResult
}

type auditService struct {
	repo repository.AuditRepository
	auth AuthService
}

// NewAuditService builds the audit viewer service.
func NewAuditService(repo repository.AuditRepository, auth AuthService) AuditService {
	return &auditService{repo: repo, auth: auth}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultAuditLimit
	}
	if limit > maxAuditLimit {
		return maxAuditLimit
	}
	return limit
}

// ListEvents returns the most recent user-lifecycle audit entries.
// COMPLIANCE exists for exactly this read path, so both roles are admitted.
func (s *auditService) ListEvents(ctx context.Context, token string, limit int) AuditListResult {
	authRes := s.auth.RequireAuth(token, model.RoleAdmin, model.RoleCompliance)
	if !authRes.OK {
		return AuditListResult{Result: authRes.Result}
	}

	entries, err := s.repo.ListAudits(ctx, clampLimit(limit))
	if err != nil {
		return AuditListResult{Result: fail(KindInternal, MsgListInternal)}
	}
	return AuditListResult{Result: ok(""), Data: entries}
}

// ListLogs returns the most recent generic log entries. System error logs are
// operator material, so only ADMIN may read them.
func (s *auditService) ListLogs(ctx context.Context, token string, limit int) LogListResult {
	authRes := s.auth.RequireAuth(token, model.RoleAdmin)
	if !authRes.OK {
		return LogListResult{Result: authRes.Result}
	}

	entries, err := s.repo.ListLogs(ctx, clampLimit(limit))
	if err != nil {
		return LogListResult{Result: fail(KindInternal, MsgListInternal)}
	}
	return LogListResult{Result: ok(""), Data: entries}
}
