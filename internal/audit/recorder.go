package audit

import (
	"context"
	"encoding/json"

	"lumenportal/internal/auth"
	"lumenportal/internal/model"
	"lumenportal/internal/repository"
)

// Recorder writes security-relevant events to the append-only trails.
// Every write is best-effort: a failed insert is dropped silently because the
// trail must never fail or roll back the caller's primary operation.
type Recorder struct {
	repo  repository.AuditRepository
	codec *auth.JWTService
}

// NewRecorder creates a recorder backed by the audit repository. The codec is
// used to resolve the acting user from a raw token when no explicit actor id
// is given.
func NewRecorder(repo repository.AuditRepository, codec *auth.JWTService) *Recorder {
	return &Recorder{repo: repo, codec: codec}
}

// LogError records a generic error entry. Failures are swallowed.
func (r *Recorder) LogError(ctx context.Context, action, message, details, token string) {
	if r == nil || r.repo == nil {
		return
	}

	entry := &model.LogEntry{
		Action:  action,
		Message: message,
	}
	if details != "" {
		entry.Details = &details
	}
	if id := r.actorFromToken(token); id != nil {
		entry.UserID = id
	}

	_ = r.repo.InsertLog(ctx, entry)
}

// Event records a user-lifecycle audit entry. An explicit actorID wins over
// the token; details are JSON-serialized. Failures are swallowed.
func (r *Recorder) Event(ctx context.Context, action model.AuditAction, targetID uint, details map[string]interface{}, token string, actorID *uint) {
	if r == nil || r.repo == nil {
		return
	}

	if actorID == nil {
		actorID = r.actorFromToken(token)
	}

	entry := &model.UserAuditLog{
		ActorID:  actorID,
		TargetID: targetID,
		Action:   action,
	}
	if len(details) > 0 {
		if payload, err := json.Marshal(details); err == nil {
			s := string(payload)
			entry.Details = &s
		}
	}

	_ = r.repo.InsertAudit(ctx, entry)
}

func (r *Recorder) actorFromToken(token string) *uint {
	if token == "" || r.codec == nil {
		return nil
	}
	claims, err := r.codec.Decode(token)
	if err != nil {
		return nil
	}
	id := claims.UserID
	return &id
}
