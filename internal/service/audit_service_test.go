package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenportal/internal/model"
)

func newAuditFixture(t *testing.T) (*portalFixture, AuditService) {
	t.Helper()
	f := newPortalFixture(t)
	return f, NewAuditService(f.audits, f.svc)
}

func TestAuditServiceListEvents(t *testing.T) {
	f, svc := newAuditFixture(t)
	ctx := context.Background()
	admin := f.seedUser(t, "Admin", "admin@local", "adminpassword", model.LevelAdmin)
	compliance := f.seedUser(t, "Clara", "clara@empresa.com", "longpassword1", model.LevelCompliance)
	normal := f.seedUser(t, "Ana", "ana@empresa.com", "longpassword1", model.LevelNormal)
	adminToken := f.tokenFor(t, admin)

	// produce a couple of lifecycle events through the write path
	require.True(t, f.svc.ChangeAccessLevel(ctx, adminToken, int(normal.ID), 2).OK)
	require.True(t, f.svc.UpdateUser(ctx, adminToken, int(normal.ID), UpdateUserInput{Sector: "Compras"}).OK)

	t.Run("compliance can read the trail", func(t *testing.T) {
		res := svc.ListEvents(ctx, f.tokenFor(t, compliance), 0)
		require.True(t, res.OK)
		require.Len(t, res.Data, 2)
		// newest first
		assert.Equal(t, model.AuditUserUpdate, res.Data[0].Action)
		assert.Equal(t, model.AuditUserUpdateRole, res.Data[1].Action)
	})

	t.Run("admin can read the trail", func(t *testing.T) {
		res := svc.ListEvents(ctx, adminToken, 1)
		require.True(t, res.OK)
		assert.Len(t, res.Data, 1)
	})

	t.Run("normal users are refused", func(t *testing.T) {
		res := svc.ListEvents(ctx, f.tokenFor(t, normal), 0)
		assert.False(t, res.OK)
		assert.Equal(t, KindForbidden, res.Kind)
		assert.Equal(t, fmt.Sprintf(MsgAccessDeniedFmt, "ADMIN, COMPLIANCE"), res.Message)
	})

	t.Run("missing token", func(t *testing.T) {
		res := svc.ListEvents(ctx, "", 0)
		assert.False(t, res.OK)
		assert.Equal(t, KindUnauthorized, res.Kind)
	})
}

func TestAuditServiceListLogs(t *testing.T) {
	f, svc := newAuditFixture(t)
	ctx := context.Background()
	admin := f.seedUser(t, "Admin", "admin@local", "adminpassword", model.LevelAdmin)
	compliance := f.seedUser(t, "Clara", "clara@empresa.com", "longpassword1", model.LevelCompliance)

	require.NoError(t, f.audits.InsertLog(ctx, &model.LogEntry{
		Action:  "login",
		Message: "Erro ao realizar login",
	}))

	t.Run("admin can read error logs", func(t *testing.T) {
		res := svc.ListLogs(ctx, f.tokenFor(t, admin), 0)
		require.True(t, res.OK)
		require.Len(t, res.Data, 1)
		assert.Equal(t, "login", res.Data[0].Action)
	})

	t.Run("compliance cannot read error logs", func(t *testing.T) {
		res := svc.ListLogs(ctx, f.tokenFor(t, compliance), 0)
		assert.False(t, res.OK)
		assert.Equal(t, KindForbidden, res.Kind)
	})
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultAuditLimit, clampLimit(0))
	assert.Equal(t, defaultAuditLimit, clampLimit(-5))
	assert.Equal(t, 50, clampLimit(50))
	assert.Equal(t, maxAuditLimit, clampLimit(9999))
}
