package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (l nopLogger) With(...any) logger.Interface  { return l }
func (l nopLogger) Named(string) logger.Interface { return l }
func (nopLogger) Debugw(string, ...any)           {}
func (nopLogger) Infow(string, ...any)            {}
func (nopLogger) Warnw(string, ...any)            {}
func (nopLogger) Errorw(string, ...any)           {}

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, nopLogger{})
	require.NoError(t, err)
	require.NoError(t, e.SeedDefaultPolicies())
	return e, db
}

func TestEnforcer_IsAdmin(t *testing.T) {
	e, _ := newTestEnforcer(t)
	ctx := context.Background()

	ok, err := e.IsAdmin(ctx, authorization.Caller{UserID: "u1", Role: authorization.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.IsAdmin(ctx, authorization.Caller{UserID: "u2", Role: authorization.RoleUser})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.IsAdmin(ctx, authorization.Caller{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforcer_GrantAndRevokeAdmin(t *testing.T) {
	e, _ := newTestEnforcer(t)
	ctx := context.Background()
	caller := authorization.Caller{UserID: "ward-officer", Role: authorization.RoleUser}

	require.NoError(t, e.GrantAdmin("ward-officer"))
	ok, err := e.IsAdmin(ctx, caller)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, e.RevokeAdmin("ward-officer"))
	ok, err = e.IsAdmin(ctx, caller)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforcer_SeedIsIdempotent(t *testing.T) {
	e, db := newTestEnforcer(t)
	require.NoError(t, e.SeedDefaultPolicies())

	var rows int64
	require.NoError(t, db.Table("casbin_rule").Where("ptype = ?", "p").Count(&rows).Error)
	assert.Equal(t, int64(len(DefaultPolicies)), rows)

	ok, err := e.Enforce("admin", ResourceIssues, ActionModerate)
	require.NoError(t, err)
	assert.True(t, ok)
}
