package service

import (
	"context"
	"testing"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/pkg/testdb"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/audit"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx      context.Context
	factory  unitofwork.RepositoryFactory
	recorder audit.Recorder
	log      *logger.ZapLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	factory := unitofwork.NewRepositoryFactory(testdb.New(t))
	log := logger.NewNopLogger()
	return &fixture{
		ctx:      context.Background(),
		factory:  factory,
		recorder: audit.NewRecorder(factory, nil, "audit.events", log),
		log:      log,
	}
}

func (f *fixture) account(t *testing.T, email string, role entity.AccountRole) *entity.Account {
	t.Helper()
	a := &entity.Account{
		Email:        email,
		FullName:     "Test " + string(role),
		Role:         role,
		Status:       entity.AccountStatusActive,
		AuthProvider: entity.AuthProviderLocal,
	}
	require.NoError(t, f.factory.NewUnitOfWork(f.ctx).AccountRepository().Create(f.ctx, a))
	return a
}

func (f *fixture) pkg(t *testing.T, name string, days int) *entity.Package {
	t.Helper()
	p := &entity.Package{
		Name:         name,
		Price:        decimal.RequireFromString("29.99"),
		DurationDays: days,
		IsActive:     true,
	}
	require.NoError(t, f.factory.NewUnitOfWork(f.ctx).PackageRepository().Create(f.ctx, p))
	return p
}

func (f *fixture) membership(t *testing.T, accountId uuid.UUID, p *entity.Package, status entity.MembershipStatus, start time.Time) *entity.Membership {
	t.Helper()
	m := newMembership(accountId, p, start)
	m.Status = status
	require.NoError(t, f.factory.NewUnitOfWork(f.ctx).MembershipRepository().Create(f.ctx, m))
	return m
}

func (f *fixture) auditCount(t *testing.T) int64 {
	t.Helper()
	n, err := f.factory.NewUnitOfWork(f.ctx).SystemLogRepository().Count(f.ctx)
	require.NoError(t, err)
	return n
}

func assertKind(t *testing.T, err error, kind serverutils.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, serverutils.IsKind(err, kind), "want %s, got %v", kind, err)
}
