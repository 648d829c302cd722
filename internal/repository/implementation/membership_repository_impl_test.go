package implementation

import (
	"context"
	"testing"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/testdb"
	"gym-management-be/internal/repository/specification"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMembershipRepository_ExpireOverdueSkipsConcurrentEdits(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	accounts := NewAccountRepository(db)
	packages := NewPackageRepository(db)
	memberships := NewMembershipRepository(db)

	pkg := &entity.Package{Name: "Basic", Price: decimal.NewFromInt(30), DurationDays: 30, IsActive: true}
	require.NoError(t, packages.Create(ctx, pkg))

	overdue := make([]*entity.Membership, 0, 2)
	for _, email := range []string{"a@gym.test", "b@gym.test"} {
		a := &entity.Account{Email: email, FullName: email, Role: entity.AccountRoleMember, Status: entity.AccountStatusActive}
		require.NoError(t, accounts.Create(ctx, a))
		start := now.AddDate(0, 0, -40)
		m := &entity.Membership{AccountId: a.Id, PackageId: pkg.Id, Status: entity.MembershipStatusActive, StartDate: start, EndDate: start.AddDate(0, 0, 30)}
		require.NoError(t, memberships.Create(ctx, m))
		overdue = append(overdue, m)
	}
	kept, cancelled := overdue[0], overdue[1]

	// An admin cancels one row between the select and the guarded update
	fired := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:concurrent_cancel", func(tx *gorm.DB) {
		if fired {
			return
		}
		fired = true
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE memberships SET status = ? WHERE id = ?", string(entity.MembershipStatusCancelled), cancelled.Id).Error)
	}))

	expired, err := memberships.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, kept.Id, expired[0].Id)
	assert.Equal(t, entity.MembershipStatusExpired, expired[0].Status)

	got, err := memberships.FindOne(ctx, specification.ByID{ID: cancelled.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusCancelled, got.Status)
}
