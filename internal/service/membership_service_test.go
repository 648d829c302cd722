package service

import (
	"context"
	"testing"
	"time"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembership_ExpireOverdue(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	basic := f.pkg(t, "Basic", 30)
	late := f.account(t, "late@gym.test", entity.AccountRoleMember)
	fresh := f.account(t, "fresh@gym.test", entity.AccountRoleMember)
	overdue := f.membership(t, late.Id, basic, entity.MembershipStatusActive, now.AddDate(0, 0, -40))
	current := f.membership(t, fresh.Id, basic, entity.MembershipStatusActive, now.AddDate(0, 0, -5))

	svc := NewMembershipService(f.factory, f.recorder, f.log).(*membershipService)
	svc.now = func() time.Time { return now }

	n, err := svc.ExpireOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	uow := f.factory.NewUnitOfWork(f.ctx)
	got, err := uow.MembershipRepository().FindOne(f.ctx, specification.ByID{ID: overdue.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusExpired, got.Status)

	got, err = uow.MembershipRepository().FindOne(f.ctx, specification.ByID{ID: current.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusActive, got.Status)

	expiries, err := uow.SystemLogRepository().Count(f.ctx, specification.ByLogAction{Action: constant.ActionExpire})
	require.NoError(t, err)
	assert.Equal(t, int64(1), expiries)

	// A second sweep finds nothing
	n, err = svc.ExpireOverdue(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMembership_SweepStopsWithContext(t *testing.T) {
	f := newFixture(t)
	svc := NewMembershipService(f.factory, f.recorder, f.log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunExpirySweep(ctx, svc, 10*time.Millisecond, f.log)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep did not stop")
	}
}
