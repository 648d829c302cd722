package service

import (
	"testing"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/pkg/admin/dashboard"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_MonthlyCounters(t *testing.T) {
	f := newFixture(t)
	uow := f.factory.NewUnitOfWork(f.ctx)
	lastMonth := time.Now().AddDate(0, -1, -1)

	fresh := f.account(t, "fresh@gym.test", entity.AccountRoleMember)
	old := &entity.Account{
		Email:        "old@gym.test",
		FullName:     "Old Member",
		Role:         entity.AccountRoleMember,
		Status:       entity.AccountStatusActive,
		AuthProvider: entity.AuthProviderLocal,
		CreatedAt:    lastMonth,
	}
	require.NoError(t, uow.AccountRepository().Create(f.ctx, old))
	f.account(t, "staff@gym.test", entity.AccountRoleAdmin)

	for _, p := range []*entity.Payment{
		{AccountId: fresh.Id, Plan: "Basic", Amount: decimal.RequireFromString("29.99"), Currency: "USD", Method: entity.PaymentMethodCard, Status: entity.PaymentStatusCompleted},
		{AccountId: old.Id, Plan: "Elite", Amount: decimal.RequireFromString("99.99"), Currency: "USD", Method: entity.PaymentMethodCard, Status: entity.PaymentStatusCompleted, CreatedAt: lastMonth},
		{AccountId: fresh.Id, Plan: "Premium", Amount: decimal.RequireFromString("59.99"), Currency: "USD", Method: entity.PaymentMethodQR, Status: entity.PaymentStatusPending},
	} {
		require.NoError(t, uow.PaymentRepository().Create(f.ctx, p))
	}

	active := &entity.GymService{Name: "Spin", Price: decimal.NewFromInt(10), BillingCycle: entity.BillingCyclePerSession, IsActive: true}
	retired := &entity.GymService{Name: "Zumba", Price: decimal.NewFromInt(10), BillingCycle: entity.BillingCyclePerSession, IsActive: true}
	require.NoError(t, uow.GymServiceRepository().Create(f.ctx, active))
	require.NoError(t, uow.GymServiceRepository().Create(f.ctx, retired))
	retired.IsActive = false
	require.NoError(t, uow.GymServiceRepository().Update(f.ctx, retired))

	svc := NewDashboardService(f.factory, dashboard.NewAggregator(f.log), nil, "USD", f.log)
	resp, err := svc.GetDashboard(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.TotalMembers)
	assert.Equal(t, int64(1), resp.NewMembersMonth)
	assert.Equal(t, int64(1), resp.ActiveServices)
	assert.True(t, resp.CompletedRevenue.Equal(decimal.RequireFromString("129.98")), resp.CompletedRevenue.String())
	assert.True(t, resp.MonthRevenue.Equal(decimal.RequireFromString("29.99")), resp.MonthRevenue.String())
	assert.Equal(t, int64(2), resp.CompletedPayments)
	assert.Equal(t, int64(1), resp.PendingPayments)
}
