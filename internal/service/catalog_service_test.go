package service

import (
	"testing"
	"time"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPackage_CrudAndCache(t *testing.T) {
	f := newFixture(t)
	cache := memory.NewCatalogCache(constant.CatalogCacheTTL)
	packages := NewPackageService(f.factory, cache, f.recorder, f.log)
	public := NewPublicService(f.factory, cache, f.log)

	basic, err := packages.Create(f.ctx, uuid.Nil, &dto.PackageRequest{Name: "Basic", Price: price("29.99"), DurationDays: 30, Features: []string{"Gym floor"}})
	require.NoError(t, err)
	assert.True(t, basic.IsActive)
	assert.Equal(t, []string{"Gym floor"}, basic.Features)

	listed, err := public.Packages(f.ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = packages.Create(f.ctx, uuid.Nil, &dto.PackageRequest{Name: "Basic", Price: price("10"), DurationDays: 7})
	assertKind(t, err, serverutils.KindConflict)

	_, err = packages.Create(f.ctx, uuid.Nil, &dto.PackageRequest{Name: "Premium", Price: price("49.99"), DurationDays: 30})
	require.NoError(t, err)

	listed, err = public.Packages(f.ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 2, "create must invalidate the cached catalog")

	inactive := false
	updated, err := packages.Update(f.ctx, uuid.Nil, basic.Id, &dto.PackageRequest{Name: "Basic", Price: price("31.00"), DurationDays: 30, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.True(t, decimal.RequireFromString("31").Equal(updated.Price))

	listed, err = public.Packages(f.ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, packages.Delete(f.ctx, uuid.Nil, basic.Id))
	_, err = packages.GetById(f.ctx, basic.Id)
	assertKind(t, err, serverutils.KindNotFound)
}

func TestPackage_DeleteInUse(t *testing.T) {
	f := newFixture(t)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	basic := f.pkg(t, "Basic", 30)
	f.membership(t, member.Id, basic, entity.MembershipStatusActive, time.Now())

	svc := NewPackageService(f.factory, memory.NewCatalogCache(time.Minute), f.recorder, f.log)
	assertKind(t, svc.Delete(f.ctx, uuid.Nil, basic.Id), serverutils.KindConflict)

	still, err := svc.GetById(f.ctx, basic.Id)
	require.NoError(t, err)
	assert.Equal(t, "Basic", still.Name)
}

func TestService_CrudAndConflict(t *testing.T) {
	f := newFixture(t)
	cache := memory.NewCatalogCache(time.Minute)
	svc := NewServiceCatalogService(f.factory, cache, f.recorder, f.log)
	public := NewPublicService(f.factory, cache, f.log)

	spin, err := svc.Create(f.ctx, uuid.Nil, &dto.GymServiceRequest{Name: "Spin", Price: price("15"), BillingCycle: "per_session", Capacity: 20})
	require.NoError(t, err)
	assert.True(t, spin.IsActive)

	_, err = svc.Create(f.ctx, uuid.Nil, &dto.GymServiceRequest{Name: " Spin ", Price: price("9"), BillingCycle: "monthly"})
	assertKind(t, err, serverutils.KindConflict)

	_, err = svc.Create(f.ctx, uuid.Nil, &dto.GymServiceRequest{Name: "Boxing", Price: price("-1"), BillingCycle: "monthly"})
	assertKind(t, err, serverutils.KindValidation)

	boxing, err := svc.Create(f.ctx, uuid.Nil, &dto.GymServiceRequest{Name: "Boxing", Price: price("40"), BillingCycle: "monthly"})
	require.NoError(t, err)

	_, err = svc.Update(f.ctx, uuid.Nil, boxing.Id, &dto.GymServiceRequest{Name: "Spin", Price: price("40"), BillingCycle: "monthly"})
	assertKind(t, err, serverutils.KindConflict)

	inactive := false
	updated, err := svc.Update(f.ctx, uuid.Nil, spin.Id, &dto.GymServiceRequest{Name: "Spin", Price: price("18"), BillingCycle: "per_session", Capacity: 25, IsActive: &inactive})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(18)))
	assert.Equal(t, 25, updated.Capacity)
	assert.False(t, updated.IsActive)

	listed, err := public.Services(f.ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1, "inactive services are hidden")
	assert.Equal(t, "Boxing", listed[0].Name)

	require.NoError(t, svc.Delete(f.ctx, uuid.Nil, spin.Id))
	_, err = svc.GetById(f.ctx, spin.Id)
	assertKind(t, err, serverutils.KindNotFound)

	err = svc.Delete(f.ctx, uuid.Nil, spin.Id)
	assertKind(t, err, serverutils.KindNotFound)
}

func TestBooking_CapacityAndCancel(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "a@gym.test", entity.AccountRoleMember)
	b := f.account(t, "b@gym.test", entity.AccountRoleMember)
	svc := NewServiceCatalogService(f.factory, memory.NewCatalogCache(time.Minute), f.recorder, f.log)

	yoga, err := svc.Create(f.ctx, uuid.Nil, &dto.GymServiceRequest{Name: "Yoga", Price: price("12"), BillingCycle: "per_session", Capacity: 1})
	require.NoError(t, err)

	slot := time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC)
	booked, err := svc.Book(f.ctx, a.Id, yoga.Id, &dto.BookingRequest{ScheduledAt: slot})
	require.NoError(t, err)
	assert.Equal(t, "BOOKED", booked.Status)

	_, err = svc.Book(f.ctx, b.Id, yoga.Id, &dto.BookingRequest{ScheduledAt: slot})
	assertKind(t, err, serverutils.KindConflict)

	// Same instant in another zone is the same slot
	_, err = svc.Book(f.ctx, b.Id, yoga.Id, &dto.BookingRequest{ScheduledAt: slot.In(time.FixedZone("UTC+2", 2*3600))})
	assertKind(t, err, serverutils.KindConflict)

	_, err = svc.Book(f.ctx, b.Id, yoga.Id, &dto.BookingRequest{ScheduledAt: slot.Add(time.Hour)})
	require.NoError(t, err)

	_, err = svc.CancelBooking(f.ctx, b.Id, booked.Id)
	assertKind(t, err, serverutils.KindForbidden)

	cancelled, err := svc.CancelBooking(f.ctx, a.Id, booked.Id)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	_, err = svc.CancelBooking(f.ctx, a.Id, booked.Id)
	assertKind(t, err, serverutils.KindConflict)

	// Cancelling frees the seat
	_, err = svc.Book(f.ctx, b.Id, yoga.Id, &dto.BookingRequest{ScheduledAt: slot})
	require.NoError(t, err)

	all, err := svc.ListBookings(f.ctx, yoga.Id)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.MyBookings(f.ctx, b.Id)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestBooking_InactiveServiceAndUnlimitedCapacity(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "a@gym.test", entity.AccountRoleMember)
	b := f.account(t, "b@gym.test", entity.AccountRoleMember)
	svc := NewServiceCatalogService(f.factory, memory.NewCatalogCache(time.Minute), f.recorder, f.log)

	towels, err := svc.Create(f.ctx, uuid.Nil, &dto.GymServiceRequest{Name: "Towels", Price: price("5"), BillingCycle: "monthly"})
	require.NoError(t, err)

	slot := time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC)
	_, err = svc.Book(f.ctx, a.Id, towels.Id, &dto.BookingRequest{ScheduledAt: slot})
	require.NoError(t, err)
	_, err = svc.Book(f.ctx, b.Id, towels.Id, &dto.BookingRequest{ScheduledAt: slot})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(f.ctx, uuid.Nil, towels.Id, &dto.GymServiceRequest{Name: "Towels", Price: price("5"), BillingCycle: "monthly", IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Book(f.ctx, a.Id, towels.Id, &dto.BookingRequest{ScheduledAt: slot.Add(24 * time.Hour)})
	assertKind(t, err, serverutils.KindConflict)

	_, err = svc.Book(f.ctx, a.Id, uuid.New(), &dto.BookingRequest{ScheduledAt: slot})
	assertKind(t, err, serverutils.KindNotFound)
}
