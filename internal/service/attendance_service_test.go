package service

import (
	"testing"
	"time"

	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendance(f *fixture, now time.Time) *attendanceService {
	svc := NewAttendanceService(f.factory, f.recorder, f.log).(*attendanceService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestAttendance_CheckInAndOut(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	admin := f.account(t, "admin@gym.test", entity.AccountRoleAdmin)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	f.membership(t, member.Id, f.pkg(t, "Basic", 30), entity.MembershipStatusActive, now.AddDate(0, 0, -1))

	svc := newAttendance(f, now)

	visit, err := svc.CheckIn(f.ctx, admin.Id, member.Id)
	require.NoError(t, err)
	assert.Equal(t, member.Id, visit.AccountId)
	assert.Nil(t, visit.CheckOut)

	current, err := svc.ListCurrent(f.ctx)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, visit.Id, current[0].Id)

	svc.now = func() time.Time { return now.Add(90 * time.Minute) }
	closed, err := svc.CheckOut(f.ctx, admin.Id, visit.Id)
	require.NoError(t, err)
	require.NotNil(t, closed.CheckOut)
	require.NotNil(t, closed.DurationMinutes)
	assert.InDelta(t, 90, *closed.DurationMinutes, 0.01)

	current, err = svc.ListCurrent(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, current)

	assert.Equal(t, int64(2), f.auditCount(t))
}

func TestAttendance_SecondCheckInConflicts(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	f.membership(t, member.Id, f.pkg(t, "Basic", 30), entity.MembershipStatusActive, now)

	svc := newAttendance(f, now)
	_, err := svc.CheckIn(f.ctx, uuid.Nil, member.Id)
	require.NoError(t, err)

	_, err = svc.CheckIn(f.ctx, uuid.Nil, member.Id)
	assertKind(t, err, serverutils.KindConflict)

	open, err := svc.ListCurrent(f.ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestAttendance_CheckInRequiresUsableMembership(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		setup func(t *testing.T, f *fixture, member *entity.Account)
	}{
		{"no membership", func(t *testing.T, f *fixture, member *entity.Account) {}},
		{"suspended", func(t *testing.T, f *fixture, member *entity.Account) {
			f.membership(t, member.Id, f.pkg(t, "Basic", 30), entity.MembershipStatusSuspended, now)
		}},
		{"past end date", func(t *testing.T, f *fixture, member *entity.Account) {
			f.membership(t, member.Id, f.pkg(t, "Basic", 30), entity.MembershipStatusActive, now.AddDate(0, 0, -31))
		}},
		{"starts in the future", func(t *testing.T, f *fixture, member *entity.Account) {
			f.membership(t, member.Id, f.pkg(t, "Basic", 30), entity.MembershipStatusActive, now.AddDate(0, 0, 60))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			member := f.account(t, "member@gym.test", entity.AccountRoleMember)
			tc.setup(t, f, member)

			_, err := newAttendance(f, now).CheckIn(f.ctx, uuid.Nil, member.Id)
			assertKind(t, err, serverutils.KindInvalidState)
		})
	}
}

func TestAttendance_CheckInBlockedAccount(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	f.membership(t, member.Id, f.pkg(t, "Basic", 30), entity.MembershipStatusActive, now)

	member.Status = entity.AccountStatusBlocked
	require.NoError(t, f.factory.NewUnitOfWork(f.ctx).AccountRepository().Update(f.ctx, member))

	_, err := newAttendance(f, now).CheckIn(f.ctx, uuid.Nil, member.Id)
	assertKind(t, err, serverutils.KindInvalidState)
}

func TestAttendance_CheckInUnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := newAttendance(f, time.Now()).CheckIn(f.ctx, uuid.Nil, uuid.New())
	assertKind(t, err, serverutils.KindNotFound)
}

func TestAttendance_CheckOutTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	f.membership(t, member.Id, f.pkg(t, "Basic", 30), entity.MembershipStatusActive, now)

	svc := newAttendance(f, now)
	visit, err := svc.CheckIn(f.ctx, uuid.Nil, member.Id)
	require.NoError(t, err)

	_, err = svc.CheckOut(f.ctx, uuid.Nil, visit.Id)
	require.NoError(t, err)

	_, err = svc.CheckOut(f.ctx, uuid.Nil, visit.Id)
	assertKind(t, err, serverutils.KindConflict)

	_, err = svc.CheckOut(f.ctx, uuid.Nil, uuid.New())
	assertKind(t, err, serverutils.KindNotFound)
}

func TestAttendance_HistoryAndStatistics(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	a := f.account(t, "a@gym.test", entity.AccountRoleMember)
	b := f.account(t, "b@gym.test", entity.AccountRoleMember)
	basic := f.pkg(t, "Basic", 30)
	f.membership(t, a.Id, basic, entity.MembershipStatusActive, day.AddDate(0, 0, -1))
	f.membership(t, b.Id, basic, entity.MembershipStatusActive, day.AddDate(0, 0, -1))

	svc := newAttendance(f, day)
	visit, err := svc.CheckIn(f.ctx, uuid.Nil, a.Id)
	require.NoError(t, err)
	svc.now = func() time.Time { return day.Add(time.Hour) }
	_, err = svc.CheckOut(f.ctx, uuid.Nil, visit.Id)
	require.NoError(t, err)

	svc.now = func() time.Time { return day.Add(2 * time.Hour) }
	_, err = svc.CheckIn(f.ctx, uuid.Nil, a.Id)
	require.NoError(t, err)
	_, err = svc.CheckIn(f.ctx, uuid.Nil, b.Id)
	require.NoError(t, err)

	history, err := svc.History(f.ctx, dto.AttendanceHistoryQuery{AccountId: a.Id.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), history.Pagination.Total)
	require.Len(t, history.Items, 2)
	assert.Nil(t, history.Items[0].CheckOut, "newest visit first")

	_, err = svc.History(f.ctx, dto.AttendanceHistoryQuery{AccountId: "not-a-uuid"})
	assertKind(t, err, serverutils.KindValidation)

	mine, err := svc.MyAttendance(f.ctx, b.Id, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Pagination.Total)

	stats, err := svc.Statistics(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.CurrentlyCheckedIn)
	assert.Equal(t, int64(3), stats.TodayVisits)
	assert.InDelta(t, 60, stats.AverageVisitMinutes, 0.01)
}

func TestAttendance_HistoryDateRange(t *testing.T) {
	f := newFixture(t)
	first := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	member := f.account(t, "member@gym.test", entity.AccountRoleMember)
	f.membership(t, member.Id, f.pkg(t, "Basic", 30), entity.MembershipStatusActive, first.AddDate(0, 0, -1))

	svc := newAttendance(f, first)
	for _, at := range []time.Time{first, first.AddDate(0, 0, 2)} {
		svc.now = func() time.Time { return at }
		visit, err := svc.CheckIn(f.ctx, uuid.Nil, member.Id)
		require.NoError(t, err)
		svc.now = func() time.Time { return at.Add(time.Hour) }
		_, err = svc.CheckOut(f.ctx, uuid.Nil, visit.Id)
		require.NoError(t, err)
	}

	sameDay, err := svc.History(f.ctx, dto.AttendanceHistoryQuery{StartDate: "2026-03-10", EndDate: "2026-03-10"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sameDay.Pagination.Total)

	both, err := svc.History(f.ctx, dto.AttendanceHistoryQuery{StartDate: "2026-03-10", EndDate: "2026-03-12"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), both.Pagination.Total)

	onlyStart, err := svc.History(f.ctx, dto.AttendanceHistoryQuery{StartDate: "2026-03-11"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), onlyStart.Pagination.Total, "a single bound is ignored")

	_, err = svc.History(f.ctx, dto.AttendanceHistoryQuery{StartDate: "2026-03-12", EndDate: "2026-03-10"})
	assertKind(t, err, serverutils.KindValidation)

	_, err = svc.History(f.ctx, dto.AttendanceHistoryQuery{StartDate: "yesterday", EndDate: "2026-03-10"})
	assertKind(t, err, serverutils.KindValidation)
}
