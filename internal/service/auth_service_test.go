package service

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"gym-management-be/internal/config"
	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/mailer"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryThrottle locks an identity after max failures.
type memoryThrottle struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
}

func (m *memoryThrottle) IsLocked(_ context.Context, identity string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[strings.ToLower(identity)] >= m.max, nil
}

func (m *memoryThrottle) RegisterFailure(_ context.Context, identity string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[strings.ToLower(identity)]++
	return m.failures[strings.ToLower(identity)] >= m.max, nil
}

func (m *memoryThrottle) Reset(_ context.Context, identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failures, strings.ToLower(identity))
}

func newAuth(f *fixture, maxAttempts int) IAuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 1, LockoutMinutes: 15},
	}
	return NewAuthService(
		f.factory,
		cfg,
		&memoryThrottle{max: maxAttempts, failures: map[string]int{}},
		mailer.NewEmailService(config.SMTPConfig{}, "http://localhost", f.log),
		f.recorder,
		f.log,
	)
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f, 5)

	account, err := svc.Register(f.ctx, &dto.RegisterRequest{FullName: "Sam Lee", Email: "Sam@Gym.Test", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "sam@gym.test", account.Email)
	assert.Equal(t, "member", account.Role)

	_, err = svc.Register(f.ctx, &dto.RegisterRequest{FullName: "Sam Again", Email: "sam@gym.test", Password: "password1"})
	assertKind(t, err, serverutils.KindConflict)

	login, err := svc.Login(f.ctx, &dto.LoginRequest{Email: "SAM@gym.test", Password: "password1"})
	require.NoError(t, err)
	claims, err := serverutils.ParseToken("test-secret", login.Token)
	require.NoError(t, err)
	assert.Equal(t, account.Id, claims.UserId)
	assert.Equal(t, "member", claims.Role)

	_, err = svc.LoginAdmin(f.ctx, &dto.LoginRequest{Email: "sam@gym.test", Password: "password1"})
	assertKind(t, err, serverutils.KindForbidden)

	me, err := svc.Me(f.ctx, account.Id)
	require.NoError(t, err)
	assert.Equal(t, "Sam Lee", me.FullName)
	assert.Nil(t, me.Membership)

	logins, err := f.factory.NewUnitOfWork(f.ctx).SystemLogRepository().Count(f.ctx, specification.ByLogAction{Action: constant.ActionLogin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), logins)
}

func TestAuth_LockoutAfterFailures(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f, 3)

	_, err := svc.Register(f.ctx, &dto.RegisterRequest{FullName: "Sam Lee", Email: "sam@gym.test", Password: "password1"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Login(f.ctx, &dto.LoginRequest{Email: "sam@gym.test", Password: "wrong-pass"})
		assertKind(t, err, serverutils.KindUnauthorized)
	}

	// Correct password is refused while locked
	_, err = svc.Login(f.ctx, &dto.LoginRequest{Email: "sam@gym.test", Password: "password1"})
	assertKind(t, err, serverutils.KindUnauthorized)

	failures, err := f.factory.NewUnitOfWork(f.ctx).SystemLogRepository().Count(f.ctx, specification.ByLogAction{Action: constant.ActionLoginFailed})
	require.NoError(t, err)
	assert.Equal(t, int64(3), failures)
}

func TestAuth_BlockedAndAdmin(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f, 5)

	_, err := svc.Register(f.ctx, &dto.RegisterRequest{FullName: "Blocked Member", Email: "blocked@gym.test", Password: "password1"})
	require.NoError(t, err)
	uow := f.factory.NewUnitOfWork(f.ctx)
	blocked, err := uow.AccountRepository().FindOne(f.ctx, specification.ByEmail{Email: "blocked@gym.test"})
	require.NoError(t, err)
	blocked.Status = entity.AccountStatusBlocked
	require.NoError(t, uow.AccountRepository().Update(f.ctx, blocked))

	_, err = svc.Login(f.ctx, &dto.LoginRequest{Email: "blocked@gym.test", Password: "password1"})
	assertKind(t, err, serverutils.KindForbidden)

	admin, err := svc.Register(f.ctx, &dto.RegisterRequest{FullName: "Admin", Email: "admin@gym.test", Password: "password1"})
	require.NoError(t, err)
	promoted, err := uow.AccountRepository().FindOne(f.ctx, specification.ByID{ID: admin.Id})
	require.NoError(t, err)
	promoted.Role = entity.AccountRoleAdmin
	require.NoError(t, uow.AccountRepository().Update(f.ctx, promoted))

	login, err := svc.LoginAdmin(f.ctx, &dto.LoginRequest{Email: "admin@gym.test", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "admin", login.Account.Role)
}

func TestAuth_GoogleLoginRequiresConfig(t *testing.T) {
	f := newFixture(t)
	_, err := newAuth(f, 5).GoogleLoginURL()
	assertKind(t, err, serverutils.KindInvalidState)
}

func TestAuth_LoginRecordsLastLogin(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f, 5)

	account, err := svc.Register(f.ctx, &dto.RegisterRequest{FullName: "Sam Lee", Email: "sam@gym.test", Password: "password1"})
	require.NoError(t, err)
	assert.Nil(t, account.LastLoginAt)

	login, err := svc.Login(f.ctx, &dto.LoginRequest{Email: "sam@gym.test", Password: "password1"})
	require.NoError(t, err)
	require.NotNil(t, login.Account.LastLoginAt)

	stored, err := f.factory.NewUnitOfWork(f.ctx).AccountRepository().FindOne(f.ctx, specification.ByID{ID: account.Id})
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *stored.LastLoginAt, time.Minute)
}

func TestAuth_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(f, 5)

	account, err := svc.Register(f.ctx, &dto.RegisterRequest{FullName: "Sam Lee", Email: "sam@gym.test", Password: "password1"})
	require.NoError(t, err)

	weight := 72.5
	freq := 4
	updated, err := svc.UpdateProfile(f.ctx, account.Id, &dto.UpdateProfileRequest{
		FullName:         "  Samantha Lee ",
		Phone:            "+62 811",
		TargetWeight:     &weight,
		WorkoutFrequency: &freq,
	})
	require.NoError(t, err)
	assert.Equal(t, "Samantha Lee", updated.FullName)

	me, err := svc.Me(f.ctx, account.Id)
	require.NoError(t, err)
	assert.Equal(t, "+62 811", me.Phone)
	require.NotNil(t, me.TargetWeight)
	assert.InDelta(t, 72.5, *me.TargetWeight, 0.01)
	require.NotNil(t, me.WorkoutFrequency)
	assert.Equal(t, 4, *me.WorkoutFrequency)
	assert.Equal(t, "sam@gym.test", me.Email, "email is not editable")

	updates, err := f.factory.NewUnitOfWork(f.ctx).SystemLogRepository().Count(f.ctx, specification.ByLogAction{Action: constant.ActionUpdate})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updates)

	_, err = svc.UpdateProfile(f.ctx, uuid.New(), &dto.UpdateProfileRequest{FullName: "Ghost"})
	assertKind(t, err, serverutils.KindNotFound)
}

func TestAuth_GoogleStateIsSingleUse(t *testing.T) {
	f := newFixture(t)
	cfg := &config.Config{
		Auth:  config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 1},
		OAuth: config.OAuthConfig{GoogleClientID: "client", GoogleClientSecret: "secret", GoogleRedirectURL: "http://localhost/cb"},
	}
	svc := NewAuthService(f.factory, cfg, &memoryThrottle{max: 5, failures: map[string]int{}},
		mailer.NewEmailService(config.SMTPConfig{}, "http://localhost", f.log), f.recorder, f.log).(*authService)

	raw, err := svc.GoogleLoginURL()
	require.NoError(t, err)
	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	_, err = svc.GoogleCallback(f.ctx, "code", "forged")
	assertKind(t, err, serverutils.KindUnauthorized)

	_, err = svc.GoogleCallback(f.ctx, "code", "")
	assertKind(t, err, serverutils.KindUnauthorized)

	assert.True(t, svc.consumeState(state))
	assert.False(t, svc.consumeState(state), "state must not be replayed")
}
