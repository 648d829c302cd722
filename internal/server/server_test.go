package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gym-management-be/internal/bootstrap"
	"gym-management-be/internal/config"
	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/model"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/pkg/testdb"
	"gym-management-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type harness struct {
	t   *testing.T
	app *fiber.App
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithOrigins(t, "http://localhost:5173")
}

func newHarnessWithOrigins(t *testing.T, origins string) *harness {
	t.Helper()
	db := testdb.New(t)

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			BaseURL:            "http://localhost",
			ClientURL:          "http://localhost:5173",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: origins,
			Currency:           "USD",
		},
		Auth:  config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 1, MaxLoginAttempts: 5, LockoutMinutes: 15},
		Infra: config.InfraConfig{AuditTopic: "audit.events"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	require.NoError(t, db.Create(&model.Account{
		Id:           uuid.New(),
		Email:        "admin@gym.test",
		FullName:     "Admin",
		PasswordHash: &hashStr,
		Role:         "admin",
		Status:       "active",
		AuthProvider: "local",
	}).Error)

	container := bootstrap.NewContainer(db, cfg)
	t.Cleanup(container.Close)

	return &harness{t: t, app: server.New(cfg, container).GetApp()}
}

func (h *harness) do(method, path, token string, body interface{}) (int, []byte) {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, raw []byte) serverutils.BaseResponse[T] {
	t.Helper()
	var out serverutils.BaseResponse[T]
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func (h *harness) login(path, email, password string) string {
	h.t.Helper()
	status, raw := h.do(http.MethodPost, path, "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(h.t, http.StatusOK, status, string(raw))
	return decode[dto.LoginResponse](h.t, raw).Data.Token
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	h := newHarness(t)

	status, raw := h.do(http.MethodGet, "/api/admin/members", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, decode[any](t, raw).Success)

	status, _ = h.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{FullName: "Member One", Email: "one@gym.test", Password: "password1"})
	require.Equal(t, http.StatusCreated, status)
	memberToken := h.login("/api/auth/login", "one@gym.test", "password1")

	status, _ = h.do(http.MethodGet, "/api/admin/members", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = h.do(http.MethodPost, "/api/admin/login", "", dto.LoginRequest{Email: "one@gym.test", Password: "password1"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = h.do(http.MethodPost, "/api/admin/login", "", dto.LoginRequest{Email: "admin@gym.test", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	adminToken := h.login("/api/admin/login", "admin@gym.test", "admin12345")
	status, raw = h.do(http.MethodGet, "/api/admin/members", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[serverutils.PagedResult[dto.MemberResponse]](t, raw).Data
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestFrontDeskFlow(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/admin/login", "admin@gym.test", "admin12345")

	status, raw := h.do(http.MethodPost, "/api/admin/packages", admin, map[string]interface{}{
		"name": "Basic", "price": "29.99", "duration_days": 30, "features": []string{"Gym floor"},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	pkg := decode[dto.PackageResponse](t, raw).Data

	status, raw = h.do(http.MethodPost, "/api/admin/members", admin, dto.CreateMemberRequest{
		FullName: "Alex Doe", Email: "alex@gym.test", PackageId: &pkg.Id,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	member := decode[dto.MemberResponse](t, raw).Data
	require.NotNil(t, member.CurrentMembership)

	status, _ = h.do(http.MethodPost, "/api/admin/members", admin, dto.CreateMemberRequest{FullName: "Alex Two", Email: "ALEX@gym.test"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = h.do(http.MethodPost, "/api/admin/attendance/check-in", admin, dto.CheckInRequest{AccountId: member.Id})
	require.Equal(t, http.StatusCreated, status, string(raw))
	visit := decode[dto.AttendanceResponse](t, raw).Data

	status, raw = h.do(http.MethodPost, "/api/admin/attendance/check-in", admin, dto.CheckInRequest{AccountId: member.Id})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "member is already checked in", decode[any](t, raw).Message)

	status, raw = h.do(http.MethodGet, "/api/admin/attendance/current", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.AttendanceResponse](t, raw).Data, 1)

	status, _ = h.do(http.MethodPut, "/api/admin/attendance/check-out/"+visit.Id.String(), admin, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = h.do(http.MethodPut, "/api/admin/attendance/check-out/"+visit.Id.String(), admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(http.MethodPut, "/api/admin/attendance/check-out/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = h.do(http.MethodGet, "/api/admin/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, status)
	board := decode[dto.DashboardResponse](t, raw).Data
	assert.Equal(t, int64(1), board.TotalMembers)
	assert.Equal(t, int64(1), board.TodayVisits)
	assert.Zero(t, board.CurrentlyCheckedIn)

	status, raw = h.do(http.MethodGet, "/api/admin/logs?type=ATTENDANCE", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), decode[serverutils.PagedResult[dto.SystemLogResponse]](t, raw).Data.Pagination.Total)
}

func TestMemberPaymentFlow(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/admin/login", "admin@gym.test", "admin12345")

	status, _ := h.do(http.MethodPost, "/api/admin/packages", admin, map[string]interface{}{
		"name": "Premium", "price": "49.99", "duration_days": 30,
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = h.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{FullName: "Pat Payer", Email: "pat@gym.test", Password: "password1"})
	require.Equal(t, http.StatusCreated, status)
	token := h.login("/api/auth/login", "pat@gym.test", "password1")

	status, _ = h.do(http.MethodPost, "/api/payment/create-payment", token, dto.CreatePaymentRequest{Plan: "Premium", Method: "bitcoin"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := h.do(http.MethodPost, "/api/payment/create-payment", token, dto.CreatePaymentRequest{Plan: "Premium", Method: "qr"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[dto.CreatePaymentResponse](t, raw).Data
	assert.NotEmpty(t, created.QrImage)

	status, raw = h.do(http.MethodPost, "/api/payment/verify-qr-payment", token, dto.VerifyQrPaymentRequest{Reference: created.QrReference})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "completed", decode[dto.PaymentResponse](t, raw).Data.Status)

	status, raw = h.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[dto.MeResponse](t, raw).Data
	require.NotNil(t, me.Membership)
	assert.Equal(t, "Premium", me.Membership.PackageName)
	assert.NotNil(t, me.LastLoginAt)

	status, _ = h.do(http.MethodPut, "/api/auth/me", token, map[string]interface{}{"full_name": "P", "workout_frequency": 3})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = h.do(http.MethodPut, "/api/auth/me", token, map[string]interface{}{"full_name": "Pat Payer", "workout_frequency": 3})
	require.Equal(t, http.StatusOK, status, string(raw))
	require.NotNil(t, decode[dto.AccountResponse](t, raw).Data.WorkoutFrequency)

	status, raw = h.do(http.MethodGet, "/api/payment/history", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.PaymentResponse](t, raw).Data, 1)

	// Card payments are unavailable without a processor key
	status, _ = h.do(http.MethodPost, "/api/payment/create-payment", token, dto.CreatePaymentRequest{Plan: "Premium", Method: "card"})
	assert.Equal(t, http.StatusBadRequest, status)

	// Unsigned webhook
	status, _ = h.do(http.MethodPost, "/api/payment/midtrans/notification", "", dto.MidtransWebhookRequest{OrderId: created.PaymentId.String(), TransactionStatus: "settlement"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPublicCatalogAndSite(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/admin/login", "admin@gym.test", "admin12345")

	status, raw := h.do(http.MethodGet, "/api/public/packages", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]dto.PackageResponse](t, raw).Data)

	status, _ = h.do(http.MethodPost, "/api/admin/packages", admin, map[string]interface{}{
		"name": "Elite", "price": "79.99", "duration_days": 30,
	})
	require.Equal(t, http.StatusCreated, status)

	status, raw = h.do(http.MethodGet, "/api/public/packages", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.PackageResponse](t, raw).Data, 1)

	status, raw = h.do(http.MethodGet, "/plans", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), constant.SiteName)
	assert.Contains(t, string(raw), "Elite")
	assert.Contains(t, string(raw), "79.99")

	status, _ = h.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCorsOrigins(t *testing.T) {
	cases := []struct {
		name        string
		origins     string
		wantOrigin  string
		credentials string
	}{
		{"wildcard", "*", "*", ""},
		{"explicit", "http://localhost:5173", "http://localhost:5173", "true"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarnessWithOrigins(t, tc.origins)

			req := httptest.NewRequest(http.MethodGet, "/api/public/packages", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			resp, err := h.app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.wantOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.credentials, resp.Header.Get("Access-Control-Allow-Credentials"))
		})
	}
}
