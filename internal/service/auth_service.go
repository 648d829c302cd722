// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gym-management-be/internal/config"
	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/mailer"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/audit"
	"gym-management-be/pkg/throttle"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GoogleLoginURL() (string, error)
	GoogleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, error)
	Me(ctx context.Context, accountId uuid.UUID) (*dto.MeResponse, error)
	UpdateProfile(ctx context.Context, accountId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.AccountResponse, error)
}

// oauthStateTTL bounds how long a Google login may take between redirect and callback.
const oauthStateTTL = 10 * time.Minute

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        config.AuthConfig
	googleConf *oauth2.Config
	states     *cache.Cache
	throttle   throttle.LoginThrottle
	mailer     mailer.IEmailService
	recorder   audit.Recorder
	logger     logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	cfg *config.Config,
	loginThrottle throttle.LoginThrottle,
	emailService mailer.IEmailService,
	recorder audit.Recorder,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		cfg:        cfg.Auth,
		googleConf: &oauth2.Config{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  cfg.OAuth.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		states:   cache.New(oauthStateTTL, 2*oauthStateTTL),
		throttle: loginThrottle,
		mailer:   emailService,
		recorder: recorder,
		logger:   log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	email := normalizeEmail(req.Email)

	existing, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, storeError(s.logger, "AUTH", "find account", err)
	}
	if existing != nil {
		return nil, serverutils.Conflict("email %s is already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, serverutils.Internal("hash password failed", err)
	}
	hashStr := string(hash)

	account := &entity.Account{
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		PasswordHash: &hashStr,
		Role:         entity.AccountRoleMember,
		Status:       entity.AccountStatusActive,
		AuthProvider: entity.AuthProviderLocal,
	}
	if err := uow.AccountRepository().Create(ctx, account); err != nil {
		return nil, storeError(s.logger, "AUTH", "create account", err)
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeAuth,
		Action:           constant.ActionRegister,
		Description:      fmt.Sprintf("Member %s registered", account.Email),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(account.Id),
	})

	go func() {
		if err := s.mailer.SendWelcome(account.Email, account.FullName); err != nil {
			s.logger.Warn("AUTH", "Welcome email failed", map[string]interface{}{"email": account.Email, "error": err.Error()})
		}
	}()

	resp := toAccountResponse(account)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.login(ctx, req, false)
}

func (s *authService) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.login(ctx, req, true)
}

func (s *authService) login(ctx context.Context, req *dto.LoginRequest, adminOnly bool) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	locked, err := s.throttle.IsLocked(ctx, email)
	if err != nil {
		s.logger.Warn("AUTH", "Login throttle unavailable", map[string]interface{}{"error": err.Error()})
	}
	if locked {
		return nil, serverutils.Unauthorized(fmt.Sprintf("too many failed attempts, try again in %d minutes", s.cfg.LockoutMinutes))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, storeError(s.logger, "AUTH", "find account", err)
	}

	if account == nil || account.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(req.Password)) != nil {
		s.registerFailure(ctx, email, account)
		return nil, serverutils.Unauthorized("invalid email or password")
	}

	if account.Status == entity.AccountStatusBlocked {
		return nil, serverutils.Forbidden("account is blocked")
	}
	if adminOnly && !account.IsAdmin() {
		return nil, serverutils.Forbidden("admin access required")
	}

	s.throttle.Reset(ctx, email)
	return s.issueToken(ctx, account)
}

func (s *authService) registerFailure(ctx context.Context, email string, account *entity.Account) {
	nowLocked, err := s.throttle.RegisterFailure(ctx, email)
	if err != nil {
		s.logger.Warn("AUTH", "Failed to count login failure", map[string]interface{}{"error": err.Error()})
	}

	entry := audit.Entry{
		Type:        entity.LogTypeAuth,
		Action:      constant.ActionLoginFailed,
		Description: fmt.Sprintf("Failed login for %s", email),
		Metadata:    map[string]interface{}{"email": email, "locked": nowLocked},
	}
	if account != nil {
		entry.SubjectAccountId = audit.AccountRef(account.Id)
	}
	s.recorder.RecordEvent(ctx, entry)
}

func (s *authService) issueToken(ctx context.Context, account *entity.Account) (*dto.LoginResponse, error) {
	ttl := time.Duration(s.cfg.TokenTTLHours) * time.Hour
	token, err := serverutils.GenerateToken(s.cfg.JWTSecret, account.Id, string(account.Role), ttl)
	if err != nil {
		return nil, serverutils.Internal("sign token failed", err)
	}

	now := time.Now()
	if err := s.uowFactory.NewUnitOfWork(ctx).AccountRepository().TouchLastLogin(ctx, account.Id, now); err != nil {
		s.logger.Warn("AUTH", "Failed to record last login", map[string]interface{}{"account_id": account.Id, "error": err.Error()})
	} else {
		account.LastLoginAt = &now
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeAuth,
		Action:           constant.ActionLogin,
		Description:      fmt.Sprintf("%s %s logged in", account.Role, account.Email),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(account.Id),
	})

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(ttl),
		Account:   toAccountResponse(account),
	}, nil
}

func (s *authService) GoogleLoginURL() (string, error) {
	if s.googleConf.ClientID == "" {
		return "", serverutils.InvalidState("google login is not configured")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", serverutils.Internal("generate oauth state failed", err)
	}
	state := base64.URLEncoding.EncodeToString(b)
	s.states.Set(state, struct{}{}, cache.DefaultExpiration)

	return s.googleConf.AuthCodeURL(state), nil
}

// consumeState reports whether state was issued here and not used yet.
func (s *authService) consumeState(state string) bool {
	if state == "" {
		return false
	}
	if _, ok := s.states.Get(state); !ok {
		return false
	}
	s.states.Delete(state)
	return true
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (s *authService) GoogleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, error) {
	if !s.consumeState(state) {
		return nil, serverutils.Unauthorized("invalid or expired oauth state")
	}
	if code == "" {
		return nil, serverutils.ValidationError("code is required")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("AUTH", "OAuth code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.Unauthorized("oauth code exchange failed")
	}

	info, err := s.fetchGoogleUser(ctx, token)
	if err != nil {
		return nil, serverutils.Internal("fetch google profile failed", err)
	}
	if info.Email == "" || !info.VerifiedEmail {
		return nil, serverutils.Unauthorized("google account email is not verified")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	email := normalizeEmail(info.Email)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, storeError(s.logger, "AUTH", "find account", err)
	}

	if account == nil {
		account = &entity.Account{
			Email:        email,
			FullName:     info.Name,
			Role:         entity.AccountRoleMember,
			Status:       entity.AccountStatusActive,
			AuthProvider: entity.AuthProviderGoogle,
		}
		if err := uow.AccountRepository().Create(ctx, account); err != nil {
			return nil, storeError(s.logger, "AUTH", "create account", err)
		}
		s.recorder.RecordEvent(ctx, audit.Entry{
			Type:             entity.LogTypeAuth,
			Action:           constant.ActionRegister,
			Description:      fmt.Sprintf("Member %s registered with Google", email),
			SubjectAccountId: audit.AccountRef(account.Id),
			ActorAccountId:   audit.AccountRef(account.Id),
			Metadata:         map[string]interface{}{"provider": entity.AuthProviderGoogle},
		})
	}

	if account.Status == entity.AccountStatusBlocked {
		return nil, serverutils.Forbidden("account is blocked")
	}

	return s.issueToken(ctx, account)
}

func (s *authService) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.googleConf.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *authService) Me(ctx context.Context, accountId uuid.UUID) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: accountId})
	if err != nil {
		return nil, storeError(s.logger, "AUTH", "find account", err)
	}
	if account == nil {
		return nil, serverutils.NotFound("account not found")
	}

	membership, err := uow.MembershipRepository().FindCurrent(ctx, account.Id, time.Now())
	if err != nil {
		return nil, storeError(s.logger, "AUTH", "find membership", err)
	}

	return &dto.MeResponse{
		AccountResponse: toAccountResponse(account),
		Membership:      toMembershipResponse(membership),
	}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, accountId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.AccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: accountId})
	if err != nil {
		return nil, storeError(s.logger, "AUTH", "find account", err)
	}
	if account == nil {
		return nil, serverutils.NotFound("account not found")
	}

	account.FullName = strings.TrimSpace(req.FullName)
	account.Phone = req.Phone
	account.TargetWeight = req.TargetWeight
	account.WorkoutFrequency = req.WorkoutFrequency
	if err := uow.AccountRepository().Update(ctx, account); err != nil {
		return nil, storeError(s.logger, "AUTH", "update profile", err)
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeMember,
		Action:           constant.ActionUpdate,
		Description:      fmt.Sprintf("Member %s updated their profile", account.Email),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(account.Id),
	})

	resp := toAccountResponse(account)
	return &resp, nil
}
