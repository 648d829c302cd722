// FILE: internal/service/member_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/audit"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IMemberService interface {
	List(ctx context.Context, query dto.ListQuery) (*serverutils.PagedResult[dto.MemberResponse], error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.MemberResponse, error)
	Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateMemberRequest) (*dto.MemberResponse, error)
	Update(ctx context.Context, actorId, id uuid.UUID, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	Delete(ctx context.Context, actorId, id uuid.UUID) error

	AssignMembership(ctx context.Context, actorId, id uuid.UUID, req *dto.AssignMembershipRequest) (*dto.MembershipResponse, error)
	ListMemberships(ctx context.Context, id uuid.UUID) ([]dto.MembershipResponse, error)
}

type memberService struct {
	uowFactory unitofwork.RepositoryFactory
	recorder   audit.Recorder
	logger     logger.ILogger
}

func NewMemberService(uowFactory unitofwork.RepositoryFactory, recorder audit.Recorder, log logger.ILogger) IMemberService {
	return &memberService{
		uowFactory: uowFactory,
		recorder:   recorder,
		logger:     log,
	}
}

var memberSearchFields = []string{"full_name", "email", "phone"}

func (s *memberService) List(ctx context.Context, query dto.ListQuery) (*serverutils.PagedResult[dto.MemberResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, limit, offset := serverutils.NormalizePage(query.Page, query.Limit)

	filters := []specification.Specification{
		specification.ByRole{Role: string(entity.AccountRoleMember)},
		specification.Search{Query: query.Q, Fields: memberSearchFields},
	}

	total, err := uow.AccountRepository().Count(ctx, filters...)
	if err != nil {
		return nil, storeError(s.logger, "MEMBER", "count members", err)
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	accounts, err := uow.AccountRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, storeError(s.logger, "MEMBER", "list members", err)
	}

	items := make([]dto.MemberResponse, 0, len(accounts))
	for _, a := range accounts {
		current, err := uow.MembershipRepository().FindCurrent(ctx, a.Id, time.Now())
		if err != nil {
			return nil, storeError(s.logger, "MEMBER", "find membership", err)
		}
		items = append(items, dto.MemberResponse{
			AccountResponse:   toAccountResponse(a),
			CurrentMembership: toMembershipResponse(current),
		})
	}

	return serverutils.NewPagedResult(items, total, page, limit), nil
}

func (s *memberService) findMember(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Account, error) {
	account, err := uow.AccountRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByRole{Role: string(entity.AccountRoleMember)},
	)
	if err != nil {
		return nil, storeError(s.logger, "MEMBER", "find member", err)
	}
	if account == nil {
		return nil, serverutils.NotFound("member %s not found", id)
	}
	return account, nil
}

func (s *memberService) GetById(ctx context.Context, id uuid.UUID) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := s.findMember(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	current, err := uow.MembershipRepository().FindCurrent(ctx, account.Id, time.Now())
	if err != nil {
		return nil, storeError(s.logger, "MEMBER", "find membership", err)
	}

	return &dto.MemberResponse{
		AccountResponse:   toAccountResponse(account),
		CurrentMembership: toMembershipResponse(current),
	}, nil
}

func (s *memberService) ensureEmailFree(ctx context.Context, uow unitofwork.UnitOfWork, email string, exclude uuid.UUID) error {
	specs := []specification.Specification{specification.ByEmail{Email: email}}
	if exclude != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: exclude})
	}
	count, err := uow.AccountRepository().Count(ctx, specs...)
	if err != nil {
		return storeError(s.logger, "MEMBER", "check email", err)
	}
	if count > 0 {
		return serverutils.Conflict("email %s is already registered", email)
	}
	return nil
}

func (s *memberService) Create(ctx context.Context, actorId uuid.UUID, req *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	email := normalizeEmail(req.Email)

	if err := s.ensureEmailFree(ctx, uow, email, uuid.Nil); err != nil {
		return nil, err
	}

	var pkg *entity.Package
	if req.PackageId != nil {
		found, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: *req.PackageId})
		if err != nil {
			return nil, storeError(s.logger, "MEMBER", "find package", err)
		}
		if found == nil {
			return nil, serverutils.NotFound("package %s not found", *req.PackageId)
		}
		pkg = found
	}

	account := &entity.Account{
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		Role:         entity.AccountRoleMember,
		Status:       entity.AccountStatusActive,
		AuthProvider: entity.AuthProviderLocal,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, serverutils.Internal("hash password failed", err)
		}
		hashStr := string(hash)
		account.PasswordHash = &hashStr
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("begin transaction failed", err)
	}
	defer uow.Rollback()

	if err := uow.AccountRepository().Create(ctx, account); err != nil {
		return nil, storeError(s.logger, "MEMBER", "create member", err)
	}

	var membership *entity.Membership
	if pkg != nil {
		membership = newMembership(account.Id, pkg, time.Now())
		if err := uow.MembershipRepository().Create(ctx, membership); err != nil {
			return nil, storeError(s.logger, "MEMBER", "create membership", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("commit failed", err)
	}

	meta := map[string]interface{}{"email": account.Email}
	if membership != nil {
		meta["package"] = pkg.Name
	}
	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeMember,
		Action:           constant.ActionCreate,
		Description:      fmt.Sprintf("Member %s created", account.Email),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(actorId),
		Metadata:         meta,
	})

	return &dto.MemberResponse{
		AccountResponse:   toAccountResponse(account),
		CurrentMembership: toMembershipResponse(membership),
	}, nil
}

// newMembership starts an ACTIVE membership at start for the package's duration.
func newMembership(accountId uuid.UUID, pkg *entity.Package, start time.Time) *entity.Membership {
	return &entity.Membership{
		AccountId:   accountId,
		PackageId:   pkg.Id,
		PackageName: pkg.Name,
		Status:      entity.MembershipStatusActive,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, pkg.DurationDays),
	}
}

func (s *memberService) Update(ctx context.Context, actorId, id uuid.UUID, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := s.findMember(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Email != "" {
		email := normalizeEmail(req.Email)
		if email != account.Email {
			if err := s.ensureEmailFree(ctx, uow, email, account.Id); err != nil {
				return nil, err
			}
			changes["email"] = email
			account.Email = email
		}
	}
	if name := strings.TrimSpace(req.FullName); name != "" && name != account.FullName {
		changes["full_name"] = name
		account.FullName = name
	}
	if req.Phone != "" && req.Phone != account.Phone {
		changes["phone"] = req.Phone
		account.Phone = req.Phone
	}
	if req.Status != "" && entity.AccountStatus(req.Status) != account.Status {
		changes["status"] = req.Status
		account.Status = entity.AccountStatus(req.Status)
	}

	if err := uow.AccountRepository().Update(ctx, account); err != nil {
		return nil, storeError(s.logger, "MEMBER", "update member", err)
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeMember,
		Action:           constant.ActionUpdate,
		Description:      fmt.Sprintf("Member %s updated", account.Email),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(actorId),
		Metadata:         changes,
	})

	return s.GetById(ctx, account.Id)
}

func (s *memberService) Delete(ctx context.Context, actorId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := s.findMember(ctx, uow, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return serverutils.Internal("begin transaction failed", err)
	}
	defer uow.Rollback()

	if err := uow.BookingRepository().DeleteByAccount(ctx, account.Id); err != nil {
		return storeError(s.logger, "MEMBER", "delete bookings", err)
	}
	if err := uow.MembershipRepository().DeleteByAccount(ctx, account.Id); err != nil {
		return storeError(s.logger, "MEMBER", "delete memberships", err)
	}
	if err := uow.AccountRepository().Delete(ctx, account.Id); err != nil {
		return storeError(s.logger, "MEMBER", "delete member", err)
	}

	if err := uow.Commit(); err != nil {
		return serverutils.Internal("commit failed", err)
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:           entity.LogTypeMember,
		Action:         constant.ActionDelete,
		Description:    fmt.Sprintf("Member %s deleted", account.Email),
		ActorAccountId: audit.AccountRef(actorId),
		Metadata:       map[string]interface{}{"member_id": account.Id.String(), "email": account.Email},
	})
	return nil
}

func (s *memberService) AssignMembership(ctx context.Context, actorId, id uuid.UUID, req *dto.AssignMembershipRequest) (*dto.MembershipResponse, error) {
	if req.PackageId == nil && req.Status == "" {
		return nil, serverutils.ValidationError("package_id or status is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := s.findMember(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if req.PackageId != nil {
		return s.assignPackage(ctx, uow, actorId, account, req)
	}

	current, err := uow.MembershipRepository().FindCurrent(ctx, account.Id, time.Now())
	if err != nil {
		return nil, storeError(s.logger, "MEMBER", "find membership", err)
	}
	if current == nil {
		return nil, serverutils.InvalidState("member has no membership to update")
	}

	previous := current.Status
	current.Status = entity.MembershipStatus(req.Status)
	if err := uow.MembershipRepository().Update(ctx, current); err != nil {
		return nil, storeError(s.logger, "MEMBER", "update membership", err)
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeMembership,
		Action:           constant.ActionStatusChange,
		Description:      fmt.Sprintf("Membership of %s changed from %s to %s", account.Email, previous, current.Status),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(actorId),
		Metadata:         map[string]interface{}{"membership_id": current.Id.String(), "from": previous, "to": current.Status},
	})

	return toMembershipResponse(current), nil
}

func (s *memberService) assignPackage(ctx context.Context, uow unitofwork.UnitOfWork, actorId uuid.UUID, account *entity.Account, req *dto.AssignMembershipRequest) (*dto.MembershipResponse, error) {
	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: *req.PackageId})
	if err != nil {
		return nil, storeError(s.logger, "MEMBER", "find package", err)
	}
	if pkg == nil {
		return nil, serverutils.NotFound("package %s not found", *req.PackageId)
	}

	now := time.Now()
	start := now
	if req.StartDate != nil {
		start = *req.StartDate
	}
	membership := newMembership(account.Id, pkg, start)
	if req.Status != "" {
		membership.Status = entity.MembershipStatus(req.Status)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("begin transaction failed", err)
	}
	defer uow.Rollback()

	// A scheduled membership leaves the running one in place until it ends
	if membership.Status == entity.MembershipStatusActive && !start.After(now) {
		if _, err := uow.MembershipRepository().ExpireActive(ctx, account.Id); err != nil {
			return nil, storeError(s.logger, "MEMBER", "expire memberships", err)
		}
	}
	if err := uow.MembershipRepository().Create(ctx, membership); err != nil {
		return nil, storeError(s.logger, "MEMBER", "create membership", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("commit failed", err)
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeMembership,
		Action:           constant.ActionAssign,
		Description:      fmt.Sprintf("Package %s assigned to %s", pkg.Name, account.Email),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(actorId),
		Metadata: map[string]interface{}{
			"membership_id": membership.Id.String(),
			"package_id":    pkg.Id.String(),
			"end_date":      membership.EndDate,
		},
	})

	return toMembershipResponse(membership), nil
}

func (s *memberService) ListMemberships(ctx context.Context, id uuid.UUID) ([]dto.MembershipResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findMember(ctx, uow, id); err != nil {
		return nil, err
	}

	memberships, err := uow.MembershipRepository().FindAll(ctx,
		specification.ByAccountID{AccountID: id},
		specification.OrderBy{Field: "start_date", Desc: true},
	)
	if err != nil {
		return nil, storeError(s.logger, "MEMBER", "list memberships", err)
	}

	result := make([]dto.MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		result = append(result, *toMembershipResponse(m))
	}
	return result, nil
}
