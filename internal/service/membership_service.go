// FILE: internal/service/membership_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/audit"
)

type IMembershipService interface {
	// ExpireOverdue flips overdue ACTIVE memberships to EXPIRED and returns how many changed.
	ExpireOverdue(ctx context.Context) (int, error)
}

type membershipService struct {
	uowFactory unitofwork.RepositoryFactory
	recorder   audit.Recorder
	logger     logger.ILogger
	now        func() time.Time
}

func NewMembershipService(uowFactory unitofwork.RepositoryFactory, recorder audit.Recorder, log logger.ILogger) IMembershipService {
	return &membershipService{
		uowFactory: uowFactory,
		recorder:   recorder,
		logger:     log,
		now:        time.Now,
	}
}

func (s *membershipService) ExpireOverdue(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	expired, sweepErr := uow.MembershipRepository().ExpireOverdue(ctx, s.now())

	// Rows flipped before a failure are still audited
	for _, m := range expired {
		s.recorder.RecordEvent(ctx, audit.Entry{
			Type:             entity.LogTypeMembership,
			Action:           constant.ActionExpire,
			Description:      fmt.Sprintf("Membership %s expired on %s", m.Id, m.EndDate.Format(time.DateOnly)),
			SubjectAccountId: audit.AccountRef(m.AccountId),
			Metadata: map[string]interface{}{
				"membership_id": m.Id.String(),
				"package_id":    m.PackageId.String(),
			},
		})
	}

	if len(expired) > 0 {
		s.logger.Info("MEMBERSHIP", "Expired overdue memberships", map[string]interface{}{"count": len(expired)})
	}
	if sweepErr != nil {
		return len(expired), storeError(s.logger, "MEMBERSHIP", "expire memberships", sweepErr)
	}
	return len(expired), nil
}

// RunExpirySweep calls ExpireOverdue every interval until ctx is done.
func RunExpirySweep(ctx context.Context, svc IMembershipService, interval time.Duration, log logger.ILogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := svc.ExpireOverdue(ctx); err != nil {
		log.Error("MEMBERSHIP", "Expiry sweep failed", map[string]interface{}{"error": err.Error()})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.ExpireOverdue(ctx); err != nil {
				log.Error("MEMBERSHIP", "Expiry sweep failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}
