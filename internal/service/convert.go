package service

import (
	"errors"
	"time"

	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// storeError maps a repository failure onto the HTTP taxonomy.
func storeError(log logger.ILogger, module, op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return serverutils.Conflict("%s: record already exists", op)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return serverutils.Conflict("%s: record is still referenced", op)
	}
	log.Error(module, "Store failure", map[string]interface{}{"op": op, "error": err.Error()})
	return serverutils.Internal(op+" failed", err)
}

func toAccountResponse(a *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		Id:               a.Id,
		Email:            a.Email,
		FullName:         a.FullName,
		Phone:            a.Phone,
		Role:             string(a.Role),
		Status:           string(a.Status),
		AuthProvider:     a.AuthProvider,
		TargetWeight:     a.TargetWeight,
		WorkoutFrequency: a.WorkoutFrequency,
		LastLoginAt:      a.LastLoginAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toMembershipResponse(m *entity.Membership) *dto.MembershipResponse {
	if m == nil {
		return nil
	}
	return &dto.MembershipResponse{
		Id:          m.Id,
		AccountId:   m.AccountId,
		PackageId:   m.PackageId,
		PackageName: m.PackageName,
		Status:      string(m.Status),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CreatedAt:   m.CreatedAt,
	}
}

func toPackageResponse(p *entity.Package) dto.PackageResponse {
	return dto.PackageResponse{
		Id:           p.Id,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		Features:     p.Features,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toGymServiceResponse(s *entity.GymService) dto.GymServiceResponse {
	return dto.GymServiceResponse{
		Id:           s.Id,
		Name:         s.Name,
		Description:  s.Description,
		Price:        s.Price,
		BillingCycle: string(s.BillingCycle),
		Category:     s.Category,
		Capacity:     s.Capacity,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toBookingResponse(b *entity.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		Id:          b.Id,
		ServiceId:   b.ServiceId,
		AccountId:   b.AccountId,
		Status:      string(b.Status),
		ScheduledAt: b.ScheduledAt,
		CreatedAt:   b.CreatedAt,
	}
}

func toAttendanceResponse(a *entity.Attendance) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		Id:          a.Id,
		AccountId:   a.AccountId,
		AccountName: a.AccountName,
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
	}
	if a.CheckOut != nil {
		minutes := a.CheckOut.Sub(a.CheckIn).Minutes()
		resp.DurationMinutes = &minutes
	}
	return resp
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		Id:           p.Id,
		AccountId:    p.AccountId,
		Plan:         p.Plan,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Method:       string(p.Method),
		Status:       string(p.Status),
		ProcessorRef: p.ProcessorRef,
		QrReference:  p.QrReference,
		CompletedAt:  p.CompletedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toSystemLogResponse(l *entity.SystemLog) dto.SystemLogResponse {
	return dto.SystemLogResponse{
		Id:               l.Id,
		Type:             l.Type,
		Action:           l.Action,
		Description:      l.Description,
		SubjectAccountId: l.SubjectAccountId,
		ActorAccountId:   l.ActorAccountId,
		Metadata:         l.Metadata,
		CreatedAt:        l.CreatedAt,
	}
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, serverutils.ValidationError("invalid %s", field)
	}
	return id, nil
}

// parseDate accepts RFC3339 or a bare date. A bare end date covers the whole day.
func parseDate(raw, field string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Local(), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return time.Time{}, serverutils.ValidationError("invalid %s", field)
	}
	if endOfDay {
		return day.Add(24*time.Hour - time.Nanosecond), nil
	}
	return day, nil
}
