package unitofwork

import (
	"context"

	"gym-management-be/internal/repository/contract"
)

// RepositoryFactory hands out a fresh UnitOfWork per service call.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

// UnitOfWork reads outside a transaction until Begin is called; after that
// every repository it returns shares the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() contract.AccountRepository
	MembershipRepository() contract.MembershipRepository
	PackageRepository() contract.PackageRepository
	GymServiceRepository() contract.GymServiceRepository
	BookingRepository() contract.BookingRepository
	AttendanceRepository() contract.AttendanceRepository
	PaymentRepository() contract.PaymentRepository
	SystemLogRepository() contract.SystemLogRepository
	ContentRepository() contract.ContentRepository
}
