package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type ByAccountID struct {
	AccountID uuid.UUID
}

func (s ByAccountID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("account_id = ?", s.AccountID)
}

type ByPackageID struct {
	PackageID uuid.UUID
}

func (s ByPackageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("package_id = ?", s.PackageID)
}

type ByServiceID struct {
	ServiceID uuid.UUID
}

func (s ByServiceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("service_id = ?", s.ServiceID)
}

// EndedBefore matches memberships whose end date has passed.
type EndedBefore struct {
	At time.Time
}

func (s EndedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("end_date < ?", s.At)
}

// StartedBy matches memberships whose start date is not after At.
type StartedBy struct {
	At time.Time
}

func (s StartedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_date <= ?", s.At)
}

// ScheduledAt matches bookings for one exact slot.
type ScheduledAt struct {
	At time.Time
}

func (s ScheduledAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheduled_at = ?", s.At)
}

// OpenAttendance matches visits without a check-out.
type OpenAttendance struct{}

func (s OpenAttendance) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("check_out IS NULL")
}

// CheckInBetween matches visits that checked in within [From, To].
type CheckInBetween struct {
	From time.Time
	To   time.Time
}

func (s CheckInBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("attendances.check_in >= ? AND attendances.check_in <= ?", s.From, s.To)
}

type CheckInSince struct {
	Since time.Time
}

func (s CheckInSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("check_in >= ?", s.Since)
}

type ByQrReference struct {
	Reference string
}

func (s ByQrReference) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("qr_reference = ?", s.Reference)
}

type Published struct{}

func (s Published) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("published = ?", true)
}

type ByLogType struct {
	Type string
}

func (s ByLogType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type ByLogAction struct {
	Action string
}

func (s ByLogAction) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action = ?", s.Action)
}

// InvolvingAccount matches log entries where the account is subject or actor.
type InvolvingAccount struct {
	AccountID uuid.UUID
}

func (s InvolvingAccount) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject_account_id = ? OR actor_account_id = ?", s.AccountID, s.AccountID)
}
