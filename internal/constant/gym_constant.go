package constant

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanPrices is the price table payments are validated against.
var PlanPrices = map[string]decimal.Decimal{
	"Basic":   decimal.RequireFromString("29.99"),
	"Premium": decimal.RequireFromString("49.99"),
	"Elite":   decimal.RequireFromString("79.99"),
}

const (
	QrReferencePrefix = "GYM-"
	QrPayloadScheme   = "gympay://pay"
	QrImageSize       = 256

	CatalogCacheTTL       = 5 * time.Minute
	ExpirySweepEvery      = time.Hour
	AttendanceStatsWindow = 7 * 24 * time.Hour
)

// Audit actions
const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionRegister     = "REGISTER"
	ActionLogin        = "LOGIN"
	ActionLoginFailed  = "LOGIN_FAILED"
	ActionCheckIn      = "CHECK_IN"
	ActionCheckOut     = "CHECK_OUT"
	ActionAssign       = "ASSIGN"
	ActionStatusChange = "STATUS_CHANGE"
	ActionExpire       = "EXPIRE"
	ActionBook         = "BOOK"
	ActionCancel       = "CANCEL"
	ActionInitiate     = "INITIATE"
	ActionComplete     = "COMPLETE"
	ActionFail         = "FAIL"
)

// SiteName is shown on the public pages and in outgoing mail.
const SiteName = "IronPulse Gym"
