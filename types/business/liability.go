package business

import (
	"time"

	"github.com/shopspring/decimal"
)

// PenaltyCategory identifies which statutory penalty a component is.
type PenaltyCategory string

const (
	PenaltyLateFiling  PenaltyCategory = "late_filing"
	PenaltyLatePayment PenaltyCategory = "late_payment"
)

// PenaltyComponent is one applied penalty with its resolved amount.
// Amount reflects min/max clamping; FlatFee marks a fixed-fee rule where
// the rate did not participate.
type PenaltyComponent struct {
	Category PenaltyCategory `json:"category"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	FlatFee  bool            `json:"flat_fee,omitempty"`
}

// LiabilityRecord is the estimated exposure for one jurisdiction-year with
// nexus. All monetary fields are rounded to currency precision when the
// record is finalized; Total is the exact sum of the rounded components so
// per-year records always reconcile with aggregate views.
type LiabilityRecord struct {
	JurisdictionCode string `json:"jurisdiction_code"`
	Year             int    `json:"year"`

	// ExposureSales is taxable direct-channel revenue dated on or after
	// ExposureStartDate. Marketplace-facilitated sales never enter it.
	ExposureSales     decimal.Decimal `json:"exposure_sales"`
	ExposureStartDate time.Time       `json:"exposure_start_date"`

	TaxRate         decimal.Decimal `json:"tax_rate"`
	BaseTax         decimal.Decimal `json:"base_tax"`
	RateFallback    bool            `json:"rate_fallback,omitempty"`

	InterestRate    decimal.Decimal `json:"interest_rate"`
	InterestMethod  InterestMethod  `json:"interest_method"`
	DayCountBasis   int             `json:"day_count_basis"`
	DaysOutstanding int             `json:"days_outstanding"`
	Interest        decimal.Decimal `json:"interest"`

	Penalties         []PenaltyComponent `json:"penalties,omitempty"`
	PenaltyTotal      decimal.Decimal    `json:"penalty_total"`
	PenaltyCapApplied bool               `json:"penalty_cap_applied,omitempty"`

	Total decimal.Decimal `json:"total"`
}
