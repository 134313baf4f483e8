package business

import (
	"time"

	"github.com/shopspring/decimal"
)

// ThresholdOperator combines the revenue and transaction-count tests.
type ThresholdOperator string

const (
	OperatorOr  ThresholdOperator = "or"
	OperatorAnd ThresholdOperator = "and"
)

// SalesBasis selects which amount feeds the economic threshold.
type SalesBasis string

const (
	BasisGross   SalesBasis = "gross"
	BasisTaxable SalesBasis = "taxable"
)

// InterestMethod selects how interest accrues on unremitted tax.
type InterestMethod string

const (
	InterestSimple           InterestMethod = "simple"
	InterestCompoundMonthly  InterestMethod = "compound_monthly"
	InterestCompoundDaily    InterestMethod = "compound_daily"
	InterestCompoundAnnually InterestMethod = "compound_annually"
)

// PenaltySpec describes one penalty component of a jurisdiction's rules.
// Rate applies to the base tax; MinAmount/MaxAmount bound the result.
// Min equal to Max means a flat fee regardless of base.
type PenaltySpec struct {
	Rate      decimal.Decimal  `json:"rate"`
	MinAmount *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`
}

// IsFlatFee reports whether the spec collapses to a fixed amount.
func (p PenaltySpec) IsFlatFee() bool {
	return p.MinAmount != nil && p.MaxAmount != nil && p.MinAmount.Equal(*p.MaxAmount)
}

// IsZero reports whether the spec imposes nothing at all.
func (p PenaltySpec) IsZero() bool {
	return p.Rate.IsZero() && p.MinAmount == nil && p.MaxAmount == nil
}

// JurisdictionRules is one effective-dated row of the nexus rule table.
// Nil thresholds mean the jurisdiction has no test of that kind (a state
// with no transaction-count test, or a state with no sales tax at all).
type JurisdictionRules struct {
	JurisdictionCode string     `json:"jurisdiction_code"`
	Name             string     `json:"name"`
	EffectiveFrom    time.Time  `json:"effective_from"`
	EffectiveTo      *time.Time `json:"effective_to,omitempty"`

	RevenueThreshold     *decimal.Decimal  `json:"revenue_threshold,omitempty"`
	TransactionThreshold *int              `json:"transaction_threshold,omitempty"`
	ThresholdOperator    ThresholdOperator `json:"threshold_operator"`
	ThresholdSalesBasis  SalesBasis        `json:"threshold_sales_basis"`

	// MarketplaceCountsTowardThreshold: facilitator sales still count
	// toward the economic threshold in most states even though the
	// facilitator remits the tax.
	MarketplaceCountsTowardThreshold bool `json:"marketplace_counts_toward_threshold"`
	MarketplaceExcludedFromLiability bool `json:"marketplace_excluded_from_liability"`

	// CombinedTaxRate is the state rate plus an average local rate. Zero
	// with thresholds present means the research row is incomplete and a
	// documented fallback applies.
	CombinedTaxRate decimal.Decimal `json:"combined_tax_rate"`

	InterestRate   decimal.Decimal `json:"interest_rate"`
	InterestMethod InterestMethod  `json:"interest_method"`

	LateFilingPenalty  PenaltySpec `json:"late_filing_penalty"`
	LatePaymentPenalty PenaltySpec `json:"late_payment_penalty"`
	// MaxPenaltyRate caps combined penalties as a fraction of base tax.
	MaxPenaltyRate *decimal.Decimal `json:"max_penalty_rate,omitempty"`

	VDALookbackMonths  int      `json:"vda_lookback_months"`
	VDAWaivesPenalties Tristate `json:"vda_waives_penalties"`
	VDAWaivesInterest  Tristate `json:"vda_waives_interest"`

	Notes string `json:"notes,omitempty"`
}

// HasEconomicTest reports whether any economic threshold is configured.
func (r JurisdictionRules) HasEconomicTest() bool {
	return r.RevenueThreshold != nil || r.TransactionThreshold != nil
}

// EffectiveAt reports whether this row is in force on the given date.
// EffectiveTo is exclusive, so a replacement row takes over on its own
// EffectiveFrom day.
func (r JurisdictionRules) EffectiveAt(d time.Time) bool {
	if d.Before(r.EffectiveFrom) {
		return false
	}
	return r.EffectiveTo == nil || d.Before(*r.EffectiveTo)
}
