package rules

import (
	"time"

	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
)

// DefaultCatalog returns the catalog the product ships with: one row per
// US jurisdiction per effective-dated rule change since South Dakota v.
// Wayfair (June 2018). Threshold repeals (many states dropped their
// 200-transaction test between 2019 and 2024) appear as closed rows
// followed by the replacement row. Combined tax rates are the state rate
// plus the population-weighted average local rate.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultRows())
	if err != nil {
		panic("default rule catalog is invalid: " + err.Error())
	}
	return c
}

// seedRow is the compact research format the default table is maintained
// in; build() expands it into a full JurisdictionRules row.
type seedRow struct {
	code, name string
	from, to   string // YYYY-MM-DD, to == "" means open-ended
	revenue    int64  // 0 = no revenue test
	txns       int    // 0 = no transaction-count test
	op         business.ThresholdOperator
	basis      business.SalesBasis
	rate       float64 // combined avg tax rate
	interest   float64 // annual interest rate
	method     business.InterestMethod
	lfMin      float64 // late-filing minimum, 0 = none
	vdaMonths  int
	waivesPen  business.Tristate
	waivesInt  business.Tristate
	notes      string
}

func (s seedRow) build() business.JurisdictionRules {
	row := business.JurisdictionRules{
		JurisdictionCode:                 s.code,
		Name:                             s.name,
		EffectiveFrom:                    mustDate(s.from),
		ThresholdOperator:                s.op,
		ThresholdSalesBasis:              s.basis,
		MarketplaceCountsTowardThreshold: true,
		MarketplaceExcludedFromLiability: true,
		CombinedTaxRate:                  decimal.NewFromFloat(s.rate),
		InterestRate:                     decimal.NewFromFloat(s.interest),
		InterestMethod:                   s.method,
		VDALookbackMonths:                s.vdaMonths,
		VDAWaivesPenalties:               s.waivesPen,
		VDAWaivesInterest:                s.waivesInt,
		Notes:                            s.notes,
	}
	if s.to != "" {
		to := mustDate(s.to)
		row.EffectiveTo = &to
	}
	if s.revenue > 0 {
		rev := decimal.NewFromInt(s.revenue)
		row.RevenueThreshold = &rev
	}
	if s.txns > 0 {
		row.TransactionThreshold = &s.txns
	}
	if s.rate > 0 {
		// Standard penalty structure; state-specific schedules are
		// tracked in research notes, not modeled per month.
		row.LateFilingPenalty = business.PenaltySpec{Rate: decimal.NewFromFloat(0.05)}
		row.LatePaymentPenalty = business.PenaltySpec{Rate: decimal.NewFromFloat(0.05)}
		cap := decimal.NewFromFloat(0.25)
		row.MaxPenaltyRate = &cap
	}
	if s.lfMin > 0 {
		min := decimal.NewFromFloat(s.lfMin)
		row.LateFilingPenalty.MinAmount = &min
	}
	return row
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("bad date in default rule catalog: " + s)
	}
	return t
}

func defaultRows() []business.JurisdictionRules {
	seeds := []seedRow{
		{code: "AL", name: "Alabama", from: "2018-10-01", revenue: 250000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0924, interest: 0.05, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "AK", name: "Alaska", from: "2020-02-03", to: "2025-01-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0182, interest: 0.0525, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateUnknown, waivesInt: business.TristateUnknown, notes: "No statewide sales tax; local jurisdictions administered through ARSSTC"},
		{code: "AK", name: "Alaska", from: "2025-01-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0182, interest: 0.0525, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateUnknown, waivesInt: business.TristateUnknown, notes: "Transaction-count test repealed effective 2025"},
		{code: "AZ", name: "Arizona", from: "2019-10-01", to: "2020-01-01", revenue: 200000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0838, interest: 0.06, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse, notes: "Phased threshold"},
		{code: "AZ", name: "Arizona", from: "2020-01-01", to: "2021-01-01", revenue: 150000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0838, interest: 0.06, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse, notes: "Phased threshold"},
		{code: "AZ", name: "Arizona", from: "2021-01-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0838, interest: 0.06, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "AR", name: "Arkansas", from: "2019-07-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisTaxable, rate: 0.0947, interest: 0.10, method: business.InterestSimple, lfMin: 50, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "CA", name: "California", from: "2019-04-01", revenue: 500000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0885, interest: 0.07, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "CO", name: "Colorado", from: "2019-06-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0781, interest: 0.08, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "CT", name: "Connecticut", from: "2018-12-01", revenue: 100000, txns: 200, op: business.OperatorAnd, basis: business.BasisGross, rate: 0.0635, interest: 0.12, method: business.InterestCompoundMonthly, lfMin: 50, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse, notes: "Both thresholds must be met"},
		{code: "DC", name: "District of Columbia", from: "2019-01-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.06, interest: 0.10, method: business.InterestCompoundDaily, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "DE", name: "Delaware", from: "2018-06-21", notes: "No statewide sales tax"},
		{code: "FL", name: "Florida", from: "2021-07-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisTaxable, rate: 0.0702, interest: 0.09, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "GA", name: "Georgia", from: "2019-01-01", to: "2020-01-01", revenue: 250000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0738, interest: 0.0875, method: business.InterestCompoundMonthly, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "GA", name: "Georgia", from: "2020-01-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0738, interest: 0.0875, method: business.InterestCompoundMonthly, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "HI", name: "Hawaii", from: "2018-07-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.045, interest: 0.08, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateUnknown, waivesInt: business.TristateUnknown, notes: "General excise tax applies to gross income"},
		{code: "ID", name: "Idaho", from: "2019-06-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0602, interest: 0.05, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "IL", name: "Illinois", from: "2018-10-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0886, interest: 0.06, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "IN", name: "Indiana", from: "2018-10-01", to: "2024-01-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.07, interest: 0.06, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "IN", name: "Indiana", from: "2024-01-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.07, interest: 0.06, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse, notes: "Transaction-count test repealed effective 2024"},
		{code: "IA", name: "Iowa", from: "2019-01-01", to: "2019-07-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0694, interest: 0.07, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "IA", name: "Iowa", from: "2019-07-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0694, interest: 0.07, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "KS", name: "Kansas", from: "2021-07-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0865, interest: 0.08, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "KY", name: "Kentucky", from: "2018-10-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.06, interest: 0.07, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "LA", name: "Louisiana", from: "2020-07-01", to: "2023-08-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0956, interest: 0.0925, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateUnknown},
		{code: "LA", name: "Louisiana", from: "2023-08-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0956, interest: 0.0925, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateUnknown},
		{code: "ME", name: "Maine", from: "2018-07-01", to: "2022-01-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.055, interest: 0.07, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "ME", name: "Maine", from: "2022-01-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.055, interest: 0.07, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "MD", name: "Maryland", from: "2018-10-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.06, interest: 0.10, method: business.InterestCompoundMonthly, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "MA", name: "Massachusetts", from: "2019-10-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0625, interest: 0.07, method: business.InterestCompoundDaily, lfMin: 50, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "MI", name: "Michigan", from: "2018-10-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.06, interest: 0.0585, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "MN", name: "Minnesota", from: "2018-10-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0804, interest: 0.08, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "MS", name: "Mississippi", from: "2018-09-01", revenue: 250000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0706, interest: 0.06, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "MO", name: "Missouri", from: "2023-01-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisTaxable, rate: 0.0829, interest: 0.05, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "MT", name: "Montana", from: "2018-06-21", notes: "No statewide sales tax"},
		{code: "NE", name: "Nebraska", from: "2019-04-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0694, interest: 0.05, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "NV", name: "Nevada", from: "2018-10-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0824, interest: 0.0775, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "NH", name: "New Hampshire", from: "2018-06-21", notes: "No statewide sales tax"},
		{code: "NJ", name: "New Jersey", from: "2018-11-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.066, interest: 0.0925, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "NM", name: "New Mexico", from: "2019-07-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisTaxable, rate: 0.0762, interest: 0.0675, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateUnknown},
		{code: "NY", name: "New York", from: "2019-06-21", revenue: 500000, txns: 100, op: business.OperatorAnd, basis: business.BasisGross, rate: 0.0853, interest: 0.145, method: business.InterestCompoundDaily, lfMin: 50, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse, notes: "Both thresholds must be met"},
		{code: "NC", name: "North Carolina", from: "2018-11-01", to: "2024-07-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0699, interest: 0.07, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "NC", name: "North Carolina", from: "2024-07-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0699, interest: 0.07, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "ND", name: "North Dakota", from: "2018-10-01", to: "2019-01-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0704, interest: 0.12, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "ND", name: "North Dakota", from: "2019-01-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0704, interest: 0.12, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "OH", name: "Ohio", from: "2019-08-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0724, interest: 0.05, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "OK", name: "Oklahoma", from: "2018-11-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisTaxable, rate: 0.0898, interest: 0.0125, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateTrue, notes: "Interest waiver available under standard VDA terms"},
		{code: "OR", name: "Oregon", from: "2018-06-21", notes: "No statewide sales tax"},
		{code: "PA", name: "Pennsylvania", from: "2019-07-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0634, interest: 0.08, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "RI", name: "Rhode Island", from: "2017-08-17", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.07, interest: 0.12, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "SC", name: "South Carolina", from: "2018-11-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0746, interest: 0.06, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "SD", name: "South Dakota", from: "2018-11-01", to: "2023-07-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0611, interest: 0.10, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "SD", name: "South Dakota", from: "2023-07-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0611, interest: 0.10, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "TN", name: "Tennessee", from: "2019-07-01", to: "2020-10-01", revenue: 500000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0955, interest: 0.0725, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "TN", name: "Tennessee", from: "2020-10-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0955, interest: 0.0725, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "TX", name: "Texas", from: "2019-10-01", revenue: 500000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.082, interest: 0.0875, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "UT", name: "Utah", from: "2019-01-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0719, interest: 0.0725, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "VT", name: "Vermont", from: "2018-07-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0636, interest: 0.08, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "VA", name: "Virginia", from: "2019-07-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0575, interest: 0.08, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "WA", name: "Washington", from: "2018-10-01", to: "2020-03-14", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0938, interest: 0.09, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "WA", name: "Washington", from: "2020-03-14", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0938, interest: 0.09, method: business.InterestSimple, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "WV", name: "West Virginia", from: "2019-01-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0657, interest: 0.0925, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "WI", name: "Wisconsin", from: "2018-10-01", to: "2021-02-20", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.057, interest: 0.12, method: business.InterestCompoundAnnually, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "WI", name: "Wisconsin", from: "2021-02-20", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.057, interest: 0.12, method: business.InterestCompoundAnnually, vdaMonths: 48, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "WY", name: "Wyoming", from: "2019-02-01", to: "2024-07-01", revenue: 100000, txns: 200, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0544, interest: 0.06, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
		{code: "WY", name: "Wyoming", from: "2024-07-01", revenue: 100000, op: business.OperatorOr, basis: business.BasisGross, rate: 0.0544, interest: 0.06, method: business.InterestSimple, vdaMonths: 36, waivesPen: business.TristateTrue, waivesInt: business.TristateFalse},
	}

	rows := make([]business.JurisdictionRules, 0, len(seeds))
	for _, s := range seeds {
		rows = append(rows, s.build())
	}
	return rows
}
