package services

import (
	"time"

	"github.com/markmiedema/nexuscheck-sub011/constants"
	"github.com/markmiedema/nexuscheck-sub011/helpers"
	"github.com/markmiedema/nexuscheck-sub011/logger"
	"github.com/markmiedema/nexuscheck-sub011/types/api/params"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LiabilityCalculator turns a jurisdiction-year with nexus into an
// estimated back-tax record: exposure sales, base tax, interest through
// the assessment date, and statutory penalties.
//
// Math runs at full decimal precision; each component is rounded to
// currency precision as it lands on the record, and the record total is
// the exact sum of those rounded components. Anyone re-deriving interest
// from the record's own BaseTax gets the figures printed on it.
type LiabilityCalculator struct {
	logger *zap.Logger
}

// NewLiabilityCalculator creates a new liability calculator
func NewLiabilityCalculator() *LiabilityCalculator {
	return &LiabilityCalculator{logger: logger.Log}
}

// CalculateYear computes the standard liability record for one
// jurisdiction-year. Years without nexus produce no record.
func (c *LiabilityCalculator) CalculateYear(
	ledger YearLedger,
	nexus business.NexusRecord,
	rule *business.JurisdictionRules,
	periodEnd time.Time,
	opts params.EngineOptions,
) (*business.LiabilityRecord, []business.Warning) {
	if !nexus.HasNexus() || nexus.NexusDate == nil {
		return nil, nil
	}
	return c.calculateFrom(ledger, rule, *nexus.NexusDate, periodEnd, opts, false, false)
}

// calculateFrom is the shared core of the standard and VDA paths:
// exposure accrues from exposureStart, interest runs through periodEnd,
// and either charge class can be waived.
func (c *LiabilityCalculator) calculateFrom(
	ledger YearLedger,
	rule *business.JurisdictionRules,
	exposureStart, periodEnd time.Time,
	opts params.EngineOptions,
	waivePenalties, waiveInterest bool,
) (*business.LiabilityRecord, []business.Warning) {
	var warnings []business.Warning

	exposure := helpers.RoundCurrency(exposureSales(ledger, rule, exposureStart))

	rate := rule.CombinedTaxRate
	rateFallback := false
	if rate.IsZero() && rule.HasEconomicTest() {
		// Research row has thresholds but no usable rate: estimate with
		// the configured fallback and say so.
		rate = opts.FallbackCombinedRate
		rateFallback = true
		warnings = append(warnings, business.NewWarning(
			business.WarningRateFallbackApplied, ledger.JurisdictionCode, ledger.Year,
			"no combined tax rate on file; estimated at %s", rate.String()))
	}

	taxableExposure := exposure
	if taxableExposure.IsNegative() {
		taxableExposure = decimal.Zero
	}
	baseTax := helpers.RoundCurrency(taxableExposure.Mul(rate))

	days := helpers.DaysBetween(exposureStart, periodEnd)
	interest := decimal.Zero
	if !waiveInterest {
		interest = helpers.RoundCurrency(c.computeInterest(baseTax, rule, days))
	}

	var penalties []business.PenaltyComponent
	penaltyTotal := decimal.Zero
	capApplied := false
	if !waivePenalties {
		penalties, penaltyTotal, capApplied = buildPenalties(baseTax, rule)
	}

	record := &business.LiabilityRecord{
		JurisdictionCode:  ledger.JurisdictionCode,
		Year:              ledger.Year,
		ExposureSales:     exposure,
		ExposureStartDate: helpers.TruncateToDay(exposureStart),
		TaxRate:           rate,
		BaseTax:           baseTax,
		RateFallback:      rateFallback,
		InterestRate:      rule.InterestRate,
		InterestMethod:    rule.InterestMethod,
		DayCountBasis:     constants.DayCountBasis,
		DaysOutstanding:   days,
		Interest:          interest,
		Penalties:         penalties,
		PenaltyTotal:      penaltyTotal,
		PenaltyCapApplied: capApplied,
		Total:             baseTax.Add(interest).Add(penaltyTotal),
	}

	c.logger.Debug("Calculated year liability",
		zap.String("jurisdiction", ledger.JurisdictionCode),
		zap.Int("year", ledger.Year),
		zap.String("base_tax", baseTax.StringFixed(2)),
		zap.String("total", record.Total.StringFixed(2)))

	return record, warnings
}

// computeInterest accrues interest on the base over the outstanding days.
// Compounding methods apply whole compounding periods geometrically, then
// simple accrual on the compounded balance for the leftover stub days.
func (c *LiabilityCalculator) computeInterest(base decimal.Decimal, rule *business.JurisdictionRules, days int) decimal.Decimal {
	if base.IsZero() || rule.InterestRate.IsZero() || days <= 0 {
		return decimal.Zero
	}

	switch rule.InterestMethod {
	case business.InterestCompoundMonthly:
		return compoundInterest(base, rule.InterestRate, days, 12)
	case business.InterestCompoundDaily:
		return compoundInterest(base, rule.InterestRate, days, 365)
	case business.InterestCompoundAnnually:
		return compoundInterest(base, rule.InterestRate, days, 1)
	default:
		return simpleInterest(base, rule.InterestRate, days)
	}
}

func simpleInterest(base, rate decimal.Decimal, days int) decimal.Decimal {
	return base.Mul(rate).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(constants.DayCountBasis))
}

func compoundInterest(base, rate decimal.Decimal, days, periodsPerYear int) decimal.Decimal {
	n := decimal.NewFromInt(int64(periodsPerYear))
	basis := decimal.NewFromInt(constants.DayCountBasis)
	periodDays := basis.Div(n)

	outstanding := decimal.NewFromInt(int64(days))
	wholePeriods := outstanding.Div(periodDays).Floor()
	stubDays := outstanding.Sub(wholePeriods.Mul(periodDays))

	factor, err := decimal.NewFromInt(1).Add(rate.Div(n)).PowInt32(int32(wholePeriods.IntPart()))
	if err != nil {
		return simpleInterest(base, rate, days)
	}

	balance := base.Mul(factor)
	balance = balance.Add(balance.Mul(rate).Mul(stubDays).Div(basis))
	return balance.Sub(base)
}

// buildPenalties resolves both statutory penalty components against the
// base tax. Component amounts keep their uncapped values; the combined
// cap only pulls the total down, with the cap flagged.
func buildPenalties(base decimal.Decimal, rule *business.JurisdictionRules) ([]business.PenaltyComponent, decimal.Decimal, bool) {
	specs := []struct {
		category business.PenaltyCategory
		spec     business.PenaltySpec
	}{
		{business.PenaltyLateFiling, rule.LateFilingPenalty},
		{business.PenaltyLatePayment, rule.LatePaymentPenalty},
	}

	var components []business.PenaltyComponent
	total := decimal.Zero

	for _, s := range specs {
		if s.spec.IsZero() {
			continue
		}

		var amount decimal.Decimal
		flat := s.spec.IsFlatFee()
		if flat {
			amount = *s.spec.MinAmount
		} else {
			amount = helpers.ClampDecimal(base.Mul(s.spec.Rate), s.spec.MinAmount, s.spec.MaxAmount)
		}
		amount = helpers.RoundCurrency(amount)

		components = append(components, business.PenaltyComponent{
			Category: s.category,
			Rate:     s.spec.Rate,
			Amount:   amount,
			FlatFee:  flat,
		})
		total = total.Add(amount)
	}

	if rule.MaxPenaltyRate != nil {
		cap := helpers.RoundCurrency(base.Mul(*rule.MaxPenaltyRate))
		if total.GreaterThan(cap) {
			return components, cap, true
		}
	}
	return components, total, false
}
