package services

import (
	"time"

	"github.com/markmiedema/nexuscheck-sub011/helpers"
	"github.com/markmiedema/nexuscheck-sub011/logger"
	"github.com/markmiedema/nexuscheck-sub011/types/api/params"
	"github.com/markmiedema/nexuscheck-sub011/types/api/responses"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// VDAModeler builds the voluntary-disclosure-agreement view of a
// jurisdiction: liability limited to the state's lookback window, with
// whatever waivers the program offers. It reads the standard records for
// the comparison and never modifies them.
type VDAModeler struct {
	calculator *LiabilityCalculator
	logger     *zap.Logger
}

// NewVDAModeler creates a new VDA modeler
func NewVDAModeler(calculator *LiabilityCalculator) *VDAModeler {
	return &VDAModeler{calculator: calculator, logger: logger.Log}
}

// ModelVDA produces the side-by-side comparison for one jurisdiction, or
// nil with a warning when the jurisdiction's VDA terms cannot be applied
// to this analysis. Standard liability stands either way.
func (m *VDAModeler) ModelVDA(
	ledgers []YearLedger,
	nexusRecords []business.NexusRecord,
	standard []business.LiabilityRecord,
	rule *business.JurisdictionRules,
	periodStart, periodEnd time.Time,
	opts params.EngineOptions,
) (*responses.VDAComparison, []business.Warning) {
	if len(standard) == 0 {
		return nil, nil
	}

	code := standard[0].JurisdictionCode

	if rule.VDALookbackMonths <= 0 {
		return nil, []business.Warning{business.NewWarning(
			business.WarningVDAConfigError, code, 0,
			"no voluntary disclosure lookback on file")}
	}

	lookbackStart := helpers.TruncateToDay(periodEnd.AddDate(0, -rule.VDALookbackMonths, 0))
	if lookbackStart.Before(helpers.TruncateToDay(periodStart)) {
		return nil, []business.Warning{business.NewWarning(
			business.WarningVDAConfigError, code, 0,
			"voluntary disclosure lookback of %d months extends beyond the analysis period",
			rule.VDALookbackMonths)}
	}

	var warnings []business.Warning
	waivePenalties, penaltiesAssumed := rule.VDAWaivesPenalties.Resolve(false)
	waiveInterest, interestAssumed := rule.VDAWaivesInterest.Resolve(false)
	if penaltiesAssumed || interestAssumed {
		warnings = append(warnings, business.NewWarning(
			business.WarningUnknownDefaulted, code, 0,
			"voluntary disclosure waiver terms unverified; modeled without waivers"))
	}

	ledgerByYear := make(map[int]YearLedger, len(ledgers))
	for _, ledger := range ledgers {
		ledgerByYear[ledger.Year] = ledger
	}

	comparison := &responses.VDAComparison{
		LookbackMonths:  rule.VDALookbackMonths,
		LookbackStart:   lookbackStart,
		PenaltiesWaived: waivePenalties,
		InterestWaived:  waiveInterest,
		WaiverAssumed:   penaltiesAssumed || interestAssumed,
		StandardTotal:   decimal.Zero,
		VDATotal:        decimal.Zero,
	}

	for _, record := range standard {
		comparison.StandardTotal = comparison.StandardTotal.Add(record.Total)
	}

	for _, nexus := range nexusRecords {
		if !nexus.HasNexus() || nexus.NexusDate == nil {
			continue
		}
		ledger, ok := ledgerByYear[nexus.Year]
		if !ok {
			continue
		}

		vdaStart := helpers.LaterOf(helpers.TruncateToDay(*nexus.NexusDate), lookbackStart)
		if vdaStart.After(helpers.YearEnd(nexus.Year)) {
			// Year closed before the lookback window opens; the program
			// does not reach it.
			continue
		}

		// Incomplete-rule disclosures already rode out on the standard
		// records; the VDA recompute would only repeat them.
		record, _ := m.calculator.calculateFrom(
			ledger, rule, vdaStart, periodEnd, opts, waivePenalties, waiveInterest)
		comparison.Records = append(comparison.Records, *record)
		comparison.VDATotal = comparison.VDATotal.Add(record.Total)
	}

	comparison.Savings = comparison.StandardTotal.Sub(comparison.VDATotal)

	m.logger.Debug("Modeled voluntary disclosure",
		zap.String("jurisdiction", code),
		zap.Int("lookback_months", rule.VDALookbackMonths),
		zap.String("savings", comparison.Savings.StringFixed(2)))

	return comparison, warnings
}
