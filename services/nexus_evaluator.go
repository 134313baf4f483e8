package services

import (
	"time"

	"github.com/markmiedema/nexuscheck-sub011/helpers"
	"github.com/markmiedema/nexuscheck-sub011/logger"
	"github.com/markmiedema/nexuscheck-sub011/types/api/params"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NexusEvaluator walks a jurisdiction's year ledgers in order and decides,
// for each year, whether a filing obligation exists, what established it,
// and on what date it began. Years are strictly sequential: once nexus is
// established it sticks to every later year, and an already-evaluated year
// is never rewritten by anything seen later.
type NexusEvaluator struct {
	logger *zap.Logger
}

// NewNexusEvaluator creates a new nexus evaluator
func NewNexusEvaluator() *NexusEvaluator {
	return &NexusEvaluator{logger: logger.Log}
}

// EvaluateJurisdiction produces one NexusRecord per year ledger, in the
// same ascending-year order. Presence entries are assumed to belong to
// the ledgers' jurisdiction and to have passed validation.
func (e *NexusEvaluator) EvaluateJurisdiction(
	ledgers []YearLedger,
	rule *business.JurisdictionRules,
	presence []business.PhysicalPresence,
	opts params.EngineOptions,
) []business.NexusRecord {
	records := make([]business.NexusRecord, 0, len(ledgers))

	firstNexusYear := 0
	var establishedType business.NexusType

	for _, ledger := range ledgers {
		record := e.evaluateYear(ledger, rule, presence, opts, firstNexusYear, establishedType)
		if record.HasNexus() && firstNexusYear == 0 {
			firstNexusYear = record.Year
			establishedType = record.Type
			e.logger.Debug("Nexus established",
				zap.String("jurisdiction", ledger.JurisdictionCode),
				zap.Int("year", record.Year),
				zap.String("type", string(record.Type)))
		}
		records = append(records, record)
	}

	return records
}

func (e *NexusEvaluator) evaluateYear(
	ledger YearLedger,
	rule *business.JurisdictionRules,
	presence []business.PhysicalPresence,
	opts params.EngineOptions,
	firstNexusYear int,
	establishedType business.NexusType,
) business.NexusRecord {
	record := business.NexusRecord{
		JurisdictionCode:        ledger.JurisdictionCode,
		Year:                    ledger.Year,
		Status:                  business.NexusStatusNone,
		Type:                    business.NexusTypeNone,
		YearEndRevenue:          ledger.TotalRevenue,
		YearEndTransactionCount: ledger.TotalCount,
		ThresholdPercent:        thresholdPercent(ledger, rule),
		FirstNexusYear:          firstNexusYear,
		CountEstimated:          ledger.CountEstimated,
	}

	physicalDate := physicalNexusDate(presence, ledger.Year)
	economicDate, triggerRow := economicNexusTrigger(ledger, rule)
	sticky := firstNexusYear != 0

	switch {
	case physicalDate != nil || economicDate != nil:
		record.Status = business.NexusStatusHasNexus
		record.Type = freshNexusType(physicalDate, economicDate)
		record.Sticky = sticky
		if sticky {
			// Obligation predates this year, so exposure runs from
			// January 1 no matter when this year's own trigger landed.
			jan1 := helpers.YearStart(ledger.Year)
			record.NexusDate = &jan1
			record.Type = unionNexusType(record.Type, establishedType)
		} else {
			date := earliestTrigger(physicalDate, economicDate)
			record.NexusDate = &date
			record.FirstNexusYear = ledger.Year
		}
		if economicDate != nil {
			record.TriggerRowIndex = triggerRow
		}

	case sticky:
		record.Status = business.NexusStatusHasNexus
		record.Type = establishedType
		record.Sticky = true
		jan1 := helpers.YearStart(ledger.Year)
		record.NexusDate = &jan1

	case record.ThresholdPercent.GreaterThanOrEqual(opts.ApproachingPercent) && rule.HasEconomicTest():
		record.Status = business.NexusStatusApproaching
	}

	return record
}

// physicalNexusDate returns the date physical nexus attached within the
// year, or nil. A presence that began in an earlier year attaches on
// January 1.
func physicalNexusDate(presence []business.PhysicalPresence, year int) *time.Time {
	yearStart := helpers.YearStart(year)
	yearEnd := helpers.YearEnd(year)

	var earliest *time.Time
	for _, p := range presence {
		if !p.OverlapsRange(yearStart, yearEnd) {
			continue
		}
		attached := helpers.LaterOf(helpers.TruncateToDay(p.StartDate), yearStart)
		if earliest == nil || attached.Before(*earliest) {
			d := attached
			earliest = &d
		}
	}
	return earliest
}

// economicNexusTrigger scans the year's entries in order and returns the
// date and source row of the first entry that satisfies the economic
// threshold test, or nil when the year never crosses it.
func economicNexusTrigger(ledger YearLedger, rule *business.JurisdictionRules) (*time.Time, *int) {
	if !rule.HasEconomicTest() {
		return nil, nil
	}

	for _, entry := range ledger.Entries {
		if !thresholdMet(entry.CumulativeRevenue, entry.CumulativeCount, rule) {
			continue
		}
		date := helpers.TruncateToDay(entry.Transaction.Date)
		row := entry.Transaction.RowIndex
		return &date, &row
	}
	return nil, nil
}

// thresholdMet applies the jurisdiction's operator to whichever tests it
// actually has. An "and" state with only one test configured degenerates
// to that single test.
func thresholdMet(revenue decimal.Decimal, count int, rule *business.JurisdictionRules) bool {
	revenueMet := rule.RevenueThreshold != nil && revenue.GreaterThanOrEqual(*rule.RevenueThreshold)
	countMet := rule.TransactionThreshold != nil && count >= *rule.TransactionThreshold

	if rule.ThresholdOperator == business.OperatorAnd {
		if rule.RevenueThreshold == nil {
			return countMet
		}
		if rule.TransactionThreshold == nil {
			return revenueMet
		}
		return revenueMet && countMet
	}
	return revenueMet || countMet
}

// thresholdPercent reports year-end progress toward the closer threshold:
// the max of revenue progress and count progress, where 1.0 means the
// threshold was reached.
func thresholdPercent(ledger YearLedger, rule *business.JurisdictionRules) decimal.Decimal {
	pct := decimal.Zero

	if rule.RevenueThreshold != nil && !rule.RevenueThreshold.IsZero() {
		revPct := ledger.TotalRevenue.Div(*rule.RevenueThreshold)
		if revPct.GreaterThan(pct) {
			pct = revPct
		}
	}
	if rule.TransactionThreshold != nil && *rule.TransactionThreshold > 0 {
		cntPct := decimal.NewFromInt(int64(ledger.TotalCount)).
			Div(decimal.NewFromInt(int64(*rule.TransactionThreshold)))
		if cntPct.GreaterThan(pct) {
			pct = cntPct
		}
	}
	return pct
}

func freshNexusType(physicalDate, economicDate *time.Time) business.NexusType {
	switch {
	case physicalDate != nil && economicDate != nil:
		return business.NexusTypeBoth
	case physicalDate != nil:
		return business.NexusTypePhysical
	default:
		return business.NexusTypeEconomic
	}
}

func unionNexusType(a, b business.NexusType) business.NexusType {
	if a == b || b == business.NexusTypeNone {
		return a
	}
	if a == business.NexusTypeNone {
		return b
	}
	return business.NexusTypeBoth
}

func earliestTrigger(physicalDate, economicDate *time.Time) time.Time {
	if physicalDate == nil {
		return *economicDate
	}
	if economicDate == nil {
		return *physicalDate
	}
	return helpers.EarlierOf(*physicalDate, *economicDate)
}
