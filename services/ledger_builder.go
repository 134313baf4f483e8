package services

import (
	"sort"
	"time"

	"github.com/markmiedema/nexuscheck-sub011/helpers"
	"github.com/markmiedema/nexuscheck-sub011/logger"
	"github.com/markmiedema/nexuscheck-sub011/types/api/params"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerEntry is one accepted transaction with the running totals the
// nexus tests read. Revenue follows the jurisdiction's threshold basis;
// taxable tracks direct-channel taxable sales only (the exposure basis).
type LedgerEntry struct {
	Transaction       business.Transaction
	CumulativeRevenue decimal.Decimal
	CumulativeTaxable decimal.Decimal
	CumulativeCount   int
	// CountUnits is what this entry contributed to the count: 1 for a
	// normal row, an estimate for aggregated rows, 0 for rows the
	// jurisdiction excludes from its threshold test.
	CountUnits int
}

// YearLedger is one jurisdiction-year of date-ordered entries. Every year
// of the analysis period gets a ledger, even when it has no entries, so
// downstream evaluation can carry nexus across quiet years.
type YearLedger struct {
	JurisdictionCode string
	Year             int
	Entries          []LedgerEntry
	TotalRevenue     decimal.Decimal
	TotalTaxable     decimal.Decimal
	TotalCount       int
	CountEstimated   bool
}

// LedgerBuilder validates raw transaction rows and turns them into
// chronological per-year ledgers with running totals.
type LedgerBuilder struct {
	logger *zap.Logger
}

// NewLedgerBuilder creates a new ledger builder
func NewLedgerBuilder() *LedgerBuilder {
	return &LedgerBuilder{logger: logger.Log}
}

// ValidateTransactions screens raw rows, returning the accepted rows and
// one warning per rejected row. Rejection never aborts an analysis; a
// malformed row costs exactly that row.
func (b *LedgerBuilder) ValidateTransactions(txns []business.Transaction) ([]business.Transaction, []business.Warning) {
	valid := make([]business.Transaction, 0, len(txns))
	var warnings []business.Warning

	for _, tx := range txns {
		if reason := validateTransaction(tx); reason != "" {
			warnings = append(warnings, business.NewRowWarning(
				business.WarningRowRejected, tx.JurisdictionCode, tx.RowIndex, "row rejected: %s", reason))
			continue
		}
		valid = append(valid, tx)
	}

	if len(warnings) > 0 {
		b.logger.Warn("Rejected malformed transaction rows",
			zap.Int("rejected", len(warnings)),
			zap.Int("accepted", len(valid)))
	}

	return valid, warnings
}

func validateTransaction(tx business.Transaction) string {
	if tx.JurisdictionCode == "" {
		return "missing jurisdiction code"
	}
	if tx.Date.IsZero() {
		return "missing transaction date"
	}
	switch tx.Channel {
	case business.ChannelDirect, business.ChannelMarketplace:
	default:
		return "unknown sales channel"
	}
	if tx.TaxableAmount.Abs().GreaterThan(tx.GrossAmount.Abs()) {
		return "taxable amount exceeds gross amount"
	}
	if tx.GrossAmount.Sign()*tx.TaxableAmount.Sign() < 0 {
		return "taxable and gross amounts have opposite signs"
	}
	return ""
}

// BuildLedgers orders one jurisdiction's accepted rows chronologically
// and buckets them into calendar-year ledgers covering every year of
// [periodStart, periodEnd]. Running totals reset at year boundaries.
func (b *LedgerBuilder) BuildLedgers(
	jurisdictionCode string,
	txns []business.Transaction,
	rule *business.JurisdictionRules,
	periodStart, periodEnd time.Time,
	opts params.EngineOptions,
) ([]YearLedger, []business.Warning) {
	// Stable chronological order: date first, original row order breaks
	// same-day ties, so reordering equal-date input rows cannot change
	// which entry trips a threshold.
	ordered := make([]business.Transaction, 0, len(txns))
	for _, tx := range txns {
		if tx.Date.Before(periodStart) || tx.Date.After(periodEnd) {
			continue
		}
		ordered = append(ordered, tx)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].RowIndex < ordered[j].RowIndex
	})

	byYear := make(map[int][]business.Transaction)
	for _, tx := range ordered {
		byYear[tx.Year()] = append(byYear[tx.Year()], tx)
	}

	var warnings []business.Warning
	ledgers := make([]YearLedger, 0, periodEnd.Year()-periodStart.Year()+1)

	for year := periodStart.Year(); year <= periodEnd.Year(); year++ {
		ledger := b.buildYear(jurisdictionCode, year, byYear[year], rule, opts)
		if ledger.CountEstimated {
			warnings = append(warnings, business.NewWarning(
				business.WarningCountEstimated, jurisdictionCode, year,
				"transaction counts estimated from aggregated rows using an average sale of %s",
				opts.EstimatedTransactionSize.StringFixed(2)))
		}
		ledgers = append(ledgers, ledger)
	}

	return ledgers, warnings
}

func (b *LedgerBuilder) buildYear(
	jurisdictionCode string,
	year int,
	txns []business.Transaction,
	rule *business.JurisdictionRules,
	opts params.EngineOptions,
) YearLedger {
	ledger := YearLedger{
		JurisdictionCode: jurisdictionCode,
		Year:             year,
		TotalRevenue:     decimal.Zero,
		TotalTaxable:     decimal.Zero,
	}

	revenue := decimal.Zero
	taxable := decimal.Zero
	count := 0

	for _, tx := range txns {
		counted := tx.Channel != business.ChannelMarketplace || rule.MarketplaceCountsTowardThreshold

		if counted {
			switch rule.ThresholdSalesBasis {
			case business.BasisTaxable:
				revenue = revenue.Add(tx.TaxableAmount)
			default:
				revenue = revenue.Add(tx.GrossAmount)
			}
		}

		if tx.Channel == business.ChannelDirect {
			taxable = taxable.Add(tx.TaxableAmount)
		}

		// Returns still advance the count: a refund is a transaction the
		// state saw. Revenue is the only total returns pull back down.
		units := 0
		if counted {
			units = 1
			if tx.Aggregated {
				units = estimateUnits(tx.GrossAmount, opts.EstimatedTransactionSize)
				ledger.CountEstimated = true
			}
		}
		count += units

		ledger.Entries = append(ledger.Entries, LedgerEntry{
			Transaction:       tx,
			CumulativeRevenue: revenue,
			CumulativeTaxable: taxable,
			CumulativeCount:   count,
			CountUnits:        units,
		})
	}

	ledger.TotalRevenue = revenue
	ledger.TotalTaxable = taxable
	ledger.TotalCount = count
	return ledger
}

// estimateUnits converts a pre-aggregated row's gross amount into an
// estimated transaction count, never less than one row.
func estimateUnits(gross, estimatedSize decimal.Decimal) int {
	if estimatedSize.IsZero() {
		return 1
	}
	units := int(gross.Abs().Div(estimatedSize).Round(0).IntPart())
	if units < 1 {
		return 1
	}
	return units
}

// exposureSales sums taxable sales dated on or after exposureStart,
// honoring the jurisdiction's marketplace exclusion. Shared by the
// standard and VDA liability paths.
func exposureSales(ledger YearLedger, rule *business.JurisdictionRules, exposureStart time.Time) decimal.Decimal {
	start := helpers.TruncateToDay(exposureStart)
	total := decimal.Zero
	for _, entry := range ledger.Entries {
		tx := entry.Transaction
		if helpers.TruncateToDay(tx.Date).Before(start) {
			continue
		}
		if tx.Channel == business.ChannelMarketplace && rule.MarketplaceExcludedFromLiability {
			continue
		}
		total = total.Add(tx.TaxableAmount)
	}
	return total
}
