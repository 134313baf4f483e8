package testutil

import (
	"time"

	"github.com/markmiedema/nexuscheck-sub011/helpers"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
)

// Date builds a UTC midnight date for test inputs.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Txn builds a fully-taxable direct-channel transaction row.
func Txn(code string, date time.Time, gross float64, rowIndex int) business.Transaction {
	amount := decimal.NewFromFloat(gross)
	return business.Transaction{
		JurisdictionCode: code,
		Date:             date,
		GrossAmount:      amount,
		TaxableAmount:    amount,
		Channel:          business.ChannelDirect,
		RowIndex:         rowIndex,
	}
}

// MarketplaceTxn builds a fully-taxable marketplace-facilitated row.
func MarketplaceTxn(code string, date time.Time, gross float64, rowIndex int) business.Transaction {
	tx := Txn(code, date, gross, rowIndex)
	tx.Channel = business.ChannelMarketplace
	return tx
}

// AggregatedTxn builds a pre-summed row carrying no transaction count.
func AggregatedTxn(code string, date time.Time, gross float64, rowIndex int) business.Transaction {
	tx := Txn(code, date, gross, rowIndex)
	tx.Aggregated = true
	return tx
}

// Presence builds an active, ongoing physical presence declaration.
func Presence(code string, start time.Time) business.PhysicalPresence {
	return business.PhysicalPresence{
		JurisdictionCode: code,
		StartDate:        start,
		PresenceType:     "office",
		Active:           true,
	}
}

// StandardRules returns the common post-Wayfair rule shape: $100,000 OR
// 200 transactions on gross sales, 7% combined rate, 8% simple interest,
// 5%/5% penalties capped at 25%, 36-month VDA waiving penalties.
func StandardRules(code string) business.JurisdictionRules {
	return business.JurisdictionRules{
		JurisdictionCode:                 code,
		Name:                             code,
		EffectiveFrom:                    Date(2018, time.July, 1),
		RevenueThreshold:                 helpers.DecimalPtr(decimal.NewFromInt(100000)),
		TransactionThreshold:             helpers.IntPtr(200),
		ThresholdOperator:                business.OperatorOr,
		ThresholdSalesBasis:              business.BasisGross,
		MarketplaceCountsTowardThreshold: true,
		MarketplaceExcludedFromLiability: true,
		CombinedTaxRate:                  decimal.NewFromFloat(0.07),
		InterestRate:                     decimal.NewFromFloat(0.08),
		InterestMethod:                   business.InterestSimple,
		LateFilingPenalty:                business.PenaltySpec{Rate: decimal.NewFromFloat(0.05)},
		LatePaymentPenalty:               business.PenaltySpec{Rate: decimal.NewFromFloat(0.05)},
		MaxPenaltyRate:                   helpers.DecimalPtr(decimal.NewFromFloat(0.25)),
		VDALookbackMonths:                36,
		VDAWaivesPenalties:               business.TristateTrue,
		VDAWaivesInterest:                business.TristateFalse,
	}
}

// RevenueOnlyRules returns a revenue-only rule row with the given
// threshold, in the shape of the large-state statutes.
func RevenueOnlyRules(code string, revenue int64) business.JurisdictionRules {
	rules := StandardRules(code)
	rules.RevenueThreshold = helpers.DecimalPtr(decimal.NewFromInt(revenue))
	rules.TransactionThreshold = nil
	return rules
}
