package services_test

import (
	"testing"
	"time"

	"github.com/markmiedema/nexuscheck-sub011/helpers"
	"github.com/markmiedema/nexuscheck-sub011/services"
	"github.com/markmiedema/nexuscheck-sub011/testutil"
	"github.com/markmiedema/nexuscheck-sub011/types/api/params"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nexusOn(code string, year int, date time.Time) business.NexusRecord {
	return business.NexusRecord{
		JurisdictionCode: code,
		Year:             year,
		Status:           business.NexusStatusHasNexus,
		Type:             business.NexusTypeEconomic,
		NexusDate:        &date,
	}
}

func flatFee(amount int64) business.PenaltySpec {
	fee := helpers.DecimalPtr(decimal.NewFromInt(amount))
	return business.PenaltySpec{MinAmount: fee, MaxAmount: fee}
}

func TestLiabilityCalculator_NoNexusNoRecord(t *testing.T) {
	calculator := services.NewLiabilityCalculator()
	rules := testutil.StandardRules("WA")

	txns := []business.Transaction{
		testutil.Txn("WA", testutil.Date(2022, time.March, 1), 50000, 0),
	}
	ledgers := buildYearLedgers(t, "WA", txns, &rules, 2022, 2022)

	nexus := business.NexusRecord{
		JurisdictionCode: "WA",
		Year:             2022,
		Status:           business.NexusStatusApproaching,
	}

	record, warnings := calculator.CalculateYear(ledgers[0], nexus, &rules,
		testutil.Date(2022, time.December, 31), params.DefaultEngineOptions())

	assert.Nil(t, record)
	assert.Empty(t, warnings)
}

func TestLiabilityCalculator_FullComposition(t *testing.T) {
	calculator := services.NewLiabilityCalculator()

	// $20,000 exposure at 5% is a $1,000 base; 8% simple interest over a
	// full 365 days adds $80; a $50 flat filing fee completes the bill.
	rules := testutil.StandardRules("NV")
	rules.CombinedTaxRate = decimal.NewFromFloat(0.05)
	rules.LateFilingPenalty = flatFee(50)
	rules.LatePaymentPenalty = business.PenaltySpec{}
	rules.MaxPenaltyRate = nil

	nexusDate := testutil.Date(2022, time.January, 1)
	txns := []business.Transaction{
		testutil.Txn("NV", nexusDate, 20000, 0),
	}
	ledgers := buildYearLedgers(t, "NV", txns, &rules, 2022, 2022)

	record, warnings := calculator.CalculateYear(ledgers[0],
		nexusOn("NV", 2022, nexusDate), &rules,
		testutil.Date(2023, time.January, 1), params.DefaultEngineOptions())

	require.NotNil(t, record)
	assert.Empty(t, warnings)

	assert.Equal(t, "20000.00", record.ExposureSales.StringFixed(2))
	assert.Equal(t, nexusDate, record.ExposureStartDate)
	assert.Equal(t, "1000.00", record.BaseTax.StringFixed(2))
	assert.Equal(t, 365, record.DaysOutstanding)
	assert.Equal(t, 365, record.DayCountBasis)
	assert.Equal(t, "80.00", record.Interest.StringFixed(2))

	require.Len(t, record.Penalties, 1)
	assert.Equal(t, business.PenaltyLateFiling, record.Penalties[0].Category)
	assert.True(t, record.Penalties[0].FlatFee)
	assert.Equal(t, "50.00", record.Penalties[0].Amount.StringFixed(2))
	assert.Equal(t, "50.00", record.PenaltyTotal.StringFixed(2))
	assert.False(t, record.PenaltyCapApplied)

	assert.Equal(t, "1130.00", record.Total.StringFixed(2))
	// Printed components always reconcile with the printed total.
	sum := record.BaseTax.Add(record.Interest).Add(record.PenaltyTotal)
	assert.True(t, sum.Equal(record.Total))
}

func TestLiabilityCalculator_ExposureStartsAtNexusDate(t *testing.T) {
	calculator := services.NewLiabilityCalculator()
	rules := testutil.StandardRules("WA")
	nexusDate := testutil.Date(2022, time.June, 15)

	txns := []business.Transaction{
		testutil.Txn("WA", testutil.Date(2022, time.February, 1), 10000, 0),
		testutil.Txn("WA", testutil.Date(2022, time.June, 15), 10000, 1),
		testutil.Txn("WA", testutil.Date(2022, time.July, 1), 10000, 2),
		testutil.MarketplaceTxn("WA", testutil.Date(2022, time.August, 1), 10000, 3),
	}
	ledgers := buildYearLedgers(t, "WA", txns, &rules, 2022, 2022)

	record, _ := calculator.CalculateYear(ledgers[0],
		nexusOn("WA", 2022, nexusDate), &rules,
		testutil.Date(2022, time.December, 31), params.DefaultEngineOptions())

	// February predates the obligation; the marketplace sale is remitted
	// by the facilitator. The trigger-day sale itself is in.
	require.NotNil(t, record)
	assert.Equal(t, "20000.00", record.ExposureSales.StringFixed(2))
}

func TestLiabilityCalculator_ExposureUsesTaxableAmount(t *testing.T) {
	calculator := services.NewLiabilityCalculator()
	rules := testutil.StandardRules("WA")
	nexusDate := testutil.Date(2022, time.January, 1)

	tx := testutil.Txn("WA", testutil.Date(2022, time.March, 1), 10000, 0)
	tx.TaxableAmount = decimal.NewFromInt(4000)

	ledgers := buildYearLedgers(t, "WA", []business.Transaction{tx}, &rules, 2022, 2022)
	record, _ := calculator.CalculateYear(ledgers[0],
		nexusOn("WA", 2022, nexusDate), &rules,
		testutil.Date(2022, time.December, 31), params.DefaultEngineOptions())

	require.NotNil(t, record)
	assert.Equal(t, "4000.00", record.ExposureSales.StringFixed(2))
	assert.Equal(t, "280.00", record.BaseTax.StringFixed(2))
}

func TestLiabilityCalculator_InterestMethods(t *testing.T) {
	tests := []struct {
		name         string
		method       business.InterestMethod
		rate         float64
		days         int
		wantInterest string
	}{
		{
			name:         "simple full year",
			method:       business.InterestSimple,
			rate:         0.08,
			days:         365,
			wantInterest: "80.00",
		},
		{
			name:         "simple partial year",
			method:       business.InterestSimple,
			rate:         0.08,
			days:         146, // two fifths of the basis
			wantInterest: "32.00",
		},
		{
			name:         "simple zero days",
			method:       business.InterestSimple,
			rate:         0.08,
			days:         0,
			wantInterest: "0.00",
		},
		{
			name:         "compound monthly full year",
			method:       business.InterestCompoundMonthly,
			rate:         0.12,
			days:         365,
			wantInterest: "126.83", // (1 + 0.01)^12
		},
		{
			name:         "compound monthly with stub days",
			method:       business.InterestCompoundMonthly,
			rate:         0.12,
			days:         400, // 13 whole months, then simple accrual on the rest
			wantInterest: "139.81",
		},
		{
			name:         "compound daily full year",
			method:       business.InterestCompoundDaily,
			rate:         0.08,
			days:         365,
			wantInterest: "83.28",
		},
		{
			name:         "compound annually with stub days",
			method:       business.InterestCompoundAnnually,
			rate:         0.10,
			days:         500, // one whole year, 135 stub days on the grown balance
			wantInterest: "140.68",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calculator := services.NewLiabilityCalculator()

			rules := testutil.StandardRules("XX")
			rules.CombinedTaxRate = decimal.NewFromFloat(0.05)
			rules.InterestRate = decimal.NewFromFloat(tt.rate)
			rules.InterestMethod = tt.method
			rules.LateFilingPenalty = business.PenaltySpec{}
			rules.LatePaymentPenalty = business.PenaltySpec{}
			rules.MaxPenaltyRate = nil

			nexusDate := testutil.Date(2022, time.January, 1)
			txns := []business.Transaction{
				testutil.Txn("XX", nexusDate, 20000, 0),
			}
			ledgers := buildYearLedgers(t, "XX", txns, &rules, 2022, 2022)

			record, _ := calculator.CalculateYear(ledgers[0],
				nexusOn("XX", 2022, nexusDate), &rules,
				nexusDate.AddDate(0, 0, tt.days), params.DefaultEngineOptions())

			require.NotNil(t, record)
			assert.Equal(t, "1000.00", record.BaseTax.StringFixed(2))
			assert.Equal(t, tt.days, record.DaysOutstanding)
			assert.Equal(t, tt.wantInterest, record.Interest.StringFixed(2))
		})
	}
}

func TestLiabilityCalculator_PenaltyBounds(t *testing.T) {
	min25 := helpers.DecimalPtr(decimal.NewFromInt(25))
	max1000 := helpers.DecimalPtr(decimal.NewFromInt(1000))

	tests := []struct {
		name       string
		exposure   float64
		spec       business.PenaltySpec
		wantAmount string
		wantFlat   bool
	}{
		{
			name:       "rate applied plain",
			exposure:   20000, // $1,000 base
			spec:       business.PenaltySpec{Rate: decimal.NewFromFloat(0.05)},
			wantAmount: "50.00",
		},
		{
			name:       "minimum lifts a small penalty",
			exposure:   2000, // $100 base, 5% = $5
			spec:       business.PenaltySpec{Rate: decimal.NewFromFloat(0.05), MinAmount: min25},
			wantAmount: "25.00",
		},
		{
			name:       "maximum caps a large penalty",
			exposure:   2000000, // $100,000 base, 5% = $5,000
			spec:       business.PenaltySpec{Rate: decimal.NewFromFloat(0.05), MaxAmount: max1000},
			wantAmount: "1000.00",
		},
		{
			name:       "equal bounds mean a flat fee",
			exposure:   2000000,
			spec:       flatFee(50),
			wantAmount: "50.00",
			wantFlat:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calculator := services.NewLiabilityCalculator()

			rules := testutil.StandardRules("WA")
			rules.CombinedTaxRate = decimal.NewFromFloat(0.05)
			rules.InterestRate = decimal.Zero
			rules.LateFilingPenalty = tt.spec
			rules.LatePaymentPenalty = business.PenaltySpec{}
			rules.MaxPenaltyRate = nil

			nexusDate := testutil.Date(2022, time.January, 1)
			txns := []business.Transaction{
				testutil.Txn("WA", nexusDate, tt.exposure, 0),
			}
			ledgers := buildYearLedgers(t, "WA", txns, &rules, 2022, 2022)

			record, _ := calculator.CalculateYear(ledgers[0],
				nexusOn("WA", 2022, nexusDate), &rules,
				testutil.Date(2022, time.December, 31), params.DefaultEngineOptions())

			require.NotNil(t, record)
			require.Len(t, record.Penalties, 1)
			assert.Equal(t, tt.wantAmount, record.Penalties[0].Amount.StringFixed(2))
			assert.Equal(t, tt.wantFlat, record.Penalties[0].FlatFee)
		})
	}
}

func TestLiabilityCalculator_CombinedPenaltyCap(t *testing.T) {
	calculator := services.NewLiabilityCalculator()

	cap := decimal.NewFromFloat(0.25)
	rules := testutil.StandardRules("WA")
	rules.CombinedTaxRate = decimal.NewFromFloat(0.05)
	rules.InterestRate = decimal.Zero
	rules.LateFilingPenalty = business.PenaltySpec{Rate: decimal.NewFromFloat(0.30)}
	rules.LatePaymentPenalty = business.PenaltySpec{Rate: decimal.NewFromFloat(0.10)}
	rules.MaxPenaltyRate = &cap

	nexusDate := testutil.Date(2022, time.January, 1)
	txns := []business.Transaction{
		testutil.Txn("WA", nexusDate, 20000, 0), // $1,000 base
	}
	ledgers := buildYearLedgers(t, "WA", txns, &rules, 2022, 2022)

	record, _ := calculator.CalculateYear(ledgers[0],
		nexusOn("WA", 2022, nexusDate), &rules,
		testutil.Date(2022, time.December, 31), params.DefaultEngineOptions())

	require.NotNil(t, record)

	// Components keep their uncapped arithmetic; only the total is held
	// at 25% of base.
	require.Len(t, record.Penalties, 2)
	assert.Equal(t, "300.00", record.Penalties[0].Amount.StringFixed(2))
	assert.Equal(t, "100.00", record.Penalties[1].Amount.StringFixed(2))
	assert.Equal(t, "250.00", record.PenaltyTotal.StringFixed(2))
	assert.True(t, record.PenaltyCapApplied)
	assert.Equal(t, "1250.00", record.Total.StringFixed(2))
}

func TestLiabilityCalculator_RateFallback(t *testing.T) {
	calculator := services.NewLiabilityCalculator()

	rules := testutil.StandardRules("MO")
	rules.CombinedTaxRate = decimal.Zero
	rules.InterestRate = decimal.Zero
	rules.LateFilingPenalty = business.PenaltySpec{}
	rules.LatePaymentPenalty = business.PenaltySpec{}
	rules.MaxPenaltyRate = nil

	nexusDate := testutil.Date(2022, time.January, 1)
	txns := []business.Transaction{
		testutil.Txn("MO", nexusDate, 10000, 0),
	}
	ledgers := buildYearLedgers(t, "MO", txns, &rules, 2022, 2022)

	record, warnings := calculator.CalculateYear(ledgers[0],
		nexusOn("MO", 2022, nexusDate), &rules,
		testutil.Date(2022, time.December, 31), params.DefaultEngineOptions())

	require.NotNil(t, record)
	assert.True(t, record.RateFallback)
	assert.Equal(t, "0.07", record.TaxRate.StringFixed(2))
	assert.Equal(t, "700.00", record.BaseTax.StringFixed(2))

	require.Len(t, warnings, 1)
	assert.Equal(t, business.WarningRateFallbackApplied, warnings[0].Code)
	assert.Equal(t, 2022, warnings[0].Year)
}

func TestLiabilityCalculator_NoFallbackWithoutEconomicTest(t *testing.T) {
	calculator := services.NewLiabilityCalculator()

	// A no-sales-tax state reached through physical presence: zero rate
	// is the correct rate, not a research gap.
	rules := testutil.StandardRules("DE")
	rules.RevenueThreshold = nil
	rules.TransactionThreshold = nil
	rules.ThresholdOperator = ""
	rules.CombinedTaxRate = decimal.Zero
	rules.InterestRate = decimal.Zero
	rules.LateFilingPenalty = business.PenaltySpec{}
	rules.LatePaymentPenalty = business.PenaltySpec{}
	rules.MaxPenaltyRate = nil

	nexusDate := testutil.Date(2022, time.January, 1)
	txns := []business.Transaction{
		testutil.Txn("DE", testutil.Date(2022, time.March, 1), 50000, 0),
	}
	ledgers := buildYearLedgers(t, "DE", txns, &rules, 2022, 2022)

	nexus := nexusOn("DE", 2022, nexusDate)
	nexus.Type = business.NexusTypePhysical

	record, warnings := calculator.CalculateYear(ledgers[0], nexus, &rules,
		testutil.Date(2022, time.December, 31), params.DefaultEngineOptions())

	require.NotNil(t, record)
	assert.Empty(t, warnings)
	assert.False(t, record.RateFallback)
	assert.Equal(t, "0.00", record.BaseTax.StringFixed(2))
	assert.Equal(t, "0.00", record.Total.StringFixed(2))
}

func TestLiabilityCalculator_NegativeExposureClampedToZeroTax(t *testing.T) {
	calculator := services.NewLiabilityCalculator()
	rules := testutil.StandardRules("WA")
	nexusDate := testutil.Date(2022, time.January, 1)

	refund := testutil.Txn("WA", testutil.Date(2022, time.March, 1), -5000, 0)
	refund.TaxableAmount = decimal.NewFromInt(-5000)

	ledgers := buildYearLedgers(t, "WA", []business.Transaction{refund}, &rules, 2022, 2022)
	record, _ := calculator.CalculateYear(ledgers[0],
		nexusOn("WA", 2022, nexusDate), &rules,
		testutil.Date(2022, time.December, 31), params.DefaultEngineOptions())

	// The negative exposure is reported as-is; tax, interest and the
	// total never go below zero.
	require.NotNil(t, record)
	assert.Equal(t, "-5000.00", record.ExposureSales.StringFixed(2))
	assert.Equal(t, "0.00", record.BaseTax.StringFixed(2))
	assert.Equal(t, "0.00", record.Interest.StringFixed(2))
	assert.Equal(t, "0.00", record.Total.StringFixed(2))
}
