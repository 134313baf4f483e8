package rules_test

import (
	"testing"
	"time"

	"github.com/markmiedema/nexuscheck-sub011/rules"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCatalog_EffectiveRules_VersionSelection(t *testing.T) {
	catalog := rules.DefaultCatalog()

	tests := []struct {
		name            string
		code            string
		asOf            time.Time
		expectedRevenue int64
	}{
		{
			name:            "arizona first phase",
			code:            "AZ",
			asOf:            date(2019, time.November, 1),
			expectedRevenue: 200000,
		},
		{
			name:            "arizona second phase",
			code:            "AZ",
			asOf:            date(2020, time.June, 15),
			expectedRevenue: 150000,
		},
		{
			name:            "arizona final threshold",
			code:            "AZ",
			asOf:            date(2022, time.December, 31),
			expectedRevenue: 100000,
		},
		{
			name:            "boundary day belongs to the new row",
			code:            "AZ",
			asOf:            date(2021, time.January, 1),
			expectedRevenue: 100000,
		},
		{
			name:            "california single row",
			code:            "CA",
			asOf:            date(2023, time.December, 31),
			expectedRevenue: 500000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := catalog.EffectiveRules(tt.code, tt.asOf)
			require.NoError(t, err)
			require.NotNil(t, row.RevenueThreshold)
			assert.True(t, row.RevenueThreshold.Equal(decimal.NewFromInt(tt.expectedRevenue)),
				"expected %d, got %s", tt.expectedRevenue, row.RevenueThreshold)
		})
	}
}

func TestCatalog_EffectiveRules_TransactionTestRepeals(t *testing.T) {
	catalog := rules.DefaultCatalog()

	// Indiana carried a 200-transaction test until 2024.
	row, err := catalog.EffectiveRules("IN", date(2023, time.June, 1))
	require.NoError(t, err)
	require.NotNil(t, row.TransactionThreshold)
	assert.Equal(t, 200, *row.TransactionThreshold)

	row, err = catalog.EffectiveRules("IN", date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Nil(t, row.TransactionThreshold)
	require.NotNil(t, row.RevenueThreshold)
	assert.True(t, row.RevenueThreshold.Equal(decimal.NewFromInt(100000)))
}

func TestCatalog_EffectiveRules_NoRules(t *testing.T) {
	catalog := rules.DefaultCatalog()

	t.Run("unknown jurisdiction", func(t *testing.T) {
		_, err := catalog.EffectiveRules("ZZ", date(2023, time.January, 1))
		require.Error(t, err)
		assert.True(t, errors.Is(err, rules.ErrNoRules))
	})

	t.Run("date before adoption", func(t *testing.T) {
		// Florida adopted economic nexus in July 2021.
		_, err := catalog.EffectiveRules("FL", date(2020, time.January, 1))
		require.Error(t, err)
		assert.True(t, errors.Is(err, rules.ErrNoRules))
	})
}

func TestCatalog_EffectiveRules_CaseInsensitive(t *testing.T) {
	catalog := rules.DefaultCatalog()

	row, err := catalog.EffectiveRules("tx", date(2022, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, "TX", row.JurisdictionCode)
	assert.Equal(t, "Texas", row.Name)
}

func TestCatalog_NoSalesTaxStates(t *testing.T) {
	catalog := rules.DefaultCatalog()

	for _, code := range []string{"DE", "MT", "NH", "OR"} {
		row, err := catalog.EffectiveRules(code, date(2023, time.January, 1))
		require.NoError(t, err, code)
		assert.False(t, row.HasEconomicTest(), code)
		assert.True(t, row.CombinedTaxRate.IsZero(), code)
	}
}

func TestCatalog_Jurisdictions(t *testing.T) {
	catalog := rules.DefaultCatalog()

	codes := catalog.Jurisdictions()
	assert.GreaterOrEqual(t, len(codes), 50)
	assert.IsIncreasing(t, codes)
	assert.Contains(t, codes, "CA")
	assert.Contains(t, codes, "NY")
	assert.Contains(t, codes, "WY")
}

func TestNewCatalog_Validation(t *testing.T) {
	validRow := func() business.JurisdictionRules {
		rev := decimal.NewFromInt(100000)
		return business.JurisdictionRules{
			JurisdictionCode:    "XX",
			Name:                "Test State",
			EffectiveFrom:       date(2019, time.January, 1),
			RevenueThreshold:    &rev,
			ThresholdOperator:   business.OperatorOr,
			ThresholdSalesBasis: business.BasisGross,
			CombinedTaxRate:     decimal.NewFromFloat(0.07),
			InterestRate:        decimal.NewFromFloat(0.08),
			InterestMethod:      business.InterestSimple,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*business.JurisdictionRules)
		wantErr string
	}{
		{
			name:    "valid row",
			mutate:  func(r *business.JurisdictionRules) {},
			wantErr: "",
		},
		{
			name:    "missing code",
			mutate:  func(r *business.JurisdictionRules) { r.JurisdictionCode = "  " },
			wantErr: "jurisdiction code is required",
		},
		{
			name:    "missing effective from",
			mutate:  func(r *business.JurisdictionRules) { r.EffectiveFrom = time.Time{} },
			wantErr: "effective from date is required",
		},
		{
			name: "effective to before from",
			mutate: func(r *business.JurisdictionRules) {
				to := date(2018, time.January, 1)
				r.EffectiveTo = &to
			},
			wantErr: "effective to must be after effective from",
		},
		{
			name: "negative revenue threshold",
			mutate: func(r *business.JurisdictionRules) {
				neg := decimal.NewFromInt(-1)
				r.RevenueThreshold = &neg
			},
			wantErr: "revenue threshold cannot be negative",
		},
		{
			name:    "missing operator with thresholds",
			mutate:  func(r *business.JurisdictionRules) { r.ThresholdOperator = "" },
			wantErr: "threshold operator is required",
		},
		{
			name:    "unknown operator",
			mutate:  func(r *business.JurisdictionRules) { r.ThresholdOperator = "xor" },
			wantErr: "unknown threshold operator",
		},
		{
			name:    "unknown interest method",
			mutate:  func(r *business.JurisdictionRules) { r.InterestMethod = "hourly" },
			wantErr: "unknown interest method",
		},
		{
			name:    "negative interest rate",
			mutate:  func(r *business.JurisdictionRules) { r.InterestRate = decimal.NewFromFloat(-0.01) },
			wantErr: "rates cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.mutate(&row)

			catalog, err := rules.NewCatalog([]business.JurisdictionRules{row})
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.NotNil(t, catalog)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalog_NormalizesCodes(t *testing.T) {
	rev := decimal.NewFromInt(100000)
	catalog, err := rules.NewCatalog([]business.JurisdictionRules{{
		JurisdictionCode:    " ga ",
		Name:                "Georgia",
		EffectiveFrom:       date(2020, time.January, 1),
		RevenueThreshold:    &rev,
		ThresholdOperator:   business.OperatorOr,
		ThresholdSalesBasis: business.BasisGross,
		CombinedTaxRate:     decimal.NewFromFloat(0.0738),
	}})
	require.NoError(t, err)

	row, err := catalog.EffectiveRules("GA", date(2021, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, "GA", row.JurisdictionCode)
}
