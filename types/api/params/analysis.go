package params

import (
	"runtime"
	"time"

	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
)

// AnalysisParams contains everything one analysis run consumes: the
// normalized transaction history, declared physical presence, and the
// period the caller wants evaluated.
type AnalysisParams struct {
	Transactions []business.Transaction
	Presence     []business.PhysicalPresence
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Options      *EngineOptions // nil = defaults
}

// EngineOptions tunes engine behavior. Zero values are replaced by
// defaults; callers normally pass nil and take DefaultEngineOptions.
type EngineOptions struct {
	// Workers bounds the per-jurisdiction worker pool.
	Workers int
	// ApproachingPercent is the fraction of an economic threshold at
	// which a year is flagged "approaching" (reporting only).
	ApproachingPercent decimal.Decimal
	// EstimatedTransactionSize is the assumed average sale amount used to
	// estimate counts for pre-aggregated rows.
	EstimatedTransactionSize decimal.Decimal
	// FallbackCombinedRate is applied when a jurisdiction's research row
	// has thresholds but no usable combined tax rate.
	FallbackCombinedRate decimal.Decimal
	// SkipVDA disables the voluntary-disclosure comparison.
	SkipVDA bool
}

// DefaultEngineOptions returns the engine defaults.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Workers:                  runtime.GOMAXPROCS(0),
		ApproachingPercent:       decimal.NewFromFloat(0.80),
		EstimatedTransactionSize: decimal.NewFromInt(100),
		FallbackCombinedRate:     decimal.NewFromFloat(0.07),
	}
}

// Normalized returns a copy with zero fields replaced by defaults.
func (o *EngineOptions) Normalized() EngineOptions {
	defaults := DefaultEngineOptions()
	if o == nil {
		return defaults
	}

	out := *o
	if out.Workers <= 0 {
		out.Workers = defaults.Workers
	}
	if out.ApproachingPercent.IsZero() {
		out.ApproachingPercent = defaults.ApproachingPercent
	}
	if out.EstimatedTransactionSize.IsZero() {
		out.EstimatedTransactionSize = defaults.EstimatedTransactionSize
	}
	if out.FallbackCombinedRate.IsZero() {
		out.FallbackCombinedRate = defaults.FallbackCombinedRate
	}
	return out
}
