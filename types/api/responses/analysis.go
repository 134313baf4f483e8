package responses

import (
	"time"

	"github.com/google/uuid"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/shopspring/decimal"
)

// JurisdictionSummary aggregates every analyzed year of one jurisdiction.
// All totals are sums of the already-rounded per-year records, so the
// summary always reconciles exactly with the year detail.
type JurisdictionSummary struct {
	FirstNexusYear     int                `json:"first_nexus_year,omitempty"`
	FirstNexusDate     *time.Time         `json:"first_nexus_date,omitempty"`
	NexusType          business.NexusType `json:"nexus_type"`
	YearsWithNexus     int                `json:"years_with_nexus"`
	TotalExposureSales decimal.Decimal    `json:"total_exposure_sales"`
	TotalBaseTax       decimal.Decimal    `json:"total_base_tax"`
	TotalInterest      decimal.Decimal    `json:"total_interest"`
	TotalPenalties     decimal.Decimal    `json:"total_penalties"`
	TotalLiability     decimal.Decimal    `json:"total_liability"`
}

// VDAComparison is the side-by-side view of standard exposure versus a
// voluntary disclosure agreement. Standard records are never mutated to
// produce it.
type VDAComparison struct {
	LookbackMonths  int                        `json:"lookback_months"`
	LookbackStart   time.Time                  `json:"lookback_start"`
	Records         []business.LiabilityRecord `json:"records"`
	StandardTotal   decimal.Decimal            `json:"standard_total"`
	VDATotal        decimal.Decimal            `json:"vda_total"`
	Savings         decimal.Decimal            `json:"savings"`
	PenaltiesWaived bool                       `json:"penalties_waived"`
	InterestWaived  bool                       `json:"interest_waived"`
	// WaiverAssumed marks that an unverified waiver flag was resolved
	// conservatively; a matching warning is attached to the analysis.
	WaiverAssumed bool `json:"waiver_assumed,omitempty"`
}

// JurisdictionAnalysis is the complete result for one jurisdiction. A
// jurisdiction that failed internally reports Err and keeps its siblings'
// results intact.
type JurisdictionAnalysis struct {
	JurisdictionCode string                     `json:"jurisdiction_code"`
	JurisdictionName string                     `json:"jurisdiction_name,omitempty"`
	RulesAvailable   bool                       `json:"rules_available"`
	NexusRecords     []business.NexusRecord     `json:"nexus_records"`
	LiabilityRecords []business.LiabilityRecord `json:"liability_records"`
	VDA              *VDAComparison             `json:"vda,omitempty"`
	Summary          JurisdictionSummary        `json:"summary"`
	Warnings         []business.Warning         `json:"warnings,omitempty"`
	Err              string                     `json:"error,omitempty"`
}

// RunTotals is the run-level rollup across jurisdictions.
type RunTotals struct {
	JurisdictionsAnalyzed  int             `json:"jurisdictions_analyzed"`
	JurisdictionsWithNexus int             `json:"jurisdictions_with_nexus"`
	JurisdictionsDegraded  int             `json:"jurisdictions_degraded"`
	RowsRejected           int             `json:"rows_rejected"`
	TotalLiability         decimal.Decimal `json:"total_liability"`
}

// AnalysisResult is the envelope for one engine run. RunID and
// GeneratedAt identify the run; the record sets underneath are a pure
// function of the inputs so identical inputs reproduce them exactly.
type AnalysisResult struct {
	RunID         uuid.UUID              `json:"run_id"`
	GeneratedAt   time.Time              `json:"generated_at"`
	PeriodStart   time.Time              `json:"period_start"`
	PeriodEnd     time.Time              `json:"period_end"`
	Jurisdictions []JurisdictionAnalysis `json:"jurisdictions"`
	Warnings      []business.Warning     `json:"warnings,omitempty"`
	Totals        RunTotals              `json:"totals"`
}
