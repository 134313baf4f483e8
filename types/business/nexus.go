package business

import (
	"time"

	"github.com/shopspring/decimal"
)

// NexusStatus is the filing-obligation state of a jurisdiction-year.
type NexusStatus string

const (
	NexusStatusNone        NexusStatus = "none"
	NexusStatusApproaching NexusStatus = "approaching"
	NexusStatusHasNexus    NexusStatus = "has_nexus"
)

// NexusType records which conditions established the obligation.
type NexusType string

const (
	NexusTypeNone     NexusType = "none"
	NexusTypePhysical NexusType = "physical"
	NexusTypeEconomic NexusType = "economic"
	NexusTypeBoth     NexusType = "both"
)

// NexusRecord is the determination for one jurisdiction-year. Records are
// immutable once the year is evaluated; later years never rewrite them.
type NexusRecord struct {
	JurisdictionCode string      `json:"jurisdiction_code"`
	Year             int         `json:"year"`
	Status           NexusStatus `json:"status"`
	Type             NexusType   `json:"type"`

	// NexusDate is the exact trigger date in the year nexus was first
	// established, and January 1 in subsequent carried-forward years.
	NexusDate *time.Time `json:"nexus_date,omitempty"`
	// TriggerRowIndex points at the input row that crossed the threshold,
	// when the trigger was economic.
	TriggerRowIndex *int `json:"trigger_row_index,omitempty"`

	YearEndRevenue          decimal.Decimal `json:"year_end_revenue"`
	YearEndTransactionCount int             `json:"year_end_transaction_count"`
	// ThresholdPercent is the higher of revenue and count progress toward
	// the economic threshold at year end (1.0 = exactly at threshold).
	ThresholdPercent decimal.Decimal `json:"threshold_percent"`

	// Sticky marks a year whose obligation is carried forward from an
	// earlier establishing year rather than triggered fresh.
	Sticky         bool `json:"sticky"`
	FirstNexusYear int  `json:"first_nexus_year,omitempty"` // 0 = never established
	CountEstimated bool `json:"count_estimated,omitempty"`
}

// HasNexus reports whether this year carries a filing obligation.
func (n NexusRecord) HasNexus() bool {
	return n.Status == NexusStatusHasNexus
}
