package business

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel identifies how a sale was made. Marketplace sales are remitted
// by the facilitator and are treated differently for both threshold
// counting and liability exposure.
type Channel string

const (
	ChannelDirect      Channel = "direct"
	ChannelMarketplace Channel = "marketplace"
)

// Transaction is a single normalized sales ledger row. Upstream intake has
// already resolved file formats and exemption amounts; the engine consumes
// the resolved values and never mutates them.
type Transaction struct {
	JurisdictionCode string          `json:"jurisdiction_code"`
	Date             time.Time       `json:"date"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	Channel          Channel         `json:"channel"`
	// Aggregated marks a pre-summed row (e.g. one line per month) that
	// carries no per-transaction count of its own.
	Aggregated bool `json:"aggregated"`
	// RowIndex is the position in the original input, used for stable
	// ordering of same-day rows and for row-level warnings.
	RowIndex int `json:"row_index"`
}

// Year returns the calendar analysis year the row falls into.
func (t Transaction) Year() int {
	return t.Date.Year()
}
