package business

import "fmt"

// WarningCode classifies an engine disclosure. Every assumption, fallback
// or rejected input the engine makes is surfaced as a Warning on the run
// result rather than silently applied.
type WarningCode string

const (
	WarningRowRejected         WarningCode = "row_rejected"
	WarningMissingRules        WarningCode = "missing_rules"
	WarningRateFallbackApplied WarningCode = "rate_fallback_applied"
	WarningCountEstimated      WarningCode = "count_estimated"
	WarningUnknownDefaulted    WarningCode = "unknown_default_applied"
	WarningVDAConfigError      WarningCode = "vda_config_error"
	WarningPresenceInvalid     WarningCode = "presence_invalid"
)

// Warning is a structured disclosure attached to an analysis run.
// Year 0 and RowIndex -1 mean "not applicable".
type Warning struct {
	Code             WarningCode `json:"code"`
	JurisdictionCode string      `json:"jurisdiction_code,omitempty"`
	Year             int         `json:"year,omitempty"`
	RowIndex         int         `json:"row_index"`
	Message          string      `json:"message"`
}

// NewWarning builds a warning not tied to a specific input row.
func NewWarning(code WarningCode, jurisdiction string, year int, format string, args ...interface{}) Warning {
	return Warning{
		Code:             code,
		JurisdictionCode: jurisdiction,
		Year:             year,
		RowIndex:         -1,
		Message:          fmt.Sprintf(format, args...),
	}
}

// NewRowWarning builds a warning tied to a specific input row.
func NewRowWarning(code WarningCode, jurisdiction string, rowIndex int, format string, args ...interface{}) Warning {
	return Warning{
		Code:             code,
		JurisdictionCode: jurisdiction,
		RowIndex:         rowIndex,
		Message:          fmt.Sprintf(format, args...),
	}
}
