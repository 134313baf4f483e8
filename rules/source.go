package rules

import (
	"time"

	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/pkg/errors"
)

// ErrNoRules is returned when a source has no research row for a
// jurisdiction. The engine treats it as a degraded (manual review)
// jurisdiction, never as a run failure.
var ErrNoRules = errors.New("no rules available for jurisdiction")

// Source supplies effective-dated nexus rules to the engine. The engine
// only ever reads; maintaining the research data is the caller's problem.
type Source interface {
	// EffectiveRules returns the rule row in force for the jurisdiction
	// on the given date. Returns ErrNoRules when the jurisdiction is not
	// covered by the source at all.
	EffectiveRules(jurisdictionCode string, asOf time.Time) (*business.JurisdictionRules, error)

	// Jurisdictions lists every code the source has research for.
	Jurisdictions() []string
}
