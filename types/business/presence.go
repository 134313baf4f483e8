package business

import "time"

// PhysicalPresence is a declared physical footprint in a jurisdiction:
// an office, employee, warehouse or stored inventory. Any overlap with an
// analysis year establishes nexus for that year regardless of sales volume.
type PhysicalPresence struct {
	JurisdictionCode string     `json:"jurisdiction_code"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"` // nil = ongoing
	PresenceType     string     `json:"presence_type"`      // "office", "employee", "inventory", ...
	Active           bool       `json:"active"`
}

// Valid reports whether the declaration is internally consistent.
func (p PhysicalPresence) Valid() bool {
	if p.StartDate.IsZero() {
		return false
	}
	return p.EndDate == nil || p.EndDate.After(p.StartDate)
}

// OverlapsRange reports whether the presence was in effect at any point
// within [start, end].
func (p PhysicalPresence) OverlapsRange(start, end time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartDate.After(end) {
		return false
	}
	return p.EndDate == nil || !p.EndDate.Before(start)
}
