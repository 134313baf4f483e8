package rules

import (
	"sort"
	"strings"
	"time"

	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/pkg/errors"
)

// Catalog is an in-memory Source backed by versioned rule rows. A
// jurisdiction may carry several rows with different effective ranges;
// lookups pick the newest row in force on the requested date.
type Catalog struct {
	rows map[string][]business.JurisdictionRules
}

// NewCatalog builds a catalog from rule rows, validating each row.
// Jurisdiction codes are normalized to upper case.
func NewCatalog(rows []business.JurisdictionRules) (*Catalog, error) {
	c := &Catalog{rows: make(map[string][]business.JurisdictionRules)}

	for i, row := range rows {
		if err := validateRow(row); err != nil {
			return nil, errors.Wrapf(err, "rule row %d (%s)", i, row.JurisdictionCode)
		}
		code := strings.ToUpper(strings.TrimSpace(row.JurisdictionCode))
		row.JurisdictionCode = code
		c.rows[code] = append(c.rows[code], row)
	}

	// Newest effective row first, so lookups can take the first match.
	for code := range c.rows {
		versions := c.rows[code]
		sort.Slice(versions, func(i, j int) bool {
			return versions[i].EffectiveFrom.After(versions[j].EffectiveFrom)
		})
		c.rows[code] = versions
	}

	return c, nil
}

func validateRow(row business.JurisdictionRules) error {
	if strings.TrimSpace(row.JurisdictionCode) == "" {
		return errors.New("jurisdiction code is required")
	}
	if row.EffectiveFrom.IsZero() {
		return errors.New("effective from date is required")
	}
	if row.EffectiveTo != nil && !row.EffectiveTo.After(row.EffectiveFrom) {
		return errors.New("effective to must be after effective from")
	}
	if row.RevenueThreshold != nil && row.RevenueThreshold.IsNegative() {
		return errors.New("revenue threshold cannot be negative")
	}
	if row.TransactionThreshold != nil && *row.TransactionThreshold < 0 {
		return errors.New("transaction threshold cannot be negative")
	}
	switch row.ThresholdOperator {
	case business.OperatorOr, business.OperatorAnd:
	case "":
		if row.HasEconomicTest() {
			return errors.New("threshold operator is required when thresholds are set")
		}
	default:
		return errors.Errorf("unknown threshold operator %q", row.ThresholdOperator)
	}
	switch row.ThresholdSalesBasis {
	case business.BasisGross, business.BasisTaxable:
	case "":
		if row.HasEconomicTest() {
			return errors.New("threshold sales basis is required when thresholds are set")
		}
	default:
		return errors.Errorf("unknown sales basis %q", row.ThresholdSalesBasis)
	}
	switch row.InterestMethod {
	case business.InterestSimple, business.InterestCompoundMonthly,
		business.InterestCompoundDaily, business.InterestCompoundAnnually, "":
	default:
		return errors.Errorf("unknown interest method %q", row.InterestMethod)
	}
	if row.CombinedTaxRate.IsNegative() || row.InterestRate.IsNegative() {
		return errors.New("rates cannot be negative")
	}
	return nil
}

// EffectiveRules implements Source.
func (c *Catalog) EffectiveRules(jurisdictionCode string, asOf time.Time) (*business.JurisdictionRules, error) {
	code := strings.ToUpper(strings.TrimSpace(jurisdictionCode))
	versions, ok := c.rows[code]
	if !ok {
		return nil, errors.Wrap(ErrNoRules, code)
	}

	for i := range versions {
		if versions[i].EffectiveAt(asOf) {
			row := versions[i]
			return &row, nil
		}
	}

	// The jurisdiction is known but no row covers the requested date
	// (e.g. a date before the state adopted economic nexus). Treated the
	// same as unknown so the engine degrades instead of guessing.
	return nil, errors.Wrapf(ErrNoRules, "%s as of %s", code, asOf.Format("2006-01-02"))
}

// Jurisdictions implements Source.
func (c *Catalog) Jurisdictions() []string {
	codes := make([]string, 0, len(c.rows))
	for code := range c.rows {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
