package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/markmiedema/nexuscheck-sub011/constants"
	"github.com/markmiedema/nexuscheck-sub011/helpers"
	"github.com/markmiedema/nexuscheck-sub011/logger"
	"github.com/markmiedema/nexuscheck-sub011/metrics"
	"github.com/markmiedema/nexuscheck-sub011/rules"
	"github.com/markmiedema/nexuscheck-sub011/types/api/params"
	"github.com/markmiedema/nexuscheck-sub011/types/api/responses"
	"github.com/markmiedema/nexuscheck-sub011/types/business"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnalysisEngine runs the complete nexus determination and liability
// calculation for a transaction history: jurisdictions fan out across a
// bounded worker pool, years within a jurisdiction run strictly in order,
// and one jurisdiction's failure never takes down its siblings.
type AnalysisEngine struct {
	rules      rules.Source
	ledger     *LedgerBuilder
	evaluator  *NexusEvaluator
	calculator *LiabilityCalculator
	vda        *VDAModeler
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// Option configures an AnalysisEngine.
type Option func(*AnalysisEngine)

// WithMetrics attaches Prometheus collectors to the engine.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *AnalysisEngine) {
		e.metrics = m
	}
}

// WithLogger overrides the engine's logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *AnalysisEngine) {
		e.logger = l
	}
}

// NewAnalysisEngine creates an analysis engine backed by the given rule
// source.
func NewAnalysisEngine(source rules.Source, opts ...Option) (*AnalysisEngine, error) {
	if source == nil {
		return nil, errors.New("rule source is required")
	}

	calculator := NewLiabilityCalculator()
	engine := &AnalysisEngine{
		rules:      source,
		ledger:     NewLedgerBuilder(),
		evaluator:  NewNexusEvaluator(),
		calculator: calculator,
		vda:        NewVDAModeler(calculator),
		logger:     logger.Log,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

// Run executes one analysis over the given period. The record sets in the
// result are a pure function of the inputs; only RunID and GeneratedAt
// differ between identical runs.
func (e *AnalysisEngine) Run(ctx context.Context, p params.AnalysisParams) (*responses.AnalysisResult, error) {
	start := time.Now()

	if p.PeriodStart.IsZero() || p.PeriodEnd.IsZero() {
		return nil, errors.New("analysis period start and end are required")
	}
	if !p.PeriodEnd.After(p.PeriodStart) {
		return nil, errors.New("analysis period end must be after start")
	}

	opts := p.Options.Normalized()
	runID := uuid.New()
	e.metrics.IncrementAnalyses()

	e.logger.Info("Starting nexus analysis",
		zap.String("run_id", runID.String()),
		zap.Time("period_start", p.PeriodStart),
		zap.Time("period_end", p.PeriodEnd),
		zap.Int("transactions", len(p.Transactions)),
		zap.Int("workers", opts.Workers))

	valid, warnings := e.ledger.ValidateTransactions(p.Transactions)
	rowsRejected := len(warnings)
	e.metrics.AddRowsRejected(rowsRejected)

	txByJurisdiction := make(map[string][]business.Transaction)
	for _, tx := range valid {
		code := strings.ToUpper(strings.TrimSpace(tx.JurisdictionCode))
		tx.JurisdictionCode = code
		txByJurisdiction[code] = append(txByJurisdiction[code], tx)
	}

	presenceByJurisdiction := make(map[string][]business.PhysicalPresence)
	for _, presence := range p.Presence {
		code := strings.ToUpper(strings.TrimSpace(presence.JurisdictionCode))
		if code == "" || !presence.Valid() {
			warnings = append(warnings, business.NewWarning(
				business.WarningPresenceInvalid, code, 0,
				"physical presence entry rejected: inconsistent dates or missing jurisdiction"))
			continue
		}
		presence.JurisdictionCode = code
		presenceByJurisdiction[code] = append(presenceByJurisdiction[code], presence)
	}

	// Presence-only jurisdictions still get analyzed: a warehouse with no
	// sales is exactly the case physical nexus exists for.
	codes := make([]string, 0, len(txByJurisdiction))
	for code := range txByJurisdiction {
		codes = append(codes, code)
	}
	for code := range presenceByJurisdiction {
		if _, ok := txByJurisdiction[code]; !ok {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	analyses := make([]responses.JurisdictionAnalysis, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			analyses[i] = e.analyzeJurisdiction(gctx, code,
				txByJurisdiction[code], presenceByJurisdiction[code], p, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "analysis aborted")
	}

	result := &responses.AnalysisResult{
		RunID:         runID,
		GeneratedAt:   time.Now().UTC(),
		PeriodStart:   p.PeriodStart,
		PeriodEnd:     p.PeriodEnd,
		Jurisdictions: analyses,
		Warnings:      warnings,
		Totals:        buildRunTotals(analyses, rowsRejected),
	}

	e.metrics.ObserveAnalysis(start)
	e.logger.Info("Nexus analysis complete",
		zap.String("run_id", runID.String()),
		zap.Int("jurisdictions", len(analyses)),
		zap.Int("jurisdictions_with_nexus", result.Totals.JurisdictionsWithNexus),
		zap.String("total_liability", helpers.FormatMoney(result.Totals.TotalLiability, constants.USDCurrency)),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

func (e *AnalysisEngine) analyzeJurisdiction(
	ctx context.Context,
	code string,
	txns []business.Transaction,
	presence []business.PhysicalPresence,
	p params.AnalysisParams,
	opts params.EngineOptions,
) responses.JurisdictionAnalysis {
	analysis := responses.JurisdictionAnalysis{JurisdictionCode: code}

	rule, err := e.rules.EffectiveRules(code, p.PeriodEnd)
	if err != nil {
		if errors.Is(err, rules.ErrNoRules) {
			e.metrics.IncrementDegraded()
			e.logger.Warn("No nexus rules on file for jurisdiction",
				zap.String("jurisdiction", code))
			analysis.Warnings = append(analysis.Warnings, business.NewWarning(
				business.WarningMissingRules, code, 0,
				"no nexus rules on file; manual review required"))
			analysis.Summary = summarizeJurisdiction(analysis)
			return analysis
		}
		e.metrics.IncrementFailed()
		e.logger.Error("Rule lookup failed",
			zap.String("jurisdiction", code),
			zap.Error(err))
		analysis.Err = err.Error()
		analysis.Summary = summarizeJurisdiction(analysis)
		return analysis
	}

	analysis.RulesAvailable = true
	analysis.JurisdictionName = rule.Name

	ledgers, ledgerWarnings := e.ledger.BuildLedgers(code, txns, rule, p.PeriodStart, p.PeriodEnd, opts)
	analysis.Warnings = append(analysis.Warnings, ledgerWarnings...)

	analysis.NexusRecords = e.evaluator.EvaluateJurisdiction(ledgers, rule, presence, opts)

	for i, ledger := range ledgers {
		if err := ctx.Err(); err != nil {
			e.metrics.IncrementFailed()
			analysis.Err = err.Error()
			analysis.Summary = summarizeJurisdiction(analysis)
			return analysis
		}

		record, warns := e.calculator.CalculateYear(ledger, analysis.NexusRecords[i], rule, p.PeriodEnd, opts)
		analysis.Warnings = append(analysis.Warnings, warns...)
		if record != nil {
			analysis.LiabilityRecords = append(analysis.LiabilityRecords, *record)
		}
	}

	if !opts.SkipVDA {
		vda, warns := e.vda.ModelVDA(ledgers, analysis.NexusRecords, analysis.LiabilityRecords,
			rule, p.PeriodStart, p.PeriodEnd, opts)
		analysis.Warnings = append(analysis.Warnings, warns...)
		analysis.VDA = vda
	}

	analysis.Summary = summarizeJurisdiction(analysis)
	e.metrics.IncrementProcessed()
	return analysis
}

func summarizeJurisdiction(analysis responses.JurisdictionAnalysis) responses.JurisdictionSummary {
	summary := responses.JurisdictionSummary{
		NexusType:          business.NexusTypeNone,
		TotalExposureSales: decimal.Zero,
		TotalBaseTax:       decimal.Zero,
		TotalInterest:      decimal.Zero,
		TotalPenalties:     decimal.Zero,
		TotalLiability:     decimal.Zero,
	}

	for _, nexus := range analysis.NexusRecords {
		if !nexus.HasNexus() {
			continue
		}
		summary.YearsWithNexus++
		if summary.FirstNexusYear == 0 {
			summary.FirstNexusYear = nexus.Year
			summary.FirstNexusDate = nexus.NexusDate
			summary.NexusType = nexus.Type
		}
	}

	for _, record := range analysis.LiabilityRecords {
		summary.TotalExposureSales = summary.TotalExposureSales.Add(record.ExposureSales)
		summary.TotalBaseTax = summary.TotalBaseTax.Add(record.BaseTax)
		summary.TotalInterest = summary.TotalInterest.Add(record.Interest)
		summary.TotalPenalties = summary.TotalPenalties.Add(record.PenaltyTotal)
		summary.TotalLiability = summary.TotalLiability.Add(record.Total)
	}

	return summary
}

func buildRunTotals(analyses []responses.JurisdictionAnalysis, rowsRejected int) responses.RunTotals {
	totals := responses.RunTotals{
		JurisdictionsAnalyzed: len(analyses),
		RowsRejected:          rowsRejected,
		TotalLiability:        decimal.Zero,
	}

	for _, analysis := range analyses {
		if !analysis.RulesAvailable && analysis.Err == "" {
			totals.JurisdictionsDegraded++
		}
		if analysis.Summary.YearsWithNexus > 0 {
			totals.JurisdictionsWithNexus++
		}
		totals.TotalLiability = totals.TotalLiability.Add(analysis.Summary.TotalLiability)
	}

	return totals
}
