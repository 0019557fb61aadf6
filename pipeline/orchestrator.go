// Package pipeline runs transformation passes over the whole unit set in a fixed order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/unify/config"
	"github.com/viant/unify/correspondence"
	"github.com/viant/unify/metamodel"
	"github.com/viant/unify/repository"
	"github.com/viant/unify/source"
	"github.com/viant/unify/transform"
	"golang.org/x/sync/errgroup"
)

// PreconditionError aborts a run before any pass is applied
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("precondition failed: %s: %v", e.Reason, e.Err)
	}
	return "precondition failed: " + e.Reason
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Orchestrator sequences passes, isolates unit failures and aggregates them into a report
type Orchestrator struct {
	config   *config.Config
	model    *metamodel.Model
	logger   *slog.Logger
	detector *repository.Detector
	passes   func(env *transform.Env) []transform.Pass
	flush    func(ctx context.Context, units []*source.Unit) (*repository.FlushResult, error)
	notify   func(ctx context.Context) error
}

// Option configures orchestrator
type Option func(o *Orchestrator)

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithDetector sets project detector
func WithDetector(detector *repository.Detector) Option {
	return func(o *Orchestrator) {
		o.detector = detector
	}
}

// WithPasses overrides the pass sequence
func WithPasses(passes func(env *transform.Env) []transform.Pass) Option {
	return func(o *Orchestrator) {
		o.passes = passes
	}
}

// WithFlush sets a function writing units once all passes completed
func WithFlush(flush func(ctx context.Context, units []*source.Unit) (*repository.FlushResult, error)) Option {
	return func(o *Orchestrator) {
		o.flush = flush
	}
}

// WithRebuildHook sets a function invoked once after the run
func WithRebuildHook(notify func(ctx context.Context) error) Option {
	return func(o *Orchestrator) {
		o.notify = notify
	}
}

// New creates an orchestrator
func New(cfg *config.Config, model *metamodel.Model, options ...Option) *Orchestrator {
	ret := &Orchestrator{config: cfg, model: model, passes: transform.Passes}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.detector == nil {
		ret.detector = repository.NewDetector(afs.New())
	}
	return ret
}

// Run applies all passes to units. Only precondition failures return an error; unit failures are reported.
func (o *Orchestrator) Run(ctx context.Context, units []*source.Unit) (*Report, error) {
	project, err := o.checkPreconditions(ctx)
	if err != nil {
		o.logger.Error("pipeline aborted", "error", err)
		return nil, err
	}
	report := NewReport()
	report.Project = project.Name
	o.logger.Info("pipeline.start", "run", report.RunID, "project", project.Name, "units", len(units))

	resolver := correspondence.New(metamodel.NewIndex(o.model), o.config)
	env := transform.NewEnv(o.config, resolver, o.logger)
	for _, pass := range o.passes(env) {
		o.runPass(pass, units, report)
	}
	if o.flush != nil {
		result, err := o.flush(ctx, units)
		if result != nil {
			report.Written = result.Written
			report.Deleted = result.Deleted
		}
		if err != nil {
			o.logger.Error("flush failed", "error", err)
			report.Errors = append(report.Errors, err.Error())
		}
	}
	if o.notify != nil {
		if err := o.notify(ctx); err != nil {
			o.logger.Error("rebuild notification failed", "error", err)
			report.Errors = append(report.Errors, err.Error())
		}
	}
	report.finish()
	o.logger.Info("pipeline.finish", "run", report.RunID, "skipped", len(report.Skipped), "elapsed", report.Elapsed)
	return report, nil
}

func (o *Orchestrator) checkPreconditions(ctx context.Context) (*repository.Project, error) {
	if o.config == nil {
		return nil, &PreconditionError{Reason: "configuration is missing"}
	}
	if err := o.config.Validate(); err != nil {
		return nil, &PreconditionError{Reason: "invalid configuration", Err: err}
	}
	if o.model == nil || o.model.Root == nil {
		return nil, &PreconditionError{Reason: "metamodel is missing"}
	}
	if o.model.Location == "" {
		return nil, &PreconditionError{Reason: "metamodel is not saved"}
	}
	project, err := o.detector.DetectProject(ctx, o.model.Location)
	if err != nil {
		return nil, &PreconditionError{Reason: "project is missing", Err: err}
	}
	return project, nil
}

func (o *Orchestrator) workers() int {
	if o.config.Workers > 0 {
		return o.config.Workers
	}
	return runtime.NumCPU()
}

func (o *Orchestrator) runPass(pass transform.Pass, units []*source.Unit, report *Report) {
	started := time.Now()
	stats := report.pass(pass.Name())
	if preparer, ok := pass.(transform.Preparer); ok {
		if err := preparer.Prepare(units); err != nil {
			o.logger.Error("pass.prepare", "pass", pass.Name(), "error", err)
			report.Skipped = append(report.Skipped, &Issue{Pass: pass.Name(), Unit: "*", Reason: err.Error(), Severe: true})
			return
		}
	}
	applicable := pass.ApplicableUnits(units)
	stats.Units = len(applicable)
	o.logger.Info("pass.start", "pass", pass.Name(), "units", len(applicable), "parallel", pass.Parallel())

	var mux sync.Mutex
	record := func(unit *source.Unit, result *transform.Result, err error) {
		mux.Lock()
		defer mux.Unlock()
		o.record(pass, unit, result, err, stats, report)
	}
	if pass.Parallel() {
		g := new(errgroup.Group)
		g.SetLimit(o.workers())
		for _, unit := range applicable {
			g.Go(func() error {
				result, err := o.apply(pass, unit)
				record(unit, result, err)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, unit := range applicable {
			result, err := o.apply(pass, unit)
			record(unit, result, err)
		}
	}
	stats.Elapsed = time.Since(started)
	o.logger.Info("pass.finish", "pass", pass.Name(), "units", len(applicable), "elapsed", stats.Elapsed)
}

// apply isolates a unit failure, a panic included
func (o *Orchestrator) apply(pass transform.Pass, unit *source.Unit) (result *transform.Result, err error) {
	identity := unit.Identity()
	defer func() {
		if r := recover(); r != nil {
			err = &transform.UnitError{Unit: identity, Pass: pass.Name(), Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()
	return pass.Apply(unit)
}

func (o *Orchestrator) record(pass transform.Pass, unit *source.Unit, result *transform.Result, err error, stats *PassStats, report *Report) {
	identity := unit.Identity()
	if result != nil && result.Unit != "" {
		identity = result.Unit
	}
	if err != nil {
		severe := errors.Is(err, transform.ErrInvariant)
		if severe {
			o.logger.Error("invariant violated", "pass", pass.Name(), "unit", identity, "error", err)
		} else {
			o.logger.Warn("unit skipped", "pass", pass.Name(), "unit", identity, "error", err)
		}
		report.Skipped = append(report.Skipped, &Issue{Pass: pass.Name(), Unit: identity, Reason: reason(err), Severe: severe})
		return
	}
	if result == nil {
		return
	}
	stats.Renamed += result.Renamed
	stats.Removed += result.Removed
	stats.Rewritten += result.Rewritten
	stats.Added += result.Added
	for _, flagged := range result.Flagged {
		o.logger.Warn("unit flagged", "pass", pass.Name(), "unit", identity, "reason", flagged)
		report.Flagged = append(report.Flagged, &Issue{Pass: pass.Name(), Unit: identity, Reason: flagged})
	}
	if result.Changed() {
		o.logger.Debug("unit rewritten", "pass", pass.Name(), "unit", identity)
	}
}

func reason(err error) string {
	var unitErr *transform.UnitError
	if errors.As(err, &unitErr) {
		if unitErr.Err != nil {
			return unitErr.Reason + ": " + unitErr.Err.Error()
		}
		return unitErr.Reason
	}
	return err.Error()
}
