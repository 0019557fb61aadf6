// Package transform defines the transformation pass contract and the passes adapting origin
// and generated-layer units to each other.
package transform

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/unify/classifier"
	"github.com/viant/unify/config"
	"github.com/viant/unify/correspondence"
	"github.com/viant/unify/inspector/java"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/refactor"
	"github.com/viant/unify/source"
)

// Pass is a source-to-source transformation applied unit by unit
type Pass interface {
	Name() string
	// ApplicableUnits selects the units the pass rewrites
	ApplicableUnits(units []*source.Unit) []*source.Unit
	// Apply rewrites one unit in place
	Apply(unit *source.Unit) (*Result, error)
	// Parallel returns true if Apply only touches the supplied unit
	Parallel() bool
}

// Preparer is implemented by passes that need the whole unit set before applying
type Preparer interface {
	Prepare(units []*source.Unit) error
}

// Result counts edits made to a unit
type Result struct {
	Unit      string
	Renamed   int
	Removed   int
	Rewritten int
	Added     int
	// Flagged lists isolated problems that did not prevent the unit from being rewritten
	Flagged []string
	Changes []*refactor.Change
}

// Changed returns true if any edit was made
func (r *Result) Changed() bool {
	return r.Renamed+r.Removed+r.Rewritten+r.Added > 0
}

func (r *Result) flag(format string, args ...interface{}) {
	r.Flagged = append(r.Flagged, fmt.Sprintf(format, args...))
}

// ErrInvariant marks a violated cross-cutting structural invariant
var ErrInvariant = errors.New("structural invariant violation")

// UnitError reports a unit skipped by a pass
type UnitError struct {
	Unit   string
	Pass   string
	Reason string
	Err    error
}

func (e *UnitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Pass, e.Unit, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pass, e.Unit, e.Reason)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

func unitError(pass Pass, unit *source.Unit, err error, format string, args ...interface{}) *UnitError {
	return &UnitError{Unit: unit.Identity(), Pass: pass.Name(), Reason: fmt.Sprintf(format, args...), Err: err}
}

// Env carries collaborators shared by passes
type Env struct {
	Config     *config.Config
	Resolver   *correspondence.Resolver
	Refactorer *refactor.Refactorer
	Emitter    *java.Emitter
	Logger     *slog.Logger

	mux      sync.Mutex
	retained map[string]string
}

// NewEnv creates pass environment
func NewEnv(cfg *config.Config, resolver *correspondence.Resolver, logger *slog.Logger) *Env {
	if logger == nil {
		logger = slog.Default()
	}
	return &Env{
		Config:     cfg,
		Resolver:   resolver,
		Refactorer: &refactor.Refactorer{},
		Emitter:    java.NewEmitter(),
		Logger:     logger,
		retained:   map[string]string{},
	}
}

// retain keeps field of class from removal, the first reason wins
func (e *Env) retain(class namepath.Path, field, reason string) {
	e.mux.Lock()
	defer e.mux.Unlock()
	key := class.Append(field).String()
	if _, ok := e.retained[key]; !ok {
		e.retained[key] = reason
	}
}

// retainedReason returns why field of class is kept
func (e *Env) retainedReason(class namepath.Path, field string) (string, bool) {
	e.mux.Lock()
	defer e.mux.Unlock()
	reason, ok := e.retained[class.Append(field).String()]
	return reason, ok
}

// Groups partitions units using configured namespaces; membership follows current unit identities
func (e *Env) Groups(units []*source.Unit) *classifier.Groups {
	return classifier.Partition(units, e.Config.GeneratedPath(), e.Config.WrapperPath(), e.Config.DatatypePath())
}

// Passes returns passes in execution order
func Passes(env *Env) []Pass {
	passes := []Pass{
		NewFieldEncapsulation(env),
		NewMemberRemoval(env),
		NewInheritanceRewrite(env),
		NewInterfaceRetention(env),
		NewImportRedirection(env),
		NewFactoryDisambiguation(env),
	}
	if env.Config.Passes.DefaultConstructors {
		passes = append(passes, NewDefaultConstructor(env))
	}
	return passes
}

// classes returns class declarations of unit with their nesting depth, top level ones have depth 1
func classes(unit *source.Unit, topLevelOnly bool) []*classDecl {
	var result []*classDecl
	for _, qualified := range unit.Declarations() {
		if !qualified.Decl.IsClass() || qualified.Decl.Raw != "" || (topLevelOnly && !qualified.TopLevel) {
			continue
		}
		result = append(result, &classDecl{Qualified: qualified, depth: qualified.Name.Len() - unit.Namespace.Len()})
	}
	return result
}

type classDecl struct {
	*source.Qualified
	depth int
}
