package transform

import (
	"github.com/viant/unify/source"
)

// DefaultConstructor adds a public zero-argument constructor to top level origin classes;
// generated factories instantiate model objects through it
type DefaultConstructor struct {
	env *Env
}

func NewDefaultConstructor(env *Env) *DefaultConstructor {
	return &DefaultConstructor{env: env}
}

func (p *DefaultConstructor) Name() string { return "DefaultConstructor" }

func (p *DefaultConstructor) Parallel() bool { return true }

func (p *DefaultConstructor) ApplicableUnits(units []*source.Unit) []*source.Unit {
	return p.env.Groups(units).Origin
}

func (p *DefaultConstructor) Apply(unit *source.Unit) (*Result, error) {
	result := &Result{Unit: unit.Identity()}
	for _, class := range classes(unit, true) {
		if class.Decl.HasZeroArgConstructor() {
			continue
		}
		class.Decl.AddMethod(&source.Method{
			Modifiers:   source.Modifiers{Visibility: source.Public},
			Name:        class.Decl.Name,
			Body:        p.env.Emitter.Block(class.depth),
			Constructor: true,
		})
		result.Added++
	}
	return result, nil
}
