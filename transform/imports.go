package transform

import (
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// ImportRedirection replaces imports of model types that have an origin counterpart with the
// origin type import, in model implementations and their paired interfaces. Edits are planned for
// all units first and applied afterwards.
type ImportRedirection struct {
	env   *Env
	plans map[*source.Unit][]*redirect
}

type redirect struct {
	unit *source.Unit
	from namepath.Path
	to   namepath.Path
}

func NewImportRedirection(env *Env) *ImportRedirection {
	return &ImportRedirection{env: env}
}

func (p *ImportRedirection) Name() string { return "ImportRedirection" }

// Parallel returns false, paired interface units are edited together with their implementation
func (p *ImportRedirection) Parallel() bool { return false }

func (p *ImportRedirection) ApplicableUnits(units []*source.Unit) []*source.Unit {
	return p.env.implementations(units)
}

// Prepare plans redirections for every applicable unit
func (p *ImportRedirection) Prepare(units []*source.Unit) error {
	named := byName(units)
	p.plans = map[*source.Unit][]*redirect{}
	for _, impl := range p.env.implementations(units) {
		targets := []*source.Unit{impl}
		if iface := named[p.env.Resolver.InterfaceOf(impl.FullName()).String()]; iface != nil {
			targets = append(targets, iface)
		}
		for _, target := range targets {
			p.plans[impl] = append(p.plans[impl], p.plan(target)...)
		}
	}
	return nil
}

// plan returns problematic imports of unit: single type imports whose stripped name resolves in the metamodel
func (p *ImportRedirection) plan(unit *source.Unit) []*redirect {
	var result []*redirect
	for _, anImport := range unit.Imports {
		if anImport.OnDemand || anImport.Static || !p.env.Resolver.HasCounterpart(anImport.Path) {
			continue
		}
		origin, ok := p.env.Resolver.OriginName(anImport.Path)
		if !ok {
			continue
		}
		result = append(result, &redirect{unit: unit, from: anImport.Path, to: origin})
	}
	return result
}

func (p *ImportRedirection) Apply(unit *source.Unit) (*Result, error) {
	result := &Result{Unit: unit.Identity()}
	plan := p.plans[unit]
	for _, edit := range plan {
		if !edit.unit.HasImport(edit.from) {
			return result, unitError(p, unit, ErrInvariant, "import %v expected in %v is absent", edit.from, edit.unit.Identity())
		}
	}
	for _, edit := range plan {
		edit.unit.RemoveImport(edit.from)
		edit.unit.AddImport(edit.to)
		result.Rewritten++
	}
	return result, nil
}
