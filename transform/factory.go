package transform

import (
	"github.com/viant/unify/refactor"
	"github.com/viant/unify/source"
)

// FactoryDisambiguation renames generated factories without a metamodel counterpart, except the
// factory of the generated-layer root namespace
type FactoryDisambiguation struct {
	env   *Env
	units []*source.Unit
}

func NewFactoryDisambiguation(env *Env) *FactoryDisambiguation {
	return &FactoryDisambiguation{env: env}
}

func (p *FactoryDisambiguation) Name() string { return "FactoryDisambiguation" }

// Parallel returns false, renames edit every unit referring to the factory
func (p *FactoryDisambiguation) Parallel() bool { return false }

func (p *FactoryDisambiguation) Prepare(units []*source.Unit) error {
	p.units = units
	return nil
}

func (p *FactoryDisambiguation) ApplicableUnits(units []*source.Unit) []*source.Unit {
	resolver := p.env.Resolver
	var result []*source.Unit
	for _, unit := range p.env.Groups(units).Generated {
		if unit.Root() == nil {
			continue
		}
		name := unit.FullName()
		if resolver.IsFactory(name) && !resolver.Counterpart(name) && !resolver.IsRootFactory(name) {
			result = append(result, unit)
		}
	}
	return result
}

func (p *FactoryDisambiguation) Apply(unit *source.Unit) (*Result, error) {
	result := &Result{Unit: unit.Identity()}
	name := unit.FullName()
	op := &refactor.Rename{From: name, NewName: name.LastSegment() + p.env.Config.FactoryRenameSuffix}
	change, err := p.env.Refactorer.Perform(op, p.units)
	if err != nil {
		return result, unitError(p, unit, err, "rename rejected")
	}
	result.Renamed++
	result.Changes = append(result.Changes, change)
	p.env.Logger.Info("factory renamed", "pass", p.Name(), "from", change.From.String(), "to", change.To.String(), "edits", len(change.Edits))
	return result, nil
}
