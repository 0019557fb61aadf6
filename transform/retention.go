package transform

import (
	"strings"

	"github.com/viant/unify/source"
)

// InterfaceRetention qualifies superinterface references of model implementations and their
// interfaces, so later import changes cannot rebind them
type InterfaceRetention struct {
	env   *Env
	units []*source.Unit
}

func NewInterfaceRetention(env *Env) *InterfaceRetention {
	return &InterfaceRetention{env: env}
}

func (p *InterfaceRetention) Name() string { return "InterfaceRetention" }

func (p *InterfaceRetention) Parallel() bool { return true }

func (p *InterfaceRetention) Prepare(units []*source.Unit) error {
	p.units = units
	return nil
}

func (p *InterfaceRetention) ApplicableUnits(units []*source.Unit) []*source.Unit {
	named := byName(units)
	var result []*source.Unit
	seen := map[*source.Unit]bool{}
	for _, impl := range p.env.implementations(units) {
		candidates := []*source.Unit{impl, named[p.env.Resolver.InterfaceOf(impl.FullName()).String()]}
		for _, candidate := range candidates {
			if candidate != nil && !seen[candidate] {
				seen[candidate] = true
				result = append(result, candidate)
			}
		}
	}
	return result
}

func (p *InterfaceRetention) Apply(unit *source.Unit) (*Result, error) {
	result := &Result{Unit: unit.Identity()}
	for _, decl := range unit.Types {
		if decl.Raw != "" {
			continue
		}
		for i, ref := range decl.SuperInterfaces {
			base := source.BaseType(ref)
			if strings.Contains(base, ".") || base == decl.Name || base == p.env.Config.ReflectiveBaseType {
				continue
			}
			qualified, ok := qualify(unit, base, p.units)
			if !ok {
				result.flag("superinterface %v of %v unresolved", base, decl.Name)
				continue
			}
			decl.SuperInterfaces[i] = qualified.String() + strings.TrimSpace(ref)[len(base):]
			result.Rewritten++
		}
	}
	return result, nil
}
