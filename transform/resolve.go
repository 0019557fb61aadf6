package transform

import (
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// qualify resolves a simple type name as seen from unit: explicit import, then the unit's own
// namespace, then wildcard imports of namespaces present in units
func qualify(unit *source.Unit, simple string, units []*source.Unit) (namepath.Path, bool) {
	if anImport := unit.ImportFor(simple); anImport != nil {
		return anImport.Path, true
	}
	if declares(unit.Namespace, simple, units) {
		return unit.Namespace.Append(simple), true
	}
	for _, namespace := range unit.OnDemandImports() {
		if declares(namespace, simple, units) {
			return namespace.Append(simple), true
		}
	}
	return namepath.Path{}, false
}

func declares(namespace namepath.Path, simple string, units []*source.Unit) bool {
	for _, candidate := range units {
		if candidate.Namespace.Equal(namespace) && candidate.Declaration(simple) != nil {
			return true
		}
	}
	return false
}

// byName indexes units by the fully qualified name of their root declaration
func byName(units []*source.Unit) map[string]*source.Unit {
	result := make(map[string]*source.Unit, len(units))
	for _, unit := range units {
		if unit.Root() != nil {
			result[unit.FullName().String()] = unit
		}
	}
	return result
}

// implementations returns generated-layer implementation units whose model interface has a counterpart
func (e *Env) implementations(units []*source.Unit) []*source.Unit {
	var result []*source.Unit
	for _, unit := range e.Groups(units).Generated {
		if unit.Root() == nil {
			continue
		}
		name := unit.FullName()
		if e.Resolver.IsImplementation(name) && e.Resolver.Counterpart(name) {
			result = append(result, unit)
		}
	}
	return result
}
