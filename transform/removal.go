package transform

import (
	"github.com/viant/unify/source"
)

// MemberRemoval drops origin fields represented by a metamodel feature together with their accessors;
// the generated layer provides the state and accessors through the inheritance chain.
// Fields kept by encapsulation are flagged and left in place.
type MemberRemoval struct {
	env *Env
}

func NewMemberRemoval(env *Env) *MemberRemoval {
	return &MemberRemoval{env: env}
}

func (p *MemberRemoval) Name() string { return "MemberRemoval" }

func (p *MemberRemoval) Parallel() bool { return true }

func (p *MemberRemoval) ApplicableUnits(units []*source.Unit) []*source.Unit {
	return p.env.Groups(units).Origin
}

func (p *MemberRemoval) Apply(unit *source.Unit) (*Result, error) {
	result := &Result{Unit: unit.Identity()}
	for _, class := range classes(unit, false) {
		decl := class.Decl
		var removed []string
		for _, field := range append([]*source.Field{}, decl.Fields...) {
			if field.Modifiers.Static || field.Modifiers.Visibility == source.Public {
				continue
			}
			if p.env.Resolver.OriginFeature(class.Name, field.Name) == nil {
				continue
			}
			if reason, kept := p.env.retainedReason(class.Name, field.Name); kept {
				result.flag("field %v.%v not removed: %s", decl.Name, field.Name, reason)
				continue
			}
			if decl.RemoveField(field.Name) {
				removed = append(removed, field.Name)
				result.Removed++
			}
		}
		for _, name := range removed {
			for _, accessor := range AccessorNames(name) {
				for _, method := range decl.MethodsNamed(accessor) {
					decl.RemoveMethod(method)
					result.Removed++
				}
			}
			p.env.Logger.Debug("field removed", "pass", p.Name(), "class", class.Name.String(), "field", name)
		}
	}
	return result, nil
}
