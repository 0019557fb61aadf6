package transform

import (
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// InheritanceRewrite makes every top level origin class extend its wrapper class
type InheritanceRewrite struct {
	env *Env
}

func NewInheritanceRewrite(env *Env) *InheritanceRewrite {
	return &InheritanceRewrite{env: env}
}

func (p *InheritanceRewrite) Name() string { return "InheritanceRewrite" }

func (p *InheritanceRewrite) Parallel() bool { return true }

func (p *InheritanceRewrite) ApplicableUnits(units []*source.Unit) []*source.Unit {
	return p.env.Groups(units).Origin
}

func (p *InheritanceRewrite) Apply(unit *source.Unit) (*Result, error) {
	result := &Result{Unit: unit.Identity()}
	for _, class := range classes(unit, true) {
		wrapper := WrapperName(p.env.Config.WrapperPath(), unit.Namespace, class.Decl.Name, p.env.Config.WrapperPrefix, p.env.Config.WrapperSuffix)
		if class.Decl.SuperType == wrapper.String() {
			continue
		}
		p.env.Logger.Debug("supertype rewritten", "pass", p.Name(), "class", class.Name.String(), "from", class.Decl.SuperType, "to", wrapper.String())
		class.Decl.SuperType = wrapper.String()
		result.Rewritten++
	}
	return result, nil
}

// WrapperName returns wrapperNamespace.namespace.prefix+name+suffix
func WrapperName(wrapperNamespace, namespace namepath.Path, name, prefix, suffix string) namepath.Path {
	return wrapperNamespace.Concat(namespace).Append(prefix + name + suffix)
}
