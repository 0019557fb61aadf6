package correspondence

import (
	"strings"

	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// IsImplementation returns true for names like model.shapes.impl.CircleImpl
func (r *Resolver) IsImplementation(name namepath.Path) bool {
	if !name.HasMultipleSegments() || name.Parent().LastSegment() != r.config.ImplSegment {
		return false
	}
	simple := name.LastSegment()
	return len(simple) > len(r.config.ImplSuffix) && strings.HasSuffix(simple, r.config.ImplSuffix)
}

// InterfaceOf returns the interface paired with an implementation: model.shapes.impl.CircleImpl -> model.shapes.Circle
func (r *Resolver) InterfaceOf(impl namepath.Path) namepath.Path {
	namespace := impl.Parent()
	if namespace.LastSegment() == r.config.ImplSegment && namespace.HasMultipleSegments() {
		namespace = namespace.CutLastSegment()
	}
	return namespace.Append(strings.TrimSuffix(impl.LastSegment(), r.config.ImplSuffix))
}

// ImplementationOf returns the implementation paired with an interface
func (r *Resolver) ImplementationOf(iface namepath.Path) namepath.Path {
	return iface.Parent().Append(r.config.ImplSegment, iface.LastSegment()+r.config.ImplSuffix)
}

// FactoryName returns the factory interface name expected for a namespace: model.shapes -> ShapesFactory
func (r *Resolver) FactoryName(namespace namepath.Path) string {
	return source.Capitalize(namespace.LastSegment()) + r.config.FactorySuffix
}

// IsFactory returns true for factory interfaces and their implementations
func (r *Resolver) IsFactory(name namepath.Path) bool {
	if !name.HasMultipleSegments() {
		return false
	}
	if r.IsImplementation(name) {
		name = r.InterfaceOf(name)
		if !name.HasMultipleSegments() {
			return false
		}
	}
	return name.LastSegment() == r.FactoryName(name.Parent())
}

// IsRootFactory returns true for the factory of the outermost generated-layer namespace
func (r *Resolver) IsRootFactory(name namepath.Path) bool {
	if !r.IsFactory(name) {
		return false
	}
	if r.IsImplementation(name) {
		name = r.InterfaceOf(name)
	}
	return name.Parent().Equal(r.generated)
}

// Counterpart returns true if name, or for an implementation its paired interface, has a metamodel counterpart
func (r *Resolver) Counterpart(name namepath.Path) bool {
	if r.IsImplementation(name) {
		name = r.InterfaceOf(name)
	}
	return r.HasCounterpart(name)
}
