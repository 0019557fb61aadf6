// Package correspondence decides whether generated-layer and origin declarations have a
// metamodel counterpart, and recognises generated-layer naming conventions.
package correspondence

import (
	"github.com/viant/unify/config"
	"github.com/viant/unify/metamodel"
	"github.com/viant/unify/namepath"
)

// Resolver maps declaration names onto the metamodel; results are computed on every call
type Resolver struct {
	index     *metamodel.Index
	generated namepath.Path
	config    *config.Config
}

// New creates a resolver
func New(index *metamodel.Index, cfg *config.Config) *Resolver {
	return &Resolver{index: index, generated: cfg.GeneratedPath(), config: cfg}
}

// Index returns underlying metamodel index
func (r *Resolver) Index() *metamodel.Index {
	return r.index
}

// IsGenerated returns true if name lives under the generated-layer namespace
func (r *Resolver) IsGenerated(name namepath.Path) bool {
	return name.HasPrefix(r.generated) && name.Len() > r.generated.Len()
}

// relative strips the generated-layer namespace, returning a path relative to the metamodel root
func (r *Resolver) relative(generated namepath.Path) (namepath.Path, bool) {
	if !r.IsGenerated(generated) {
		return namepath.Path{}, false
	}
	return generated.CutFirstSegments(r.generated.Len()), true
}

// OriginName returns the origin-code name a generated-layer name corresponds to,
// e.g. model.shapes.Circle -> shapes.Circle. It does not check the metamodel.
func (r *Resolver) OriginName(generated namepath.Path) (namepath.Path, bool) {
	relative, ok := r.relative(generated)
	if !ok {
		return namepath.Path{}, false
	}
	return namepath.New(r.index.RootName()).Concat(relative), true
}

// GeneratedName returns the generated-layer name for an origin-code name
func (r *Resolver) GeneratedName(origin namepath.Path) (namepath.Path, bool) {
	relative, ok := r.fromOrigin(origin)
	if !ok {
		return namepath.Path{}, false
	}
	return r.generated.Concat(relative), true
}

func (r *Resolver) fromOrigin(origin namepath.Path) (namepath.Path, bool) {
	rootName := r.index.RootName()
	if rootName == "" {
		return origin, !origin.IsZero()
	}
	if !origin.HasMultipleSegments() || origin.FirstSegment() != rootName {
		return namepath.Path{}, false
	}
	return origin.CutFirstSegment(), true
}

// Class returns the metamodel class for a generated-layer name
func (r *Resolver) Class(generated namepath.Path) *metamodel.Class {
	relative, ok := r.relative(generated)
	if !ok {
		return nil
	}
	return r.index.FindClass(relative)
}

// HasCounterpart returns true if the generated-layer name, stripped of its namespace, resolves in the metamodel
func (r *Resolver) HasCounterpart(generated namepath.Path) bool {
	return r.Class(generated) != nil
}

// OriginClass returns the metamodel class an origin-code class was extracted into
func (r *Resolver) OriginClass(origin namepath.Path) *metamodel.Class {
	relative, ok := r.fromOrigin(origin)
	if !ok {
		return nil
	}
	return r.index.FindClass(relative)
}

// OriginFeature returns the metamodel feature for an origin-code field
func (r *Resolver) OriginFeature(originClass namepath.Path, field string) *metamodel.Feature {
	relative, ok := r.fromOrigin(originClass)
	if !ok {
		return nil
	}
	return r.index.FindFeature(field, relative)
}
