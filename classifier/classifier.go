// Package classifier partitions source units into disjoint groups by namespace prefix.
package classifier

import (
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// Classifier partitions units by namespace prefix membership
type Classifier struct {
	units []*source.Unit
}

// New creates a classifier over units
func New(units []*source.Unit) *Classifier {
	return &Classifier{units: units}
}

// StartingWith returns units whose namespace starts with any of prefixes (segment-wise)
func (c *Classifier) StartingWith(prefixes ...namepath.Path) []*source.Unit {
	var result []*source.Unit
	for _, unit := range c.units {
		if Matches(unit.Namespace, prefixes...) {
			result = append(result, unit)
		}
	}
	return result
}

// NotStartingWith returns units whose namespace matches none of prefixes
func (c *Classifier) NotStartingWith(prefixes ...namepath.Path) []*source.Unit {
	var result []*source.Unit
	for _, unit := range c.units {
		if !Matches(unit.Namespace, prefixes...) {
			result = append(result, unit)
		}
	}
	return result
}

// Matches returns true if namespace starts with any of prefixes
func Matches(namespace namepath.Path, prefixes ...namepath.Path) bool {
	for _, prefix := range prefixes {
		if namespace.HasPrefix(prefix) {
			return true
		}
	}
	return false
}

// Groups names the three disjoint groups used by the pipeline
type Groups struct {
	Generated []*source.Unit
	Wrapper   []*source.Unit
	Origin    []*source.Unit
}

// Partition splits units into generated-layer, wrapper and origin groups; units under excluded
// prefixes belong to none of them
func Partition(units []*source.Unit, generated, wrapper namepath.Path, excluded ...namepath.Path) *Groups {
	c := New(units)
	all := append([]namepath.Path{generated, wrapper}, excluded...)
	return &Groups{
		Generated: c.StartingWith(generated),
		Wrapper:   c.StartingWith(wrapper),
		Origin:    c.NotStartingWith(all...),
	}
}
