package metamodel

import "github.com/viant/unify/namepath"

// Index resolves dotted paths against a metamodel tree
type Index struct {
	root *Package
}

// NewIndex creates an index over the model; a nil model yields an index that resolves nothing
func NewIndex(model *Model) *Index {
	index := &Index{}
	if model != nil {
		index.root = model.Root
	}
	return index
}

// FindPackage descends nested packages segment by segment
func (i *Index) FindPackage(path namepath.Path) *Package {
	if i.root == nil || path.IsZero() {
		return nil
	}
	current := i.root
	for _, segment := range path.Segments() {
		if current = current.Package(segment); current == nil {
			return nil
		}
	}
	return current
}

// FindClass resolves a full class name, the last segment being the class name
func (i *Index) FindClass(fullName namepath.Path) *Class {
	if i.root == nil || fullName.IsZero() {
		return nil
	}
	pkg := i.root
	if fullName.HasMultipleSegments() {
		if pkg = i.FindPackage(fullName.Parent()); pkg == nil {
			return nil
		}
	}
	return pkg.Class(fullName.LastSegment())
}

// FindFeature resolves the class first and then scans its features
func (i *Index) FindFeature(featureName string, fullClassName namepath.Path) *Feature {
	class := i.FindClass(fullClassName)
	if class == nil {
		return nil
	}
	return class.Feature(featureName)
}

// HasClass returns true if full name resolves to a class
func (i *Index) HasClass(fullName namepath.Path) bool {
	return i.FindClass(fullName) != nil
}

// RootName returns the name of the root package, empty for an anonymous root
func (i *Index) RootName() string {
	if i.root == nil {
		return ""
	}
	return i.root.Name
}
