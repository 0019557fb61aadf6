// Package metamodel defines the read-only structural description extracted from origin code:
// a tree of packages, classes and their features.
package metamodel

// Kind identifies a metamodel node variant
type Kind string

const (
	KindPackage Kind = "package"
	KindClass   Kind = "class"
	KindFeature Kind = "feature"
)

// FeatureKind distinguishes attributes from references
type FeatureKind string

const (
	Attribute FeatureKind = "attribute"
	Reference FeatureKind = "reference"
)

// Node is implemented by every metamodel element
type Node interface {
	NodeName() string
	NodeKind() Kind
}

// Model represents an extracted metamodel with its persisted location
type Model struct {
	Root     *Package `yaml:"root"`
	Location string   `yaml:"-"` // URL the model was read from; used to derive the project root
}

// Package groups classes and nested packages; names are unique among siblings per kind
type Package struct {
	Name     string     `yaml:"name"`
	NsURI    string     `yaml:"nsURI,omitempty"`
	Packages []*Package `yaml:"packages,omitempty"`
	Classes  []*Class   `yaml:"classes,omitempty"`
}

// Class represents a metamodel class
type Class struct {
	Name       string     `yaml:"name"`
	Abstract   bool       `yaml:"abstract,omitempty"`
	Interface  bool       `yaml:"interface,omitempty"`
	SuperTypes []string   `yaml:"superTypes,omitempty"`
	Features   []*Feature `yaml:"features,omitempty"`
}

// Feature represents a typed attribute or relation of a class
type Feature struct {
	Name        string      `yaml:"name"`
	Kind        FeatureKind `yaml:"kind,omitempty"`
	Type        string      `yaml:"type,omitempty"`
	Many        bool        `yaml:"many,omitempty"`
	Containment bool        `yaml:"containment,omitempty"`
}

func (p *Package) NodeName() string { return p.Name }
func (p *Package) NodeKind() Kind   { return KindPackage }
func (c *Class) NodeName() string   { return c.Name }
func (c *Class) NodeKind() Kind     { return KindClass }
func (f *Feature) NodeName() string { return f.Name }
func (f *Feature) NodeKind() Kind   { return KindFeature }

// Package returns the first child package with the supplied name
func (p *Package) Package(name string) *Package {
	for _, child := range p.Packages {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Class returns the first class with the supplied name
func (p *Package) Class(name string) *Class {
	for _, class := range p.Classes {
		if class.Name == name {
			return class
		}
	}
	return nil
}

// Feature returns the feature with the supplied name
func (c *Class) Feature(name string) *Feature {
	for _, feature := range c.Features {
		if feature.Name == name {
			return feature
		}
	}
	return nil
}
