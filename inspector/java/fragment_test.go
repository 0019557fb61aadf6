package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/unify/inspector/java"
	"github.com/viant/unify/namepath"
)

func encapsulationScope(params map[string]string) *java.Scope {
	accessors := map[string]*java.Accessor{
		"radius": {Owner: "shapes.Circle", Field: "radius", Getter: "getRadius", Setter: "setRadius"},
		"filled": {Owner: "shapes.Circle", Field: "filled", Getter: "isFilled", Setter: "setFilled"},
		"id":     {Owner: "shapes.Circle", Field: "id", Getter: "getId"},
	}
	return &java.Scope{
		Members: accessors,
		Types:   map[string]string{"radius": "double", "filled": "boolean", "id": "int", "center": "Circle"},
		Params:  params,
		Selected: func(typeRef string) (map[string]*java.Accessor, bool) {
			switch typeRef {
			case "Circle":
				return accessors, true
			case "String":
				return nil, true
			}
			return nil, false
		},
		Known: func(field string) bool {
			return accessors[field] != nil
		},
	}
}

func TestEncapsulateFields(t *testing.T) {
	tests := []struct {
		description string
		body        string
		params      map[string]string
		expected    string
	}{
		{
			description: "parameter shadows field",
			body:        "{\n        this.radius = radius;\n    }",
			params:      map[string]string{"radius": "double"},
			expected:    "{\n        this.setRadius(radius);\n    }",
		},
		{
			description: "bare read and write",
			body:        "{ radius = radius * 2; return radius; }",
			expected:    "{ setRadius(getRadius() * 2); return getRadius(); }",
		},
		{
			description: "compound assignment",
			body:        "{ radius += 1.5; }",
			expected:    "{ setRadius(getRadius() + (1.5)); }",
		},
		{
			description: "update expression",
			body:        "{ this.radius++; }",
			expected:    "{ this.setRadius(this.getRadius() + 1); }",
		},
		{
			description: "for loop update",
			body:        "{ for (int i = 0; i < 3; radius++) { } }",
			expected:    "{ for (int i = 0; i < 3; setRadius(getRadius() + 1)) { } }",
		},
		{
			description: "boolean getter",
			body:        "{ if (filled) { return 0; } return radius; }",
			expected:    "{ if (isFilled()) { return 0; } return getRadius(); }",
		},
		{
			description: "parameter receiver of the same class",
			body:        "{ return radius == other.radius; }",
			params:      map[string]string{"other": "Circle"},
			expected:    "{ return getRadius() == other.getRadius(); }",
		},
		{
			description: "writes through a receiver",
			body:        "{ other.radius = 2; other.radius++; }",
			params:      map[string]string{"other": "Circle"},
			expected:    "{ other.setRadius(2); other.setRadius(other.getRadius() + 1); }",
		},
		{
			description: "local and cast receivers",
			body:        "{ Circle c = shapes.get(0); Object o = c; return c.radius + ((Circle) o).radius; }",
			expected:    "{ Circle c = shapes.get(0); Object o = c; return c.getRadius() + ((Circle) o).getRadius(); }",
		},
		{
			description: "field receiver",
			body:        "{ return center.radius; }",
			expected:    "{ return center.getRadius(); }",
		},
		{
			description: "receiver of a class without accessors",
			body:        "{ return name.radius; }",
			params:      map[string]string{"name": "String"},
			expected:    "{ return name.radius; }",
		},
		{
			description: "local declaration shadows field",
			body:        "{ double radius = 2; return radius; }",
			expected:    "{ double radius = 2; return radius; }",
		},
		{
			description: "method call with same name untouched",
			body:        "{ return radius(); }",
			expected:    "{ return radius(); }",
		},
	}
	for _, tc := range tests {
		actual, retained, err := java.EncapsulateFields(tc.body, encapsulationScope(tc.params))
		require.NoError(t, err, tc.description)
		assert.Equal(t, tc.expected, actual, tc.description)
		assert.Empty(t, retained, tc.description)
	}
}

func TestEncapsulateFields_Retained(t *testing.T) {
	tests := []struct {
		description string
		body        string
		params      map[string]string
		expected    string
		owner       string
		field       string
		reason      string
	}{
		{
			description: "update used as a value",
			body:        "{ return radius++; }",
			expected:    "{ return radius++; }",
			owner:       "shapes.Circle",
			field:       "radius",
			reason:      "radius++ is used as a value",
		},
		{
			description: "assignment used as a value",
			body:        "{ double d = radius = 2; return d; }",
			expected:    "{ double d = radius = 2; return d; }",
			owner:       "shapes.Circle",
			field:       "radius",
			reason:      "radius = 2 is used as a value",
		},
		{
			description: "read only field written",
			body:        "{ id = 3; return id; }",
			expected:    "{ id = 3; return getId(); }",
			owner:       "shapes.Circle",
			field:       "id",
			reason:      "id = 3 writes a read only field",
		},
		{
			description: "receiver returned by a call",
			body:        "{ return find().radius; }",
			expected:    "{ return find().radius; }",
			field:       "radius",
			reason:      "receiver type of find().radius is unknown",
		},
		{
			description: "receiver of a type variable",
			body:        "{ return item.radius; }",
			params:      map[string]string{"item": "T"},
			expected:    "{ return item.radius; }",
			field:       "radius",
			reason:      "receiver type T of item.radius is unknown",
		},
	}
	for _, tc := range tests {
		actual, retained, err := java.EncapsulateFields(tc.body, encapsulationScope(tc.params))
		require.NoError(t, err, tc.description)
		assert.Equal(t, tc.expected, actual, tc.description)
		require.Len(t, retained, 1, tc.description)
		assert.Equal(t, tc.owner, retained[0].Owner, tc.description)
		assert.Equal(t, tc.field, retained[0].Field, tc.description)
		assert.Equal(t, tc.reason, retained[0].Reason, tc.description)
	}

	actual, retained, err := java.EncapsulateFields("{ return Circle.radius; }", encapsulationScope(nil))
	require.NoError(t, err)
	assert.Equal(t, "{ return Circle.radius; }", actual, "static access through a type name")
	assert.Empty(t, retained)
}

func TestEncapsulateInitializer(t *testing.T) {
	actual, retained, err := java.EncapsulateInitializer("radius * 2", encapsulationScope(nil))
	require.NoError(t, err)
	assert.Equal(t, "getRadius() * 2", actual)
	assert.Empty(t, retained)
}

func TestRenameType(t *testing.T) {
	rename := &java.TypeRename{
		From:   namepath.Parse("model.shapes.ShapesFactory"),
		To:     namepath.Parse("model.shapes.ShapesFactoryGen"),
		Simple: true,
	}
	tests := []struct {
		description string
		text        string
		kind        java.FragmentKind
		expected    string
	}{
		{
			description: "simple references in body",
			text:        "{ ShapesFactory factory = ShapesFactory.eINSTANCE; return factory.createCircle(); }",
			kind:        java.Block,
			expected:    "{ ShapesFactoryGen factory = ShapesFactoryGen.eINSTANCE; return factory.createCircle(); }",
		},
		{
			description: "qualified reference in body",
			text:        "{ return model.shapes.ShapesFactory.eINSTANCE; }",
			kind:        java.Block,
			expected:    "{ return model.shapes.ShapesFactoryGen.eINSTANCE; }",
		},
		{
			description: "generic type reference",
			text:        "java.util.List<ShapesFactory>",
			kind:        java.TypeRef,
			expected:    "java.util.List<ShapesFactoryGen>",
		},
		{
			description: "member names are not types",
			text:        "{ other.ShapesFactory(); }",
			kind:        java.Block,
			expected:    "{ other.ShapesFactory(); }",
		},
		{
			description: "qualified type reference",
			text:        "model.shapes.ShapesFactory",
			kind:        java.TypeRef,
			expected:    "model.shapes.ShapesFactoryGen",
		},
	}
	for _, tc := range tests {
		actual, err := java.RenameType(tc.text, tc.kind, rename)
		require.NoError(t, err, tc.description)
		assert.Equal(t, tc.expected, actual, tc.description)
	}

	moved := &java.TypeRename{From: namepath.Parse("shapes.Circle"), To: namepath.Parse("figures.Circle")}
	actual, err := java.RenameType("{ Circle c = new shapes.Circle(); }", java.Block, moved)
	require.NoError(t, err)
	assert.Equal(t, "{ Circle c = new figures.Circle(); }", actual)

	assert.True(t, java.ReferencesType("{ return new Circle(); }", java.Block, namepath.Parse("shapes.Circle")))
	assert.False(t, java.ReferencesType("{ return new Square(); }", java.Block, namepath.Parse("shapes.Circle")))
}
