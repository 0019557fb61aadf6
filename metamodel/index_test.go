package metamodel_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/unify/metamodel"
	"github.com/viant/unify/namepath"
)

const shapesModel = `
root:
  name: ""
  classes:
    - name: Canvas
  packages:
    - name: shapes
      classes:
        - name: Circle
          features:
            - name: radius
              kind: attribute
              type: double
        - name: Shape
          abstract: true
      packages:
        - name: solid
          classes:
            - name: Sphere
`

func TestIndex_FindClass(t *testing.T) {
	model, err := metamodel.Decode([]byte(shapesModel))
	require.NoError(t, err)
	index := metamodel.NewIndex(model)

	tests := []struct {
		description string
		name        string
		expected    bool
	}{
		{description: "package class", name: "shapes.Circle", expected: true},
		{description: "nested package class", name: "shapes.solid.Sphere", expected: true},
		{description: "root class", name: "Canvas", expected: true},
		{description: "missing class", name: "shapes.Square", expected: false},
		{description: "missing package", name: "figures.Circle", expected: false},
		{description: "case sensitive", name: "Shapes.Circle", expected: false},
		{description: "package is not a class", name: "shapes.solid", expected: false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, index.HasClass(namepath.Parse(tc.name)), tc.description)
	}
}

func TestIndex_FindFeature(t *testing.T) {
	model, err := metamodel.Decode([]byte(shapesModel))
	require.NoError(t, err)
	index := metamodel.NewIndex(model)

	feature := index.FindFeature("radius", namepath.Parse("shapes.Circle"))
	require.NotNil(t, feature)
	assert.Equal(t, metamodel.Attribute, feature.Kind)
	assert.Equal(t, "double", feature.Type)
	assert.Equal(t, metamodel.KindFeature, feature.NodeKind())
	assert.Nil(t, index.FindFeature("diameter", namepath.Parse("shapes.Circle")))
	assert.Nil(t, index.FindFeature("radius", namepath.Parse("shapes.Oval")))
	assert.Nil(t, metamodel.NewIndex(nil).FindClass(namepath.Parse("shapes.Circle")))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/project/model/shapes.yaml"
	require.NoError(t, fs.Upload(ctx, URL, 0644, strings.NewReader(shapesModel)))
	model, err := metamodel.Load(ctx, fs, URL)
	require.NoError(t, err)
	assert.Equal(t, URL, model.Location)
	assert.NotNil(t, metamodel.NewIndex(model).FindPackage(namepath.Parse("shapes.solid")))

	_, err = metamodel.Load(ctx, fs, "mem://localhost/project/model/missing.yaml")
	assert.Error(t, err)
	_, err = metamodel.Decode([]byte("packages: []"))
	assert.Error(t, err)
}
