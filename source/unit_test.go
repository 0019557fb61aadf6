package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

func newUnit() *source.Unit {
	return &source.Unit{
		Namespace: namepath.Parse("shapes"),
		Name:      "Circle.java",
		Imports: []*source.Import{
			{Path: namepath.Parse("java.util.List")},
			{Path: namepath.Parse("figures"), OnDemand: true},
			{Path: namepath.Parse("java.lang.Math.PI"), Static: true},
		},
		Types: []*source.Declaration{
			{Kind: source.KindClass, Name: "Helper"},
			{Kind: source.KindClass, Name: "Circle", Types: []*source.Declaration{
				{Kind: source.KindClass, Name: "Builder"},
			}},
		},
	}
}

func TestUnit_Names(t *testing.T) {
	unit := newUnit()
	assert.Equal(t, "Circle", unit.BaseName())
	assert.Equal(t, "shapes.Circle.java", unit.Identity())
	assert.Equal(t, "Circle", unit.Root().Name)
	assert.Equal(t, "shapes.Circle", unit.FullName().String())
	assert.Nil(t, unit.Declaration("Builder"))

	var names []string
	for _, qualified := range unit.Declarations() {
		names = append(names, qualified.Name.String())
		assert.Equal(t, qualified.Name.LastSegment() != "Builder", qualified.TopLevel)
	}
	assert.Equal(t, []string{"shapes.Helper", "shapes.Circle", "shapes.Circle.Builder"}, names)

	empty := &source.Unit{Namespace: namepath.Parse("shapes"), Name: "Empty.java"}
	assert.Nil(t, empty.Root())
	assert.Equal(t, "shapes.Empty", empty.FullName().String())
}

func TestUnit_Imports(t *testing.T) {
	testCases := []struct {
		description string
		path        string
		added       bool
	}{
		{description: "new import", path: "java.util.Map", added: true},
		{description: "duplicate", path: "java.util.List"},
		{description: "same namespace", path: "shapes.Square"},
		{description: "matches static import path", path: "java.lang.Math.PI", added: true},
	}
	for _, testCase := range testCases {
		unit := newUnit()
		assert.Equal(t, testCase.added, unit.AddImport(namepath.Parse(testCase.path)), testCase.description)
	}

	unit := newUnit()
	assert.Equal(t, "java.util.List", unit.ImportFor("List").String())
	assert.Nil(t, unit.ImportFor("PI"))
	assert.Equal(t, []namepath.Path{namepath.Parse("figures")}, unit.OnDemandImports())
	assert.Equal(t, "figures.*", unit.Imports[1].String())

	assert.False(t, unit.RemoveImport(namepath.Parse("figures")))
	assert.True(t, unit.RemoveImport(namepath.Parse("java.util.List")))
	assert.False(t, unit.HasImport(namepath.Parse("java.util.List")))
	require.Len(t, unit.Imports, 2)
}

func TestHash(t *testing.T) {
	first, err := source.Hash([]byte("class A {}"))
	require.NoError(t, err)
	second, err := source.Hash([]byte("class A {}"))
	require.NoError(t, err)
	other, err := source.Hash([]byte("class B {}"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}
