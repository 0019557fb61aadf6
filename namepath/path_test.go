package namepath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/unify/namepath"
)

func TestPath_Append(t *testing.T) {
	tests := []struct {
		description string
		base        namepath.Path
		segments    []string
		expected    string
	}{
		{description: "zero base has no leading separator", base: namepath.Path{}, segments: []string{"shapes", "Circle"}, expected: "shapes.Circle"},
		{description: "empty arguments are ignored", base: namepath.Parse("shapes"), segments: []string{"", "Circle", ""}, expected: "shapes.Circle"},
		{description: "dotted argument", base: namepath.Parse("unification"), segments: []string{"shapes.UnifiedCircle"}, expected: "unification.shapes.UnifiedCircle"},
		{description: "no arguments", base: namepath.Parse("a.b"), expected: "a.b"},
	}
	for _, tc := range tests {
		actual := tc.base.Append(tc.segments...)
		assert.Equal(t, tc.expected, actual.String(), tc.description)
	}
}

func TestPath_SegmentOperations(t *testing.T) {
	path := namepath.Parse("model.shapes.impl.CircleImpl")
	assert.Equal(t, "model", path.FirstSegment())
	assert.Equal(t, "CircleImpl", path.LastSegment())
	assert.Equal(t, "model.shapes.impl", path.Parent().String())
	assert.Equal(t, "shapes.impl.CircleImpl", path.CutFirstSegment().String())
	assert.Equal(t, "model.shapes", path.CutLastSegments(2).String())
	assert.Equal(t, "model", path.CutLastSegments(10).String())
	assert.Equal(t, "CircleImpl", path.CutFirstSegments(10).String())
	assert.Equal(t, "model.shapes.impl.Circle", path.TrimLastSuffix("Impl").String())
	assert.True(t, path.HasMultipleSegments())
	assert.True(t, path.Contains("impl"))
	assert.True(t, path.HasPrefix(namepath.Parse("model.shapes")))
	assert.False(t, path.HasPrefix(namepath.Parse("mod")))
	assert.Equal(t, "shapes.impl.CircleImpl", path.TrimPrefix(namepath.Parse("model")).String())
}

func TestPath_SingleSegmentFloor(t *testing.T) {
	single := namepath.Parse("shapes")
	assert.True(t, single.Equal(single.CutFirstSegment().CutFirstSegment()))
	assert.True(t, single.Equal(single.CutLastSegment()))
	assert.True(t, single.Equal(single.Parent()))
	assert.True(t, single.Equal(single.CutLastSegments(3)))
	assert.False(t, single.HasMultipleSegments())
	assert.Equal(t, "Impl", namepath.Parse("Impl").TrimLastSuffix("Impl").String())
	assert.True(t, single.Equal(single.TrimPrefix(namepath.Parse("shapes"))))
}

func TestPath_RoundTrip(t *testing.T) {
	for _, dotted := range []string{"a.b", "shapes.Circle.radius", "model.shapes.impl.CircleImpl"} {
		path := namepath.Parse(dotted)
		assert.True(t, path.Equal(path.Parent().Append(path.LastSegment())), dotted)
	}
}
