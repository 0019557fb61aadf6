package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/unify/inspector/java"
	"github.com/viant/unify/source"
)

const circleSource = `// Copyright shapes authors
package shapes;

import java.util.List;
import java.util.*;
import static java.lang.Math.PI;

/**
 * Circle shape.
 */
@SuppressWarnings("unused")
public class Circle extends Shape implements Comparable<Circle>, Drawable {
    private final double radius;
    protected int x, y;
    static final String KIND = "circle";

    static {
        System.out.println("loaded");
    }

    public Circle(double radius) {
        this.radius = radius;
    }

    // Area of the circle.
    @Override
    public double area() {
        return PI * radius * radius;
    }

    public <T extends Shape> void draw(List<T> items, String... names) throws java.io.IOException {
    }

    public static class Builder {
        private double radius;
    }
}
`

func TestInspector_InspectSource(t *testing.T) {
	unit, err := java.NewInspector().InspectUnit("Circle.java", []byte(circleSource))
	require.NoError(t, err)

	assert.Equal(t, "shapes", unit.Namespace.String())
	assert.Equal(t, "// Copyright shapes authors", unit.Header)
	assert.Equal(t, "shapes.Circle", unit.FullName().String())
	assert.NotZero(t, unit.Hash())
	require.Len(t, unit.Imports, 3)
	assert.Equal(t, "java.util.List", unit.Imports[0].String())
	assert.True(t, unit.Imports[1].OnDemand)
	assert.Equal(t, "java.util.*", unit.Imports[1].String())
	assert.True(t, unit.Imports[2].Static)

	circle := unit.Root()
	require.NotNil(t, circle)
	assert.Equal(t, source.KindClass, circle.Kind)
	assert.Equal(t, "Circle", circle.Name)
	assert.Contains(t, circle.Doc, "Circle shape.")
	assert.Equal(t, []string{`@SuppressWarnings("unused")`}, circle.Modifiers.Annotations)
	assert.Equal(t, source.Public, circle.Modifiers.Visibility)
	assert.Equal(t, "Shape", circle.SuperType)
	assert.Equal(t, []string{"Comparable<Circle>", "Drawable"}, circle.SuperInterfaces)

	require.Len(t, circle.Fields, 4)
	radius := circle.Field("radius")
	require.NotNil(t, radius)
	assert.Equal(t, "double", radius.Type)
	assert.True(t, radius.Modifiers.Final)
	assert.Equal(t, source.Private, radius.Modifiers.Visibility)
	assert.Equal(t, source.Protected, circle.Field("y").Modifiers.Visibility)
	assert.Equal(t, `"circle"`, circle.Field("KIND").Init)
	assert.True(t, circle.Field("KIND").Modifiers.Static)
	require.Len(t, circle.Blocks, 1)

	require.Len(t, circle.Constructors(), 1)
	assert.False(t, circle.HasZeroArgConstructor())
	area := circle.Method("area")
	require.NotNil(t, area)
	assert.Equal(t, "double", area.Result)
	assert.Equal(t, []string{"@Override"}, area.Modifiers.Annotations)
	assert.Equal(t, "// Area of the circle.", area.Doc)
	draw := circle.Method("draw", "List<T>", "String")
	require.NotNil(t, draw)
	assert.Equal(t, "<T extends Shape>", draw.TypeParams)
	assert.True(t, draw.Parameters[1].Variadic)
	assert.Equal(t, []string{"java.io.IOException"}, draw.Throws)
	assert.Equal(t, "draw(List<T>,String...)", draw.Signature())

	builder := circle.Nested("Builder")
	require.NotNil(t, builder)
	assert.True(t, builder.Modifiers.Static)
	assert.NotNil(t, builder.Field("radius"))
	assert.Len(t, unit.Declarations(), 2)
}

func TestInspector_Interface(t *testing.T) {
	src := `package model.shapes;

import org.eclipse.emf.ecore.EObject;

public interface Circle extends Shape, EObject {
    double getRadius();
    void setRadius(double value);
    int SIDES = 0;
}
`
	unit, err := java.NewInspector().InspectUnit("Circle.java", []byte(src))
	require.NoError(t, err)
	decl := unit.Root()
	assert.Equal(t, source.KindInterface, decl.Kind)
	assert.Equal(t, []string{"Shape", "EObject"}, decl.SuperInterfaces)
	assert.Len(t, decl.Methods, 2)
	assert.Equal(t, "", decl.Method("getRadius").Body)
	assert.NotNil(t, decl.Field("SIDES"))
}

func TestInspector_VerbatimKinds(t *testing.T) {
	src := `package shapes;

public record Point(int x, int y) {
}

@interface Marker {
}

enum Color { RED, GREEN }
`
	unit, err := java.NewInspector().InspectUnit("Point.java", []byte(src))
	require.NoError(t, err)
	require.Len(t, unit.Types, 3)
	expected := []source.Kind{source.KindRecord, source.KindAnnotation, source.KindEnum}
	for i, decl := range unit.Types {
		assert.Equal(t, expected[i], decl.Kind, decl.Name)
		assert.NotEmpty(t, decl.Raw, decl.Name)
	}
}

func TestCleanComment(t *testing.T) {
	assert.Equal(t, "Circle shape.\nHas a radius.", java.CleanComment("/**\n * Circle shape.\n * Has a radius.\n */"))
	assert.Equal(t, "Area of the circle.", java.CleanComment("// Area of the circle."))
}

func TestInspector_SyntaxError(t *testing.T) {
	_, err := java.NewInspector().InspectUnit("Broken.java", []byte("package a; public class Broken { void m( }"))
	assert.Error(t, err)
}

func TestEmitter_RoundTrip(t *testing.T) {
	inspector := java.NewInspector()
	unit, err := inspector.InspectUnit("Circle.java", []byte(circleSource))
	require.NoError(t, err)
	emitted, err := java.NewEmitter().Emit(unit)
	require.NoError(t, err)

	reparsed, err := inspector.InspectUnit("Circle.java", emitted)
	require.NoError(t, err)
	again, err := java.NewEmitter().Emit(reparsed)
	require.NoError(t, err)
	assert.Equal(t, string(emitted), string(again))

	text := string(emitted)
	assert.Contains(t, text, "package shapes;\n")
	assert.Contains(t, text, "import static java.lang.Math.PI;\n")
	assert.Contains(t, text, "public class Circle extends Shape implements Comparable<Circle>, Drawable {")
	assert.Contains(t, text, "    private final double radius;\n")
	assert.Contains(t, text, "    protected int x;\n    protected int y;\n")
	assert.Contains(t, text, "    public <T extends Shape> void draw(List<T> items, String... names) throws java.io.IOException {")
	assert.Contains(t, text, "    public static class Builder {")
}
