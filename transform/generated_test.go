package transform_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/unify/config"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/transform"
)

const namedRootModel = `
root:
  name: shapes
  classes:
    - name: Circle
      features:
        - name: radius
          type: double
`

var modelSources = map[string]string{
	"Circle.java": `package model;

import org.eclipse.emf.ecore.EObject;

public interface Circle extends EObject, Shape {
    double getRadius();
}
`,
	"Shape.java": `package model;

public interface Shape {
}
`,
	"CircleImpl.java": `package model.impl;

import java.util.*;
import model.Circle;
import model.ModelPackage;

public class CircleImpl extends MinimalEObjectImpl implements Circle {
    protected double radius;
}
`,
	"ModelPackage.java": `package model;

public interface ModelPackage {
}
`,
}

func TestInterfaceRetention(t *testing.T) {
	env := newEnv(t, namedRootModel, config.Default())
	units := parseUnits(t, modelSources)
	pass := transform.NewInterfaceRetention(env)
	results, errs := run(t, pass, units)
	require.Empty(t, errs)
	assert.Len(t, results, 2)

	impl := unitNamed(units, "model.impl.CircleImpl").Root()
	assert.Equal(t, []string{"model.Circle"}, impl.SuperInterfaces)
	assert.Equal(t, "MinimalEObjectImpl", impl.SuperType)

	iface := unitNamed(units, "model.Circle").Root()
	assert.Equal(t, []string{"EObject", "model.Shape"}, iface.SuperInterfaces)
}

func TestImportRedirection(t *testing.T) {
	env := newEnv(t, namedRootModel, config.Default())
	units := parseUnits(t, modelSources)
	_, errs := run(t, transform.NewInterfaceRetention(env), units)
	require.Empty(t, errs)
	results, errs := run(t, transform.NewImportRedirection(env), units)
	require.Empty(t, errs)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Rewritten)

	impl := unitNamed(units, "model.impl.CircleImpl")
	assert.False(t, impl.HasImport(namepath.Parse("model.Circle")))
	assert.True(t, impl.HasImport(namepath.Parse("shapes.Circle")))
	assert.True(t, impl.HasImport(namepath.Parse("model.ModelPackage")))
	assert.Len(t, impl.OnDemandImports(), 1)
	assert.Equal(t, []string{"model.Circle"}, impl.Root().SuperInterfaces)

	iface := unitNamed(units, "model.Circle")
	assert.Len(t, iface.Root().SuperInterfaces, 2)
	assert.True(t, iface.HasImport(namepath.Parse("org.eclipse.emf.ecore.EObject")))
}

func TestImportRedirection_Invariant(t *testing.T) {
	env := newEnv(t, namedRootModel, config.Default())
	units := parseUnits(t, modelSources)
	pass := transform.NewImportRedirection(env)
	require.NoError(t, pass.Prepare(units))

	impl := unitNamed(units, "model.impl.CircleImpl")
	require.True(t, impl.RemoveImport(namepath.Parse("model.Circle")))
	_, err := pass.Apply(impl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, transform.ErrInvariant))
	var unitErr *transform.UnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Equal(t, "ImportRedirection", unitErr.Pass)
	assert.False(t, impl.HasImport(namepath.Parse("shapes.Circle")), "failed unit is left untouched")
}

const factoryModel = `
root:
  packages:
    - name: shapes
      classes:
        - name: Circle
`

var factorySources = map[string]string{
	"ModelFactory.java": `package model;

public interface ModelFactory {
    ModelFactory eINSTANCE = model.impl.ModelFactoryImpl.init();
}
`,
	"ModelFactoryImpl.java": `package model.impl;

import model.ModelFactory;

public class ModelFactoryImpl implements ModelFactory {
    public static ModelFactory init() {
        return new ModelFactoryImpl();
    }
}
`,
	"ShapesFactory.java": `package model.shapes;

public interface ShapesFactory {
    ShapesFactory eINSTANCE = model.shapes.impl.ShapesFactoryImpl.init();

    Circle createCircle();
}
`,
	"ShapesFactoryImpl.java": `package model.shapes.impl;

import model.shapes.Circle;
import model.shapes.ShapesFactory;

public class ShapesFactoryImpl implements ShapesFactory {
    public ShapesFactoryImpl() {
        super();
    }

    public static ShapesFactory init() {
        return new ShapesFactoryImpl();
    }

    public Circle createCircle() {
        return null;
    }
}
`,
	"Circle.java": `package model.shapes;

public interface Circle {
}
`,
}

func TestFactoryDisambiguation(t *testing.T) {
	env := newEnv(t, factoryModel, config.Default())
	units := parseUnits(t, factorySources)
	pass := transform.NewFactoryDisambiguation(env)

	var applicable []string
	for _, unit := range pass.ApplicableUnits(units) {
		applicable = append(applicable, unit.FullName().String())
	}
	assert.ElementsMatch(t, []string{"model.shapes.ShapesFactory", "model.shapes.impl.ShapesFactoryImpl"}, applicable)

	results, errs := run(t, pass, units)
	require.Empty(t, errs)
	require.Len(t, results, 2)

	assert.NotNil(t, unitNamed(units, "model.ModelFactory"))
	assert.NotNil(t, unitNamed(units, "model.impl.ModelFactoryImpl"))
	factory := unitNamed(units, "model.shapes.ShapesFactoryGen")
	require.NotNil(t, factory)
	assert.Equal(t, "ShapesFactoryGen.java", factory.Name)
	assert.Equal(t, "model.shapes.impl.ShapesFactoryImplGen.init()", factory.Root().Fields[0].Init)

	impl := unitNamed(units, "model.shapes.impl.ShapesFactoryImplGen")
	require.NotNil(t, impl)
	assert.Equal(t, "ShapesFactoryImplGen.java", impl.Name)
	assert.Equal(t, []string{"ShapesFactoryGen"}, impl.Root().SuperInterfaces)
	assert.True(t, impl.HasImport(namepath.Parse("model.shapes.ShapesFactoryGen")))
	assert.Equal(t, "ShapesFactoryImplGen", impl.Root().Constructors()[0].Name)
}
