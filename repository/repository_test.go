package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/repository"
)

func upload(t *testing.T, fs afs.Service, files map[string]string) {
	for URL, content := range files {
		require.NoError(t, fs.Upload(context.Background(), URL, 0644, strings.NewReader(content)))
	}
}

func TestDetector_DetectProject(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	upload(t, fs, map[string]string{
		"mem://localhost/detect/eclipse/.project":           "<projectDescription><name>shapes.model</name></projectDescription>",
		"mem://localhost/detect/eclipse/model/shapes.yaml":  "root: {}",
		"mem://localhost/detect/gradle/settings.gradle":     "rootProject.name = 'figures'",
		"mem://localhost/detect/gradle/src/main/model.yaml": "root: {}",
		"mem://localhost/detect/golang/go.mod":              "module github.com/acme/shapes\n\ngo 1.23\n",
		"mem://localhost/detect/golang/model/shapes.yaml":   "root: {}",
		"mem://localhost/orphan/model.yaml":                 "root: {}",
	})
	tests := []struct {
		description string
		location    string
		kind        string
		name        string
		root        string
	}{
		{description: "eclipse", location: "mem://localhost/detect/eclipse/model/shapes.yaml", kind: "eclipse", name: "shapes.model", root: "mem://localhost/detect/eclipse"},
		{description: "gradle", location: "mem://localhost/detect/gradle/src/main/model.yaml", kind: "gradle", name: "figures", root: "mem://localhost/detect/gradle"},
		{description: "go", location: "mem://localhost/detect/golang/model/shapes.yaml", kind: "go", name: "github.com/acme/shapes", root: "mem://localhost/detect/golang"},
	}
	detector := repository.NewDetector(fs)
	for _, tc := range tests {
		project, err := detector.DetectProject(ctx, tc.location)
		require.NoError(t, err, tc.description)
		assert.Equal(t, tc.kind, project.Type, tc.description)
		assert.Equal(t, tc.name, project.Name, tc.description)
		assert.Equal(t, tc.root, strings.TrimRight(project.RootURL, "/"), tc.description)
	}

	_, err := detector.DetectProject(ctx, "mem://localhost/orphan/model.yaml")
	assert.True(t, errors.Is(err, repository.ErrProjectNotFound))
	_, err = detector.DetectProject(ctx, "")
	assert.True(t, errors.Is(err, repository.ErrProjectNotFound))
}

const circleSource = `package shapes;

public class Circle {
    private double radius;
}
`

const canvasSource = `package shapes;

public class Canvas {
    private Circle circle;
}
`

func TestWorkspace_LoadFlush(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	baseURL := "mem://localhost/workspace/src"
	upload(t, fs, map[string]string{
		baseURL + "/shapes/Circle.java": circleSource,
		baseURL + "/shapes/Canvas.java": canvasSource,
		baseURL + "/shapes/Broken.java": "package shapes; public class {",
		baseURL + "/README.md":          "docs",
	})
	workspace := repository.NewWorkspace(fs, baseURL, nil)
	units, err := workspace.Load(ctx)
	require.NoError(t, err)
	require.Len(t, units, 2)

	result, err := workspace.Flush(ctx, units)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Unchanged)
	assert.Empty(t, result.Written)

	circle, canvas := units[1], units[0]
	require.Equal(t, "shapes.Circle.java", circle.Identity())
	require.Equal(t, "shapes.Canvas.java", canvas.Identity())
	circle.Root().Fields[0].Name = "diameter"
	circle.Namespace = namepath.Parse("figures")

	result, err = workspace.Flush(ctx, units)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, []string{baseURL + "/figures/Circle.java"}, result.Written)
	assert.Equal(t, []string{baseURL + "/shapes/Circle.java"}, result.Deleted)

	exists, err := fs.Exists(ctx, baseURL+"/shapes/Circle.java")
	require.NoError(t, err)
	assert.False(t, exists)
	content, err := fs.DownloadWithURL(ctx, baseURL+"/figures/Circle.java")
	require.NoError(t, err)
	assert.Contains(t, string(content), "package figures;")
	assert.Contains(t, string(content), "private double diameter;")

	reread, err := workspace.Read(ctx, baseURL+"/figures/Circle.java")
	require.NoError(t, err)
	assert.Equal(t, "figures.Circle.java", reread.Identity())
}
