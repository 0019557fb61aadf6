// Package repository provides host I/O: project detection and the workspace holding source units.
package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"golang.org/x/mod/modfile"
)

// ErrProjectNotFound is returned when no project marker encloses a location
var ErrProjectNotFound = errors.New("project not found")

// maxDepth bounds upward search
const maxDepth = 64

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs afs.Service
	// Common project root marker files/directories
	markers []string
}

// NewDetector creates a new project detector instance
func NewDetector(fs afs.Service) *Detector {
	return &Detector{
		fs: fs,
		markers: []string{
			".project",         // Eclipse projects
			"pom.xml",          // Java/Maven projects
			"build.gradle",     // Java/Gradle projects
			"build.gradle.kts", // Java/Gradle Kotlin DSL projects
			"settings.gradle",  // Java/Gradle multi projects
			"go.mod",           // Go projects
			".git",             // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root enclosing location (a file URL) and returns project info
func (d *Detector) DetectProject(ctx context.Context, location string) (*Project, error) {
	if location == "" {
		return nil, fmt.Errorf("empty location: %w", ErrProjectNotFound)
	}
	dir, _ := url.Split(location, defaultScheme)
	rootURL, marker, err := d.findProjectRoot(ctx, dir)
	if err != nil {
		return nil, err
	}
	if rootURL == "" {
		return nil, fmt.Errorf("%v: %w", location, ErrProjectNotFound)
	}
	project := &Project{
		RootURL:      rootURL,
		Type:         determineProjectType(marker),
		RelativePath: strings.TrimPrefix(strings.TrimPrefix(location, rootURL), "/"),
	}
	d.extractProjectName(ctx, project)
	return project, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(ctx context.Context, dir string) (string, string, error) {
	for i := 0; i < maxDepth && dir != ""; i++ {
		for _, marker := range d.markers {
			exists, err := d.fs.Exists(ctx, url.Join(dir, marker))
			if err != nil {
				return "", "", fmt.Errorf("failed to check %v in %v: %w", marker, dir, err)
			}
			if exists {
				return dir, marker, nil
			}
		}
		parent, name := url.Split(dir, defaultScheme)
		if name == "" || parent == dir {
			break
		}
		dir = parent
	}
	return "", "", nil
}

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(ctx context.Context, project *Project) {
	_, project.Name = url.Split(project.RootURL, defaultScheme)
	var name string
	switch project.Type {
	case "eclipse":
		name = d.match(ctx, url.Join(project.RootURL, ".project"), eclipseName)
	case "maven":
		name = d.match(ctx, url.Join(project.RootURL, "pom.xml"), mavenArtifact)
	case "gradle":
		for _, candidate := range []string{"settings.gradle", "build.gradle", "build.gradle.kts"} {
			if name = d.match(ctx, url.Join(project.RootURL, candidate), gradleName); name != "" {
				break
			}
		}
	case "go":
		URL := url.Join(project.RootURL, "go.mod")
		if content, _ := d.fs.DownloadWithURL(ctx, URL); len(content) > 0 {
			if mod, _ := modfile.Parse(URL, content, nil); mod != nil && mod.Module != nil {
				project.GoModule = mod.Module
				name = mod.Module.Mod.Path
			}
		}
	}
	if name != "" {
		project.Name = name
	}
}

var (
	eclipseName   = regexp.MustCompile(`<name>([^<]+)</name>`)
	mavenArtifact = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
	gradleName    = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)
)

func (d *Detector) match(ctx context.Context, URL string, expr *regexp.Regexp) string {
	content, err := d.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return ""
	}
	matches := expr.FindSubmatch(content)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(string(matches[1]))
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case ".project":
		return "eclipse"
	case "pom.xml":
		return "maven"
	case "build.gradle", "build.gradle.kts", "settings.gradle":
		return "gradle"
	case "go.mod":
		return "go"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
