package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/unify/inspector"
	"github.com/viant/unify/source"
)

const defaultScheme = "file"

// Workspace enumerates, reads and writes source units stored under a base URL
type Workspace struct {
	fs      afs.Service
	baseURL string
	codecs  *inspector.Factory
	logger  *slog.Logger
	mux     sync.Mutex
	loaded  map[*source.Unit]*location
}

// location records where and under which identity a unit was read
type location struct {
	URL      string
	Identity string
}

// FlushResult summarises a flush
type FlushResult struct {
	Written   []string
	Deleted   []string
	Unchanged int
}

// NewWorkspace creates a workspace over baseURL
func NewWorkspace(fs afs.Service, baseURL string, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		fs:      fs,
		baseURL: strings.TrimRight(baseURL, "/"),
		codecs:  inspector.NewFactory(),
		logger:  logger,
		loaded:  map[*source.Unit]*location{},
	}
}

// Load walks the base URL and parses every source unit; unparsable files are logged and skipped
func (w *Workspace) Load(ctx context.Context) ([]*source.Unit, error) {
	var units []*source.Unit
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !strings.HasPrefix(info.Name(), ".") || parent == "", nil
		}
		if !w.codecs.Supports(info.Name()) {
			return true, nil
		}
		dir := baseURL
		if parent != "" {
			dir = url.Join(baseURL, parent)
		}
		URL := url.Join(dir, info.Name())
		var content []byte
		var err error
		if reader != nil {
			content, err = io.ReadAll(reader)
		} else {
			content, err = w.fs.DownloadWithURL(ctx, URL)
		}
		if err != nil {
			return false, fmt.Errorf("failed to read %v: %w", URL, err)
		}
		unit, err := w.inspect(URL, info.Name(), content)
		if err != nil {
			w.logger.Warn("unit skipped", "url", URL, "error", err)
			return true, nil
		}
		units = append(units, unit)
		return true, nil
	}
	if err := w.fs.Walk(ctx, w.baseURL, visitor); err != nil {
		return nil, fmt.Errorf("failed to load units from %v: %w", w.baseURL, err)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].URL < units[j].URL })
	return units, nil
}

// Read parses a single unit
func (w *Workspace) Read(ctx context.Context, URL string) (*source.Unit, error) {
	content, err := w.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	_, name := url.Split(URL, defaultScheme)
	return w.inspect(URL, name, content)
}

func (w *Workspace) inspect(URL, name string, content []byte) (*source.Unit, error) {
	unit, err := w.codecs.InspectUnit(name, content)
	if err != nil {
		return nil, err
	}
	unit.URL = URL
	// baseline is the emitted form, so untouched units are never rewritten
	emitted, err := w.codecs.Emit(unit)
	if err != nil {
		return nil, err
	}
	hash, err := source.Hash(emitted)
	if err != nil {
		return nil, err
	}
	unit.SetHash(hash)
	w.mux.Lock()
	w.loaded[unit] = &location{URL: URL, Identity: unit.Identity()}
	w.mux.Unlock()
	return unit, nil
}

// URL returns the location a unit is written to
func (w *Workspace) URL(unit *source.Unit) string {
	w.mux.Lock()
	loaded := w.loaded[unit]
	w.mux.Unlock()
	if loaded != nil && loaded.Identity == unit.Identity() {
		return loaded.URL
	}
	root := w.baseURL
	if loaded != nil {
		root = sourceRoot(loaded, w.baseURL)
	}
	segments := append([]string{root}, unit.Namespace.Segments()...)
	return url.Join(strings.Join(segments, "/"), unit.Name)
}

// sourceRoot strips the namespace folders from the folder a unit was read from
func sourceRoot(loaded *location, fallback string) string {
	dir, _ := url.Split(loaded.URL, defaultScheme)
	identity := strings.TrimSuffix(loaded.Identity, source.FileExtension)
	namespace := identity[:max(strings.LastIndex(identity, "."), 0)]
	if namespace == "" {
		return dir
	}
	suffix := "/" + strings.ReplaceAll(namespace, ".", "/")
	if strings.HasSuffix(dir, suffix) {
		return strings.TrimSuffix(dir, suffix)
	}
	return fallback
}

// Flush writes units whose emitted content changed and removes files of renamed or moved units.
// I/O failures are collected, remaining units are still flushed.
func (w *Workspace) Flush(ctx context.Context, units []*source.Unit) (*FlushResult, error) {
	result := &FlushResult{}
	var errs []error
	for _, unit := range units {
		written, deleted, err := w.flush(ctx, unit)
		if err != nil {
			w.logger.Error("flush failed", "unit", unit.Identity(), "error", err)
			errs = append(errs, err)
			continue
		}
		if written == "" {
			result.Unchanged++
			continue
		}
		result.Written = append(result.Written, written)
		if deleted != "" {
			result.Deleted = append(result.Deleted, deleted)
		}
	}
	return result, errors.Join(errs...)
}

func (w *Workspace) flush(ctx context.Context, unit *source.Unit) (written, deleted string, err error) {
	emitted, err := w.codecs.Emit(unit)
	if err != nil {
		return "", "", fmt.Errorf("failed to emit %v: %w", unit.Identity(), err)
	}
	hash, err := source.Hash(emitted)
	if err != nil {
		return "", "", err
	}
	URL := w.URL(unit)
	if hash == unit.Hash() && URL == unit.URL {
		return "", "", nil
	}
	if err = w.fs.Upload(ctx, URL, 0644, bytes.NewReader(emitted)); err != nil {
		return "", "", fmt.Errorf("failed to write %v: %w", URL, err)
	}
	if unit.URL != "" && unit.URL != URL {
		if err = w.fs.Delete(ctx, unit.URL); err != nil {
			return URL, "", fmt.Errorf("failed to delete %v: %w", unit.URL, err)
		}
		deleted = unit.URL
	}
	unit.URL = URL
	unit.SetHash(hash)
	w.mux.Lock()
	w.loaded[unit] = &location{URL: URL, Identity: unit.Identity()}
	w.mux.Unlock()
	return URL, deleted, nil
}
