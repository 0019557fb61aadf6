package metamodel

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML metamodel document from URL
func Load(ctx context.Context, fs afs.Service, URL string) (*Model, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read metamodel %s: %w", URL, err)
	}
	model, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode metamodel %s: %w", URL, err)
	}
	model.Location = URL
	return model, nil
}

// Decode parses a YAML metamodel document
func Decode(data []byte) (*Model, error) {
	model := &Model{}
	if err := yaml.Unmarshal(data, model); err != nil {
		return nil, err
	}
	if model.Root == nil {
		return nil, fmt.Errorf("metamodel has no root package")
	}
	return model, nil
}
