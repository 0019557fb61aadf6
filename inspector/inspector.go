package inspector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/unify/inspector/java"
	"github.com/viant/unify/source"
)

// Inspector parses a source unit
type Inspector interface {
	// InspectUnit parses src read from fileName into a unit
	InspectUnit(fileName string, src []byte) (*source.Unit, error)
}

// Emitter renders a unit back to source text
type Emitter interface {
	// Emit renders unit
	Emit(unit *source.Unit) ([]byte, error)
}

// Codec pairs an inspector with the emitter of the same language
type Codec struct {
	Inspector
	Emitter
}

// Factory creates appropriate codecs based on file extension
type Factory struct {
	codecs map[string]*Codec
}

// NewFactory creates a new factory with the java codec registered
func NewFactory() *Factory {
	return &Factory{
		codecs: map[string]*Codec{
			source.FileExtension: {Inspector: java.NewInspector(), Emitter: java.NewEmitter()},
		},
	}
}

// Supports returns true if filename has a registered codec
func (f *Factory) Supports(filename string) bool {
	_, ok := f.codecs[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// GetCodec returns an appropriate codec based on file extension
func (f *Factory) GetCodec(filename string) (*Codec, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	codec, ok := f.codecs[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	return codec, nil
}

// InspectUnit is a convenience method that gets the appropriate codec and inspects src
func (f *Factory) InspectUnit(filename string, src []byte) (*source.Unit, error) {
	codec, err := f.GetCodec(filename)
	if err != nil {
		return nil, err
	}
	return codec.InspectUnit(filename, src)
}

// Emit renders unit with the codec registered for its file name
func (f *Factory) Emit(unit *source.Unit) ([]byte, error) {
	codec, err := f.GetCodec(unit.Name)
	if err != nil {
		return nil, err
	}
	return codec.Emit(unit)
}
