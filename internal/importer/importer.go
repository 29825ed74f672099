package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files no registered decoder reads.
var ErrUnsupportedFormat = errors.New("unsupported worksheet format")

// Decoder turns a worksheet file into rows keyed by the header row.
// Only the first sheet is read.
type Decoder interface {
	Decode(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named decoders.
type Registry struct {
	decoders   map[string]Decoder
	extensions map[string]string
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{
		decoders:   make(map[string]Decoder),
		extensions: make(map[string]string),
	}
}

// Register adds a decoder and the file extensions it handles.
// Panics on a duplicate format.
func (r *Registry) Register(d Decoder, exts ...string) {
	key := strings.ToLower(d.Format())
	if _, ok := r.decoders[key]; ok {
		panic("duplicate decoder format: " + key)
	}
	r.decoders[key] = d
	for _, ext := range exts {
		r.extensions[strings.ToLower(ext)] = key
	}
}

// Get returns the decoder for format, or nil.
func (r *Registry) Get(format string) Decoder {
	return r.decoders[strings.ToLower(format)]
}

// ForFile picks a decoder by the file's extension.
func (r *Registry) ForFile(name string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(name))
	key, ok := r.extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w", filepath.Base(name), ErrUnsupportedFormat)
	}
	return r.decoders[key], nil
}

// DefaultRegistry returns a registry with all built-in decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXDecoder{}, ".xlsx", ".xlsm")
	r.Register(&CSVDecoder{}, ".csv")
	return r
}

// ReadFile opens path and decodes it with the decoder its extension selects.
func ReadFile(reg *Registry, path string) ([]Row, error) {
	dec, err := reg.ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening worksheet: %w", err)
	}
	defer f.Close()

	rows, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
