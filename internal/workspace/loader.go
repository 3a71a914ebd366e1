package workspace

import (
	"embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed layouts/default.yaml layouts/table.json
var embedded embed.FS

// Format is the serialization of a layout document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension; unknown extensions are JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a layout document.
func Parse(raw []byte, format Format) (*Model, error) {
	var m Model
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(raw, &m)
	default:
		err = json.Unmarshal(raw, &m)
	}
	if err != nil {
		return nil, invalid("decode %s: %v", format, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads a layout file from fs.
func Load(fs afero.Fs, path string) (*Model, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return Parse(raw, FormatFor(path))
}

// Default returns a fresh copy of the built-in layout.
func Default() *Model {
	raw, err := embedded.ReadFile("layouts/default.yaml")
	if err != nil {
		panic(fmt.Sprintf("workspace: embedded layout missing: %v", err))
	}
	m, err := Parse(raw, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("workspace: embedded layout invalid: %v", err))
	}
	return m
}

// Source holds the layout served to users without a saved layout.
type Source struct {
	mu  sync.RWMutex
	raw []byte
}

// NewSource starts from m, or from Default when m is nil.
func NewSource(m *Model) *Source {
	if m == nil {
		m = Default()
	}
	s := &Source{}
	s.Set(m)
	return s
}

// Set swaps the served layout.
func (s *Source) Set(m *Model) {
	raw, _ := json.Marshal(m)
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
}

// Current returns a deep copy so callers may mutate it freely.
func (s *Source) Current() *Model {
	s.mu.RLock()
	raw := s.raw
	s.mu.RUnlock()

	var m Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return Default()
	}
	return &m
}
