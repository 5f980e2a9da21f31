// Package dump reads and writes container trees as YAML or JSON documents.
package dump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

// DetectFormat picks the format from a file name's extension.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Document describes a subject and the slot ranges checked together.
type Document struct {
	Subject string  `json:"subject,omitempty" yaml:"subject,omitempty"`
	Ranges  []Range `json:"ranges" yaml:"ranges"`
}

// Range is one inventory. Nested ranges may omit Size to use the
// container material's default.
type Range struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Size  int    `json:"size,omitempty" yaml:"size,omitempty"`
	Slots []Slot `json:"slots,omitempty" yaml:"slots,omitempty"`
}

// Slot is an occupied slot. Contents is only valid on container materials.
type Slot struct {
	Index    int      `json:"index" yaml:"index"`
	Material string   `json:"material" yaml:"material"`
	Amount   int      `json:"amount,omitempty" yaml:"amount,omitempty"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string   `json:"author,omitempty" yaml:"author,omitempty"`
	Pages    []string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Contents *Range   `json:"contents,omitempty" yaml:"contents,omitempty"`
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format) (*Document, error) {
	raw := data
	if format == YAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalize yaml: %w", err)
		}
		raw = b
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := documentSchema.Validate(inst); err != nil {
		return nil, &ValidationError{Err: err}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// Marshal encodes doc in the given format.
func Marshal(doc *Document, format Format) ([]byte, error) {
	if format == YAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}
