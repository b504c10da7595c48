package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riordanpawley/aurora/internal/domain"
)

// DocumentVersion is written into every task file and backup
const DocumentVersion = 1

// Format is an on-disk encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Prefs are the view preferences carried in backups
type Prefs struct {
	View          string `json:"view,omitempty" yaml:"view,omitempty"`
	ShowCompleted *bool  `json:"showCompleted,omitempty" yaml:"showCompleted,omitempty"`
}

// Document is the task file and backup layout
type Document struct {
	Version    int           `json:"version" yaml:"version"`
	ExportedAt time.Time     `json:"exportedAt" yaml:"exportedAt"`
	Tasks      []domain.Task `json:"tasks" yaml:"tasks"`
	Prefs      *Prefs        `json:"prefs,omitempty" yaml:"prefs,omitempty"`
}

// ParseFormat accepts "json", "yaml" or "yml"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
}

// FormatFor picks the format from override when set, else path's extension
func FormatFor(path, override string) (Format, error) {
	if override != "" {
		return ParseFormat(override)
	}
	return ParseFormat(filepath.Ext(path))
}

// Encode writes doc to w
func Encode(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, f)
	}
}

// Decode reads a Document from data. A bare list of tasks is accepted as a
// document without metadata. Empty input decodes to an empty document.
func Decode(data []byte, f Format) (Document, error) {
	var doc Document
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{Version: DocumentVersion}, nil
	}

	switch f {
	case FormatJSON:
		if trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &doc.Tasks); err != nil {
				return Document{}, err
			}
			return doc, nil
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return Document{}, err
		}
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return Document{}, err
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Decode(&doc.Tasks); err != nil {
				return Document{}, err
			}
			return doc, nil
		}
		if err := node.Decode(&doc); err != nil {
			return Document{}, err
		}
	default:
		return Document{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, f)
	}
	return doc, nil
}
