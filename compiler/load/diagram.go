// Package load decodes diagram snapshots into the descriptors the
// generator consumes.
package load

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Diagram is one class-diagram snapshot handed to the generator: the
// classes with their raw attribute lines plus the typed relations between
// them. Attribute and method lines stay free text here; name sanitization
// and type resolution happen during planning.
type Diagram struct {
	Classes   []*Class    `json:"classes" yaml:"classes"`
	Relations []*Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// Class represents one diagram class as drawn by the user.
type Class struct {
	Name       string   `json:"name" yaml:"name"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Methods    []string `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// Relation represents one typed relation between two classes. Source and
// target reference class names as drawn. Type carries one of the four
// enumerated relation types; producers drawing qualitative edges supply
// Kind instead and Normalize resolves it.
type Relation struct {
	Source        string `json:"source" yaml:"source"`
	Target        string `json:"target" yaml:"target"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	Kind          string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Bidirectional bool   `json:"bidirectional,omitempty" yaml:"bidirectional,omitempty"`
}

// kindRelation is the fixed one-way lookup from a qualitative diagram edge
// kind to a relation type. The generator never re-derives it; an edge kind
// missing here leaves the relation type empty and the relation is skipped
// downstream.
var kindRelation = map[string]string{
	"association": "ONE_TO_MANY",
	"aggregation": "ONE_TO_MANY",
	"composition": "ONE_TO_MANY",
	"dependency":  "MANY_TO_ONE",
	"inheritance": "ONE_TO_ONE",
}

// KindRelation resolves a qualitative edge kind to its relation type. It
// reports false for unknown kinds.
func KindRelation(kind string) (string, bool) {
	rel, ok := kindRelation[strings.ToLower(strings.TrimSpace(kind))]
	return rel, ok
}

// Normalize resolves qualitative relation kinds and canonicalizes relation
// types in place. Callers binding a diagram from a request body apply it
// before generation.
func (d *Diagram) Normalize() {
	for _, r := range d.Relations {
		if r != nil {
			r.normalize()
		}
	}
}

func (r *Relation) normalize() {
	if r.Type == "" && r.Kind != "" {
		if rel, ok := KindRelation(r.Kind); ok {
			r.Type = rel
		}
	}
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
}

// Validate reports whether the diagram can be generated at all. Malformed
// members degrade during planning; the only refused input is an empty
// class list.
func (d *Diagram) Validate() error {
	if d == nil || len(d.Classes) == 0 {
		return fmt.Errorf("diagram has no classes")
	}
	return nil
}

// Parse decodes a diagram document from JSON or YAML. Valid JSON decodes
// as JSON, everything else falls through to the YAML decoder.
func Parse(data []byte) (*Diagram, error) {
	d := &Diagram{}
	if json.Valid(data) {
		if err := json.Unmarshal(data, d); err != nil {
			return nil, fmt.Errorf("decode diagram: %w", err)
		}
	} else if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decode diagram: %w", err)
	}
	d.Normalize()
	return d, nil
}

// LoadFile reads and decodes a diagram document, choosing the decoder by
// file extension. Unknown extensions fall back to content sniffing.
func LoadFile(path string) (*Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read diagram: %w", err)
	}
	d := &Diagram{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return Parse(data)
	}
	d.Normalize()
	return d, nil
}
