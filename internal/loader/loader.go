// Package loader reads puzzle definitions from YAML or JSON files so they
// can be added to a registry at startup.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/kpuzzle"
)

// Format selects the file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// definitionFile is the on-disk layout. Orbits are a list so the declared
// order survives decoding.
type definitionFile struct {
	Name        string                            `yaml:"name" json:"name"`
	Orbits      []orbitFile                       `yaml:"orbits" json:"orbits"`
	StartPieces kpuzzle.Transformation            `yaml:"start_pieces" json:"start_pieces"`
	Moves       map[string]kpuzzle.Transformation `yaml:"moves" json:"moves"`
}

type orbitFile struct {
	Name         string `yaml:"name" json:"name"`
	Pieces       int    `yaml:"pieces" json:"pieces"`
	Orientations int    `yaml:"orientations" json:"orientations"`
}

// FormatForPath picks the format from a file extension. Anything other
// than .json is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFile reads and validates the definition at path.
func LoadFile(path string) (*kpuzzle.PuzzleDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	def, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a definition.
//
// Omitted start pieces default to the identity and an omitted orientation
// list defaults to all zeros.
func Parse(data []byte, format Format) (*kpuzzle.PuzzleDefinition, error) {
	var f definitionFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode JSON definition: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode YAML definition: %w", err)
		}
	}

	def := &kpuzzle.PuzzleDefinition{
		Name:   f.Name,
		Orbits: make([]kpuzzle.OrbitDefinition, len(f.Orbits)),
		Moves:  make(map[string]kpuzzle.Transformation, len(f.Moves)),
	}
	for i, o := range f.Orbits {
		def.Orbits[i] = kpuzzle.OrbitDefinition{Name: o.Name, NumPieces: o.Pieces, Orientations: o.Orientations}
	}

	if f.StartPieces == nil {
		def.StartPieces = kpuzzle.IdentityTransformation(def)
	} else {
		def.StartPieces = fillOrientations(f.StartPieces)
	}
	for name, move := range f.Moves {
		def.Moves[name] = fillOrientations(move)
	}

	if err := kpuzzle.ValidateDefinition(def); err != nil {
		return nil, err
	}
	return def, nil
}

func fillOrientations(t kpuzzle.Transformation) kpuzzle.Transformation {
	out := make(kpuzzle.Transformation, len(t))
	for name, o := range t {
		if o.Orientation == nil {
			o.Orientation = make([]int, len(o.Permutation))
		}
		out[name] = o
	}
	return out
}
