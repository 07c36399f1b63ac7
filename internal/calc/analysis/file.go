package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a project from a .yaml, .yml or .json file.
func LoadFile(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("reading project: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return Input{}, fmt.Errorf("unsupported project file extension %q", ext)
	}
}

func DecodeYAML(data []byte) (Input, error) {
	var in Input
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return Input{}, fmt.Errorf("parsing YAML project: %w", err)
	}
	return in, nil
}

func DecodeJSON(data []byte) (Input, error) {
	var in Input
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return Input{}, fmt.Errorf("parsing JSON project: %w", err)
	}
	return in, nil
}

// WriteYAML stores in at path, the format LoadFile reads back.
func WriteYAML(path string, in Input) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
