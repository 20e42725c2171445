package level

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatExtensions returns the file extensions understood by Decode.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// IsLevelFile reports whether path has a supported level extension.
func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Decode routes data to the parser for the given file extension.
func Decode(data []byte, ext string) ([]Level, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("level: unsupported extension: %s", ext)
	}
}

// DecodeJSON parses either a single level object or an array of levels.
// Every decoded level is normalized.
func DecodeJSON(data []byte) ([]Level, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("level: empty document")
	}

	var levels []Level
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &levels); err != nil {
			return nil, fmt.Errorf("level: decode json: %w", err)
		}
	} else {
		var l Level
		if err := json.Unmarshal(trimmed, &l); err != nil {
			return nil, fmt.Errorf("level: decode json: %w", err)
		}
		levels = []Level{l}
	}
	return normalizeAll(levels)
}

// DecodeYAML parses either a single level mapping or a sequence of levels.
func DecodeYAML(data []byte) ([]Level, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("level: decode yaml: %w", err)
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, fmt.Errorf("level: empty document")
	}

	var levels []Level
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&levels); err != nil {
			return nil, fmt.Errorf("level: decode yaml: %w", err)
		}
	case yaml.MappingNode:
		var l Level
		if err := root.Decode(&l); err != nil {
			return nil, fmt.Errorf("level: decode yaml: %w", err)
		}
		levels = []Level{l}
	default:
		return nil, fmt.Errorf("level: decode yaml: unexpected node kind %d", root.Kind)
	}
	return normalizeAll(levels)
}

// EncodeJSON writes levels as an indented JSON array.
func EncodeJSON(levels []Level) ([]byte, error) {
	if levels == nil {
		levels = []Level{}
	}
	data, err := json.MarshalIndent(levels, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("level: encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML writes a single level as YAML.
func EncodeYAML(l Level) ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("level: encode yaml: %w", err)
	}
	return data, nil
}

func normalizeAll(levels []Level) ([]Level, error) {
	out := make([]Level, 0, len(levels))
	for i, l := range levels {
		if l.ID == "" {
			return nil, fmt.Errorf("level: entry %d has no id", i)
		}
		out = append(out, l.Normalize())
	}
	return out, nil
}
