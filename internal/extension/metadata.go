package extension

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// MetadataFile is the descriptor every extension ships in its directory.
	MetadataFile = "metadata.json"
	// MainFile is the file implementing the extension. Its presence alongside
	// the descriptor is what marks a directory as an installed extension.
	MainFile = "extension.php"

	TypeSystem = "system"
	TypeUser   = "user"
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Metadata is the parsed descriptor of a single extension. The entrypoint
// names the class implementing the extension: extension.php must define
// <Entrypoint>Extension.
type Metadata struct {
	Name        string `json:"name"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Entrypoint  string `json:"entrypoint"`
	Type        string `json:"type,omitempty"`
}

// ParseMetadata decodes and validates a descriptor. Unknown keys are ignored
// so that newer registry fields don't break older clients. The version field
// may be a JSON number in the wild and is normalized to its string form.
func ParseMetadata(data []byte) (*Metadata, error) {
	var raw struct {
		Name        string `json:"name"`
		Author      string `json:"author"`
		Description string `json:"description"`
		Version     any    `json:"version"`
		Entrypoint  string `json:"entrypoint"`
		Type        string `json:"type"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &ValidationError{fmt.Sprintf("invalid metadata: %s", err)}
	}
	version, err := normalizeVersion(raw.Version)
	if err != nil {
		return nil, err
	}
	md := &Metadata{
		Name:        raw.Name,
		Author:      raw.Author,
		Description: raw.Description,
		Version:     version,
		Entrypoint:  raw.Entrypoint,
		Type:        raw.Type,
	}
	if md.Name == "" {
		return nil, &ValidationError{"metadata is missing the required name field"}
	}
	if md.Entrypoint == "" {
		return nil, &ValidationError{"metadata is missing the required entrypoint field"}
	}
	if md.Type != "" && md.Type != TypeSystem && md.Type != TypeUser {
		return nil, &ValidationError{fmt.Sprintf("metadata type must be %q or %q, got %q", TypeSystem, TypeUser, md.Type)}
	}
	return md, nil
}

func normalizeVersion(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		// json.Number keeps the source text so 2 stays "2" and 1.5 stays "1.5"
		return val.String(), nil
	default:
		return "", &ValidationError{fmt.Sprintf("metadata version must be a string or number, got %T", v)}
	}
}

// ReadMetadata parses the descriptor inside an extension directory.
func ReadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s in %s: %w", MetadataFile, dir, err)
	}
	return ParseMetadata(data)
}
