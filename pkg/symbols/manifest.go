package symbols

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed manifest-schema.json
var manifestSchema []byte

// ErrUnsupportedManifestFormat is returned for manifest files that are neither
// JSON nor YAML.
var ErrUnsupportedManifestFormat = errors.New("unsupported manifest format")

// Manifest is the on-disk form of a declared-class set, produced by the
// host's own analysis pass.
type Manifest struct {
	Classes []string `json:"classes" yaml:"classes"`
}

// LoadManifest reads a declared-class manifest (.json, .yaml or .yml) and
// builds an in-memory table from it. JSON manifests are validated against the
// embedded schema first; every class name must parse as a fully qualified
// name.
func LoadManifest(path string) (*InMemoryTable, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = unmarshalJSONManifest(content, &manifest)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &manifest)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedManifestFormat, filepath.Ext(path))
	}

	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return TableFromManifest(&manifest)
}

// TableFromManifest validates every class name in the manifest and builds a table.
func TableFromManifest(manifest *Manifest) (*InMemoryTable, error) {
	declared := make([]SymbolIdentifier, 0, len(manifest.Classes))

	for _, name := range manifest.Classes {
		id, err := ParseName(name)
		if err != nil {
			return nil, fmt.Errorf("manifest class %q: %w", name, err)
		}

		declared = append(declared, id)
	}

	return NewInMemoryTable(declared...), nil
}

func unmarshalJSONManifest(content []byte, manifest *Manifest) error {
	schemaLoader := gojsonschema.NewBytesLoader(manifestSchema)
	documentLoader := gojsonschema.NewBytesLoader(content)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
		}

		return fmt.Errorf("manifest does not match schema: %s", strings.Join(details, "; ")) //nolint:err113 // dynamic error carries the validation detail.
	}

	if err := json.Unmarshal(content, manifest); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}
