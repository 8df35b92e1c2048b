// Package validation validates catalog documents and persisted snapshots
// against embedded JSON Schemas.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reglet-dev/stitch/internal/application/ports"
)

// Ensure interface compliance
var _ ports.SnapshotValidator = (*SchemaValidator)(nil)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	catalogSchema  = "catalog.schema.json"
	snapshotSchema = "snapshot.schema.json"
)

// SchemaValidator holds the compiled schemas.
type SchemaValidator struct {
	catalog  *jsonschema.Schema
	snapshot *jsonschema.Schema
}

// NewSchemaValidator compiles the embedded schemas.
func NewSchemaValidator() (*SchemaValidator, error) {
	catalog, err := compile(catalogSchema)
	if err != nil {
		return nil, err
	}
	snapshot, err := compile(snapshotSchema)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{catalog: catalog, snapshot: snapshot}, nil
}

func compile(name string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return schema, nil
}

// ValidateCatalogJSON validates a catalog document given as JSON.
func (v *SchemaValidator) ValidateCatalogJSON(data []byte) error {
	return validate(v.catalog, data, "catalog")
}

// ValidateSnapshot validates a persisted snapshot.
func (v *SchemaValidator) ValidateSnapshot(data []byte) error {
	return validate(v.snapshot, data, "snapshot")
}

func validate(schema *jsonschema.Schema, data []byte, what string) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", what, err)
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return formatSchemaValidationError(what, validationErr)
		}
		return fmt.Errorf("%s validation failed: %w", what, err)
	}
	return nil
}

// formatSchemaValidationError flattens a JSON Schema validation error tree.
func formatSchemaValidationError(what string, err *jsonschema.ValidationError) error {
	var messages []string

	var collectErrors func(*jsonschema.ValidationError)
	collectErrors = func(e *jsonschema.ValidationError) {
		if e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collectErrors(cause)
		}
	}

	collectErrors(err)

	if len(messages) == 0 {
		return fmt.Errorf("%s validation failed", what)
	}

	return fmt.Errorf("%s validation failed:\n    - %s", what, strings.Join(messages, "\n    - "))
}
