// Package config provides infrastructure for loading catalog documents.
// This package handles YAML parsing, schema validation and version gating.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"

	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// SupportedCatalogVersions is the range of catalog document versions this build reads.
const SupportedCatalogVersions = ">= 1.0.0, < 2.0.0"

// CatalogDocument is the on-disk shape of a catalog.
type CatalogDocument struct {
	BasePrice *values.Money            `yaml:"base_price,omitempty"`
	Metadata  entities.CatalogMetadata `yaml:"catalog"`
	Groups    []entities.OptionGroup   `yaml:"groups"`
}

// LoadedCatalog is a validated catalog plus document-level settings.
type LoadedCatalog struct {
	Catalog *entities.Catalog
	// BasePrice is set when the document overrides the configured surcharge.
	BasePrice *values.Money
}

// CatalogSchemaValidator validates a catalog document given as JSON.
type CatalogSchemaValidator interface {
	ValidateCatalogJSON(data []byte) error
}

// CatalogLoader handles loading catalogs from YAML files.
type CatalogLoader struct {
	schema      CatalogSchemaValidator
	constraints *semver.Constraints
}

// NewCatalogLoader creates a new catalog loader. schema may be nil to skip
// JSON Schema validation.
func NewCatalogLoader(schema CatalogSchemaValidator) *CatalogLoader {
	constraints, err := semver.NewConstraint(SupportedCatalogVersions)
	if err != nil {
		panic(fmt.Sprintf("invalid supported catalog versions: %v", err))
	}
	return &CatalogLoader{schema: schema, constraints: constraints}
}

// LoadCatalog loads and validates a catalog from a YAML file.
func (l *CatalogLoader) LoadCatalog(path string) (*LoadedCatalog, error) {
	// Security: Use os.OpenRoot to prevent path traversal attacks
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, apperrors.NewConfigurationError("catalog", "failed to open catalog directory", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, apperrors.NewConfigurationError("catalog", "failed to open catalog", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return l.LoadCatalogFromReader(file)
}

// LoadCatalogFromReader loads a catalog from an io.Reader.
func (l *CatalogLoader) LoadCatalogFromReader(r io.Reader) (*LoadedCatalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewConfigurationError("catalog", "failed to read catalog", err)
	}

	if l.schema != nil {
		asJSON, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, apperrors.NewConfigurationError("catalog", "failed to decode catalog YAML", err)
		}
		if err := l.schema.ValidateCatalogJSON(asJSON); err != nil {
			return nil, apperrors.NewConfigurationError("catalog", "catalog does not match schema", err)
		}
	}

	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewConfigurationError("catalog", "failed to decode catalog YAML", err)
	}

	if err := l.checkVersion(doc.Metadata.Version); err != nil {
		return nil, err
	}

	catalog, err := entities.NewCatalog(doc.Metadata, doc.Groups)
	if err != nil {
		return nil, apperrors.NewConfigurationError("catalog", "invalid catalog", err)
	}

	return &LoadedCatalog{Catalog: catalog, BasePrice: doc.BasePrice}, nil
}

func (l *CatalogLoader) checkVersion(raw string) error {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return apperrors.NewConfigurationError("catalog", fmt.Sprintf("invalid catalog version %q", raw), err)
	}
	if !l.constraints.Check(v) {
		return apperrors.NewConfigurationError("catalog",
			fmt.Sprintf("catalog version %s is not supported (want %s)", v, SupportedCatalogVersions), nil)
	}
	return nil
}
