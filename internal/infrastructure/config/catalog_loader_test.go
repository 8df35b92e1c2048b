package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/domain/values"
	"github.com/reglet-dev/stitch/internal/infrastructure/validation"
)

func newLoader(t *testing.T) *CatalogLoader {
	t.Helper()
	v, err := validation.NewSchemaValidator()
	require.NoError(t, err)
	return NewCatalogLoader(v)
}

func TestLoadCatalog_File(t *testing.T) {
	loaded, err := newLoader(t).LoadCatalog(filepath.Join("testdata", "embroidery.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "embroidery", loaded.Catalog.Metadata().Name)
	assert.Equal(t, []string{"color", "font"}, loaded.Catalog.GroupNames())
	require.NotNil(t, loaded.BasePrice)
	assert.Equal(t, values.Money(500), *loaded.BasePrice)

	gold, err := loaded.Catalog.Lookup("color", "Gold")
	require.NoError(t, err)
	assert.Equal(t, values.Money(150), gold.PriceDelta)
	assert.Equal(t, "40001", gold.RemoteVariantID)
	assert.True(t, gold.IsColorKind)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := newLoader(t).LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))

	var cfgErr *apperrors.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadCatalogFromReader(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "no base price",
			doc: `
catalog: {name: minimal, version: 1.4.0}
groups:
  - name: font
    values: [{value: Block}]
`,
		},
		{
			name: "unsupported major version",
			doc: `
catalog: {name: future, version: 2.0.0}
groups:
  - name: font
    values: [{value: Block}]
`,
			wantErr: "not supported",
		},
		{
			name: "version is not semver",
			doc: `
catalog: {name: odd, version: latest}
groups:
  - name: font
    values: [{value: Block}]
`,
			wantErr: "invalid catalog version",
		},
		{
			name: "schema violation",
			doc: `
catalog: {name: bad, version: 1.0.0}
groups: []
`,
			wantErr: "schema",
		},
		{
			name: "priced value without variant",
			doc: `
catalog: {name: bad, version: 1.0.0}
groups:
  - name: font
    values: [{value: Script, price_delta: 200}]
`,
			wantErr: "remote variant",
		},
		{
			name:    "not yaml",
			doc:     "catalog: [",
			wantErr: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := newLoader(t).LoadCatalogFromReader(strings.NewReader(tt.doc))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Nil(t, loaded.BasePrice)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalogFromReader_WithoutSchema(t *testing.T) {
	loaded, err := NewCatalogLoader(nil).LoadCatalogFromReader(strings.NewReader(`
catalog: {name: loose, version: 1.0.0}
groups:
  - name: font
    values: [{value: Block}]
`))
	require.NoError(t, err)
	assert.Equal(t, "loose", loaded.Catalog.Metadata().Name)
}
