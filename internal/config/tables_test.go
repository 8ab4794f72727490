package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heritage-explorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTables_Defaults(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)

	assert.Equal(t, 7, tables.Map.ZoomThreshold)
	require.Len(t, tables.Map.ZoomCaps, 4)
	assert.Equal(t, domain.ZoomCap{MinZoom: 10, Limit: 10000}, tables.Map.ZoomCaps[0])
	assert.Equal(t, domain.ZoomCap{MinZoom: 0, Limit: 1500}, tables.Map.ZoomCaps[3])
	assert.Equal(t, 60, tables.Map.AggregateSizes[0].Size)
	assert.Len(t, tables.Map.CountryViews, 3)
	assert.Len(t, tables.Categories.Legend, 6)
}

func TestLoadTables_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("map:\n  zoom_threshold: 0\n"), 0o600))

	_, err := LoadTables(path)
	assert.Error(t, err)
}

func TestDefaultTables_Classifier(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)
	c := domain.NewClassifier(tables.Categories)

	cases := []struct {
		name     string
		category string
		typ      string
		want     domain.Classification
	}{
		{"archaeology beats castle type", "Zona Arqueológica", "Castillo", domain.Classification{Color: "#92400e", Icon: "🏺"}},
		{"ethnology", "Patrimonio Etnológico", "Molino", domain.Classification{Color: "#065f46", Icon: "🏚️"}},
		{"castle", "Monumento", "CASTILLO", domain.Classification{Color: "#7c3aed", Icon: "🏰"}},
		{"religious category colours but convent icon by type", "Arquitectura religiosa", "Convento", domain.Classification{Color: "#be185d", Icon: "⛪"}},
		{"civil works colour", "Obra civil", "Puente", domain.Classification{Color: "#475569", Icon: "🌉"}},
		{"palace", "", "Palacio", domain.Classification{Color: "#0369a1", Icon: "🏛️"}},
		{"architecture category icon", "Arquitectura civil", "", domain.Classification{Color: "#3b82f6", Icon: "🏛️"}},
		{"default", "", "", domain.Classification{Color: "#3b82f6", Icon: "📍"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.category, tc.typ)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, c.Classify(tc.category, tc.typ))
		})
	}
}
