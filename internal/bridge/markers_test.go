package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/domain"
)

func newTestBuilder(t *testing.T) *MarkerBuilder {
	t.Helper()
	tables, err := config.LoadTables("")
	require.NoError(t, err)
	return NewMarkerBuilder(domain.NewClassifier(tables.Categories), tables.Map)
}

func TestAggregateLabel(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1k"},
		{1499, "1k"},
		{1500, "2k"},
		{12345, "12k"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AggregateLabel(tc.total), "total %d", tc.total)
	}
}

func TestMarkerBuilder_SizeFor(t *testing.T) {
	b := newTestBuilder(t)

	assert.Equal(t, 60, b.SizeFor(20001))
	assert.Equal(t, 50, b.SizeFor(20000))
	assert.Equal(t, 50, b.SizeFor(10001))
	assert.Equal(t, 42, b.SizeFor(5001))
	assert.Equal(t, 35, b.SizeFor(5000))
	assert.Equal(t, 35, b.SizeFor(0))
}

func TestMarkerBuilder_ShortRegionName(t *testing.T) {
	b := newTestBuilder(t)

	assert.Equal(t, "Madrid", b.ShortRegionName("Comunidad de Madrid"))
	assert.Equal(t, "Valenciana", b.ShortRegionName("Comunitat Valenciana"))
	assert.Equal(t, "Murcia", b.ShortRegionName("Region de Murcia"))
	assert.Equal(t, "Castilla y L", b.ShortRegionName("Castilla y León"))
	assert.Equal(t, "Galicia", b.ShortRegionName("Galicia"))
}

func TestMarkerBuilder_Points(t *testing.T) {
	b := newTestBuilder(t)

	markers := b.Points([]domain.MapPoint{
		{ID: 7, Lat: 40.4, Lng: -3.7, Title: "Castillo de Manzanares", Subtitle: "Manzanares el Real, Madrid",
			Category: "Monumento", Type: "Castillo"},
		{ID: 8, Lat: 41.1, Lng: 1.2, Title: "Yacimiento", Category: "Zona arqueológica"},
	})

	require.Len(t, markers, 2)
	assert.Equal(t, "#7c3aed", markers[0].Color)
	assert.Equal(t, "🏰", markers[0].Icon)
	assert.Equal(t, "Manzanares el Real, Madrid", markers[0].Subtitle)
	assert.Equal(t, "#92400e", markers[1].Color)
	assert.Equal(t, "🏺", markers[1].Icon)
}

func TestMarkerBuilder_Aggregates(t *testing.T) {
	b := newTestBuilder(t)

	markers := b.Aggregates([]domain.RegionAggregate{
		{Region: "Comunidad de Madrid", Lat: 40.4, Lng: -3.7, Total: 12345},
	})

	require.Len(t, markers, 1)
	assert.Equal(t, AggregateMarker{
		Region: "Comunidad de Madrid",
		Name:   "Madrid",
		Lat:    40.4,
		Lng:    -3.7,
		Total:  12345,
		Size:   50,
		Label:  "12k",
	}, markers[0])

	assert.NotNil(t, b.Aggregates(nil))
}
