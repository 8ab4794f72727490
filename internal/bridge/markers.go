package bridge

import (
	"math"
	"strconv"
	"strings"

	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/domain"
)

// PointMarker - маркер объекта детального слоя
type PointMarker struct {
	ID       int64   `json:"id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon"`
}

// AggregateMarker - круг с итогом по региону
type AggregateMarker struct {
	Region string  `json:"region"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Total  int     `json:"total"`
	Size   int     `json:"size"`
	Label  string  `json:"label"`
}

// MarkerBuilder превращает слои контроллера в маркеры поверхности
type MarkerBuilder struct {
	classifier *domain.Classifier
	tables     config.MapTables
}

func NewMarkerBuilder(classifier *domain.Classifier, tables config.MapTables) *MarkerBuilder {
	return &MarkerBuilder{classifier: classifier, tables: tables}
}

func (b *MarkerBuilder) Points(points []domain.MapPoint) []PointMarker {
	out := make([]PointMarker, 0, len(points))
	for _, p := range points {
		cls := b.classifier.Classify(p.Category, p.Type)
		out = append(out, PointMarker{
			ID:       p.ID,
			Lat:      p.Lat,
			Lng:      p.Lng,
			Title:    p.Title,
			Subtitle: p.Subtitle,
			Color:    cls.Color,
			Icon:     cls.Icon,
		})
	}
	return out
}

func (b *MarkerBuilder) Aggregates(regions []domain.RegionAggregate) []AggregateMarker {
	out := make([]AggregateMarker, 0, len(regions))
	for _, r := range regions {
		out = append(out, AggregateMarker{
			Region: r.Region,
			Name:   b.ShortRegionName(r.Region),
			Lat:    r.Lat,
			Lng:    r.Lng,
			Total:  r.Total,
			Size:   b.SizeFor(r.Total),
			Label:  AggregateLabel(r.Total),
		})
	}
	return out
}

// SizeFor - диаметр круга; уровни отсортированы по убыванию порога
func (b *MarkerBuilder) SizeFor(total int) int {
	tiers := b.tables.AggregateSizes
	for _, t := range tiers {
		if total > t.Above {
			return t.Size
		}
	}
	return tiers[len(tiers)-1].Size
}

// ShortRegionName убирает служебные префиксы и обрезает имя
func (b *MarkerBuilder) ShortRegionName(region string) string {
	name := region
	for _, prefix := range b.tables.RegionPrefixes {
		name = strings.Replace(name, prefix, "", 1)
	}
	if limit := b.tables.RegionNameMax; limit > 0 {
		if runes := []rune(name); len(runes) > limit {
			name = string(runes[:limit])
		}
	}
	return name
}

// AggregateLabel: 999 → "999", 1500 → "2k", 12345 → "12k"
func AggregateLabel(total int) string {
	if total > 999 {
		return strconv.Itoa(int(math.Round(float64(total)/1000))) + "k"
	}
	return strconv.Itoa(total)
}
