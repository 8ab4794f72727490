package domain

import (
	"encoding/json"
	"strings"
)

// FeatureCollection - ответ /geojson и /ccaa-resumen
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string          `json:"type"`
	Geometry   Geometry        `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

// Geometry - только точки; координаты в порядке GeoJSON (lng, lat)
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func (g Geometry) point() (Point, bool) {
	if len(g.Coordinates) < 2 {
		return Point{}, false
	}
	return Point{Lat: g.Coordinates[1], Lng: g.Coordinates[0]}, true
}

type monumentProperties struct {
	ID           int64  `json:"id"`
	Name         string `json:"nombre"`
	Municipality string `json:"municipio"`
	Province     string `json:"provincia"`
	Category     string `json:"categoria"`
	Type         string `json:"tipo"`
}

type regionProperties struct {
	Region string `json:"region"`
	Total  int    `json:"total"`
}

// MapPoints извлекает точки детального слоя. Признаки без геометрии
// или с нечитаемыми свойствами пропускаются.
func (fc *FeatureCollection) MapPoints() []MapPoint {
	points := make([]MapPoint, 0, len(fc.Features))
	for _, f := range fc.Features {
		pt, ok := f.Geometry.point()
		if !ok {
			continue
		}
		var props monumentProperties
		if err := json.Unmarshal(f.Properties, &props); err != nil {
			continue
		}
		points = append(points, MapPoint{
			ID:       props.ID,
			Lat:      pt.Lat,
			Lng:      pt.Lng,
			Title:    props.Name,
			Subtitle: joinNonEmpty(", ", props.Municipality, props.Province),
			Category: props.Category,
			Type:     props.Type,
		})
	}
	return points
}

// RegionAggregates извлекает сводки по регионам
func (fc *FeatureCollection) RegionAggregates() []RegionAggregate {
	result := make([]RegionAggregate, 0, len(fc.Features))
	for _, f := range fc.Features {
		pt, ok := f.Geometry.point()
		if !ok {
			continue
		}
		var props regionProperties
		if err := json.Unmarshal(f.Properties, &props); err != nil {
			continue
		}
		result = append(result, RegionAggregate{
			Region: props.Region,
			Lat:    pt.Lat,
			Lng:    pt.Lng,
			Total:  props.Total,
		})
	}
	return result
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
