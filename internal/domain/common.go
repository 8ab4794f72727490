package domain

import "fmt"

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// Contains проверяет, лежит ли точка внутри прямоугольника (границы включительно)
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLon && p.Lng <= b.MaxLon
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%.4f,%.4f]x[%.4f,%.4f]", b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
}

// Viewport - видимая область карты, как её сообщает поверхность рендеринга
type Viewport struct {
	Center Point       `json:"center"`
	Zoom   int         `json:"zoom"`
	Bounds BoundingBox `json:"bounds"`
}

// Statistics - сводные счётчики для главного экрана
type Statistics struct {
	Total           int           `json:"total"`
	WithCoordinates int           `json:"con_coordenadas"`
	WithWikidata    int           `json:"con_wikidata"`
	Images          int           `json:"imagenes"`
	ByCountry       []CountTotal  `json:"por_pais"`
	ByRegion        []RegionTotal `json:"por_region"`
}

type CountTotal struct {
	Country string `json:"pais"`
	Total   int    `json:"total"`
}

type RegionTotal struct {
	Country string `json:"pais,omitempty"`
	Region  string `json:"region"`
	Total   int    `json:"total"`
}
