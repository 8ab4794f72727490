package domain

// MapPoint - объект для детального слоя карты
type MapPoint struct {
	ID       int64   `json:"id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Category string  `json:"categoria,omitempty"`
	Type     string  `json:"tipo,omitempty"`
}

// RegionAggregate - сводка по региону для обзорного слоя
type RegionAggregate struct {
	Region string  `json:"region"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Total  int     `json:"total"`
}

// ZoomCap - лимит выборки для детального слоя начиная с MinZoom
type ZoomCap struct {
	MinZoom int `yaml:"min_zoom" json:"min_zoom"`
	Limit   int `yaml:"limit" json:"limit"`
}

// CountryView - начальный центр и масштаб карты для страны
type CountryView struct {
	Country string  `yaml:"country" json:"country"`
	Lat     float64 `yaml:"lat" json:"lat"`
	Lng     float64 `yaml:"lng" json:"lng"`
	Zoom    int     `yaml:"zoom" json:"zoom"`
}
