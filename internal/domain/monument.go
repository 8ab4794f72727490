package domain

// Monument - объект наследия в том виде, в каком его отдаёт backend.
// Клиент хранит только копии на время запроса.
type Monument struct {
	ID           int64  `json:"id"`
	Name         string `json:"denominacion"`
	Category     string `json:"categoria,omitempty"`
	Type         string `json:"tipo,omitempty"`
	Style        string `json:"estilo,omitempty"`
	Country      string `json:"pais,omitempty"`
	Region       string `json:"comunidad_autonoma,omitempty"`
	Province     string `json:"provincia,omitempty"`
	Municipality string `json:"municipio,omitempty"`
	Locality     string `json:"localidad,omitempty"`

	Latitude  *float64 `json:"latitud,omitempty"`
	Longitude *float64 `json:"longitud,omitempty"`

	ImageURL string          `json:"imagen_url,omitempty"`
	Images   []MonumentImage `json:"imagenes,omitempty"`

	Description     string `json:"descripcion_completa,omitempty"`
	History         string `json:"sintesis_historica,omitempty"`
	WikiDescription string `json:"wiki_descripcion,omitempty"`

	WikipediaURL    string `json:"wikipedia_url,omitempty"`
	WikidataID      string `json:"qid,omitempty"`
	CommonsCategory string `json:"commons_category,omitempty"`
	HeritageLabel   string `json:"heritage_label,omitempty"`

	Inception      string `json:"inception,omitempty"`
	Architect      string `json:"arquitecto,omitempty"`
	Material       string `json:"material,omitempty"`
	HistoricPeriod string `json:"periodo_historico,omitempty"`
	Century        string `json:"siglo,omitempty"`
}

type MonumentImage struct {
	URL    string `json:"url"`
	Title  string `json:"titulo,omitempty"`
	Author string `json:"autor,omitempty"`
}

// HasLocation - у объекта есть обе координаты и его можно показать на карте
func (m *Monument) HasLocation() bool {
	return m.Latitude != nil && m.Longitude != nil
}

// Coordinates возвращает точку, если объект картографируем
func (m *Monument) Coordinates() (Point, bool) {
	if !m.HasLocation() {
		return Point{}, false
	}
	return Point{Lat: *m.Latitude, Lng: *m.Longitude}, true
}

// MonumentPage - страница результатов поиска
type MonumentPage struct {
	Items      []Monument `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}
