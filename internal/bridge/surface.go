package bridge

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/heritage-explorer/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Labels - подписи на странице карты
type Labels struct {
	ViewDetail string `json:"viewDetail"`
	Monuments  string `json:"monuments"`
	ZoomHint   string `json:"zoomHint"`
}

type LegendEntry struct {
	Label string
	Color string
}

// SinglePoint - объект для страницы с одним маркером
type SinglePoint struct {
	ID    int64   `json:"id"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title"`
}

// PageData - данные шаблона map.html
type PageData struct {
	Lang        string
	Center      domain.CountryView
	Interactive bool
	ShowLegend  bool
	Legend      []LegendEntry
	Labels      Labels
	Single      *SinglePoint
	EventsURL   string
	MessagesURL string
}

var labels = map[string]Labels{
	"es": {ViewDetail: "Ver detalle", Monuments: "monumentos", ZoomHint: "Acerca el mapa para ver los monumentos"},
	"en": {ViewDetail: "View detail", Monuments: "monuments", ZoomHint: "Zoom in to see the monuments"},
}

var legendLabels = map[string]map[string]string{
	"es": {
		"castles": "Castillos", "churches": "Iglesias", "palaces": "Palacios",
		"archaeology": "Arqueología", "ethnologic": "Etnológico", "others": "Otros",
	},
	"en": {
		"castles": "Castles", "churches": "Churches", "palaces": "Palaces",
		"archaeology": "Archaeology", "ethnologic": "Ethnologic", "others": "Others",
	},
}

// Surface рендерит страницу Leaflet, которую загружает WebView
type Surface struct {
	tmpl       *template.Template
	classifier *domain.Classifier
	language   string
}

// NewSurface разбирает встроенные шаблоны. Неизвестный язык заменяется на "es".
func NewSurface(classifier *domain.Classifier, language string) (*Surface, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse map templates: %w", err)
	}
	if _, ok := labels[language]; !ok {
		language = "es"
	}
	return &Surface{tmpl: tmpl, classifier: classifier, language: language}, nil
}

// RenderMap рисует интерактивную карту с легендой
func (s *Surface) RenderMap(w io.Writer, center domain.CountryView) error {
	return s.render(w, PageData{
		Center:      center,
		Interactive: true,
		ShowLegend:  true,
	})
}

// RenderSingle рисует неподвижную карту с одним маркером для карточки объекта
func (s *Surface) RenderSingle(w io.Writer, point SinglePoint, zoom int) error {
	return s.render(w, PageData{
		Center: domain.CountryView{Lat: point.Lat, Lng: point.Lng, Zoom: zoom},
		Single: &point,
	})
}

func (s *Surface) render(w io.Writer, data PageData) error {
	data.Lang = s.language
	data.Labels = labels[s.language]
	data.EventsURL = "/bridge/events"
	data.MessagesURL = "/bridge/messages"
	if data.ShowLegend {
		names := legendLabels[s.language]
		for _, item := range s.classifier.Legend() {
			label, ok := names[item.Key]
			if !ok {
				label = item.Key
			}
			data.Legend = append(data.Legend, LegendEntry{Label: label, Color: item.Color})
		}
	}
	if err := s.tmpl.ExecuteTemplate(w, "map.html", data); err != nil {
		return fmt.Errorf("failed to render map page: %w", err)
	}
	return nil
}
