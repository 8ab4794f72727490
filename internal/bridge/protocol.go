// Package bridge связывает контроллер карты с веб-поверхностью рендеринга.
// Сообщения host→surface уходят по SSE, surface→host приходят POST-запросами.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/pkg/utils"
)

// Kind - тег типа сообщения
type Kind string

const (
	KindSetMarkers   Kind = "setMarkers"
	KindNavigate     Kind = "navigate"
	KindMarkerPress  Kind = "markerPress"
	KindRegionChange Kind = "regionChange"
)

// верхний масштаб тайловой сетки
const maxZoom = 30

// ErrMalformed - сообщение не прошло проверку схемы
var ErrMalformed = errors.New("bridge: malformed message")

// SetMarkers заменяет оба слоя поверхности. Пустой слой очищается.
type SetMarkers struct {
	Type        Kind              `json:"type"`
	Markers     []PointMarker     `json:"markers"`
	CCAAMarkers []AggregateMarker `json:"ccaaMarkers"`
}

// Navigate просит оболочку открыть карточку объекта
type Navigate struct {
	Type Kind  `json:"type"`
	ID   int64 `json:"id"`
}

// Inbound - разобранное сообщение поверхности.
// ID заполнен для markerPress, Viewport для regionChange.
type Inbound struct {
	Kind     Kind
	ID       int64
	Viewport domain.Viewport
}

type wireInbound struct {
	Type   Kind                `json:"type"`
	ID     *int64              `json:"id"`
	Lat    *float64            `json:"lat"`
	Lng    *float64            `json:"lng"`
	Zoom   *float64            `json:"zoom"`
	Bounds *domain.BoundingBox `json:"bounds"`
}

// Decode разбирает сообщение поверхности и проверяет обязательные поля для его типа
func Decode(data []byte) (Inbound, error) {
	var w wireInbound
	if err := json.Unmarshal(data, &w); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch w.Type {
	case KindMarkerPress:
		if w.ID == nil {
			return Inbound{}, fmt.Errorf("%w: markerPress without id", ErrMalformed)
		}
		return Inbound{Kind: KindMarkerPress, ID: *w.ID}, nil

	case KindRegionChange:
		if w.Lat == nil || w.Lng == nil || w.Zoom == nil || w.Bounds == nil {
			return Inbound{}, fmt.Errorf("%w: regionChange requires lat, lng, zoom and bounds", ErrMalformed)
		}
		b := *w.Bounds
		if !utils.ValidateBounds(b.MinLat, b.MinLon, b.MaxLat, b.MaxLon) {
			return Inbound{}, fmt.Errorf("%w: invalid bounds %s", ErrMalformed, b)
		}
		zoom := math.Round(*w.Zoom)
		if math.IsNaN(zoom) || zoom < 0 || zoom > maxZoom {
			return Inbound{}, fmt.Errorf("%w: invalid zoom", ErrMalformed)
		}
		return Inbound{
			Kind: KindRegionChange,
			Viewport: domain.Viewport{
				Center: domain.Point{Lat: *w.Lat, Lng: *w.Lng},
				Zoom:   int(zoom),
				Bounds: b,
			},
		}, nil

	case "":
		return Inbound{}, fmt.Errorf("%w: missing type", ErrMalformed)

	default:
		return Inbound{}, fmt.Errorf("%w: unknown type %q", ErrMalformed, w.Type)
	}
}

// Encode сериализует исходящее сообщение
func Encode(msg interface{}) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bridge message: %w", err)
	}
	return data, nil
}
