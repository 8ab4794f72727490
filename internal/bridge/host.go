package bridge

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/heritage-explorer/internal/pkg/metrics"
	"github.com/heritage-explorer/internal/usecase"
	"go.uber.org/zap"
)

// subscriberBuffer - сколько кадров может ждать отправки одной поверхности
const subscriberBuffer = 16

var (
	ErrQueueFull = errors.New("bridge: inbound queue is full")
	ErrClosed    = errors.New("bridge: host is closed")
)

// Subscriber - подключённая поверхность карты
type Subscriber struct {
	ID     string
	frames chan []byte
}

// Frames отдаёт закодированные сообщения; канал закрывается при отключении
func (s *Subscriber) Frames() <-chan []byte {
	return s.frames
}

// Host рассылает сообщения всем поверхностям и принимает их сообщения в
// ограниченную очередь. Последний setMarkers повторяется новым подписчикам.
type Host struct {
	builder *MarkerBuilder
	metrics *metrics.Metrics
	logger  *zap.Logger
	inbound chan []byte

	mu          sync.Mutex
	subscribers map[string]*Subscriber
	last        []byte
	lastVersion uint64
	closed      bool
}

// NewHost создает хост моста. m может быть nil.
func NewHost(builder *MarkerBuilder, queueSize int, m *metrics.Metrics, logger *zap.Logger) *Host {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Host{
		builder:     builder,
		metrics:     m,
		logger:      logger,
		inbound:     make(chan []byte, queueSize),
		subscribers: make(map[string]*Subscriber),
	}
}

// Subscribe подключает поверхность
func (h *Host) Subscribe() (*Subscriber, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}

	sub := &Subscriber{
		ID:     uuid.NewString(),
		frames: make(chan []byte, subscriberBuffer),
	}
	if h.last != nil {
		sub.frames <- h.last
	}
	h.subscribers[sub.ID] = sub
	h.updateGaugeLocked()

	h.logger.Debug("Bridge subscriber connected",
		zap.String("subscriber", sub.ID),
		zap.Int("subscribers", len(h.subscribers)))
	return sub, nil
}

// Unsubscribe отключает поверхность; повторный вызов безопасен
func (h *Host) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(sub.frames)
		h.updateGaugeLocked()
		h.logger.Debug("Bridge subscriber disconnected", zap.String("subscriber", id))
	}
}

// PublishMarkers реализует usecase.MarkerSink. Уже отправленная версия не повторяется.
func (h *Host) PublishMarkers(layers usecase.MarkerLayers) {
	data, err := Encode(SetMarkers{
		Type:        KindSetMarkers,
		Markers:     h.builder.Points(layers.Points),
		CCAAMarkers: h.builder.Aggregates(layers.Aggregates),
	})
	if err != nil {
		h.logger.Error("Failed to encode markers", zap.Error(err))
		h.observe("out", KindSetMarkers, "error")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.last != nil && layers.Version <= h.lastVersion {
		h.observe("out", KindSetMarkers, "unchanged")
		return
	}
	h.last = data
	h.lastVersion = layers.Version
	h.broadcastLocked(KindSetMarkers, data)
}

// NavigateToMonument реализует usecase.Navigator: оболочка открывает карточку
func (h *Host) NavigateToMonument(id int64) {
	data, err := Encode(Navigate{Type: KindNavigate, ID: id})
	if err != nil {
		h.logger.Error("Failed to encode navigate", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(KindNavigate, data)
}

// Receive ставит сообщение поверхности в очередь, не блокируясь
func (h *Host) Receive(data []byte) error {
	msg := append([]byte(nil), data...)
	select {
	case h.inbound <- msg:
		return nil
	default:
		h.logger.Warn("Bridge inbound queue is full, dropping message", zap.Int("capacity", cap(h.inbound)))
		h.observe("in", "unknown", "dropped")
		return ErrQueueFull
	}
}

// Inbound - очередь входящих сообщений для диспетчера
func (h *Host) Inbound() <-chan []byte {
	return h.inbound
}

// Close отключает всех подписчиков; открытые SSE-потоки завершаются
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub.frames)
	}
	h.updateGaugeLocked()
}

func (h *Host) broadcastLocked(kind Kind, data []byte) {
	for id, sub := range h.subscribers {
		select {
		case sub.frames <- data:
		default:
			// отстающая поверхность переподключится и получит последний setMarkers
			h.logger.Warn("Dropping slow bridge subscriber", zap.String("subscriber", id))
			delete(h.subscribers, id)
			close(sub.frames)
		}
	}
	h.updateGaugeLocked()
	h.observe("out", kind, "ok")
}

func (h *Host) updateGaugeLocked() {
	if h.metrics != nil {
		h.metrics.BridgeClients.Set(float64(len(h.subscribers)))
	}
}

func (h *Host) observe(direction string, kind Kind, outcome string) {
	if h.metrics != nil {
		h.metrics.BridgeMessages.WithLabelValues(direction, string(kind), outcome).Inc()
	}
}
