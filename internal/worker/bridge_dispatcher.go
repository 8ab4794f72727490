package worker

import (
	"context"

	"github.com/heritage-explorer/internal/bridge"
	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/pkg/metrics"
	"go.uber.org/zap"
)

// InboundSource - очередь сообщений поверхности карты
type InboundSource interface {
	Inbound() <-chan []byte
}

// MapInput принимает разобранные события поверхности
type MapInput interface {
	HandleMarkerPress(id int64)
	HandleRegionChange(vp domain.Viewport)
}

// BridgeDispatcher по одному разбирает сообщения поверхности и передаёт их
// контроллеру карты. Невалидные сообщения отбрасываются.
type BridgeDispatcher struct {
	*BaseWorker
	source  InboundSource
	target  MapInput
	metrics *metrics.Metrics
}

// NewBridgeDispatcher создает новый BridgeDispatcher. m может быть nil.
func NewBridgeDispatcher(source InboundSource, target MapInput, m *metrics.Metrics, logger *zap.Logger) *BridgeDispatcher {
	return &BridgeDispatcher{
		BaseWorker: NewBaseWorker("bridge-dispatcher", logger),
		source:     source,
		target:     target,
		metrics:    m,
	}
}

// Start запускает воркер
func (d *BridgeDispatcher) Start(ctx context.Context) error {
	logger := d.Logger()
	logger.Info("Starting bridge dispatcher")

	inbound := d.source.Inbound()
	for {
		select {
		case <-d.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case data := <-inbound:
			d.Dispatch(data)
		}
	}
}

// Dispatch разбирает одно сообщение и вызывает обработчик
func (d *BridgeDispatcher) Dispatch(data []byte) {
	msg, err := bridge.Decode(data)
	if err != nil {
		d.Logger().Debug("Ignoring malformed bridge message", zap.Error(err), zap.ByteString("payload", data))
		d.observe("invalid", "malformed")
		return
	}

	switch msg.Kind {
	case bridge.KindMarkerPress:
		d.target.HandleMarkerPress(msg.ID)
	case bridge.KindRegionChange:
		d.target.HandleRegionChange(msg.Viewport)
	}
	d.observe(string(msg.Kind), "ok")
}

func (d *BridgeDispatcher) observe(kind, outcome string) {
	if d.metrics != nil {
		d.metrics.BridgeMessages.WithLabelValues("in", kind, outcome).Inc()
	}
}
