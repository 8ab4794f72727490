package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - имя, логгер и сигнал остановки, общие для фоновых задач
type BaseWorker struct {
	name   string
	logger *zap.Logger

	stopOnce sync.Once
	stopChan chan struct{}
}

func NewBaseWorker(name string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop можно вызывать повторно
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Debug("Stop requested")
		close(w.stopChan)
	})
	return nil
}

func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

// StopChan закрывается после Stop
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
