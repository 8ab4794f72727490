package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// stopTimeout - сколько ждать фоновые задачи при выключении клиента
const stopTimeout = 10 * time.Second

// Worker - фоновая задача клиента. Start блокируется до остановки.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

// WorkerManager запускает фоновые задачи клиента и останавливает их вместе
type WorkerManager struct {
	logger *zap.Logger

	mu      sync.Mutex
	workers []Worker
	started bool
	wg      sync.WaitGroup
}

func NewWorkerManager(logger *zap.Logger) *WorkerManager {
	return &WorkerManager{logger: logger}
}

// Register добавляет задачу; после Start регистрация недоступна
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		m.logger.Warn("Worker registered after start is ignored", zap.String("worker", w.Name()))
		return
	}
	m.workers = append(m.workers, w)
}

// Start запускает каждую задачу в своей горутине
func (m *WorkerManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.workers) == 0 {
		return fmt.Errorf("no workers registered")
	}
	if m.started {
		return fmt.Errorf("workers already started")
	}
	m.started = true

	names := make([]string, 0, len(m.workers))
	for _, w := range m.workers {
		names = append(names, w.Name())
		m.wg.Add(1)
		go m.run(ctx, w)
	}
	m.logger.Info("Workers started", zap.Strings("workers", names))
	return nil
}

func (m *WorkerManager) run(ctx context.Context, w Worker) {
	defer m.wg.Done()

	err := w.Start(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		m.logger.Debug("Worker finished", zap.String("worker", w.Name()))
	default:
		m.logger.Error("Worker failed", zap.String("worker", w.Name()), zap.Error(err))
	}
}

// Stop сигнализирует всем задачам и ждёт их не дольше stopTimeout
func (m *WorkerManager) Stop() error {
	m.mu.Lock()
	workers := append([]Worker(nil), m.workers...)
	m.mu.Unlock()

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker", zap.String("worker", w.Name()), zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Workers stopped")
		return nil
	case <-time.After(stopTimeout):
		return fmt.Errorf("workers did not stop within %v", stopTimeout)
	}
}
