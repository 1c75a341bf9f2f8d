package repository

import (
	"context"
	"errors"
	"time"

	"tasks_api/internal/domain"
	"tasks_api/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_store_operations_total",
			Help: "Task store operations by outcome",
		},
		[]string{"operation", "result"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "task_store_operation_duration_seconds",
			Help:    "Task store operation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(StoreOps)
	prometheus.MustRegister(StoreLatency)
}

// InstrumentedStore records metrics and logs failures around another TaskStore.
type InstrumentedStore struct {
	next TaskStore
}

func NewInstrumentedStore(next TaskStore) *InstrumentedStore {
	return &InstrumentedStore{next: next}
}

func (s *InstrumentedStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	done := s.observe(ctx, "find_all")
	tasks, err := s.next.FindAll(ctx)
	done(err)
	return tasks, err
}

func (s *InstrumentedStore) FindByID(ctx context.Context, id string) (domain.Task, error) {
	done := s.observe(ctx, "find_by_id")
	t, err := s.next.FindByID(ctx, id)
	done(err)
	return t, err
}

func (s *InstrumentedStore) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	done := s.observe(ctx, "save")
	t, err := s.next.Save(ctx, task)
	done(err)
	return t, err
}

func (s *InstrumentedStore) Update(ctx context.Context, id string, task domain.Task) (domain.Task, error) {
	done := s.observe(ctx, "update")
	t, err := s.next.Update(ctx, id, task)
	done(err)
	return t, err
}

func (s *InstrumentedStore) DeleteByID(ctx context.Context, id string) error {
	done := s.observe(ctx, "delete")
	err := s.next.DeleteByID(ctx, id)
	done(err)
	return err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *InstrumentedStore) Close() {
	s.next.Close()
}

func (s *InstrumentedStore) observe(ctx context.Context, op string) func(error) {
	start := time.Now()
	return func(err error) {
		StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
		result := resultLabel(err)
		StoreOps.WithLabelValues(op, result).Inc()

		log := logger.FromContext(ctx)
		switch result {
		case "ok", "not_found", "conflict":
			log.Debug("task store", "operation", op, "result", result)
		default:
			log.Error("task store failed", "operation", op, "result", result, "error", err)
		}
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrTaskNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTaskConflict):
		return "conflict"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
