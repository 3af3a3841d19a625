package blocklist

import (
	"context"
	"log/slog"

	"vcgate/internal/platform/metrics"
	dErrors "vcgate/pkg/domain-errors"
)

// Service manages the shared IP blocklist. There is no per-principal scoping;
// callers operate on one global table.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, logger: logger, metrics: m}
}

func (s *Service) Block(ctx context.Context, ip string) (*Entry, error) {
	rec, err := s.store.Create(ctx, &Entry{IP: ip})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BlocklistEntries.Inc()
	}
	s.logger.Info("ip blocked", slog.Int64("entry_id", rec.ID), slog.String("ip", rec.IP))
	return rec, nil
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.store.List(ctx)
}

func (s *Service) Unblock(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return dErrors.New(dErrors.CodeNotFound, "blocklist entry not found")
	}

	if s.metrics != nil {
		s.metrics.BlocklistEntries.Dec()
	}
	s.logger.Info("ip unblocked", slog.Int64("entry_id", id))
	return nil
}
