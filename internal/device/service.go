package device

import (
	"context"
	"log/slog"

	"vcgate/internal/platform/metrics"
	"vcgate/internal/platform/middleware"
	dErrors "vcgate/pkg/domain-errors"
)

// Authorize is the single ownership predicate for device records. Every
// operation that touches an existing record goes through it with the record
// owner it intends to act for, so the authorization rule lives in one place
// instead of being re-derived per query.
func Authorize(p middleware.Principal, ownerSubjectID string) error {
	if p.SubjectID == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "missing principal")
	}
	if p.SubjectID != ownerSubjectID {
		return dErrors.New(dErrors.CodeForbidden, "principal does not own resource")
	}
	return nil
}

// Service implements the owner-scoped device registry. All reads and writes
// are filtered by the authenticated principal; a record owned by someone else
// is indistinguishable from one that does not exist.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, logger: logger, metrics: m}
}

// Register creates a device record owned by the principal.
func (s *Service) Register(ctx context.Context, p middleware.Principal, network, address string) (*Device, error) {
	if err := Authorize(p, p.SubjectID); err != nil {
		return nil, err
	}

	rec, err := s.store.Create(ctx, &Device{
		OwnerSubjectID: p.SubjectID,
		Network:        network,
		Address:        address,
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DevicesRegistered.Inc()
	}
	s.logger.Info("device registered",
		slog.Int64("device_id", rec.ID),
		slog.String("network", rec.Network),
	)
	return rec, nil
}

// Update applies the patch to the principal's device. A wrong owner and a
// missing id both surface as not found.
func (s *Service) Update(ctx context.Context, p middleware.Principal, id int64, patch Patch) error {
	if err := Authorize(p, p.SubjectID); err != nil {
		return err
	}
	if patch.Empty() {
		return dErrors.New(dErrors.CodeBadRequest, "no updatable fields in request")
	}

	n, err := s.store.UpdateOwned(ctx, id, p.SubjectID, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return dErrors.New(dErrors.CodeNotFound, "device not found")
	}

	s.logger.Info("device updated", slog.Int64("device_id", id))
	return nil
}

// List returns the principal's devices in registration order.
func (s *Service) List(ctx context.Context, p middleware.Principal) ([]Device, error) {
	if err := Authorize(p, p.SubjectID); err != nil {
		return nil, err
	}
	return s.store.ListByOwner(ctx, p.SubjectID)
}

// Resolve returns the principal's device by id for address lookups.
func (s *Service) Resolve(ctx context.Context, p middleware.Principal, id int64) (*Device, error) {
	if err := Authorize(p, p.SubjectID); err != nil {
		return nil, err
	}

	rec, err := s.store.FindOwned(ctx, id, p.SubjectID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "device not found")
	}
	return rec, nil
}
