package device

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"vcgate/internal/platform/metrics"
	"vcgate/internal/platform/middleware"
	dErrors "vcgate/pkg/domain-errors"
)

var (
	alice = middleware.Principal{SubjectID: "1001", DisplayName: "Alice"}
	bob   = middleware.Principal{SubjectID: "2002", DisplayName: "Bob"}
)

type DeviceServiceSuite struct {
	suite.Suite
	service *Service
}

func TestDeviceServiceSuite(t *testing.T) {
	suite.Run(t, new(DeviceServiceSuite))
}

func (s *DeviceServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(NewInMemoryStore(), logger, metrics.New(prometheus.NewRegistry()))
}

func (s *DeviceServiceSuite) register(p middleware.Principal, network, address string) *Device {
	rec, err := s.service.Register(context.Background(), p, network, address)
	s.Require().NoError(err)
	return rec
}

func (s *DeviceServiceSuite) TestRegisterAssignsID() {
	first := s.register(alice, "lab", "10.0.0.1")
	second := s.register(alice, "lab", "10.0.0.2")

	s.NotZero(first.ID)
	s.NotEqual(first.ID, second.ID)
	s.Equal(alice.SubjectID, first.OwnerSubjectID)
}

func (s *DeviceServiceSuite) TestListScopedToOwner() {
	s.register(alice, "lab", "10.0.0.1")
	s.register(alice, "lab", "10.0.0.2")
	s.register(bob, "home", "192.168.0.5")

	mine, err := s.service.List(context.Background(), alice)
	s.Require().NoError(err)
	s.Len(mine, 2)
	for _, d := range mine {
		s.Equal(alice.SubjectID, d.OwnerSubjectID)
	}

	theirs, err := s.service.List(context.Background(), bob)
	s.Require().NoError(err)
	s.Len(theirs, 1)
}

func (s *DeviceServiceSuite) TestUpdateAppliesAllowListedFields() {
	rec := s.register(alice, "lab", "10.0.0.1")

	network := "field"
	address := "10.0.0.9"
	err := s.service.Update(context.Background(), alice, rec.ID, Patch{Network: &network, Address: &address})
	s.Require().NoError(err)

	got, err := s.service.Resolve(context.Background(), alice, rec.ID)
	s.Require().NoError(err)
	s.Equal("field", got.Network)
	s.Equal("10.0.0.9", got.Address)
	s.Equal(alice.SubjectID, got.OwnerSubjectID, "ownership must survive updates")
}

func (s *DeviceServiceSuite) TestUpdateByNonOwnerLooksLikeMissing() {
	rec := s.register(alice, "lab", "10.0.0.1")

	address := "6.6.6.6"
	crossErr := s.service.Update(context.Background(), bob, rec.ID, Patch{Address: &address})
	missingErr := s.service.Update(context.Background(), bob, 9999, Patch{Address: &address})

	s.True(dErrors.HasCode(crossErr, dErrors.CodeNotFound))
	s.True(dErrors.HasCode(missingErr, dErrors.CodeNotFound))

	// The record must be untouched.
	got, err := s.service.Resolve(context.Background(), alice, rec.ID)
	s.Require().NoError(err)
	s.Equal("10.0.0.1", got.Address)
}

func (s *DeviceServiceSuite) TestUpdateEmptyPatchRejected() {
	rec := s.register(alice, "lab", "10.0.0.1")

	err := s.service.Update(context.Background(), alice, rec.ID, Patch{})
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *DeviceServiceSuite) TestResolveByNonOwnerLooksLikeMissing() {
	rec := s.register(alice, "lab", "10.0.0.1")

	_, err := s.service.Resolve(context.Background(), bob, rec.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *DeviceServiceSuite) TestMissingPrincipalRejected() {
	_, err := s.service.Register(context.Background(), middleware.Principal{}, "lab", "10.0.0.1")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.List(context.Background(), middleware.Principal{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *DeviceServiceSuite) TestConcurrentRegisterUniqueIDs() {
	const n = 50

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := s.service.Register(context.Background(), alice, "lab", "10.0.0.1")
			if err == nil {
				ids <- rec.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		s.False(seen[id], "duplicate device id %d", id)
		seen[id] = true
	}
	s.Len(seen, n)
}

func TestAuthorize(t *testing.T) {
	if err := Authorize(alice, alice.SubjectID); err != nil {
		t.Fatalf("owner must be authorized: %v", err)
	}
	if err := Authorize(bob, alice.SubjectID); !dErrors.HasCode(err, dErrors.CodeForbidden) {
		t.Fatalf("non-owner must be forbidden, got %v", err)
	}
	if err := Authorize(middleware.Principal{}, ""); !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		t.Fatalf("empty principal must be unauthorized, got %v", err)
	}
}
