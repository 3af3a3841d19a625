package blocklist

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"vcgate/internal/platform/metrics"
	dErrors "vcgate/pkg/domain-errors"
)

type BlocklistServiceSuite struct {
	suite.Suite
	service *Service
}

func TestBlocklistServiceSuite(t *testing.T) {
	suite.Run(t, new(BlocklistServiceSuite))
}

func (s *BlocklistServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(NewInMemoryStore(), logger, metrics.New(prometheus.NewRegistry()))
}

func (s *BlocklistServiceSuite) TestBlockThenListContainsEntry() {
	rec, err := s.service.Block(context.Background(), "203.0.113.7")
	s.Require().NoError(err)
	s.NotZero(rec.ID)

	entries, err := s.service.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("203.0.113.7", entries[0].IP)
}

func (s *BlocklistServiceSuite) TestUnblockRemovesEntry() {
	rec, err := s.service.Block(context.Background(), "203.0.113.7")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Unblock(context.Background(), rec.ID))

	entries, err := s.service.List(context.Background())
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *BlocklistServiceSuite) TestUnblockTwiceNotFound() {
	rec, err := s.service.Block(context.Background(), "203.0.113.7")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Unblock(context.Background(), rec.ID))
	err = s.service.Unblock(context.Background(), rec.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *BlocklistServiceSuite) TestDuplicateIPsIndependent() {
	first, err := s.service.Block(context.Background(), "203.0.113.7")
	s.Require().NoError(err)
	second, err := s.service.Block(context.Background(), "203.0.113.7")
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)

	s.Require().NoError(s.service.Unblock(context.Background(), first.ID))

	entries, err := s.service.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(second.ID, entries[0].ID)
}
