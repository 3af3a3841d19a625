package vc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vcgate/internal/vc"
	"vcgate/internal/vc/mocks"
)

type staticVerifier struct {
	claims *vc.VerifiedClaims
	err    error
	calls  int
}

func (s *staticVerifier) Verify(context.Context, string) (*vc.VerifiedClaims, error) {
	s.calls++
	return s.claims, s.err
}

type CacheSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	cache *mocks.MockCache
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.cache = mocks.NewMockCache(s.ctrl)
}

func (s *CacheSuite) TestHitSkipsVerification() {
	want := &vc.VerifiedClaims{SubjectID: "U1", DisplayName: "Alice"}
	inner := &staticVerifier{claims: want}
	cached := vc.NewCachedVerifier(inner, s.cache, time.Minute, nil)

	s.cache.EXPECT().Get(gomock.Any(), vc.TokenHash("tok")).Return(want, true, nil)

	got, err := cached.Verify(context.Background(), "tok")
	s.Require().NoError(err)
	s.Equal(want, got)
	s.Zero(inner.calls, "inner verifier must not run on a cache hit")
}

func (s *CacheSuite) TestMissVerifiesAndStores() {
	want := &vc.VerifiedClaims{SubjectID: "U1", DisplayName: "Alice"}
	inner := &staticVerifier{claims: want}
	cached := vc.NewCachedVerifier(inner, s.cache, time.Minute, nil)

	s.cache.EXPECT().Get(gomock.Any(), vc.TokenHash("tok")).Return(nil, false, nil)
	s.cache.EXPECT().Set(gomock.Any(), vc.TokenHash("tok"), want, time.Minute).Return(nil)

	got, err := cached.Verify(context.Background(), "tok")
	s.Require().NoError(err)
	s.Equal(want, got)
	s.Equal(1, inner.calls)
}

func (s *CacheSuite) TestFailuresAreNotCached() {
	inner := &staticVerifier{err: errors.New("bad signature")}
	cached := vc.NewCachedVerifier(inner, s.cache, time.Minute, nil)

	s.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil).Times(2)

	for range 2 {
		_, err := cached.Verify(context.Background(), "tok")
		s.Require().Error(err)
	}
	s.Equal(2, inner.calls, "failures must re-verify every time")
}

func (s *CacheSuite) TestCacheErrorDegradesToVerification() {
	want := &vc.VerifiedClaims{SubjectID: "U1", DisplayName: "Alice"}
	inner := &staticVerifier{claims: want}
	cached := vc.NewCachedVerifier(inner, s.cache, time.Minute, nil)

	s.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	s.cache.EXPECT().Set(gomock.Any(), gomock.Any(), want, time.Minute).Return(errors.New("redis down"))

	got, err := cached.Verify(context.Background(), "tok")
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *CacheSuite) TestEntryTTLClampedToCredentialExpiry() {
	// The credential expires well before the configured TTL; the entry must
	// not outlive it.
	want := &vc.VerifiedClaims{
		SubjectID:   "U1",
		DisplayName: "Alice",
		ExpiresAt:   time.Now().Add(10 * time.Second),
	}
	inner := &staticVerifier{claims: want}
	cached := vc.NewCachedVerifier(inner, s.cache, time.Minute, nil)

	s.cache.EXPECT().Get(gomock.Any(), vc.TokenHash("tok")).Return(nil, false, nil)
	s.cache.EXPECT().Set(gomock.Any(), vc.TokenHash("tok"), want, gomock.Cond(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= 10*time.Second
	})).Return(nil)

	_, err := cached.Verify(context.Background(), "tok")
	s.Require().NoError(err)
}

func (s *CacheSuite) TestExpiredCredentialNeverCached() {
	want := &vc.VerifiedClaims{
		SubjectID:   "U1",
		DisplayName: "Alice",
		ExpiresAt:   time.Now().Add(-time.Second),
	}
	inner := &staticVerifier{claims: want}
	cached := vc.NewCachedVerifier(inner, s.cache, time.Minute, nil)

	// No Set expectation: nothing may be stored for an already-expired token.
	s.cache.EXPECT().Get(gomock.Any(), vc.TokenHash("tok")).Return(nil, false, nil)

	_, err := cached.Verify(context.Background(), "tok")
	s.Require().NoError(err)
}

func (s *CacheSuite) TestTokenHashIsDeterministicAndOpaque() {
	h1 := vc.TokenHash("credential-token")
	h2 := vc.TokenHash("credential-token")
	s.Equal(h1, h2)
	s.NotContains(h1, "credential-token")
}
