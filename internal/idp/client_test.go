package idp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	dErrors "vcgate/pkg/domain-errors"
)

func TestExchangeToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 42, "properties": {"nickname": "Alice"}, "kakao_account": {"phone_number": "010-1234-5678"}}`))
		case "Bearer opaque-response":
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)

	t.Run("valid token yields identity", func(t *testing.T) {
		identity, err := client.ExchangeToken(context.Background(), "good-token")
		require.NoError(t, err)
		require.Equal(t, &ExternalIdentity{
			SubjectID:   "42",
			DisplayName: "Alice",
			Phone:       "010-1234-5678",
		}, identity)
	})

	t.Run("rejected token is identity provider error", func(t *testing.T) {
		_, err := client.ExchangeToken(context.Background(), "bad-token")
		require.Error(t, err)
		require.True(t, dErrors.HasCode(err, dErrors.CodeIdentityProvider))
	})

	t.Run("empty token fails without a call", func(t *testing.T) {
		_, err := client.ExchangeToken(context.Background(), "")
		require.True(t, dErrors.HasCode(err, dErrors.CodeIdentityProvider))
	})

	t.Run("response without subject id is rejected", func(t *testing.T) {
		_, err := client.ExchangeToken(context.Background(), "opaque-response")
		require.True(t, dErrors.HasCode(err, dErrors.CodeIdentityProvider))
	})
}
