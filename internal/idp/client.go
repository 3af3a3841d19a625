// Package idp adapts the external identity provider: it exchanges an opaque
// user access token for a verified external identity. There is no logic here
// beyond the typed request/response contract and error mapping.
package idp

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks Client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	dErrors "vcgate/pkg/domain-errors"
)

// ExternalIdentity is the verified identity the provider vouches for.
type ExternalIdentity struct {
	SubjectID   string
	DisplayName string
	Phone       string
}

// Client exchanges an opaque user token for a verified identity.
type Client interface {
	ExchangeToken(ctx context.Context, userToken string) (*ExternalIdentity, error)
}

// HTTPClient calls the provider's userinfo endpoint with the user token as a
// bearer credential. A slow provider stalls only the requesting call chain;
// the http.Client timeout bounds the stall.
type HTTPClient struct {
	userInfoURL string
	httpClient  *http.Client
}

func NewHTTPClient(userInfoURL string) *HTTPClient {
	return &HTTPClient{
		userInfoURL: userInfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// userInfoResponse mirrors the provider's userinfo payload; the numeric id is
// the stable subject identifier.
type userInfoResponse struct {
	ID         int64 `json:"id"`
	Properties struct {
		Nickname string `json:"nickname"`
	} `json:"properties"`
	Account struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"kakao_account"`
}

func (c *HTTPClient) ExchangeToken(ctx context.Context, userToken string) (*ExternalIdentity, error) {
	if userToken == "" {
		return nil, dErrors.New(dErrors.CodeIdentityProvider, "user token is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeIdentityProvider, "build userinfo request")
	}
	req.Header.Set("Authorization", "Bearer "+userToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeIdentityProvider, "identity provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.New(dErrors.CodeIdentityProvider,
			fmt.Sprintf("identity provider returned status %d", resp.StatusCode))
	}

	var body userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeIdentityProvider, "decode userinfo response")
	}
	if body.ID == 0 {
		return nil, dErrors.New(dErrors.CodeIdentityProvider, "userinfo response has no subject id")
	}

	return &ExternalIdentity{
		SubjectID:   strconv.FormatInt(body.ID, 10),
		DisplayName: body.Properties.Nickname,
		Phone:       body.Account.PhoneNumber,
	}, nil
}
