package identity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/recliiga/internal/domain/user"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
	"github.com/riskibarqy/recliiga/internal/platform/resilience"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

var errIdentityTransient = crerr.New("identity provider transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	IntrospectPath string
	RevokePath     string
	AdminKey       string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client verifies and revokes access tokens at the identity provider's
// introspection API.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	revokeURL     string
	adminKey      string
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 5 * time.Second
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		revokeURL:     buildURL(cfg.BaseURL, cfg.RevokePath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		logger:        logger,
		breaker:       resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var decoded introspectResponse
	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		status, body, err := c.post(ctx, c.introspectURL, tokenRequest{Token: token})
		if err != nil {
			return err
		}
		switch {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
		case isRetryableStatus(status):
			return fmt.Errorf("%w: introspection status=%d", errIdentityTransient, status)
		case status != http.StatusOK:
			c.logger.WarnContext(ctx, "identity introspection non-200", "status_code", status)
			return crerr.Newf("identity introspection failed with status %d", status)
		}
		if err := sonic.Unmarshal(body, &decoded); err != nil {
			return crerr.Wrap(err, "unmarshal introspect response")
		}
		return nil
	}, isCircuitFailure)
	if err != nil {
		return user.Principal{}, c.classify(ctx, "verify access token", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, crerr.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

// RevokeAccessToken invalidates token at the provider. Tokens the provider
// already rejects count as revoked.
func (c *Client) RevokeAccessToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		status, _, err := c.post(ctx, c.revokeURL, tokenRequest{Token: token})
		if err != nil {
			return err
		}
		switch {
		case status/100 == 2, status == http.StatusUnauthorized:
			return nil
		case isRetryableStatus(status):
			return fmt.Errorf("%w: revoke status=%d", errIdentityTransient, status)
		default:
			return crerr.Newf("identity revoke failed with status %d", status)
		}
	}, isCircuitFailure)
	if err != nil {
		return c.classify(ctx, "revoke access token", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return 0, nil, crerr.Wrap(err, "marshal identity request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, crerr.Wrap(err, "create identity request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: request identity provider: %v", errIdentityTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read identity response: %v", errIdentityTransient, err)
	}
	return resp.StatusCode, body, nil
}

// classify maps transport failures and an open breaker to
// usecase.ErrDependencyUnavailable; auth failures pass through.
func (c *Client) classify(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return err
	case errors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "identity circuit breaker rejected request", "op", op, "state", c.breaker.State())
		return fmt.Errorf("%w: identity provider: %v", usecase.ErrDependencyUnavailable, err)
	case isCircuitFailure(err):
		c.logger.WarnContext(ctx, "identity provider unavailable", "op", op, "error", err)
		return fmt.Errorf("%w: %s: %v", usecase.ErrDependencyUnavailable, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type tokenRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
