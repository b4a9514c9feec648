package firegate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/nations-league/internal/domain/user"
	"github.com/riskibarqy/nations-league/internal/platform/cache"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/resilience"
	"github.com/riskibarqy/nations-league/internal/usecase"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 5 * time.Minute
	verifyPath      = "/v1/tokens/verify"
)

var errFiregateTransient = crerr.New("firegate transient failure")

// ClientConfig configures the token-introspection client for the
// external auth provider.
type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client verifies bearer tokens against the auth provider and caches
// verdicts for a short TTL so admin bursts do not hammer it.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	cache          *cache.Store
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
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
		httpClient.Timeout = defaultTimeout
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		cache:          cache.NewStore(cacheTTL),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Verify introspects a bearer token. Invalid and expired tokens map to
// the unauthorized sentinel; provider outages map to the dependency
// sentinel so callers can distinguish a 401 from a 503.
func (c *Client) Verify(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: empty token", usecase.ErrUnauthorized)
	}

	if cached, ok := c.cache.Get(ctx, token); ok {
		if principal, ok := cached.(user.Principal); ok {
			return principal, nil
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "firegate circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: auth provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	verdict, err := c.introspect(ctx, token)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errFiregateTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if crerr.Is(err, errFiregateTransient) {
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}

	if !verdict.Active {
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	}

	principal := user.Principal{
		UserID: verdict.UserID,
		Email:  verdict.Email,
		Role:   user.Role(verdict.Role),
	}
	c.cache.Set(ctx, token, principal)

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (verifyResponse, error) {
	body, err := sonic.Marshal(verifyRequest{Token: token})
	if err != nil {
		return verifyResponse{}, fmt.Errorf("encode verify request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+verifyPath, bytes.NewReader(body))
		if err != nil {
			return verifyResponse{}, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("x-api-key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFiregateTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFiregateTransient, readErr)
			case resp.StatusCode == http.StatusOK:
				var verdict verifyResponse
				if err := sonic.Unmarshal(raw, &verdict); err != nil {
					return verifyResponse{}, fmt.Errorf("decode verify response: %w", err)
				}
				return verdict, nil
			case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
				return verifyResponse{}, fmt.Errorf("%w: provider status=%d", usecase.ErrUnauthorized, resp.StatusCode)
			case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
				lastErr = fmt.Errorf("%w: provider status=%d", errFiregateTransient, resp.StatusCode)
			default:
				return verifyResponse{}, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return verifyResponse{}, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: verify request failed", errFiregateTransient)
	}
	c.logger.WarnContext(ctx, "firegate verify failed", "error", lastErr)
	return verifyResponse{}, lastErr
}
