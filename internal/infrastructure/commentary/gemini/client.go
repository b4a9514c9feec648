package gemini

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
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/resilience"
	"github.com/riskibarqy/nations-league/internal/usecase"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second
)

var errGeminiTransient = crerr.New("gemini transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client asks the generative-language API for a short match report. The
// service layer treats it as best effort and falls back to a template
// when it errors, so every failure path here just returns an error.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	maxRetries     int
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

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          model,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// MatchCommentary generates a narrative report for a completed match.
func (c *Client) MatchCommentary(ctx context.Context, m match.Match) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: gemini api key not configured", usecase.ErrDependencyUnavailable)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gemini circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: commentary provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	text, err := c.generate(ctx, buildPrompt(m))
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errGeminiTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := sonic.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	fullURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errGeminiTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errGeminiTransient, readErr)
			case resp.StatusCode == http.StatusOK:
				return extractText(raw)
			case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
				lastErr = fmt.Errorf("%w: provider status=%d", errGeminiTransient, resp.StatusCode)
			default:
				return "", fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviate(raw))
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
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: generate request failed", errGeminiTransient)
	}
	c.logger.WarnContext(ctx, "gemini request failed", "model", c.model, "error", lastErr)
	return "", lastErr
}

func extractText(raw []byte) (string, error) {
	var envelope generateResponse
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, candidate := range envelope.Candidates {
		for _, p := range candidate.Content.Parts {
			buf.WriteString(p.Text)
		}
		break
	}

	return buf.String(), nil
}

// buildPrompt summarizes the match facts for the model. The model only
// narrates; the facts it receives are already final.
func buildPrompt(m match.Match) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	score := match.Score{}
	if m.Score != nil {
		score = *m.Score
	}

	fmt.Fprintf(buf, "Write a short, lively football match report (3-4 sentences) for a %s.\n", strings.ToLower(string(m.Round)))
	fmt.Fprintf(buf, "Result: %s %d-%d %s.\n", m.Team1.Country, score.Team1, score.Team2, m.Team2.Country)
	for _, g := range m.GoalScorers {
		fmt.Fprintf(buf, "Goal: %s (%s) in minute %d.\n", g.Player, g.Team, g.Minute)
	}
	if m.Winner != nil {
		if m.Winner.WonBy == match.WonByPenalties && m.Shootout != nil {
			fmt.Fprintf(buf, "%s won %d-%d on penalties after %d rounds.\n",
				m.Shootout.Winner, m.Shootout.Score.Team1, m.Shootout.Score.Team2, m.Shootout.Rounds)
		} else {
			fmt.Fprintf(buf, "%s won in normal time.\n", m.Winner.Country)
		}
	}
	buf.WriteString("Stick to these facts. Do not invent extra goals or players.")

	return buf.String()
}

func abbreviate(raw []byte) string {
	const limit = 256
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
