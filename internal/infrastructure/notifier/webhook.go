// Package notifier announces finished match results to the league office
// over a configured webhook. Delivery is best effort: the recorder logs
// failures and never blocks a save on them.
package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
	"github.com/grassroots-fc/matchday/internal/platform/resilience"
)

type WebhookConfig struct {
	URL            string
	AuthToken      string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type WebhookNotifier struct {
	client         *fasthttp.Client
	url            string
	authToken      string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookNotifier(cfg WebhookConfig, logger *logging.Logger) (*WebhookNotifier, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, crerr.New("webhook url is required")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, crerr.Newf("webhook url %q must be http or https", url)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookNotifier{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		url:            url,
		authToken:      strings.TrimSpace(cfg.AuthToken),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

type resultPayload struct {
	MatchID   string `json:"match_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Status    string `json:"status"`
	Venue     string `json:"venue,omitempty"`
}

func (n *WebhookNotifier) NotifyResult(ctx context.Context, m match.Match) error {
	if n.circuitEnabled {
		if err := n.breaker.Allow(); err != nil {
			n.logger.WarnContext(ctx, "result webhook circuit breaker rejected request", "state", string(n.breaker.State()))
			return fmt.Errorf("result webhook is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(resultPayload{
		MatchID:   m.ID,
		HomeTeam:  m.HomeTeam.Name,
		AwayTeam:  m.AwayTeam.Name,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Status:    m.Status,
		Venue:     m.Venue,
	})
	if err != nil {
		return crerr.Wrap(err, "marshal result payload")
	}

	err = n.post(ctx, body)
	if n.circuitEnabled {
		if err != nil {
			n.breaker.RecordFailure()
		} else {
			n.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "result webhook delivered",
		"match_id", m.ID, "home_score", m.HomeScore, "away_score", m.AwayScore)
	return nil
}

func (n *WebhookNotifier) post(ctx context.Context, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if n.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.authToken)
	}
	req.SetBody(body)

	timeout := n.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := n.client.DoTimeout(req, resp, timeout); err != nil {
		return crerr.Wrap(err, "post result webhook")
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return crerr.Newf("result webhook returned status=%d body=%s", status, previewBody(resp.Body()))
	}

	return nil
}

// previewBody keeps error messages bounded when the receiver returns a
// large error page.
func previewBody(body []byte) string {
	const maxPreview = 512

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if len(body) > maxPreview {
		_, _ = buf.Write(body[:maxPreview])
		_, _ = buf.WriteString("...")
	} else {
		_, _ = buf.Write(body)
	}

	return buf.String()
}
