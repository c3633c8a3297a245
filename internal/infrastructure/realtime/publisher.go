package realtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
	"github.com/riskibarqy/recliiga/internal/platform/resilience"
	"github.com/riskibarqy/recliiga/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ForwardTokenHeader is the header subscribers receive the internal token
// on. The broker strips the Upstash-Forward- prefix before delivery.
const ForwardTokenHeader = "X-Internal-Token"

var errPublishTransient = crerr.New("pubsub transient failure")

type PublisherConfig struct {
	BaseURL        string
	Token          string
	ForwardToken   string
	Retries        int
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Envelope is the body delivered to every subscriber of a channel.
type Envelope struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Publisher publishes channel messages to an HTTP pub/sub broker, which
// fans them out to browsers and to every API instance's webhook.
type Publisher struct {
	client       *http.Client
	baseURL      string
	token        string
	forwardToken string
	retries      int
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid PUBSUB_BASE_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Publisher{
		client:       &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.Token),
		forwardToken: strings.TrimSpace(cfg.ForwardToken),
		retries:      cfg.Retries,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, msg usecase.RealtimeMessage) error {
	channel := strings.TrimSpace(msg.Channel)
	if channel == "" {
		return fmt.Errorf("%w: channel is required", usecase.ErrInvalidInput)
	}

	body, err := sonic.Marshal(Envelope{Channel: channel, Event: msg.Event, Payload: msg.Payload})
	if err != nil {
		return crerr.Wrap(err, "marshal realtime envelope")
	}
	publishURL := p.baseURL + "/v2/publish/" + url.PathEscape(channel)
	bodyText := truncateForLog(string(body), 4096)
	curlPreview := buildCurlPreview(publishURL, p.retries, bodyText, p.forwardToken != "")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("pubsub.channel", channel),
			attribute.String("pubsub.event", msg.Event),
			attribute.String("pubsub.request_curl_preview", curlPreview),
		)
	}
	p.logger.DebugContext(ctx, "pubsub publish request", "channel", channel, "event", msg.Event, "curl_preview", curlPreview)

	err = p.breaker.Do(ctx, func(ctx context.Context) error {
		return p.send(ctx, publishURL, body)
	}, isCircuitFailure)
	switch {
	case err == nil:
		p.logger.InfoContext(ctx, "pubsub message published", "channel", channel, "event", msg.Event)
		return nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		p.logger.WarnContext(ctx, "pubsub circuit breaker rejected request", "state", p.breaker.State())
		return fmt.Errorf("%w: pubsub is temporarily unavailable: %v", usecase.ErrDependencyUnavailable, err)
	case isCircuitFailure(err):
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		return err
	}
}

func (p *Publisher) send(ctx context.Context, publishURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, bytes.NewReader(body))
	if err != nil {
		return crerr.Wrap(err, "create pubsub request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if p.forwardToken != "" {
		req.Header.Set("Upstash-Forward-"+ForwardTokenHeader, p.forwardToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: publish url=%s: %v", errPublishTransient, publishURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if isRetryableStatus(resp.StatusCode) {
		return fmt.Errorf("%w: publish status=%d url=%s body=%s", errPublishTransient, resp.StatusCode, publishURL, strings.TrimSpace(string(raw)))
	}
	return crerr.Newf("publish status=%d url=%s body=%s", resp.StatusCode, publishURL, strings.TrimSpace(string(raw)))
}

// NopPublisher drops messages. It is used when pub/sub is disabled so a
// single instance still works without live updates.
type NopPublisher struct {
	logger *logging.Logger
}

func NewNopPublisher(logger *logging.Logger) *NopPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(ctx context.Context, msg usecase.RealtimeMessage) error {
	p.logger.DebugContext(ctx, "pubsub disabled, message dropped", "channel", msg.Channel, "event", msg.Event)
	return nil
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildCurlPreview(publishURL string, retries int, body string, withForwardToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}
	appendHeader := func(value string) {
		appendPart("-H")
		appendPart(shellQuote(value))
	}

	appendPart("curl -X POST")
	appendPart(shellQuote(publishURL))
	appendHeader("Authorization: Bearer ***")
	appendHeader("Content-Type: application/json")
	if retries > 0 {
		appendHeader("Upstash-Retries: " + strconv.Itoa(retries))
	}
	if withForwardToken {
		appendHeader("Upstash-Forward-" + ForwardTokenHeader + ": ***")
	}
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isCircuitFailure(err error) bool {
	return errors.Is(err, errPublishTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
