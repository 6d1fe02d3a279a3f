package generation

import (
	"context"
	"errors"
	"strings"

	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const genericProviderFailure = "All Gemini models failed. Please check your API key and model availability."

var (
	ErrNotConfigured   = errors.New("plan generation is not configured: GEMINI_API_KEY missing")
	ErrAllModelsFailed = errors.New("all generation models failed")
)

// ProviderError is returned when every configured model failed. Its message
// is the last failure's message, or a generic one if no model reported an error.
type ProviderError struct {
	Model   string
	LastErr error
}

func (e *ProviderError) Error() string {
	if e.LastErr != nil {
		return e.LastErr.Error()
	}
	return genericProviderFailure
}

func (e *ProviderError) Unwrap() []error {
	if e.LastErr == nil {
		return []error{ErrAllModelsFailed}
	}
	return []error{ErrAllModelsFailed, e.LastErr}
}

//go:generate mockgen -source=client.go -destination=client_mock_test.go -package=generation
type modelCaller interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

// Client walks the model list in order and returns the first non-empty text.
type Client struct {
	caller  modelCaller
	models  []string
	metrics *metrics.Manager
}

func NewClient(caller modelCaller, models []string, metricsManager *metrics.Manager) *Client {
	return &Client{
		caller:  caller,
		models:  models,
		metrics: metricsManager,
	}
}

func (c *Client) GenerateText(ctx context.Context, prompt string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "generation.client.generateText")
	defer tracing.EndSpan(span, &err)

	if c.caller == nil || len(c.models) == 0 {
		return "", ErrNotConfigured
	}

	var lastErr error
	lastModel := ""
	for _, model := range c.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		lastModel = model

		text, callErr := c.caller.GenerateContent(ctx, model, prompt)
		if callErr != nil {
			log.Warnf("model [%s] failed, trying next: %s", model, callErr)
			lastErr = callErr
			c.countFailure(model)
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Warnf("model [%s] returned empty text, trying next", model)
			c.countFailure(model)
			continue
		}

		span.SetAttributes(attribute.String("model", model))
		log.Debugf("model [%s] generated %d chars", model, len(text))
		return text, nil
	}

	return "", &ProviderError{Model: lastModel, LastErr: lastErr}
}

func (c *Client) countFailure(model string) {
	if c.metrics != nil {
		c.metrics.CounterModelFailures.WithLabelValues(model).Inc()
	}
}
