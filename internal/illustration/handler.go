package illustration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	msgNotConfigured = "GEMINI_API_KEY is not set. Add it to your environment to enable image generation."
	msgModelNotFound = "Image generation model not available. Gemini image generation may require additional API access. Please check your Google Cloud project settings or use an alternative image service."
	msgAPIFailure    = "Failed to generate image with Gemini. Check API key and quota."
	msgNoImageData   = "Gemini did not return image data in expected format."
)

//go:generate mockgen -source=handler.go -destination=handler_mock_test.go -package=illustration_test
type illustrator interface {
	Illustrate(ctx context.Context, subject string, category Category) (*Image, error)
}

type Handler struct {
	illustrator illustrator
	metrics     *metrics.Manager
}

func NewHandler(illustrator illustrator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		illustrator: illustrator,
		metrics:     metricsManager,
	}
}

type imageRequest struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.illustration.image")
	defer span.End()

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	subject := strings.TrimSpace(req.Prompt)
	if subject == "" {
		pkg.WriteJSONError(w, "Prompt is required", http.StatusBadRequest)
		return
	}

	img, err := h.illustrator.Illustrate(ctx, subject, ParseCategory(req.Type))
	if err != nil {
		span.RecordError(err)
		h.metrics.CounterImageRequests.WithLabelValues("error").Inc()
		log.Errorf("illustrate [%s]: %s", subject, err)
		pkg.WriteJSONError(w, UserMessage(err), http.StatusInternalServerError)
		return
	}
	h.metrics.CounterImageRequests.WithLabelValues("ok").Inc()

	pkg.WriteJSON(w, imageResponse{ImageURL: img.DataURI()}, http.StatusOK)
}

// UserMessage turns an Illustrate error into text fit for the end user.
func UserMessage(err error) string {
	var apiErr *APIError
	var transportErr *TransportError
	switch {
	case errors.Is(err, ErrNotConfigured):
		return msgNotConfigured
	case errors.Is(err, ErrModelNotFound):
		return msgModelNotFound
	case errors.Is(err, ErrNoImageData):
		return msgNoImageData
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgAPIFailure
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Image generation failed: %s. Please ensure image generation is enabled in your Google Cloud project.", transportErr.Err)
	default:
		return fmt.Sprintf("Image generation failed: %s. Please ensure image generation is enabled in your Google Cloud project.", err)
	}
}
