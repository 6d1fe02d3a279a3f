package illustration_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2beens/fitcoach/internal/illustration"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func postImage(h *illustration.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/image", strings.NewReader(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HandleImage).ServeHTTP(rr, req)
	return rr
}

func TestHandler_HandleImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	ill := NewMockillustrator(ctrl)
	metricsManager := metrics.NewTestManager()
	h := illustration.NewHandler(ill, metricsManager)

	ill.EXPECT().Illustrate(gomock.Any(), "Push-ups", illustration.CategoryExercise).
		Return(&illustration.Image{Data: "AAA", Source: "images"}, nil)

	rr := postImage(h, `{"type":"exercise","prompt":" Push-ups "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"imageUrl":"data:image/png;base64,AAA"}`, rr.Body.String())
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterImageRequests.WithLabelValues("ok")))

	ill.EXPECT().Illustrate(gomock.Any(), "Oatmeal", illustration.CategoryMeal).
		Return(&illustration.Image{Data: "BBB"}, nil)
	rr = postImage(h, `{"type":"snack","prompt":"Oatmeal"}`)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_HandleImage_BadRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := illustration.NewHandler(NewMockillustrator(ctrl), metrics.NewTestManager())

	rr := postImage(h, `{"type":"meal","prompt":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Prompt is required"}`, rr.Body.String())

	rr = postImage(h, `{`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleImage_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"not configured", illustration.ErrNotConfigured, "GEMINI_API_KEY is not set. Add it to your environment to enable image generation."},
		{"model missing", illustration.ErrModelNotFound, "Image generation model not available. Gemini image generation may require additional API access. Please check your Google Cloud project settings or use an alternative image service."},
		{"provider message", &illustration.APIError{StatusCode: 403, Message: "quota exceeded"}, "quota exceeded"},
		{"provider without message", &illustration.APIError{StatusCode: 500}, "Failed to generate image with Gemini. Check API key and quota."},
		{"no image data", illustration.ErrNoImageData, "Gemini did not return image data in expected format."},
		{"transport", &illustration.TransportError{Err: errors.New("connection refused")}, "Image generation failed: connection refused. Please ensure image generation is enabled in your Google Cloud project."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ill := NewMockillustrator(ctrl)
			metricsManager := metrics.NewTestManager()
			h := illustration.NewHandler(ill, metricsManager)

			ill.EXPECT().Illustrate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rr := postImage(h, `{"type":"meal","prompt":"Oatmeal"}`)
			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.JSONEq(t, `{"error":`+quote(tc.wantMsg)+`}`, rr.Body.String())
			assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterImageRequests.WithLabelValues("error")))
		})
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
