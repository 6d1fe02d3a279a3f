package speech

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	log "github.com/sirupsen/logrus"
)

var filenamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,40}$`)

//go:generate mockgen -source=handler.go -destination=handler_mock_test.go -package=speech_test
type synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (*Audio, error)
	Voices(ctx context.Context) ([]Voice, error)
}

type Handler struct {
	synth   synthesizer
	metrics *metrics.Manager
}

func NewHandler(synth synthesizer, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		synth:   synth,
		metrics: metricsManager,
	}
}

type ttsRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
	Section string `json:"section"`
}

type ttsPlanRequest struct {
	Plan    json.RawMessage `json:"plan"`
	VoiceID string          `json:"voiceId"`
	Section string          `json:"section"`
}

type voicesResponse struct {
	Error  string  `json:"error,omitempty"`
	Voices []Voice `json:"voices"`
}

func (h *Handler) HandleTTS(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.speech.tts")
	defer span.End()

	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		pkg.WriteJSONError(w, "Text is required", http.StatusBadRequest)
		return
	}

	h.speak(ctx, w, req.Text, req.VoiceID, req.Section)
}

// HandleTTSPlan narrates a plan server side and returns the audio.
func (h *Handler) HandleTTSPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.speech.ttsplan")
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, plan.MaxDocumentSize))
	if err != nil {
		pkg.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	var req ttsPlanRequest
	if err := json.Unmarshal(body, &req); err != nil {
		pkg.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	section, err := ParseSection(req.Section)
	if err != nil {
		pkg.WriteJSONError(w, "Invalid section", http.StatusBadRequest)
		return
	}
	p, err := plan.Decode(req.Plan)
	if err != nil {
		log.Debugf("tts plan, invalid plan: %s", err)
		pkg.WriteJSONError(w, "Invalid plan provided", http.StatusBadRequest)
		return
	}

	h.speak(ctx, w, Narrate(p, section), req.VoiceID, string(section))
}

func (h *Handler) HandleVoices(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.speech.voices")
	defer span.End()

	voices, err := h.synth.Voices(ctx)
	if err != nil {
		span.RecordError(err)
		log.Errorf("fetch voices: %s", err)
		pkg.WriteJSON(w, voicesResponse{Error: "Failed to fetch voices", Voices: []Voice{}}, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, voicesResponse{Voices: voices}, http.StatusOK)
}

func (h *Handler) speak(ctx context.Context, w http.ResponseWriter, text, voiceID, section string) {
	audio, err := h.synth.Synthesize(ctx, text, voiceID)
	if err != nil {
		h.metrics.CounterSpeechRequests.WithLabelValues("error").Inc()
		log.Errorf("tts: %s", err)
		pkg.WriteJSONError(w, errorMessage(err), http.StatusInternalServerError)
		return
	}
	h.metrics.CounterSpeechRequests.WithLabelValues("ok").Inc()

	filename := "plan"
	if filenamePattern.MatchString(section) {
		filename = section
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mp3"`, filename))
	pkg.WriteResponseBytesOK(w, audio.ContentType, audio.Data)
}

func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) || errors.Is(err, ErrNotConfigured) {
		return err.Error()
	}
	return "Failed to generate speech. Please check your ELEVENLABS_API_KEY."
}
