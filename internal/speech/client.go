package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour          = 60 * 60
	voicesCacheKey   = "voices"
	voicesCacheSize  = 1024 * 1024
	msgSpeechFailure = "Failed to generate speech. Check your ELEVENLABS_API_KEY and character limits."
)

var ErrNotConfigured = errors.New("ELEVENLABS_API_KEY is not set in environment variables")

// APIError is a failed synthesis. Message prefers what the provider said.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type Audio struct {
	Data        []byte
	ContentType string
}

type Voice struct {
	VoiceID    string            `json:"voice_id"`
	Name       string            `json:"name"`
	Category   string            `json:"category,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
	PreviewURL string            `json:"preview_url,omitempty"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type NewClientParams struct {
	BaseURL        string
	APIKey         string
	ModelID        string
	DefaultVoiceID string
	MaxCharacters  int
	HTTPClient     *http.Client
}

// Client talks to the ElevenLabs text-to-speech API.
type Client struct {
	baseURL        string
	apiKey         string
	modelID        string
	defaultVoiceID string
	maxCharacters  int
	httpClient     *http.Client
	cache          *freecache.Cache
}

func NewClient(params NewClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if params.APIKey == "" {
		log.Warn("ELEVENLABS_API_KEY is not set, voice features are disabled")
	}
	return &Client{
		baseURL:        strings.TrimSuffix(params.BaseURL, "/"),
		apiKey:         params.APIKey,
		modelID:        params.ModelID,
		defaultVoiceID: params.DefaultVoiceID,
		maxCharacters:  params.MaxCharacters,
		httpClient:     httpClient,
		cache:          freecache.NewCache(voicesCacheSize),
	}
}

// Synthesize returns spoken audio for text. Text longer than the configured
// limit is cut, the rest is dropped.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) (_ *Audio, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "speech.client.synthesize")
	defer tracing.EndSpan(span, &err)

	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if voiceID == "" {
		voiceID = c.defaultVoiceID
	}

	reqBody, err := json.Marshal(synthesizeRequest{
		Text:    truncate(text, c.maxCharacters),
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal tts request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text-to-speech/"+voiceID, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("elevenlabs tts: %s", err)
		return nil, &APIError{Message: msgSpeechFailure, Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msgSpeechFailure, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("elevenlabs tts error [%d]: %s", resp.StatusCode, respBytes)
		msg := detailMessage(respBytes)
		if msg == "" {
			msg = msgSpeechFailure
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = pkg.ContentType.MPEG
	}

	log.Debugf("elevenlabs tts ok, voice [%s], %d bytes", voiceID, len(respBytes))
	return &Audio{Data: respBytes, ContentType: contentType}, nil
}

// Voices lists the voices available to the account. Without a key the list
// is empty. Results are cached for an hour.
func (c *Client) Voices(ctx context.Context) (_ []Voice, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "speech.client.voices")
	defer tracing.EndSpan(span, &err)

	if c.apiKey == "" {
		return []Voice{}, nil
	}

	if cached, err := c.cache.Get([]byte(voicesCacheKey)); err == nil {
		var voices []Voice
		unmarshalErr := json.Unmarshal(cached, &voices)
		if unmarshalErr == nil {
			log.Tracef("voices found in cache: %d", len(voices))
			return voices, nil
		}
		log.Errorf("unmarshal cached voices: %s", unmarshalErr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read voices response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("voices request failed with status %d", resp.StatusCode)}
	}

	var voicesResp struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.Unmarshal(respBytes, &voicesResp); err != nil {
		return nil, fmt.Errorf("unmarshal voices response: %w", err)
	}
	if voicesResp.Voices == nil {
		voicesResp.Voices = []Voice{}
	}

	if voicesBytes, err := json.Marshal(voicesResp.Voices); err == nil {
		if err := c.cache.Set([]byte(voicesCacheKey), voicesBytes, oneHour); err != nil {
			log.Errorf("set voices cache: %s", err)
		}
	}

	return voicesResp.Voices, nil
}

// detailMessage picks the most specific message out of a provider error
// body: detail.message, detail.status, detail as a string, then message.
func detailMessage(body []byte) string {
	var parsed struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	if len(parsed.Detail) > 0 {
		var detail struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(parsed.Detail, &detail); err == nil {
			if detail.Message != "" {
				return detail.Message
			}
			if detail.Status != "" {
				return detail.Status
			}
		}
		var detailText string
		if err := json.Unmarshal(parsed.Detail, &detailText); err == nil && detailText != "" {
			return detailText
		}
	}

	return parsed.Message
}

func truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
