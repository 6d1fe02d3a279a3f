package illustration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const defaultMimeType = "image/png"

var (
	ErrNotConfigured = errors.New("image provider key is not set")
	ErrModelNotFound = errors.New("image generation model not found")
	ErrNoImageData   = errors.New("no image data in provider response")
)

// APIError is a non-2xx provider answer other than 404.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("image provider error [%d]", e.StatusCode)
	}
	return fmt.Sprintf("image provider error [%d]: %s", e.StatusCode, e.Message)
}

// TransportError is a request that never got a provider answer.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "image request: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Image is a generated picture. Source names the response field it came from.
type Image struct {
	Data     string
	MimeType string
	Source   string
}

// DataURI returns the image as an inline data URI.
func (i *Image) DataURI() string {
	mimeType := i.MimeType
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	return "data:" + mimeType + ";base64," + i.Data
}

type generateRequest struct {
	Prompt struct {
		Text string `json:"text"`
	} `json:"prompt"`
	ImageGenerationConfig struct {
		NumberOfImages int    `json:"numberOfImages"`
		AspectRatio    string `json:"aspectRatio"`
	} `json:"imageGenerationConfig"`
}

type NewClientParams struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// Client asks the Gemini image endpoint for illustrations.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(params NewClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if params.APIKey == "" {
		log.Warn("image api key is not set, illustrations are disabled")
	}
	return &Client{
		baseURL:    strings.TrimSuffix(params.BaseURL, "/"),
		apiKey:     params.APIKey,
		model:      params.Model,
		httpClient: httpClient,
	}
}

// Illustrate generates one square image for subject.
func (c *Client) Illustrate(ctx context.Context, subject string, category Category) (_ *Image, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "illustration.client.illustrate")
	defer tracing.EndSpan(span, &err)

	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	var genReq generateRequest
	genReq.Prompt.Text = Prompt(subject, category)
	genReq.ImageGenerationConfig.NumberOfImages = 1
	genReq.ImageGenerationConfig.AspectRatio = "SQUARE"
	reqBody, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("marshal image request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateImages?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode == http.StatusNotFound {
		log.Errorf("image model [%s] not found: %s", c.model, respBytes)
		return nil, ErrModelNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("image generation error [%d]: %s", resp.StatusCode, respBytes)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: providerMessage(respBytes)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(respBytes, &fields); err != nil {
		log.Errorf("unmarshal image response: %s", err)
		return nil, ErrNoImageData
	}

	img := extract(fields)
	if img == nil {
		log.Errorf("unexpected image response layout: %.200s", respBytes)
		return nil, ErrNoImageData
	}

	log.Debugf("image generated for [%s], source [%s]", subject, img.Source)
	return img, nil
}

type extractor struct {
	field  string
	decode func(raw json.RawMessage) *Image
}

// extractors lists every response layout the provider has used, in order.
// Each decodes only its own field, so a mistyped field skips one layout.
var extractors = []extractor{
	{field: "images", decode: func(raw json.RawMessage) *Image {
		var images []struct {
			Content string `json:"content"`
		}
		if json.Unmarshal(raw, &images) != nil || len(images) == 0 || images[0].Content == "" {
			return nil
		}
		return &Image{Data: images[0].Content}
	}},
	{field: "generatedImages", decode: func(raw json.RawMessage) *Image {
		var generated []struct {
			Image string `json:"image"`
		}
		if json.Unmarshal(raw, &generated) != nil || len(generated) == 0 || generated[0].Image == "" {
			return nil
		}
		return &Image{Data: generated[0].Image}
	}},
	{field: "candidates", decode: func(raw json.RawMessage) *Image {
		var candidates []struct {
			Content struct {
				Parts []struct {
					InlineData *struct {
						MimeType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"content"`
		}
		if json.Unmarshal(raw, &candidates) != nil || len(candidates) == 0 || len(candidates[0].Content.Parts) == 0 {
			return nil
		}
		inline := candidates[0].Content.Parts[0].InlineData
		if inline == nil || inline.Data == "" {
			return nil
		}
		return &Image{Data: inline.Data, MimeType: inline.MimeType}
	}},
	{field: "predictions", decode: func(raw json.RawMessage) *Image {
		var predictions []struct {
			BytesBase64Encoded string `json:"bytesBase64Encoded"`
			MimeType           string `json:"mimeType"`
		}
		if json.Unmarshal(raw, &predictions) != nil || len(predictions) == 0 || predictions[0].BytesBase64Encoded == "" {
			return nil
		}
		return &Image{Data: predictions[0].BytesBase64Encoded, MimeType: predictions[0].MimeType}
	}},
}

// extract returns the first image any layout yields.
func extract(fields map[string]json.RawMessage) *Image {
	for _, e := range extractors {
		raw, ok := fields[e.field]
		if !ok {
			continue
		}
		if img := e.decode(raw); img != nil {
			img.Source = e.field
			return img
		}
	}
	return nil
}

func providerMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Error.Message
}
