package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

// GeminiCaller calls the Generative Language API generateContent method.
type GeminiCaller struct {
	svc *generativelanguage.Service
}

// NewGeminiCaller builds a caller authenticated with an API key. baseURL may be
// empty to use the default endpoint; it must end with a slash otherwise.
func NewGeminiCaller(ctx context.Context, apiKey, baseURL string) (*GeminiCaller, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		opts = append(opts, option.WithEndpoint(baseURL))
	}

	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("new generative language service: %w", err)
	}
	return &GeminiCaller{svc: svc}, nil
}

func (g *GeminiCaller) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{
				Role:  "user",
				Parts: []*generativelanguage.Part{{Text: prompt}},
			},
		},
	}

	resp, err := g.svc.Models.GenerateContent(modelResource(model), req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("generate content [%s]: %w", model, err)
	}
	return responseText(resp)
}

// ListModels returns the names of models visible to the API key.
func (g *GeminiCaller) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	err := g.svc.Models.List().Pages(ctx, func(page *generativelanguage.ListModelsResponse) error {
		for _, m := range page.Models {
			names = append(names, strings.TrimPrefix(m.Name, "models/"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return names, nil
}

func modelResource(model string) string {
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

func responseText(resp *generativelanguage.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", nil
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
