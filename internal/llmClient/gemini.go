package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
// It only focuses on the API call itself. Cross-cutting concerns
// (rate limiting, logging, tracing) are applied via middleware.
type GeminiClient struct {
	cli    *genai.Client
	models Models
}

func NewGeminiClient(ctx context.Context, apiKey string, models Models) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	// An empty key lets genai read GEMINI_API_KEY / GOOGLE_API_KEY itself.
	if k := strings.TrimSpace(apiKey); k != "" {
		cfg.APIKey = k
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClient{cli: cli, models: models}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.models.Resolve(ModelFast) }
func (g *GeminiClient) Close() error { return nil }

// GenerateJSON asks for application/json constrained by req.Schema, with
// Google Search grounding when requested.
func (g *GeminiClient) GenerateJSON(ctx context.Context, req Request) (Response, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.Grounding {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	resp, err := g.cli.Models.GenerateContent(ctx, g.models.Resolve(req.Model), genai.Text(req.Prompt), cfg)
	if err != nil {
		return Response{}, classify(err)
	}
	return parseJSONResponse(resp)
}

// GenerateImage returns the first inline image part of the response.
func (g *GeminiClient) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityText), string(genai.ModalityImage)},
	}
	resp, err := g.cli.Models.GenerateContent(ctx, g.models.Resolve(ModelImage), genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, classify(err)
	}
	return firstImage(resp)
}

// classify wraps 4xx API errors as permanent. 408 and 429 stay transient.
func classify(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusRequestTimeout, apiErr.Code == http.StatusTooManyRequests:
		return err
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return NewPermanentError(err)
	}
	return err
}

// blocked returns a permanent error when the prompt was refused outright.
func blocked(resp *genai.GenerateContentResponse) error {
	if resp == nil || resp.PromptFeedback == nil || resp.PromptFeedback.BlockReason == "" {
		return nil
	}
	return NewPermanentError(fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
}

func parseJSONResponse(resp *genai.GenerateContentResponse) (Response, error) {
	if err := blocked(resp); err != nil {
		return Response{}, err
	}
	txt := cleanJSON(responseText(resp))
	if txt == "" {
		return Response{}, ErrInvalidJSON
	}
	if !json.Valid([]byte(txt)) {
		return Response{}, fmt.Errorf("%w: %.80q", ErrInvalidJSON, txt)
	}
	return Response{Text: txt, Grounding: groundingSources(resp)}, nil
}

// responseText joins the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// cleanJSON strips markdown code fences some models wrap around JSON.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func groundingSources(resp *genai.GenerateContentResponse) []GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	md := resp.Candidates[0].GroundingMetadata
	if md == nil {
		return nil
	}
	var out []GroundingSource
	for _, ch := range md.GroundingChunks {
		switch {
		case ch == nil:
		case ch.Web != nil:
			out = append(out, GroundingSource{Kind: SourceWeb, URI: ch.Web.URI, Title: ch.Web.Title})
		case ch.RetrievedContext != nil:
			out = append(out, GroundingSource{Kind: SourceRetrieved, URI: ch.RetrievedContext.URI, Title: ch.RetrievedContext.Title})
		case ch.Maps != nil:
			out = append(out, GroundingSource{Kind: SourceMaps, URI: ch.Maps.URI, Title: ch.Maps.Title})
		}
	}
	return out
}

func firstImage(resp *genai.GenerateContentResponse) (*Image, error) {
	if resp == nil {
		return nil, ErrNoImage
	}
	if err := blocked(resp); err != nil {
		return nil, err
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p == nil || p.InlineData == nil || len(p.InlineData.Data) == 0 {
				continue
			}
			mime := p.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return &Image{MIMEType: mime, Data: p.InlineData.Data}, nil
		}
	}
	return nil, ErrNoImage
}
