// Package ai wraps the external generative model used for receipt scanning
// and spend forecasting. The model is treated as a black box returning text
// that should contain a JSON object.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Image is an inline image sent along the prompt
type Image struct {
	MimeType string
	Data     []byte
}

// Model generates text for a prompt and optional images
type Model interface {
	Generate(ctx context.Context, prompt string, images ...Image) (string, error)
}

// Gemini talks to the Gemini API
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("no api key provided")
	}

	return newGemini(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

func newGemini(ctx context.Context, cfg *genai.ClientConfig, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client, %w", err)
	}

	return &Gemini{client: client, model: strings.TrimPrefix(model, "models/")}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string, images ...Image) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for _, img := range images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MimeType))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}

		return "", errors.New("model returned no candidates")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}

		sb.WriteString(p.Text)
	}

	return sb.String(), nil
}

// ErrNoModel is returned by Unconfigured
var ErrNoModel = errors.New("no model configured, set ai.api_key")

// Unconfigured stands in for a model when no API key is set so the rest of the
// app can still run
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, string, ...Image) (string, error) {
	return "", ErrNoModel
}
