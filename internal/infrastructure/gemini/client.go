// Package gemini wraps the Google GenAI SDK behind the two call
// shapes the application needs: text generation and multimodal
// generation over a single inline image. The caller owns prompt
// construction and response parsing; this layer only moves bytes.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// Client talks to the Gemini API
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewClient creates a Gemini client for the given model
func NewClient(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// GenerateText sends a text-only prompt and returns the raw response
// text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.logger.Error("text generation failed",
			slog.String("model", c.model),
			slog.Any("error", err))
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("model returned empty response")
	}

	c.logger.Debug("text generation completed",
		slog.String("model", c.model),
		slog.Int("response_chars", len(text)))

	return text, nil
}

// GenerateVision sends a prompt together with inline image bytes and
// returns the raw response text. The response is free-form: callers
// parse whatever structure they asked for out of it.
func (c *Client) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.logger.Error("vision generation failed",
			slog.String("model", c.model),
			slog.Int("image_bytes", len(image)),
			slog.Any("error", err))
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("model returned empty response")
	}

	c.logger.Debug("vision generation completed",
		slog.String("model", c.model),
		slog.Int("response_chars", len(text)))

	return text, nil
}
