// Package assistant answers free-form farming questions, optionally
// about an uploaded image, in the requester's language.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Pratham9108106876/farm/internal/infrastructure/storage"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
)

// languageNames maps request language codes to the name the prompt
// asks the model to answer in. Unknown codes fall back to English.
var languageNames = map[string]string{
	"english":  "English",
	"hindi":    "Hindi",
	"tamil":    "Tamil",
	"telugu":   "Telugu",
	"bengali":  "Bengali",
	"marathi":  "Marathi",
	"gujarati": "Gujarati",
	"punjabi":  "Punjabi",
}

// Model is the generation surface the assistant needs.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Message is one turn of prior conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one chat turn.
type Request struct {
	Message  string    `json:"message"`
	ImageURL string    `json:"imageUrl"`
	Language string    `json:"language"`
	History  []Message `json:"history"`
}

// Service relays chat turns to the model with farming context.
type Service struct {
	model  Model
	logger *slog.Logger
}

// NewService creates the assistant. model may be nil when no API key
// is configured; Chat then reports the capability as unavailable.
func NewService(model Model, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		model:  model,
		logger: logger,
	}
}

// Chat answers one turn. Either a message or an image is required.
func (s *Service) Chat(ctx context.Context, req Request) (string, error) {
	if req.Message == "" && req.ImageURL == "" {
		return "", apperrors.BadRequest("Message or image is required")
	}
	if s.model == nil {
		return "", apperrors.ModelNotConfigured()
	}

	prompt := buildPrompt(req)

	var (
		text string
		err  error
	)
	if req.ImageURL != "" {
		data, ext, decodeErr := storage.DecodeDataURI(req.ImageURL)
		if decodeErr != nil {
			return "", apperrors.InvalidImage(decodeErr.Error())
		}
		text, err = s.model.GenerateVision(ctx, prompt, data, mimeFromExt(ext))
	} else {
		text, err = s.model.GenerateText(ctx, prompt)
	}

	if err != nil {
		s.logger.Error("chat generation failed",
			slog.Any("error", err))
		return "", apperrors.ModelRequestFailed(err)
	}

	return text, nil
}

func buildPrompt(req Request) string {
	language := languageNames[strings.ToLower(req.Language)]
	if language == "" {
		language = "English"
	}

	var b strings.Builder

	fmt.Fprintf(&b, `You are a helpful farming assistant that specializes in agricultural advice,
plant disease identification, crop management, and sustainable farming practices.

Please respond in %s.

If the user provides an image of a plant:
1. Identify the crop/plant in the image
2. Check for any visible diseases or pest damage
3. Provide diagnosis and treatment recommendations
4. Suggest preventive measures

For text questions:
- Provide concise, practical advice for farmers
- Focus on sustainable and accessible solutions
- Consider local farming contexts in India
- Explain agricultural concepts in simple terms

Always be respectful, helpful, and provide actionable advice.
`, language)

	if len(req.History) > 0 {
		b.WriteString("\nPrevious conversation:\n")
		for _, msg := range req.History {
			role := "Assistant"
			if msg.Role == "user" {
				role = "User"
			}
			fmt.Fprintf(&b, "%s: %s\n\n", role, msg.Content)
		}
	}

	message := req.Message
	if message == "" {
		message = "Please analyze this image"
	}
	fmt.Fprintf(&b, "\nUser: %s", message)

	return b.String()
}

func mimeFromExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}
	return "image/jpeg"
}
