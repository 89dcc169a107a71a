package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/samshad/5410-Serverless/internal/models"
)

// SentimentClassifier labels a piece of feedback text as
// positive, negative or neutral.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

type GroqSentimentService struct {
	client *openai.Client
	model  string
}

// NewGroqSentimentService takes the Groq API key and model name; the
// model falls back to a default when blank. It errors instead of
// panicking so the caller can fall back to neutral labeling when no
// key is configured.
func NewGroqSentimentService(apiKey, model string) (*GroqSentimentService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("groq API key is not set")
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = "https://api.groq.com/openai/v1"

	model = strings.TrimSpace(model)
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}

	return &GroqSentimentService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (g *GroqSentimentService) Classify(ctx context.Context, text string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a sentiment classifier for product feedback. Reply with exactly one word: positive, negative or neutral.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0,
		MaxTokens:   5,
	})
	if err != nil {
		return "", fmt.Errorf("groq API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Groq")
	}

	return NormalizePolarity(resp.Choices[0].Message.Content), nil
}

// NormalizePolarity maps free-form model output onto the three polarity
// labels. Anything unrecognized counts as neutral.
func NormalizePolarity(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, models.PolarityPositive):
		return models.PolarityPositive
	case strings.Contains(s, models.PolarityNegative):
		return models.PolarityNegative
	default:
		return models.PolarityNeutral
	}
}
