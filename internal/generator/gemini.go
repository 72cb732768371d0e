package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.5-flash"

const (
	topicFailure   = "Ошибка генерации темы."
	contentFailure = "Ошибка генерации контента."
)

// Generator is what the orchestration layer needs from the model.
type Generator interface {
	GenerateTopic(ctx context.Context, activity string) (string, error)
	GenerateContent(ctx context.Context, topic string, slideCount int, ctaKeyword string) (*models.CarouselContent, error)
}

// contentModel is the slice of *genai.GenerativeModel used here.
type contentModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type modelSettings struct {
	Temperature float32
	MIMEType    string
	Schema      *genai.Schema
}

type GeminiClient struct {
	client    *genai.Client
	modelName string
	newModel  func(modelSettings) contentModel
	log       *logger.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, log *logger.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	g := &GeminiClient{
		client:    client,
		modelName: modelName,
		log:       log.With("service", "GeminiClient", "model", modelName),
	}
	g.newModel = g.generativeModel
	return g, nil
}

// generativeModel builds a fresh model per call: settings differ between
// calls and the model's config fields are not safe to share.
func (g *GeminiClient) generativeModel(s modelSettings) contentModel {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(s.Temperature)
	model.ResponseMIMEType = s.MIMEType
	model.ResponseSchema = s.Schema
	return model
}

func (g *GeminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *GeminiClient) GenerateTopic(ctx context.Context, activity string) (string, error) {
	text, err := g.call(ctx, "topic", TopicPrompt(activity), modelSettings{Temperature: topicTemperature})
	if err != nil {
		return "", apperr.Generation(topicFailure, err)
	}

	topic := CleanTopic(text)
	if topic == "" {
		return "", apperr.Generation(topicFailure, fmt.Errorf("model returned an empty topic"))
	}
	return topic, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, topic string, slideCount int, ctaKeyword string) (*models.CarouselContent, error) {
	settings := modelSettings{
		Temperature: contentTemperature,
		MIMEType:    "application/json",
		Schema:      ContentSchema(slideCount, ctaKeyword),
	}
	text, err := g.call(ctx, "content", ContentPrompt(topic, slideCount, ctaKeyword), settings)
	if err != nil {
		return nil, apperr.Generation(contentFailure, err)
	}

	content, err := parseContent(text, slideCount, ctaKeyword)
	if err != nil {
		g.log.Warn("content response rejected", "error", err, "slides", slideCount)
		return nil, apperr.Generation(contentFailure, err)
	}
	return content, nil
}

func (g *GeminiClient) call(ctx context.Context, kind, prompt string, s modelSettings) (string, error) {
	start := time.Now()
	resp, err := g.newModel(s).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.log.Error("generation failed", "kind", kind, "error", err, "duration", time.Since(start))
		return "", fmt.Errorf("failed to generate %s: %w", kind, err)
	}

	text, err := responseText(resp)
	if err != nil {
		g.log.Error("empty generation", "kind", kind, "error", err, "duration", time.Since(start))
		return "", err
	}
	g.log.Info("generation finished", "kind", kind, "duration", time.Since(start), "chars", len(text))
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("no text in response")
	}
	return text, nil
}

func parseContent(text string, slideCount int, ctaKeyword string) (*models.CarouselContent, error) {
	var content models.CarouselContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, fmt.Errorf("failed to parse content JSON: %w", err)
	}
	// The headline is fixed; the model only echoes it.
	content.CallToActionPage.Title = CTATitle(ctaKeyword)

	if err := content.Validate(slideCount); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return &content, nil
}
