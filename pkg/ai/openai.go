package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stockroom",
		Subsystem: "ai",
		Name:      "suggestion_duration_seconds",
		Help:      "Duration of AI description requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockroom",
		Subsystem: "ai",
		Name:      "suggestion_failures_total",
		Help:      "Number of AI description failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI writer.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIWriter produces product copy via the OpenAI chat completion API.
type OpenAIWriter struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIWriter builds a new writer using the provided configuration.
func NewOpenAIWriter(cfg OpenAIConfig) (*OpenAIWriter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 256
	}

	tracer := otel.Tracer("github.com/stockroomhq/stockroom-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIWriter{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// SuggestDescription asks the model for a short product description.
func (w *OpenAIWriter) SuggestDescription(parent context.Context, name, keywords string) (string, error) {
	ctx, span := w.tracer.Start(parent, "openai.suggest_description", trace.WithAttributes(
		attribute.String("model", w.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       w.cfg.Model,
		MaxTokens:   w.cfg.MaxTokens,
		Temperature: w.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: writerSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(name, keywords),
			},
		},
	}

	response, err := w.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(w.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(w.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion failed")
		w.logger.Error().Err(err).Str("model", w.cfg.Model).Msg("description request failed")
		return "", fmt.Errorf("failed to request description: %w", err)
	}

	if len(response.Choices) == 0 {
		aiFailures.WithLabelValues(w.cfg.Model).Inc()
		return "", fmt.Errorf("model returned no choices")
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("model returned an empty description")
	}

	return content, nil
}

func writerSystemPrompt() string {
	return strings.Join([]string{
		"You write concise product descriptions for an inventory catalog.",
		"Respond with plain text only, at most three sentences.",
		"Never invent specifications that are not in the prompt.",
	}, " ")
}

func buildPrompt(name, keywords string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product name: %s\n", name)
	if strings.TrimSpace(keywords) != "" {
		fmt.Fprintf(&b, "Keywords: %s\n", keywords)
	}
	b.WriteString("Write the description.")
	return b.String()
}
