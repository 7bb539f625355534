// Package gemini implements ai.Completer on top of the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	providerName = "gemini"

	defaultModel       = "gemini-2.5-flash"
	defaultTemperature = 0.6
	defaultMaxTokens   = 900
	defaultMaxLogLen   = 200
)

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	chats *genai.Chats
}

func (g genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	chat, err := g.chats.Create(ctx, model, config, history)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

type Config struct {
	APIKey       string
	Model        string
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration
	MaxLogLength int
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	chats       chatCreator
	model       string
	temperature float32
	maxTokens   int32
	timeout     time.Duration
	maxLogLen   int
	logger      *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
// An empty API key yields a generator whose calls fail with ai.KindAuth.
func NewGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{
		model:       strings.TrimSpace(cfg.Model),
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
		timeout:     cfg.Timeout,
		maxLogLen:   cfg.MaxLogLength,
		logger:      logger,
	}
	if g.model == "" {
		g.model = defaultModel
	}
	if g.temperature <= 0 {
		g.temperature = defaultTemperature
	}
	if g.maxTokens <= 0 {
		g.maxTokens = defaultMaxTokens
	}
	if g.timeout <= 0 {
		g.timeout = ai.DefaultTimeout
	}
	if g.maxLogLen <= 0 {
		g.maxLogLen = defaultMaxLogLen
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g.chats = genaiChats{chats: client.Chats}

	return g, nil
}

func (g *Generator) Provider() string { return providerName }

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// Complete sends the prompt with the system message as system instruction and
// returns the concatenated text of the response. It never retries.
func (g *Generator) Complete(ctx context.Context, prompt, system string) (string, error) {
	if g == nil || g.chats == nil {
		return "", ai.NewError(ai.KindAuth, "gemini api key is not configured", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxTokens,
	}
	if system = strings.TrimSpace(system); system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	chat, err := g.chats.Create(ctx, g.model, config, nil)
	if err != nil {
		return "", classify(ctx, err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return "", classify(ctx, err)
	}

	output := extractText(resp)
	if output == "" {
		return "", ai.NewError(ai.KindMalformed, "gemini api returned empty response", nil)
	}

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func classify(ctx context.Context, err error) *ai.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ai.NewError(ai.KindTimeout, "gemini request timed out", err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiStatusError(apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiStatusError(*apiErrPtr)
	}

	return ai.NewError(ai.KindTransport, "gemini request failed", err)
}

func apiStatusError(apiErr genai.APIError) *ai.Error {
	status := apiErr.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}
	body := strings.TrimSpace(apiErr.Message)
	if body == "" {
		body = apiErr.Status
	}
	e := ai.NewStatusError(status, body)
	e.Err = apiErr
	return e
}
