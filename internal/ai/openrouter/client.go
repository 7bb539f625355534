// Package openrouter implements ai.Completer over the OpenRouter chat
// completions API (OpenAI-compatible).
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/utils"
	"go.uber.org/zap"
)

const (
	providerName = "openrouter"

	defaultBaseURL     = "https://openrouter.ai/api/v1"
	defaultModel       = "meta-llama/llama-3.3-8b-instruct:free"
	defaultTemperature = 0.6
	defaultMaxTokens   = 900
	defaultMaxLogLen   = 200

	completionsPath = "/chat/completions"
	contentType     = "application/json"
	appTitle        = "TalentScout Hiring Assistant"
	userAgent       = "spigell/talentscout"

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 2048
)

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	// Timeout defaults to ai.DefaultTimeout.
	Timeout time.Duration
	// MaxLogLength limits prompt and response previews in debug logs.
	MaxLogLength int
}

type Client struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	maxLogLen   int
	logger      *zap.Logger

	HTTPClient *http.Client
	UserAgent  string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message *message `json:"message"`
	} `json:"choices"`
}

// New builds a client. An empty API key is accepted; Complete then fails with
// ai.KindAuth so callers fall back locally.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = ai.DefaultTimeout
	}

	c := &Client{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       strings.TrimSpace(cfg.Model),
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		maxLogLen:   cfg.MaxLogLength,
		logger:      logger,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
	}

	if c.model == "" {
		c.model = defaultModel
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.temperature <= 0 {
		c.temperature = defaultTemperature
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	if c.maxLogLen <= 0 {
		c.maxLogLen = defaultMaxLogLen
	}

	return c
}

func (c *Client) Provider() string { return providerName }

func (c *Client) Model() string { return c.model }

// Complete sends one user message, preceded by the system message when set,
// and returns the first choice's content. The call never retries.
func (c *Client) Complete(ctx context.Context, prompt, system string) (string, error) {
	if c.apiKey == "" {
		return "", ai.NewError(ai.KindAuth, "no API key provided for openrouter", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]message, 0, 2)
	if system = strings.TrimSpace(system); system != "" {
		messages = append(messages, message{Role: "system", Content: system})
	}
	messages = append(messages, message{Role: "user", Content: prompt})

	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", ai.NewError(ai.KindTransport, "marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", ai.NewError(ai.KindTransport, "create request", err)
	}
	req = c.setHeaders(req)

	c.logger.Debug("openrouter completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransport(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", ai.NewStatusError(resp.StatusCode, utils.TruncateForLog(string(data), maxErrorBody))
	}

	text, err := parseResponse(data)
	if err != nil {
		return "", err
	}

	c.logger.Debug("openrouter completion response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", utils.TruncateForLog(text, c.maxLogLen)),
	)

	return text, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("X-Title", appTitle)

	return req
}

func parseResponse(data []byte) (string, error) {
	var response completionResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return "", ai.NewError(ai.KindMalformed, "decode response", err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message == nil {
		return "", ai.NewError(ai.KindMalformed, "response has no choices", nil)
	}

	text := strings.TrimSpace(response.Choices[0].Message.Content)
	if text == "" {
		return "", ai.NewError(ai.KindMalformed, "first choice has empty content", nil)
	}

	return text, nil
}

func classifyTransport(err error) *ai.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewError(ai.KindTimeout, "request timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ai.NewError(ai.KindTimeout, "request timed out", err)
	}

	return ai.NewError(ai.KindTransport, "request error", err)
}
