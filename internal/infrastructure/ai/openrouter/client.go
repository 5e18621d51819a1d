// Package openrouter decodes conversation turns through an
// OpenRouter-compatible chat-completions endpoint, recovering a
// well-formed {text, recipe} result even when the model violates the
// requested schema.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vothanhthong/yummyai/internal/domain/chat"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"github.com/vothanhthong/yummyai/internal/infrastructure/config"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements outbound.AIService against an OpenRouter-style API.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a decoder client from configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	if cfg.AI.APIKey == "" {
		logger.Warn("AI API key not configured, chat replies will use the fallback message")
	}
	return &Client{
		apiKey:      cfg.AI.APIKey,
		baseURL:     strings.TrimRight(cfg.AI.BaseURL, "/"),
		model:       cfg.AI.Model,
		temperature: cfg.AI.Temperature,
		client:      &http.Client{Timeout: cfg.AI.Timeout},
		logger:      logger,
	}
}

// Chat-completions wire structures.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// decodedPayload is the two-field contract the model is asked to emit.
type decodedPayload struct {
	Text   string         `json:"text"`
	Recipe *recipe.Recipe `json:"recipe"`
}

// Decode sends one conversation turn to the model and returns the
// recovered reply. It never fails: transport errors, credential
// problems and non-2xx responses yield the fixed apology; malformed
// JSON yields the raw body verbatim; a partial recipe is backfilled
// with defaults. One outbound call, no retries.
func (c *Client) Decode(ctx context.Context, userText string, history []outbound.ChatTurn, avoid []string) outbound.ChatReply {
	if c.apiKey == "" {
		c.logger.Warn("decode skipped, missing API credential")
		return fallbackReply()
	}

	content, err := c.complete(ctx, userText, history, avoid)
	if err != nil {
		c.logger.Error("model call failed", zap.Error(err))
		return fallbackReply()
	}

	var payload decodedPayload
	if err := json.Unmarshal([]byte(stripFences(content)), &payload); err != nil {
		// Never discard the model's words even when structurally invalid.
		c.logger.Warn("model returned non-JSON content, passing through verbatim",
			zap.Error(err),
		)
		return outbound.ChatReply{Text: content}
	}

	if payload.Recipe != nil {
		payload.Recipe.ApplyDefaults()
	}

	return outbound.ChatReply{Text: payload.Text, Recipe: payload.Recipe}
}

// complete performs the HTTP round trip and extracts the content of
// the first choice.
func (c *Client) complete(ctx context.Context, userText string, history []outbound.ChatTurn, avoid []string) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: systemInstruction})
	for _, turn := range history {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userText + avoidanceSuffix(avoid)})

	reqBody := chatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "recipe_response",
				Schema: responseSchema,
			},
		},
		Temperature: c.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Title", "YummyAI")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content in response")
	}

	return completion.Choices[0].Message.Content, nil
}

// stripFences removes optional surrounding markdown code-fence markers.
func stripFences(content string) string {
	cleaned := strings.TrimSpace(content)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	}
	if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}
	return strings.TrimSpace(cleaned)
}

func fallbackReply() outbound.ChatReply {
	return outbound.ChatReply{Text: chat.FallbackText}
}
