package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/gotrans"
	"github.com/sashabaranov/go-openai"
)

// OpenAIEngine is the catalog id of the OpenAI-backed engine.
const OpenAIEngine gotrans.EngineID = "openai"

// OpenAIInvoker translates single words with OpenAI's chat API.
type OpenAIInvoker struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI invoker.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIInvoker creates a new OpenAI invoker.
func NewOpenAIInvoker(cfg OpenAIConfig) *OpenAIInvoker {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAIInvoker{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Invoke translates word into lang. The engine id is only used for errors.
func (p *OpenAIInvoker) Invoke(ctx context.Context, engine gotrans.EngineID, lang, word string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(lang)},
			{Role: openai.ChatMessageRoleUser, Content: buildUserMessage(word)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &gotrans.EngineError{
			Engine:    engine,
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &gotrans.EngineError{
			Engine:    engine,
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	text, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return "", &gotrans.EngineError{Engine: engine, Message: "invalid response format from OpenAI", Cause: err}
	}
	return text, nil
}

func (p *OpenAIInvoker) buildSystemPrompt(lang string) string {
	target := gotrans.GetLanguageName(lang)

	return fmt.Sprintf(`# Role
You are a bilingual dictionary. You translate single words and short expressions into %s.

# Task
Give the most common translation of the provided text into %s, as a native speaker would write it.
- Keep the input's capitalization style.
- Do not explain, transliterate or add alternatives.
- If the input is not translatable, return an empty string.

# Format
Return a valid JSON object with a single key "translation".
Example: { "translation": "..." }
- Do NOT wrap in Markdown code blocks.`, target, target)
}

func buildUserMessage(word string) string {
	data, _ := json.Marshal(map[string]string{"text": word})
	return string(data)
}

func parseResponse(content string) (string, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return "", err
	}

	if v, ok := obj["translation"]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return "", fmt.Errorf("translation is %T, not a string", v)
	}

	// Fallback: first string value
	for _, v := range obj {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), nil
		}
	}
	return "", fmt.Errorf("no translation in response")
}

// isRetryableError reports whether an API failure is worth another attempt:
// throttling, server errors and timeouts.
func isRetryableError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset")
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Verify OpenAIInvoker implements Invoker
var _ Invoker = (*OpenAIInvoker)(nil)
