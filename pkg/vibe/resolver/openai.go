package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ImGajeed76/vibepalette/pkg/vibe/palette"
)

// ServiceError describes a failed call to the color service.
type ServiceError struct {
	Op   string
	Code int
	Msg  string
	Err  error
}

func (e *ServiceError) Error() string {
	msg := e.Op + " " + e.Msg
	if e.Code != 0 {
		msg += " [" + strconv.Itoa(e.Code) + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// OpenAIOptions allows customization of the chat completions client
type OpenAIOptions struct {
	URL         string
	Model       string
	Count       int
	Temperature float64
	Timeout     time.Duration // 0 means no client-side limit
	HTTPClient  *http.Client
}

// DefaultOpenAIOptions returns the default options
func DefaultOpenAIOptions() OpenAIOptions {
	return OpenAIOptions{
		URL:         "https://api.openai.com/v1/chat/completions",
		Model:       "gpt-3.5-turbo",
		Count:       palette.Size,
		Temperature: 0.7,
	}
}

// OpenAIClient asks a chat completions endpoint for palettes.
type OpenAIClient struct {
	options OpenAIOptions
	client  *http.Client
}

func NewOpenAIClient(opts ...OpenAIOptions) *OpenAIClient {
	options := DefaultOpenAIOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.Count == 0 {
		options.Count = palette.Size
	}

	client := options.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: options.Timeout}
	}
	return &OpenAIClient{options: options, client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) messages(prompt string) []chatMessage {
	n := c.options.Count
	return []chatMessage{
		{
			Role: "system",
			Content: fmt.Sprintf("You are a color palette generator. Respond with only a JSON array of exactly %d "+
				"hex color strings in #RRGGBB format, for example [\"#1A535C\",\"#4ECDC4\"]. No other text.", n),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Generate a palette of %d colors for: %s", n, prompt),
		},
	}
}

// Colors sends one completion request and validates the returned palette.
func (c *OpenAIClient) Colors(ctx context.Context, prompt, credential string) ([]string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.options.Model,
		Messages:    c.messages(prompt),
		Temperature: c.options.Temperature,
	})
	if err != nil {
		return nil, &ServiceError{Op: "encode", Msg: "request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &ServiceError{Op: "request", Msg: c.options.URL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ServiceError{Op: "post", Msg: c.options.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, &ServiceError{Op: "post", Code: resp.StatusCode, Msg: resp.Status}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ServiceError{Op: "decode", Msg: "response", Err: err}
	}
	if len(decoded.Choices) == 0 {
		return nil, &ServiceError{Op: "decode", Msg: "response has no choices"}
	}

	colors, err := ParseColors(decoded.Choices[0].Message.Content, c.options.Count)
	if err != nil {
		return nil, &ServiceError{Op: "validate", Msg: "palette", Err: err}
	}
	return colors, nil
}

// ParseColors decodes a JSON array of hex colors and checks its shape. A
// Markdown code fence around the array is tolerated.
func ParseColors(content string, want int) ([]string, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimPrefix(content, "json")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var colors []string
	if err := json.Unmarshal([]byte(content), &colors); err != nil {
		return nil, fmt.Errorf("not a JSON array of strings: %w", err)
	}
	if err := palette.ValidateColors(colors, want); err != nil {
		return nil, err
	}
	return colors, nil
}
