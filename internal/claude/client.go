package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/oukeidos/litra/internal/apperrors"
	"github.com/oukeidos/litra/internal/httpclient"
	"github.com/oukeidos/litra/internal/llm"
)

const apiVersion = "2023-06-01"

// requestData represents the request body for the Anthropic Messages API.
// System is either a plain string or a []systemBlock when prompt caching
// is requested.
type requestData struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      any       `json:"system,omitempty"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type systemBlock struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

type cacheControl struct {
	Type string `json:"type"`
}

// responseData represents the simplified Messages API response body.
type responseData struct {
	ID         string         `json:"id"`
	StopReason string         `json:"stop_reason"`
	Content    []contentBlock `json:"content"`
	Usage      usage          `json:"usage"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type usage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
}

type errorEnvelope struct {
	Error errorDetails `json:"error"`
}

type errorDetails struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Client handles communication with the Anthropic Messages API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.anthropic.com/v1",
	}
}

// ModelID returns the configured model identifier.
func (c *Client) ModelID() string {
	return c.model
}

// Ensure Client implements Completer
var _ llm.Completer = (*Client)(nil)

// Complete sends one message to the API and returns the concatenated text
// content. When req.CacheSystem is set, the system prompt is marked with
// ephemeral cache_control so repeated calls sharing the same system prompt
// hit the prompt cache.
func (c *Client) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	body := requestData{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages:    []message{{Role: "user", Content: req.User}},
	}
	if req.System != "" {
		if req.CacheSystem {
			body.System = []systemBlock{{
				Type:         "text",
				Text:         req.System,
				CacheControl: &cacheControl{Type: "ephemeral"},
			}}
		} else {
			body.System = req.System
		}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/messages"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	client := httpclient.GetDefaultClient()
	respBody, resp, err := httpclient.DoAndRead(client, httpReq)
	if err != nil {
		return nil, apperrors.New(
			apperrors.KindTransient,
			"Claude request failed due to a temporary network/runtime error.",
			fmt.Errorf("request failed: %w", err),
		)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(resp.StatusCode, respBody)
	}

	var data responseData
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, apperrors.Validation(fmt.Errorf("failed to unmarshal response: %w", err))
	}

	var text string
	for _, block := range data.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, apperrors.Validation(fmt.Errorf("no text blocks in Claude response (stop_reason=%s)", data.StopReason))
	}

	return &llm.Response{
		Text: text,
		Usage: llm.Usage{
			InputTokens:         data.Usage.InputTokens,
			OutputTokens:        data.Usage.OutputTokens,
			CacheReadTokens:     data.Usage.CacheReadInputTokens,
			CacheCreationTokens: data.Usage.CacheCreationInputTokens,
		},
	}, nil
}

func classifyHTTPError(status int, body []byte) error {
	var envelope errorEnvelope
	_ = json.Unmarshal(body, &envelope)
	// The upstream message may quote the prompt; keep it in the cause only.
	wrapped := fmt.Errorf("claude API error (%d, %s): %s", status, envelope.Error.Type, envelope.Error.Message)

	switch status {
	case http.StatusTooManyRequests:
		return apperrors.New(apperrors.KindRateLimit, "Claude API rate limit exceeded (429). Please try again later.", wrapped)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.New(apperrors.KindAuth, fmt.Sprintf("Claude API authentication/authorization failed (%d).", status), wrapped)
	case http.StatusNotFound:
		return apperrors.New(apperrors.KindBadRequest, "Claude model not found or no access (404).", wrapped)
	case http.StatusBadRequest:
		return apperrors.New(apperrors.KindBadRequest, "Claude request rejected (400).", wrapped)
	case http.StatusRequestTimeout:
		return apperrors.New(apperrors.KindTransient, "Claude request timed out (408). Please retry.", wrapped)
	default:
		// 529 overloaded_error and all 5xx are retryable service errors.
		if status >= 500 {
			return apperrors.New(apperrors.KindTransient, fmt.Sprintf("Claude service temporary error (%d). Please retry.", status), wrapped)
		}
		return apperrors.New(apperrors.KindBadRequest, fmt.Sprintf("Claude API error (%d).", status), wrapped)
	}
}
