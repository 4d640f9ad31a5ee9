// Package vision reaches the remote inference collaborator. The editor core
// never sees it; the host sends a committed crop here and displays whatever
// comes back.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// defaultTimeout bounds a single model round trip when the caller's context
// carries no deadline. Vision models on CPU can be slow.
const defaultTimeout = 300 * time.Second

// Querier is the narrow contract presenters depend on.
type Querier interface {
	Ask(ctx context.Context, model, prompt, imageB64 string) (string, error)
}

// Client wraps the Ollama chat API for image questions.
type Client struct {
	client *api.Client
}

var _ Querier = (*Client)(nil)

// NewClient builds a client for the given server URL; any path component
// (e.g. /api/chat) is stripped.
func NewClient(serverURL string) (*Client, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return &Client{client: api.NewClient(base, http.DefaultClient)}, nil
}

// Ask sends the prompt with one attached image and returns the model's text.
func (c *Client) Ask(ctx context.Context, model, prompt, imageB64 string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	imgBytes, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: prompt,
				Images:  []api.ImageData{api.ImageData(imgBytes)},
			},
		},
		Stream: &streamFalse,
	}

	var content string
	err = c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if content == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return StripFences(content), nil
}

// StripFences removes triple-backtick code fences models like to wrap their
// answers in, leaving the inner text.
func StripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	if i := strings.Index(raw, "\n"); i >= 0 {
		raw = raw[i+1:]
	} else {
		raw = strings.TrimPrefix(raw, "```")
	}
	if j := strings.LastIndex(raw, "```"); j >= 0 {
		raw = raw[:j]
	}
	return strings.TrimSpace(raw)
}
