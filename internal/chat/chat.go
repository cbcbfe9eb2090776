// Package chat answers assistant questions for the gift platform. The
// real chat-completion backend is treated as an opaque upstream; when it
// is unconfigured or failing, a deterministic keyword responder answers
// instead so the endpoint never goes dark.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Message is one turn of a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Responder produces an assistant reply for a message plus prior history
type Responder interface {
	Respond(ctx context.Context, message string, history []Message) (string, error)
}

// Fallback is the deterministic keyword responder
type Fallback struct{}

// Respond matches the message against a fixed set of topics
func (Fallback) Respond(_ context.Context, message string, _ []Message) (string, error) {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "hello"), strings.Contains(lower, "hi"):
		return "Hey there! How can I help you with your Honey Badger experience today?", nil
	case strings.Contains(lower, "help"):
		return "I can help you with sending gifts, tracking challenges, managing your network, and more. What would you like to know?", nil
	case strings.Contains(lower, "send"), strings.Contains(lower, "gift"):
		return "To send a gift, click on the 'Send a Honey Badger' section on the right. You can choose the gift type, recipient, and challenge!", nil
	case strings.Contains(lower, "challenge"):
		return "Challenges are fun tasks your recipients complete to unlock their gifts. You can set photo challenges, fitness goals, multi-day tasks, and more!", nil
	case strings.Contains(lower, "thank"):
		return "You're welcome! Happy to help. Let me know if you need anything else!", nil
	}
	return "That's an interesting question! I'm here to help with your Honey Badger gifts. Feel free to ask me about sending gifts, challenges, or managing your account.", nil
}

const defaultEndpoint = "https://api.anthropic.com/v1/messages"

const systemPrompt = "You are the Honey Badger AI assistant, a helpful and " +
	"enthusiastic guide for the Honey Badger gift delivery platform. Users send " +
	"gifts that recipients unlock by completing motivational challenges. Keep " +
	"responses helpful, specific, and actionable, usually 2-3 sentences."

// Client calls a chat-completion backend over HTTP
type Client struct {
	apiKey   string
	endpoint string
	model    string
	http     *http.Client
}

// NewClient builds a Client for the given API key
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		model:    "claude-3-5-haiku-20241022",
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type upstreamRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type upstreamResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Respond forwards the conversation to the upstream backend
func (c *Client) Respond(ctx context.Context, message string, history []Message) (string, error) {
	messages := append(append([]Message{}, history...), Message{Role: "user", Content: message})

	body, err := json.Marshal(upstreamRequest{
		Model:     c.model,
		MaxTokens: 300,
		System:    systemPrompt,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat backend returned status %d", resp.StatusCode)
	}

	var out upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("chat backend returned empty content")
	}

	return out.Content[0].Text, nil
}
