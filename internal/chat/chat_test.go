package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_Keywords(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"greeting", "Hello!", "Hey there"},
		{"help", "I need some help", "sending gifts"},
		{"gift", "How do I send a gift?", "Send a Honey Badger"},
		{"challenge", "What is a challenge?", "unlock their gifts"},
		{"thanks", "thank you so much", "You're welcome"},
		{"unmatched", "what is the meaning of life", "interesting question"},
	}

	var f Fallback
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := f.Respond(context.Background(), tt.message, nil)
			require.NoError(t, err)
			assert.Contains(t, reply, tt.want)
		})
	}
}

func TestClient_Respond(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req upstreamRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		assert.Equal(t, "user", req.Messages[len(req.Messages)-1].Role)
		assert.Equal(t, "how does this work?", req.Messages[len(req.Messages)-1].Content)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"text": "Like this."}},
		})
	}))
	defer ts.Close()

	c := NewClient("secret-key")
	c.endpoint = ts.URL

	history := []Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}
	reply, err := c.Respond(context.Background(), "how does this work?", history)
	require.NoError(t, err)
	assert.Equal(t, "Like this.", reply)
}

func TestClient_Respond_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient("secret-key")
	c.endpoint = ts.URL

	_, err := c.Respond(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_Respond_EmptyContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
	}))
	defer ts.Close()

	c := NewClient("secret-key")
	c.endpoint = ts.URL

	_, err := c.Respond(context.Background(), "hello", nil)
	require.Error(t, err)
}
