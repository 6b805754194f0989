package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClient_Generate(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", body.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": `{"score": 7}`}},
			},
		})
	}))
	defer server.Close()

	client, err := NewOpenAIClient(OpenAIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})
	if err != nil {
		t.Fatal(err)
	}
	out, err := client.Generate(context.Background(), "rate this candidate")
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"score": 7}` {
		t.Errorf("unexpected output %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewOpenAIClient(OpenAIConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestOpenAIClient_EmptyPrompt(t *testing.T) {
	client, err := NewOpenAIClient(OpenAIConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Generate(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestNewClient_UnknownProvider(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{Provider: "anthropic"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
