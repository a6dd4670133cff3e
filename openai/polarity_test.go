package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"
)

func TestParsePolarity(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    float64
		wantErr bool
	}{
		{name: "positive", content: `{"polarity": 0.75}`, want: 0.75},
		{name: "zero", content: `{"polarity": 0}`, want: 0},
		{name: "clamped high", content: `{"polarity": 3}`, want: 1},
		{name: "clamped low", content: `{"polarity": -2.5}`, want: -1},
		{name: "not json", content: `positive`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePolarity(tc.content)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPolarity_RequestsStructuredOutput(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4.1-mini",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"polarity\": -0.4}"}
			}]
		}`)
	}))
	defer server.Close()

	client := NewClient("test-key", "", http.Client{}, option.WithBaseURL(server.URL), option.WithMaxRetries(0))

	got, err := client.Polarity(context.Background(), "the wait was too long")
	if err != nil {
		t.Fatalf("Polarity error: %v", err)
	}
	if got != -0.4 {
		t.Errorf("Expected -0.4, got %v", got)
	}

	if captured["model"] != DefaultModel {
		t.Errorf("Expected model %s, got %v", DefaultModel, captured["model"])
	}
	format, _ := captured["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Errorf("Expected json_schema response format, got %v", format)
	}
	raw, _ := json.Marshal(captured["messages"])
	if !strings.Contains(string(raw), "the wait was too long") {
		t.Errorf("Expected user message in request, got %s", raw)
	}
}

func TestPolarity_EmptyTextSkipsRequest(t *testing.T) {
	client := NewClient("test-key", "", http.Client{}, option.WithBaseURL("http://127.0.0.1:1"))

	got, err := client.Polarity(context.Background(), "   ")
	if err != nil || got != 0 {
		t.Errorf("Expected (0, nil), got (%v, %v)", got, err)
	}
}
