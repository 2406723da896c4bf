package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLlamaClientGenerate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		want    string
	}{
		{
			name:    "successful generation",
			content: "Believe in the power of small steps forward",
			want:    "Believe in the power of small steps forward",
		},
		{
			name:    "whitespace collapsed",
			content: "  Keep   moving\nforward   every single day  ",
			want:    "Keep moving forward every single day",
		},
		{
			name:    "empty content",
			content: "",
			wantErr: ErrEmptyGeneration,
		},
		{
			name:    "too short to be usable",
			content: "Go",
			wantErr: ErrEmptyGeneration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq completionRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/completion" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				json.NewEncoder(w).Encode(completionResponse{Content: tt.content})
			}))
			defer srv.Close()

			client, err := NewLlamaClient(srv.URL)
			if err != nil {
				t.Fatalf("NewLlamaClient: %v", err)
			}

			gen, err := client.Generate(context.Background(), "courage")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if gen.Text != tt.want {
				t.Errorf("got quote %q, want %q", gen.Text, tt.want)
			}
			if gen.Theme != "courage" {
				t.Errorf("got theme %q, want courage", gen.Theme)
			}
			if gen.GeneratedAt.IsZero() {
				t.Error("expected non-zero GeneratedAt")
			}

			// Prompt must embed the theme and the Llama 3.2 chat template.
			if !strings.Contains(gotReq.Prompt, "courage") {
				t.Errorf("prompt does not mention theme: %q", gotReq.Prompt)
			}
			if !strings.Contains(gotReq.Prompt, "<|begin_of_text|>") {
				t.Errorf("prompt missing chat template: %q", gotReq.Prompt)
			}
			if gotReq.NPredict != maxPredictTokens {
				t.Errorf("n_predict = %d, want %d", gotReq.NPredict, maxPredictTokens)
			}
			if gotReq.Stream {
				t.Error("expected stream=false")
			}
		})
	}
}

func TestLlamaClientGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, _ := NewLlamaClient(srv.URL)
	_, err := client.Generate(context.Background(), "hope")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestLlamaClientGenerateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Refuse connections

	client, _ := NewLlamaClient(srv.URL)
	_, err := client.Generate(context.Background(), "hope")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestLlamaClientPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, _ := NewLlamaClient(srv.URL)
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	srv.Close()
	if err := client.Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable after close, got %v", err)
	}
}

func TestNewLlamaClientRequiresURL(t *testing.T) {
	if _, err := NewLlamaClient(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestCleanQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "hello world"},
		{"  a\tb\nc  ", "a b c"},
		{"", ""},
		{"\n\n", ""},
	}
	for _, tt := range tests {
		if got := CleanQuote(tt.in); got != tt.want {
			t.Errorf("CleanQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
