package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Generation parameters for the llama.cpp completion endpoint. These are
// fixed; creativity-oriented sampling suits short inspirational quotes.
const (
	maxPredictTokens = 50
	temperature      = 0.9
	topP             = 0.95
	topK             = 40
	repeatPenalty    = 1.2

	defaultCompletionTimeout = 60 * time.Second

	// minQuoteLen is the shortest generation still considered usable.
	minQuoteLen = 10
)

var stopSequences = []string{"<|eot_id|>", "<|end_of_text|>", "\n"}

// LlamaClient calls the native llama.cpp /completion API.
type LlamaClient struct {
	baseURL string
	httpc   *http.Client
}

// NewLlamaClient builds a client for a llama.cpp server at baseURL.
func NewLlamaClient(baseURL string) (*LlamaClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL required")
	}
	return &LlamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultCompletionTimeout},
	}, nil
}

type completionRequest struct {
	Prompt        string   `json:"prompt"`
	NPredict      int      `json:"n_predict"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"top_p"`
	TopK          int      `json:"top_k"`
	RepeatPenalty float64  `json:"repeat_penalty"`
	Stop          []string `json:"stop"`
	Stream        bool     `json:"stream"`
}

type completionResponse struct {
	Content string `json:"content"`
}

func (c *LlamaClient) Generate(ctx context.Context, theme string) (Generation, error) {
	if c == nil || c.httpc == nil {
		return Generation{}, fmt.Errorf("nil llama.cpp client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultCompletionTimeout)
	defer cancel()

	payload := completionRequest{
		Prompt:        buildPrompt(theme),
		NPredict:      maxPredictTokens,
		Temperature:   temperature,
		TopP:          topP,
		TopK:          topK,
		RepeatPenalty: repeatPenalty,
		Stop:          stopSequences,
		Stream:        false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Generation{}, err
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/completion", bytes.NewReader(body))
	if err != nil {
		return Generation{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Generation{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Generation{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Generation{}, fmt.Errorf("%w: malformed response: %v", ErrEmptyGeneration, err)
	}

	quote := CleanQuote(result.Content)
	if len(quote) < minQuoteLen {
		return Generation{}, ErrEmptyGeneration
	}
	return Generation{Text: quote, Theme: theme, GeneratedAt: time.Now()}, nil
}

// Ping hits the llama.cpp /health endpoint.
func (c *LlamaClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// buildPrompt applies the Llama 3.2 chat template around the themed request.
func buildPrompt(theme string) string {
	userMessage := fmt.Sprintf(
		"Generate a unique and inspiring quote about %s (maximum 20 words) without punctuation or quotation marks.\nOnly return the quote itself.",
		theme,
	)
	return fmt.Sprintf(
		"<|begin_of_text|><|start_header_id|>user<|end_header_id|>\n\n%s<|eot_id|><|start_header_id|>assistant<|end_header_id|>\n\n",
		userMessage,
	)
}

// CleanQuote collapses all runs of whitespace to single spaces and trims.
func CleanQuote(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
