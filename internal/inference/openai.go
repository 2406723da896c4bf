package inference

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls an OpenAI-compatible chat completions API. It works
// against the real API or a llama.cpp server started with its OpenAI
// endpoint enabled.
type OpenAIClient struct {
	model  openai.ChatModel
	client *openai.Client
}

// NewOpenAIClient builds a client. baseURL may be empty to use api.openai.com.
func NewOpenAIClient(apiKey, baseURL string, model openai.ChatModel) (*OpenAIClient, error) {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	cli := openai.NewClient(opts...)
	return &OpenAIClient{
		model:  model,
		client: &cli,
	}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, theme string) (Generation, error) {
	if c == nil || c.client == nil {
		return Generation{}, fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultCompletionTimeout)
	defer cancel()

	messages := buildMessages(
		"You write short inspirational quotes. Return only the quote itself, without punctuation or quotation marks.",
		fmt.Sprintf("Generate a unique and inspiring quote about %s (maximum 20 words).", theme),
	)
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    messages,
		Temperature: openai.Float(temperature),
		TopP:        openai.Float(topP),
		MaxTokens:   openai.Int(maxPredictTokens),
	})
	if err != nil {
		return Generation{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return Generation{}, ErrEmptyGeneration
	}

	quote := CleanQuote(resp.Choices[0].Message.Content)
	if len(quote) < minQuoteLen {
		return Generation{}, ErrEmptyGeneration
	}
	return Generation{Text: quote, Theme: theme, GeneratedAt: time.Now()}, nil
}

// Ping lists models as a cheap reachability probe.
func (c *OpenAIClient) Ping(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := c.client.Models.List(reqCtx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}
