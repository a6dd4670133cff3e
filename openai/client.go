package openai

import (
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultModel = "gpt-4.1-mini"

// Client wraps the OpenAI client and scores message polarity with a
// structured-output chat completion. It satisfies sentiment.Scorer.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI client wrapper with the specified API key and HTTP client.
// The HTTP client allows for custom configuration such as timeouts and proxy settings.
func NewClient(apiKey, model string, httpClient http.Client, opts ...option.RequestOption) Client {
	if model == "" {
		model = DefaultModel
	}

	options := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&httpClient),
	}, opts...)
	client := openai.NewClient(options...)

	return Client{
		client: &client,
		model:  model,
	}
}
