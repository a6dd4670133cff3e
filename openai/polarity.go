package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"
)

const polarityPrompt = `You are a sentiment classifier for customer support chats.
You receive a single message written by a customer.
Return its sentiment polarity as a number between -1 and 1:
- negative values for complaints, frustration or dissatisfaction
- positive values for praise, gratitude or satisfaction
- exactly 0 when the message carries no sentiment (questions, order numbers, greetings)
Judge only the given message.`

func (c *Client) Polarity(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	chatCompletion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(polarityPrompt),
			openai.UserMessage(text),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: createSchemaParam()},
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(0),
	})
	if err != nil {
		log.Error().Err(err).Msg("Error calling polarity classifier")
		return 0, fmt.Errorf("openai polarity: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return 0, errors.New("openai returned no choices")
	}

	return parsePolarity(chatCompletion.Choices[0].Message.Content)
}

func parsePolarity(content string) (float64, error) {
	var result PolarityResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return 0, fmt.Errorf("openai content is not a polarity object: %w", err)
	}

	switch {
	case result.Polarity > 1:
		return 1, nil
	case result.Polarity < -1:
		return -1, nil
	}
	return result.Polarity, nil
}
