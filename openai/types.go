package openai

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
)

// PolarityResult is the structured answer requested from the model.
type PolarityResult struct {
	// Polarity is the sentiment of the message between -1 and 1
	Polarity float64 `json:"polarity" jsonschema:"minimum=-1,maximum=1" jsonschema_description:"Sentiment polarity of the message from -1 (very negative) to 1 (very positive), 0 when neutral"`
}

// GenerateSchema creates a JSON schema for the given type T.
// It uses reflection to generate a strict schema that disallows additional properties
// and doesn't use references for better compatibility with OpenAI's API.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// PolarityResponseSchema is the pre-generated JSON schema for PolarityResult.
var PolarityResponseSchema = GenerateSchema[PolarityResult]()

func createSchemaParam() openai.ResponseFormatJSONSchemaJSONSchemaParam {
	return openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "message_polarity",
		Description: openai.String("Sentiment polarity of one customer message"),
		Schema:      PolarityResponseSchema,
		Strict:      openai.Bool(true),
	}
}
