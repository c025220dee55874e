package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"llamagate/internal/prompt"
)

// Envelope is the JSON object a model emits to invoke a function.
type Envelope struct {
	Type       string          `json:"type" validate:"required,eq=FUNC_CALL"`
	Name       string          `json:"name" validate:"required"`
	Parameters json.RawMessage `json:"parameters"`
}

var (
	errNoEnvelope    = errors.New("no JSON object found")
	envelopeValidate = validator.New()
)

// ContainsFunctionCall reports whether text carries the function-call marker.
func ContainsFunctionCall(text string) bool {
	return strings.Contains(text, prompt.FunctionCallMarker)
}

// DetectFunctionCall extracts the envelope embedded in text. It returns
// (nil, nil) when text has no marker, and an error when the marker is present
// but the envelope between the first '{' and the last '}' does not parse or
// validate.
func DetectFunctionCall(text string) (*prompt.FunctionCall, error) {
	if !ContainsFunctionCall(text) {
		return nil, nil
	}
	env, err := ParseEnvelope(strings.TrimLeftFunc(text, unicode.IsSpace))
	if err != nil {
		return nil, err
	}
	args, err := encodeArguments(env.Parameters)
	if err != nil {
		return nil, fmt.Errorf("encode parameters: %w", err)
	}
	return &prompt.FunctionCall{Name: env.Name, Arguments: args}, nil
}

// ParseEnvelope decodes and validates the JSON object spanning the first '{'
// and the last '}' of text.
func ParseEnvelope(text string) (Envelope, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return Envelope{}, errNoEnvelope
	}
	// Keys match exactly; json.Unmarshal into the struct would also accept
	// "TYPE" or "Name".
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	var env Envelope
	if err := envelopeString(obj, "type", &env.Type); err != nil {
		return Envelope{}, err
	}
	if err := envelopeString(obj, "name", &env.Name); err != nil {
		return Envelope{}, err
	}
	env.Parameters = obj["parameters"]
	if err := envelopeValidate.Struct(env); err != nil {
		return Envelope{}, fmt.Errorf("invalid envelope: %w", err)
	}
	return env, nil
}

func envelopeString(obj map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode envelope %s: %w", key, err)
	}
	return nil
}

// encodeArguments re-serializes parameters the way Python's json.dumps does by
// default, which is the argument format clients of this API expect. Missing or
// null parameters become an empty object.
func encodeArguments(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "{}", nil
	}
	return encodePythonJSON(raw)
}
