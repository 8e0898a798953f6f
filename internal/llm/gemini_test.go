package llm

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "description": "prompt"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"level": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			},
			"required": []any{"question", "options"},
		},
	}

	s := buildGeminiSchema(def)
	if s.Type != genai.TypeArray {
		t.Fatalf("type = %q, want array", s.Type)
	}
	item := s.Items
	if item == nil || item.Type != genai.TypeObject {
		t.Fatalf("items = %+v, want object", item)
	}
	if len(item.Required) != 2 {
		t.Errorf("required = %v", item.Required)
	}
	if item.Properties["question"].Description != "prompt" {
		t.Errorf("description lost")
	}
	opts := item.Properties["options"]
	if opts.MinItems == nil || *opts.MinItems != 4 || opts.MaxItems == nil || *opts.MaxItems != 4 {
		t.Errorf("options bounds = %v/%v", opts.MinItems, opts.MaxItems)
	}
	if got := item.Properties["level"].Enum; len(got) != 2 || got[1] != "hard" {
		t.Errorf("enum = %v", got)
	}
}

func TestMapGeminiStopReason(t *testing.T) {
	truncated := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}}}
	if got := mapGeminiStopReason(truncated); got != "max_tokens" {
		t.Errorf("got %q, want max_tokens", got)
	}
	if got := mapGeminiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Errorf("got %q, want end", got)
	}
}

func TestMapGeminiError(t *testing.T) {
	var rl *ErrRateLimit
	if err := mapGeminiError(&genai.APIError{Code: 429}); !errors.As(err, &rl) {
		t.Errorf("429 mapped to %T", err)
	}
	var u *ErrProviderUnavailable
	if err := mapGeminiError(&genai.APIError{Code: 503}); !errors.As(err, &u) {
		t.Errorf("503 mapped to %T", err)
	}
}
