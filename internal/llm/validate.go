package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache holds compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// finishContent turns raw model text into the response content: markdown
// fences are stripped, and when a schema was requested the result must be
// valid JSON matching it. Output truncated at the token limit that fails
// to parse is reported as ErrMaxTokensExceeded.
func finishContent(schema *Schema, text string, stopReason string) (json.RawMessage, error) {
	content := StripFences([]byte(text))
	if schema == nil {
		return content, nil
	}
	if err := validateResponse(schema, content); err != nil {
		if stopReason == "max_tokens" {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		return nil, err
	}
	return content, nil
}

// StripFences removes a surrounding ```json ... ``` or ``` ... ``` block.
// Text without a fence is returned trimmed.
func StripFences(text []byte) json.RawMessage {
	t := bytes.TrimSpace(text)
	start := bytes.Index(t, []byte("```"))
	if start < 0 {
		return json.RawMessage(t)
	}
	body := t[start+3:]
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		// Drop the info string, e.g. "json".
		if tag := bytes.TrimSpace(body[:nl]); len(tag) == 0 || isWord(tag) {
			body = body[nl+1:]
		}
	}
	if end := bytes.Index(body, []byte("```")); end >= 0 {
		body = body[:end]
	}
	return json.RawMessage(bytes.TrimSpace(body))
}

func isWord(b []byte) bool {
	for _, c := range b {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

// validateResponse checks raw against schema. It returns
// *ErrInvalidResponse on failure.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go literals.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
