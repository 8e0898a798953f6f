package questiongen

import "github.com/abhisek/mapquiz/internal/llm"

// QuestionsSchema defines the JSON schema for one region's response.
var QuestionsSchema = &llm.Schema{
	Name:        "region-questions",
	Description: "Multiple choice quiz questions about one region",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "string",
					"description": "Question ID in the form <REGION>_Q<n>",
				},
				"question": map[string]any{
					"type":        "string",
					"description": "The question text in Arabic",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"minItems":    4,
					"maxItems":    4,
					"description": "Exactly 4 distinct options in Arabic",
				},
				"answer": map[string]any{
					"type":        "string",
					"description": "The correct option, copied exactly from options",
				},
				"region_id": map[string]any{
					"type":        "string",
					"description": "The region code the question is about",
				},
			},
			"required": []any{"id", "question", "options", "answer", "region_id"},
		},
	},
}
