package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/llm"
)

// ErrNoQuestions means a response held no question that passed validation.
var ErrNoQuestions = errors.New("no valid questions generated")

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config

	mu    sync.Mutex
	usage llm.Usage
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is one raw item of the LLM response before validation.
type questionOutput struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	RegionID string   `json:"region_id"`
}

// Generate asks the provider for input.Count questions about input.Region.
// Surviving questions are renumbered <REGION>_Q<n> from input.FirstIndex.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]catalog.Question, error) {
	if input.Count < 1 {
		input.Count = g.config.Count
	}
	ctx = llm.WithPurpose(ctx, llm.CatalogPurpose(input.Region.ID))

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	g.addUsage(resp.Usage)

	var raw []questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	next := firstIndex(input)
	var out []catalog.Question
	for i, r := range raw {
		if len(out) == input.Count {
			break
		}
		q := toQuestion(r, input)
		if verr := g.validate(&q, input); verr != nil {
			log.Printf("questiongen: %s item %d dropped: %v", input.Region.ID, i+1, verr)
			continue
		}
		q.ID = fmt.Sprintf("%s_Q%d", input.Region.ID, next)
		next++
		out = append(out, q)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", input.Region.ID, ErrNoQuestions)
	}
	return out, nil
}

// Usage returns the token usage accumulated over all Generate calls.
func (g *LLMGenerator) Usage() llm.Usage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.usage
}

func (g *LLMGenerator) addUsage(u llm.Usage) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.usage = g.usage.Add(u)
}

func (g *LLMGenerator) validate(q *catalog.Question, input GenerateInput) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}

// toQuestion trims the raw item. A missing region_id takes the requested
// region.
func toQuestion(r questionOutput, input GenerateInput) catalog.Question {
	regionID := strings.TrimSpace(r.RegionID)
	if regionID == "" {
		regionID = input.Region.ID
	}
	options := make([]string, len(r.Options))
	for i, o := range r.Options {
		options[i] = strings.TrimSpace(o)
	}
	return catalog.Question{
		ID:       r.ID,
		RegionID: regionID,
		Prompt:   strings.TrimSpace(r.Question),
		Options:  options,
		Answer:   strings.TrimSpace(r.Answer),
	}
}
