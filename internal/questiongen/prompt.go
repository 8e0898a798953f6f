package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an educational assistant writing quiz questions in Arabic about the regions of Morocco.

Rules:
- Write every question and option in Modern Standard Arabic.
- Cover geography (location, borders, landscape), history (events, figures), culture (festivals, food, music, dialects), landmarks and major cities.
- Each question has exactly 4 distinct options and exactly one correct option.
- The "answer" field must be copied character for character from "options".
- Questions must be self-contained and factually accurate. Prefer well-known facts over obscure trivia.
- Do not repeat any question from the "already in the catalog" list.
- Return only the JSON array. No markdown, no commentary.`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	r := input.Region
	first := firstIndex(input)

	var b strings.Builder
	fmt.Fprintf(&b, "Region: %s (%s)\n", r.DisplayName, r.EnglishName)
	fmt.Fprintf(&b, "Region code: %s\n", r.ID)
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)
	fmt.Fprintf(&b, "IDs: %s_Q%d to %s_Q%d\n", r.ID, first, r.ID, first+input.Count-1)

	b.WriteString("\nAlready in the catalog:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	fmt.Fprintf(&b, "\n\nExample item:\n"+
		`{"id": "%s_Q%d", "question": "ما هي عاصمة جهة %s؟", "options": ["...", "...", "...", "..."], "answer": "...", "region_id": "%s"}`,
		r.ID, first, r.DisplayName, r.ID)

	return b.String()
}

// buildDedup formats prior questions for the prompt, keeping the most
// recent max. Returns "None" if there are none.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

func firstIndex(input GenerateInput) int {
	if input.FirstIndex < 1 {
		return 1
	}
	return input.FirstIndex
}
