package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/mapquiz/internal/llm"
	"github.com/abhisek/mapquiz/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		regionID, _ := cmd.Flags().GetString("region")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.RecentLLMRequests(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		events = filterPurpose(events, purpose)
		if regionID != "" {
			events = filterRegion(events, regionID)
		}
		if len(events) == 0 {
			fmt.Println("No LLM requests found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-16s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 104))
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗ " + clip(e.ErrorMessage, 40)
			}
			fmt.Printf("%-5d  %-19s  %-16s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				clip(e.Purpose, 16),
				clip(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.RecentLLMRequests(cmd.Context(), 0)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		usage := usageByModel(events)
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 76))

		var totalCost float64
		var unknown []string
		for _, mu := range usage {
			cost := llm.LookupCost(mu.model)
			if cost == nil {
				unknown = append(unknown, mu.model)
				fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
					clip(mu.model, 32), mu.calls, mu.usage.InputTokens, mu.usage.OutputTokens, "?")
				continue
			}
			c := cost.Cost(mu.usage)
			totalCost += c
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
				clip(mu.model, 32), mu.calls, mu.usage.InputTokens, mu.usage.OutputTokens, formatCost(c))
		}

		fmt.Println(strings.Repeat("─", 76))
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
		if len(unknown) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

type modelUsage struct {
	model string
	calls int
	usage llm.Usage
}

// usageByModel sums token usage per model, sorted by model name.
func usageByModel(events []store.LLMRequestEvent) []modelUsage {
	byModel := make(map[string]*modelUsage)
	for _, e := range events {
		mu, ok := byModel[e.Model]
		if !ok {
			mu = &modelUsage{model: e.Model}
			byModel[e.Model] = mu
		}
		mu.calls++
		mu.usage = mu.usage.Add(llm.Usage{InputTokens: e.InputTokens, OutputTokens: e.OutputTokens})
	}

	out := make([]modelUsage, 0, len(byModel))
	for _, mu := range byModel {
		out = append(out, *mu)
	}
	slices.SortFunc(out, func(a, b modelUsage) int { return strings.Compare(a.model, b.model) })
	return out
}

// filterPurpose keeps events whose purpose starts with prefix, so
// llm.PurposeCatalog matches every generation request.
func filterPurpose(events []store.LLMRequestEvent, prefix string) []store.LLMRequestEvent {
	if prefix == "" {
		return events
	}
	var out []store.LLMRequestEvent
	for _, e := range events {
		if strings.HasPrefix(e.Purpose, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// filterRegion keeps the catalog generation events of one region.
func filterRegion(events []store.LLMRequestEvent, regionID string) []store.LLMRequestEvent {
	var out []store.LLMRequestEvent
	for _, e := range events {
		if id, ok := llm.PurposeRegion(e.Purpose); ok && id == regionID {
			out = append(out, e)
		}
	}
	return out
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose prefix (e.g. catalog, catalog:MA-03)")
	llmListCmd.Flags().String("region", "", "Only show catalog generation requests for this region ID")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
