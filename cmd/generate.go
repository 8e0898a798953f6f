package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/llm"
	"github.com/abhisek/mapquiz/internal/questiongen"
	"github.com/abhisek/mapquiz/internal/region"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the question catalog with an LLM",
	Long: "Generate asks the configured LLM provider for questions about each region " +
		"and writes them to the catalog file. The provider is picked from " +
		"GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		llmCfg, found := llm.ConfigFromEnv()
		if !found {
			return errors.New("no LLM provider configured: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")
		}

		st, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
		if err != nil {
			return err
		}

		chain, err := region.NewChain(region.Morocco())
		if err != nil {
			return err
		}
		ids, _ := cmd.Flags().GetStringSlice("region")
		regions, err := selectRegions(chain, ids)
		if err != nil {
			return err
		}

		current, err := catalog.Loader{Path: s.Catalog, Regions: chain}.Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		merge, _ := cmd.Flags().GetBool("merge")
		existing := keptQuestions(current, chain.All(), regions, merge)

		cfg := questiongen.DefaultConfig()
		if n, _ := cmd.Flags().GetInt("count"); n > 0 {
			cfg.Count = n
		}
		gen := questiongen.New(provider, cfg)

		log.Printf("generating %d questions for %d regions with %s (%s)",
			cfg.Count, len(regions), llmCfg.Provider, provider.ModelID())
		res, runErr := questiongen.Run(ctx, gen, regions, existing, cfg)
		if res == nil {
			return runErr
		}

		printGenerateSummary(res, regions)
		if len(res.Questions) > 0 {
			if err := catalog.WriteFile(s.Catalog, res.Questions); err != nil {
				return err
			}
			fmt.Printf("Wrote %d questions to %s\n", len(res.Questions), s.Catalog)
		}

		usage := gen.Usage()
		fmt.Printf("Tokens: %d in / %d out", usage.InputTokens, usage.OutputTokens)
		if cost := llm.LookupCost(provider.ModelID()); cost != nil {
			fmt.Printf(" (%s)", formatCost(cost.Cost(usage)))
		}
		fmt.Println()

		if runErr != nil {
			return fmt.Errorf("generation interrupted: %w", runErr)
		}
		if len(res.Failed) == len(regions) {
			return errors.New("no region produced questions")
		}
		return nil
	},
}

// selectRegions returns the regions named by ids in chain order, or every
// region when ids is empty.
func selectRegions(chain *region.Chain, ids []string) ([]region.Region, error) {
	if len(ids) == 0 {
		return chain.All(), nil
	}
	for _, id := range ids {
		if _, ok := chain.Get(id); !ok {
			return nil, fmt.Errorf("unknown region %q", id)
		}
	}
	var out []region.Region
	for _, r := range chain.All() {
		if slices.Contains(ids, r.ID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// keptQuestions returns the questions of the current catalog file that
// survive a generation run: those of regions not being generated, plus
// those of the generated regions when merging. Built-in fallback questions
// are never written out.
func keptQuestions(c *catalog.Catalog, all, generated []region.Region, merge bool) []catalog.Question {
	rep := c.Report()
	if !rep.Exists || rep.ParseErr != nil {
		return nil
	}

	var out []catalog.Question
	for _, r := range all {
		if slices.Contains(rep.FallbackRegions, r.ID) {
			continue
		}
		requested := slices.ContainsFunc(generated, func(g region.Region) bool { return g.ID == r.ID })
		if requested && !merge {
			continue
		}
		out = append(out, c.Region(r.ID)...)
	}
	return out
}

func printGenerateSummary(res *questiongen.Result, regions []region.Region) {
	fmt.Printf("%-6s  %-26s  %s\n", "ID", "Region", "Result")
	fmt.Println(strings.Repeat("─", 60))
	for _, r := range regions {
		result := "not reached"
		if n, ok := res.Generated[r.ID]; ok {
			result = fmt.Sprintf("%d generated", n)
		} else if err, ok := res.Failed[r.ID]; ok {
			result = "failed: " + err.Error()
		}
		fmt.Printf("%-6s  %-26s  %s\n", r.ID, r.EnglishName, result)
	}
	fmt.Println(strings.Repeat("─", 60))
}

func init() {
	generateCmd.Flags().IntP("count", "n", 0, "Questions per region (default 10)")
	generateCmd.Flags().StringSlice("region", nil, "Only generate these region IDs (repeatable)")
	generateCmd.Flags().Bool("merge", false, "Keep the existing questions of generated regions and add new ones")
}
