package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/mapquiz/internal/catalog"
	"github.com/abhisek/mapquiz/internal/region"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the question catalog file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := lookupSetting(cmd, "catalog", "MAPQUIZ_CATALOG", defaultCatalogPath)
		chain, err := region.NewChain(region.Morocco())
		if err != nil {
			return err
		}

		c, err := catalog.Loader{Path: path, Regions: chain}.Load()
		if err != nil {
			return err
		}
		rep := c.Report()

		fmt.Printf("Path:    %s\n", rep.Path)
		fmt.Printf("Exists:  %v\n", rep.Exists)
		if !rep.Exists {
			fmt.Println("Every region uses the built-in questions.")
			return nil
		}
		if rep.ParseErr != nil {
			fmt.Printf("Parse:   failed (%v)\n", rep.ParseErr)
			return fmt.Errorf("catalog %s is unreadable", rep.Path)
		}
		fmt.Printf("Parse:   ok (%s)\n", rep.Shape)

		fmt.Println()
		fmt.Printf("%-6s  %-26s  %9s\n", "ID", "Region", "Questions")
		fmt.Println(strings.Repeat("─", 46))
		total := 0
		for _, r := range chain.All() {
			n := rep.Counts[r.ID]
			note := ""
			if slices.Contains(rep.FallbackRegions, r.ID) {
				note = "  (none, using built-in)"
				n = 0
			}
			total += n
			fmt.Printf("%-6s  %-26s  %9d%s\n", r.ID, r.EnglishName, n, note)
		}
		fmt.Println(strings.Repeat("─", 46))
		fmt.Printf("%-6s  %-26s  %9d\n", "TOTAL", "", total)

		if len(rep.Dropped) > 0 {
			fmt.Printf("\nDropped %d entries:\n", len(rep.Dropped))
			for _, d := range rep.Dropped {
				fmt.Println("  " + d)
			}
		}
		return nil
	},
}
