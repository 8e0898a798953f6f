package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/mapquiz/internal/region"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer accuracy per region",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.AnswerStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query answer stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		names := make(map[string]string)
		for _, r := range region.Morocco() {
			names[r.ID] = r.EnglishName
		}

		fmt.Printf("%-6s  %-26s  %8s  %8s  %8s\n", "ID", "Region", "Attempts", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 64))

		var attempts, correct int
		for _, s := range stats {
			fmt.Printf("%-6s  %-26s  %8d  %8d  %7.1f%%\n",
				s.RegionID, names[s.RegionID], s.Attempts, s.Correct, s.Accuracy()*100)
			attempts += s.Attempts
			correct += s.Correct
		}

		fmt.Println(strings.Repeat("─", 64))
		total := 0.0
		if attempts > 0 {
			total = float64(correct) / float64(attempts) * 100
		}
		fmt.Printf("%-6s  %-26s  %8d  %8d  %7.1f%%\n", "TOTAL", "", attempts, correct, total)
		return nil
	},
}
