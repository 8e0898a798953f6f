package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/progress"
	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions in unlock order",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, st, err := openEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Printf("%-6s  %-26s  %s\n", "ID", "Region", "Name")
		fmt.Println(strings.Repeat("─", 60))
		for _, r := range engine.ListRegions() {
			fmt.Printf("%-6s  %-26s  %s\n", r.ID, r.EnglishName, r.DisplayName)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show unlock status and mastery per region",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, st, err := openEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			status, err := engine.StatusMap()
			if err != nil {
				return err
			}
			return printJSON(status)
		}

		summaries, err := engine.Summaries()
		if err != nil {
			return err
		}

		fmt.Printf("%-6s  %-26s  %-9s  %9s  %7s  %6s\n",
			"ID", "Region", "Status", "Mastered", "Percent", "Due")
		fmt.Println(strings.Repeat("─", 74))
		for _, s := range summaries {
			fmt.Printf("%-6s  %-26s  %-9s  %4d/%-4d  %6.1f%%  %6s\n",
				s.Region.ID, s.Region.EnglishName, statusLabel(s.Status),
				s.Mastered, s.Total, s.Percent(), dueLabel(s))
		}
		return nil
	},
}

func statusLabel(s mastery.Status) string {
	switch s {
	case mastery.StatusMastered:
		return "★ " + string(s)
	case mastery.StatusUnlocked:
		return "◆ " + string(s)
	default:
		return string(s)
	}
}

// dueLabel shows the due count, or the wait until the next review when
// nothing is due.
func dueLabel(s progress.RegionSummary) string {
	if s.Due == 0 && s.NextReviewDays > 0 {
		return fmt.Sprintf("in %dd", s.NextReviewDays)
	}
	return strconv.Itoa(s.Due)
}

// printJSON writes v to stdout the way the HTTP API encodes it.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	statusCmd.Flags().Bool("json", false, "Print the status map as JSON")
}
