package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/mapquiz/internal/mastery"
	"github.com/abhisek/mapquiz/internal/progress"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due <region>",
	Short: "Show the questions due for review in a region",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, st, err := openEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		qs, err := engine.DueQuestions(args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(qs)
		}
		if len(qs) == 0 {
			fmt.Printf("Nothing due in %s.\n", args[0])
			return nil
		}

		for i, q := range qs {
			fmt.Printf("%d. [%s] %s\n", i+1, q.ID, q.Prompt)
			for _, opt := range q.Options {
				fmt.Printf("     - %s\n", opt)
			}
		}
		return nil
	},
}

var answerCmd = &cobra.Command{
	Use:     "answer <region> <question-id>=<answer>...",
	Short:   "Grade answers for a region",
	Example: `  mapquiz answer MA-01 MA-01_Q1="طنجة" MA-01_Q2="تطوان"`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := parseAnswers(args[1:])
		if err != nil {
			return err
		}

		engine, st, err := openEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := engine.GradeAnswers(cmd.Context(), args[0], answers)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(res)
		}

		writeGradeResult(os.Stdout, res)
		return nil
	},
}

// writeGradeResult prints one line per graded answer with its lifecycle
// change, then the region summary.
func writeGradeResult(w io.Writer, res *progress.GradeResult) {
	correct := 0
	for _, r := range res.Results {
		mark, note := "✗", "correct: "+r.CorrectAnswer
		if r.Correct {
			correct++
			mark, note = "✓", ""
		}
		change := ""
		if tr, ok := res.TransitionOf(r.ID); ok {
			change = fmt.Sprintf("%s → %s", tr.From, tr.To)
		}
		fmt.Fprintf(w, "%s %-12s  %-22s  %s\n", mark, r.ID, change, note)
	}
	fmt.Fprintln(w, strings.Repeat("─", 50))
	fmt.Fprintf(w, "%d / %d correct, region mastery %.1f%%\n",
		correct, len(res.Results), res.MasteryPercent*100)
	if n := res.CountTransitions(mastery.StateMastered); n > 0 {
		fmt.Fprintf(w, "Newly mastered: %d\n", n)
	}
	if n := res.CountTransitions(mastery.StateNew); n > 0 {
		fmt.Fprintf(w, "Back to review: %d\n", n)
	}
	if res.UnlockedRegion != "" {
		fmt.Fprintf(w, "New region unlocked: %s\n", res.UnlockedRegion)
	}
}

// parseAnswers splits id=answer pairs. The answer keeps its exact text,
// since grading is an exact match.
func parseAnswers(pairs []string) ([]progress.Answer, error) {
	out := make([]progress.Answer, 0, len(pairs))
	for _, p := range pairs {
		id, ans, ok := strings.Cut(p, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid answer %q: want <question-id>=<answer>", p)
		}
		out = append(out, progress.Answer{QuestionID: id, Submitted: ans})
	}
	return out, nil
}

func init() {
	dueCmd.Flags().Bool("json", false, "Print the questions as JSON")
	answerCmd.Flags().Bool("json", false, "Print the grading result as JSON")
}
