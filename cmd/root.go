package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mapquiz",
	Short: "Regional quiz of Morocco with spaced repetition",
	Long: "MapQuiz walks through the twelve regions of Morocco one at a time. " +
		"Master three quarters of a region's questions to unlock the next one.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetFlags(log.LstdFlags)
		log.SetPrefix("mapquiz: ")
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Database DSN, or SQLite file path (overrides MAPQUIZ_DB)")
	pf.String("db-driver", "", "Database driver: sqlite, postgres or mysql (overrides MAPQUIZ_DB_DRIVER)")
	pf.String("catalog", "", "Question catalog file (overrides MAPQUIZ_CATALOG)")
	pf.String("mastery-policy", "", "Mastery policy: first-pass or interval-21 (overrides MAPQUIZ_MASTERY_POLICY)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(unlockAllCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
