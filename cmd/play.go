package cmd

import (
	"github.com/abhisek/mapquiz/internal/app"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the terminal quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, builds the engine, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	engine, st, err := openEngine(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(engine)
}
