package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/mapquiz/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, st, err := openEngine(ctx, cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		addr := lookupSetting(cmd, "addr", "MAPQUIZ_ADDR", ":8080")
		token := os.Getenv("MAPQUIZ_ADMIN_TOKEN")
		if token == "" {
			log.Print("MAPQUIZ_ADMIN_TOKEN is not set, admin routes are open")
		}

		if every, _ := cmd.Flags().GetDuration("remind-every"); every > 0 {
			reminder, err := server.NewReminder(engine, every)
			if err != nil {
				return err
			}
			reminder.Start()
			defer reminder.Stop()
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           server.New(engine, token).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("listening on %s (mastery policy %s)", addr, engine.Policy())
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Print("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MAPQUIZ_ADDR, default :8080)")
	serveCmd.Flags().Duration("remind-every", 0, "Log the number of due questions at this interval (0 disables)")
}
