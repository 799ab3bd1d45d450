package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/store/sqlite"
)

func newServeCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  "Serve the folder and task API until interrupted with SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := NewApp(r.config, r.logger)
			if err != nil {
				return r.errors.Handle("start server", err)
			}
			defer app.Close()

			if err := app.Serve(ctx); err != nil {
				return r.errors.Handle("serve", err)
			}
			return nil
		},
	}
}

func newMigrateCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending store migrations",
		Long:  "Apply pending schema migrations to the SQLite store. The memory driver has nothing to migrate.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if r.config.Store.Driver != config.DriverSQLite {
				fmt.Fprintf(cmd.OutOrStdout(), "Driver %s has no migrations\n", r.config.Store.Driver)
				return nil
			}

			dbPath := r.config.GetDatabasePath()
			if dbPath != ":memory:" {
				if err := os.MkdirAll(r.config.Store.Dir, 0o755); err != nil {
					return r.errors.Handle("create store directory", err)
				}
			}

			applied, err := sqlite.Migrate(dbPath)
			if err != nil {
				return r.errors.Handle("migrate store", err)
			}
			r.logger.Info().
				Str("path", dbPath).
				Ints("versions", applied).
				Msg("applied migrations")

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Store is up to date")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s): %v\n", len(applied), applied)
			return nil
		},
	}
}

func newTokenCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "token [user id]",
		Short: "Mint a bearer token for a user",
		Long: `Mint a signed bearer token whose subject is the given user id.

Example:
  curl -H "Authorization: Bearer $(tm token alice)" localhost:8080/api/v1/folders`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := api.NewAuthenticator(r.config.Auth).Mint(args[0])
			if err != nil {
				return r.errors.Handle("mint token", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
