package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	config *config.Config
	logger zerolog.Logger
	errors *ErrorHandler
	logOut io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader) *RootCommand {
	root := &RootCommand{
		loader: loader,
		logger: zerolog.Nop(),
		errors: NewErrorHandler(),
		logOut: os.Stderr,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "Task manager backend",
		Long: `Task manager (tm) serves the folder and task API for a personal task manager.

EXAMPLES:
  tm serve                                 # Serve the HTTP API
  tm migrate                               # Apply pending store migrations
  tm token alice                           # Mint a bearer token for user alice

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

  TM_ENV                                   local, dev or prod (default: local)
  TM_STORE_DRIVER                          sqlite or memory (default: sqlite)
  TM_STORE_DIR                             Store directory (default: ~/.tm)
  TM_STORE_FILENAME                        Store filename (default: tm.db)
  TM_STORE_FANOUT_LIMIT                    Concurrent folder reads, -1 for no limit (default: 8)
  TM_HTTP_HOST, TM_HTTP_PORT               Listen address (default: 0.0.0.0:8080)
  TM_AUTH_SIGNING_KEY                      HS256 signing key, required in prod
  TM_AUTH_ISSUER                           Token issuer (default: task-manager)
  TM_AUTH_TOKEN_TTL                        Token lifetime (default: 24h)
  TM_TASKS_NEARING_DUE_DAYS                Default nearing-due window (default: 3)
  TM_TASKS_TIMEZONE                        Zone used for day matching (default: Local)
  TM_DEBUG                                 Debug logging in prod`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs overrides the arguments the root command parses
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output and logs
func (r *RootCommand) SetOutput(out, logOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(logOut)
	r.logOut = logOut
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("env", "", "Environment: local, dev or prod (overrides TM_ENV)")

	flags.String("store-driver", "", "Store driver: sqlite or memory (overrides TM_STORE_DRIVER)")
	flags.String("store-dir", "", "Store directory (overrides TM_STORE_DIR)")
	flags.String("store-filename", "", "Store filename (overrides TM_STORE_FILENAME)")

	flags.String("host", "", "HTTP listen host (overrides TM_HTTP_HOST)")
	flags.String("port", "", "HTTP listen port (overrides TM_HTTP_PORT)")

	flags.Int("nearing-due-days", 0, "Default nearing-due window in days (overrides TM_TASKS_NEARING_DUE_DAYS)")
	flags.String("timezone", "", "Zone used for day matching (overrides TM_TASKS_TIMEZONE)")

	flags.Duration("token-ttl", 0, "Bearer token lifetime (overrides TM_AUTH_TOKEN_TTL)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		newServeCommand(r),
		newMigrateCommand(r),
		newTokenCommand(r),
	)
}

// overridesFromFlags collects the flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	overrides.Env = stringFlag("env")
	overrides.StoreDriver = stringFlag("store-driver")
	overrides.StoreDir = stringFlag("store-dir")
	overrides.StoreFilename = stringFlag("store-filename")
	overrides.HTTPHost = stringFlag("host")
	overrides.HTTPPort = stringFlag("port")
	overrides.Timezone = stringFlag("timezone")

	if flags.Changed("nearing-due-days") {
		days, _ := flags.GetInt("nearing-due-days")
		overrides.NearingDueDays = &days
	}
	if flags.Changed("token-ttl") {
		ttl, _ := flags.GetDuration("token-ttl")
		overrides.TokenTTL = &ttl
	}

	return overrides
}

// loadConfig reads the configuration and builds the logger before any command runs
func (r *RootCommand) loadConfig() error {
	if r.loader == nil {
		return fmt.Errorf("configuration loader not initialized")
	}

	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return r.errors.Handle("load configuration", err)
	}

	logger, err := logging.New(cfg.Env, r.logOut)
	if err != nil {
		return r.errors.Handle("create logger", err)
	}

	r.config = cfg
	r.logger = logger
	return nil
}
