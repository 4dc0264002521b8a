package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/playlog/internal/config"
	"github.com/vvka-141/playlog/internal/db"
	"github.com/vvka-141/playlog/internal/logging"
	"github.com/vvka-141/playlog/internal/store"
	"github.com/vvka-141/playlog/internal/ui"
	"github.com/vvka-141/playlog/pkg/playlog"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the star schema tables",
	Long: `Setup creates the five star schema tables (songs, artists, users,
time, songplays) in the target database. The database itself must
already exist.

Creation is idempotent: existing tables are left untouched. Use --drop
to rebuild the schema from scratch; dropping requires confirmation
because it destroys all loaded data.

Examples:
  # Create tables in sparkifydb
  playlog setup -d sparkifydb

  # Rebuild the schema, with interactive confirmation
  playlog setup -d sparkifydb --drop

  # Rebuild without prompting (CI/CD pipelines)
  playlog setup -d sparkifydb --drop --force`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

type setupFlagValues struct {
	conn    connectionFlags
	drop    bool
	force   bool
	timeout time.Duration
}

var setupFlags setupFlagValues

func init() {
	rootCmd.AddCommand(setupCmd)

	registerConnectionFlags(setupCmd, &setupFlags.conn)

	setupCmd.Flags().BoolVar(&setupFlags.drop, "drop", false,
		"Drop the tables before recreating them\n"+
			"Requires interactive confirmation unless --force is used")
	setupCmd.Flags().BoolVar(&setupFlags.force, "force", false,
		"Skip interactive approval prompt for --drop\n"+
			"Shows a countdown instead; use in CI/CD pipelines")
	setupCmd.Flags().DurationVar(&setupFlags.timeout, "timeout", 1*time.Minute,
		"Abort setup if it exceeds this duration (default 1m)")
}

// buildSetupConfig builds a SetupConfig from CLI flags, playlog.yaml, and
// the environment.
func buildSetupConfig(verbose bool) (playlog.SetupConfig, *playlog.ConnectionConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return playlog.SetupConfig{}, nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}

	connConfig, err := resolveConnectionFromFlags(setupFlags.conn, projectCfg)
	if err != nil {
		return playlog.SetupConfig{}, nil, err
	}

	if connConfig.Database == "" {
		return playlog.SetupConfig{}, nil, fmt.Errorf("database name is required\n"+
			"Provide via:\n"+
			"  1. --database/-d flag: playlog setup -d sparkifydb\n"+
			"  2. Connection string: playlog setup --connection \"postgresql://user@host/sparkifydb\"\n"+
			"  3. Environment variable: export PGDATABASE=sparkifydb\n"+
			"  4. playlog.yaml: connection.database")
	}

	setupConfig := playlog.SetupConfig{
		DatabaseName:     connConfig.Database,
		ConnectionString: db.BuildConnectionString(connConfig),
		Drop:             setupFlags.drop,
		Force:            setupFlags.force,
		Timeout:          setupFlags.timeout,
		Verbose:          verbose,
	}

	if err := setupConfig.Validate(); err != nil {
		return playlog.SetupConfig{}, nil, err
	}

	return setupConfig, connConfig, nil
}

func runSetup(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)

	setupConfig, connConfig, err := buildSetupConfig(verbose)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupConfig.Timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling setup...")
		cancel()
	}()

	logger := logging.NewConsoleLogger(verbose)

	if setupConfig.Drop {
		var approver playlog.Approver
		if setupConfig.Force {
			approver = ui.NewForcedApprover(verbose)
		} else {
			approver = ui.NewInteractiveApprover(verbose)
		}

		approved, err := approver.RequestApproval(ctx, setupConfig.DatabaseName)
		if err != nil {
			return fmt.Errorf("approval failed: %w", err)
		}
		if !approved {
			return fmt.Errorf("%w: schema drop in database %q not approved", playlog.ErrApprovalDenied, setupConfig.DatabaseName)
		}
	}

	pool, err := db.NewConnector(connConfig).Connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	pgStore := store.NewPostgresStore(pool)

	if setupConfig.Drop {
		logger.Verbose("Dropping existing tables in %s", setupConfig.DatabaseName)
		if err := pgStore.DropTables(ctx); err != nil {
			return err
		}
	}

	logger.Verbose("Creating tables in %s", setupConfig.DatabaseName)
	if err := pgStore.CreateTables(ctx); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Star schema ready in database '%s'\n", setupConfig.DatabaseName)
	return nil
}
