package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/playlog/internal/config"
	"github.com/vvka-141/playlog/internal/tui"
	"github.com/vvka-141/playlog/internal/tui/wizards"
	"github.com/vvka-141/playlog/pkg/playlog"
)

var initCmd = &cobra.Command{
	Use:   "init [target_path]",
	Short: "Initialize a new playlog project",
	Long: `Initialize a playlog project into the specified directory.

The init command creates:
- playlog.yaml with the database connection and dataset settings
- data/song_data/ and data/log_data/ directories for the dataset

In an interactive terminal, a connection wizard collects and verifies
the settings. In scripts and CI (or with connection environment
variables set), sensible defaults are written instead.

Passwords are never written to playlog.yaml. Provide them at load time
via $PGPASSWORD, .pgpass, or a connection string.

Examples:
  playlog init              # Initialize in current directory
  playlog init ./myproject  # Initialize in ./myproject`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false,
		"Overwrite an existing playlog.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}
	verbose := getVerboseFlag(cmd)

	configPath := filepath.Join(targetPath, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists in '%s'\n\nUse --force to overwrite it", config.ConfigFileName, targetPath)
	}

	projectCfg := defaultProjectConfig()

	// Run the wizard only on a real terminal with no connection info
	// already in the environment.
	if tui.IsInteractive() && !hasEnvConnectionSource() {
		result, err := wizards.RunConnectionWizard()
		if err != nil {
			return fmt.Errorf("connection wizard failed: %w", err)
		}
		if result.Cancelled {
			fmt.Fprintln(os.Stderr, "Init cancelled.")
			return nil
		}
		projectCfg = projectConfigFromWizard(result)
		if result.Tested {
			offerSavePgpass(&result.Config)
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "[VERBOSE] Non-interactive terminal, writing default playlog.yaml")
	}

	if err := writeProject(targetPath, projectCfg); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n✓ Project initialized in '%s'\n\n", targetPath)
	fmt.Fprintln(os.Stderr, "Created structure:")
	fmt.Fprintf(os.Stderr, "  %s\n", config.ConfigFileName)
	fmt.Fprintf(os.Stderr, "  %s/%s/\n", projectCfg.Data.Path, playlog.SongDataDir)
	fmt.Fprintf(os.Stderr, "  %s/%s/\n", projectCfg.Data.Path, playlog.LogDataDir)

	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(os.Stderr, "  # Copy your dataset into the data directories, then:")
	fmt.Fprintf(os.Stderr, "  playlog setup -d %s\n", projectCfg.Connection.Database)
	fmt.Fprintln(os.Stderr, "  playlog load")

	return nil
}

func defaultProjectConfig() *config.ProjectConfig {
	return &config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Database: "sparkifydb",
			SSLMode:  "prefer",
		},
		Data: config.DataConfig{Path: "data"},
	}
}

func projectConfigFromWizard(result wizards.ConnectionResult) *config.ProjectConfig {
	return &config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     result.Config.Host,
			Port:     result.Config.Port,
			Username: result.Config.Username,
			Database: result.Config.Database,
			SSLMode:  result.Config.SSLMode,
		},
		Data: config.DataConfig{Path: result.DataPath},
	}
}

// writeProject creates the target directory, playlog.yaml, and the empty
// dataset directories.
func writeProject(targetPath string, projectCfg *config.ProjectConfig) error {
	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(projectCfg)
	if err != nil {
		return err
	}
	header := "# playlog project configuration.\n" +
		"# Passwords are never stored here; use $PGPASSWORD, .pgpass, or a connection string.\n"
	configPath := filepath.Join(targetPath, config.ConfigFileName)
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0644); err != nil {
		return err
	}

	dataRoot := projectCfg.Data.Path
	if !filepath.IsAbs(dataRoot) {
		dataRoot = filepath.Join(targetPath, dataRoot)
	}
	for _, sub := range []string{playlog.SongDataDir, playlog.LogDataDir} {
		if err := os.MkdirAll(filepath.Join(dataRoot, sub), 0755); err != nil {
			return err
		}
	}

	return nil
}
