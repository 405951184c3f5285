package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/astroplot/orrery/internal/db"
	"github.com/astroplot/orrery/internal/observability"
	"github.com/astroplot/orrery/internal/repository"
	"github.com/astroplot/orrery/internal/types"
	"github.com/astroplot/orrery/pkg/catalog"
	"github.com/astroplot/orrery/pkg/utils"
)

const (
	appName = "orrery"
	version = "v1.0.0"
)

var (
	// Global configuration, loaded in PersistentPreRunE
	cfg *utils.Config

	// Run archive, open only when the archive is enabled
	archiveDB *sql.DB
	runRepo   repository.RunRepo
	observer  observability.RunObserver

	// Persistent flags
	catalogFile string
	outputDir   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Orrery generates solar system charts from orbital mechanics",
	Long: `Orrery is a command-line tool that turns a planetary data catalog into
static visualization artifacts: top-down orbit maps, planetary comparison
dashboards, orbital statistics charts and an interactive 3D scene.

Positions come from closed-form Keplerian orbit propagation; the simulate
command additionally runs a symplectic N-body integration and reports how
well the system conserves energy and angular momentum.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" || cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = utils.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if outputDir != "" {
			cfg.Output.Dir = outputDir
		}
		if catalogFile == "" {
			catalogFile = cfg.Output.CatalogFile
		}

		observer = observability.NewLogRunObserver(os.Stderr)
		if cfg.Archive.Enabled {
			archiveDB, err = db.OpenDB(cfg.Archive.Database)
			if err != nil {
				return fmt.Errorf("failed to open run archive: %w", err)
			}
			runRepo = repository.NewSQLiteRunRepo(archiveDB)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if archiveDB != nil {
			archiveDB.Close()
		}
	},
}

// initCmd initializes the tool configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Initialize the orrery configuration. This creates the default
configuration file under ~/.orrery and the output directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Initializing %s %s\n", appName, version)

		if err := utils.SaveConfig(utils.DefaultConfig()); err != nil {
			return err
		}

		path, err := utils.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("Edit %s to customize catalog, output and simulation settings\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", appName, version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "Catalog JSON file (default: embedded solar system)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Artifact output directory (default: from config)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadCatalog loads the configured catalog, falling back to the embedded
// default when no file is set.
func loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

// recordRun archives one command execution and emits its telemetry
// event. Archive failures are reported but never fail the command.
func recordRun(command string, bodyCount int, params map[string]any, artifacts []string, start time.Time, runErr error) {
	duration := time.Since(start)
	result := &types.RunResult{
		ID:        uuid.New().String(),
		Command:   command,
		Status:    types.StatusOK,
		Artifacts: artifacts,
		Metadata: types.RunMetadata{
			CatalogFile: catalogFile,
			BodyCount:   bodyCount,
			Parameters:  params,
			Version:     version,
		},
		Timestamp: start.UTC(),
		Duration:  duration,
	}
	if runErr != nil {
		result.Status = types.StatusFailed
		result.Error = runErr.Error()
	}

	ctx := context.Background()
	if runRepo != nil {
		if err := runRepo.Create(ctx, result); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to archive run: %v\n", err)
		} else if cfg.Archive.KeepRuns > 0 {
			if _, err := runRepo.Prune(ctx, cfg.Archive.KeepRuns); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to prune run archive: %v\n", err)
			}
		}
	}

	observer.ObserveRun(ctx, observability.RunEvent{
		RunID:     result.ID,
		Command:   command,
		Duration:  duration,
		Success:   runErr == nil,
		Err:       runErr,
		Artifacts: artifacts,
		Fields:    map[string]any{"body_count": bodyCount},
		StartedAt: start,
	})
}

// writeArtifact creates the output file under the configured output
// directory and hands the writer to render.
func writeArtifact(name string, render func(f *os.File) error) (string, error) {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := cfg.ArtifactPath(name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return "", err
	}
	fmt.Printf("Wrote %s\n", path)
	return path, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
