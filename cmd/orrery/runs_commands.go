package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run archive",
	Long:  `List and manage archived command runs and the artifacts they produced`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one archived run in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old runs from the archive",
	RunE:  runRunsPrune,
}

var (
	runsCommand string
	runsLimit   int
	runsJSON    bool
	runsKeep    int
)

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsPruneCmd)

	runsListCmd.Flags().StringVar(&runsCommand, "command", "", "Filter by command name")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to show (0 = all)")
	runsListCmd.Flags().BoolVar(&runsJSON, "json", false, "Print runs as JSON")
	runsPruneCmd.Flags().IntVar(&runsKeep, "keep", 50, "Number of runs to keep")
}

func requireArchive() error {
	if runRepo == nil {
		return fmt.Errorf("run archive is disabled, enable it in the config (archive.enabled)")
	}
	return nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	if err := requireArchive(); err != nil {
		return err
	}

	runs, err := runRepo.List(context.Background(), runsCommand, runsLimit)
	if err != nil {
		return err
	}

	if runsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No archived runs")
		return nil
	}

	fmt.Printf("%-36s %-20s %-10s %-9s %s\n", "ID", "Command", "Status", "Duration", "When")
	for _, r := range runs {
		fmt.Printf("%-36s %-20s %-10s %-9s %s\n",
			r.ID, r.Command, r.Status,
			r.Duration.Round(time.Millisecond).String(),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if err := requireArchive(); err != nil {
		return err
	}

	run, err := runRepo.GetByID(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run:      %s\n", run.ID)
	fmt.Printf("Command:  %s\n", run.Command)
	fmt.Printf("Status:   %s\n", run.Status)
	fmt.Printf("When:     %s\n", run.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %s\n", run.Duration)
	fmt.Printf("Version:  %s\n", run.Metadata.Version)
	if run.Metadata.CatalogFile != "" {
		fmt.Printf("Catalog:  %s\n", run.Metadata.CatalogFile)
	}
	fmt.Printf("Bodies:   %d\n", run.Metadata.BodyCount)
	if len(run.Artifacts) > 0 {
		fmt.Printf("Artifacts:\n  %s\n", strings.Join(run.Artifacts, "\n  "))
	}
	if len(run.Metadata.Parameters) > 0 {
		params, err := json.MarshalIndent(run.Metadata.Parameters, "  ", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("Parameters:\n  %s\n", params)
	}
	if run.Error != "" {
		fmt.Printf("Error:    %s\n", run.Error)
	}
	return nil
}

func runRunsPrune(cmd *cobra.Command, args []string) error {
	if err := requireArchive(); err != nil {
		return err
	}

	removed, err := runRepo.Prune(context.Background(), runsKeep)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d runs, kept the newest %d\n", removed, runsKeep)
	return nil
}
