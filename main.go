package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/andareed/siftly-chart/config"
	"github.com/andareed/siftly-chart/dataset"
	"github.com/andareed/siftly-chart/logging"
)

// Version is set at build time using ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logFile    string
	)
	cmd := &cobra.Command{
		Use:          "siftly-chart [--config file] [--debug file] <file.csv|file.json>",
		Short:        "Interactive price and volume chart for the terminal",
		Version:      Version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, logFile, args[0])
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "siftly-chart.yaml", "YAML config file (optional)")
	cmd.Flags().StringVar(&logFile, "debug", "", "Write Debug Logs to file")
	return cmd
}

func run(configPath, logFile, inputPath string) error {
	cleanup, err := logging.SetupLogging(logFile)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	logging.Infof("siftly-chart: Started")

	m, err := loadModel(configPath, inputPath)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	).Run()
	if err != nil {
		logging.Errorf("Tea program error: %v", err)
		return err
	}
	return nil
}

func loadModel(configPath, inputPath string) (*model, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ds, err := dataset.LoadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", inputPath, err)
	}
	logging.Infof("loaded %d rows from %s", ds.Len(), inputPath)
	return newModel(cfg, inputPath, ds)
}
