package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/config"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/storage"
)

var version = "dev"

var (
	cfg = config.DefaultConfig()
	log = logrus.New()

	configFile string
	dataDir    string
	runsDir    string
	delimiter  string
	decimal    string
	logLevel   string

	// phase and batch
	axisName    string
	window      int
	components  int
	correlation bool
	preset      string
	noSave      bool
	parallelism int

	// sweep grid
	sweepFrom      int
	sweepTo        int
	sweepStep      int
	sweepThreshold float64

	// image output directory, empty for terminal only
	outDir string
	// export destination, empty for stdout
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sensorviz",
		Short: "phase tracks of mobile game sensor recordings",
		Long: `sensorviz reads accelerometer, gyroscope and other sensor recordings
captured while playing mobile games, summarizes their sampling, and builds
phase tracks by delay embedding followed by principal component analysis.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "directory with <game><sensor>.csv recordings")
	pf.StringVar(&runsDir, "runs", config.DefaultRunsDir, "directory for saved phase-track runs")
	pf.StringVar(&delimiter, "delimiter", config.DefaultDelimiter, "csv field delimiter")
	pf.StringVar(&decimal, "decimal", config.DefaultDecimal, "csv decimal separator")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	gamesCmd := &cobra.Command{
		Use:   "games",
		Short: "list recorded games and their sensors",
		Args:  cobra.NoArgs,
		RunE:  listGames,
	}

	samplingCmd := &cobra.Command{
		Use:   "sampling [games...]",
		Short: "sampling interval statistics per sensor",
		RunE:  samplingStats,
	}
	samplingCmd.Flags().StringVar(&outDir, "out", "", "also write sampling.png into this directory")

	plotCmd := &cobra.Command{
		Use:   "plot <game> [sensors...]",
		Short: "plot X, Y and Z values against time",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotGame,
	}
	plotCmd.Flags().StringVar(&outDir, "out", "", "also write <game><sensor>.png into this directory")

	phaseCmd := &cobra.Command{
		Use:   "phase <game> <sensor>",
		Short: "build the phase track of one sensor channel",
		Args:  cobra.ExactArgs(2),
		RunE:  phaseTrack,
	}
	addPhaseFlags(phaseCmd)
	phaseCmd.Flags().StringVar(&axisName, "axis", "X", "channel to embed (X, Y or Z)")
	phaseCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	phaseCmd.Flags().StringVar(&outDir, "out", "", "also write phase and correlation images into this directory")

	batchCmd := &cobra.Command{
		Use:   "batch <game>",
		Short: "phase tracks for every sensor and axis of a game",
		Args:  cobra.ExactArgs(1),
		RunE:  batchTracks,
	}
	addPhaseFlags(batchCmd)
	batchCmd.Flags().IntVar(&parallelism, "parallel", config.DefaultParallelism, "analyses run concurrently")
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep <game> <sensor>",
		Short: "explained variance across a range of windows",
		Args:  cobra.ExactArgs(2),
		RunE:  sweepWindows,
	}
	addPhaseFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&axisName, "axis", "X", "channel to embed (X, Y or Z)")
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 2, "smallest window")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 60, "largest window")
	sweepCmd.Flags().IntVar(&sweepStep, "step", 2, "window increment")
	sweepCmd.Flags().Float64Var(&sweepThreshold, "threshold", 0.9, "cumulative explained variance the chosen window must keep")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <game> <sensor>",
		Short: "frequency analysis of one recording",
		Args:  cobra.ExactArgs(2),
		RunE:  analyzeRecording,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore <game> <sensor>",
		Short: "interactive phase-track explorer",
		Args:  cobra.ExactArgs(2),
		RunE:  explore,
	}
	addPhaseFlags(exploreCmd)

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json <run_id>",
		Short: "export run metadata, projection and basis to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv <run_id>",
		Short: "export the projected trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportParquetCmd := &cobra.Command{
		Use:   "export-parquet <run_id>",
		Short: "export the projected trajectory to Parquet",
		Args:  cobra.ExactArgs(1),
		RunE:  exportParquet,
	}
	exportParquetCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default <run_id>.parquet)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list embedding presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(gamesCmd, samplingCmd, plotCmd, phaseCmd, batchCmd, sweepCmd, analyzeCmd, exploreCmd,
		runsCmd, exportJSONCmd, exportCSVCmd, exportParquetCmd, presetsCmd)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, rootCmd); err != nil {
		cancel()
		os.Exit(1)
	}
}

func addPhaseFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&window, "window", "l", config.DefaultWindow, "embedding dimension L")
	cmd.Flags().IntVarP(&components, "components", "n", config.DefaultComponents, "principal components to keep")
	cmd.Flags().BoolVar(&correlation, "correlation", false, "compute the lag correlation matrix")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset embedding parameters")
}

// setup merges the config file, presets and flags. Flags win over the
// preset, which wins over the config file.
func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("runs") || cfg.RunsDir == "" {
		cfg.RunsDir = runsDir
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = delimiter
	}
	if flags.Changed("decimal") {
		cfg.Decimal = decimal
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("window") {
		cfg.Phase.Window = window
	}
	if flags.Changed("components") {
		cfg.Phase.Components = components
	}
	if flags.Changed("correlation") {
		cfg.Phase.Correlation = correlation
	}
	if flags.Changed("parallel") {
		cfg.Parallelism = parallelism
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	return nil
}

func dataStore() (*dataset.Store, error) {
	delim, dec, err := cfg.Separators()
	if err != nil {
		return nil, err
	}
	return dataset.New(cfg.DataDir,
		dataset.WithDelimiter(delim),
		dataset.WithDecimal(dec),
		dataset.WithLogger(log),
	), nil
}

func runStore() (*storage.Store, error) {
	st := storage.New(cfg.RunsDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}
