package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/analysis"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/config"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/experiment"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/export"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/optim"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/plots"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/viz"
)

func plotOptions() plots.Options {
	return plots.Options{
		Width:  vg.Length(cfg.Plot.Width) * vg.Inch,
		Height: vg.Length(cfg.Plot.Height) * vg.Inch,
	}
}

// resolveSensor accepts a sensor code or its display name.
func resolveSensor(s string) (string, error) {
	if _, ok := sensors.Lookup(s); ok {
		return s, nil
	}
	if sn, ok := sensors.ByName(s); ok {
		return sn.Code, nil
	}
	return "", fmt.Errorf("%w: %q (known: %s)", dataset.ErrUnknownSensor, s, strings.Join(sensors.Codes(), ", "))
}

func listGames(cmd *cobra.Command, args []string) error {
	st, err := dataStore()
	if err != nil {
		return err
	}
	games, err := st.Games()
	if err != nil {
		return err
	}

	if len(games) == 0 {
		fmt.Printf("no recordings found in %s\n", st.Dir())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tSENSORS")
	for _, g := range games {
		codes, err := st.Sensors(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", g, strings.Join(codes, " "))
	}
	return w.Flush()
}

func samplingStats(cmd *cobra.Command, args []string) error {
	st, err := dataStore()
	if err != nil {
		return err
	}

	table, err := st.SamplingIntervals(args)
	if err != nil {
		return err
	}
	summaries, err := analysis.SummarizeTable(table)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SENSOR\tCOUNT\tMEAN\tMEDIAN\tSTD\tMIN\tMAX\tP95")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			s.Sensor, s.Count, s.Mean, s.Median, s.StdDev, s.Min, s.Max, s.P95)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	groups := table.BySensor()
	for _, s := range summaries {
		fmt.Println(viz.HistogramChart(groups[s.Sensor], 50, 80, 8, "% of intervals, "+s.Sensor))
		fmt.Println()
	}

	if outDir != "" {
		path := filepath.Join(outDir, "sampling.png")
		if err := plots.SamplingHistogram(table, path, plotOptions()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func plotGame(cmd *cobra.Command, args []string) error {
	game := args[0]
	st, err := dataStore()
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(args)-1)
	for _, s := range args[1:] {
		code, err := resolveSensor(s)
		if err != nil {
			return err
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		if codes, err = st.Sensors(game); err != nil {
			return err
		}
	}
	if len(codes) == 0 {
		return fmt.Errorf("no recordings for game %s in %s", game, st.Dir())
	}

	for _, code := range codes {
		rec, err := st.Load(game, code)
		if err != nil {
			return err
		}
		fmt.Println(viz.SeriesChart(rec, 80, 10))
		fmt.Println()

		if outDir != "" {
			path := filepath.Join(outDir, game+code+".png")
			if err := plots.GameSeries(rec, path, plotOptions()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n\n", path)
		}
	}
	return nil
}

func phaseConfig(game, sensor string, axis dataset.Axis) (experiment.Config, error) {
	code, err := resolveSensor(sensor)
	if err != nil {
		return experiment.Config{}, err
	}
	c := experiment.Config{
		Game:        game,
		Sensor:      code,
		Axis:        axis,
		Window:      cfg.Phase.Window,
		Components:  cfg.Phase.Components,
		Correlation: cfg.Phase.Correlation,
	}
	return c, c.Validate()
}

func newRunner() (*experiment.Runner, error) {
	st, err := dataStore()
	if err != nil {
		return nil, err
	}
	runner := experiment.New(st)
	if !noSave {
		runs, err := runStore()
		if err != nil {
			return nil, err
		}
		runner.WithRuns(runs)
	}
	return runner, nil
}

func formatRatios(ratios []float64) string {
	parts := make([]string, len(ratios))
	for i, r := range ratios {
		parts[i] = fmt.Sprintf("%.6f", r)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func printVariance(res *embedding.Result) {
	n := len(res.Ratios)
	fmt.Printf("Explained variance ratio for %d principal components: %s\n", n, formatRatios(res.Ratios))
	fmt.Printf("Cumulative explained variance for %d principal components: %.6f\n", n, res.Cumulative())
}

func phaseTrack(cmd *cobra.Command, args []string) error {
	axis, err := dataset.ParseAxis(axisName)
	if err != nil {
		return err
	}
	pc, err := phaseConfig(args[0], args[1], axis)
	if err != nil {
		return err
	}
	runner, err := newRunner()
	if err != nil {
		return err
	}

	out, err := runner.Run(cmd.Context(), pc)
	if err != nil {
		return err
	}
	res := out.Result

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s %s %s (L=%d, %d samples)",
		pc.Game, sensors.DisplayName(pc.Sensor), pc.Axis, pc.Window, out.Samples)))
	printVariance(res)
	fmt.Println()

	if _, cols := res.Projection.Dims(); cols == 2 || cols == 3 {
		c := viz.NewCanvas(70, 20)
		if err := viz.DrawPhaseTrack(c, res.Projection, nil); err != nil {
			return err
		}
		fmt.Println(viz.Panel.Render(viz.ColorMarkers(strings.TrimRight(c.String(), "\n"))))
	} else {
		fmt.Println(viz.ProjectionChart(columns(res.Projection), 80, 12))
	}

	if res.Correlation != nil {
		fmt.Println()
		fmt.Println(viz.Subtle.Render("lag correlation"))
		fmt.Print(viz.Heatmap(res.Correlation, 40))
	}

	if outDir != "" {
		base := filepath.Join(outDir, fmt.Sprintf("%s%s_%s_L%d", pc.Game, pc.Sensor, pc.Axis, pc.Window))
		if err := plots.PhaseTrack(res.Projection, base+"_phase.png", plotOptions()); err != nil {
			return err
		}
		fmt.Printf("wrote %s_phase.png\n", base)
		if res.Correlation != nil {
			if err := plots.CorrelationHeatmap(res.Correlation, base+"_corr.png", plots.Options{}); err != nil {
				return err
			}
			fmt.Printf("wrote %s_corr.png\n", base)
		}
	}

	if out.RunID != "" {
		fmt.Printf("run id: %s\n", out.RunID)
	}
	return nil
}

func columns(m mat.Matrix) [][]float64 {
	rows, cols := m.Dims()
	out := make([][]float64, cols)
	for j := range out {
		out[j] = make([]float64, rows)
		for i := range out[j] {
			out[j][i] = m.At(i, j)
		}
	}
	return out
}

func batchTracks(cmd *cobra.Command, args []string) error {
	game := args[0]
	runner, err := newRunner()
	if err != nil {
		return err
	}

	cfgs := experiment.Matrix(game, cfg.Phase.Window, cfg.Phase.Components)
	for i := range cfgs {
		cfgs[i].Correlation = cfg.Phase.Correlation
	}

	log.WithFields(logrus.Fields{
		"game":     game,
		"analyses": len(cfgs),
		"parallel": cfg.Parallelism,
	}).Info("starting batch")

	outcomes, err := runner.RunBatch(cmd.Context(), cfgs, cfg.Parallelism)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SENSOR\tAXIS\tSAMPLES\tCUMULATIVE\tRATIOS\tRUN")
	failed := 0
	for _, out := range outcomes {
		if out.Err != nil {
			failed++
			log.WithField("analysis", out.Config.String()).Debug(out.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%s\t%s\n",
			out.Config.Sensor, out.Config.Axis, out.Samples,
			out.Result.Cumulative(), formatRatios(out.Result.Ratios), out.RunID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		log.WithField("failed", failed).Warn("some analyses failed, rerun with --log-level debug for details")
	}
	if failed == len(outcomes) {
		return fmt.Errorf("no analyses succeeded for game %s", game)
	}
	return nil
}

func sweepWindows(cmd *cobra.Command, args []string) error {
	axis, err := dataset.ParseAxis(axisName)
	if err != nil {
		return err
	}
	code, err := resolveSensor(args[1])
	if err != nil {
		return err
	}
	st, err := dataStore()
	if err != nil {
		return err
	}
	runner := experiment.New(st)

	search := optim.NewWindowSearch(sweepFrom, sweepTo, sweepStep)
	sweep, best, err := search.Search(cmd.Context(), func(ctx context.Context, w int) (*embedding.Result, error) {
		out, err := runner.Run(ctx, experiment.Config{
			Game:       args[0],
			Sensor:     code,
			Axis:       axis,
			Window:     w,
			Components: cfg.Phase.Components,
		})
		if err != nil {
			return nil, err
		}
		return out.Result, nil
	}, sweepThreshold)
	if err != nil && !errors.Is(err, optim.ErrBelowThreshold) {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WINDOW\tCUMULATIVE\tRATIOS")
	curve := make([]float64, 0, len(sweep))
	for _, p := range sweep {
		if p.Err != nil {
			log.WithField("window", p.Window).Debug(p.Err)
			continue
		}
		curve = append(curve, p.Cumulative)
		fmt.Fprintf(w, "%d\t%.4f\t%s\n", p.Window, p.Cumulative, formatRatios(p.Ratios))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(curve,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("cumulative explained variance, %d components", cfg.Phase.Components)),
	))
	if best == 0 {
		fmt.Printf("no window keeps %.2f of the variance in %d components\n", sweepThreshold, cfg.Phase.Components)
		return nil
	}
	fmt.Printf("largest window keeping %.2f of the variance: %d\n", sweepThreshold, best)
	return nil
}

func analyzeRecording(cmd *cobra.Command, args []string) error {
	code, err := resolveSensor(args[1])
	if err != nil {
		return err
	}
	st, err := dataStore()
	if err != nil {
		return err
	}
	rec, err := st.Load(args[0], code)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s %s\n", rec.Game, sensors.DisplayName(rec.Sensor))
	fmt.Printf("samples: %d\n", rec.Len())

	if sum, err := analysis.Summarize(rec.Intervals()); err == nil {
		fmt.Printf("sampling interval: mean %.4f, median %.4f, std %.4f\n", sum.Mean, sum.Median, sum.StdDev)
	}
	rate := analysis.SampleRate(rec.Time)
	fmt.Printf("sample rate: %.3f per time unit\n\n", rate)

	for _, axis := range dataset.Axes {
		data := rec.Channel(axis)
		ps := analysis.PowerSpectrum(data)
		if len(ps) < 2 {
			continue
		}

		fmt.Println(asciigraph.Plot(ps,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", axis)),
		))

		freq := analysis.DominantFrequency(data, rate)
		fmt.Printf("dominant frequency (%s): %.3f\n", axis, freq)
		if freq > 0 {
			fmt.Printf("period (%s): %.3f\n", axis, 1/freq)
		}
		fmt.Println()
	}
	return nil
}

func explore(cmd *cobra.Command, args []string) error {
	code, err := resolveSensor(args[1])
	if err != nil {
		return err
	}
	st, err := dataStore()
	if err != nil {
		return err
	}
	rec, err := st.Load(args[0], code)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewExplorer(rec, cfg.Phase.Window, cfg.Phase.Components),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := runStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGAME\tSENSOR\tAXIS\tL\tN\tCUMULATIVE\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.4f\t%s\n",
			run.ID,
			run.Game,
			run.Sensor,
			run.Axis,
			run.Window,
			run.Components,
			run.Cumulative,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

// output returns the export destination and a func that closes it.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := runStore()
	if err != nil {
		return err
	}
	runID := args[0]
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	proj, err := st.LoadProjection(runID)
	if err != nil {
		return err
	}
	basis, err := st.LoadBasis(runID)
	if err != nil {
		return err
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := export.JSON(w, *meta, proj, basis); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := runStore()
	if err != nil {
		return err
	}
	proj, err := st.LoadProjection(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := export.CSV(w, proj); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportParquet(cmd *cobra.Command, args []string) error {
	st, err := runStore()
	if err != nil {
		return err
	}
	runID := args[0]
	proj, err := st.LoadProjection(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = runID + ".parquet"
	}
	if err := export.Parquet(path, proj); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tWINDOW\tCOMPONENTS\tCORRELATION\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%t\t%s\n", name, p.Phase.Window, p.Phase.Components, p.Phase.Correlation, p.Description)
	}
	return w.Flush()
}
