package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"regulab/internal/analysis"
	"regulab/internal/config"
	"regulab/internal/export"
	"regulab/internal/lti"
	"regulab/internal/pipeline"
	"regulab/internal/store"
	"regulab/internal/tui"
	"regulab/internal/viz"
)

var (
	dataDir    string
	numFlag    string
	denFlag    string
	preset     string
	configFile string
	kp         float64
	ki         float64
	kd         float64
	samples    int
	asJSON     bool
	saveRun    bool
	wMin       float64
	wMax       float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "regulab",
		Short: "transfer function analysis and pid tuning lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".regulab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "analyze a transfer function",
		RunE:  analyzeSystem,
	}
	addPlantFlags(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "emit the full report as JSON")
	analyzeCmd.Flags().BoolVar(&saveRun, "save", false, "archive the run")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "close the loop with pid gains and analyze",
		RunE:  tuneSystem,
	}
	addPlantFlags(tuneCmd)
	addGainFlags(tuneCmd)
	tuneCmd.Flags().BoolVar(&asJSON, "json", false, "emit the full report as JSON")
	tuneCmd.Flags().BoolVar(&saveRun, "save", false, "archive the run")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive gain tuner",
		RunE:  runTuner,
	}
	addPlantFlags(tuiCmd)
	addGainFlags(tuiCmd)

	polesCmd := &cobra.Command{
		Use:   "poles",
		Short: "print poles with multiplicities",
		RunE:  printPoles,
	}
	addPlantFlags(polesCmd)

	diagramCmd := &cobra.Command{
		Use:   "diagram",
		Short: "print the feedback loop as graphviz dot",
		RunE:  printDiagram,
	}
	addPlantFlags(diagramCmd)
	addGainFlags(diagramCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export archived run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export archived run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunCSV,
	}

	bodeCmd := &cobra.Command{
		Use:   "bode",
		Short: "plot the frequency response",
		RunE:  plotBode,
	}
	addPlantFlags(bodeCmd)
	bodeCmd.Flags().Float64Var(&wMin, "wmin", 0.01, "lowest frequency (rad/s)")
	bodeCmd.Flags().Float64Var(&wMax, "wmax", 100, "highest frequency (rad/s)")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render the step response as SVG",
		RunE:  renderSVG,
	}
	addPlantFlags(svgCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list plant presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-20s num=%v den=%v\n", name, p.Num, p.Den)
			}
			return nil
		},
	}

	rootCmd.AddCommand(analyzeCmd, tuneCmd, tuiCmd, polesCmd, diagramCmd, bodeCmd, listCmd, exportCmd, exportCSVCmd, svgCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPlantFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&numFlag, "num", "1", "numerator coefficients, highest degree first (comma separated)")
	cmd.Flags().StringVar(&denFlag, "den", "1,1", "denominator coefficients, highest degree first (comma separated)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a plant preset")
	cmd.Flags().IntVar(&samples, "samples", 0, "sample count override")
}

func addGainFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
}

// parseCoeffs parses "1,2.5,-3" into coefficients, highest degree first.
func parseCoeffs(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	coeffs := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad coefficient %q: %w", p, err)
		}
		coeffs = append(coeffs, v)
	}
	return coeffs, nil
}

func loadSetup(cmd *cobra.Command) (*config.Config, []float64, []float64, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if f := cmd.Flags(); f.Lookup("kp") != nil {
		if !f.Changed("kp") {
			kp = cfg.Gains.Kp
		}
		if !f.Changed("ki") {
			ki = cfg.Gains.Ki
		}
		if !f.Changed("kd") {
			kd = cfg.Gains.Kd
		}
	}
	if samples > 0 {
		cfg.Simulation.Samples = samples
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, p.Num, p.Den, nil
	}

	num, err := parseCoeffs(numFlag)
	if err != nil {
		return nil, nil, nil, err
	}
	den, err := parseCoeffs(denFlag)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, num, den, nil
}

func analyzeSystem(cmd *cobra.Command, args []string) error {
	cfg, num, den, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	rep, err := pipeline.Analyze(num, den, cfg.StepConfig())
	if err != nil {
		return err
	}
	return emitReport(rep)
}

func tuneSystem(cmd *cobra.Command, args []string) error {
	cfg, num, den, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	plant, err := lti.New(num, den)
	if err != nil {
		return err
	}
	cl, err := pipeline.CloseLoop(plant, kp, ki, kd, cfg.StepConfig())
	if err != nil {
		return err
	}
	if cl.Warning != "" {
		fmt.Println(viz.WarnStyle.Render("warning: " + cl.Warning))
	}
	fmt.Printf("controller: %s\n", cl.Controller)
	fmt.Printf("closed loop: %s\n\n", cl.System)
	return emitReport(cl.Report)
}

func emitReport(rep *pipeline.Report) error {
	if asJSON {
		return store.ExportJSONStdout(rep)
	}
	printReport(rep)
	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(rep)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func printReport(rep *pipeline.Report) {
	fmt.Printf("G(s) = %s\n", rep.Expression)
	fmt.Printf("dG/ds = %s\n", rep.Derivative)
	if rep.IntegralErr != nil {
		fmt.Printf("integral: %v\n", rep.IntegralErr)
	} else {
		fmt.Printf("integral: %s\n", rep.Integral)
	}

	fmt.Println("\npoles:")
	if rep.PolesErr != nil {
		fmt.Printf("  %v\n", rep.PolesErr)
	} else if len(rep.PoleGroups) == 0 {
		fmt.Println("  none (pure gain)")
	} else {
		for _, line := range strings.Split(strings.TrimSpace(viz.RenderPoles(rep.PoleGroups)), "\n") {
			fmt.Printf("  %s\n", line)
		}
	}

	if rep.ResponseErr != nil {
		fmt.Printf("\nsimulation: %v\n", rep.ResponseErr)
		return
	}

	fmt.Printf("\nstability: %s\n\n", viz.RenderStability(rep.Response.Stable))
	if plot := viz.PlotResponse(rep.Response, "unit step response"); plot != "" {
		fmt.Println(plot)
		fmt.Println()
	}
	fmt.Print(viz.RenderMetrics(rep.Response.Metrics))

	if rep.RecommendationErr != nil {
		fmt.Printf("\nrecommendation: %v\n", rep.RecommendationErr)
	} else {
		fmt.Printf("\nrecommendation: %s\n  %s\n", rep.Recommendation.Type, rep.Recommendation.Rationale)
	}
}

func runTuner(cmd *cobra.Command, args []string) error {
	cfg, num, den, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	plant, err := lti.New(num, den)
	if err != nil {
		return err
	}
	p := tea.NewProgram(tui.NewTuner(plant, kp, ki, kd, cfg.StepConfig()))
	_, err = p.Run()
	return err
}

func printPoles(cmd *cobra.Command, args []string) error {
	cfg, num, den, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	rep, err := pipeline.Analyze(num, den, cfg.StepConfig())
	if err != nil {
		return err
	}
	if rep.PolesErr != nil {
		return rep.PolesErr
	}
	if len(rep.PoleGroups) == 0 {
		fmt.Println("none (pure gain)")
		return nil
	}
	fmt.Print(viz.RenderPoles(rep.PoleGroups))
	return nil
}

func printDiagram(cmd *cobra.Command, args []string) error {
	_, num, den, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	plant, err := lti.New(num, den)
	if err != nil {
		return err
	}
	if kp == 0 && ki == 0 && kd == 0 {
		fmt.Print(viz.BlockDiagramDOT("", plant.String()))
		return nil
	}
	ctrl, warning, err := lti.PID(kp, ki, kd)
	if err != nil {
		return err
	}
	if warning != "" {
		fmt.Fprintln(os.Stderr, "warning: "+warning)
	}
	fmt.Print(viz.BlockDiagramDOT(ctrl.String(), plant.String()))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	ids, err := st.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSYSTEM\tSTABLE\tRECOMMENDATION")
	for _, id := range ids {
		meta, err := st.Load(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			meta.ID,
			meta.CreatedAt.Format("2006-01-02 15:04:05"),
			meta.Expression,
			meta.Stable,
			meta.Recommendation,
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportRunCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	rows, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return store.ExportCSV(os.Stdout, rows)
}

func plotBode(cmd *cobra.Command, args []string) error {
	_, num, den, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	sys, err := lti.New(num, den)
	if err != nil {
		return err
	}
	pts, err := analysis.Bode(sys, wMin, wMax, 200)
	if err != nil {
		return err
	}

	mags := make([]float64, len(pts))
	phases := make([]float64, len(pts))
	for i, p := range pts {
		mags[i] = p.MagnitudeDB
		phases[i] = p.PhaseDeg
	}
	fmt.Printf("frequency response, %g to %g rad/s (log scale)\n\n", wMin, wMax)
	fmt.Println(asciigraph.Plot(mags,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("magnitude (dB)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(phases,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("phase (deg)"),
	))
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, num, den, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	rep, err := pipeline.Analyze(num, den, cfg.StepConfig())
	if err != nil {
		return err
	}
	if rep.ResponseErr != nil {
		return rep.ResponseErr
	}
	fmt.Print(export.ResponseToSVG(rep.Response))
	return nil
}
