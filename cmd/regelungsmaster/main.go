package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/christmascoding/regelungsmaster/internal/config"
	"github.com/christmascoding/regelungsmaster/internal/controllers"
	"github.com/christmascoding/regelungsmaster/internal/export"
	"github.com/christmascoding/regelungsmaster/internal/pipeline"
	"github.com/christmascoding/regelungsmaster/internal/storage"
	"github.com/christmascoding/regelungsmaster/internal/tui"
	"github.com/christmascoding/regelungsmaster/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	num   string
	den   string
	zeros string
	poles string
	zpk   bool

	controller string
	kp         float64
	ki         float64
	kd         float64

	leadlag bool
	zParam  float64
	pParam  float64

	chartWidth  int
	chartHeight int
	saveRun     bool
	exportDir   string
	exportSVG   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "regelungsmaster",
		Short: "closed-loop transfer function analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".regelungsmaster", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset system")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "analyze the closed loop",
		RunE:  analyze,
	}
	analyzeCmd.Flags().BoolVar(&saveRun, "save", false, "save results to the data directory")

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "plot the closed-loop step response",
		RunE:  stepChart,
	}

	bodeCmd := &cobra.Command{
		Use:   "bode",
		Short: "plot the open-loop Bode diagram",
		RunE:  bodeChart,
	}

	nyquistCmd := &cobra.Command{
		Use:   "nyquist",
		Short: "plot the open-loop Nyquist curve",
		RunE:  nyquistChart,
	}

	locusCmd := &cobra.Command{
		Use:   "locus",
		Short: "plot the root locus of the open loop",
		RunE:  locusChart,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export charts as image files",
		RunE:  exportCharts,
	}
	exportCmd.Flags().StringVar(&exportDir, "dir", "charts", "output directory")
	exportCmd.Flags().BoolVar(&exportSVG, "svg", false, "also export SVG renderings of the terminal charts")

	for _, c := range []*cobra.Command{analyzeCmd, stepCmd, bodeCmd, nyquistCmd, locusCmd, exportCmd} {
		addInputFlags(c)
	}
	for _, c := range []*cobra.Command{stepCmd, bodeCmd, nyquistCmd, locusCmd} {
		c.Flags().IntVar(&chartWidth, "width", 100, "chart width")
		c.Flags().IntVar(&chartHeight, "height", 20, "chart height")
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "copy a saved run's data series to CSV files",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available system presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(analyzeCmd, stepCmd, bodeCmd, nyquistCmd, locusCmd, exportCmd, listCmd, showCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&num, "num", config.DefaultNum, "numerator coefficients, highest power first")
	c.Flags().StringVar(&den, "den", config.DefaultDen, "denominator coefficients, highest power first")
	c.Flags().StringVar(&zeros, "zeros", config.DefaultZeros, "plant zeros (zpk mode)")
	c.Flags().StringVar(&poles, "poles", config.DefaultPoles, "plant poles (zpk mode)")
	c.Flags().BoolVar(&zpk, "zpk", false, "interpret the plant as zeros/poles instead of coefficients")
	c.Flags().StringVar(&controller, "controller", "P", "controller type (P, PI, PD)")
	c.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	c.Flags().Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	c.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative gain")
	c.Flags().BoolVar(&leadlag, "leadlag", false, "enable the lead/lag element")
	c.Flags().Float64Var(&zParam, "z", config.DefaultZ, "lead/lag zero time constant")
	c.Flags().Float64Var(&pParam, "p", config.DefaultP, "lead/lag pole time constant")
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// buildInput assembles the analysis input from config file, preset and
// flags, in that order of precedence (flags win when explicitly set).
func buildInput(cmd *cobra.Command) (pipeline.Input, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return pipeline.Input{}, nil, err
	}

	in := pipeline.InputFromConfig(cfg.Inputs)
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return pipeline.Input{}, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		in = pipeline.InputFromConfig(*p)
	}

	if cmd.Flags().Changed("num") {
		in.Num = num
	}
	if cmd.Flags().Changed("den") {
		in.Den = den
	}
	if cmd.Flags().Changed("zeros") {
		in.Zeros = zeros
	}
	if cmd.Flags().Changed("poles") {
		in.Poles = poles
	}
	if cmd.Flags().Changed("zpk") {
		in.ZPK = zpk
	}
	if cmd.Flags().Changed("controller") {
		in.Controller = controllers.Kind(controller)
	}
	if cmd.Flags().Changed("kp") {
		in.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		in.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		in.Kd = kd
	}
	if cmd.Flags().Changed("leadlag") {
		in.LeadLag = leadlag
	}
	if cmd.Flags().Changed("z") {
		in.Z = zParam
	}
	if cmd.Flags().Changed("p") {
		in.P = pParam
	}
	return in, cfg, nil
}

func run(cmd *cobra.Command) (pipeline.Input, *pipeline.Result, error) {
	in, cfg, err := buildInput(cmd)
	if err != nil {
		return pipeline.Input{}, nil, err
	}
	return in, pipeline.Run(in, cfg), nil
}

func analyze(cmd *cobra.Command, args []string) error {
	in, result, err := run(cmd)
	if err != nil {
		return err
	}

	verdict := "UNSTABLE"
	if result.Stability.Stable {
		verdict = "STABLE"
	}
	osc := "non-oscillatory"
	if result.Stability.Oscillatory {
		osc = "oscillatory"
	}
	fmt.Printf("closed loop: %s, %s\n", verdict, osc)
	if result.OscFreqOK {
		fmt.Printf("dominant oscillation: %.3f rad/s\n", result.OscFreq)
	}
	fmt.Println()

	fmt.Print(viz.PoleTable(result.ClosedPoles))

	if result.Locus != nil && result.Locus.HasCentroid {
		c := result.Locus.Centroid
		fmt.Printf("\nasymptote centroid: %.4f%+.4fi\n", real(c), imag(c))
	}

	if result.Bode != nil && len(result.Bode.Ticks) > 0 {
		fmt.Println("\nphase crossings:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PHASE\tFREQUENCY\tTICK SPAN")
		for _, t := range result.Bode.Ticks {
			fmt.Fprintf(w, "%+.0f°\t%.4g rad/s\t[%.4g, %.4g]\n", t.Level, t.Freq, t.FreqLo, t.FreqHi)
		}
		w.Flush()
	}

	for _, n := range result.Notices {
		fmt.Printf("note: %s\n", n)
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(in, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved: %s\n", id)
	}
	return nil
}

func stepChart(cmd *cobra.Command, args []string) error {
	_, result, err := run(cmd)
	if err != nil {
		return err
	}
	fmt.Println(viz.StepPlot(result.Step, chartWidth, chartHeight))
	printNotices(result)
	return nil
}

func bodeChart(cmd *cobra.Command, args []string) error {
	_, result, err := run(cmd)
	if err != nil {
		return err
	}
	fmt.Println(viz.BodePlot(result.Freq, result.Bode, chartWidth, chartHeight))
	printNotices(result)
	return nil
}

func nyquistChart(cmd *cobra.Command, args []string) error {
	_, result, err := run(cmd)
	if err != nil {
		return err
	}
	fmt.Println(viz.NyquistPlot(result.Nyquist, chartWidth, chartHeight))
	printNotices(result)
	return nil
}

func locusChart(cmd *cobra.Command, args []string) error {
	_, result, err := run(cmd)
	if err != nil {
		return err
	}
	markers := viz.LocusMarkers{
		LeadZero: result.LeadZero, LeadZeroOK: result.LeadZeroOK,
		LeadPole: result.LeadPole, LeadPoleOK: result.LeadPoleOK,
	}
	fmt.Println(viz.LocusPlot(result.Locus, markers, chartWidth, chartHeight))
	printNotices(result)
	return nil
}

func exportCharts(cmd *cobra.Command, args []string) error {
	_, result, err := run(cmd)
	if err != nil {
		return err
	}
	if err := export.WritePNGs(exportDir, result); err != nil {
		return err
	}
	if exportSVG && result.Nyquist != nil {
		c := viz.NewCanvas(100, 30)
		c.Fit(append(append([]float64{}, result.Nyquist.Re...), result.Nyquist.MirrorRe...),
			append(append([]float64{}, result.Nyquist.Im...), result.Nyquist.MirrorIm...))
		for i := 1; i < len(result.Nyquist.Re); i++ {
			c.Line(result.Nyquist.Re[i-1], result.Nyquist.Im[i-1], result.Nyquist.Re[i], result.Nyquist.Im[i])
		}
		for i := 1; i < len(result.Nyquist.MirrorRe); i++ {
			c.Line(result.Nyquist.MirrorRe[i-1], result.Nyquist.MirrorIm[i-1], result.Nyquist.MirrorRe[i], result.Nyquist.MirrorIm[i])
		}
		c.Mark(-1, 0, '+')
		if err := export.WriteCanvasSVG(exportDir+"/nyquist.svg", c); err != nil {
			return err
		}
	}
	fmt.Printf("charts written to %s\n", exportDir)
	printNotices(result)
	return nil
}

func printNotices(result *pipeline.Result) {
	for _, n := range result.Notices {
		fmt.Printf("note: %s\n", n)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCONTROLLER\tSTABLE\tOSCILLATORY")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Controller, r.Stable, r.Oscillatory)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	for _, series := range []string{"step", "frequency"} {
		header, cols, err := st.LoadSeries(runID, series)
		if err != nil {
			continue
		}
		path := fmt.Sprintf("%s_%s.csv", runID, series)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			f.Close()
			return err
		}
		n := 0
		if len(cols) > 0 {
			n = len(cols[0])
		}
		for i := 0; i < n; i++ {
			rec := make([]string, len(cols))
			for j := range cols {
				rec[j] = strconv.FormatFloat(cols[j][i], 'g', -1, 64)
			}
			if err := w.Write(rec); err != nil {
				f.Close()
				return err
			}
		}
		w.Flush()
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}
