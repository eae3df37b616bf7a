package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/radwaste/internal/config"
	"github.com/san-kum/radwaste/internal/dashboard"
	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
	"github.com/san-kum/radwaste/internal/server"
	"github.com/san-kum/radwaste/internal/storage"
	"github.com/san-kum/radwaste/internal/viz"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	logFile    string
	logger     = zap.NewNop()

	// selection flags
	sortMode   string
	onset      string
	completion string
	logScale   string
	preset     string

	addr   string
	theme  string
	width  int
	height int
	color  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "radwaste",
		Short: "radionuclide leaching dashboard",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			// the TUI owns the terminal, so it only logs to a file under --verbose
			if cmd.Name() == "radwaste" || cmd.Name() == "tui" {
				if !verbose {
					logger = zap.NewNop()
					return nil
				}
				cfg.OutputPaths = []string{logFile}
				cfg.ErrorOutputPaths = []string{logFile}
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "radwaste.log", "log file for the TUI under --verbose")

	selectionFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&sortMode, "sort", "", "reference order: key, moles or cte")
		cmd.Flags().StringVar(&onset, "onset", "", "corrosion start: 1000, 2000, 3000 or 5000 years")
		cmd.Flags().StringVar(&completion, "completion", "", "corrosion end: 1M, 2M, 5M or 10M years")
		cmd.Flags().StringVar(&logScale, "log", "", "log scale for concentrations: yes or no")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset selections")
	}
	selectionFlags(rootCmd)
	rootCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal dashboard",
		RunE:  runTUI,
	}
	selectionFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", "", fmt.Sprintf("color theme %v", viz.ThemeNames()))

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the dashboard over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	plotCmd := &cobra.Command{
		Use:       "plot [reference|inside|outside]",
		Short:     "plot charts in the terminal",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"reference", "inside", "outside"},
		RunE:      plotCharts,
	}
	selectionFlags(plotCmd)
	plotCmd.Flags().IntVar(&width, "width", 0, "plot width (overrides config)")
	plotCmd.Flags().IntVar(&height, "height", 0, "plot height (overrides config)")
	plotCmd.Flags().BoolVar(&color, "color", false, "colored series")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenario files",
		RunE:  listScenarios,
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check that every data file loads",
		RunE:  validateData,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [file]",
		Short: "export the render model to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	selectionFlags(exportJSONCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [dir]",
		Short: "export the three charts as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	selectionFlags(exportSVGCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [dir]",
		Short: "export the split scenario tables to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	selectionFlags(exportCSVCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSORT\tONSET\tCOMPLETION\tLOG")
			for _, name := range config.ListPresets() {
				sel, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					name, sel.Sort.Label(), sel.Onset.Label(), sel.Completion.Label(), sel.YScale)
			}
			return w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(tuiCmd, serveCmd, plotCmd, scenariosCmd, validateCmd, exportJSONCmd, exportSVGCmd, exportCSVCmd, presetsCmd, initConfigCmd)
	return rootCmd
}

type app struct {
	cfg   *config.Config
	store *storage.Store
	files scenario.Files
	dash  *dashboard.Dashboard
}

func setup() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	files, err := cfg.Files()
	if err != nil {
		return nil, err
	}
	st, err := storage.Open(cfg.DataDir, storage.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Debug("data directory opened", zap.String("dir", cfg.DataDir))

	return &app{
		cfg:   cfg,
		store: st,
		files: files,
		dash:  dashboard.New(st, cfg.Sources, files),
	}, nil
}

// selections resolves preset, then config preset, with individual flags
// applied on top.
func (a *app) selections(cmd *cobra.Command) (dashboard.Selections, error) {
	sel := a.cfg.Selections()
	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return sel, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		sel = p
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("sort") {
		if sel.Sort, err = nuclide.ParseSortMode(sortMode); err != nil {
			return sel, err
		}
	}
	if flags.Changed("onset") {
		if sel.Onset, err = scenario.ParseOnset(onset); err != nil {
			return sel, err
		}
	}
	if flags.Changed("completion") {
		if sel.Completion, err = scenario.ParseCompletion(completion); err != nil {
			return sel, err
		}
	}
	if flags.Changed("log") {
		if sel.YScale, err = render.ParseScale(logScale); err != nil {
			return sel, err
		}
	}
	return sel, sel.Validate()
}

func (a *app) build(cmd *cobra.Command) (*dashboard.RenderModel, error) {
	sel, err := a.selections(cmd)
	if err != nil {
		return nil, err
	}
	model, err := a.dash.Build(sel)
	if err != nil {
		return nil, err
	}
	logger.Info("rendered",
		zap.Stringer("scenario", model.Scenario),
		zap.String("file", model.ScenarioFile),
		zap.Int("nuclides", model.Reference.Len()))
	return model, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	sel, err := a.selections(cmd)
	if err != nil {
		return err
	}
	return viz.Run(a.dash, sel,
		viz.WithLogger(logger),
		viz.WithTheme(theme),
		viz.WithSize(a.cfg.Chart.TermWidth, a.cfg.Chart.TermHeight))
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	if addr != "" {
		a.cfg.Server.Addr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.dash, a.files,
		server.WithLogger(logger),
		server.WithConfig(a.cfg.Server, a.cfg.Chart))
	return srv.ListenAndServe(ctx)
}

// initConfig writes the defaults, overlaid with --config, the environment
// and --data, so the file can be edited and passed back with --config.
func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", args[0]))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func plotCharts(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	model, err := a.build(cmd)
	if err != nil {
		return err
	}

	w, h := a.cfg.Chart.TermWidth, a.cfg.Chart.TermHeight
	if width > 0 {
		w = width
	}
	if height > 0 {
		h = height
	}
	r := render.NewASCII(w, h)
	r.Color = color

	charts := model.Charts()
	if len(args) == 1 {
		switch args[0] {
		case "reference":
			charts = charts[:1]
		case "inside":
			charts = charts[1:2]
		case "outside":
			charts = charts[2:]
		}
	}

	out := cmd.OutOrStdout()
	for _, c := range charts {
		if err := r.Render(out, c); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "scenario: %s\n%s\n", model.ScenarioFile, nuclide.ChainString())
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tONSET\tCOMPLETION\tFILE\tSTATUS")
	for _, k := range scenario.All() {
		name, err := a.files.Name(k)
		if err != nil {
			return err
		}
		status := "ok"
		if err := a.store.Stat(name); err != nil {
			status = "missing"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", k, k.Onset.Label(), k.Completion.Label(), name, status)
	}
	return w.Flush()
}

func validateData(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	ref, err := a.dash.Reference(nuclide.ByKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "reference: %d nuclides\n", ref.Len())

	if err := a.dash.Resolver().CheckAll(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "scenarios: %d files ok\n", len(scenario.All()))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	model, err := a.build(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 || args[0] == "-" {
		return storage.WriteJSON(cmd.OutOrStdout(), model)
	}
	if err := storage.ExportJSON(args[0], model); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
	return nil
}

func outDir(args []string) (string, error) {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	return dir, os.MkdirAll(dir, 0755)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	model, err := a.build(cmd)
	if err != nil {
		return err
	}
	dir, err := outDir(args)
	if err != nil {
		return err
	}

	r := render.NewSVG(a.cfg.Chart.Width, a.cfg.Chart.Height)
	names := []string{"reference.svg", "inside.svg", "outside.svg"}
	for i, c := range model.Charts() {
		var buf bytes.Buffer
		if err := r.Render(&buf, c); err != nil {
			return err
		}
		path := filepath.Join(dir, names[i])
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	model, err := a.build(cmd)
	if err != nil {
		return err
	}
	dir, err := outDir(args)
	if err != nil {
		return err
	}

	stem := model.Scenario.String()
	for _, part := range []struct {
		suffix string
		table  *dataset.Table
	}{
		{"inside", model.Inside},
		{"outside", model.Outside},
	} {
		path := filepath.Join(dir, stem+"_"+part.suffix+".csv")
		if err := storage.ExportCSV(path, part.table); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
	}
	return nil
}
