package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/radwaste/internal/dashboard"
	"github.com/san-kum/radwaste/internal/metrics"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
)

// Builder produces a render model for a set of selections.
type Builder interface {
	Build(sel dashboard.Selections) (*dashboard.RenderModel, error)
}

type control int

const (
	controlSort control = iota
	controlOnset
	controlCompletion
	controlScale
	numControls
)

var controlNames = [numControls]string{
	controlSort:       "Sort reference by",
	controlOnset:      "Corrosion start",
	controlCompletion: "Corrosion end",
	controlScale:      "Log scale",
}

const (
	pageReference = iota
	pageInside
	pageOutside
	numPages
)

// App is the Bubble Tea model of the terminal dashboard.
type App struct {
	builder Builder
	logger  *zap.Logger

	sel    dashboard.Selections
	cursor control
	page   int
	theme  int

	model *dashboard.RenderModel
	err   error

	width  int
	height int
}

type Option func(*App)

func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.logger = l }
}

func WithTheme(name string) Option {
	return func(a *App) {
		for i, t := range Themes {
			if t.Name == name {
				a.theme = i
			}
		}
	}
}

func WithSize(width, height int) Option {
	return func(a *App) { a.width, a.height = width, height }
}

// NewApp builds the first render for sel right away.
func NewApp(b Builder, sel dashboard.Selections, opts ...Option) *App {
	a := &App{
		builder: b,
		logger:  zap.NewNop(),
		sel:     sel,
		width:   80,
		height:  12,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.rebuild()
	return a
}

// Run starts the dashboard on the alternate screen and blocks until quit.
func Run(b Builder, sel dashboard.Selections, opts ...Option) error {
	p := tea.NewProgram(NewApp(b, sel, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Selections() dashboard.Selections { return a.sel }
func (a *App) Model() *dashboard.RenderModel    { return a.model }
func (a *App) Err() error                       { return a.err }

func (a *App) rebuild() {
	a.model, a.err = a.builder.Build(a.sel)
	if a.err != nil {
		a.model = nil
		a.logger.Error("render failed", zap.Stringer("scenario", a.sel.Key()), zap.Error(a.err))
		return
	}
	a.logger.Debug("rendered",
		zap.Stringer("sort", a.sel.Sort),
		zap.Stringer("scenario", a.sel.Key()),
		zap.Stringer("y_scale", a.sel.YScale))
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		a.cursor = (a.cursor + numControls - 1) % numControls
	case "down", "j":
		a.cursor = (a.cursor + 1) % numControls
	case "left", "h":
		a.step(-1)
	case "right", "l", "enter", " ":
		a.step(1)
	case "tab":
		a.page = (a.page + 1) % numPages
	case "shift+tab":
		a.page = (a.page + numPages - 1) % numPages
	case "t":
		a.theme = (a.theme + 1) % len(Themes)
	}
	return a, nil
}

// step moves the selected control by delta options and rebuilds.
func (a *App) step(delta int) {
	switch a.cursor {
	case controlSort:
		a.sel.Sort = cycle(nuclide.SortModes(), a.sel.Sort, delta)
	case controlOnset:
		a.sel.Onset = cycle(scenario.Onsets(), a.sel.Onset, delta)
	case controlCompletion:
		a.sel.Completion = cycle(scenario.Completions(), a.sel.Completion, delta)
	case controlScale:
		a.sel.YScale = cycle([]render.Scale{render.Linear, render.Log}, a.sel.YScale, delta)
	}
	a.rebuild()
}

func cycle[T comparable](opts []T, cur T, delta int) T {
	i := 0
	for j, o := range opts {
		if o == cur {
			i = j
		}
	}
	n := len(opts)
	return opts[((i+delta)%n+n)%n]
}

func scaleLabel(s render.Scale) string {
	if s == render.Log {
		return "Yes, please"
	}
	return "No, Thanks"
}

func (a *App) controlValue(c control) string {
	switch c {
	case controlSort:
		return a.sel.Sort.Label()
	case controlOnset:
		return a.sel.Onset.Label()
	case controlCompletion:
		return a.sel.Completion.Label()
	default:
		return scaleLabel(a.sel.YScale)
	}
}

func (a *App) View() string {
	theme := Themes[a.theme]
	var b strings.Builder

	b.WriteString(GradientText(" RADIONUCLIDE LEACHING ", theme.Primary, theme.Secondary))
	b.WriteString(Subtle.Render("  " + theme.Name))
	b.WriteString("\n\n")

	b.WriteString(GlassPanel.BorderForeground(theme.Muted).Render(a.controlsView(theme)))
	b.WriteString("\n")

	if a.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		b.WriteString(errStyle.Render("render failed: " + a.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(a.hints())
		return b.String()
	}

	b.WriteString(a.chartView(theme))
	b.WriteString("\n")
	b.WriteString(Separator(min(a.width, 80)))
	b.WriteString("\n")
	b.WriteString(Subtle.Render(nuclide.ChainString()))
	b.WriteString("\n")
	b.WriteString(halfLives(min(a.width, 80)))
	b.WriteString("\n\n")
	b.WriteString(a.hints())
	return b.String()
}

func (a *App) controlsView(theme Theme) string {
	active := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	var rows []string
	for c := control(0); c < numControls; c++ {
		marker, label := "  ", MetricLabel.Render(fmt.Sprintf("%-18s", controlNames[c]))
		if c == a.cursor {
			marker, label = active.Render("▸ "), active.Render(fmt.Sprintf("%-18s", controlNames[c]))
		}
		rows = append(rows, marker+label+value.Render("‹ "+a.controlValue(c)+" ›"))
	}
	return strings.Join(rows, "\n")
}

func (a *App) chartView(theme Theme) string {
	m := a.model
	if m == nil {
		return ""
	}

	var chart *render.Chart
	var stats []metrics.Summary
	switch a.page {
	case pageReference:
		chart = m.ReferenceChart()
	case pageInside:
		chart, stats = m.InsideChart(), m.InsideStats
	default:
		chart, stats = m.OutsideChart(), m.OutsideStats
	}

	w := max(a.width-16, 20)
	h := max(a.height/4, 4)
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	line := lipgloss.NewStyle().Foreground(theme.seriesColor(a.page))

	var b strings.Builder
	for _, p := range render.NewBraille(w, h).Plots(chart) {
		b.WriteString(title.Render(p.Title))
		b.WriteString(Subtle.Render("  [" + strings.Join(p.Series, ", ") + "]"))
		b.WriteString("\n")
		for i, l := range p.Lines {
			label := strings.Repeat(" ", 10)
			switch i {
			case 0:
				label = fmt.Sprintf("%10s", p.Tick(p.YMax))
			case len(p.Lines) - 1:
				label = fmt.Sprintf("%10s", p.Tick(p.YMin))
			}
			b.WriteString(MetricLabel.Render(label) + " │" + line.Render(l) + "\n")
		}
		b.WriteString(KeyHint.Render(fmt.Sprintf("%12s%s (%s)", "", p.YLabel, p.Scale)))
		b.WriteString("\n")
	}

	if a.page == pageReference {
		b.WriteString(MetricLabel.Render("nuclides "))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%d", m.Reference.Len())))
		b.WriteString(MetricLabel.Render("  order "))
		b.WriteString(MetricValue.Render(m.Selections.Sort.Label()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(MetricLabel.Render("scenario "))
	b.WriteString(MetricValue.Render(m.ScenarioFile))
	b.WriteString("\n")
	for i, s := range stats {
		name := lipgloss.NewStyle().Foreground(theme.seriesColor(i)).Render(fmt.Sprintf("%-8s", s.Series))
		b.WriteString(name)
		b.WriteString(MetricLabel.Render(" peak "))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%-10.3g", s.Peak)))
		b.WriteString(MetricLabel.Render(" at "))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%-10.3g", s.PeakTime)))
		b.WriteString(MetricLabel.Render(" final "))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%-10.3g", s.Final)))
		b.WriteString("\n")
	}
	if len(stats) > 0 {
		total := metrics.Total(m.Inside)
		if a.page == pageOutside {
			total = metrics.Total(m.Outside)
		}
		b.WriteString(MetricLabel.Render("total    "))
		b.WriteString(SparklineChart(total, min(w, 60)))
		b.WriteString("\n")
	}
	return b.String()
}

// halfLives lays the half-life table out as "nuclide value" cells wrapped
// to width.
func halfLives(width int) string {
	var lines []string
	line := ""
	for _, h := range nuclide.HalfLives {
		cell := MetricLabel.Render(h.Nuclide) + " " + MetricValue.Render(h.Value)
		if line != "" && lipgloss.Width(line)+lipgloss.Width(cell)+3 > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += Subtle.Render(" · ")
		}
		line += cell
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a *App) hints() string {
	return KeyHint.Render("[j/k] control  [h/l] change  [tab] chart  [t] theme  [q] quit")
}
