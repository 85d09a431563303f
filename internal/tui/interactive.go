package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/christmascoding/regelungsmaster/internal/config"
	"github.com/christmascoding/regelungsmaster/internal/controllers"
	"github.com/christmascoding/regelungsmaster/internal/pipeline"
	"github.com/christmascoding/regelungsmaster/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type chart int

const (
	chartStep chart = iota
	chartBode
	chartNyquist
	chartLocus
)

var chartNames = map[chart]string{
	chartStep:    "step",
	chartBode:    "bode",
	chartNyquist: "nyquist",
	chartLocus:   "root locus",
}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldNumber
)

type field struct {
	name string
	kind fieldKind
	get  func(*pipeline.Input) string
	set  func(*pipeline.Input, string)
	// nudge adjusts a numeric field by delta; nil for text fields.
	nudge func(*pipeline.Input, float64)
}

type model struct {
	cfg   *config.Config
	input pipeline.Input

	fields []field
	cursor int

	editing bool
	editBuf string

	chart  chart
	result *pipeline.Result

	width  int
	height int
}

func NewApp(cfg *config.Config) *model {
	m := &model{
		cfg:    cfg,
		input:  pipeline.InputFromConfig(cfg.Inputs),
		width:  100,
		height: 32,
	}
	m.rebuildFields()
	m.recompute()
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *model) rebuildFields() {
	b := m.cfg.Bounds
	m.fields = m.fields[:0]

	if m.input.ZPK {
		m.fields = append(m.fields,
			field{name: "zeros", kind: fieldText,
				get: func(in *pipeline.Input) string { return in.Zeros },
				set: func(in *pipeline.Input, s string) { in.Zeros = s }},
			field{name: "poles", kind: fieldText,
				get: func(in *pipeline.Input) string { return in.Poles },
				set: func(in *pipeline.Input, s string) { in.Poles = s }},
		)
	} else {
		m.fields = append(m.fields,
			field{name: "numerator", kind: fieldText,
				get: func(in *pipeline.Input) string { return in.Num },
				set: func(in *pipeline.Input, s string) { in.Num = s }},
			field{name: "denominator", kind: fieldText,
				get: func(in *pipeline.Input) string { return in.Den },
				set: func(in *pipeline.Input, s string) { in.Den = s }},
		)
	}

	m.fields = append(m.fields, field{name: "Kp", kind: fieldNumber,
		get:   func(in *pipeline.Input) string { return fmt.Sprintf("%.3f", in.Kp) },
		set:   func(in *pipeline.Input, s string) { in.Kp = clamp(parseNum(s, in.Kp), 0, b.KpMax) },
		nudge: func(in *pipeline.Input, d float64) { in.Kp = clamp(in.Kp+d, 0, b.KpMax) }})

	switch m.input.Controller {
	case controllers.PI:
		m.fields = append(m.fields, field{name: "Ki", kind: fieldNumber,
			get:   func(in *pipeline.Input) string { return fmt.Sprintf("%.3f", in.Ki) },
			set:   func(in *pipeline.Input, s string) { in.Ki = clamp(parseNum(s, in.Ki), 0, b.KiMax) },
			nudge: func(in *pipeline.Input, d float64) { in.Ki = clamp(in.Ki+d, 0, b.KiMax) }})
	case controllers.PD:
		m.fields = append(m.fields, field{name: "Kd", kind: fieldNumber,
			get:   func(in *pipeline.Input) string { return fmt.Sprintf("%.3f", in.Kd) },
			set:   func(in *pipeline.Input, s string) { in.Kd = clamp(parseNum(s, in.Kd), 0, b.KdMax) },
			nudge: func(in *pipeline.Input, d float64) { in.Kd = clamp(in.Kd+d, 0, b.KdMax) }})
	}

	if m.input.LeadLag {
		m.fields = append(m.fields,
			field{name: "z", kind: fieldNumber,
				get:   func(in *pipeline.Input) string { return fmt.Sprintf("%.3f", in.Z) },
				set:   func(in *pipeline.Input, s string) { in.Z = clamp(parseNum(s, in.Z), b.ZMin, b.ZMax) },
				nudge: func(in *pipeline.Input, d float64) { in.Z = clamp(in.Z+d, b.ZMin, b.ZMax) }},
			field{name: "p", kind: fieldNumber,
				get:   func(in *pipeline.Input) string { return fmt.Sprintf("%.3f", in.P) },
				set:   func(in *pipeline.Input, s string) { in.P = clamp(parseNum(s, in.P), b.PMin, b.PMax) },
				nudge: func(in *pipeline.Input, d float64) { in.P = clamp(in.P+d, b.PMin, b.PMax) }},
		)
	}

	if m.cursor >= len(m.fields) {
		m.cursor = len(m.fields) - 1
	}
}

func parseNum(s string, fallback float64) float64 {
	var val float64
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &val); err != nil {
		return fallback
	}
	return val
}

func (m *model) recompute() {
	m.result = pipeline.Run(m.input, m.cfg)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			f := m.fields[m.cursor]
			f.set(&m.input, m.editBuf)
			m.editing = false
			m.editBuf = ""
			m.recompute()
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || strings.ContainsRune(".,-+ ji", rune(c)) {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = m.fields[m.cursor].get(&m.input)
	case "left", "h":
		if f := m.fields[m.cursor]; f.nudge != nil {
			f.nudge(&m.input, -0.1)
			m.recompute()
		}
	case "right", "l":
		if f := m.fields[m.cursor]; f.nudge != nil {
			f.nudge(&m.input, 0.1)
			m.recompute()
		}
	case "c":
		m.input.Controller = nextKind(m.input.Controller)
		m.rebuildFields()
		m.recompute()
	case "t":
		m.input.LeadLag = !m.input.LeadLag
		m.rebuildFields()
		m.recompute()
	case "m":
		m.input.ZPK = !m.input.ZPK
		m.rebuildFields()
		m.recompute()
	case "1":
		m.chart = chartStep
	case "2":
		m.chart = chartBode
	case "3":
		m.chart = chartNyquist
	case "4":
		m.chart = chartLocus
	}
	return m, nil
}

func nextKind(k controllers.Kind) controllers.Kind {
	kinds := controllers.Kinds()
	for i, cand := range kinds {
		if cand == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("        " + cyan.Render("r e g e l u n g s m a s t e r") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	mode := "coefficients"
	if m.input.ZPK {
		mode = "zeros/poles"
	}
	lead := "off"
	if m.input.LeadLag {
		lead = "on"
	}
	b.WriteString(fmt.Sprintf("    %s %s   %s %s   %s %s\n\n",
		dim.Render("plant:"), white.Render(mode),
		dim.Render("controller:"), magenta.Render(string(m.input.Controller)),
		dim.Render("lead/lag:"), white.Render(lead)))

	for i, f := range m.fields {
		val := f.get(&m.input)
		if m.editing && i == m.cursor {
			val = m.editBuf + "▋"
		}
		if i == m.cursor {
			b.WriteString("    " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", f.name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("      " + dim.Render(fmt.Sprintf("%-12s", f.name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n" + m.verdictLine() + "\n")

	for _, n := range m.result.Notices {
		b.WriteString("    " + yellow.Render("! "+n) + "\n")
	}

	b.WriteString("\n" + m.chartTabs() + "\n\n")
	b.WriteString(m.chartView())

	b.WriteString("\n" + dim.Render("    ↑↓ select  ←→ adjust  enter edit  c controller  t lead/lag  m mode  1-4 chart  q quit") + "\n")

	return b.String()
}

func (m model) verdictLine() string {
	s := m.result.Stability
	verdict := red.Render("UNSTABLE")
	if s.Stable {
		verdict = green.Render("STABLE")
	}
	osc := dim.Render("non-oscillatory")
	if s.Oscillatory {
		osc = yellow.Render("oscillatory")
	}
	line := fmt.Sprintf("    %s %s  %s", dim.Render("closed loop:"), verdict, osc)
	if m.result.OscFreqOK {
		line += dim.Render(fmt.Sprintf("  (≈%.2f rad/s)", m.result.OscFreq))
	}
	return line
}

func (m model) chartTabs() string {
	var parts []string
	for _, c := range []chart{chartStep, chartBode, chartNyquist, chartLocus} {
		label := fmt.Sprintf("[%d] %s", int(c)+1, chartNames[c])
		if c == m.chart {
			parts = append(parts, cyan.Render(label))
		} else {
			parts = append(parts, dimmer.Render(label))
		}
	}
	return "    " + strings.Join(parts, "   ")
}

func (m model) chartView() string {
	cw := m.width - 10
	if cw < 60 {
		cw = 60
	}
	ch := m.height - 22
	if ch < 10 {
		ch = 10
	}

	switch m.chart {
	case chartBode:
		return viz.BodePlot(m.result.Freq, m.result.Bode, cw, ch)
	case chartNyquist:
		return viz.NyquistPlot(m.result.Nyquist, cw, ch)
	case chartLocus:
		markers := viz.LocusMarkers{
			LeadZero: m.result.LeadZero, LeadZeroOK: m.result.LeadZeroOK,
			LeadPole: m.result.LeadPole, LeadPoleOK: m.result.LeadPoleOK,
		}
		return viz.LocusPlot(m.result.Locus, markers, cw, ch)
	default:
		return viz.StepPlot(m.result.Step, cw, ch)
	}
}

// Run starts the interactive tuner in the alternate screen.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
