// Package tui is the interactive property explorer: adjust temperature,
// pressure and composition from the keyboard and watch every phase
// property, including sensitivities, update live.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmsim/porefluid/internal/config"
	"github.com/pmsim/porefluid/internal/fluidsystem"
	"github.com/pmsim/porefluid/internal/scalar"
)

var (
	header  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	active  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	value   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keycap  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	liquid  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	gas     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	derivSt = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type param struct {
	name string
	val  float64
	step float64
	min  float64
	max  float64
}

type model struct {
	params      []param
	cursorIdx   int
	editing     bool
	editBuf     string
	relations   fluidsystem.RelationSet
	plain       map[fluidsystem.RelationSet]*fluidsystem.System[scalar.Float]
	dual        map[fluidsystem.RelationSet]*fluidsystem.System[scalar.Dual]
	width       int
	initialized bool
}

func newModel(cfg *config.Config) (model, error) {
	rel, err := cfg.RelationSet()
	if err != nil {
		return model{}, err
	}

	m := model{
		relations: rel,
		plain:     make(map[fluidsystem.RelationSet]*fluidsystem.System[scalar.Float]),
		dual:      make(map[fluidsystem.RelationSet]*fluidsystem.System[scalar.Dual]),
		width:     80,
		params: []param{
			{name: "temperature [K]", val: cfg.State.Temperature, step: 5, min: 273.15, max: 620},
			{name: "pressure [Pa]", val: cfg.State.Pressure, step: 1e5, min: 1e3, max: 2e7},
			{name: "liquid x_N2", val: cfg.State.LiquidN2, step: 0.001, min: 0, max: 0.1},
			{name: "gas x_H2O", val: cfg.State.GasH2O, step: 0.01, min: 0, max: 1},
		},
	}

	// Both relation sets are built up front so toggling never re-tabulates.
	for _, r := range []fluidsystem.RelationSet{fluidsystem.SimpleRelations, fluidsystem.ComplexRelations} {
		c := *cfg
		c.Relations = r.String()
		sys, err := config.NewSystem[scalar.Float](&c)
		if err != nil {
			return model{}, err
		}
		dsys, err := config.NewSystem[scalar.Dual](&c)
		if err != nil {
			return model{}, err
		}
		m.plain[r] = sys
		m.dual[r] = dsys
	}
	m.initialized = true
	return m, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				p := &m.params[m.cursorIdx]
				p.val = clamp(val, p.min, p.max)
			}
			m.editing, m.editBuf = false, ""
		case "escape":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' || c == '+' {
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
		if m.cursorIdx > 0 {
			m.cursorIdx--
		}
	case "down", "j":
		if m.cursorIdx < len(m.params)-1 {
			m.cursorIdx++
		}
	case "left", "h":
		p := &m.params[m.cursorIdx]
		p.val = clamp(p.val-p.step, p.min, p.max)
	case "right", "l":
		p := &m.params[m.cursorIdx]
		p.val = clamp(p.val+p.step, p.min, p.max)
	case "enter", " ":
		m.editing, m.editBuf = true, ""
	case "r":
		if m.relations == fluidsystem.ComplexRelations {
			m.relations = fluidsystem.SimpleRelations
		} else {
			m.relations = fluidsystem.ComplexRelations
		}
	}
	return m, nil
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

func (m model) state(sys *fluidsystem.System[scalar.Float]) *fluidsystem.CompositionalState[scalar.Float] {
	st := &fluidsystem.CompositionalState[scalar.Float]{}
	st.SetAllTemperatures(scalar.Float(m.params[0].val))
	for phase := 0; phase < fluidsystem.NumPhases; phase++ {
		st.SetPressure(phase, scalar.Float(m.params[1].val))
	}
	xN2 := m.params[2].val
	xH2O := m.params[3].val
	st.SetMoleFraction(fluidsystem.LiquidPhaseIdx, fluidsystem.H2OIdx, scalar.Float(1-xN2))
	st.SetMoleFraction(fluidsystem.LiquidPhaseIdx, fluidsystem.N2Idx, scalar.Float(xN2))
	st.SetMoleFraction(fluidsystem.GasPhaseIdx, fluidsystem.H2OIdx, scalar.Float(xH2O))
	st.SetMoleFraction(fluidsystem.GasPhaseIdx, fluidsystem.N2Idx, scalar.Float(1-xH2O))
	st.UpdateAverages(sys.MolarMasses())
	return st
}

// dualState seeds temperature as variable 0 and pressure as variable 1 so
// density sensitivities fall out of one evaluation.
func (m model) dualState(sys *fluidsystem.System[scalar.Dual]) *fluidsystem.CompositionalState[scalar.Dual] {
	st := &fluidsystem.CompositionalState[scalar.Dual]{}
	st.SetAllTemperatures(scalar.Seed(m.params[0].val, 0, 2))
	for phase := 0; phase < fluidsystem.NumPhases; phase++ {
		st.SetPressure(phase, scalar.Seed(m.params[1].val, 1, 2))
	}
	xN2 := m.params[2].val
	xH2O := m.params[3].val
	st.SetMoleFraction(fluidsystem.LiquidPhaseIdx, fluidsystem.H2OIdx, scalar.Const[scalar.Dual](1-xN2))
	st.SetMoleFraction(fluidsystem.LiquidPhaseIdx, fluidsystem.N2Idx, scalar.Const[scalar.Dual](xN2))
	st.SetMoleFraction(fluidsystem.GasPhaseIdx, fluidsystem.H2OIdx, scalar.Const[scalar.Dual](xH2O))
	st.SetMoleFraction(fluidsystem.GasPhaseIdx, fluidsystem.N2Idx, scalar.Const[scalar.Dual](1-xH2O))
	st.UpdateAverages(sys.MolarMasses())
	return st
}

func (m model) View() string {
	if !m.initialized {
		return "initializing..."
	}

	var b strings.Builder
	b.WriteString("\n  " + header.Render("POREFLUID") + "  " +
		sub.Render("water / nitrogen property explorer") + "\n")
	b.WriteString("  " + sub.Render("relations: ") + value.Render(m.relations.String()) + "\n\n")

	for i, p := range m.params {
		valStr := fmt.Sprintf("%12.5g", p.val)
		if m.editing && i == m.cursorIdx {
			valStr = fmt.Sprintf("%12s", m.editBuf+"_")
		}
		if i == m.cursorIdx {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				cursor.Render("▸"),
				active.Render(fmt.Sprintf("%-16s", p.name)),
				value.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				idle.Render(fmt.Sprintf("%-16s", p.name)),
				idle.Render(valStr)))
		}
	}

	b.WriteString("\n" + m.viewProperties() + "\n")
	b.WriteString("  " + keycap.Render("j/k") + idle.Render(" select  ") +
		keycap.Render("h/l") + idle.Render(" adjust  ") +
		keycap.Render("enter") + idle.Render(" type value  ") +
		keycap.Render("r") + idle.Render(" relations  ") +
		keycap.Render("q") + idle.Render(" quit") + "\n")
	return b.String()
}

func (m model) viewProperties() string {
	sys := m.plain[m.relations]
	st := m.state(sys)
	cache := &fluidsystem.ParameterCache{}

	dsys := m.dual[m.relations]
	dst := m.dualState(dsys)
	dcache := &fluidsystem.ParameterCache{}

	rows := []struct {
		label string
		unit  string
		f     func(phase int) float64
	}{
		{"density", "kg/m3", func(p int) float64 { return float64(sys.Density(st, cache, p)) }},
		{"viscosity", "Pa s", func(p int) float64 { return float64(sys.Viscosity(st, cache, p)) }},
		{"enthalpy", "J/kg", func(p int) float64 { return float64(sys.Enthalpy(st, cache, p)) }},
		{"heat capacity", "J/kg K", func(p int) float64 { return float64(sys.HeatCapacity(st, cache, p)) }},
		{"th. conductivity", "W/m K", func(p int) float64 { return float64(sys.ThermalConductivity(st, cache, p)) }},
		{"phi H2O", "-", func(p int) float64 {
			return float64(sys.FugacityCoefficient(st, cache, p, fluidsystem.H2OIdx))
		}},
		{"phi N2", "-", func(p int) float64 {
			return float64(sys.FugacityCoefficient(st, cache, p, fluidsystem.N2Idx))
		}},
		{"diffusion", "m2/s", func(p int) float64 {
			return float64(sys.DiffusionCoefficient(st, cache, p, fluidsystem.N2Idx))
		}},
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %14s %14s\n",
		idle.Render(fmt.Sprintf("%-18s", "property")),
		liquid.Render("liquid"), gas.Render("gas")))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %14.6g %14.6g  %s\n",
			active.Render(fmt.Sprintf("%-18s", r.label)),
			r.f(fluidsystem.LiquidPhaseIdx),
			r.f(fluidsystem.GasPhaseIdx),
			sub.Render(r.unit)))
	}

	b.WriteString("\n")
	for phase := 0; phase < fluidsystem.NumPhases; phase++ {
		rho := dsys.Density(dst, dcache, phase)
		b.WriteString(fmt.Sprintf("  %s %s %11.4g %s %11.4g\n",
			idle.Render(fmt.Sprintf("%-10s", dsys.PhaseName(phase))),
			derivSt.Render("drho/dT"), rho.Deriv(0),
			derivSt.Render("drho/dp"), rho.Deriv(1)))
	}
	return b.String()
}

// Run starts the explorer in the alternate screen.
func Run(cfg *config.Config) error {
	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
