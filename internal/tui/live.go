// Package tui is the live terminal view: it drives the integrator a batch
// of steps per frame and charts an observable while the run evolves.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"ljmd/internal/md"
	"ljmd/internal/obs"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the simulation on every tick while running. The charted
// series is the conserved energy per particle; a fatal overlap freezes the
// view with the error shown.
type Model struct {
	state        *md.State
	integ        *md.VelocityVerlet
	est          *obs.Estimator
	stepsPerTick int

	vars    []obs.Observable
	history []float64
	time    float64
	steps   int
	running bool
	err     error
}

func NewModel(state *md.State, integ *md.VelocityVerlet, est *obs.Estimator, stepsPerTick int, initial []obs.Observable) Model {
	return Model{
		state:        state,
		integ:        integ,
		est:          est,
		stepsPerTick: stepsPerTick,
		vars:         initial,
		history:      make([]float64, 0, historyCapacity),
		running:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		total, err := m.integ.Step(m.state)
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.steps++
		m.time += m.integ.Dt()
		if i == m.stepsPerTick-1 {
			m.vars = m.est.Calculate(m.state, total)
		}
	}
	if len(m.vars) > 0 {
		// conserved quantity E = kin + pot, charted per particle
		e := m.vars[len(m.vars)-1].Value / float64(m.state.N())
		m.history = append(m.history, e)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("LJMD LIVE — NVE") + "\n")

	status := "RUNNING"
	if m.err != nil {
		status = errStyle.Render("FATAL: " + m.err.Error())
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("E/N conserved"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.4f", m.time)) + "\n")
	s.WriteString(labelStyle.Render("steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("particles") + valueStyle.Render(fmt.Sprintf("%d", m.state.N())) + "\n\n")
	for _, v := range m.vars {
		if v.MSD {
			continue
		}
		s.WriteString(labelStyle.Render(v.Name) + valueStyle.Render(fmt.Sprintf("%12.6f", v.Value)) + "\n")
	}

	s.WriteString(helpStyle.Render("SPACE:pause  Q:quit"))
	return s.String()
}
