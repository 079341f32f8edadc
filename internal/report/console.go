// Package report renders run progress to the console: banner, parameter
// echo, per-block rows of the displayed observables, and run averages.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"ljmd/internal/obs"
	"ljmd/internal/run"
	"ljmd/internal/stats"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
)

// Console implements run.Reporter. MSD-flagged observables are accumulated
// but excluded from the displayed table.
type Console struct {
	w     io.Writer
	names []string
	msd   []bool
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Start(info run.Info) {
	c.names = info.Names
	c.msd = info.MSD

	fmt.Fprintln(c.w, titleStyle.Render("ljmd — molecular dynamics, NVE ensemble"))
	fmt.Fprintln(c.w, labelStyle.Render("cut-and-shifted Lennard-Jones potential, reduced units"))
	fmt.Fprintln(c.w)
	c.param("particles", "%d", info.N)
	c.param("box length", "%.6f", info.Box)
	c.param("density", "%.6f", info.Density)
	c.param("blocks", "%d", info.Params.NBlock)
	c.param("steps per block", "%d", info.Params.NStep)
	c.param("potential cutoff", "%.4f", info.Params.RCut)
	c.param("time step", "%.6f", info.Params.Dt)
	fmt.Fprintln(c.w)
}

func (c *Console) param(name, format string, v any) {
	fmt.Fprintf(c.w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", name)), fmt.Sprintf(format, v))
}

func (c *Console) Instant(label string, vars []obs.Observable) {
	fmt.Fprintln(c.w, headerStyle.Render(label))
	for _, v := range vars {
		if v.MSD {
			continue
		}
		fmt.Fprintf(c.w, "  %-16s %14.6f\n", v.Name, v.Value)
	}
	fmt.Fprintln(c.w)
}

func (c *Console) header() {
	fmt.Fprintf(c.w, "%s", headerStyle.Render(fmt.Sprintf("%6s", "block")))
	for i, name := range c.names {
		if c.msd[i] {
			continue
		}
		fmt.Fprintf(c.w, "%s", headerStyle.Render(fmt.Sprintf("%16s", name)))
	}
	fmt.Fprintln(c.w)
}

func (c *Console) Block(index int, b stats.Block) {
	if index == 1 {
		c.header()
	}
	fmt.Fprintf(c.w, "%6d", index)
	c.row(b)
}

func (c *Console) Run(avg stats.Block) {
	fmt.Fprintln(c.w, strings.Repeat("-", 6+16*c.displayed()))
	fmt.Fprintf(c.w, "%6s", "run")
	c.row(avg)
	fmt.Fprintln(c.w)
}

func (c *Console) row(b stats.Block) {
	for i, mean := range b.Means {
		if c.msd[i] {
			continue
		}
		fmt.Fprintf(c.w, "%16.6f", mean)
	}
	fmt.Fprintln(c.w)
}

func (c *Console) displayed() int {
	n := 0
	for _, m := range c.msd {
		if !m {
			n++
		}
	}
	return n
}

// BlockChart plots the per-block means of one observable.
func BlockChart(w io.Writer, name string, series []float64) {
	if len(series) < 2 {
		return
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(name+" block averages"),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)
}
