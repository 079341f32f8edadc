package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ljmd/internal/cnf"
	"ljmd/internal/config"
	"ljmd/internal/lattice"
	"ljmd/internal/lj"
	"ljmd/internal/md"
	"ljmd/internal/obs"
	"ljmd/internal/report"
	"ljmd/internal/run"
	"ljmd/internal/stats"
	"ljmd/internal/storage"
	"ljmd/internal/tui"
)

var (
	dataDir    string
	configFile string
	inFile     string
	nblock     int
	nstep      int
	rCut       float64
	dt         float64
	// init command
	cells       int
	density     float64
	temperature float64
	seed        int64
	outFile     string
	// live command
	stepsPerTick int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ljmd",
		Short: "NVE molecular dynamics of the Lennard-Jones fluid",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ljmd", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an NVE simulation",
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "generate an initial fcc configuration",
		RunE:  initConfiguration,
	}
	initCmd.Flags().IntVar(&cells, "cells", 4, "fcc unit cells per edge (n = 4*cells^3)")
	initCmd.Flags().Float64Var(&density, "density", 0.75, "number density")
	initCmd.Flags().Float64Var(&temperature, "temp", 1.0, "initial temperature")
	initCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	initCmd.Flags().StringVar(&outFile, "out", "cnf.inp", "output configuration file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot block averages of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerTick, "steps-per-frame", 20, "integration steps per frame")

	rootCmd.AddCommand(runCmd, initCmd, listCmd, plotCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "parameter file (yaml)")
	cmd.Flags().StringVar(&inFile, "in", "cnf.inp", "input configuration file")
	cmd.Flags().IntVar(&nblock, "blocks", config.DefaultNBlock, "number of blocks")
	cmd.Flags().IntVar(&nstep, "steps", config.DefaultNStep, "steps per block")
	cmd.Flags().Float64Var(&rCut, "rcut", config.DefaultRCut, "potential cutoff")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
}

// loadParams resolves parameters: defaults, then config file, then explicit
// flags. Validation happens before any state is loaded.
func loadParams(cmd *cobra.Command) (*config.Params, error) {
	p := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		p = loaded
	}
	if cmd.Flags().Changed("blocks") {
		p.NBlock = nblock
	}
	if cmd.Flags().Changed("steps") {
		p.NStep = nstep
	}
	if cmd.Flags().Changed("rcut") {
		p.RCut = rCut
	}
	if cmd.Flags().Changed("dt") {
		p.Dt = dt
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

func setup(p *config.Params) (*md.State, *md.VelocityVerlet, *obs.Estimator, error) {
	state, err := run.Load(inFile)
	if err != nil {
		return nil, nil, nil, err
	}
	force := lj.LennardJones{}
	integ := md.NewVelocityVerlet(force, p.Dt, p.RCut)
	est := obs.NewEstimator(force, p.RCut)
	return state, integ, est, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	p, err := loadParams(cmd)
	if err != nil {
		return err
	}
	state, integ, est, err := setup(p)
	if err != nil {
		return err
	}

	acc := stats.NewBlockAccumulator(obs.Schema())
	rep := report.NewConsole(os.Stdout)
	ctrl := run.NewController(p, state, integ, est, acc, rep, run.NewCnfCheckpointer("."))

	start := time.Now()
	result, err := ctrl.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	report.BlockChart(os.Stdout, result.Names[0], blockSeries(result, 0))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(state.N(), float64(state.Box), p, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func blockSeries(result *run.Result, idx int) []float64 {
	series := make([]float64, len(result.Blocks))
	for i, b := range result.Blocks {
		series[i] = b.Means[idx]
	}
	return series
}

func initConfiguration(cmd *cobra.Command, args []string) error {
	if cells <= 0 || density <= 0 || temperature <= 0 {
		return fmt.Errorf("cells, density, and temp must be positive")
	}
	box, r, v := lattice.FCC(cells, density, temperature, seed)
	if err := cnf.WriteAtoms(outFile, box, r, v); err != nil {
		return err
	}
	fmt.Printf("wrote %d atoms, box %.6f, to %s\n", len(r), box, outFile)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tN\tDENSITY\tBLOCKS\tSTEPS\tDT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%d\t%d\t%.4f\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.N,
			r.Density,
			r.NBlock,
			r.NStep,
			r.Dt,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	names, blocks, err := st.LoadBlocks(args[0])
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("no block data to plot")
	}

	for idx, name := range names {
		series := make([]float64, len(blocks))
		for i := range blocks {
			series[i] = blocks[i][idx]
		}
		report.BlockChart(os.Stdout, name, series)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	p, err := loadParams(cmd)
	if err != nil {
		return err
	}
	state, integ, est, err := setup(p)
	if err != nil {
		return err
	}

	total, err := integ.Init(state)
	if err != nil {
		return &run.OverlapError{Phase: run.PhaseInitial}
	}

	m := tui.NewModel(state, integ, est, stepsPerTick, est.Calculate(state, total))
	_, err = tea.NewProgram(m).Run()
	return err
}
