package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pmsim/porefluid/internal/config"
	"github.com/pmsim/porefluid/internal/export"
	"github.com/pmsim/porefluid/internal/fluidsystem"
	"github.com/pmsim/porefluid/internal/scalar"
	"github.com/pmsim/porefluid/internal/tui"
)

var (
	configFile string
	preset     string
	relations  string
	waterModel string
	temp       float64
	pressure   float64
	liquidN2   float64
	gasH2O     float64
	// Sweep parameters
	sweepVar   string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	// Output
	outPath   string
	outFormat string
	// Plot
	plotPhase string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "porefluid",
		Short: "water/nitrogen two-phase property evaluator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&relations, "relations", "", "relation set: simple or complex")
	rootCmd.PersistentFlags().StringVar(&waterModel, "water", "", "water model: simple or tabulated")
	rootCmd.PersistentFlags().Float64Var(&temp, "temp", config.DefaultTemperature, "temperature [K]")
	rootCmd.PersistentFlags().Float64Var(&pressure, "pressure", config.DefaultPressure, "pressure [Pa]")
	rootCmd.PersistentFlags().Float64Var(&liquidN2, "liquid-n2", 0.0, "dissolved N2 mole fraction in liquid")
	rootCmd.PersistentFlags().Float64Var(&gasH2O, "gas-h2o", 0.05, "water vapor mole fraction in gas")

	propsCmd := &cobra.Command{
		Use:   "props",
		Short: "evaluate all phase properties at one state",
		RunE:  runProps,
	}

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "sweep a state variable and export a property table",
		RunE:  runTable,
	}
	tableCmd.Flags().StringVar(&sweepVar, "sweep", "temperature", "variable to sweep: temperature or pressure")
	tableCmd.Flags().Float64Var(&sweepFrom, "from", 280, "sweep start")
	tableCmd.Flags().Float64Var(&sweepTo, "to", 600, "sweep end")
	tableCmd.Flags().IntVar(&sweepSteps, "steps", 50, "number of points")
	tableCmd.Flags().StringVar(&outPath, "out", "", "output file (stdout when empty)")
	tableCmd.Flags().StringVar(&outFormat, "format", "csv", "output format: csv, json or svg")

	plotCmd := &cobra.Command{
		Use:   "plot [property]",
		Short: "plot a property against temperature",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().Float64Var(&sweepFrom, "from", 280, "sweep start [K]")
	plotCmd.Flags().Float64Var(&sweepTo, "to", 600, "sweep end [K]")
	plotCmd.Flags().IntVar(&sweepSteps, "steps", 80, "number of points")
	plotCmd.Flags().StringVar(&plotPhase, "phase", "both", "phase: liquid, gas or both")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive property explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRELATIONS\tT [K]\tP [Pa]")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%.3g\n",
					name, p.Relations, p.State.Temperature, p.State.Pressure)
			}
			return w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(propsCmd, tableCmd, plotCmd, exploreCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers preset, config file and CLI flags, flags winning.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("relations") {
		cfg.Relations = relations
	}
	if cmd.Flags().Changed("water") {
		cfg.WaterModel = waterModel
	}
	if cmd.Flags().Changed("temp") {
		cfg.State.Temperature = temp
	}
	if cmd.Flags().Changed("pressure") {
		cfg.State.Pressure = pressure
	}
	if cmd.Flags().Changed("liquid-n2") {
		cfg.State.LiquidN2 = liquidN2
		cfg.State.LiquidH2O = 1 - liquidN2
	}
	if cmd.Flags().Changed("gas-h2o") {
		cfg.State.GasH2O = gasH2O
		cfg.State.GasN2 = 1 - gasH2O
	}
	return cfg, nil
}

func runProps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := config.NewSystem[scalar.Float](cfg)
	if err != nil {
		return err
	}
	st := config.NewState(cfg, sys)
	cache := &fluidsystem.ParameterCache{}

	fmt.Printf("T = %.2f K, p = %.4g Pa, relations = %s, water = %s\n\n",
		cfg.State.Temperature, cfg.State.Pressure, cfg.Relations, cfg.WaterModel)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROPERTY\tLIQUID\tGAS\tUNIT")
	for _, row := range propertyRows(sys, st, cache) {
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%s\n", row.name, row.liquid, row.gas, row.unit)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// Sensitivities from one dual-number evaluation per phase.
	dsys, err := config.NewSystem[scalar.Dual](cfg)
	if err != nil {
		return err
	}
	dst := &fluidsystem.CompositionalState[scalar.Dual]{}
	dst.SetAllTemperatures(scalar.Seed(cfg.State.Temperature, 0, 2))
	for phase := 0; phase < fluidsystem.NumPhases; phase++ {
		dst.SetPressure(phase, scalar.Seed(cfg.State.Pressure, 1, 2))
	}
	dst.SetMoleFraction(fluidsystem.LiquidPhaseIdx, fluidsystem.H2OIdx, scalar.Const[scalar.Dual](cfg.State.LiquidH2O))
	dst.SetMoleFraction(fluidsystem.LiquidPhaseIdx, fluidsystem.N2Idx, scalar.Const[scalar.Dual](cfg.State.LiquidN2))
	dst.SetMoleFraction(fluidsystem.GasPhaseIdx, fluidsystem.H2OIdx, scalar.Const[scalar.Dual](cfg.State.GasH2O))
	dst.SetMoleFraction(fluidsystem.GasPhaseIdx, fluidsystem.N2Idx, scalar.Const[scalar.Dual](cfg.State.GasN2))
	dst.UpdateAverages(dsys.MolarMasses())
	dcache := &fluidsystem.ParameterCache{}

	fmt.Println("\ndensity sensitivities:")
	for phase := 0; phase < fluidsystem.NumPhases; phase++ {
		rho := dsys.Density(dst, dcache, phase)
		fmt.Printf("  %-8s drho/dT = %12.5g kg/m3 K, drho/dp = %12.5g kg/m3 Pa\n",
			dsys.PhaseName(phase), rho.Deriv(0), rho.Deriv(1))
	}
	return nil
}

type propRow struct {
	name   string
	liquid float64
	gas    float64
	unit   string
}

func propertyRows(sys *fluidsystem.System[scalar.Float], st fluidsystem.FluidState[scalar.Float], cache *fluidsystem.ParameterCache) []propRow {
	eval := func(f func(int) scalar.Float) (float64, float64) {
		return float64(f(fluidsystem.LiquidPhaseIdx)), float64(f(fluidsystem.GasPhaseIdx))
	}

	rows := make([]propRow, 0, 8)
	add := func(name, unit string, f func(int) scalar.Float) {
		l, g := eval(f)
		rows = append(rows, propRow{name, l, g, unit})
	}

	add("density", "kg/m3", func(p int) scalar.Float { return sys.Density(st, cache, p) })
	add("viscosity", "Pa s", func(p int) scalar.Float { return sys.Viscosity(st, cache, p) })
	add("enthalpy", "J/kg", func(p int) scalar.Float { return sys.Enthalpy(st, cache, p) })
	add("heat capacity", "J/kg K", func(p int) scalar.Float { return sys.HeatCapacity(st, cache, p) })
	add("th. conductivity", "W/m K", func(p int) scalar.Float { return sys.ThermalConductivity(st, cache, p) })
	add("phi H2O", "-", func(p int) scalar.Float {
		return sys.FugacityCoefficient(st, cache, p, fluidsystem.H2OIdx)
	})
	add("phi N2", "-", func(p int) scalar.Float {
		return sys.FugacityCoefficient(st, cache, p, fluidsystem.N2Idx)
	})
	add("diffusion", "m2/s", func(p int) scalar.Float {
		return sys.DiffusionCoefficient(st, cache, p, fluidsystem.N2Idx)
	})
	return rows
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if sweepVar != "temperature" && sweepVar != "pressure" {
		return fmt.Errorf("unknown sweep variable: %s", sweepVar)
	}
	if sweepSteps < 2 {
		return fmt.Errorf("need at least 2 sweep points")
	}

	sys, err := config.NewSystem[scalar.Float](cfg)
	if err != nil {
		return err
	}
	cache := &fluidsystem.ParameterCache{}

	t := &export.Table{
		Relations:  cfg.Relations,
		WaterModel: cfg.WaterModel,
		Sweep:      sweepVar,
		Columns: []string{
			sweepVar,
			"rho_liquid", "rho_gas",
			"mu_liquid", "mu_gas",
			"h_liquid", "h_gas",
			"cp_liquid", "cp_gas",
			"lambda_liquid", "lambda_gas",
		},
	}

	for i := 0; i < sweepSteps; i++ {
		x := sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)
		c := *cfg
		if sweepVar == "temperature" {
			c.State.Temperature = x
		} else {
			c.State.Pressure = x
		}
		st := config.NewState(&c, sys)

		row := []float64{x}
		for _, f := range []func(fluidsystem.FluidState[scalar.Float], *fluidsystem.ParameterCache, int) scalar.Float{
			sys.Density, sys.Viscosity, sys.Enthalpy, sys.HeatCapacity, sys.ThermalConductivity,
		} {
			row = append(row,
				float64(f(st, cache, fluidsystem.LiquidPhaseIdx)),
				float64(f(st, cache, fluidsystem.GasPhaseIdx)))
		}
		t.Rows = append(t.Rows, row)
	}

	return export.WriteFile(outPath, outFormat, t)
}

func runPlot(cmd *cobra.Command, args []string) error {
	property := args[0]
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := config.NewSystem[scalar.Float](cfg)
	if err != nil {
		return err
	}
	cache := &fluidsystem.ParameterCache{}

	f, unit, err := propertyFunc(sys, property)
	if err != nil {
		return err
	}

	phases := []int{fluidsystem.LiquidPhaseIdx, fluidsystem.GasPhaseIdx}
	switch plotPhase {
	case "liquid":
		phases = []int{fluidsystem.LiquidPhaseIdx}
	case "gas":
		phases = []int{fluidsystem.GasPhaseIdx}
	case "both":
	default:
		return fmt.Errorf("unknown phase: %s", plotPhase)
	}

	for _, phase := range phases {
		data := make([]float64, sweepSteps)
		for i := 0; i < sweepSteps; i++ {
			x := sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)
			c := *cfg
			c.State.Temperature = x
			st := config.NewState(&c, sys)
			data[i] = float64(f(st, cache, phase))
		}

		caption := fmt.Sprintf("%s %s [%s], T = %.0f..%.0f K at p = %.3g Pa",
			sys.PhaseName(phase), property, unit, sweepFrom, sweepTo, cfg.State.Pressure)
		graph := asciigraph.Plot(data,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func propertyFunc(sys *fluidsystem.System[scalar.Float], name string) (func(fluidsystem.FluidState[scalar.Float], *fluidsystem.ParameterCache, int) scalar.Float, string, error) {
	switch strings.ToLower(name) {
	case "density", "rho":
		return sys.Density, "kg/m3", nil
	case "viscosity", "mu":
		return sys.Viscosity, "Pa s", nil
	case "enthalpy", "h":
		return sys.Enthalpy, "J/kg", nil
	case "heatcapacity", "cp":
		return sys.HeatCapacity, "J/kg K", nil
	case "conductivity", "lambda":
		return sys.ThermalConductivity, "W/m K", nil
	}
	return nil, "", fmt.Errorf("unknown property: %s (want density, viscosity, enthalpy, heatcapacity or conductivity)", name)
}
