// Package config loads and saves run configuration for the porefluid CLI
// and builds fluid systems from it.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pmsim/porefluid/internal/comps"
	"github.com/pmsim/porefluid/internal/fluidsystem"
	"github.com/pmsim/porefluid/internal/scalar"
)

var (
	// ErrUnknownRelations indicates an unrecognized relations name.
	ErrUnknownRelations = errors.New("config: unknown relations (want simple or complex)")

	// ErrUnknownWaterModel indicates an unrecognized water model name.
	ErrUnknownWaterModel = errors.New("config: unknown water model (want simple or tabulated)")
)

const (
	DefaultTemperature = 300.0 // [K]
	DefaultPressure    = 1e5   // [Pa]
)

type Config struct {
	Relations  string      `yaml:"relations"`   // simple | complex
	WaterModel string      `yaml:"water_model"` // simple | tabulated
	Table      TableConfig `yaml:"table"`
	State      StateConfig `yaml:"state"`
}

// TableConfig specifies the water tabulation grid.
type TableConfig struct {
	TempMin  float64 `yaml:"temp_min"`
	TempMax  float64 `yaml:"temp_max"`
	NumTemp  int     `yaml:"num_temp"`
	PressMin float64 `yaml:"press_min"`
	PressMax float64 `yaml:"press_max"`
	NumPress int     `yaml:"num_press"`
}

// StateConfig is the evaluation state: one temperature and pressure for
// both phases, plus per-phase mole fractions.
type StateConfig struct {
	Temperature float64 `yaml:"temperature"`
	Pressure    float64 `yaml:"pressure"`
	LiquidH2O   float64 `yaml:"liquid_h2o"`
	LiquidN2    float64 `yaml:"liquid_n2"`
	GasH2O      float64 `yaml:"gas_h2o"`
	GasN2       float64 `yaml:"gas_n2"`
}

func DefaultConfig() *Config {
	return &Config{
		Relations:  "complex",
		WaterModel: "tabulated",
		Table: TableConfig{
			TempMin:  fluidsystem.DefaultTempMin,
			TempMax:  fluidsystem.DefaultTempMax,
			NumTemp:  fluidsystem.DefaultNumTemp,
			PressMin: fluidsystem.DefaultPressMin,
			PressMax: fluidsystem.DefaultPressMax,
			NumPress: fluidsystem.DefaultNumPress,
		},
		State: StateConfig{
			Temperature: DefaultTemperature,
			Pressure:    DefaultPressure,
			LiquidH2O:   1.0,
			LiquidN2:    0.0,
			GasH2O:      0.05,
			GasN2:       0.95,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RelationSet parses the relations name.
func (c *Config) RelationSet() (fluidsystem.RelationSet, error) {
	switch c.Relations {
	case "", "complex":
		return fluidsystem.ComplexRelations, nil
	case "simple":
		return fluidsystem.SimpleRelations, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRelations, c.Relations)
}

// NewSystem builds and initializes a fluid system from the configuration.
// The scalar type is chosen by the caller: plain for evaluation, dual for
// derivative output.
func NewSystem[S scalar.Value[S]](cfg *Config) (*fluidsystem.System[S], error) {
	rel, err := cfg.RelationSet()
	if err != nil {
		return nil, err
	}

	var water comps.Component[S]
	switch cfg.WaterModel {
	case "", "tabulated":
		water = comps.NewTabulated[S](comps.SimpleH2O[S]{})
	case "simple":
		water = comps.SimpleH2O[S]{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWaterModel, cfg.WaterModel)
	}

	sys := fluidsystem.New(
		fluidsystem.WithWater[S](water),
		fluidsystem.WithRelations[S](rel),
	)
	t := cfg.Table
	if err := sys.InitRange(t.TempMin, t.TempMax, t.NumTemp, t.PressMin, t.PressMax, t.NumPress); err != nil {
		return nil, err
	}
	return sys, nil
}

// NewState builds a fluid state from the configured scenario.
func NewState[S scalar.Value[S]](cfg *Config, sys *fluidsystem.System[S]) *fluidsystem.CompositionalState[S] {
	st := &fluidsystem.CompositionalState[S]{}
	st.SetAllTemperatures(scalar.Const[S](cfg.State.Temperature))
	st.SetPressure(fluidsystem.LiquidPhaseIdx, scalar.Const[S](cfg.State.Pressure))
	st.SetPressure(fluidsystem.GasPhaseIdx, scalar.Const[S](cfg.State.Pressure))
	st.SetMoleFraction(fluidsystem.LiquidPhaseIdx, fluidsystem.H2OIdx, scalar.Const[S](cfg.State.LiquidH2O))
	st.SetMoleFraction(fluidsystem.LiquidPhaseIdx, fluidsystem.N2Idx, scalar.Const[S](cfg.State.LiquidN2))
	st.SetMoleFraction(fluidsystem.GasPhaseIdx, fluidsystem.H2OIdx, scalar.Const[S](cfg.State.GasH2O))
	st.SetMoleFraction(fluidsystem.GasPhaseIdx, fluidsystem.N2Idx, scalar.Const[S](cfg.State.GasN2))
	st.UpdateAverages(sys.MolarMasses())
	return st
}
