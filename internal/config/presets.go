package config

// Presets are named evaluation scenarios covering the conditions the
// fluid system is typically used under.
var Presets = map[string]*Config{
	"reservoir": {
		Relations: "complex", WaterModel: "tabulated",
		Table: TableConfig{TempMin: 273.15, TempMax: 623.15, NumTemp: 100, PressMin: 0, PressMax: 20e6, NumPress: 200},
		State: StateConfig{
			Temperature: 350, Pressure: 10e6,
			LiquidH2O: 0.998, LiquidN2: 0.002,
			GasH2O: 0.02, GasN2: 0.98,
		},
	},
	"atmospheric": {
		Relations: "complex", WaterModel: "simple",
		Table: TableConfig{TempMin: 273.15, TempMax: 373.15, NumTemp: 50, PressMin: 5e4, PressMax: 2e5, NumPress: 50},
		State: StateConfig{
			Temperature: 293.15, Pressure: 101325,
			LiquidH2O: 1.0, LiquidN2: 0.0,
			GasH2O: 0.017, GasN2: 0.983,
		},
	},
	"steam": {
		Relations: "complex", WaterModel: "tabulated",
		Table: TableConfig{TempMin: 373.15, TempMax: 623.15, NumTemp: 100, PressMin: 1e5, PressMax: 20e6, NumPress: 200},
		State: StateConfig{
			Temperature: 573.15, Pressure: 5e6,
			LiquidH2O: 1.0, LiquidN2: 0.0,
			GasH2O: 0.9, GasN2: 0.1,
		},
	},
	"dry-gas": {
		Relations: "simple", WaterModel: "simple",
		Table: TableConfig{TempMin: 273.15, TempMax: 473.15, NumTemp: 50, PressMin: 1e4, PressMax: 10e6, NumPress: 100},
		State: StateConfig{
			Temperature: 320, Pressure: 2e6,
			LiquidH2O: 1.0, LiquidN2: 0.0,
			GasH2O: 0.0, GasN2: 1.0,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
