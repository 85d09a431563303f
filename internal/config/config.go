package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultKp = 1.0
	DefaultKi = 1.0
	DefaultKd = 0.5
	DefaultZ  = 1.0
	DefaultP  = 2.0

	DefaultNum   = "1"
	DefaultDen   = "1, 2, 1"
	DefaultZeros = "-1"
	DefaultPoles = "-1, -3"
)

type Config struct {
	Sweep  SweepConfig  `yaml:"sweep"`
	Step   StepConfig   `yaml:"step"`
	Locus  LocusConfig  `yaml:"locus"`
	Inputs InputConfig  `yaml:"inputs"`
	Bounds BoundsConfig `yaml:"bounds"`
}

// SweepConfig describes the logarithmic angular-frequency grid for the
// Bode and Nyquist charts.
type SweepConfig struct {
	MinExp float64 `yaml:"min_exp"`
	MaxExp float64 `yaml:"max_exp"`
	Points int     `yaml:"points"`
}

type StepConfig struct {
	Points int `yaml:"points"`
}

type LocusConfig struct {
	MaxGain float64 `yaml:"max_gain"`
	Points  int     `yaml:"points"`
}

// InputConfig seeds the analysis inputs: coefficient texts, controller
// selection and gains, lead/lag parameters.
type InputConfig struct {
	Num        string  `yaml:"num"`
	Den        string  `yaml:"den"`
	Zeros      string  `yaml:"zeros"`
	Poles      string  `yaml:"poles"`
	ZPK        bool    `yaml:"zpk"`
	Controller string  `yaml:"controller"`
	Kp         float64 `yaml:"kp"`
	Ki         float64 `yaml:"ki"`
	Kd         float64 `yaml:"kd"`
	LeadLag    bool    `yaml:"leadlag"`
	Z          float64 `yaml:"z"`
	P          float64 `yaml:"p"`
}

// BoundsConfig bounds the tunable parameters, matching the slider ranges of
// the interactive surface.
type BoundsConfig struct {
	KpMax float64 `yaml:"kp_max"`
	KiMax float64 `yaml:"ki_max"`
	KdMax float64 `yaml:"kd_max"`
	ZMin  float64 `yaml:"z_min"`
	ZMax  float64 `yaml:"z_max"`
	PMin  float64 `yaml:"p_min"`
	PMax  float64 `yaml:"p_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Sweep: SweepConfig{MinExp: -2, MaxExp: 2, Points: 1000},
		Step:  StepConfig{Points: 500},
		Locus: LocusConfig{MaxGain: 100, Points: 120},
		Inputs: InputConfig{
			Num:        DefaultNum,
			Den:        DefaultDen,
			Zeros:      DefaultZeros,
			Poles:      DefaultPoles,
			Controller: "P",
			Kp:         DefaultKp,
			Ki:         DefaultKi,
			Kd:         DefaultKd,
			Z:          DefaultZ,
			P:          DefaultP,
		},
		Bounds: BoundsConfig{
			KpMax: 10, KiMax: 10, KdMax: 5,
			ZMin: -10, ZMax: 10,
			PMin: -10, PMax: 10,
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
