package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the daemon's runtime wiring: which ports, directory and
// pins the logger runs on. This is host configuration, separate from
// the device's own persisted settings record on the card.
type Config struct {
	Console     ConsoleConfig   `yaml:"console"`
	Amplifier   AmplifierConfig `yaml:"amplifier"`
	Storage     StorageConfig   `yaml:"storage"`
	Indicator   IndicatorConfig `yaml:"indicator"`
	Battery     BatteryConfig   `yaml:"battery"`
	LogLevel    string          `yaml:"log_level"`
	WaitToStart bool            `yaml:"wait_to_start"`
}

// ConsoleConfig selects the operator console transport. An empty
// port means stdin/stdout.
type ConsoleConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// AmplifierConfig selects the load-cell amplifier head link, or the
// scripted mock when no head is attached.
type AmplifierConfig struct {
	Port        string `yaml:"port"`
	Baud        int    `yaml:"baud"`
	Mock        bool   `yaml:"mock"`
	MockReading int32  `yaml:"mock_reading"`
}

// StorageConfig locates the card mount point.
type StorageConfig struct {
	DataDirectory string `yaml:"data_directory"`
}

// IndicatorConfig names the RGB channel pins and the error line, or
// selects the recording mock when the host has no LED.
type IndicatorConfig struct {
	Mock     bool   `yaml:"mock"`
	RedPin   string `yaml:"red_pin"`
	GreenPin string `yaml:"green_pin"`
	BluePin  string `yaml:"blue_pin"`
	ErrorPin string `yaml:"error_pin"`
}

// BatteryConfig scripts the sense pin. The host has no ADC of its
// own, so the shared-pin read is simulated at a fixed pack voltage.
type BatteryConfig struct {
	SimulatedVolts float32 `yaml:"simulated_volts"`
}

// defaultConfig returns the wiring used when no file is present:
// console on stdio, mock amplifier and indicator, card in ./card.
func defaultConfig() *Config {
	return &Config{
		Console:   ConsoleConfig{Baud: 9600},
		Amplifier: AmplifierConfig{Baud: 115200, Mock: true, MockReading: 1000},
		Storage:   StorageConfig{DataDirectory: "card"},
		Indicator: IndicatorConfig{
			Mock:     true,
			RedPin:   "GPIO11",
			GreenPin: "GPIO6",
			BluePin:  "GPIO5",
			ErrorPin: "GPIO17",
		},
		Battery:  BatteryConfig{SimulatedVolts: 4.0},
		LogLevel: "info",
	}
}

// loadConfig reads the YAML wiring file, falling back to defaults
// when it does not exist and filling in any missing fields.
func loadConfig(filename string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.ensureDefaults()
	return cfg, nil
}

func (c *Config) ensureDefaults() {
	def := defaultConfig()
	if c.Console.Baud == 0 {
		c.Console.Baud = def.Console.Baud
	}
	if c.Amplifier.Baud == 0 {
		c.Amplifier.Baud = def.Amplifier.Baud
	}
	if c.Storage.DataDirectory == "" {
		c.Storage.DataDirectory = def.Storage.DataDirectory
	}
	if c.Indicator.RedPin == "" {
		c.Indicator.RedPin = def.Indicator.RedPin
	}
	if c.Indicator.GreenPin == "" {
		c.Indicator.GreenPin = def.Indicator.GreenPin
	}
	if c.Indicator.BluePin == "" {
		c.Indicator.BluePin = def.Indicator.BluePin
	}
	if c.Indicator.ErrorPin == "" {
		c.Indicator.ErrorPin = def.Indicator.ErrorPin
	}
	if c.Battery.SimulatedVolts == 0 {
		c.Battery.SimulatedVolts = def.Battery.SimulatedVolts
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}
