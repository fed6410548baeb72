// Package config loads the oven tuning file. Values missing from the file
// fall back to the stock tuning, so an empty or absent file yields a fully
// working configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/reflow-oven/internal/control"
	"github.com/sweeney/reflow-oven/internal/gpio"
)

// Config represents the daemon configuration.
type Config struct {
	Broker      string       `yaml:"broker"`
	HTTPAddr    string       `yaml:"http_addr"`
	ProfilePath string       `yaml:"profile_path"`
	Serial      SerialConfig `yaml:"serial"`
	Pins        PinsConfig   `yaml:"pins"`
	Control     Control      `yaml:"control"`
	Gains       GainsConfig  `yaml:"gains"`
}

// SerialConfig contains the thermocouple board's serial port settings.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// PinsConfig contains the GPIO pin assignment (BCM numbering).
type PinsConfig struct {
	Start  int `yaml:"start"`
	Select int `yaml:"select"`
	SSR    int `yaml:"ssr"`
	Buzzer int `yaml:"buzzer"`
	LED    int `yaml:"led"`
}

// Control contains the process controller thresholds and periods.
// Periods are plain milliseconds.
type Control struct {
	WindowMs        int64   `yaml:"window_ms"`
	SampleMs        int64   `yaml:"sample_ms"`
	DisplayMs       int64   `yaml:"display_ms"`
	DebounceMs      int64   `yaml:"debounce_ms"`
	RoomTemp        float64 `yaml:"room_temp"`
	SoakMinTemp     float64 `yaml:"soak_min_temp"`
	CoolMinTemp     float64 `yaml:"cool_min_temp"`
	SoakStep        float64 `yaml:"soak_step"`
	ReflowMargin    float64 `yaml:"reflow_margin"`
	BakeTemp        float64 `yaml:"bake_temp"`
	ResetPIDOnStart bool    `yaml:"reset_pid_on_start"`
}

// GainsConfig contains the per-stage PID gain sets.
type GainsConfig struct {
	Preheat GainConfig `yaml:"preheat"`
	Soak    GainConfig `yaml:"soak"`
	Reflow  GainConfig `yaml:"reflow"`
	Bake    GainConfig `yaml:"bake"`
}

// GainConfig is one PID gain set.
type GainConfig struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

// Default returns the stock configuration.
func Default() *Config {
	cc := control.DefaultConfig()
	return &Config{
		Broker:      "tcp://127.0.0.1:1883",
		HTTPAddr:    ":8080",
		ProfilePath: "/var/lib/reflow-oven/profile",
		Serial: SerialConfig{
			Port:     "/dev/ttyUSB0",
			BaudRate: 115200,
		},
		Pins: PinsConfig{
			Start:  gpio.DefaultPinStart,
			Select: gpio.DefaultPinSelect,
			SSR:    gpio.DefaultPinSSR,
			Buzzer: gpio.DefaultPinBuzzer,
			LED:    gpio.DefaultPinLED,
		},
		Control: Control{
			WindowMs:     cc.WindowSize.Milliseconds(),
			SampleMs:     cc.SampleInterval.Milliseconds(),
			DisplayMs:    cc.DisplayInterval.Milliseconds(),
			DebounceMs:   cc.DebouncePeriod.Milliseconds(),
			RoomTemp:     cc.RoomTemp,
			SoakMinTemp:  cc.SoakMinTemp,
			CoolMinTemp:  cc.CoolMinTemp,
			SoakStep:     cc.SoakStep,
			ReflowMargin: cc.ReflowMargin,
			BakeTemp:     cc.BakeTemp,
		},
		Gains: GainsConfig{
			Preheat: gainConfig(cc.Gains.Preheat),
			Soak:    gainConfig(cc.Gains.Soak),
			Reflow:  gainConfig(cc.Gains.Reflow),
			Bake:    gainConfig(cc.Gains.Bake),
		},
	}
}

func gainConfig(g control.GainSet) GainConfig {
	return GainConfig{Kp: g.Kp, Ki: g.Ki, Kd: g.Kd}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ensureDefaults fills required fields that the file zeroed or omitted.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Broker == "" {
		c.Broker = def.Broker
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = def.HTTPAddr
	}
	if c.ProfilePath == "" {
		c.ProfilePath = def.ProfilePath
	}
	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Pins.Start == 0 {
		c.Pins.Start = def.Pins.Start
	}
	if c.Pins.Select == 0 {
		c.Pins.Select = def.Pins.Select
	}
	if c.Pins.SSR == 0 {
		c.Pins.SSR = def.Pins.SSR
	}
	if c.Pins.Buzzer == 0 {
		c.Pins.Buzzer = def.Pins.Buzzer
	}
	if c.Pins.LED == 0 {
		c.Pins.LED = def.Pins.LED
	}

	if c.Control.WindowMs == 0 {
		c.Control.WindowMs = def.Control.WindowMs
	}
	if c.Control.SampleMs == 0 {
		c.Control.SampleMs = def.Control.SampleMs
	}
	if c.Control.DisplayMs == 0 {
		c.Control.DisplayMs = def.Control.DisplayMs
	}
	if c.Control.DebounceMs == 0 {
		c.Control.DebounceMs = def.Control.DebounceMs
	}
	if c.Control.RoomTemp == 0 {
		c.Control.RoomTemp = def.Control.RoomTemp
	}
	if c.Control.SoakMinTemp == 0 {
		c.Control.SoakMinTemp = def.Control.SoakMinTemp
	}
	if c.Control.CoolMinTemp == 0 {
		c.Control.CoolMinTemp = def.Control.CoolMinTemp
	}
	if c.Control.SoakStep == 0 {
		c.Control.SoakStep = def.Control.SoakStep
	}
	if c.Control.ReflowMargin == 0 {
		c.Control.ReflowMargin = def.Control.ReflowMargin
	}
	if c.Control.BakeTemp == 0 {
		c.Control.BakeTemp = def.Control.BakeTemp
	}

	fixGains(&c.Gains.Preheat, def.Gains.Preheat)
	fixGains(&c.Gains.Soak, def.Gains.Soak)
	fixGains(&c.Gains.Reflow, def.Gains.Reflow)
	fixGains(&c.Gains.Bake, def.Gains.Bake)
}

func fixGains(g *GainConfig, def GainConfig) {
	if g.Kp == 0 && g.Ki == 0 && g.Kd == 0 {
		*g = def
	}
}

// ControlConfig maps the file values onto the controller's config.
func (c *Config) ControlConfig() control.Config {
	cc := control.DefaultConfig()
	cc.WindowSize = time.Duration(c.Control.WindowMs) * time.Millisecond
	cc.SampleInterval = time.Duration(c.Control.SampleMs) * time.Millisecond
	cc.DisplayInterval = time.Duration(c.Control.DisplayMs) * time.Millisecond
	cc.DebouncePeriod = time.Duration(c.Control.DebounceMs) * time.Millisecond
	cc.RoomTemp = c.Control.RoomTemp
	cc.SoakMinTemp = c.Control.SoakMinTemp
	cc.CoolMinTemp = c.Control.CoolMinTemp
	cc.SoakStep = c.Control.SoakStep
	cc.ReflowMargin = c.Control.ReflowMargin
	cc.BakeTemp = c.Control.BakeTemp
	cc.ResetPIDOnStart = c.Control.ResetPIDOnStart
	cc.Gains = control.StageGains{
		Preheat: gainSet(c.Gains.Preheat),
		Soak:    gainSet(c.Gains.Soak),
		Reflow:  gainSet(c.Gains.Reflow),
		Bake:    gainSet(c.Gains.Bake),
	}
	return cc
}

func gainSet(g GainConfig) control.GainSet {
	return control.GainSet{Kp: g.Kp, Ki: g.Ki, Kd: g.Kd}
}

// GPIOPins maps the file values onto the gpio pin assignment.
func (c *Config) GPIOPins() gpio.Pins {
	return gpio.Pins{
		Start:  c.Pins.Start,
		Select: c.Pins.Select,
		SSR:    c.Pins.SSR,
		Buzzer: c.Pins.Buzzer,
		LED:    c.Pins.LED,
	}
}
