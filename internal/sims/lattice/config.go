package lattice

import (
	"fmt"
	"math"
	"strconv"

	"ising/pkg/ising"
)

// CriticalCoupling is J = ln(1+sqrt 2)/2, the coupling at which the square
// lattice orders at unit temperature.
var CriticalCoupling = math.Log(1+math.Sqrt2) / 2

// Config controls the lattice dimensions and dynamics.
type Config struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Coupling float64 `yaml:"coupling"`

	Temperature float64 `yaml:"temperature"`

	// StepsPerTick is the number of single-site proposals per host tick.
	// Zero means one sweep, i.e. Width*Height proposals.
	StepsPerTick int    `yaml:"steps_per_tick"`
	Policy       string `yaml:"policy"`

	// Seed fixes the random stream. Zero draws a fresh stream on every reset.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       128,
		Height:      128,
		Coupling:    CriticalCoupling,
		Temperature: 1.0,
		Policy:      ising.PolicyLegacy.String(),
	}
}

// Validate reports the first setting the model would refuse.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ising.ErrInvalidDimensions, c.Width, c.Height)
	}
	if math.IsNaN(c.Coupling) || math.IsInf(c.Coupling, 0) {
		return fmt.Errorf("%w: got %v", ising.ErrInvalidCoupling, c.Coupling)
	}
	if _, err := ising.NewTemperature(c.Temperature); err != nil {
		return err
	}
	if c.StepsPerTick < 0 {
		return fmt.Errorf("steps per tick must not be negative, got %d", c.StepsPerTick)
	}
	if _, err := ising.ParsePolicy(c.Policy); err != nil {
		return err
	}
	return nil
}

// Sweep returns the effective number of proposals per tick.
func (c Config) Sweep() int {
	if c.StepsPerTick > 0 {
		return c.StepsPerTick
	}
	return c.Width * c.Height
}

// FromMap populates a Config from flag-style key/value pairs, starting from
// the defaults. Unparseable values leave the default in place.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg["coupling"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Coupling = parsed
		}
	}
	if v, ok := cfg["temperature"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = parsed
		}
	}
	if v, ok := cfg["steps_per_tick"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.StepsPerTick = parsed
		}
	}
	if v, ok := cfg["policy"]; ok {
		c.Policy = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// ToMap is the inverse of FromMap.
func (c Config) ToMap() map[string]string {
	return map[string]string{
		"w":              strconv.Itoa(c.Width),
		"h":              strconv.Itoa(c.Height),
		"coupling":       strconv.FormatFloat(c.Coupling, 'g', -1, 64),
		"temperature":    strconv.FormatFloat(c.Temperature, 'g', -1, 64),
		"steps_per_tick": strconv.Itoa(c.StepsPerTick),
		"policy":         c.Policy,
		"seed":           strconv.FormatInt(c.Seed, 10),
	}
}
