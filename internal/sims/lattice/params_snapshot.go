package lattice

import (
	"strconv"

	"ising/internal/core"
	"ising/pkg/ising"
)

const (
	minTemperature = 0.05
	maxTemperature = 10
)

// Parameters reports the current configuration and acceptance counters.
func (l *Lattice) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("w", "Width", l.cfg.Width),
				intParam("h", "Height", l.cfg.Height),
				floatParam("coupling", "Coupling J", l.cfg.Coupling),
				int64Param("seed", "Seed", l.cfg.Seed),
			},
		},
		{
			Name: "Dynamics",
			Params: []core.Parameter{
				floatParam("temperature", "Temperature", l.temp.Float64()),
				intParam("steps_per_tick", "Steps per tick", l.cfg.Sweep()),
				{Key: "policy", Label: "Policy", Type: core.ParamTypeString, Value: l.policy.String()},
			},
		},
		{
			Name: "Proposals",
			Params: []core.Parameter{
				uint64Param("accepted", "Accepted", l.accepted),
				uint64Param("rejected", "Rejected", l.rejected),
			},
		},
	}}
}

// ParameterControls lists the values a HUD may adjust while running.
func (l *Lattice) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key: "temperature", Label: "Temperature", Type: core.ParamTypeFloat,
			Step: 0.05, Min: minTemperature, Max: maxTemperature, HasMin: true, HasMax: true,
		},
		{
			Key: "steps_per_tick", Label: "Steps per tick", Type: core.ParamTypeInt,
			Step: float64(l.cfg.Width), Min: 1, HasMin: true,
		},
	}
}

// SetFloatParameter updates the temperature. Non-positive or non-finite
// values are refused.
func (l *Lattice) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "temperature":
		temp, err := ising.NewTemperature(value)
		if err != nil {
			return false
		}
		l.temp = temp
		l.cfg.Temperature = value
		return true
	}
	return false
}

// SetIntParameter updates the number of proposals per tick.
func (l *Lattice) SetIntParameter(key string, value int) bool {
	switch key {
	case "steps_per_tick":
		if value < 1 {
			return false
		}
		l.cfg.StepsPerTick = value
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func uint64Param(key, label string, value uint64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatUint(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
