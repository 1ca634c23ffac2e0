// Package duration predicts how long a surgical case will occupy a room.
// The baseline-by-procedure estimate stands in for a trained regression
// model; model training and persistence live outside this core.
package duration

import (
	"fmt"

	"github.com/swasthya/scheduling/core/model"
)

// DefaultMinutes is used for procedure types without a configured baseline.
const DefaultMinutes = 120

// Config tunes the estimator.
type Config struct {
	// Baselines maps procedure type to baseline minutes. Entries here are
	// merged over the built-in table.
	Baselines map[string]int `json:"baselines"`
	// SafetyFactor scales every prediction, default 1.1.
	SafetyFactor float64 `json:"safety_factor"`
}

// SetDefaults applies the standard safety buffer.
func (c *Config) SetDefaults() {
	if c.SafetyFactor == 0 {
		c.SafetyFactor = 1.1
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.SafetyFactor < 1 {
		return fmt.Errorf("safety_factor must be >= 1")
	}
	for proc, mins := range c.Baselines {
		if mins <= 0 {
			return fmt.Errorf("baseline for %q must be positive", proc)
		}
	}
	return nil
}

func defaultBaselines() map[string]int {
	return map[string]int{
		"appendectomy":     60,
		"cholecystectomy":  90,
		"hernia_repair":    120,
		"knee_replacement": 180,
		"cardiac_bypass":   300,
	}
}

// Estimator predicts resource-occupancy minutes from case attributes.
type Estimator struct {
	baselines map[string]int
	safety    float64
}

// NewEstimator builds an estimator from the configuration.
func NewEstimator(cfg Config) *Estimator {
	cfg.SetDefaults()
	base := defaultBaselines()
	for proc, mins := range cfg.Baselines {
		base[proc] = mins
	}
	return &Estimator{baselines: base, safety: cfg.SafetyFactor}
}

// Predict returns the expected duration in minutes for a case. A supplied
// positive duration estimate bypasses prediction. Otherwise the procedure
// baseline is scaled by complexity/2 and the safety factor.
func (e *Estimator) Predict(c model.SurgicalCase) int {
	if c.EstimatedDuration > 0 {
		return c.EstimatedDuration
	}
	base, ok := e.baselines[c.ProcedureType]
	if !ok {
		base = DefaultMinutes
	}
	complexity := c.ComplexityScore
	if complexity == 0 {
		complexity = 2
	}
	adjusted := int(float64(base) * float64(complexity) / 2)
	return int(float64(adjusted) * e.safety)
}
