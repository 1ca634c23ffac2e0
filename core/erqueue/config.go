package erqueue

import "fmt"

// Config holds the priority weighting constants. The score of a resident is
// acuity*AcuityWeight - waitMinutes*WaitWeight, lower scores are seen first.
type Config struct {
	AcuityWeight float64 `json:"acuity_weight"`
	WaitWeight   float64 `json:"wait_weight"`
}

// SetDefaults applies the standard weighting (acuity dominates, one point of
// priority per waiting minute).
func (c *Config) SetDefaults() {
	if c.AcuityWeight == 0 {
		c.AcuityWeight = 100
	}
	if c.WaitWeight == 0 {
		c.WaitWeight = 1
	}
}

// Validate checks the weights are usable.
func (c Config) Validate() error {
	if c.AcuityWeight <= 0 {
		return fmt.Errorf("acuity_weight must be positive")
	}
	if c.WaitWeight <= 0 {
		return fmt.Errorf("wait_weight must be positive")
	}
	return nil
}
