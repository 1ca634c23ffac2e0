package orschedule

import (
	"fmt"

	"github.com/swasthya/scheduling/core/model"
)

// MaxRooms bounds the accepted room count per request.
const MaxRooms = 20

// Config defines OR scheduling parameters.
type Config struct {
	// TurnoverMinutes is the cleaning/setup buffer appended after every case.
	TurnoverMinutes int `json:"turnover_minutes"`
	// OpenTime and CloseTime bound the default horizon, "HH:MM".
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	// SolverBudgetSeconds caps the wall-clock time of one scheduling run.
	SolverBudgetSeconds int `json:"solver_budget_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TurnoverMinutes == 0 {
		c.TurnoverMinutes = 30
	}
	if c.OpenTime == "" {
		c.OpenTime = "08:00"
	}
	if c.CloseTime == "" {
		c.CloseTime = "18:00"
	}
	if c.SolverBudgetSeconds == 0 {
		c.SolverBudgetSeconds = 60
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.TurnoverMinutes < 0 {
		return fmt.Errorf("turnover_minutes must not be negative")
	}
	if c.SolverBudgetSeconds <= 0 {
		return fmt.Errorf("solver_budget_seconds must be positive")
	}
	open, err := model.ParseClock(c.OpenTime)
	if err != nil {
		return fmt.Errorf("open_time: %v", err)
	}
	closeM, err := model.ParseClock(c.CloseTime)
	if err != nil {
		return fmt.Errorf("close_time: %v", err)
	}
	if closeM <= open {
		return fmt.Errorf("close_time must be after open_time")
	}
	return nil
}
