package roster

import "fmt"

// Shift type names the rest-period rule keys on. Renaming these in the
// taxonomy disables the night-to-morning exclusion for the renamed type.
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"
)

// assumedStaffPerShift is the denominator convention of the coverage
// percentage metric.
const assumedStaffPerShift = 5

// Config defines rostering parameters.
type Config struct {
	// ShiftTypes is the default shift taxonomy, in display order.
	ShiftTypes []string `json:"shift_types"`
	// StartTimes maps shift type to its "HH:MM" start.
	StartTimes map[string]string `json:"shift_start_times"`
	// RoleMinimums is the default per-shift, per-role head count.
	RoleMinimums map[string]int `json:"role_minimums"`
	// MinStaffPerShift is the default total head count per shift type.
	MinStaffPerShift map[string]int `json:"min_staff_per_shift"`
	// ShiftDurationHours is the default shift length.
	ShiftDurationHours int `json:"shift_duration_hours"`
	// SolverBudgetSeconds caps the wall-clock time of one optimization run.
	SolverBudgetSeconds int `json:"solver_budget_seconds"`
	// DefaultMaxHoursPerWeek applies to staff without an explicit cap.
	DefaultMaxHoursPerWeek int `json:"default_max_hours_per_week"`
}

// SetDefaults applies the standard hospital taxonomy.
func (c *Config) SetDefaults() {
	if len(c.ShiftTypes) == 0 {
		c.ShiftTypes = []string{ShiftMorning, ShiftAfternoon, ShiftNight}
	}
	if len(c.StartTimes) == 0 {
		c.StartTimes = map[string]string{
			ShiftMorning:   "08:00",
			ShiftAfternoon: "16:00",
			ShiftNight:     "00:00",
		}
	}
	if len(c.RoleMinimums) == 0 {
		c.RoleMinimums = map[string]int{"doctor": 2, "nurse": 5, "technician": 2}
	}
	if len(c.MinStaffPerShift) == 0 {
		c.MinStaffPerShift = map[string]int{ShiftMorning: 5, ShiftAfternoon: 6, ShiftNight: 4}
	}
	if c.ShiftDurationHours == 0 {
		c.ShiftDurationHours = 8
	}
	if c.SolverBudgetSeconds == 0 {
		c.SolverBudgetSeconds = 60
	}
	if c.DefaultMaxHoursPerWeek == 0 {
		c.DefaultMaxHoursPerWeek = 40
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.ShiftDurationHours <= 0 || c.ShiftDurationHours > 24 {
		return fmt.Errorf("shift_duration_hours must be in [1,24]")
	}
	if c.SolverBudgetSeconds <= 0 {
		return fmt.Errorf("solver_budget_seconds must be positive")
	}
	if c.DefaultMaxHoursPerWeek <= 0 {
		return fmt.Errorf("default_max_hours_per_week must be positive")
	}
	for role, n := range c.RoleMinimums {
		if n < 0 {
			return fmt.Errorf("role minimum for %q must not be negative", role)
		}
	}
	for name, n := range c.MinStaffPerShift {
		if n < 0 {
			return fmt.Errorf("min staff for shift %q must not be negative", name)
		}
	}
	return nil
}
