package model

import "time"

// WaitingPatient is a resident of the emergency queue. WaitMinutes and
// PriorityScore are recomputed from the arrival time on each dequeue; they
// are only meaningful on patients returned by the queue.
type WaitingPatient struct {
	ID            string    `json:"patient_id"`
	AcuityLevel   int       `json:"acuity_level"`
	ArrivalTime   time.Time `json:"arrival_time"`
	WaitMinutes   float64   `json:"wait_minutes"`
	PriorityScore float64   `json:"priority_score"`
}

// SurgicalCase describes one case submitted for OR scheduling.
// EstimatedDuration, when positive, bypasses the duration estimator.
type SurgicalCase struct {
	ID                string `json:"case_id"`
	ProcedureType     string `json:"procedure_type"`
	PatientAge        int    `json:"patient_age"`
	ComplexityScore   int    `json:"complexity_score"`
	EstimatedDuration int    `json:"estimated_duration,omitempty"`
}

// ScheduledCase is one entry of a produced OR schedule. Room is 1-indexed
// for external reporting and StartTime is wall-clock HH:MM.
type ScheduledCase struct {
	CaseID        string `json:"case_id"`
	ProcedureType string `json:"procedure_type"`
	Room          int    `json:"or_room"`
	StartTime     string `json:"start_time"`
	Duration      int    `json:"estimated_duration"`
	WithTurnover  int    `json:"with_turnover"`
}

// StaffMember is immutable per scheduling run. Preferences are soft hints
// and are not enforced as hard constraints.
type StaffMember struct {
	ID              string            `json:"staff_id"`
	Name            string            `json:"name"`
	Role            string            `json:"role"`
	MaxHoursPerWeek int               `json:"max_hours_per_week"`
	Qualifications  []string          `json:"qualifications,omitempty"`
	Preferences     map[string]string `json:"preferences,omitempty"`
}

// Shift is one (date, shift type) pair of the rostering horizon.
// RequiredStaff maps role to the minimum head count for that role.
type Shift struct {
	Date          time.Time      `json:"date"`
	Name          string         `json:"shift"`
	StartTime     string         `json:"start_time"`
	DurationHours int            `json:"duration_hours"`
	RequiredStaff map[string]int `json:"required_staff"`
}

// Assignment binds a staff member to a shift.
type Assignment struct {
	StaffID       string `json:"staff_id"`
	StaffName     string `json:"staff_name"`
	Role          string `json:"role"`
	Date          string `json:"date"`
	Shift         string `json:"shift"`
	StartTime     string `json:"start_time"`
	DurationHours int    `json:"duration_hours"`
}

// DateLayout is the wire format for roster dates.
const DateLayout = "2006-01-02"
