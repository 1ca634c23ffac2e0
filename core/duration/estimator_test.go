package duration

import (
	"testing"

	"github.com/swasthya/scheduling/core/model"
)

func TestPredictBaseline(t *testing.T) {
	est := NewEstimator(Config{})
	cases := []struct {
		proc       string
		complexity int
		want       int
	}{
		// baseline * complexity/2, then the 1.1 buffer, truncating like the
		// integer arithmetic.
		{"appendectomy", 2, 66},
		{"cholecystectomy", 2, 99},
		{"knee_replacement", 4, 396},
		{"cardiac_bypass", 1, 165},
		{"unknown_procedure", 2, 132},
	}
	for _, c := range cases {
		got := est.Predict(model.SurgicalCase{ID: "c", ProcedureType: c.proc, ComplexityScore: c.complexity})
		if got != c.want {
			t.Errorf("%s complexity %d: got %d, want %d", c.proc, c.complexity, got, c.want)
		}
	}
}

func TestPredictDefaultComplexity(t *testing.T) {
	est := NewEstimator(Config{})
	got := est.Predict(model.SurgicalCase{ID: "c", ProcedureType: "appendectomy"})
	if got != 66 {
		t.Errorf("zero complexity should default to 2: got %d, want 66", got)
	}
}

func TestPredictSuppliedDurationBypasses(t *testing.T) {
	est := NewEstimator(Config{})
	got := est.Predict(model.SurgicalCase{ID: "c", ProcedureType: "appendectomy", ComplexityScore: 5, EstimatedDuration: 45})
	if got != 45 {
		t.Errorf("supplied duration must bypass prediction: got %d", got)
	}
}

func TestPredictConfiguredBaseline(t *testing.T) {
	est := NewEstimator(Config{Baselines: map[string]int{"craniotomy": 240}})
	got := est.Predict(model.SurgicalCase{ID: "c", ProcedureType: "craniotomy", ComplexityScore: 2})
	if got != 264 {
		t.Errorf("configured baseline: got %d, want 264", got)
	}
	// built-ins still present
	got = est.Predict(model.SurgicalCase{ID: "c", ProcedureType: "appendectomy", ComplexityScore: 2})
	if got != 66 {
		t.Errorf("built-in baseline lost: got %d", got)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := Config{SafetyFactor: 0.5}
	if err := bad.Validate(); err == nil {
		t.Error("safety factor below 1 accepted")
	}
	bad = Config{Baselines: map[string]int{"x": -10}}
	bad.SetDefaults()
	if err := bad.Validate(); err == nil {
		t.Error("negative baseline accepted")
	}
}
