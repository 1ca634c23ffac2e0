package erqueue

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/swasthya/scheduling/core/model"
	"github.com/swasthya/scheduling/infra/logger"
)

func newTestQueue(t *testing.T) (*Queue, *time.Time) {
	t.Helper()
	q := New(Config{}, logger.NopLogger{}, nil)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return now }
	return q, &now
}

func TestDequeueEmpty(t *testing.T) {
	q, _ := newTestQueue(t)
	if _, err := q.Dequeue(); !errors.Is(err, model.ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue, got %v", err)
	}
}

func TestEnqueueValidation(t *testing.T) {
	q, _ := newTestQueue(t)
	if err := q.Enqueue("p1", 0, time.Time{}); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("acuity 0 accepted: %v", err)
	}
	if err := q.Enqueue("p1", 6, time.Time{}); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("acuity 6 accepted: %v", err)
	}
	if err := q.Enqueue("", 3, time.Time{}); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("empty id accepted: %v", err)
	}
	if err := q.Enqueue("p1", 3, time.Time{}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := q.Enqueue("p1", 2, time.Time{}); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("duplicate id accepted: %v", err)
	}
}

func TestDequeueOrdersByAcuity(t *testing.T) {
	q, now := newTestQueue(t)
	base := *now
	for _, p := range []struct {
		id     string
		acuity int
	}{{"low", 4}, {"critical", 1}, {"mid", 3}} {
		if err := q.Enqueue(p.id, p.acuity, base); err != nil {
			t.Fatalf("enqueue %s: %v", p.id, err)
		}
	}

	want := []string{"critical", "mid", "low"}
	for _, id := range want {
		next, err := q.Dequeue()
		if err != nil {
			t.Fatalf("dequeue: %v", err)
		}
		if next.ID != id {
			t.Fatalf("expected %s, got %s", id, next.ID)
		}
	}
}

// Draining the queue must always yield non-decreasing priority scores at the
// time of each call.
func TestDrainNonDecreasingScores(t *testing.T) {
	q, now := newTestQueue(t)
	base := *now
	arrivals := []struct {
		id     string
		acuity int
		waited time.Duration
	}{
		{"a", 5, 500 * time.Minute},
		{"b", 2, 10 * time.Minute},
		{"c", 3, 250 * time.Minute},
		{"d", 1, 0},
		{"e", 4, 90 * time.Minute},
	}
	for _, a := range arrivals {
		if err := q.Enqueue(a.id, a.acuity, base.Add(-a.waited)); err != nil {
			t.Fatalf("enqueue %s: %v", a.id, err)
		}
	}

	prev := -1e9
	for q.Len() > 0 {
		next, err := q.Dequeue()
		if err != nil {
			t.Fatalf("dequeue: %v", err)
		}
		if next.PriorityScore < prev {
			t.Fatalf("score went backwards: %s at %.1f after %.1f", next.ID, next.PriorityScore, prev)
		}
		prev = next.PriorityScore
	}
}

// The crossover arithmetic at the starvation boundary: acuity 5 waiting 400
// minutes ties an acuity 1 arrival (both score 100) and the severe patient
// wins the tie; at 401 minutes the waiting patient's score drops to 99 and
// it is seen first.
func TestStarvationCrossoverBoundary(t *testing.T) {
	q, now := newTestQueue(t)
	base := *now
	if err := q.Enqueue("waiting5", 5, base.Add(-400*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue("fresh1", 1, base); err != nil {
		t.Fatal(err)
	}
	next, err := q.Dequeue()
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != "fresh1" {
		t.Fatalf("at 400 min the acuity-1 patient must still win, got %s", next.ID)
	}
	if next.PriorityScore != 100 {
		t.Errorf("fresh1 score = %.1f, want 100", next.PriorityScore)
	}

	q, now2 := newTestQueue(t)
	base = *now2
	if err := q.Enqueue("waiting5", 5, base.Add(-401*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue("fresh1", 1, base); err != nil {
		t.Fatal(err)
	}
	next, err = q.Dequeue()
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != "waiting5" {
		t.Fatalf("at 401 min the waiting acuity-5 patient must be seen first, got %s", next.ID)
	}
	if next.PriorityScore != 99 {
		t.Errorf("waiting5 score = %.1f, want 99", next.PriorityScore)
	}
}

// Re-triage mutates acuity without resetting arrival time, so accumulated
// wait credit survives.
func TestReprioritizeKeepsWaitCredit(t *testing.T) {
	q, now := newTestQueue(t)
	base := *now
	if err := q.Enqueue("old", 2, base.Add(-90*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue("fresh", 2, base); err != nil {
		t.Fatal(err)
	}
	if err := q.Reprioritize("old", 3); err != nil {
		t.Fatalf("reprioritize: %v", err)
	}

	next, err := q.Dequeue()
	if err != nil {
		t.Fatal(err)
	}
	// old: 3*100-90 = 210 vs fresh: 2*100-0 = 200.
	if next.ID != "fresh" {
		t.Fatalf("expected fresh (score 200) before old (score 210), got %s", next.ID)
	}
	next, err = q.Dequeue()
	if err != nil {
		t.Fatal(err)
	}
	if next.WaitMinutes != 90 {
		t.Errorf("wait credit lost: %.1f min, want 90", next.WaitMinutes)
	}
}

func TestReprioritizeErrors(t *testing.T) {
	q, _ := newTestQueue(t)
	if err := q.Reprioritize("ghost", 2); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := q.Enqueue("p1", 3, time.Time{}); err != nil {
		t.Fatal(err)
	}
	if err := q.Reprioritize("p1", 9); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	q, now := newTestQueue(t)
	base := *now
	if st := q.Status(); st.TotalPatients != 0 {
		t.Fatalf("empty queue status: %+v", st)
	}
	_ = q.Enqueue("a", 2, base.Add(-30*time.Minute))
	_ = q.Enqueue("b", 2, base.Add(-10*time.Minute))
	_ = q.Enqueue("c", 4, base.Add(-20*time.Minute))

	st := q.Status()
	if st.TotalPatients != 3 {
		t.Errorf("total = %d, want 3", st.TotalPatients)
	}
	if st.ByAcuity[2] != 2 || st.ByAcuity[4] != 1 {
		t.Errorf("by acuity = %v", st.ByAcuity)
	}
	if st.AvgWaitMinutes != 20 {
		t.Errorf("avg wait = %.1f, want 20", st.AvgWaitMinutes)
	}
	if st.MaxWaitMinutes != 30 {
		t.Errorf("max wait = %.1f, want 30", st.MaxWaitMinutes)
	}
}

// Concurrent mutation must be safe; run with -race.
func TestConcurrentAccess(t *testing.T) {
	q := New(Config{}, logger.NopLogger{}, nil)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := string(rune('a'+g)) + "-" + string(rune('0'+i%10)) + string(rune('A'+i/10))
				_ = q.Enqueue(id, 1+i%5, time.Time{})
				if i%3 == 0 {
					_, _ = q.Dequeue()
				}
				if i%7 == 0 {
					_ = q.Reprioritize(id, 1+(i+1)%5)
				}
				_ = q.Status()
			}
		}(g)
	}
	wg.Wait()
}
