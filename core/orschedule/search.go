package orschedule

import "time"

// deadlinePollInterval is the node count between wall-clock checks. The
// cancellation is cooperative; the search never blocks past one interval.
const deadlinePollInterval = 4096

// makespanSearch minimizes the maximum room load for a fixed set of blocks
// on identical rooms. Blocks must be sorted by decreasing length: the LPT
// incumbent and the symmetry pruning both rely on that order.
type makespanSearch struct {
	blocks   []int
	rooms    int
	deadline time.Time

	best       int
	bestAssign []int
	assign     []int
	loads      []int
	lowerBound int
	nodes      int
	timedOut   bool
}

func newMakespanSearch(blocks []int, rooms int, deadline time.Time) *makespanSearch {
	s := &makespanSearch{
		blocks:   blocks,
		rooms:    rooms,
		deadline: deadline,
		assign:   make([]int, len(blocks)),
		loads:    make([]int, rooms),
	}

	var sum, max int
	for _, b := range blocks {
		sum += b
		if b > max {
			max = b
		}
	}
	s.lowerBound = (sum + rooms - 1) / rooms
	if max > s.lowerBound {
		s.lowerBound = max
	}

	s.best, s.bestAssign = s.greedyLPT()
	return s
}

// greedyLPT assigns each block to the least-loaded room. Blocks are already
// in decreasing order, so this is the classic longest-processing-time rule.
func (s *makespanSearch) greedyLPT() (int, []int) {
	loads := make([]int, s.rooms)
	assign := make([]int, len(s.blocks))
	for i, b := range s.blocks {
		r := 0
		for j := 1; j < s.rooms; j++ {
			if loads[j] < loads[r] {
				r = j
			}
		}
		loads[r] += b
		assign[i] = r
	}
	makespan := 0
	for _, l := range loads {
		if l > makespan {
			makespan = l
		}
	}
	return makespan, assign
}

// run explores room assignments branch-and-bound style. It returns true when
// the search space was exhausted, i.e. the incumbent is provably optimal.
func (s *makespanSearch) run() bool {
	if s.best == s.lowerBound {
		return true
	}
	s.dfs(0)
	return !s.timedOut
}

func (s *makespanSearch) dfs(i int) {
	if s.timedOut || s.best == s.lowerBound {
		return
	}
	s.nodes++
	if s.nodes%deadlinePollInterval == 0 && time.Now().After(s.deadline) {
		s.timedOut = true
		return
	}
	if i == len(s.blocks) {
		makespan := 0
		for _, l := range s.loads {
			if l > makespan {
				makespan = l
			}
		}
		if makespan < s.best {
			s.best = makespan
			copy(s.bestAssign, s.assign)
		}
		return
	}

	// Rooms with equal loads are interchangeable; trying one of each load
	// value is enough and prunes the identical-room symmetry.
	tried := make(map[int]struct{}, s.rooms)
	for r := 0; r < s.rooms; r++ {
		load := s.loads[r]
		if _, ok := tried[load]; ok {
			continue
		}
		tried[load] = struct{}{}
		if load+s.blocks[i] >= s.best {
			continue
		}
		s.loads[r] += s.blocks[i]
		s.assign[i] = r
		s.dfs(i + 1)
		s.loads[r] -= s.blocks[i]
		if s.timedOut {
			return
		}
	}
}
