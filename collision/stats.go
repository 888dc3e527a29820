package collision

import "fmt"

// Stats are diagnostic counters kept by a World. They never influence query results.
type Stats struct {
	CellsCreated  uint64
	CellsDeleted  uint64
	ShapesAdded   uint64
	ShapesUpdated uint64
	ShapesRemoved uint64

	BroadPhaseCalls uint64
	// Candidates counts distinct shapes met in the visited cells, before the
	// mask and predicate filters; CandidatesAccepted counts the survivors.
	Candidates         uint64
	CandidatesAccepted uint64
	NarrowPhaseTests   uint64
	Matches            uint64

	// Resets counts ResetStats calls. It survives the reset so readers can
	// tell a restart from a quiet period.
	Resets uint64
}

// Stats returns a copy of the counters.
func (w *World) Stats() Stats {
	return w.stats
}

// ResetStats zeroes every counter except Resets, which it increments.
func (w *World) ResetStats() {
	w.stats = Stats{Resets: w.stats.Resets + 1}
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"cells +%d/-%d shapes +%d ~%d -%d broad=%d candidates=%d accepted=%d narrow=%d matches=%d",
		s.CellsCreated, s.CellsDeleted,
		s.ShapesAdded, s.ShapesUpdated, s.ShapesRemoved,
		s.BroadPhaseCalls, s.Candidates, s.CandidatesAccepted, s.NarrowPhaseTests, s.Matches,
	)
}
