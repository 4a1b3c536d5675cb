package engine

import "time"

// DefaultTimeLimit is the search time budget used when the harness does not
// override it via the -t/--time flag.
const DefaultTimeLimit = 1980 * time.Millisecond

// TimeManager tracks a single fixed per-move time budget. There are no UCI
// increments or moves-to-go estimation to track: time control here is one
// flat millisecond budget per move.
type TimeManager struct {
	limit     time.Duration
	startTime time.Time
}

// NewTimeManager builds a manager with the default time limit; SetLimit
// overrides it.
func NewTimeManager() *TimeManager {
	return &TimeManager{limit: DefaultTimeLimit}
}

// SetLimit changes the per-move time budget.
func (tm *TimeManager) SetLimit(d time.Duration) {
	tm.limit = d
}

// Start marks the beginning of a search.
func (tm *TimeManager) Start() {
	tm.startTime = time.Now()
}

// Elapsed returns the time elapsed since Start.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// ShouldStop reports whether the time budget has been exceeded.
func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.limit
}
