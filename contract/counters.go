package contract

import "math"

// checkedAdd is the only way counters and totals grow, so none of them can wrap.
func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// takeDonorID hands out the next sequential donor id and advances the counter.
// Ids start at 1; 0 stays reserved for "unassigned".
func takeDonorID(cfg *Config) (uint64, error) {
	id := cfg.NextDonorID
	next, err := checkedAdd(id, 1)
	if err != nil {
		return 0, err
	}
	cfg.NextDonorID = next
	return id, nil
}
