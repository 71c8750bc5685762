package contract

import (
	"cmp"
	"slices"
)

// UpdateTop folds candidate into the fixed size leaderboard. A donor already on
// the board is refreshed in place; otherwise the candidate takes the lowest
// slot when it beats it. The board is re-sorted either way.
func UpdateTop(top *[TopSize]TopEntry, candidate TopEntry) {
	if candidate.IsEmpty() {
		slices.SortFunc(top[:], compareRank)
		return
	}
	if i := slices.IndexFunc(top[:], func(e TopEntry) bool { return e.DonorID == candidate.DonorID }); i >= 0 {
		top[i] = candidate
	} else {
		low := lowestSlot(top)
		floor := top[low]
		if candidate.LifetimeAmount > floor.LifetimeAmount ||
			(candidate.LifetimeAmount == floor.LifetimeAmount && (floor.IsEmpty() || candidate.DonorID < floor.DonorID)) {
			top[low] = candidate
		}
	}
	slices.SortFunc(top[:], compareRank)
}

// lowestSlot finds the minimum amount slot. Among equal amounts it picks the one
// ranked last, so empty slots go first and then the highest donor id.
func lowestSlot(top *[TopSize]TopEntry) int {
	low := 0
	for i := 1; i < len(top); i++ {
		e, cur := top[i], top[low]
		if e.LifetimeAmount < cur.LifetimeAmount ||
			(e.LifetimeAmount == cur.LifetimeAmount && compareRank(e, cur) > 0) {
			low = i
		}
	}
	return low
}

// compareRank orders by amount descending, donor id ascending, empty slots last.
func compareRank(a, b TopEntry) int {
	if a.IsEmpty() != b.IsEmpty() {
		if a.IsEmpty() {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.LifetimeAmount, a.LifetimeAmount); c != 0 {
		return c
	}
	return cmp.Compare(a.DonorID, b.DonorID)
}

// Rank returns the 1 based position of donorID on the board.
func Rank(top *[TopSize]TopEntry, donorID uint64) (int, bool) {
	if donorID == 0 {
		return 0, false
	}
	for i, e := range top {
		if e.DonorID == donorID {
			return i + 1, true
		}
	}
	return 0, false
}
