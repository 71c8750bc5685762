package contract

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, amount uint64) TopEntry {
	return TopEntry{DonorID: id, DonorWallet: solana.NewWallet().PublicKey(), LifetimeAmount: amount}
}

func ids(top *[TopSize]TopEntry) []uint64 {
	out := make([]uint64, 0, TopSize)
	for _, e := range top {
		out = append(out, e.DonorID)
	}
	return out
}

// requireRanked checks the board order: amount desc, id asc, sentinels last.
func requireRanked(t *testing.T, top *[TopSize]TopEntry) {
	t.Helper()
	for i := 1; i < TopSize; i++ {
		require.LessOrEqual(t, compareRank(top[i-1], top[i]), 0, "slots %d and %d out of order: %v", i-1, i, ids(top))
	}
}

func TestUpdateTopFollowsDonationScenario(t *testing.T) {
	var top [TopSize]TopEntry
	a, b := entry(1, 100), entry(2, 150)

	UpdateTop(&top, a)
	assert.Equal(t, uint64(1), top[0].DonorID)
	assert.Equal(t, uint64(100), top[0].LifetimeAmount)

	UpdateTop(&top, b)
	assert.Equal(t, []uint64{2, 1}, ids(&top)[:2])

	a.LifetimeAmount = 300
	UpdateTop(&top, a)
	assert.Equal(t, []uint64{1, 2, 0}, ids(&top)[:3])
	assert.Equal(t, uint64(300), top[0].LifetimeAmount)
	assert.Equal(t, uint64(150), top[1].LifetimeAmount)
	requireRanked(t, &top)
}

func TestUpdateTopSameCandidateIsNoop(t *testing.T) {
	var top [TopSize]TopEntry
	e := entry(3, 500)
	UpdateTop(&top, entry(1, 900))
	UpdateTop(&top, e)
	before := top

	UpdateTop(&top, e)
	assert.Equal(t, before, top)
}

func TestUpdateTopEmptyCandidateOnlySorts(t *testing.T) {
	var top [TopSize]TopEntry
	top[4] = entry(7, 10)
	top[2] = entry(5, 20)

	UpdateTop(&top, TopEntry{LifetimeAmount: 1_000})
	assert.Equal(t, []uint64{5, 7, 0}, ids(&top)[:3])
	requireRanked(t, &top)
}

func TestUpdateTopEvictsLowestWhenFull(t *testing.T) {
	var top [TopSize]TopEntry
	for i := uint64(1); i <= TopSize; i++ {
		UpdateTop(&top, entry(i, i*100))
	}
	require.Equal(t, uint64(TopSize), top[0].DonorID)
	require.Equal(t, uint64(1), top[TopSize-1].DonorID)

	// below the floor, stays out
	UpdateTop(&top, entry(11, 50))
	_, ok := Rank(&top, 11)
	assert.False(t, ok)

	// beats donor 1 (100)
	UpdateTop(&top, entry(12, 150))
	_, ok = Rank(&top, 1)
	assert.False(t, ok)
	rank, ok := Rank(&top, 12)
	require.True(t, ok)
	assert.Equal(t, TopSize, rank)
	requireRanked(t, &top)
}

func TestUpdateTopTieKeepsEarlierDonor(t *testing.T) {
	var top [TopSize]TopEntry
	for i := uint64(1); i <= TopSize; i++ {
		UpdateTop(&top, entry(i, 100))
	}
	UpdateTop(&top, entry(11, 100))
	_, ok := Rank(&top, 11)
	assert.False(t, ok, "a later donor with an equal amount must not displace an earlier one")
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(&top))
}

func TestUpdateTopTieWithLowerIDEntersBoard(t *testing.T) {
	var top [TopSize]TopEntry
	for i := uint64(2); i <= TopSize+1; i++ {
		UpdateTop(&top, entry(i, 100))
	}
	UpdateTop(&top, entry(1, 100))
	rank, ok := Rank(&top, 1)
	require.True(t, ok)
	assert.Equal(t, 1, rank)
	_, ok = Rank(&top, TopSize+1)
	assert.False(t, ok)
	// among equal amounts the last ranked slot, the highest id, gives way
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(&top))
}

func TestLowestSlotPrefersSentinels(t *testing.T) {
	var top [TopSize]TopEntry
	top[0] = entry(1, 100)
	top[1] = entry(2, 50)
	low := lowestSlot(&top)
	assert.True(t, top[low].IsEmpty())
}

func TestRank(t *testing.T) {
	var top [TopSize]TopEntry
	UpdateTop(&top, entry(4, 10))
	UpdateTop(&top, entry(9, 30))

	rank, ok := Rank(&top, 9)
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	rank, ok = Rank(&top, 4)
	require.True(t, ok)
	assert.Equal(t, 2, rank)

	_, ok = Rank(&top, 0)
	assert.False(t, ok)
}
