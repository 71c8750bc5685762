package contract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedAdd(t *testing.T) {
	sum, err := checkedAdd(40, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), sum)

	sum, err = checkedAdd(math.MaxUint64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, err = checkedAdd(math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestTakeDonorIDIsSequential(t *testing.T) {
	cfg := NewConfig(ProgramID, ProgramID)
	for want := uint64(1); want <= 3; want++ {
		id, err := takeDonorID(cfg)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	assert.Equal(t, uint64(4), cfg.NextDonorID)
}

func TestTakeDonorIDOverflowLeavesCounter(t *testing.T) {
	cfg := &Config{NextDonorID: math.MaxUint64}
	_, err := takeDonorID(cfg)
	require.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, uint64(math.MaxUint64), cfg.NextDonorID)
}

func TestValidateNickname(t *testing.T) {
	require.NoError(t, validateNickname(nil))
	require.NoError(t, validateNickname(strptr("")))
	require.NoError(t, validateNickname(strptr(string(make([]byte, MaxNicknameLen)))))
	require.ErrorIs(t, validateNickname(strptr(string(make([]byte, MaxNicknameLen+1)))), ErrNicknameTooLong)

	// limit is in bytes, not runes
	require.ErrorIs(t, validateNickname(strptr("ééééééééééééééééé")), ErrNicknameTooLong)
}

func TestValidateDescription(t *testing.T) {
	require.NoError(t, validateDescription(nil))
	require.NoError(t, validateDescription(strptr(string(make([]byte, MaxDescriptionLen)))))
	require.ErrorIs(t, validateDescription(strptr(string(make([]byte, MaxDescriptionLen+1)))), ErrDescriptionTooLong)
}

func TestErrorFromCode(t *testing.T) {
	e, ok := ErrorFromCode(6000)
	require.True(t, ok)
	assert.Same(t, ErrPaused, e)

	e, ok = ErrorFromCode(3012)
	require.True(t, ok)
	assert.Same(t, ErrAccountNotInitialized, e)

	_, ok = ErrorFromCode(42)
	assert.False(t, ok)
	assert.Equal(t, "Paused (6000): Donations are paused", ErrPaused.Error())
}
