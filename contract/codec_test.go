package contract

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSizes(t *testing.T) {
	assert.Equal(t, 80, TopEntrySize)
	assert.Equal(t, 889, ConfigSize)
	assert.Equal(t, 368, DonorSize)
	assert.Equal(t, 80, DonorIndexSize)
}

func TestEncodeConfigLayout(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	treasury := solana.NewWallet().PublicKey()
	cfg := NewConfig(admin, treasury)
	cfg.Paused = true
	cfg.TotalDonated = 250
	cfg.Top[0] = TopEntry{DonorID: 2, DonorWallet: admin, DonorPDA: treasury, LifetimeAmount: 150}

	data, err := EncodeConfig(cfg)
	require.NoError(t, err)
	require.Len(t, data, ConfigSize)

	assert.Equal(t, configDiscriminator[:], data[:8])
	assert.Equal(t, admin[:], data[8:40])
	assert.Equal(t, treasury[:], data[40:72])
	assert.Equal(t, byte(1), data[72])
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(data[73:81]))
	assert.Equal(t, uint64(250), binary.LittleEndian.Uint64(data[81:89]))
	assert.Equal(t, uint64(2), binary.LittleEndian.Uint64(data[89:97]))
	assert.Equal(t, uint64(150), binary.LittleEndian.Uint64(data[89+72:89+80]))

	got, err := DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEncodeDonorReservesStringCapacity(t *testing.T) {
	d := &Donor{
		DonorWallet:    solana.NewWallet().PublicKey(),
		DonorID:        7,
		LifetimeAmount: 1_000,
		DonationsCount: 3,
		Nickname:       string(make([]byte, MaxNicknameLen)),
		Description:    string(make([]byte, MaxDescriptionLen)),
		LastDonationTs: 1_756_857_600,
	}
	data, err := EncodeDonor(d)
	require.NoError(t, err)
	require.Len(t, data, DonorSize)

	got, err := DecodeDonor(data)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDecodeZeroBufferIsDefault(t *testing.T) {
	cfg, err := DecodeConfig(make([]byte, ConfigSize))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	donor, err := DecodeDonor(make([]byte, DonorSize))
	require.NoError(t, err)
	assert.Zero(t, donor.DonorID)

	idx, err := DecodeDonorIndex(make([]byte, DonorIndexSize))
	require.NoError(t, err)
	assert.Equal(t, &DonorIndex{}, idx)
}

func TestDecodeRejectsForeignDiscriminator(t *testing.T) {
	data, err := EncodeDonorIndex(&DonorIndex{DonorID: 1})
	require.NoError(t, err)

	_, err = DecodeDonor(data)
	require.ErrorIs(t, err, ErrAccountDiscriminatorMismatch)
	_, err = DecodeConfig([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrAccountDiscriminatorMismatch)
}

func TestDecodeTruncatedRecord(t *testing.T) {
	data := append(donorDiscriminator[:], 1, 2, 3)
	_, err := DecodeDonor(data)
	require.ErrorIs(t, err, ErrAccountDidNotDeserialize)
}

func TestDecodeDonorRejectsOversizedNickname(t *testing.T) {
	data, err := EncodeDonor(&Donor{DonorID: 1})
	require.NoError(t, err)
	// nickname length prefix sits after wallet, id, amount and count
	binary.LittleEndian.PutUint32(data[8+32+24:], MaxNicknameLen+1)
	_, err = DecodeDonor(data)
	require.ErrorIs(t, err, ErrAccountDidNotDeserialize)
}

func TestEncodeInstructionDonate(t *testing.T) {
	data, err := EncodeInstruction(&DonateArgs{Amount: 100, Nickname: strptr("alice")})
	require.NoError(t, err)

	disc := InstructionDiscriminator(InstructionDonate)
	assert.Equal(t, disc[:], data[:8])
	assert.Equal(t, uint64(100), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, byte(1), data[16])
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(data[17:21]))
	assert.Equal(t, "alice", string(data[21:]))

	var args DonateArgs
	require.NoError(t, decodeArgs(data[8:], &args))
	require.NotNil(t, args.Nickname)
	assert.Equal(t, "alice", *args.Nickname)

	data, err = EncodeInstruction(&DonateArgs{Amount: 1})
	require.NoError(t, err)
	assert.Len(t, data, 8+8+1)
}

func TestDecodeArgsShortPayload(t *testing.T) {
	var args SetTreasuryArgs
	err := decodeArgs([]byte{1, 2}, &args)
	require.ErrorIs(t, err, ErrInstructionDidNotDeserialize)
}

func TestDecodeEvent(t *testing.T) {
	ev := &ProfileUpdatedEvent{DonorWallet: solana.NewWallet().PublicKey(), DonorID: 4, Timestamp: 99}
	data, err := encodeTagged(profileUpdatedEventDiscriminator, ev)
	require.NoError(t, err)

	got, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, ev, got)

	_, err = DecodeEvent([]byte("not an event"))
	require.ErrorIs(t, err, ErrUnknownEvent)
}
