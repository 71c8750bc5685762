package client

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donations/contract"
)

// eventChunk encodes v behind its anchor event tag, base64 as it appears in logs.
func eventChunk(t *testing.T, name string, v bin.BinaryMarshaler) string {
	t.Helper()
	tag := sha256.Sum256([]byte("event:" + name))
	var buf bytes.Buffer
	buf.Write(tag[:8])
	require.NoError(t, v.MarshalWithEncoder(bin.NewBorshEncoder(&buf)))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestParseEvents(t *testing.T) {
	t.Parallel()
	donation := &contract.DonationEvent{
		DonorWallet:         solana.NewWallet().PublicKey(),
		DonorID:             4,
		DonorPDA:            solana.NewWallet().PublicKey(),
		AmountLamports:      250,
		LifetimeAmountAfter: 900,
		Treasury:            solana.NewWallet().PublicKey(),
		Timestamp:           1_756_857_600,
		CreatedNew:          true,
	}
	profile := &contract.ProfileUpdatedEvent{
		DonorWallet: donation.DonorWallet,
		DonorID:     4,
		DonorPDA:    donation.DonorPDA,
		Timestamp:   1_756_857_601,
	}
	foreign := base64.StdEncoding.EncodeToString([]byte("some other program's event"))

	logs := []string{
		"Program " + contract.ProgramID.String() + " invoke [1]",
		"Program log: Instruction: Donate",
		"Program data: " + eventChunk(t, "DonationEvent", donation),
		"Program data: " + foreign + " " + eventChunk(t, "ProfileUpdatedEvent", profile),
		"Program " + contract.ProgramID.String() + " success",
	}

	events, err := ParseEvents(logs)
	require.NoError(t, err)
	require.Len(t, events.Donations, 1)
	require.Len(t, events.ProfileUpdates, 1)
	assert.Equal(t, donation, events.Donations[0])
	assert.Equal(t, profile, events.ProfileUpdates[0])
}

func TestParseEventsEmpty(t *testing.T) {
	t.Parallel()
	events, err := ParseEvents(nil)
	require.NoError(t, err)
	assert.Empty(t, events.Donations)
	assert.Empty(t, events.ProfileUpdates)
}

func TestParseEventsBadPayload(t *testing.T) {
	t.Parallel()
	_, err := ParseEvents([]string{"Program data: not*base64"})
	require.Error(t, err)

	// right tag, truncated body
	chunk := eventChunk(t, "DonationEvent", &contract.DonationEvent{})
	raw, err := base64.StdEncoding.DecodeString(chunk)
	require.NoError(t, err)
	_, err = ParseEvents([]string{"Program data: " + base64.StdEncoding.EncodeToString(raw[:20])})
	require.Error(t, err)
}
