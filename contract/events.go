package contract

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	bin "github.com/gagliardetto/binary"

	"donations/sdk"
)

// ErrUnknownEvent is returned by DecodeEvent for payloads from other programs or event kinds.
var ErrUnknownEvent = errors.New("contract: unknown event")

// DonationEvent is published once per accepted donation.
type DonationEvent struct {
	DonorWallet         sdk.Address `json:"donorWallet"`
	DonorID             uint64      `json:"donorId"`
	DonorPDA            sdk.Address `json:"donorPda"`
	AmountLamports      uint64      `json:"amountLamports"`
	LifetimeAmountAfter uint64      `json:"lifetimeAmountAfter"`
	Treasury            sdk.Address `json:"treasury"`
	Timestamp           int64       `json:"timestamp"`
	CreatedNew          bool        `json:"createdNew"`
}

// ProfileUpdatedEvent is published when a donor edits nickname or description.
type ProfileUpdatedEvent struct {
	DonorWallet sdk.Address `json:"donorWallet"`
	DonorID     uint64      `json:"donorId"`
	DonorPDA    sdk.Address `json:"donorPda"`
	Timestamp   int64       `json:"timestamp"`
}

var (
	donationEventDiscriminator       = sighash("event", "DonationEvent")
	profileUpdatedEventDiscriminator = sighash("event", "ProfileUpdatedEvent")
)

func (e *DonationEvent) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeAddress(e.DonorWallet)
	w.writeUint64(e.DonorID)
	w.writeAddress(e.DonorPDA)
	w.writeUint64(e.AmountLamports)
	w.writeUint64(e.LifetimeAmountAfter)
	w.writeAddress(e.Treasury)
	w.writeInt64(e.Timestamp)
	w.writeBool(e.CreatedNew)
	return w.err
}

func (e *DonationEvent) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	e.DonorWallet = r.readAddress()
	e.DonorID = r.readUint64()
	e.DonorPDA = r.readAddress()
	e.AmountLamports = r.readUint64()
	e.LifetimeAmountAfter = r.readUint64()
	e.Treasury = r.readAddress()
	e.Timestamp = r.readInt64()
	e.CreatedNew = r.readBool()
	return r.err
}

func (e *ProfileUpdatedEvent) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeAddress(e.DonorWallet)
	w.writeUint64(e.DonorID)
	w.writeAddress(e.DonorPDA)
	w.writeInt64(e.Timestamp)
	return w.err
}

func (e *ProfileUpdatedEvent) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	e.DonorWallet = r.readAddress()
	e.DonorID = r.readUint64()
	e.DonorPDA = r.readAddress()
	e.Timestamp = r.readInt64()
	return r.err
}

// emitDonationEvent appends the event to the transaction log as a data line.
func emitDonationEvent(ctx *Context, ev *DonationEvent) error {
	data, err := encodeTagged(donationEventDiscriminator, ev)
	if err != nil {
		return fmt.Errorf("encode donation event: %w", err)
	}
	ctx.Host.LogData(data)
	return nil
}

func emitProfileUpdatedEvent(ctx *Context, ev *ProfileUpdatedEvent) error {
	data, err := encodeTagged(profileUpdatedEventDiscriminator, ev)
	if err != nil {
		return fmt.Errorf("encode profile event: %w", err)
	}
	ctx.Host.LogData(data)
	return nil
}

// DecodeEvent turns one data payload back into *DonationEvent or *ProfileUpdatedEvent.
func DecodeEvent(data []byte) (any, error) {
	if len(data) < discriminatorSize {
		return nil, ErrUnknownEvent
	}
	tag, body := data[:discriminatorSize], data[discriminatorSize:]
	switch {
	case bytes.Equal(tag, donationEventDiscriminator[:]):
		ev := &DonationEvent{}
		if err := ev.UnmarshalWithDecoder(bin.NewBorshDecoder(body)); err != nil {
			return nil, fmt.Errorf("decode donation event: %w", err)
		}
		return ev, nil
	case bytes.Equal(tag, profileUpdatedEventDiscriminator[:]):
		ev := &ProfileUpdatedEvent{}
		if err := ev.UnmarshalWithDecoder(bin.NewBorshDecoder(body)); err != nil {
			return nil, fmt.Errorf("decode profile event: %w", err)
		}
		return ev, nil
	}
	return nil, ErrUnknownEvent
}

// -----------------------------------------------------------------------------
// Admin log lines
// -----------------------------------------------------------------------------

// emitConfigInitializedEvent writes a tiny "ci" line so watchers see who got the admin seat.
func emitConfigInitializedEvent(ctx *Context, admin, treasury sdk.Address) {
	ctx.Host.Log(fmt.Sprintf(
		"ci|admin:%s|treasury:%s",
		admin,
		treasury,
	))
}

// emitTreasuryChangedEvent keeps the old value so redirects of funds can be audited from logs only.
func emitTreasuryChangedEvent(ctx *Context, by, old, updated sdk.Address) {
	ctx.Host.Log(fmt.Sprintf(
		"st|by:%s|old:%s|new:%s",
		by,
		old,
		updated,
	))
}

func emitPausedChangedEvent(ctx *Context, by sdk.Address, paused bool) {
	ctx.Host.Log(fmt.Sprintf(
		"sp|by:%s|p:%s",
		by,
		strconv.FormatBool(paused),
	))
}

// emitAdminChangedEvent mirrors the treasury line for admin rotation.
func emitAdminChangedEvent(ctx *Context, old, updated sdk.Address) {
	ctx.Host.Log(fmt.Sprintf(
		"sa|old:%s|new:%s",
		old,
		updated,
	))
}
