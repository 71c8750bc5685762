package contract

import (
	"fmt"

	bin "github.com/gagliardetto/binary"

	"donations/sdk"
)

// InstructionDiscriminator is the 8 byte prefix selecting an instruction.
// Example payload: InstructionDiscriminator(InstructionDonate)
func InstructionDiscriminator(name string) [8]byte { return sighash("global", name) }

// Args is implemented by every instruction payload.
type Args interface {
	bin.BinaryMarshaler
	bin.BinaryUnmarshaler
	InstructionName() string
}

// EncodeInstruction prefixes the borsh payload with its instruction discriminator.
// Example payload: EncodeInstruction(&DonateArgs{Amount: 100})
func EncodeInstruction(args Args) ([]byte, error) {
	return encodeTagged(InstructionDiscriminator(args.InstructionName()), args)
}

// decodeArgs reads an instruction payload; trailing bytes are ignored.
func decodeArgs(data []byte, args Args) error {
	if err := args.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return fmt.Errorf("%s: %w: %v", args.InstructionName(), ErrInstructionDidNotDeserialize, err)
	}
	return nil
}

type InitializeConfigArgs struct {
	Treasury sdk.Address `json:"treasury"`
}

func (a *InitializeConfigArgs) InstructionName() string { return InstructionInitializeConfig }

func (a *InitializeConfigArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeAddress(a.Treasury)
	return w.err
}

func (a *InitializeConfigArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	a.Treasury = r.readAddress()
	return r.err
}

// DonateArgs carries the amount in lamports and an optional nickname; an empty
// nickname leaves the stored one untouched.
type DonateArgs struct {
	Amount   uint64  `json:"amount"`
	Nickname *string `json:"nickname,omitempty"`
}

func (a *DonateArgs) InstructionName() string { return InstructionDonate }

func (a *DonateArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeUint64(a.Amount)
	w.writeOptionalString(a.Nickname)
	return w.err
}

func (a *DonateArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	a.Amount = r.readUint64()
	a.Nickname = r.readOptionalString(maxPayloadString)
	return r.err
}

type UpdateProfileArgs struct {
	Nickname    *string `json:"nickname,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (a *UpdateProfileArgs) InstructionName() string { return InstructionUpdateProfile }

func (a *UpdateProfileArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeOptionalString(a.Nickname)
	w.writeOptionalString(a.Description)
	return w.err
}

func (a *UpdateProfileArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	a.Nickname = r.readOptionalString(maxPayloadString)
	a.Description = r.readOptionalString(maxPayloadString)
	return r.err
}

type SetTreasuryArgs struct {
	NewTreasury sdk.Address `json:"newTreasury"`
}

func (a *SetTreasuryArgs) InstructionName() string { return InstructionSetTreasury }

func (a *SetTreasuryArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeAddress(a.NewTreasury)
	return w.err
}

func (a *SetTreasuryArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	a.NewTreasury = r.readAddress()
	return r.err
}

type SetPausedArgs struct {
	Paused bool `json:"paused"`
}

func (a *SetPausedArgs) InstructionName() string { return InstructionSetPaused }

func (a *SetPausedArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeBool(a.Paused)
	return w.err
}

func (a *SetPausedArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	a.Paused = r.readBool()
	return r.err
}

type SetAdminArgs struct {
	NewAdmin sdk.Address `json:"newAdmin"`
}

func (a *SetAdminArgs) InstructionName() string { return InstructionSetAdmin }

func (a *SetAdminArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeAddress(a.NewAdmin)
	return w.err
}

func (a *SetAdminArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	a.NewAdmin = r.readAddress()
	return r.err
}
