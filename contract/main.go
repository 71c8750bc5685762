// Package contract is the donation ledger program: per wallet donor records,
// a donor id index, a top ten leaderboard and admin controls, executed by an
// sdk host one instruction at a time.
package contract

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"donations/sdk"
)

// instruction binds accounts, decodes args and runs one handler.
type instruction struct {
	name string
	run  func(ctx *Context, metas []*solana.AccountMeta, data []byte) error
}

var instructions = map[[8]byte]instruction{
	InstructionDiscriminator(InstructionInitializeConfig): {"InitializeConfig", runInitializeConfig},
	InstructionDiscriminator(InstructionDonate):           {"Donate", runDonate},
	InstructionDiscriminator(InstructionUpdateProfile):    {"UpdateProfile", runUpdateProfile},
	InstructionDiscriminator(InstructionSetTreasury):      {"SetTreasury", runSetTreasury},
	InstructionDiscriminator(InstructionSetPaused):        {"SetPaused", runSetPaused},
	InstructionDiscriminator(InstructionSetAdmin):         {"SetAdmin", runSetAdmin},
}

// Process is the program entry point registered with the host.
// Example payload: runtime.RegisterProgram(contract.ProgramID, contract.Process)
func Process(inv *sdk.Invocation) error {
	if len(inv.Data) < discriminatorSize {
		return ErrInvalidInstruction
	}
	var tag [8]byte
	copy(tag[:], inv.Data[:discriminatorSize])
	ix, ok := instructions[tag]
	if !ok {
		return fmt.Errorf("%w: %x", ErrInvalidInstruction, tag)
	}
	ctx := &Context{Host: inv.Host, ProgramID: inv.ProgramID}
	ctx.Host.Log("Instruction: " + ix.name)
	return ix.run(ctx, inv.Accounts, inv.Data[discriminatorSize:])
}

func runInitializeConfig(ctx *Context, metas []*solana.AccountMeta, data []byte) error {
	var acc InitializeConfigAccounts
	if err := acc.bind(metas); err != nil {
		return err
	}
	var args InitializeConfigArgs
	if err := decodeArgs(data, &args); err != nil {
		return err
	}
	return InitializeConfig(ctx, &acc, args.Treasury)
}

func runDonate(ctx *Context, metas []*solana.AccountMeta, data []byte) error {
	var acc DonateAccounts
	if err := acc.bind(metas); err != nil {
		return err
	}
	var args DonateArgs
	if err := decodeArgs(data, &args); err != nil {
		return err
	}
	return Donate(ctx, &acc, args.Amount, args.Nickname)
}

func runUpdateProfile(ctx *Context, metas []*solana.AccountMeta, data []byte) error {
	var acc UpdateProfileAccounts
	if err := acc.bind(metas); err != nil {
		return err
	}
	var args UpdateProfileArgs
	if err := decodeArgs(data, &args); err != nil {
		return err
	}
	return UpdateProfile(ctx, &acc, args.Nickname, args.Description)
}

func runSetTreasury(ctx *Context, metas []*solana.AccountMeta, data []byte) error {
	var acc AdminAccounts
	if err := acc.bind(metas); err != nil {
		return err
	}
	var args SetTreasuryArgs
	if err := decodeArgs(data, &args); err != nil {
		return err
	}
	return SetTreasury(ctx, &acc, args.NewTreasury)
}

func runSetPaused(ctx *Context, metas []*solana.AccountMeta, data []byte) error {
	var acc AdminAccounts
	if err := acc.bind(metas); err != nil {
		return err
	}
	var args SetPausedArgs
	if err := decodeArgs(data, &args); err != nil {
		return err
	}
	return SetPaused(ctx, &acc, args.Paused)
}

func runSetAdmin(ctx *Context, metas []*solana.AccountMeta, data []byte) error {
	var acc AdminAccounts
	if err := acc.bind(metas); err != nil {
		return err
	}
	var args SetAdminArgs
	if err := decodeArgs(data, &args); err != nil {
		return err
	}
	return SetAdmin(ctx, &acc, args.NewAdmin)
}
