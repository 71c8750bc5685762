package client

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"donations/contract"
	"donations/sdk"
)

func (b *Builder) instruction(args contract.Args, metas ...*solana.AccountMeta) (solana.Instruction, error) {
	data, err := contract.EncodeInstruction(args)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", args.InstructionName(), err)
	}
	return solana.NewInstruction(b.ProgramID, solana.AccountMetaSlice(metas), data), nil
}

// InitializeConfig creates the config with admin as the paying signer.
func (b *Builder) InitializeConfig(admin, treasury sdk.Address) (solana.Instruction, error) {
	config, err := b.ConfigPDA()
	if err != nil {
		return nil, err
	}
	return b.instruction(&contract.InitializeConfigArgs{Treasury: treasury},
		solana.Meta(admin).SIGNER().WRITE(),
		solana.Meta(config).WRITE(),
		solana.Meta(solana.SystemProgramID),
	)
}

// Donate needs the donor id the wallet has or will get, because the index slot
// is derived from it. Reader.DonateAccounts resolves it.
func (b *Builder) Donate(wallet, treasury sdk.Address, donorID, amount uint64, nickname *string) (solana.Instruction, error) {
	config, err := b.ConfigPDA()
	if err != nil {
		return nil, err
	}
	donor, err := b.DonorPDA(wallet)
	if err != nil {
		return nil, err
	}
	index, err := b.DonorIndexPDA(donorID)
	if err != nil {
		return nil, err
	}
	return b.instruction(&contract.DonateArgs{Amount: amount, Nickname: nickname},
		solana.Meta(config).WRITE(),
		solana.Meta(donor).WRITE(),
		solana.Meta(index).WRITE(),
		solana.Meta(treasury).WRITE(),
		solana.Meta(wallet).SIGNER().WRITE(),
		solana.Meta(solana.SystemProgramID),
	)
}

func (b *Builder) UpdateProfile(wallet sdk.Address, nickname, description *string) (solana.Instruction, error) {
	donor, err := b.DonorPDA(wallet)
	if err != nil {
		return nil, err
	}
	return b.instruction(&contract.UpdateProfileArgs{Nickname: nickname, Description: description},
		solana.Meta(donor).WRITE(),
		solana.Meta(wallet).SIGNER(),
	)
}

func (b *Builder) SetTreasury(admin, newTreasury sdk.Address) (solana.Instruction, error) {
	return b.adminInstruction(admin, &contract.SetTreasuryArgs{NewTreasury: newTreasury})
}

func (b *Builder) SetPaused(admin sdk.Address, paused bool) (solana.Instruction, error) {
	return b.adminInstruction(admin, &contract.SetPausedArgs{Paused: paused})
}

func (b *Builder) SetAdmin(admin, newAdmin sdk.Address) (solana.Instruction, error) {
	return b.adminInstruction(admin, &contract.SetAdminArgs{NewAdmin: newAdmin})
}

func (b *Builder) adminInstruction(admin sdk.Address, args contract.Args) (solana.Instruction, error) {
	config, err := b.ConfigPDA()
	if err != nil {
		return nil, err
	}
	return b.instruction(args,
		solana.Meta(config).WRITE(),
		solana.Meta(admin).SIGNER().WRITE(),
	)
}
