// Package client builds, signs and reads donation program transactions and
// accounts for off-chain callers.
package client

import (
	"donations/contract"
	"donations/sdk"
)

// Builder derives addresses and instructions for one program deployment.
type Builder struct {
	ProgramID sdk.Address
}

// New returns a Builder for programID; the zero address selects contract.ProgramID.
func New(programID sdk.Address) *Builder {
	if programID.IsZero() {
		programID = contract.ProgramID
	}
	return &Builder{ProgramID: programID}
}

func (b *Builder) ConfigPDA() (sdk.Address, error) {
	addr, _, err := contract.ConfigAddress(b.ProgramID)
	return addr, err
}

func (b *Builder) DonorPDA(wallet sdk.Address) (sdk.Address, error) {
	addr, _, err := contract.DonorAddress(b.ProgramID, wallet)
	return addr, err
}

func (b *Builder) DonorIndexPDA(donorID uint64) (sdk.Address, error) {
	addr, _, err := contract.DonorIndexAddress(b.ProgramID, donorID)
	return addr, err
}
