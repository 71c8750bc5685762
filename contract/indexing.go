package contract

// maintaining the donor id -> wallet index so donors can be listed by id

import (
	"fmt"

	"donations/sdk"
)

// ensureDonorIndex makes sure the index slot for donorID exists and points at
// wallet/donorPDA. Calling it again with the same triple is a no-op.
//
// A slot that is allocated and owned by the program but still holds donor id 0
// was never populated; it is filled in rather than reported as a mismatch.
func ensureDonorIndex(ctx *Context, indexAddr sdk.Address, donorID uint64, wallet, donorPDA sdk.Address) error {
	expected, _, err := DonorIndexAddress(ctx.ProgramID, donorID)
	if err != nil {
		return err
	}
	if expected != indexAddr {
		return fmt.Errorf("%w: want %s for donor %d, got %s", ErrInvalidDonorIndex, expected, donorID, indexAddr)
	}

	want := DonorIndex{DonorID: donorID, DonorWallet: wallet, DonorPDA: donorPDA}

	acct, err := ctx.Host.Account(indexAddr)
	if err != nil {
		return err
	}
	if acct.DataIsEmpty() {
		if err := ctx.Host.CreateAccount(wallet, indexAddr, DonorIndexSize); err != nil {
			return fmt.Errorf("allocate donor index %d: %w", donorID, err)
		}
		return writeDonorIndex(ctx, indexAddr, &want)
	}

	if acct.Owner != ctx.ProgramID {
		return fmt.Errorf("%w: %s owned by %s", ErrInvalidDonorIndexOwner, indexAddr, acct.Owner)
	}
	stored, err := DecodeDonorIndex(acct.Data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDonorIndex, err)
	}
	if stored.DonorID == 0 {
		return writeDonorIndex(ctx, indexAddr, &want)
	}
	if *stored != want {
		return fmt.Errorf("%w: slot %s holds donor %d", ErrInvalidDonorIndex, indexAddr, stored.DonorID)
	}
	return nil
}

func writeDonorIndex(ctx *Context, addr sdk.Address, x *DonorIndex) error {
	data, err := EncodeDonorIndex(x)
	if err != nil {
		return fmt.Errorf("encode donor index: %w", err)
	}
	return ctx.Host.WriteData(addr, data)
}
