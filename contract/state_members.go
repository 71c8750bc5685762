package contract

import (
	"fmt"

	"donations/sdk"
)

// loadDonor returns the stored donor, or a blank record and false when the slot
// has not been allocated yet. A blank record has DonorID 0.
func loadDonor(ctx *Context, addr sdk.Address) (*Donor, bool, error) {
	acct, err := ctx.Host.Account(addr)
	if err != nil {
		return nil, false, err
	}
	if acct.DataIsEmpty() {
		return &Donor{}, false, nil
	}
	if acct.Owner != ctx.ProgramID {
		return nil, false, fmt.Errorf("donor: %w", ErrAccountOwnedByWrongProgram)
	}
	donor, err := DecodeDonor(acct.Data)
	if err != nil {
		return nil, false, fmt.Errorf("donor: %w", err)
	}
	return donor, true, nil
}

// saveDonor writes the donor, allocating its slot first when it does not exist.
// The wallet pays for the allocation.
func saveDonor(ctx *Context, addr sdk.Address, donor *Donor, exists bool) error {
	data, err := EncodeDonor(donor)
	if err != nil {
		return fmt.Errorf("encode donor: %w", err)
	}
	if !exists {
		if err := ctx.Host.CreateAccount(donor.DonorWallet, addr, DonorSize); err != nil {
			return fmt.Errorf("allocate donor: %w", err)
		}
	}
	return ctx.Host.WriteData(addr, data)
}
