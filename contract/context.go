package contract

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"donations/sdk"
)

// Context is what a handler runs against: the host of the current transaction
// and the address the program was invoked under.
type Context struct {
	Host      sdk.Host
	ProgramID sdk.Address
}

// Now returns the timestamp of the running transaction.
func (c *Context) Now() int64 { return c.Host.Now() }

// -----------------------------------------------------------------------------
// Account lists, in the order clients pass them
// -----------------------------------------------------------------------------

type InitializeConfigAccounts struct {
	Admin         *solana.AccountMeta
	Config        *solana.AccountMeta
	SystemProgram *solana.AccountMeta
}

type DonateAccounts struct {
	Config        *solana.AccountMeta
	Donor         *solana.AccountMeta
	DonorIndex    *solana.AccountMeta
	Treasury      *solana.AccountMeta
	DonorWallet   *solana.AccountMeta
	SystemProgram *solana.AccountMeta
}

type UpdateProfileAccounts struct {
	Donor       *solana.AccountMeta
	DonorWallet *solana.AccountMeta
}

// AdminAccounts is shared by set_treasury, set_paused and set_admin.
type AdminAccounts struct {
	Config *solana.AccountMeta
	Admin  *solana.AccountMeta
}

// bindAccounts copies metas into dst positionally; extra metas are ignored.
func bindAccounts(metas []*solana.AccountMeta, dst ...**solana.AccountMeta) error {
	if len(metas) < len(dst) {
		return fmt.Errorf("%w: got %d, want %d", ErrNotEnoughAccountKeys, len(metas), len(dst))
	}
	for i, d := range dst {
		*d = metas[i]
	}
	return nil
}

func (a *InitializeConfigAccounts) bind(metas []*solana.AccountMeta) error {
	return bindAccounts(metas, &a.Admin, &a.Config, &a.SystemProgram)
}

func (a *DonateAccounts) bind(metas []*solana.AccountMeta) error {
	return bindAccounts(metas, &a.Config, &a.Donor, &a.DonorIndex, &a.Treasury, &a.DonorWallet, &a.SystemProgram)
}

func (a *UpdateProfileAccounts) bind(metas []*solana.AccountMeta) error {
	return bindAccounts(metas, &a.Donor, &a.DonorWallet)
}

func (a *AdminAccounts) bind(metas []*solana.AccountMeta) error {
	return bindAccounts(metas, &a.Config, &a.Admin)
}

// -----------------------------------------------------------------------------
// Constraints
// -----------------------------------------------------------------------------

func requireSigner(meta *solana.AccountMeta, name string) error {
	if !meta.IsSigner {
		return fmt.Errorf("%s: %w", name, ErrMissingSignature)
	}
	return nil
}

func requireWritable(name string, metas ...*solana.AccountMeta) error {
	for _, m := range metas {
		if !m.IsWritable {
			return fmt.Errorf("%s %s: %w", name, m.PublicKey, ErrConstraintMut)
		}
	}
	return nil
}

func requireSystemProgram(meta *solana.AccountMeta) error {
	if meta.PublicKey != sdk.SystemProgramID {
		return fmt.Errorf("system_program %s: %w", meta.PublicKey, ErrInvalidProgramID)
	}
	return nil
}

// requireConfigAddress pins the config account to its canonical address.
func requireConfigAddress(ctx *Context, meta *solana.AccountMeta) error {
	want, _, err := ConfigAddress(ctx.ProgramID)
	if err != nil {
		return err
	}
	if meta.PublicKey != want {
		return fmt.Errorf("config %s: %w", meta.PublicKey, ErrInvalidAccount)
	}
	return nil
}

// requireDonorAddress pins the donor account to the record of wallet.
func requireDonorAddress(ctx *Context, meta *solana.AccountMeta, wallet sdk.Address) error {
	want, _, err := DonorAddress(ctx.ProgramID, wallet)
	if err != nil {
		return err
	}
	if meta.PublicKey != want {
		return fmt.Errorf("donor %s: %w", meta.PublicKey, ErrInvalidAccount)
	}
	return nil
}
