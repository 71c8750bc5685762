package contract

import (
	"fmt"

	"donations/sdk"
)

// -----------------------------------------------------------------------------
// Config Initialization
// -----------------------------------------------------------------------------

// InitializeConfig creates the singleton with the signer as admin. It can run once.
func InitializeConfig(ctx *Context, acc *InitializeConfigAccounts, treasury sdk.Address) error {
	if err := requireSigner(acc.Admin, "admin"); err != nil {
		return err
	}
	if err := requireWritable("initialize_config", acc.Admin, acc.Config); err != nil {
		return err
	}
	if err := requireSystemProgram(acc.SystemProgram); err != nil {
		return err
	}
	if err := requireConfigAddress(ctx, acc.Config); err != nil {
		return err
	}

	configAddr := acc.Config.PublicKey
	existing, err := ctx.Host.Account(configAddr)
	if err != nil {
		return err
	}
	if !existing.DataIsEmpty() {
		return ErrAlreadyInitialized
	}

	admin := acc.Admin.PublicKey
	if err := ctx.Host.CreateAccount(admin, configAddr, ConfigSize); err != nil {
		return fmt.Errorf("allocate config: %w", err)
	}
	if err := saveConfig(ctx, configAddr, NewConfig(admin, treasury)); err != nil {
		return err
	}
	emitConfigInitializedEvent(ctx, admin, treasury)
	return nil
}

// -----------------------------------------------------------------------------
// Admin Mutations
// -----------------------------------------------------------------------------

// SetTreasury redirects future donations.
func SetTreasury(ctx *Context, acc *AdminAccounts, newTreasury sdk.Address) error {
	cfg, err := loadConfigAsAdmin(ctx, acc)
	if err != nil {
		return err
	}
	old := cfg.Treasury
	cfg.Treasury = newTreasury
	if err := saveConfig(ctx, acc.Config.PublicKey, cfg); err != nil {
		return err
	}
	emitTreasuryChangedEvent(ctx, acc.Admin.PublicKey, old, newTreasury)
	return nil
}

// SetPaused toggles whether donations are accepted.
func SetPaused(ctx *Context, acc *AdminAccounts, paused bool) error {
	cfg, err := loadConfigAsAdmin(ctx, acc)
	if err != nil {
		return err
	}
	cfg.Paused = paused
	if err := saveConfig(ctx, acc.Config.PublicKey, cfg); err != nil {
		return err
	}
	emitPausedChangedEvent(ctx, acc.Admin.PublicKey, paused)
	return nil
}

// SetAdmin hands the admin role to newAdmin; the caller loses it immediately.
func SetAdmin(ctx *Context, acc *AdminAccounts, newAdmin sdk.Address) error {
	cfg, err := loadConfigAsAdmin(ctx, acc)
	if err != nil {
		return err
	}
	old := cfg.Admin
	cfg.Admin = newAdmin
	if err := saveConfig(ctx, acc.Config.PublicKey, cfg); err != nil {
		return err
	}
	emitAdminChangedEvent(ctx, old, newAdmin)
	return nil
}
