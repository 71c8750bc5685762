package contract

import (
	"fmt"

	"donations/sdk"
)

// -----------------------------------------------------------------------------
// Config State
// -----------------------------------------------------------------------------

// loadConfig reads and decodes the singleton. An empty slot means initialize_config never ran.
func loadConfig(ctx *Context, addr sdk.Address) (*Config, error) {
	acct, err := ctx.Host.Account(addr)
	if err != nil {
		return nil, err
	}
	if acct.DataIsEmpty() {
		return nil, fmt.Errorf("config: %w", ErrAccountNotInitialized)
	}
	if acct.Owner != ctx.ProgramID {
		return nil, fmt.Errorf("config: %w", ErrAccountOwnedByWrongProgram)
	}
	cfg, err := DecodeConfig(acct.Data)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// saveConfig stores the config back into its slot.
func saveConfig(ctx *Context, addr sdk.Address, cfg *Config) error {
	data, err := EncodeConfig(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return ctx.Host.WriteData(addr, data)
}

// loadConfigAsAdmin loads the config for an admin instruction and checks the signer holds the admin role.
func loadConfigAsAdmin(ctx *Context, acc *AdminAccounts) (*Config, error) {
	if err := requireConfigAddress(ctx, acc.Config); err != nil {
		return nil, err
	}
	if err := requireSigner(acc.Admin, "admin"); err != nil {
		return nil, err
	}
	if err := requireWritable("admin", acc.Config, acc.Admin); err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, acc.Config.PublicKey)
	if err != nil {
		return nil, err
	}
	if !isAdmin(cfg, acc.Admin.PublicKey) {
		return nil, ErrUnauthorized
	}
	return cfg, nil
}

// isAdmin returns true if addr currently holds the admin role.
func isAdmin(cfg *Config, addr sdk.Address) bool {
	return cfg != nil && cfg.Admin == addr
}
