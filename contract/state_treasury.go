package contract

import (
	"fmt"

	"donations/sdk"
)

// payTreasury moves a donation from the signing wallet to the configured treasury.
// Insufficient balance surfaces as the host error and aborts the transaction.
func payTreasury(ctx *Context, from, treasury sdk.Address, amount uint64) error {
	if err := ctx.Host.Transfer(from, treasury, amount); err != nil {
		return fmt.Errorf("transfer %s to treasury: %w", sdk.Lamports(amount), err)
	}
	return nil
}
