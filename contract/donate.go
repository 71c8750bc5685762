package contract

import "fmt"

// Donate moves amount lamports from the signing wallet to the treasury and
// credits the wallet's donor record, creating it and its index entry on the
// first donation. Every check and every counter increment is evaluated before
// the transfer; anything failing after it aborts the whole transaction.
func Donate(ctx *Context, acc *DonateAccounts, amount uint64, nickname *string) error {
	if err := requireSigner(acc.DonorWallet, "donor_wallet"); err != nil {
		return err
	}
	if err := requireWritable("donate", acc.Config, acc.Donor, acc.DonorIndex, acc.Treasury, acc.DonorWallet); err != nil {
		return err
	}
	if err := requireSystemProgram(acc.SystemProgram); err != nil {
		return err
	}
	if err := requireConfigAddress(ctx, acc.Config); err != nil {
		return err
	}
	wallet := acc.DonorWallet.PublicKey
	donorAddr := acc.Donor.PublicKey
	if err := requireDonorAddress(ctx, acc.Donor, wallet); err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, acc.Config.PublicKey)
	if err != nil {
		return err
	}
	if acc.Treasury.PublicKey != cfg.Treasury {
		return fmt.Errorf("treasury %s: %w", acc.Treasury.PublicKey, ErrConstraintAddress)
	}
	if cfg.Paused {
		return ErrPaused
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	donor, exists, err := loadDonor(ctx, donorAddr)
	if err != nil {
		return err
	}
	createdNew := false
	if donor.DonorID == 0 {
		id, err := takeDonorID(cfg)
		if err != nil {
			return err
		}
		*donor = Donor{DonorWallet: wallet, DonorID: id}
		createdNew = true
	} else if donor.DonorWallet != wallet {
		return ErrUnauthorized
	}

	if err := validateNickname(nickname); err != nil {
		return err
	}

	now := ctx.Now()

	lifetime, err := checkedAdd(donor.LifetimeAmount, amount)
	if err != nil {
		return err
	}
	count, err := checkedAdd(donor.DonationsCount, 1)
	if err != nil {
		return err
	}
	total, err := checkedAdd(cfg.TotalDonated, amount)
	if err != nil {
		return err
	}

	if err := payTreasury(ctx, wallet, cfg.Treasury, amount); err != nil {
		return err
	}

	donor.LifetimeAmount = lifetime
	donor.DonationsCount = count
	donor.LastDonationTs = now
	if nickname != nil && *nickname != "" {
		donor.Nickname = *nickname
	}
	cfg.TotalDonated = total

	if err := saveDonor(ctx, donorAddr, donor, exists); err != nil {
		return err
	}
	if err := ensureDonorIndex(ctx, acc.DonorIndex.PublicKey, donor.DonorID, wallet, donorAddr); err != nil {
		return err
	}

	UpdateTop(&cfg.Top, donor.TopEntry(donorAddr))
	if err := saveConfig(ctx, acc.Config.PublicKey, cfg); err != nil {
		return err
	}

	return emitDonationEvent(ctx, &DonationEvent{
		DonorWallet:         wallet,
		DonorID:             donor.DonorID,
		DonorPDA:            donorAddr,
		AmountLamports:      amount,
		LifetimeAmountAfter: donor.LifetimeAmount,
		Treasury:            cfg.Treasury,
		Timestamp:           now,
		CreatedNew:          createdNew,
	})
}
