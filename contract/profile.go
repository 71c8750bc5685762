package contract

// UpdateProfile lets a donor edit nickname and description. A nil field is left
// as is; no funds move and the leaderboard is not touched.
func UpdateProfile(ctx *Context, acc *UpdateProfileAccounts, nickname, description *string) error {
	if err := requireSigner(acc.DonorWallet, "donor_wallet"); err != nil {
		return err
	}
	if err := requireWritable("update_profile", acc.Donor); err != nil {
		return err
	}
	wallet := acc.DonorWallet.PublicKey
	if err := requireDonorAddress(ctx, acc.Donor, wallet); err != nil {
		return err
	}

	donorAddr := acc.Donor.PublicKey
	donor, exists, err := loadDonor(ctx, donorAddr)
	if err != nil {
		return err
	}
	if !exists || donor.DonorID == 0 {
		return ErrAccountNotInitialized
	}
	if donor.DonorWallet != wallet {
		return ErrUnauthorized
	}

	if err := validateNickname(nickname); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	if nickname != nil {
		donor.Nickname = *nickname
	}
	if description != nil {
		donor.Description = *description
	}

	if err := saveDonor(ctx, donorAddr, donor, true); err != nil {
		return err
	}
	return emitProfileUpdatedEvent(ctx, &ProfileUpdatedEvent{
		DonorWallet: donor.DonorWallet,
		DonorID:     donor.DonorID,
		DonorPDA:    donorAddr,
		Timestamp:   ctx.Now(),
	})
}
