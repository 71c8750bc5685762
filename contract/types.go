package contract

import "donations/sdk"

// TopEntry is one leaderboard slot. DonorID 0 marks an empty slot.
type TopEntry struct {
	DonorID        uint64      `json:"donorId"`
	DonorWallet    sdk.Address `json:"donorWallet"`
	DonorPDA       sdk.Address `json:"donorPda"`
	LifetimeAmount uint64      `json:"lifetimeAmount"`
}

// IsEmpty reports whether the slot is still the sentinel.
func (e TopEntry) IsEmpty() bool { return e.DonorID == 0 }

// Config is the program wide singleton.
type Config struct {
	Admin        sdk.Address       `json:"admin"`
	Treasury     sdk.Address       `json:"treasury"`
	Paused       bool              `json:"paused"`
	NextDonorID  uint64            `json:"nextDonorId"`
	TotalDonated uint64            `json:"totalDonated"`
	Top          [TopSize]TopEntry `json:"top"`
}

// NewConfig returns the state a freshly initialized program starts from.
func NewConfig(admin, treasury sdk.Address) *Config {
	return &Config{
		Admin:       admin,
		Treasury:    treasury,
		NextDonorID: 1,
	}
}

// Donor is the per wallet record, keyed by the donor address of the wallet.
type Donor struct {
	DonorWallet    sdk.Address `json:"donorWallet"`
	DonorID        uint64      `json:"donorId"`
	LifetimeAmount uint64      `json:"lifetimeAmount"`
	DonationsCount uint64      `json:"donationsCount"`
	Nickname       string      `json:"nickname"`
	Description    string      `json:"description"`
	LastDonationTs int64       `json:"lastDonationTs"`
}

// TopEntry projects the donor into a leaderboard candidate.
func (d *Donor) TopEntry(donorPDA sdk.Address) TopEntry {
	return TopEntry{
		DonorID:        d.DonorID,
		DonorWallet:    d.DonorWallet,
		DonorPDA:       donorPDA,
		LifetimeAmount: d.LifetimeAmount,
	}
}

// DonorIndex maps a sequential donor id back to the wallet and donor record.
type DonorIndex struct {
	DonorID     uint64      `json:"donorId"`
	DonorWallet sdk.Address `json:"donorWallet"`
	DonorPDA    sdk.Address `json:"donorPda"`
}
