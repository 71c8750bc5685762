package contract

import "donations/sdk"

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// ConfigAddress derives the singleton config address.
func ConfigAddress(programID sdk.Address) (sdk.Address, uint8, error) {
	return sdk.FindProgramAddress([][]byte{[]byte(ConfigSeed)}, programID)
}

// DonorAddress derives the donor record of a wallet, one per wallet.
func DonorAddress(programID, wallet sdk.Address) (sdk.Address, uint8, error) {
	return sdk.FindProgramAddress([][]byte{[]byte(DonorSeed), wallet[:]}, programID)
}

// DonorIndexAddress derives the index slot for a donor id, seeded with the id in little endian.
// Example payload: DonorIndexAddress(ProgramID, 1)
func DonorIndexAddress(programID sdk.Address, donorID uint64) (sdk.Address, uint8, error) {
	return sdk.FindProgramAddress([][]byte{[]byte(DonorIndexSeed), packU64LE(donorID, nil)}, programID)
}
