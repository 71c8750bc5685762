package sdk

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Address identifies an account: a wallet key or a program derived address.
type Address = solana.PublicKey

// SystemProgramID owns every plain wallet account.
var SystemProgramID = solana.SystemProgramID

// FindProgramAddress derives the canonical PDA for seeds under programID.
// Example payload: sdk.FindProgramAddress([][]byte{[]byte("config")}, programID)
func FindProgramAddress(seeds [][]byte, programID Address) (Address, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return Address{}, 0, fmt.Errorf("derive address: %w", err)
	}
	return addr, bump, nil
}

// MustFindProgramAddress panics when no bump yields an off-curve address, which
// only happens for seed sets nobody uses in practice.
func MustFindProgramAddress(seeds [][]byte, programID Address) Address {
	addr, _, err := FindProgramAddress(seeds, programID)
	if err != nil {
		panic(err)
	}
	return addr
}

// AddressFromString parses a base58 account key.
// Example payload: sdk.AddressFromString("11111111111111111111111111111111")
func AddressFromString(s string) (Address, error) {
	return solana.PublicKeyFromBase58(s)
}
