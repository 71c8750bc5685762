package sdk

import (
	"strconv"
	"strings"
)

// LamportsPerSOL is the native currency scale.
const LamportsPerSOL = 1_000_000_000

// Lamports is an amount of native currency in its smallest unit.
type Lamports uint64

// String renders the amount as SOL without trailing zeros, handy for logs and the cli.
// Example payload: sdk.Lamports(1_500_000_000).String() == "1.5 SOL"
func (l Lamports) String() string {
	whole := uint64(l) / LamportsPerSOL
	frac := uint64(l) % LamportsPerSOL
	if frac == 0 {
		return strconv.FormatUint(whole, 10) + " SOL"
	}
	fs := strconv.FormatUint(frac, 10)
	fs = strings.Repeat("0", 9-len(fs)) + fs
	fs = strings.TrimRight(fs, "0")
	return strconv.FormatUint(whole, 10) + "." + fs + " SOL"
}

// RentExemptMinimum is the balance an account of space data bytes must hold to be
// allocated: 128 bytes of account overhead at 3480 lamports per byte-year, two years.
func RentExemptMinimum(space uint64) uint64 {
	return (128 + space) * 3480 * 2
}
