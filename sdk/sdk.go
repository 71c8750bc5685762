// Package sdk is the execution host a program runs against: keyed account
// storage, deterministic addresses, signer authentication, native transfers,
// a clock and an append-only transaction log.
package sdk

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// Host errors. Any of them aborts the running transaction.
var (
	ErrAccountExists         = errors.New("sdk: account already in use")
	ErrAccountNotFound       = errors.New("sdk: account not found")
	ErrAccountDataTooSmall   = errors.New("sdk: account data too small")
	ErrNotOwner              = errors.New("sdk: account not owned by program")
	ErrMissingSigner         = errors.New("sdk: missing required signature")
	ErrInsufficientFunds     = errors.New("sdk: insufficient funds")
	ErrUnknownProgram        = errors.New("sdk: unknown program")
	ErrSignatureVerification = errors.New("sdk: signature verification failed")
	ErrNotSystemOwned        = errors.New("sdk: transfer source must be a system account")
	ErrBalanceOverflow       = errors.New("sdk: balance overflow")
)

// Account is the stored state behind an address.
type Account struct {
	Owner    Address `json:"owner"`
	Lamports uint64  `json:"lamports"`
	Data     []byte  `json:"data"`
}

// Clone returns a deep copy so callers never alias host storage.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	out := &Account{Owner: a.Owner, Lamports: a.Lamports}
	if a.Data != nil {
		out.Data = append([]byte(nil), a.Data...)
	}
	return out
}

// DataIsEmpty reports whether no data has been allocated behind the account.
func (a *Account) DataIsEmpty() bool {
	return a == nil || len(a.Data) == 0
}

// Host is what a program sees while one of its instructions executes. Every
// mutation lands in the transaction's working set and is only persisted when
// the whole transaction succeeds.
type Host interface {
	// Now is the timestamp of the running transaction, unix seconds.
	Now() int64
	// Account returns a copy of the account at addr or nil when the slot is empty.
	Account(addr Address) (*Account, error)
	// CreateAccount allocates space zeroed bytes at addr owned by the invoking
	// program; payer must have signed and covers the rent-exempt minimum.
	CreateAccount(payer, addr Address, space uint64) error
	// WriteData overwrites the data of an account owned by the invoking program.
	WriteData(addr Address, data []byte) error
	// Transfer moves lamports out of a signing system account.
	Transfer(from, to Address, lamports uint64) error
	// Log appends a "Program log:" line.
	Log(msg string)
	// LogData appends a "Program data:" line with the base64 of each chunk.
	LogData(data ...[]byte)
}

// Invocation is a single instruction handed to a program.
type Invocation struct {
	Host      Host
	ProgramID Address
	Accounts  []*solana.AccountMeta
	Data      []byte
}

// Processor is a program entry point.
type Processor func(inv *Invocation) error
