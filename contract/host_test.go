package contract

import (
	"fmt"

	"donations/sdk"
)

// fakeHost is a bare sdk.Host over a map, no transactions and no signer checks.
type fakeHost struct {
	now      int64
	program  sdk.Address
	accounts map[sdk.Address]*sdk.Account
	logs     []string
	data     [][]byte
}

func strptr(s string) *string { return &s }

func newFakeHost() *fakeHost {
	return &fakeHost{
		now:      1_756_857_600,
		program:  ProgramID,
		accounts: make(map[sdk.Address]*sdk.Account),
	}
}

func (h *fakeHost) context() *Context { return &Context{Host: h, ProgramID: h.program} }

func (h *fakeHost) Now() int64 { return h.now }

func (h *fakeHost) Account(addr sdk.Address) (*sdk.Account, error) {
	return h.accounts[addr].Clone(), nil
}

func (h *fakeHost) CreateAccount(payer, addr sdk.Address, space uint64) error {
	if !h.accounts[addr].DataIsEmpty() {
		return sdk.ErrAccountExists
	}
	h.accounts[addr] = &sdk.Account{
		Owner:    h.program,
		Lamports: sdk.RentExemptMinimum(space),
		Data:     make([]byte, space),
	}
	return nil
}

func (h *fakeHost) WriteData(addr sdk.Address, data []byte) error {
	acct, ok := h.accounts[addr]
	if !ok {
		return sdk.ErrAccountNotFound
	}
	if acct.Owner != h.program {
		return sdk.ErrNotOwner
	}
	if len(data) > len(acct.Data) {
		return fmt.Errorf("%w: %d > %d", sdk.ErrAccountDataTooSmall, len(data), len(acct.Data))
	}
	clear(acct.Data)
	copy(acct.Data, data)
	return nil
}

func (h *fakeHost) Transfer(from, to sdk.Address, lamports uint64) error {
	src, ok := h.accounts[from]
	if !ok || src.Lamports < lamports {
		return sdk.ErrInsufficientFunds
	}
	dst, ok := h.accounts[to]
	if !ok {
		dst = &sdk.Account{Owner: sdk.SystemProgramID}
		h.accounts[to] = dst
	}
	src.Lamports -= lamports
	dst.Lamports += lamports
	return nil
}

func (h *fakeHost) Log(msg string) { h.logs = append(h.logs, msg) }

func (h *fakeHost) LogData(data ...[]byte) { h.data = append(h.data, data...) }
