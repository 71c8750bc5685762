package contract

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donations/sdk"
)

type indexFixture struct {
	host   *fakeHost
	ctx    *Context
	addr   sdk.Address
	wallet sdk.Address
	donor  sdk.Address
}

func newIndexFixture(t *testing.T, donorID uint64) *indexFixture {
	t.Helper()
	h := newFakeHost()
	wallet := solana.NewWallet().PublicKey()
	addr, _, err := DonorIndexAddress(ProgramID, donorID)
	require.NoError(t, err)
	donor, _, err := DonorAddress(ProgramID, wallet)
	require.NoError(t, err)
	return &indexFixture{host: h, ctx: h.context(), addr: addr, wallet: wallet, donor: donor}
}

func (f *indexFixture) stored(t *testing.T) *DonorIndex {
	t.Helper()
	acct := f.host.accounts[f.addr]
	require.NotNil(t, acct)
	x, err := DecodeDonorIndex(acct.Data)
	require.NoError(t, err)
	return x
}

func TestEnsureDonorIndexCreatesSlot(t *testing.T) {
	f := newIndexFixture(t, 1)
	require.NoError(t, ensureDonorIndex(f.ctx, f.addr, 1, f.wallet, f.donor))

	acct := f.host.accounts[f.addr]
	require.NotNil(t, acct)
	assert.Equal(t, ProgramID, acct.Owner)
	assert.Len(t, acct.Data, DonorIndexSize)
	assert.Equal(t, &DonorIndex{DonorID: 1, DonorWallet: f.wallet, DonorPDA: f.donor}, f.stored(t))
}

func TestEnsureDonorIndexIsIdempotent(t *testing.T) {
	f := newIndexFixture(t, 3)
	require.NoError(t, ensureDonorIndex(f.ctx, f.addr, 3, f.wallet, f.donor))
	first := f.host.accounts[f.addr].Clone()

	require.NoError(t, ensureDonorIndex(f.ctx, f.addr, 3, f.wallet, f.donor))
	assert.Equal(t, first, f.host.accounts[f.addr])
}

func TestEnsureDonorIndexRejectsWrongAddress(t *testing.T) {
	f := newIndexFixture(t, 1)
	err := ensureDonorIndex(f.ctx, f.addr, 2, f.wallet, f.donor)
	require.ErrorIs(t, err, ErrInvalidDonorIndex)
	assert.Empty(t, f.host.accounts)
}

func TestEnsureDonorIndexRejectsForeignOwner(t *testing.T) {
	f := newIndexFixture(t, 1)
	data, err := EncodeDonorIndex(&DonorIndex{DonorID: 1, DonorWallet: f.wallet, DonorPDA: f.donor})
	require.NoError(t, err)
	f.host.accounts[f.addr] = &sdk.Account{Owner: solana.NewWallet().PublicKey(), Lamports: 1, Data: data}

	err = ensureDonorIndex(f.ctx, f.addr, 1, f.wallet, f.donor)
	require.ErrorIs(t, err, ErrInvalidDonorIndexOwner)
}

func TestEnsureDonorIndexHealsZeroedSlot(t *testing.T) {
	f := newIndexFixture(t, 5)
	f.host.accounts[f.addr] = &sdk.Account{Owner: ProgramID, Lamports: 1, Data: make([]byte, DonorIndexSize)}

	require.NoError(t, ensureDonorIndex(f.ctx, f.addr, 5, f.wallet, f.donor))
	assert.Equal(t, &DonorIndex{DonorID: 5, DonorWallet: f.wallet, DonorPDA: f.donor}, f.stored(t))
}

func TestEnsureDonorIndexRejectsMismatch(t *testing.T) {
	f := newIndexFixture(t, 1)
	other := solana.NewWallet().PublicKey()
	require.NoError(t, ensureDonorIndex(f.ctx, f.addr, 1, other, f.donor))

	err := ensureDonorIndex(f.ctx, f.addr, 1, f.wallet, f.donor)
	require.ErrorIs(t, err, ErrInvalidDonorIndex)
	assert.Equal(t, other, f.stored(t).DonorWallet)
}

func TestEnsureDonorIndexRejectsGarbage(t *testing.T) {
	f := newIndexFixture(t, 1)
	data := make([]byte, DonorIndexSize)
	copy(data, "garbage!")
	f.host.accounts[f.addr] = &sdk.Account{Owner: ProgramID, Lamports: 1, Data: data}

	err := ensureDonorIndex(f.ctx, f.addr, 1, f.wallet, f.donor)
	require.ErrorIs(t, err, ErrInvalidDonorIndex)
}
