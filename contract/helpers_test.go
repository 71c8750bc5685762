package contract_test

import (
	"io"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"donations/client"
	"donations/contract"
	"donations/internal/logger"
	"donations/sdk"
)

var defaultTimestamp = time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

const walletFunding = 10 * sdk.LamportsPerSOL

type contractTest struct {
	rt       *sdk.Runtime
	store    *sdk.MemStore
	clock    *clockwork.FakeClock
	b        *client.Builder
	reader   *client.Reader
	admin    solana.PrivateKey
	treasury solana.PublicKey
}

// SetupContractTest starts a runtime with the program registered and the config initialized.
func SetupContractTest(t *testing.T) *contractTest {
	t.Helper()
	ct := setupRuntime(t)
	ix, err := ct.b.InitializeConfig(ct.admin.PublicKey(), ct.treasury)
	require.NoError(t, err)
	CallContract(t, ct, ix, ct.admin, true)
	return ct
}

// setupRuntime is SetupContractTest without initialize_config.
func setupRuntime(t *testing.T) *contractTest {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, false)
	store := sdk.NewMemStore()
	clock := clockwork.NewFakeClockAt(defaultTimestamp)
	rt, err := sdk.NewRuntime(sdk.RuntimeConfig{Logger: log, Store: store, Clock: clock})
	require.NoError(t, err)
	rt.RegisterProgram(contract.ProgramID, contract.Process)

	reader, err := client.NewReader(client.ReaderConfig{Logger: log, Source: rt, ProgramID: contract.ProgramID})
	require.NoError(t, err)

	ct := &contractTest{
		rt:       rt,
		store:    store,
		clock:    clock,
		b:        client.New(contract.ProgramID),
		reader:   reader,
		treasury: solana.NewWallet().PublicKey(),
	}
	ct.admin = newWallet(t, ct)
	return ct
}

// newWallet returns a funded system account.
func newWallet(t *testing.T, ct *contractTest) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	require.NoError(t, ct.rt.Airdrop(t.Context(), key.PublicKey(), walletFunding))
	return key
}

// CallContract signs ix with signer, submits it and asserts the outcome.
func CallContract(t *testing.T, ct *contractTest, ix solana.Instruction, signer solana.PrivateKey, expectedResult bool) (*sdk.Receipt, error) {
	t.Helper()
	receipt, err := client.Submit(t.Context(), ct.rt, []solana.PrivateKey{signer}, ix)
	if expectedResult {
		require.NoError(t, err)
	} else {
		require.Error(t, err)
	}
	return receipt, err
}

// donate resolves the donor id the way a wallet would and sends a donation.
func donate(t *testing.T, ct *contractTest, wallet solana.PrivateKey, amount uint64, nickname *string, expectedResult bool) (*sdk.Receipt, error) {
	t.Helper()
	donorID, treasury, err := ct.reader.DonateAccounts(t.Context(), wallet.PublicKey())
	require.NoError(t, err)
	ix, err := ct.b.Donate(wallet.PublicKey(), treasury, donorID, amount, nickname)
	require.NoError(t, err)
	return CallContract(t, ct, ix, wallet, expectedResult)
}

func setPaused(t *testing.T, ct *contractTest, signer solana.PrivateKey, paused bool, expectedResult bool) error {
	t.Helper()
	ix, err := ct.b.SetPaused(signer.PublicKey(), paused)
	require.NoError(t, err)
	_, err = CallContract(t, ct, ix, signer, expectedResult)
	return err
}

func config(t *testing.T, ct *contractTest) *contract.Config {
	t.Helper()
	cfg, err := ct.reader.Config(t.Context())
	require.NoError(t, err)
	return cfg
}

func donor(t *testing.T, ct *contractTest, wallet solana.PrivateKey) *contract.Donor {
	t.Helper()
	d, err := ct.reader.Donor(t.Context(), wallet.PublicKey())
	require.NoError(t, err)
	return d
}

func balance(t *testing.T, ct *contractTest, addr solana.PublicKey) uint64 {
	t.Helper()
	lamports, err := ct.rt.Balance(t.Context(), addr)
	require.NoError(t, err)
	return lamports
}

// snapshot copies the committed accounts at addrs, nil for empty slots.
func snapshot(t *testing.T, ct *contractTest, addrs ...solana.PublicKey) map[solana.PublicKey]*sdk.Account {
	t.Helper()
	out := make(map[solana.PublicKey]*sdk.Account, len(addrs))
	for _, addr := range addrs {
		acct, err := ct.rt.GetAccount(t.Context(), addr)
		require.NoError(t, err)
		out[addr] = acct
	}
	return out
}

// programAccounts lists every account a donation by wallet can touch.
func programAccounts(t *testing.T, ct *contractTest, wallet solana.PrivateKey) []solana.PublicKey {
	t.Helper()
	configPDA, err := ct.b.ConfigPDA()
	require.NoError(t, err)
	donorPDA, err := ct.b.DonorPDA(wallet.PublicKey())
	require.NoError(t, err)
	donorID, _, err := ct.reader.DonateAccounts(t.Context(), wallet.PublicKey())
	require.NoError(t, err)
	indexPDA, err := ct.b.DonorIndexPDA(donorID)
	require.NoError(t, err)
	return []solana.PublicKey{configPDA, donorPDA, indexPDA, wallet.PublicKey(), ct.treasury}
}

func ptr(s string) *string { return &s }
