package sdk

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// MaxTransactionSize is the largest serialized transaction a cluster accepts,
// the IPv6 minimum MTU minus headers.
const MaxTransactionSize = 1232

var (
	// ErrAlreadyProcessed rejects a replay of a committed transaction.
	ErrAlreadyProcessed = errors.New("sdk: transaction already processed")
	// ErrTransactionTooLarge rejects a transaction that would not fit in one packet.
	ErrTransactionTooLarge = errors.New("sdk: transaction too large")
)

type RuntimeConfig struct {
	Logger *slog.Logger
	Store  Store
	Clock  clockwork.Clock
}

func (cfg *RuntimeConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Store == nil {
		cfg.Store = NewMemStore()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return nil
}

// Receipt is the outcome of one submitted transaction.
type Receipt struct {
	Signature solana.Signature
	Slot      uint64
	Logs      []string
	Err       error
}

// Runtime is an in-process host. Transactions execute one at a time; each runs
// against a private working set that is committed to the Store in a single
// Apply when every instruction succeeded and thrown away otherwise.
type Runtime struct {
	log     *slog.Logger
	cfg     RuntimeConfig
	session string

	mu        sync.Mutex
	programs  map[Address]Processor
	slot      uint64
	receipts  map[solana.Signature]*Receipt
	processed map[solana.Signature]struct{}
}

func NewRuntime(cfg RuntimeConfig) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runtime{
		log:       cfg.Logger,
		cfg:       cfg,
		session:   uuid.NewString(),
		programs:  make(map[Address]Processor),
		receipts:  make(map[solana.Signature]*Receipt),
		processed: make(map[solana.Signature]struct{}),
	}, nil
}

// RegisterProgram routes instructions addressed to id into p.
func (r *Runtime) RegisterProgram(id Address, p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[id] = p
	r.log.Debug("runtime: program registered", "program", id.String(), "session", r.session)
}

// Now is the runtime clock reading that the next transaction will observe.
func (r *Runtime) Now() time.Time {
	return r.cfg.Clock.Now()
}

// LatestBlockhash changes with every committed slot so identical instructions
// built against different slots sign differently.
func (r *Runtime) LatestBlockhash() solana.Hash {
	r.mu.Lock()
	defer r.mu.Unlock()
	return solana.Hash(sha256.Sum256([]byte(r.session + ":" + strconv.FormatUint(r.slot, 10))))
}

// Slot returns the number of committed transactions.
func (r *Runtime) Slot() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slot
}

// GetAccount reads committed state; nil means the slot is empty.
func (r *Runtime) GetAccount(ctx context.Context, addr Address) (*Account, error) {
	return r.cfg.Store.Get(ctx, addr)
}

// Balance returns the committed lamports of addr.
func (r *Runtime) Balance(ctx context.Context, addr Address) (uint64, error) {
	acct, err := r.cfg.Store.Get(ctx, addr)
	if err != nil {
		return 0, err
	}
	if acct == nil {
		return 0, nil
	}
	return acct.Lamports, nil
}

// Airdrop mints lamports into a system account outside of any transaction.
func (r *Runtime) Airdrop(ctx context.Context, addr Address, lamports uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, err := r.cfg.Store.Get(ctx, addr)
	if err != nil {
		return fmt.Errorf("airdrop %s: %w", addr, err)
	}
	if acct == nil {
		acct = &Account{Owner: SystemProgramID}
	}
	if acct.Lamports > math.MaxUint64-lamports {
		return fmt.Errorf("airdrop %s: %w", addr, ErrBalanceOverflow)
	}
	acct.Lamports += lamports
	if err := r.cfg.Store.Apply(ctx, map[Address]*Account{addr: acct}); err != nil {
		return fmt.Errorf("airdrop %s: %w", addr, err)
	}
	r.log.Debug("runtime: airdrop", "to", addr.String(), "amount", Lamports(lamports).String())
	return nil
}

// Receipt looks up the outcome of a previously submitted transaction.
func (r *Runtime) Receipt(sig solana.Signature) (*Receipt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.receipts[sig]
	return rec, ok
}

// SendTransaction authenticates tx, executes its instructions in order and
// commits the result atomically. The returned receipt carries the program logs
// even when the transaction failed.
func (r *Runtime) SendTransaction(ctx context.Context, tx *solana.Transaction) (*Receipt, error) {
	start := time.Now()
	defer func() { TransactionDuration.Observe(time.Since(start).Seconds()) }()

	if err := verifyTransaction(tx); err != nil {
		TransactionsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if err := checkTransactionSize(tx); err != nil {
		TransactionsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	sig := tx.Signatures[0]

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.processed[sig]; ok {
		TransactionsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyProcessed, sig)
	}

	t := newTxn(ctx, r.cfg.Store, &tx.Message, r.cfg.Clock.Now().Unix())
	receipt := &Receipt{Signature: sig, Slot: r.slot + 1}

	fail := func(err error) (*Receipt, error) {
		receipt.Logs = t.logs
		receipt.Err = err
		r.receipts[sig] = receipt
		TransactionsTotal.WithLabelValues("failed").Inc()
		r.log.Debug("runtime: transaction failed", "signature", sig.String(), "error", err)
		return receipt, err
	}

	for i, ci := range tx.Message.Instructions {
		programID, metas, err := resolveInstruction(&tx.Message, ci)
		if err != nil {
			return fail(fmt.Errorf("instruction %d: %w", i, err))
		}
		proc, ok := r.programs[programID]
		if !ok {
			return fail(fmt.Errorf("instruction %d: %w: %s", i, ErrUnknownProgram, programID))
		}
		t.log(fmt.Sprintf("Program %s invoke [1]", programID))
		inv := &Invocation{
			Host:      &invokeHost{txn: t, program: programID},
			ProgramID: programID,
			Accounts:  metas,
			Data:      ci.Data,
		}
		if err := proc(inv); err != nil {
			t.log(fmt.Sprintf("Program %s failed: %v", programID, err))
			return fail(fmt.Errorf("instruction %d: %w", i, err))
		}
		t.log(fmt.Sprintf("Program %s success", programID))
	}

	if err := r.cfg.Store.Apply(ctx, t.writes); err != nil {
		return fail(fmt.Errorf("commit: %w", err))
	}
	r.slot++
	r.processed[sig] = struct{}{}
	receipt.Logs = t.logs
	r.receipts[sig] = receipt

	TransactionsTotal.WithLabelValues("committed").Inc()
	LamportsTransferredTotal.Add(float64(t.transferred))
	AccountsCreatedTotal.Add(float64(t.created))
	r.log.Debug("runtime: transaction committed",
		"signature", sig.String(), "slot", r.slot, "writes", len(t.writes), "session", r.session)
	return receipt, nil
}

// verifyTransaction demands exactly the signatures the message header asks for,
// each valid for its key.
func verifyTransaction(tx *solana.Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", ErrSignatureVerification)
	}
	want := int(tx.Message.Header.NumRequiredSignatures)
	if want == 0 || len(tx.Signatures) != want {
		return fmt.Errorf("%w: got %d signatures, want %d", ErrSignatureVerification, len(tx.Signatures), want)
	}
	if err := tx.VerifySignatures(); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureVerification, err)
	}
	return nil
}

func checkTransactionSize(tx *solana.Transaction) error {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serialize transaction: %w", err)
	}
	if len(raw) > MaxTransactionSize {
		return fmt.Errorf("%w: %d bytes, max %d", ErrTransactionTooLarge, len(raw), MaxTransactionSize)
	}
	return nil
}

// resolveInstruction expands compiled account indexes into metas using the
// legacy message layout: signers first, then read-only tails per section.
func resolveInstruction(msg *solana.Message, ci solana.CompiledInstruction) (Address, []*solana.AccountMeta, error) {
	keys := msg.AccountKeys
	if int(ci.ProgramIDIndex) >= len(keys) {
		return Address{}, nil, fmt.Errorf("program index %d out of range", ci.ProgramIDIndex)
	}
	metas := make([]*solana.AccountMeta, 0, len(ci.Accounts))
	for _, idx := range ci.Accounts {
		if int(idx) >= len(keys) {
			return Address{}, nil, fmt.Errorf("account index %d out of range", idx)
		}
		metas = append(metas, solana.NewAccountMeta(
			keys[idx],
			isWritableIndex(msg, int(idx)),
			int(idx) < int(msg.Header.NumRequiredSignatures),
		))
	}
	return keys[ci.ProgramIDIndex], metas, nil
}

func isWritableIndex(msg *solana.Message, idx int) bool {
	h := msg.Header
	numSigned := int(h.NumRequiredSignatures)
	if idx < numSigned {
		return idx < numSigned-int(h.NumReadonlySignedAccounts)
	}
	numUnsigned := len(msg.AccountKeys) - numSigned
	return idx-numSigned < numUnsigned-int(h.NumReadonlyUnsignedAccounts)
}

// txn is the working set of one transaction.
type txn struct {
	ctx     context.Context
	store   Store
	now     int64
	signers map[Address]struct{}
	writes  map[Address]*Account
	logs    []string

	transferred uint64
	created     int
}

func newTxn(ctx context.Context, store Store, msg *solana.Message, now int64) *txn {
	signers := make(map[Address]struct{}, msg.Header.NumRequiredSignatures)
	for i := 0; i < int(msg.Header.NumRequiredSignatures) && i < len(msg.AccountKeys); i++ {
		signers[msg.AccountKeys[i]] = struct{}{}
	}
	return &txn{
		ctx:     ctx,
		store:   store,
		now:     now,
		signers: signers,
		writes:  make(map[Address]*Account),
	}
}

func (t *txn) log(line string) { t.logs = append(t.logs, line) }

func (t *txn) isSigner(addr Address) bool {
	_, ok := t.signers[addr]
	return ok
}

// load reads through the working set; the result may be mutated only via put.
func (t *txn) load(addr Address) (*Account, error) {
	if acct, ok := t.writes[addr]; ok {
		return acct, nil
	}
	acct, err := t.store.Get(t.ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", addr, err)
	}
	return acct, nil
}

func (t *txn) put(addr Address, acct *Account) { t.writes[addr] = acct }

func (t *txn) debit(addr Address, lamports uint64) error {
	acct, err := t.load(addr)
	if err != nil {
		return err
	}
	if acct == nil || acct.Lamports < lamports {
		return fmt.Errorf("%w: %s needs %s", ErrInsufficientFunds, addr, Lamports(lamports))
	}
	if acct.Owner != SystemProgramID {
		return fmt.Errorf("%w: %s", ErrNotSystemOwned, addr)
	}
	next := acct.Clone()
	next.Lamports -= lamports
	t.put(addr, next)
	return nil
}

func (t *txn) credit(addr Address, lamports uint64) error {
	acct, err := t.load(addr)
	if err != nil {
		return err
	}
	next := acct.Clone()
	if next == nil {
		next = &Account{Owner: SystemProgramID}
	}
	if next.Lamports > math.MaxUint64-lamports {
		return fmt.Errorf("%w: %s", ErrBalanceOverflow, addr)
	}
	next.Lamports += lamports
	t.put(addr, next)
	return nil
}

// invokeHost is the Host handed to one instruction of one program.
type invokeHost struct {
	*txn
	program Address
}

func (h *invokeHost) Now() int64 { return h.now }

func (h *invokeHost) Account(addr Address) (*Account, error) {
	acct, err := h.load(addr)
	if err != nil {
		return nil, err
	}
	return acct.Clone(), nil
}

func (h *invokeHost) CreateAccount(payer, addr Address, space uint64) error {
	if !h.isSigner(payer) {
		return fmt.Errorf("%w: payer %s", ErrMissingSigner, payer)
	}
	existing, err := h.load(addr)
	if err != nil {
		return err
	}
	var balance uint64
	if existing != nil {
		if !existing.DataIsEmpty() || existing.Owner != SystemProgramID {
			return fmt.Errorf("%w: %s", ErrAccountExists, addr)
		}
		balance = existing.Lamports
	}
	if rent := RentExemptMinimum(space); balance < rent {
		if err := h.debit(payer, rent-balance); err != nil {
			return fmt.Errorf("fund %s: %w", addr, err)
		}
		balance = rent
	}
	h.put(addr, &Account{Owner: h.program, Lamports: balance, Data: make([]byte, space)})
	h.created++
	return nil
}

func (h *invokeHost) WriteData(addr Address, data []byte) error {
	acct, err := h.load(addr)
	if err != nil {
		return err
	}
	if acct == nil {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	if acct.Owner != h.program {
		return fmt.Errorf("%w: %s", ErrNotOwner, addr)
	}
	if len(data) > len(acct.Data) {
		return fmt.Errorf("%w: %s holds %d bytes, got %d", ErrAccountDataTooSmall, addr, len(acct.Data), len(data))
	}
	next := acct.Clone()
	n := copy(next.Data, data)
	for i := n; i < len(next.Data); i++ {
		next.Data[i] = 0
	}
	h.put(addr, next)
	return nil
}

func (h *invokeHost) Transfer(from, to Address, lamports uint64) error {
	if !h.isSigner(from) {
		return fmt.Errorf("%w: %s", ErrMissingSigner, from)
	}
	if err := h.debit(from, lamports); err != nil {
		return err
	}
	if err := h.credit(to, lamports); err != nil {
		return err
	}
	h.transferred += lamports
	return nil
}

func (h *invokeHost) Log(msg string) { h.log("Program log: " + msg) }

func (h *invokeHost) LogData(data ...[]byte) {
	parts := make([]string, len(data))
	for i, d := range data {
		parts[i] = base64.StdEncoding.EncodeToString(d)
	}
	h.log("Program data: " + strings.Join(parts, " "))
}
