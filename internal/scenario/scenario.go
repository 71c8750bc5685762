// Package scenario replays donation sessions written as JSON lines against a
// runtime, one transaction per op, through the same client calls a wallet
// would make.
package scenario

import (
	"bufio"
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gagliardetto/solana-go"

	"donations/client"
	"donations/contract"
	"donations/sdk"
)

const (
	OpAirdrop     = "airdrop"
	OpInit        = "init"
	OpDonate      = "donate"
	OpProfile     = "profile"
	OpPause       = "pause"
	OpSetTreasury = "set_treasury"
	OpSetAdmin    = "set_admin"
)

var (
	ErrUnknownOp         = errors.New("scenario: unknown op")
	ErrUnexpectedOutcome = errors.New("scenario: unexpected outcome")
)

// Op is one scripted step. Wallet names the signer; Target names the treasury
// for init and set_treasury and the new admin for set_admin. Both accept a
// wallet name or a base58 address.
//
// Example payload: {"op":"donate","wallet":"alice","lamports":100,"nickname":"alice"}
type Op struct {
	Op          string  `json:"op"`
	Wallet      string  `json:"wallet"`
	Target      string  `json:"target,omitempty"`
	Lamports    uint64  `json:"lamports,omitempty"`
	Nickname    *string `json:"nickname,omitempty"`
	Description *string `json:"description,omitempty"`
	Paused      bool    `json:"paused,omitempty"`
	// ExpectError is the program error name the op must fail with.
	ExpectError string `json:"expectError,omitempty"`
}

func (op *Op) Validate() error {
	switch op.Op {
	case OpAirdrop, OpDonate, OpProfile, OpPause:
	case OpInit, OpSetTreasury, OpSetAdmin:
		if op.Target == "" {
			return fmt.Errorf("%s: target is required", op.Op)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}
	if op.Wallet == "" {
		return fmt.Errorf("%s: wallet is required", op.Op)
	}
	return nil
}

// Parse reads one op per line. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var op Op
		dec := json.NewDecoder(strings.NewReader(text))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&op); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ops, nil
}

// Key is the wallet behind name: an ed25519 key seeded with sha256(name), so the
// same script always talks about the same addresses.
func Key(name string) solana.PrivateKey {
	seed := sha256.Sum256([]byte(name))
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:]))
}

// Address resolves a wallet name or a base58 address.
func Address(nameOrAddr string) sdk.Address {
	if addr, err := sdk.AddressFromString(nameOrAddr); err == nil {
		return addr
	}
	return Key(nameOrAddr).PublicKey()
}

func str(s string) *string { return &s }

// Demo is the built in session: three donations ranking two donors, a rejected
// zero donation, a pause round trip and a profile edit.
func Demo() []Op {
	const funding = 10 * sdk.LamportsPerSOL
	return []Op{
		{Op: OpAirdrop, Wallet: "admin", Lamports: funding},
		{Op: OpAirdrop, Wallet: "alice", Lamports: funding},
		{Op: OpAirdrop, Wallet: "bob", Lamports: funding},
		{Op: OpInit, Wallet: "admin", Target: "treasury"},
		{Op: OpDonate, Wallet: "alice", Lamports: 100, Nickname: str("alice")},
		{Op: OpDonate, Wallet: "bob", Lamports: 150, Nickname: str("bob")},
		{Op: OpDonate, Wallet: "alice", Lamports: 200},
		{Op: OpDonate, Wallet: "alice", Lamports: 0, ExpectError: contract.ErrInvalidAmount.Name},
		{Op: OpPause, Wallet: "admin", Paused: true},
		{Op: OpDonate, Wallet: "bob", Lamports: 50, ExpectError: contract.ErrPaused.Name},
		{Op: OpPause, Wallet: "admin", Paused: false},
		{Op: OpProfile, Wallet: "bob", Description: str("monthly supporter")},
	}
}

type Config struct {
	Logger    *slog.Logger
	Runtime   *sdk.Runtime
	ProgramID sdk.Address
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Runtime == nil {
		return errors.New("runtime is required")
	}
	return nil
}

// Result is the outcome of one op. Signature and Events are empty for airdrops
// and for ops rejected before execution.
type Result struct {
	Index     int
	Op        Op
	Signature solana.Signature
	Events    *client.Events
	Err       error
}

type Runner struct {
	log    *slog.Logger
	rt     *sdk.Runtime
	b      *client.Builder
	reader *client.Reader
}

func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reader, err := client.NewReader(client.ReaderConfig{
		Logger:    cfg.Logger,
		Source:    cfg.Runtime,
		ProgramID: cfg.ProgramID,
	})
	if err != nil {
		return nil, err
	}
	return &Runner{
		log:    cfg.Logger,
		rt:     cfg.Runtime,
		b:      client.New(cfg.ProgramID),
		reader: reader,
	}, nil
}

// Reader reads program state through the runner's runtime.
func (r *Runner) Reader() *client.Reader { return r.reader }

// Run executes ops in order and stops at the first op whose outcome differs
// from what it expects. Results up to and including that op are returned.
func (r *Runner) Run(ctx context.Context, ops []Op) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for i, op := range ops {
		res := Result{Index: i, Op: op}
		receipt, err := r.apply(ctx, &op)
		res.Err = err
		if receipt != nil {
			res.Signature = receipt.Signature
			if events, perr := client.ParseEvents(receipt.Logs); perr == nil {
				res.Events = events
			} else {
				r.log.Warn("scenario: could not parse events", "op", i, "error", perr)
			}
		}
		results = append(results, res)

		if err := checkOutcome(&op, err); err != nil {
			return results, fmt.Errorf("op %d (%s by %s): %w", i, op.Op, op.Wallet, err)
		}
		if res.Err != nil {
			r.log.Info("scenario: op rejected as expected", "op", i, "kind", op.Op, "wallet", op.Wallet, "error", op.ExpectError)
			continue
		}
		r.log.Debug("scenario: op done", "op", i, "kind", op.Op, "wallet", op.Wallet, "signature", res.Signature.String())
	}
	return results, nil
}

func checkOutcome(op *Op, err error) error {
	if op.ExpectError == "" {
		return err
	}
	var perr *contract.ProgramError
	if errors.As(err, &perr) && perr.Name == op.ExpectError {
		return nil
	}
	return fmt.Errorf("%w: want %s, got %v", ErrUnexpectedOutcome, op.ExpectError, err)
}

func (r *Runner) apply(ctx context.Context, op *Op) (*sdk.Receipt, error) {
	if op.Op == OpAirdrop {
		return nil, r.rt.Airdrop(ctx, Address(op.Wallet), op.Lamports)
	}

	signer := Key(op.Wallet)
	wallet := signer.PublicKey()

	var (
		ix  solana.Instruction
		err error
	)
	switch op.Op {
	case OpInit:
		ix, err = r.b.InitializeConfig(wallet, Address(op.Target))
	case OpDonate:
		donorID, treasury, rerr := r.reader.DonateAccounts(ctx, wallet)
		if rerr != nil {
			return nil, fmt.Errorf("resolve donate accounts: %w", rerr)
		}
		ix, err = r.b.Donate(wallet, treasury, donorID, op.Lamports, op.Nickname)
	case OpProfile:
		ix, err = r.b.UpdateProfile(wallet, op.Nickname, op.Description)
	case OpPause:
		ix, err = r.b.SetPaused(wallet, op.Paused)
	case OpSetTreasury:
		ix, err = r.b.SetTreasury(wallet, Address(op.Target))
	case OpSetAdmin:
		ix, err = r.b.SetAdmin(wallet, Address(op.Target))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}
	if err != nil {
		return nil, err
	}
	return client.Submit(ctx, r.rt, []solana.PrivateKey{signer}, ix)
}
