package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"donations/contract"
	"donations/sdk"
)

var ErrNotFound = errors.New("client: account not found")

// AccountSource hands out committed account state; *sdk.Runtime implements it.
type AccountSource interface {
	GetAccount(ctx context.Context, addr sdk.Address) (*sdk.Account, error)
}

// RPCClient is the part of the solana rpc client the reader needs.
type RPCClient interface {
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*solanarpc.GetAccountInfoResult, error)
}

// RPCSource adapts a cluster rpc endpoint to AccountSource.
type RPCSource struct {
	RPC RPCClient
}

func (s *RPCSource) GetAccount(ctx context.Context, addr sdk.Address) (*sdk.Account, error) {
	res, err := s.RPC.GetAccountInfo(ctx, addr)
	if errors.Is(err, solanarpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account info %s: %w", addr, err)
	}
	if res == nil || res.Value == nil {
		return nil, nil
	}
	acct := &sdk.Account{Owner: res.Value.Owner, Lamports: res.Value.Lamports}
	if res.Value.Data != nil {
		acct.Data = res.Value.Data.GetBinary()
	}
	return acct, nil
}

type ReaderConfig struct {
	Logger    *slog.Logger
	Source    AccountSource
	ProgramID sdk.Address
}

func (cfg *ReaderConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Source == nil {
		return errors.New("account source is required")
	}
	return nil
}

// Reader decodes program accounts for display and for building donations.
type Reader struct {
	log *slog.Logger
	cfg ReaderConfig
	b   *Builder
}

func NewReader(cfg ReaderConfig) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Reader{
		log: cfg.Logger,
		cfg: cfg,
		b:   New(cfg.ProgramID),
	}, nil
}

// programData fetches addr and returns its data when the program owns it.
func (r *Reader) programData(ctx context.Context, addr sdk.Address) ([]byte, error) {
	acct, err := r.cfg.Source.GetAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	if acct.DataIsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, addr)
	}
	if acct.Owner != r.b.ProgramID {
		return nil, fmt.Errorf("account %s owned by %s, not the program", addr, acct.Owner)
	}
	return acct.Data, nil
}

func (r *Reader) Config(ctx context.Context) (*contract.Config, error) {
	addr, err := r.b.ConfigPDA()
	if err != nil {
		return nil, err
	}
	data, err := r.programData(ctx, addr)
	if err != nil {
		return nil, err
	}
	return contract.DecodeConfig(data)
}

// Donor returns the record of wallet, or ErrNotFound before its first donation.
func (r *Reader) Donor(ctx context.Context, wallet sdk.Address) (*contract.Donor, error) {
	addr, err := r.b.DonorPDA(wallet)
	if err != nil {
		return nil, err
	}
	data, err := r.programData(ctx, addr)
	if err != nil {
		return nil, err
	}
	donor, err := contract.DecodeDonor(data)
	if err != nil {
		return nil, err
	}
	if donor.DonorID == 0 {
		return nil, fmt.Errorf("%w: donor %s", ErrNotFound, wallet)
	}
	return donor, nil
}

// DonorIndex reads the index slot of donorID.
func (r *Reader) DonorIndex(ctx context.Context, donorID uint64) (*contract.DonorIndex, error) {
	addr, err := r.b.DonorIndexPDA(donorID)
	if err != nil {
		return nil, err
	}
	data, err := r.programData(ctx, addr)
	if err != nil {
		return nil, err
	}
	return contract.DecodeDonorIndex(data)
}

// DonorByID follows the index to the donor record and cross checks both sides.
func (r *Reader) DonorByID(ctx context.Context, donorID uint64) (*contract.Donor, error) {
	idx, err := r.DonorIndex(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if idx.DonorID != donorID {
		return nil, fmt.Errorf("%w: index slot for donor %d is unpopulated", ErrNotFound, donorID)
	}
	donor, err := r.Donor(ctx, idx.DonorWallet)
	if err != nil {
		return nil, err
	}
	if donor.DonorID != donorID {
		return nil, fmt.Errorf("index for donor %d points at donor %d", donorID, donor.DonorID)
	}
	return donor, nil
}

// LeaderboardEntry is one ranked board row with the donor's nickname joined in.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	contract.TopEntry
	Nickname string `json:"nickname,omitempty"`
}

// Leaderboard returns the occupied board slots in rank order.
func (r *Reader) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	cfg, err := r.Config(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LeaderboardEntry, 0, contract.TopSize)
	for i, e := range cfg.Top {
		if e.IsEmpty() {
			continue
		}
		row := LeaderboardEntry{Rank: i + 1, TopEntry: e}
		donor, err := r.Donor(ctx, e.DonorWallet)
		if err != nil {
			r.log.Warn("client: leaderboard donor lookup failed", "donorId", e.DonorID, "error", err)
		} else {
			row.Nickname = donor.Nickname
		}
		out = append(out, row)
	}
	return out, nil
}

// DonateAccounts resolves what a donate instruction needs beyond the wallet:
// the donor id (existing, or the one the next new donor receives) and the treasury.
func (r *Reader) DonateAccounts(ctx context.Context, wallet sdk.Address) (uint64, sdk.Address, error) {
	cfg, err := r.Config(ctx)
	if err != nil {
		return 0, sdk.Address{}, err
	}
	donor, err := r.Donor(ctx, wallet)
	switch {
	case err == nil:
		return donor.DonorID, cfg.Treasury, nil
	case errors.Is(err, ErrNotFound):
		return cfg.NextDonorID, cfg.Treasury, nil
	default:
		return 0, sdk.Address{}, err
	}
}
