// Package pgstore keeps the host's committed accounts in PostgreSQL.
package pgstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"donations/sdk"
)

type Config struct {
	Logger *slog.Logger
	Pool   *pgxpool.Pool
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Pool == nil {
		return errors.New("pool is required")
	}
	return nil
}

// Store implements sdk.Store on the accounts table.
type Store struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{log: cfg.Logger, pool: cfg.Pool}, nil
}

func (s *Store) Get(ctx context.Context, addr sdk.Address) (*sdk.Account, error) {
	var (
		owner    string
		lamports int64
		data     []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT owner, lamports, data FROM accounts WHERE address = $1`,
		addr.String(),
	).Scan(&owner, &lamports, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account %s: %w", addr, err)
	}
	ownerAddr, err := sdk.AddressFromString(owner)
	if err != nil {
		return nil, fmt.Errorf("account %s has invalid owner %q: %w", addr, owner, err)
	}
	return &sdk.Account{Owner: ownerAddr, Lamports: uint64(lamports), Data: data}, nil
}

// Apply writes every change in one transaction, rows in address order.
func (s *Store) Apply(ctx context.Context, changes map[sdk.Address]*sdk.Account) error {
	addrs := make([]sdk.Address, 0, len(changes))
	for addr := range changes {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, func(a, b sdk.Address) int { return bytes.Compare(a[:], b[:]) })

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, addr := range addrs {
			acct := changes[addr]
			if acct == nil {
				if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE address = $1`, addr.String()); err != nil {
					return fmt.Errorf("failed to delete account %s: %w", addr, err)
				}
				continue
			}
			if acct.Lamports > math.MaxInt64 {
				return fmt.Errorf("account %s: %w", addr, sdk.ErrBalanceOverflow)
			}
			data := acct.Data
			if data == nil {
				data = []byte{}
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO accounts (address, owner, lamports, data, updated_at)
				VALUES ($1, $2, $3, $4, now())
				ON CONFLICT (address) DO UPDATE SET
					owner = EXCLUDED.owner,
					lamports = EXCLUDED.lamports,
					data = EXCLUDED.data,
					updated_at = EXCLUDED.updated_at
			`, addr.String(), acct.Owner.String(), int64(acct.Lamports), data)
			if err != nil {
				return fmt.Errorf("failed to upsert account %s: %w", addr, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Debug("pgstore: applied changes", "accounts", len(addrs))
	return nil
}

// Count returns the number of stored accounts owned by owner.
func (s *Store) Count(ctx context.Context, owner sdk.Address) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM accounts WHERE owner = $1`, owner.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}
