package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"donations/sdk"
)

// Sender submits signed transactions; *sdk.Runtime implements it.
type Sender interface {
	LatestBlockhash() solana.Hash
	SendTransaction(ctx context.Context, tx *solana.Transaction) (*sdk.Receipt, error)
}

// NewTransaction builds a transaction paid by the first signer and signs it with
// every key. It fails when an instruction requires a signer that is not given.
func NewTransaction(blockhash solana.Hash, signers []solana.PrivateKey, ixs ...solana.Instruction) (*solana.Transaction, error) {
	if len(signers) == 0 {
		return nil, errors.New("at least one signer is required")
	}
	tx, err := solana.NewTransaction(ixs, blockhash, solana.TransactionPayer(signers[0].PublicKey()))
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	keys := make(map[solana.PublicKey]solana.PrivateKey, len(signers))
	for _, k := range signers {
		keys[k.PublicKey()] = k
	}
	if _, err := tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if k, ok := keys[pub]; ok {
			return &k
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return tx, nil
}

// Submit signs ixs against the sender's latest blockhash and sends them as one transaction.
func Submit(ctx context.Context, s Sender, signers []solana.PrivateKey, ixs ...solana.Instruction) (*sdk.Receipt, error) {
	tx, err := NewTransaction(s.LatestBlockhash(), signers, ixs...)
	if err != nil {
		return nil, err
	}
	return s.SendTransaction(ctx, tx)
}
