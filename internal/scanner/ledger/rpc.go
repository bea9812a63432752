package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCClient 基于 solana-go rpc.Client 的 Client 实现
type RPCClient struct {
	client     *rpc.Client
	commitment rpc.CommitmentType
}

func NewRPCClient(client *rpc.Client, commitment rpc.CommitmentType) *RPCClient {
	return &RPCClient{client: client, commitment: commitment}
}

// ParseCommitment 解析配置里的 commitment，空值为 confirmed
func ParseCommitment(raw string) (rpc.CommitmentType, error) {
	switch c := rpc.CommitmentType(strings.ToLower(strings.TrimSpace(raw))); c {
	case "":
		return rpc.CommitmentConfirmed, nil
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return c, nil
	default:
		return "", fmt.Errorf("unsupported commitment %q", raw)
	}
}

func (c *RPCClient) GetAccount(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	res, err := c.client.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if res == nil || res.Value == nil || res.Value.Data == nil {
		return nil, ErrAccountNotFound
	}
	return res.Value.Data.GetBinary(), nil
}

func (c *RPCClient) GetProgramAccounts(ctx context.Context, programID solana.PublicKey, filters []rpc.RPCFilter) ([]KeyedAccount, error) {
	res, err := c.client.GetProgramAccountsWithOpts(ctx, programID, &rpc.GetProgramAccountsOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
		Filters:    filters,
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]KeyedAccount, 0, len(res))
	for _, acc := range res {
		if acc == nil || acc.Account == nil || acc.Account.Data == nil {
			continue
		}
		accounts = append(accounts, KeyedAccount{
			Address: acc.Pubkey,
			Data:    acc.Account.Data.GetBinary(),
		})
	}
	return accounts, nil
}

func (c *RPCClient) GetSignaturesForAddress(ctx context.Context, address solana.PublicKey, before string) ([]SignatureInfo, error) {
	limit := SignaturePageSize
	opts := &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: c.signatureCommitment(),
	}
	if before != "" {
		sig, err := solana.SignatureFromBase58(before)
		if err != nil {
			return nil, fmt.Errorf("invalid before signature: %w", err)
		}
		opts.Before = sig
	}

	res, err := c.client.GetSignaturesForAddressWithOpts(ctx, address, opts)
	if err != nil {
		return nil, err
	}

	sigs := make([]SignatureInfo, 0, len(res))
	for _, s := range res {
		if s == nil {
			continue
		}
		info := SignatureInfo{Signature: s.Signature.String()}
		if s.BlockTime != nil {
			ts := int64(*s.BlockTime)
			info.BlockTime = &ts
		}
		sigs = append(sigs, info)
	}
	return sigs, nil
}

func (c *RPCClient) GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	res, err := c.client.GetBalance(ctx, address, c.commitment)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// getSignaturesForAddress 不支持 processed
func (c *RPCClient) signatureCommitment() rpc.CommitmentType {
	if c.commitment == rpc.CommitmentProcessed {
		return rpc.CommitmentConfirmed
	}
	return c.commitment
}
