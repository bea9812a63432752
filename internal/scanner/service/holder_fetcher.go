package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"holder-scan/internal/scanner/ledger"
	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/monitor"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// HolderFetcher 扫描某个 mint 下所有非零余额的 token account
type HolderFetcher struct {
	tl     *zap.Logger
	client ledger.Client
}

func NewHolderFetcher(client ledger.Client, logger *zap.Logger) *HolderFetcher {
	return &HolderFetcher{tl: logger, client: client}
}

// FetchHolders 返回每个 token account 对应的 Holder，顺序与 RPC 返回一致
// 同一个 owner 持有多个 token account 时会出现多条记录
func (f *HolderFetcher) FetchHolders(ctx context.Context, mintAddress string) ([]model.Holder, error) {
	mint, err := solana.PublicKeyFromBase58(strings.TrimSpace(mintAddress))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMintAddress, err)
	}

	decimals, err := f.mintDecimals(ctx, mint)
	if err != nil {
		return nil, err
	}

	accounts, err := f.client.GetProgramAccounts(ctx, solana.TokenProgramID, []rpc.RPCFilter{
		{DataSize: ledger.TokenAccountSize},
		{Memcmp: &rpc.RPCFilterMemcmp{
			Offset: ledger.TokenAccountMintOffset,
			Bytes:  solana.Base58(mint[:]),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan token accounts: %s", ErrUpstreamUnavailable, err)
	}

	holders := make([]model.Holder, 0, len(accounts))
	for _, acc := range accounts {
		info, err := ledger.DecodeTokenAccount(acc.Data)
		if err != nil {
			monitor.AccountDecodeFailures.Inc()
			f.tl.Warn("skip undecodable token account",
				zap.String("account", acc.Address.String()), zap.Error(err))
			continue
		}
		if !info.Mint.Equals(mint) {
			continue
		}
		if info.Amount == 0 {
			continue
		}
		holders = append(holders, model.NewHolder(info.Owner.String(), info.Amount, decimals))
	}

	f.tl.Debug("holders fetched",
		zap.String("mint", mint.String()),
		zap.Int("accounts", len(accounts)),
		zap.Int("holders", len(holders)))
	return holders, nil
}

func (f *HolderFetcher) mintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error) {
	data, err := f.client.GetAccount(ctx, mint)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return 0, fmt.Errorf("%w: mint account %s does not exist", ErrInvalidMintAddress, mint)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read mint: %s", ErrUpstreamUnavailable, err)
	}

	info, err := ledger.DecodeMint(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a token mint: %s", ErrInvalidMintAddress, mint, err)
	}
	return info.Decimals, nil
}
