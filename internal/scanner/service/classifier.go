package service

import (
	"context"
	"fmt"
	"time"

	"holder-scan/internal/scanner/ledger"
	"holder-scan/pkg/utils"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// WalletClassifier 对单个钱包做新钱包和巨鲸判定
type WalletClassifier struct {
	tl       *zap.Logger
	client   ledger.Client
	maxPages int
	now      func() time.Time
}

func NewWalletClassifier(client ledger.Client, maxSignaturePages int, logger *zap.Logger) *WalletClassifier {
	if maxSignaturePages <= 0 {
		maxSignaturePages = 1
	}
	return &WalletClassifier{
		tl:       logger,
		client:   client,
		maxPages: maxSignaturePages,
		now:      time.Now,
	}
}

// IsFreshWallet 最早一笔交易距今不超过 maxAgeHours 即为新钱包
// 签名只向前翻 maxPages 页，翻完仍是满页时得到的年龄是下界
func (c *WalletClassifier) IsFreshWallet(ctx context.Context, address string, maxAgeHours uint64) (bool, error) {
	created, err := c.WalletCreationTime(ctx, address)
	if err != nil {
		return false, err
	}
	age := c.now().Unix() - created
	return age <= int64(maxAgeHours)*3600, nil
}

// WalletCreationTime 返回能看到的最早一笔交易的 blockTime (unix 秒)
func (c *WalletClassifier) WalletCreationTime(ctx context.Context, address string) (int64, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("parse wallet %q: %w", address, err)
	}

	var (
		oldest *ledger.SignatureInfo
		before string
	)
	for page := 0; page < c.maxPages; page++ {
		sigs, err := c.client.GetSignaturesForAddress(ctx, pubkey, before)
		if err != nil {
			return 0, err
		}
		if len(sigs) == 0 {
			break
		}
		oldest = &sigs[len(sigs)-1]
		if len(sigs) < ledger.SignaturePageSize {
			break
		}
		if page == c.maxPages-1 {
			c.tl.Debug("signature history truncated, wallet age is a lower bound",
				zap.String("wallet", address), zap.Int("pages", c.maxPages))
		}
		before = oldest.Signature
	}

	if oldest == nil {
		return 0, ErrNoHistory
	}
	if oldest.BlockTime == nil {
		return 0, ErrNoBlockTime
	}
	return *oldest.BlockTime, nil
}

// IsWhale 原生 SOL 余额 >= minWhaleSol
func (c *WalletClassifier) IsWhale(ctx context.Context, address string, minWhaleSol float64) (bool, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return false, fmt.Errorf("parse wallet %q: %w", address, err)
	}
	lamports, err := c.client.GetBalance(ctx, pubkey)
	if err != nil {
		return false, err
	}
	return utils.LamportsToSol(lamports) >= minWhaleSol, nil
}
