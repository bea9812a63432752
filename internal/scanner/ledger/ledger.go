package ledger

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SignaturePageSize getSignaturesForAddress 单页最大条数
const SignaturePageSize = 1000

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountDecode   = errors.New("account decode failed")
)

// KeyedAccount 程序账户扫描的单条结果
type KeyedAccount struct {
	Address solana.PublicKey
	Data    []byte
}

// SignatureInfo 地址的交易签名，BlockTime 可能为空
type SignatureInfo struct {
	Signature string
	BlockTime *int64
}

// Client 报告流程需要的链上查询
type Client interface {
	// GetAccount 返回账户原始数据，账户不存在时返回 ErrAccountNotFound
	GetAccount(ctx context.Context, address solana.PublicKey) ([]byte, error)
	GetProgramAccounts(ctx context.Context, programID solana.PublicKey, filters []rpc.RPCFilter) ([]KeyedAccount, error)
	// GetSignaturesForAddress 返回一页签名，新的在前旧的在后；before 为空表示从最新开始
	GetSignaturesForAddress(ctx context.Context, address solana.PublicKey, before string) ([]SignatureInfo, error)
	// GetBalance 返回 lamports
	GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error)
}
