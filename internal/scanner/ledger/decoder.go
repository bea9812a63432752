package ledger

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

const (
	// TokenAccountSize SPL token account 固定长度
	TokenAccountSize = 165
	// MintAccountSize SPL mint 固定长度
	MintAccountSize = 82
	// TokenAccountMintOffset token account 中 mint 字段的偏移
	TokenAccountMintOffset = 0
)

// TokenAccountInfo 从 token account 中解出的字段
type TokenAccountInfo struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
}

// MintInfo 从 mint 账户中解出的字段
type MintInfo struct {
	Decimals uint8
	Supply   uint64
}

func DecodeTokenAccount(data []byte) (TokenAccountInfo, error) {
	if len(data) != TokenAccountSize {
		return TokenAccountInfo{}, fmt.Errorf("%w: token account size %d, want %d", ErrAccountDecode, len(data), TokenAccountSize)
	}

	var acc token.Account
	if err := acc.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return TokenAccountInfo{}, fmt.Errorf("%w: %v", ErrAccountDecode, err)
	}
	// 未初始化或状态字节非法的账户不计入 holder
	if acc.State != token.Initialized && acc.State != token.Frozen {
		return TokenAccountInfo{}, fmt.Errorf("%w: token account state %d", ErrAccountDecode, acc.State)
	}
	return TokenAccountInfo{
		Mint:   acc.Mint,
		Owner:  acc.Owner,
		Amount: acc.Amount,
	}, nil
}

func DecodeMint(data []byte) (MintInfo, error) {
	if len(data) < MintAccountSize {
		return MintInfo{}, fmt.Errorf("%w: mint size %d, want at least %d", ErrAccountDecode, len(data), MintAccountSize)
	}

	var mint token.Mint
	if err := mint.UnmarshalWithDecoder(bin.NewBinDecoder(data[:MintAccountSize])); err != nil {
		return MintInfo{}, fmt.Errorf("%w: %v", ErrAccountDecode, err)
	}
	if !mint.IsInitialized {
		return MintInfo{}, fmt.Errorf("%w: mint not initialized", ErrAccountDecode)
	}
	return MintInfo{Decimals: mint.Decimals, Supply: mint.Supply}, nil
}
