// Package ledgertest 提供内存版 ledger.Client 以及 SPL 账户编码工具，供测试使用
package ledgertest

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"sync"

	"holder-scan/internal/scanner/ledger"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// EncodeTokenAccount 按 SPL token account 布局编码 (165 bytes)
func EncodeTokenAccount(mint, owner solana.PublicKey, amount uint64) []byte {
	buf := make([]byte, ledger.TokenAccountSize)
	copy(buf[0:32], mint[:])
	copy(buf[32:64], owner[:])
	binary.LittleEndian.PutUint64(buf[64:72], amount)
	// delegate COption = None (72..108)
	buf[108] = 1 // state = initialized
	// is_native COption = None (109..121), delegated_amount (121..129), close_authority None (129..165)
	return buf
}

// EncodeMint 按 SPL mint 布局编码 (82 bytes)
func EncodeMint(decimals uint8, supply uint64) []byte {
	buf := make([]byte, ledger.MintAccountSize)
	// mint_authority COption = None (0..36)
	binary.LittleEndian.PutUint64(buf[36:44], supply)
	buf[44] = decimals
	buf[45] = 1 // is_initialized
	// freeze_authority COption = None (46..82)
	return buf
}

// NewKey 由一个字节种子生成确定的公钥，便于测试断言
func NewKey(seed byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = seed
	}
	k[31] = seed ^ 0x5a
	return k
}

// FakeClient 内存实现，过滤条件在"服务端"生效
type FakeClient struct {
	mu sync.Mutex

	Accounts        map[solana.PublicKey][]byte
	ProgramAccounts map[solana.PublicKey][]ledger.KeyedAccount
	Signatures      map[solana.PublicKey][]ledger.SignatureInfo
	Balances        map[solana.PublicKey]uint64

	AccountErr         error
	ProgramAccountsErr error
	SignatureErr       map[solana.PublicKey]error
	BalanceErr         map[solana.PublicKey]error

	// Block 中的地址在 ctx 结束前不返回，用于模拟超时
	Block map[solana.PublicKey]bool

	SignatureCalls int
	BalanceCalls   int
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		Accounts:        make(map[solana.PublicKey][]byte),
		ProgramAccounts: make(map[solana.PublicKey][]ledger.KeyedAccount),
		Signatures:      make(map[solana.PublicKey][]ledger.SignatureInfo),
		Balances:        make(map[solana.PublicKey]uint64),
		SignatureErr:    make(map[solana.PublicKey]error),
		BalanceErr:      make(map[solana.PublicKey]error),
		Block:           make(map[solana.PublicKey]bool),
	}
}

func (f *FakeClient) GetAccount(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AccountErr != nil {
		return nil, f.AccountErr
	}
	data, ok := f.Accounts[address]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return data, nil
}

func (f *FakeClient) GetProgramAccounts(ctx context.Context, programID solana.PublicKey, filters []rpc.RPCFilter) ([]ledger.KeyedAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProgramAccountsErr != nil {
		return nil, f.ProgramAccountsErr
	}

	var out []ledger.KeyedAccount
	for _, acc := range f.ProgramAccounts[programID] {
		if matchFilters(acc.Data, filters) {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *FakeClient) GetSignaturesForAddress(ctx context.Context, address solana.PublicKey, before string) ([]ledger.SignatureInfo, error) {
	f.mu.Lock()
	f.SignatureCalls++
	block := f.Block[address]
	err := f.SignatureErr[address]
	all := f.Signatures[address]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	start := 0
	if before != "" {
		start = len(all)
		for i, s := range all {
			if s.Signature == before {
				start = i + 1
				break
			}
		}
	}
	end := start + ledger.SignaturePageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *FakeClient) GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	f.mu.Lock()
	f.BalanceCalls++
	block := f.Block[address]
	err := f.BalanceErr[address]
	balance := f.Balances[address]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// ErrUnavailable 测试中模拟上游不可用
var ErrUnavailable = errors.New("rpc unavailable")

func matchFilters(data []byte, filters []rpc.RPCFilter) bool {
	for _, filter := range filters {
		if filter.DataSize != 0 && uint64(len(data)) != filter.DataSize {
			return false
		}
		if filter.Memcmp != nil {
			want := []byte(filter.Memcmp.Bytes)
			offset := int(filter.Memcmp.Offset)
			if offset+len(want) > len(data) || !bytes.Equal(data[offset:offset+len(want)], want) {
				return false
			}
		}
	}
	return true
}
