package service

import (
	"context"
	"testing"

	"holder-scan/internal/scanner/ledger"
	"holder-scan/internal/scanner/ledger/ledgertest"
	"holder-scan/internal/scanner/monitor"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchHolders(t *testing.T) {
	f := newTokenFixture()
	a := f.addHolder(10, 5_000_000)
	f.addHolder(11, 0)
	b := f.addHolder(12, 0.5)

	// 其他 mint 的账户不应被扫到
	other := ledgertest.NewKey(2)
	f.client.ProgramAccounts[solana.TokenProgramID] = append(f.client.ProgramAccounts[solana.TokenProgramID], ledger.KeyedAccount{
		Address: ledgertest.NewKey(99),
		Data:    ledgertest.EncodeTokenAccount(other, ledgertest.NewKey(13), 42),
	})

	holders, err := NewHolderFetcher(f.client, zap.NewNop()).FetchHolders(context.Background(), f.mint.String())
	require.NoError(t, err)
	require.Len(t, holders, 2)

	assert.Equal(t, a.String(), holders[0].Owner)
	assert.Equal(t, uint64(5_000_000_000_000), holders[0].RawBalance)
	assert.Equal(t, uint8(testDecimals), holders[0].Decimals)
	assert.Equal(t, b.String(), holders[1].Owner)
	for _, h := range holders {
		assert.Greater(t, h.RawBalance, uint64(0))
	}
}

func TestFetchHoldersSkipsUndecodableAccount(t *testing.T) {
	f := newTokenFixture()
	a := f.addHolder(10, 3_000_000)

	// mint 字段正确，但状态字节为 0 (未初始化)，扫描时会被选中
	broken := ledgertest.EncodeTokenAccount(f.mint, ledgertest.NewKey(11), 9_000_000)
	broken[108] = 0
	f.client.ProgramAccounts[solana.TokenProgramID] = append(f.client.ProgramAccounts[solana.TokenProgramID], ledger.KeyedAccount{
		Address: ledgertest.NewKey(111),
		Data:    broken,
	})
	b := f.addHolder(12, 2_500_000)

	before := testutil.ToFloat64(monitor.AccountDecodeFailures)
	holders, err := NewHolderFetcher(f.client, zap.NewNop()).FetchHolders(context.Background(), f.mint.String())
	require.NoError(t, err)
	require.Len(t, holders, 2)
	assert.Equal(t, a.String(), holders[0].Owner)
	assert.Equal(t, b.String(), holders[1].Owner)
	assert.Equal(t, before+1, testutil.ToFloat64(monitor.AccountDecodeFailures))
}

func TestFetchHoldersErrors(t *testing.T) {
	t.Run("malformed address", func(t *testing.T) {
		f := newTokenFixture()
		_, err := NewHolderFetcher(f.client, zap.NewNop()).FetchHolders(context.Background(), "not-a-mint!")
		assert.ErrorIs(t, err, ErrInvalidMintAddress)
	})

	t.Run("mint does not exist", func(t *testing.T) {
		f := newTokenFixture()
		_, err := NewHolderFetcher(f.client, zap.NewNop()).FetchHolders(context.Background(), ledgertest.NewKey(7).String())
		assert.ErrorIs(t, err, ErrInvalidMintAddress)
	})

	t.Run("account is not a mint", func(t *testing.T) {
		f := newTokenFixture()
		f.client.Accounts[f.mint] = []byte{1, 2, 3}
		_, err := NewHolderFetcher(f.client, zap.NewNop()).FetchHolders(context.Background(), f.mint.String())
		assert.ErrorIs(t, err, ErrInvalidMintAddress)
	})

	t.Run("mint read fails", func(t *testing.T) {
		f := newTokenFixture()
		f.client.AccountErr = ledgertest.ErrUnavailable
		_, err := NewHolderFetcher(f.client, zap.NewNop()).FetchHolders(context.Background(), f.mint.String())
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
		assert.NotErrorIs(t, err, ErrInvalidMintAddress)
	})

	t.Run("program scan fails", func(t *testing.T) {
		f := newTokenFixture()
		f.client.ProgramAccountsErr = ledgertest.ErrUnavailable
		_, err := NewHolderFetcher(f.client, zap.NewNop()).FetchHolders(context.Background(), f.mint.String())
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})
}

func TestFetchHoldersEmpty(t *testing.T) {
	f := newTokenFixture()
	holders, err := NewHolderFetcher(f.client, zap.NewNop()).FetchHolders(context.Background(), f.mint.String())
	require.NoError(t, err)
	assert.Empty(t, holders)
}
