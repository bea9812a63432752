package service

import (
	"fmt"
	"math"
	"time"

	"holder-scan/internal/scanner/config"
	"holder-scan/internal/scanner/ledger"
	"holder-scan/internal/scanner/ledger/ledgertest"

	"github.com/gagliardetto/solana-go"
)

const testDecimals = 6

// tokenFixture 在 FakeClient 上搭一个 mint 及其 holder
type tokenFixture struct {
	client *ledgertest.FakeClient
	mint   solana.PublicKey
}

func newTokenFixture() *tokenFixture {
	f := &tokenFixture{client: ledgertest.NewFakeClient(), mint: ledgertest.NewKey(1)}
	f.client.Accounts[f.mint] = ledgertest.EncodeMint(testDecimals, 1_000_000_000_000_000)
	return f
}

// addHolder 新增一个 token account，uiAmount 按 testDecimals 换算
func (f *tokenFixture) addHolder(seed byte, uiAmount float64) solana.PublicKey {
	owner := ledgertest.NewKey(seed)
	raw := uint64(math.Round(uiAmount * math.Pow10(testDecimals)))
	f.client.ProgramAccounts[solana.TokenProgramID] = append(f.client.ProgramAccounts[solana.TokenProgramID], ledger.KeyedAccount{
		Address: ledgertest.NewKey(seed + 100),
		Data:    ledgertest.EncodeTokenAccount(f.mint, owner, raw),
	})
	return owner
}

// setCreatedAgo 钱包只有一笔签名，时间为 ago 之前
func (f *tokenFixture) setCreatedAgo(owner solana.PublicKey, ago time.Duration) {
	bt := time.Now().Add(-ago).Unix()
	f.client.Signatures[owner] = []ledger.SignatureInfo{{Signature: "sig-" + owner.String(), BlockTime: &bt}}
}

func (f *tokenFixture) setSol(owner solana.PublicKey, sol float64) {
	f.client.Balances[owner] = uint64(sol * float64(solana.LAMPORTS_PER_SOL))
}

func signatures(n int, oldestBlockTime int64) []ledger.SignatureInfo {
	sigs := make([]ledger.SignatureInfo, n)
	for i := range sigs {
		bt := oldestBlockTime + int64(n-i)
		sigs[i] = ledger.SignatureInfo{Signature: fmt.Sprintf("sig-%d", i), BlockTime: &bt}
	}
	return sigs
}

func testReportConfig() config.ReportConfig {
	return config.ReportConfig{
		MinDisplayAmount:  2_000_000,
		MaxWalletAgeHours: 48,
		MinWhaleSol:       40,
		Concurrency:       4,
		LookupTimeout:     5,
		MaxSignaturePages: 1,
		DefaultStyle:      "full",
		EmptyMessage:      "No holders found with the minimum balance.",
		RequestTimeout:    30,
	}
}
