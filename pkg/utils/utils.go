package utils

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// AdjustDecimals 调整精度显示，raw / 10^decimals
func AdjustDecimals(raw uint64, decimals uint8) decimal.Decimal {
	value := decimal.NewFromUint64(raw)
	divisor := decimal.New(1, int32(decimals))
	return value.Div(divisor)
}

// UiAmount 返回 float64 形式的展示数量，只用于排序、阈值与展示
func UiAmount(raw uint64, decimals uint8) float64 {
	return AdjustDecimals(raw, decimals).InexactFloat64()
}

// LamportsToSol lamports 转换为 SOL
func LamportsToSol(lamports uint64) float64 {
	return decimal.NewFromUint64(lamports).
		Div(decimal.NewFromUint64(solana.LAMPORTS_PER_SOL)).
		InexactFloat64()
}

