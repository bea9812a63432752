package service

import "errors"

var (
	ErrInvalidMintAddress  = errors.New("invalid mint address")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// 新钱包判定失败的原因，调用方会降级为 false
	ErrNoHistory   = errors.New("wallet has no transaction history")
	ErrNoBlockTime = errors.New("oldest signature has no block time")
)
