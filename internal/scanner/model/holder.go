package model

import "holder-scan/pkg/utils"

// Holder 当前持有非零余额的 owner 地址
type Holder struct {
	Owner      string `json:"owner"`
	RawBalance uint64 `json:"raw_balance"`
	Decimals   uint8  `json:"decimals"`
}

func NewHolder(owner string, rawBalance uint64, decimals uint8) Holder {
	return Holder{Owner: owner, RawBalance: rawBalance, Decimals: decimals}
}

// UiAmount rawBalance / 10^decimals，只用于阈值、排序和展示
func (h Holder) UiAmount() float64 {
	return utils.UiAmount(h.RawBalance, h.Decimals)
}

// CheckResult 单项检查的结果，Err 非空时 Value 无意义
type CheckResult struct {
	Value bool
	Err   error
}

// Degrade 把失败的检查降级为 false
func (r CheckResult) Degrade() bool {
	if r.Err != nil {
		return false
	}
	return r.Value
}

func (r CheckResult) Failed() bool {
	return r.Err != nil
}

// ClassificationFlags 每个 holder 的分类结果
type ClassificationFlags struct {
	IsFreshWallet bool `json:"is_fresh_wallet"`
	IsWhale       bool `json:"is_whale"`
}

// ClassifiedHolder holder 与其分类结果
type ClassifiedHolder struct {
	Holder
	Flags ClassificationFlags `json:"flags"`

	// 失败的检查数 (0..2)，失败的检查已经降级为 false
	FailedChecks int `json:"failed_checks"`
}
