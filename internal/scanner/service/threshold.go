package service

import (
	"holder-scan/internal/scanner/model"

	"github.com/samber/lo"
)

// FilterByMinimumBalance 保留 uiAmount >= minDisplayAmount 的 holder，保持原顺序
// minDisplayAmount <= 0 时原样返回
func FilterByMinimumBalance(holders []model.Holder, minDisplayAmount float64) []model.Holder {
	if minDisplayAmount <= 0 {
		return holders
	}
	return lo.Filter(holders, func(h model.Holder, _ int) bool {
		return h.UiAmount() >= minDisplayAmount
	})
}
