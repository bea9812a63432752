package service

import (
	"slices"
	"sort"

	"holder-scan/internal/scanner/model"

	"github.com/samber/lo"
)

// Aggregate 按 rawBalance 降序排序 (稳定排序，相同余额保持输入顺序) 并统计占比
// 百分比的分母是过滤后的 holder 数，为 0 时百分比都为 0
func Aggregate(mint string, totalHolders int, classified []model.ClassifiedHolder, topN int) *model.AggregateReport {
	ranked := slices.Clone(classified)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RawBalance > ranked[j].RawBalance
	})

	filtered := len(ranked)
	bundle := lo.CountBy(ranked, func(h model.ClassifiedHolder) bool { return h.Flags.IsFreshWallet })
	whale := lo.CountBy(ranked, func(h model.ClassifiedHolder) bool { return h.Flags.IsWhale })

	topN = max(0, min(topN, filtered))

	return &model.AggregateReport{
		Mint:                mint,
		TotalHolders:        totalHolders,
		FilteredHolderCount: filtered,
		BundleCount:         bundle,
		WhaleCount:          whale,
		BundlePercentage:    percentage(bundle, filtered),
		WhalePercentage:     percentage(whale, filtered),
		FailedChecks:        lo.SumBy(ranked, func(h model.ClassifiedHolder) int { return h.FailedChecks }),
		RankedHolders:       ranked,
		TopN:                ranked[:topN],
	}
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(count) / float64(total)
}
