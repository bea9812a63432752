package service

import (
	"fmt"
	"strings"

	"holder-scan/internal/scanner/model"
)

const (
	reportHeader = "🎯 Token Holders Report"

	freshMarker = "🆕"
	whaleMarker = "🐋"

	truncateKeep = 6
)

// FormatNumber >= 1e6 显示为 x.xxM，>= 1e3 显示为 x.xxK，其余保留两位小数
func FormatNumber(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.2fK", n/1_000)
	default:
		return fmt.Sprintf("%.2f", n)
	}
}

// TruncateAddress 超过 12 个字符时只保留前 6 位和后 6 位
func TruncateAddress(address string) string {
	runes := []rune(address)
	if len(runes) <= 2*truncateKeep {
		return address
	}
	return string(runes[:truncateKeep]) + "..." + string(runes[len(runes)-truncateKeep:])
}

// FormatReport 渲染报告文本
// 过滤后没有 holder 时保留头部统计，正文只有 emptyMessage 一行
func FormatReport(agg *model.AggregateReport, thresholds model.Thresholds, emptyMessage string) string {
	var sb strings.Builder
	sb.WriteString(reportHeader + "\n")
	fmt.Fprintf(&sb, "Total holders: %d | Filtered: %d (≥%s tokens)\n",
		agg.TotalHolders, agg.FilteredHolderCount, FormatNumber(thresholds.MinDisplayAmount))
	fmt.Fprintf(&sb, "%s Bundle: %d (%.1f%%)\n", freshMarker, agg.BundleCount, agg.BundlePercentage)
	fmt.Fprintf(&sb, "%s Whale: %d (%.1f%%)\n", whaleMarker, agg.WhaleCount, agg.WhalePercentage)
	sb.WriteString("\n")

	if agg.FilteredHolderCount == 0 || len(agg.TopN) == 0 {
		sb.WriteString(emptyMessage)
		return sb.String()
	}

	fmt.Fprintf(&sb, "Top %d Holders:\n", len(agg.TopN))
	amounts := make([]string, len(agg.TopN))
	width := 0
	for i, h := range agg.TopN {
		amounts[i] = FormatNumber(h.UiAmount())
		width = max(width, len(amounts[i]))
	}

	usedFresh, usedWhale := false, false
	for i, h := range agg.TopN {
		fmt.Fprintf(&sb, "%d. %s -- %*s", i+1, TruncateAddress(h.Owner), width, amounts[i])
		if h.Flags.IsFreshWallet {
			sb.WriteString(" " + freshMarker)
			usedFresh = true
		}
		if h.Flags.IsWhale {
			sb.WriteString(" " + whaleMarker)
			usedWhale = true
		}
		sb.WriteString("\n")
	}

	if rest := agg.FilteredHolderCount - len(agg.TopN); rest > 0 {
		fmt.Fprintf(&sb, "… and %d more holders\n", rest)
	}

	if usedFresh || usedWhale {
		sb.WriteString("\n")
	}
	if usedFresh {
		fmt.Fprintf(&sb, "%s = wallet created within %dh\n", freshMarker, thresholds.MaxWalletAgeHours)
	}
	if usedWhale {
		fmt.Fprintf(&sb, "%s = wallet holds ≥%s SOL\n", whaleMarker, FormatNumber(thresholds.MinWhaleSol))
	}

	if agg.FailedChecks > 0 {
		fmt.Fprintf(&sb, "⚠️ %d wallet lookups failed and were counted as unflagged\n", agg.FailedChecks)
	}

	return strings.TrimRight(sb.String(), "\n")
}
