package model

import (
	"fmt"
	"strings"
	"time"
)

// Thresholds 报告用到的阈值，进程启动时加载一次，之后只读
type Thresholds struct {
	MinDisplayAmount  float64 `json:"min_display_amount"`
	MaxWalletAgeHours uint64  `json:"max_wallet_age_hours"`
	MinWhaleSol       float64 `json:"min_whale_sol"`
}

// MaxWalletAge 新钱包判定窗口
func (t Thresholds) MaxWalletAge() time.Duration {
	return time.Duration(t.MaxWalletAgeHours) * time.Hour
}

// ReportStyle 报告样式，决定 top N 的数量
type ReportStyle string

const (
	ReportStyleCompact ReportStyle = "compact"
	ReportStyleFull    ReportStyle = "full"
)

func (s ReportStyle) TopN() int {
	if s == ReportStyleCompact {
		return 3
	}
	return 5
}

func ParseReportStyle(raw string) (ReportStyle, error) {
	switch ReportStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case ReportStyleCompact:
		return ReportStyleCompact, nil
	case ReportStyleFull, "":
		return ReportStyleFull, nil
	default:
		return "", fmt.Errorf("unknown report style %q", raw)
	}
}

// AggregateReport 单次请求的聚合结果
type AggregateReport struct {
	Mint                string             `json:"mint"`
	TotalHolders        int                `json:"total_holders"`
	FilteredHolderCount int                `json:"filtered_holder_count"`
	BundleCount         int                `json:"bundle_count"`
	WhaleCount          int                `json:"whale_count"`
	BundlePercentage    float64            `json:"bundle_percentage"`
	WhalePercentage     float64            `json:"whale_percentage"`
	FailedChecks        int                `json:"failed_checks"`
	RankedHolders       []ClassifiedHolder `json:"-"`
	TopN                []ClassifiedHolder `json:"top_n"`
}

// Report 渲染后的报告
type Report struct {
	Aggregate   *AggregateReport
	Thresholds  Thresholds
	Style       ReportStyle
	Text        string
	GeneratedAt time.Time
	// Partial 整体请求超时，部分检查未完成而被按 false 计入
	Partial bool
}
