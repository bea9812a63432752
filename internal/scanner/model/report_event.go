package model

// ReportEvent 报告生成后推送给 sink 的事件
type ReportEvent struct {
	Mint                string          `json:"mint"`
	Style               string          `json:"style"`
	TotalHolders        int             `json:"total_holders"`
	FilteredHolderCount int             `json:"filtered_holder_count"`
	BundleCount         int             `json:"bundle_count"`
	WhaleCount          int             `json:"whale_count"`
	BundlePercentage    float64         `json:"bundle_percentage"`
	WhalePercentage     float64         `json:"whale_percentage"`
	FailedChecks        int             `json:"failed_checks"`
	Thresholds          Thresholds      `json:"thresholds"`
	TopHolders          []TopHolderItem `json:"top_holders"`
	Text                string          `json:"text"`
	GeneratedAt         int64           `json:"generated_at"`
	Partial             bool            `json:"partial"`
}

type TopHolderItem struct {
	Owner         string  `json:"owner"`
	RawBalance    uint64  `json:"raw_balance"`
	UiAmount      float64 `json:"ui_amount"`
	IsFreshWallet bool    `json:"is_fresh_wallet"`
	IsWhale       bool    `json:"is_whale"`
}

func NewReportEvent(r *Report) ReportEvent {
	agg := r.Aggregate
	items := make([]TopHolderItem, 0, len(agg.TopN))
	for _, h := range agg.TopN {
		items = append(items, TopHolderItem{
			Owner:         h.Owner,
			RawBalance:    h.RawBalance,
			UiAmount:      h.UiAmount(),
			IsFreshWallet: h.Flags.IsFreshWallet,
			IsWhale:       h.Flags.IsWhale,
		})
	}
	return ReportEvent{
		Mint:                agg.Mint,
		Style:               string(r.Style),
		TotalHolders:        agg.TotalHolders,
		FilteredHolderCount: agg.FilteredHolderCount,
		BundleCount:         agg.BundleCount,
		WhaleCount:          agg.WhaleCount,
		BundlePercentage:    agg.BundlePercentage,
		WhalePercentage:     agg.WhalePercentage,
		FailedChecks:        agg.FailedChecks,
		Thresholds:          r.Thresholds,
		TopHolders:          items,
		Text:                r.Text,
		GeneratedAt:         r.GeneratedAt.Unix(),
		Partial:             r.Partial,
	}
}
