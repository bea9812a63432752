package utils

import "fmt"

// ReportChannelKey redis pub/sub 频道名
func ReportChannelKey(prefix string) string {
	if prefix == "" {
		prefix = "holder_scan"
	}
	return fmt.Sprintf("%s:reports", prefix)
}

// ReportMessageKey redis 中每个 mint 最新报告的 key
func ReportMessageKey(mint string) string {
	return fmt.Sprintf("holder_scan:report:%s", mint)
}
