package service

import (
	"strings"
	"testing"

	"holder-scan/internal/scanner/model"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:         "0.00",
		999:       "999.00",
		1_000:     "1.00K",
		1_500:     "1.50K",
		999_000:   "999.00K",
		1_000_000: "1.00M",
		2_300_000: "2.30M",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(in), "FormatNumber(%v)", in)
	}
}

func TestTruncateAddress(t *testing.T) {
	assert.Equal(t, "Ab1", TruncateAddress("Ab1"))
	assert.Equal(t, "123456789012", TruncateAddress("123456789012"))
	assert.Equal(t, "123456...012345", TruncateAddress("123456789012345"))
	// 按字符而不是字节截断
	assert.Equal(t, "ééééé1...2ààààà", TruncateAddress("ééééé1xxxxxx2ààààà"))
}

var testThresholds = model.Thresholds{MinDisplayAmount: 2_000_000, MaxWalletAgeHours: 48, MinWhaleSol: 40}

func TestFormatReportAlignmentAndMarkers(t *testing.T) {
	top := []model.ClassifiedHolder{
		classified("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA1", 25_000_000, false, true),
		classified("BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB2", 3_000_000, false, false),
		classified("short", 2_500, false, false),
	}
	agg := Aggregate("mint", 5, top, 3)

	text := FormatReport(agg, testThresholds, "empty")
	lines := strings.Split(text, "\n")

	assert.Equal(t, "🎯 Token Holders Report", lines[0])
	assert.Contains(t, text, "Total holders: 5 | Filtered: 3 (≥2.00M tokens)")
	assert.Contains(t, text, "Bundle: 0 (0.0%)")
	assert.Contains(t, text, "Whale: 1 (33.3%)")
	assert.Contains(t, text, "Top 3 Holders:")
	assert.Contains(t, text, "1. AAAAAA...AAAAA1 -- 25.00M 🐋")
	assert.Contains(t, text, "2. BBBBBB...BBBBB2 --  3.00M\n")
	assert.Contains(t, text, "3. short --  2.50K")

	// 只出现了 whale 标记
	assert.Contains(t, text, "🐋 = wallet holds ≥40.00 SOL")
	assert.NotContains(t, text, "🆕 = wallet created")
	assert.NotContains(t, text, "more holders")
	assert.NotContains(t, text, "lookups failed")
}

func TestFormatReportRemainderAndFailures(t *testing.T) {
	all := []model.ClassifiedHolder{
		classified("a", 9, true, false),
		classified("b", 8, false, false),
		classified("c", 7, false, false),
		classified("d", 6, false, false),
	}
	all[2].FailedChecks = 2
	agg := Aggregate("mint", 4, all, 3)

	text := FormatReport(agg, model.Thresholds{MaxWalletAgeHours: 48}, "empty")
	assert.Contains(t, text, "… and 1 more holders")
	assert.Contains(t, text, "🆕 = wallet created within 48h")
	assert.Contains(t, text, "⚠️ 2 wallet lookups failed and were counted as unflagged")
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestFormatReportEmpty(t *testing.T) {
	agg := Aggregate("mint", 6, nil, 5)
	text := FormatReport(agg, testThresholds, "No holders found with the minimum balance.")

	assert.Contains(t, text, "Total holders: 6 | Filtered: 0")
	assert.Contains(t, text, "Bundle: 0 (0.0%)")
	assert.NotContains(t, text, "Top")

	parts := strings.SplitN(text, "\n\n", 2)
	if assert.Len(t, parts, 2) {
		assert.Equal(t, "No holders found with the minimum balance.", parts[1])
	}
}
