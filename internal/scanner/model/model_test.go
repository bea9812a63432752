package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderUiAmount(t *testing.T) {
	h := NewHolder("owner", 2_500_000_000, 6)
	assert.Equal(t, 2500.0, h.UiAmount())
}

func TestCheckResultDegrade(t *testing.T) {
	assert.True(t, CheckResult{Value: true}.Degrade())
	assert.False(t, CheckResult{Value: false}.Degrade())
	assert.False(t, CheckResult{Value: true, Err: errors.New("timeout")}.Degrade())
	assert.True(t, CheckResult{Err: errors.New("x")}.Failed())
}

func TestReportStyle(t *testing.T) {
	style, err := ParseReportStyle("Compact")
	require.NoError(t, err)
	assert.Equal(t, 3, style.TopN())

	style, err = ParseReportStyle("")
	require.NoError(t, err)
	assert.Equal(t, ReportStyleFull, style)
	assert.Equal(t, 5, style.TopN())

	_, err = ParseReportStyle("huge")
	assert.Error(t, err)
}

func TestThresholdsMaxWalletAge(t *testing.T) {
	assert.Equal(t, 48*time.Hour, Thresholds{MaxWalletAgeHours: 48}.MaxWalletAge())
}

func TestNewReportEvent(t *testing.T) {
	top := []ClassifiedHolder{
		{Holder: NewHolder("a", 3_000_000, 0), Flags: ClassificationFlags{IsWhale: true}},
	}
	r := &Report{
		Aggregate: &AggregateReport{
			Mint:                "mint",
			TotalHolders:        10,
			FilteredHolderCount: 1,
			WhaleCount:          1,
			WhalePercentage:     100,
			TopN:                top,
			RankedHolders:       top,
		},
		Style:       ReportStyleCompact,
		Text:        "report",
		GeneratedAt: time.Unix(1_700_000_000, 0),
		Partial:     true,
	}

	event := NewReportEvent(r)
	assert.Equal(t, "mint", event.Mint)
	assert.Equal(t, "compact", event.Style)
	assert.Equal(t, int64(1_700_000_000), event.GeneratedAt)
	assert.True(t, event.Partial)
	require.Len(t, event.TopHolders, 1)
	assert.True(t, event.TopHolders[0].IsWhale)
	assert.Equal(t, 3_000_000.0, event.TopHolders[0].UiAmount)
}
