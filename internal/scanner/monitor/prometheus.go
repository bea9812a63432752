package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	// ReportsGenerated 报告生成相关
	ReportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "holder_scan_reports_total",
			Help: "Total number of report requests by outcome.",
		},
		[]string{"status"},
	)
	ReportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "holder_scan_report_duration_seconds",
			Help:    "Time taken to produce a report, per pipeline stage.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"stage"},
	)
	HoldersScanned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "holder_scan_holders",
			Help:    "Number of holders seen per report, before and after the threshold filter.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"set"},
	)
	AccountDecodeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "holder_scan_account_decode_failures_total",
			Help: "Token accounts skipped because they could not be decoded.",
		},
	)
	LookupFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "holder_scan_lookup_failures_total",
			Help: "Classification lookups that failed and were counted as false.",
		},
		[]string{"check"},
	)

	// BotCommands 机器人指令
	BotCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "holder_scan_bot_commands_total",
			Help: "Chat commands received by result.",
		},
		[]string{"command", "result"},
	)

	// AsyncWriterMessagesQueued AsyncWriter 指标
	AsyncWriterMessagesQueued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_writer_messages_queued_total",
			Help: "Total number of messages queued to async writer.",
		},
		[]string{"writer_id"},
	)
	AsyncWriterMessagesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_writer_messages_dropped_total",
			Help: "Total number of messages dropped due to full queue.",
		},
		[]string{"writer_id"},
	)
	AsyncWriterFlushDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "async_writer_flush_duration_seconds",
			Help:    "Time taken to flush a batch.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"writer_id"},
	)
	AsyncWriterFlushErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_writer_flush_errors_total",
			Help: "Total number of batch flushes that returned an error.",
		},
		[]string{"writer_id"},
	)
	AsyncWriterItemsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_writer_items_written_total",
			Help: "Total number of items handed to the writer.",
		},
		[]string{"writer_id"},
	)
)

func init() {
	prometheus.MustRegister(
		// 报告指标
		ReportsGenerated,
		ReportDuration,
		HoldersScanned,
		AccountDecodeFailures,
		LookupFailures,
		BotCommands,

		// async 写入指标
		AsyncWriterMessagesQueued,
		AsyncWriterMessagesDropped,
		AsyncWriterFlushDuration,
		AsyncWriterFlushErrors,
		AsyncWriterItemsWritten,
	)
}
