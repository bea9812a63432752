package main

import (
	"context"
	"fmt"
	"time"

	"holder-scan/internal/scanner"
	"holder-scan/internal/scanner/config"
	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/repository"
	"holder-scan/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportStyle   string
	reportJSON    bool
	reportPublish bool
)

var cmdReport = &cobra.Command{
	Use:   "report <mint>",
	Short: "Print the holder report of a token mint.",
	Long:  "Fetch every holder of the mint, classify fresh and whale wallets and print the report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		startTime := time.Now()
		cfg, err := config.Load(configDir)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		style, err := model.ParseReportStyle(cfg.Report.DefaultStyle)
		if err != nil {
			return err
		}
		if reportStyle != "" {
			if style, err = model.ParseReportStyle(reportStyle); err != nil {
				return err
			}
		}

		ctx, span := logger.StartSpan(context.Background(), "main", "report")
		defer span.End()

		tl := logger.WithTrace(ctx, logger.NewLoggerWithDir(cfg.Log.Dir, "script"))
		logger.SetLogLevel(cfg.Log.Level)
		defer tl.Sync()

		// 不推送时关掉所有 sink
		if !reportPublish {
			cfg.Kafka.Enable = false
			cfg.Redis.Enable = false
			cfg.Lark.Webhook = ""
		}

		repo, err := repository.New(cfg, tl)
		if err != nil {
			return err
		}
		defer repo.Close()

		pipeline := scanner.NewPipeline(cfg, repo, tl)
		defer pipeline.Close()

		report, err := pipeline.Report.Generate(ctx, args[0], style)
		if err != nil {
			return fmt.Errorf("generate report for %s: %w", args[0], err)
		}

		if reportJSON {
			out, err := sonic.ConfigStd.MarshalIndent(model.NewReportEvent(report), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), string(out))
		} else {
			fmt.Fprintln(c.OutOrStdout(), report.Text)
		}

		tl.Info("Task completed successfully", zap.Duration("taken_time", time.Since(startTime)))
		return nil
	},
}

func init() {
	cmdReport.Flags().StringVar(&reportStyle, "style", "", "report style: compact (top 3) or full (top 5)")
	cmdReport.Flags().BoolVar(&reportJSON, "json", false, "print the report event as JSON")
	cmdReport.Flags().BoolVar(&reportPublish, "publish", false, "also push the report to the configured sinks")
}
