package event

import (
	"context"
	"fmt"

	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/writer"
	"holder-scan/pkg/httpclient"

	"go.uber.org/zap"
)

type larkText struct {
	Text string `json:"text"`
}

type larkMessage struct {
	MsgType string   `json:"msg_type"`
	Content larkText `json:"content"`
}

type larkResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// LarkReportWriter 把报告文本推送到 Lark 机器人 webhook，每个事件一条消息
type LarkReportWriter struct {
	client  *httpclient.HTTPClient
	tl      *zap.Logger
	webhook string
}

func NewLarkReportWriter(client *httpclient.HTTPClient, tl *zap.Logger, webhook string) writer.BatchWriter[model.ReportEvent] {
	return &LarkReportWriter{client: client, tl: tl, webhook: webhook}
}

func (w *LarkReportWriter) BWrite(ctx context.Context, events []model.ReportEvent) error {
	var firstErr error
	for _, e := range events {
		if err := w.send(ctx, e); err != nil {
			w.tl.Warn("lark push failed", zap.String("mint", e.Mint), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (w *LarkReportWriter) send(ctx context.Context, e model.ReportEvent) error {
	msg := larkMessage{
		MsgType: "text",
		Content: larkText{Text: fmt.Sprintf("%s\n\nMint: %s", e.Text, e.Mint)},
	}
	var resp larkResponse
	if err := w.client.PostJSON(ctx, w.webhook, msg, &resp); err != nil {
		return err
	}
	if resp.Code != 0 {
		return fmt.Errorf("lark webhook code %d: %s", resp.Code, resp.Msg)
	}
	return nil
}

func (w *LarkReportWriter) Close() error {
	return w.client.Close()
}
