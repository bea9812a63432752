package bot

import (
	"context"
	"errors"
	"fmt"

	"holder-scan/internal/scanner/model"
	"holder-scan/internal/scanner/monitor"
	"holder-scan/internal/scanner/service"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	processingMessage = "🔍 Fetching token holders... Please wait..."
	usageMessage      = "❌ Please provide a mint address!\n\nUsage: /check <MINT_ADDRESS>"
	throttledMessage  = "⏳ You are sending requests too fast, please wait a moment."

	// Discord 单条消息上限
	maxMessageLength = 2000
)

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	switch data.Name {
	case commandHelp:
		monitor.BotCommands.WithLabelValues(commandHelp, "ok").Inc()
		b.respond(s, i, helpText(), true)
	case commandCheck:
		b.handleCheck(s, i, parseCheckOptions(data.Options))
	}
}

func (b *Bot) handleCheck(s *discordgo.Session, i *discordgo.InteractionCreate, args checkArgs) {
	userID := interactionUserID(i)
	tl := b.tl.With(zap.String("user", userID), zap.String("mint", args.mint))

	if args.mint == "" {
		monitor.BotCommands.WithLabelValues(commandCheck, "usage").Inc()
		b.respond(s, i, usageMessage, true)
		return
	}
	if !b.limiter.Allow(userID) {
		monitor.BotCommands.WithLabelValues(commandCheck, "throttled").Inc()
		b.respond(s, i, throttledMessage, true)
		return
	}

	// 先回复占位消息，报告生成后再编辑
	b.respond(s, i, processingMessage, false)

	reply, ok := buildCheckReply(context.Background(), b.generator, args, b.defaultStyle)
	if ok {
		monitor.BotCommands.WithLabelValues(commandCheck, "ok").Inc()
	} else {
		monitor.BotCommands.WithLabelValues(commandCheck, "error").Inc()
		tl.Info("check command failed", zap.String("reply", reply))
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &reply}); err != nil {
		tl.Error("edit interaction response failed", zap.Error(err))
	}
}

// buildCheckReply 生成 /check 的回复文本，ok 为 false 表示回复的是错误信息
func buildCheckReply(ctx context.Context, generator ReportGenerator, args checkArgs, defaultStyle model.ReportStyle) (string, bool) {
	style := defaultStyle
	if args.style != "" {
		parsed, err := model.ParseReportStyle(args.style)
		if err != nil {
			return fmt.Sprintf("❌ Error: %s", err), false
		}
		style = parsed
	}

	report, err := generator.Generate(ctx, args.mint, style)
	if err != nil {
		return errorMessage(args.mint, err), false
	}
	return codeBlock(report.Text), true
}

func errorMessage(mint string, err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidMintAddress):
		return fmt.Sprintf("❌ Error: %s is not a valid token mint address", mint)
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return "❌ Error: Solana RPC is unavailable right now, please try again later"
	case errors.Is(err, context.DeadlineExceeded):
		return "❌ Error: the report took too long, please try again later"
	default:
		return fmt.Sprintf("❌ Error: %s", err)
	}
}

// codeBlock 用等宽字体保持金额列对齐
func codeBlock(text string) string {
	const fence = "```"
	limit := maxMessageLength - 2*len(fence) - 2
	runes := []rune(text)
	if len(runes) > limit {
		text = string(runes[:limit-1]) + "…"
	}
	return fence + "\n" + text + "\n" + fence
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.tl.Error("respond to interaction failed", zap.Error(err))
	}
}
