package bot

import (
	"context"
	"fmt"

	"holder-scan/internal/scanner/config"
	"holder-scan/internal/scanner/model"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// ReportGenerator 机器人只依赖报告生成这一个入口
type ReportGenerator interface {
	Generate(ctx context.Context, mintAddress string, style model.ReportStyle) (*model.Report, error)
}

type Bot struct {
	cfg          config.DiscordConfig
	session      *discordgo.Session
	generator    ReportGenerator
	defaultStyle model.ReportStyle
	limiter      *userLimiter
	tl           *zap.Logger
	commands     []*discordgo.ApplicationCommand
}

func New(cfg config.DiscordConfig, generator ReportGenerator, defaultStyle model.ReportStyle, logger *zap.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		cfg:          cfg,
		session:      dg,
		generator:    generator,
		defaultStyle: defaultStyle,
		limiter:      newUserLimiter(cfg.RatePerMinute, cfg.Burst),
		tl:           logger,
	}
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("discord bot ready", zap.String("user", r.User.Username))
	})

	return bot, nil
}

// Start 建立连接并注册斜杠命令
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	if err := b.registerCommands(); err != nil {
		b.session.Close()
		return fmt.Errorf("error registering commands: %w", err)
	}
	b.tl.Info("Bot started successfully", zap.Int("commands", len(b.commands)))
	return nil
}

func (b *Bot) Close() error {
	// 只清理 guild 级命令
	if b.cfg.GuildID != "" && b.session.State != nil && b.session.State.User != nil {
		for _, cmd := range b.commands {
			if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.cfg.GuildID, cmd.ID); err != nil {
				b.tl.Warn("delete command failed", zap.String("command", cmd.Name), zap.Error(err))
			}
		}
	}
	return b.session.Close()
}
