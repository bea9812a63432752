package bot

import (
	"fmt"
	"strings"

	"holder-scan/internal/scanner/model"

	"github.com/bwmarrin/discordgo"
)

const (
	commandCheck = "check"
	commandHelp  = "help"

	optionMint  = "mint"
	optionStyle = "style"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandHelp,
			Description: "Display help",
		},
		{
			Name:        commandCheck,
			Description: "Check token holders of an SPL token mint",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionMint,
					Description: "Mint address of the token",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionStyle,
					Description: "Report style (defaults to full)",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "compact (top 3)", Value: string(model.ReportStyleCompact)},
						{Name: "full (top 5)", Value: string(model.ReportStyleFull)},
					},
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	b.commands = b.commands[:0]
	for _, cmd := range commandDefinitions() {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.cfg.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
		b.commands = append(b.commands, created)
	}
	return nil
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("Supported commands:\n")
	for _, cmd := range commandDefinitions() {
		fmt.Fprintf(&sb, "/%s", cmd.Name)
		for _, opt := range cmd.Options {
			if opt.Required {
				fmt.Fprintf(&sb, " <%s>", opt.Name)
			} else {
				fmt.Fprintf(&sb, " [%s]", opt.Name)
			}
		}
		fmt.Fprintf(&sb, " - %s\n", cmd.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// checkArgs 解析 /check 的参数
type checkArgs struct {
	mint  string
	style string
}

func parseCheckOptions(options []*discordgo.ApplicationCommandInteractionDataOption) checkArgs {
	var args checkArgs
	for _, opt := range options {
		switch opt.Name {
		case optionMint:
			args.mint = strings.TrimSpace(opt.StringValue())
		case optionStyle:
			args.style = opt.StringValue()
		}
	}
	return args
}
