package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arcbothq/arcbot/internal/command"
)

const helpTemplate = `
🎮 ARC Raiders 查询机器人
━━━━━━━━━━━━━━━━━━━
▎可用命令:
%s
━━━━━━━━━━━━━━━━━━━
▎📖 命令详解:
▎• /map - 查询地图信息和图片
▎• /weapon <名称> [等级] - 查询武器（默认1级）
▎• /arc - 查询游戏相关信息
▎• /help - 显示本帮助信息
━━━━━━━━━━━━━━━━━━━
▎💡 使用技巧:
▎每个命令后可加 list 查看完整列表
▎例如: /map list
━━━━━━━━━━━━━━━━━━━
🌟 祝你游戏愉快！
`

// HelpCommand prints the command overview built from the live registry.
type HelpCommand struct {
	router *command.Router
	log    *slog.Logger
}

// NewHelpCommand creates the help command over a router.
func NewHelpCommand(router *command.Router, logger *slog.Logger) *HelpCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &HelpCommand{
		router: router,
		log:    logger.With(slog.String("command", "help")),
	}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "显示可用命令列表" }

func (c *HelpCommand) Handle(ctx context.Context, m command.Messenger, args string) error {
	c.log.Info("help requested", slog.String("user", m.UserID()))

	regs := c.router.List()
	lines := make([]string, 0, len(regs))
	for _, reg := range regs {
		lines = append(lines, "▎/"+reg.Name+" - "+reg.Description)
	}
	cmdList := "▎暂无可用命令"
	if len(lines) > 0 {
		cmdList = strings.Join(lines, "\n")
	}

	m.SendText(ctx, fmt.Sprintf(helpTemplate, cmdList))
	return nil
}
