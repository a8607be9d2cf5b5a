package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/arcbothq/arcbot/internal/command"
	"github.com/arcbothq/arcbot/internal/resource"
)

const arcUsage = `🎮 ARC Raiders 信息查询
━━━━━━━━━━━━━━━
📖 使用方法:
• /arc <关键词> - 查询信息
• /arc list - 查看所有信息
━━━━━━━━━━━━━━━
💡 示例: /arc 介绍`

// ArcInfoCommand answers general game information queries.
type ArcInfoCommand struct {
	index *resource.Index
	log   *slog.Logger
}

// NewArcInfoCommand creates the game info lookup command.
func NewArcInfoCommand(index *resource.Index, logger *slog.Logger) *ArcInfoCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArcInfoCommand{
		index: index,
		log:   logger.With(slog.String("command", "arc")),
	}
}

func (c *ArcInfoCommand) Name() string        { return "arc" }
func (c *ArcInfoCommand) Description() string { return "查询ARC Raiders相关信息" }

func (c *ArcInfoCommand) Handle(ctx context.Context, m command.Messenger, args string) error {
	query := strings.TrimSpace(args)
	if query == "" {
		m.SendText(ctx, arcUsage)
		return nil
	}
	if isListQuery(query) {
		c.sendList(ctx, m)
		return nil
	}

	res, ok := c.index.Find(resource.CategoryArc, query)
	if !ok {
		m.SendText(ctx, fmt.Sprintf("❌ 未找到相关信息: %s\n💡 使用 /arc list 查看所有可用信息", query))
		return nil
	}
	if !res.Exists {
		m.SendText(ctx, fmt.Sprintf("❌ 信息图片文件不存在\n📁 文件路径: %s", res.FilePath))
		return nil
	}

	c.log.Info("sending info image", slog.String("info", res.Name))
	if !m.SendImageFromPath(ctx, res.FilePath) {
		m.SendText(ctx, fmt.Sprintf("❌ 图片发送失败: %s", res.Name))
	}
	return nil
}

func (c *ArcInfoCommand) sendList(ctx context.Context, m command.Messenger) {
	infos := c.index.List(resource.CategoryArc)
	if len(infos) == 0 {
		m.SendText(ctx, "📭 暂无可用信息")
		return
	}

	var b strings.Builder
	b.WriteString("🎮 ARC Raiders 信息列表\n")
	b.WriteString("━━━━━━━━━━━━━━━\n")
	for i, res := range infos {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(res.Name)
		b.WriteString(aliasHint(res.Aliases, 3))
		b.WriteString("\n")
	}
	b.WriteString("━━━━━━━━━━━━━━━\n")
	b.WriteString("💡 使用 /arc <关键词> 查询详情")
	m.SendText(ctx, b.String())
}
