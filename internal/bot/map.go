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

const mapUsage = `🗺️ 地图查询命令
━━━━━━━━━━━━━━━
📖 使用方法:
• /map <地图名称> - 查询地图
• /map list - 查看所有地图
━━━━━━━━━━━━━━━
💡 示例: /map 示例地图`

// MapCommand answers map queries with the map image.
type MapCommand struct {
	index *resource.Index
	log   *slog.Logger
}

// NewMapCommand creates the map lookup command.
func NewMapCommand(index *resource.Index, logger *slog.Logger) *MapCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &MapCommand{
		index: index,
		log:   logger.With(slog.String("command", "map")),
	}
}

func (c *MapCommand) Name() string        { return "map" }
func (c *MapCommand) Description() string { return "查询地图信息" }

func (c *MapCommand) Handle(ctx context.Context, m command.Messenger, args string) error {
	query := strings.TrimSpace(args)
	if query == "" {
		m.SendText(ctx, mapUsage)
		return nil
	}
	if isListQuery(query) {
		c.sendList(ctx, m)
		return nil
	}

	res, ok := c.index.Find(resource.CategoryMaps, query)
	if !ok {
		m.SendText(ctx, fmt.Sprintf("❌ 未找到地图: %s\n💡 使用 /map list 查看所有可用地图", query))
		return nil
	}
	if !res.Exists {
		m.SendText(ctx, fmt.Sprintf("❌ 地图图片文件不存在\n📁 文件路径: %s", res.FilePath))
		return nil
	}

	c.log.Info("sending map image", slog.String("map", res.Name))
	if !m.SendImageFromPath(ctx, res.FilePath) {
		m.SendText(ctx, fmt.Sprintf("❌ 图片发送失败: %s", res.Name))
	}
	return nil
}

func (c *MapCommand) sendList(ctx context.Context, m command.Messenger) {
	maps := c.index.List(resource.CategoryMaps)
	if len(maps) == 0 {
		m.SendText(ctx, "📭 暂无可用地图")
		return
	}

	var b strings.Builder
	b.WriteString("🗺️ ARC Raiders 地图列表\n")
	b.WriteString("━━━━━━━━━━━━━━━\n")
	for i, res := range maps {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(res.Name)
		b.WriteString(aliasHint(res.Aliases, 3))
		b.WriteString("\n")
	}
	b.WriteString("━━━━━━━━━━━━━━━\n")
	b.WriteString("💡 使用 /map <地图名称> 查询详情")
	m.SendText(ctx, b.String())
}
