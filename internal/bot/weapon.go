package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/arcbothq/arcbot/internal/command"
	"github.com/arcbothq/arcbot/internal/resource"
)

const weaponUsage = `🔫 武器查询命令
━━━━━━━━━━━━━━━
📖 使用方法:
• /weapon <武器名称> - 查询武器
• /weapon <武器名称> <等级> - 查询指定等级
• /weapon list - 查看所有武器
━━━━━━━━━━━━━━━
💡 示例: /weapon 示例武器`

// WeaponCommand answers weapon queries, optionally at a requested
// level. Queries without a level resolve at level 1.
type WeaponCommand struct {
	index *resource.Index
	log   *slog.Logger
}

// NewWeaponCommand creates the weapon lookup command.
func NewWeaponCommand(index *resource.Index, logger *slog.Logger) *WeaponCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeaponCommand{
		index: index,
		log:   logger.With(slog.String("command", "weapon")),
	}
}

func (c *WeaponCommand) Name() string        { return "weapon" }
func (c *WeaponCommand) Description() string { return "查询武器信息" }

func (c *WeaponCommand) Handle(ctx context.Context, m command.Messenger, args string) error {
	query := strings.TrimSpace(args)
	if query == "" {
		m.SendText(ctx, weaponUsage)
		return nil
	}
	if isListQuery(query) {
		c.sendList(ctx, m)
		return nil
	}

	name, level := splitLevel(query)
	c.query(ctx, m, name, level)
	return nil
}

// splitLevel splits a trailing integer off the query as the requested
// level. A query without one is all name, resolved at level 1.
func splitLevel(query string) (string, int) {
	i := strings.LastIndexFunc(query, unicode.IsSpace)
	if i < 0 {
		return query, 1
	}
	level, err := strconv.Atoi(query[i+1:])
	if err != nil {
		return query, 1
	}
	return strings.TrimRightFunc(query[:i], unicode.IsSpace), level
}

func (c *WeaponCommand) query(ctx context.Context, m command.Messenger, name string, level int) {
	res, ok := c.index.FindWeaponAtLevel(name, level)
	if !ok {
		m.SendText(ctx, fmt.Sprintf("❌ 未找到武器: %s\n💡 使用 /weapon list 查看所有可用武器", name))
		return
	}

	if !res.HasLevels {
		c.sendImage(ctx, m, res.Weapon.Name, res.Weapon.FilePath, res.Weapon.Exists)
		return
	}

	if res.NeedsSelection {
		// The requested level does not exist. Fall back to level 1.
		res, ok = c.index.FindWeaponAtLevel(name, 1)
		if !ok || res.NeedsSelection {
			m.SendText(ctx, fmt.Sprintf("❌ 武器数据错误: %s", name))
			return
		}
	}
	c.sendImage(ctx, m, res.Weapon.Name, res.File.FilePath, res.File.Exists)
}

func (c *WeaponCommand) sendImage(ctx context.Context, m command.Messenger, name, path string, exists bool) {
	if !exists {
		m.SendText(ctx, fmt.Sprintf("❌ 武器图片文件不存在\n📁 文件路径: %s", path))
		return
	}

	c.log.Info("sending weapon image", slog.String("weapon", name))
	if !m.SendImageFromPath(ctx, path) {
		m.SendText(ctx, fmt.Sprintf("❌ 图片发送失败: %s", name))
	}
}

func (c *WeaponCommand) sendList(ctx context.Context, m command.Messenger) {
	weapons := c.index.List(resource.CategoryWeapons)
	if len(weapons) == 0 {
		m.SendText(ctx, "📭 暂无可用武器")
		return
	}

	var b strings.Builder
	b.WriteString("🔫 ARC Raiders 武器列表\n")
	b.WriteString("━━━━━━━━━━━━━━━\n")
	for _, res := range weapons {
		b.WriteString("• ")
		b.WriteString(res.Name)
		b.WriteString(aliasHint(res.Aliases, 2))
		b.WriteString("\n")
	}
	b.WriteString("\n━━━━━━━━━━━━━━━\n")
	b.WriteString("💡 使用 /weapon <武器名称> 查询详情")
	m.SendText(ctx, b.String())
}
