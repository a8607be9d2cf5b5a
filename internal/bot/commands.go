package bot

import (
	"context"
	"strings"

	"github.com/arcbothq/arcbot/internal/command"
)

// Command is one chat command backed by the bot.
type Command interface {
	Name() string
	Description() string
	Handle(ctx context.Context, m command.Messenger, args string) error
}

// Register adds commands to the router. Registration order is the order
// the help listing shows them in.
func Register(r *command.Router, cmds ...Command) error {
	for _, c := range cmds {
		if err := r.Register(c.Name(), c.Description(), c.Handle); err != nil {
			return err
		}
	}
	return nil
}

// isListQuery reports whether the argument asks for the full listing
// instead of a single entry.
func isListQuery(query string) bool {
	switch strings.ToLower(query) {
	case "list", "列表", "全部":
		return true
	}
	return false
}

// aliasHint renders up to limit aliases as a parenthesized suffix for
// list entries, or an empty string when there are none.
func aliasHint(aliases []string, limit int) string {
	if len(aliases) == 0 {
		return ""
	}
	if len(aliases) > limit {
		aliases = aliases[:limit]
	}
	return " (" + strings.Join(aliases, "、") + ")"
}
