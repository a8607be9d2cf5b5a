package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arcbothq/arcbot/internal/command"
	"github.com/arcbothq/arcbot/internal/config"
	"github.com/arcbothq/arcbot/internal/logger"
	"github.com/arcbothq/arcbot/internal/resource"
)

func newConsoleCmd() *cobra.Command {
	var cfgPath string
	var resourceDir string
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Run commands against the local resource index, without connecting to QQ",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConsole(cfgPath, resourceDir, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultConfigPath, "path to the config file")
	cmd.Flags().StringVar(&resourceDir, "resources", "", "override the resource directory")
	return cmd
}

// consoleMessenger prints replies to the terminal instead of the
// platform. Image sends only show the file that would go out.
type consoleMessenger struct {
	out io.Writer
	id  string
}

func (m *consoleMessenger) UserID() string { return m.id }

func (m *consoleMessenger) SendText(_ context.Context, content string) bool {
	fmt.Fprintln(m.out, content)
	return true
}

func (m *consoleMessenger) SendImage(_ context.Context, data []byte) bool {
	fmt.Fprintf(m.out, "[图片 %d bytes]\n", len(data))
	return true
}

func (m *consoleMessenger) SendImageFromPath(_ context.Context, path string) bool {
	fmt.Fprintf(m.out, "[图片 %s]\n", path)
	return true
}

func (m *consoleMessenger) Recall(_ context.Context) bool { return true }

func runConsole(cfgPath, resourceDir string, in io.Reader, out io.Writer) error {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.L

	dir := cfg.Resources.Dir
	if resourceDir != "" {
		dir = resourceDir
	}

	index := resource.New(dir, log)
	if !index.Reload() {
		log.Warn("some resource categories failed to load", slog.String("dir", dir))
	}

	router := command.NewRouter(log)
	if err := registerCommands(router, index, log); err != nil {
		return err
	}

	m := &consoleMessenger{out: out, id: "console-" + uuid.NewString()[:8]}
	fmt.Fprintln(out, "arcbot console. /help 查看命令, exit 退出")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if !router.Dispatch(context.Background(), m, strings.TrimPrefix(line, "/")) {
			fmt.Fprintln(out, "未知命令, 输入 /help 查看可用命令")
		}
	}
	return scanner.Err()
}
