package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/guardstation/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// 全局状态，由 PersistentPreRunE 初始化
	logger  *zap.Logger
	cfg     config.AppConfig
	verbose bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "guardstation",
	Short: "GuardStation 门店官网与内容后台",
	Long: `GuardStation serves the public repair-shop site and its admin editor.
Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env 是可选的，缺失时只使用进程环境变量
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		cfg = config.Load()

		var err error
		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading configuration")

	rootCmd.AddCommand(serveCmd, exportCmd, importCmd, resetCmd)
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else if parsed, err := zapcore.ParseLevel(level); err == nil {
		zapConfig.Level = zap.NewAtomicLevelAt(parsed)
	}
	return zapConfig.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
