package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/okabe-dev/peruse/internal/app"
	"github.com/okabe-dev/peruse/internal/config"
	"github.com/okabe-dev/peruse/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		cacheSize  int
		logFile    string
		styleName  string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "peruse [directory]",
		Short: "Interactive directory browser with fuzzy filtering and history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cacheSize > 0 {
				cfg.CacheSize = cacheSize
			}
			if logFile != "" {
				cfg.LogFile = logFile
			}
			if styleName != "" {
				cfg.Style = styleName
			}
			if debug {
				cfg.Debug = true
			}

			startDir := "."
			if len(args) == 1 {
				startDir = args[0]
			}

			log, err := logging.New(cfg.LogFile, cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
			app, err := apppkg.NewApplication(startDir, cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			app.Run()
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "directory cache capacity")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write structured logs to this file")
	cmd.Flags().StringVar(&styleName, "style", "", "syntax highlighting style")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}
