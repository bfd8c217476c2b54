package main

import (
	"fmt"
	"log"

	"github.com/CageChen/dirpager/internal/config"
	"github.com/CageChen/dirpager/internal/handler"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configFile string
		path       string
		port       int
		limit      int
		safeMode   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the listing API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			// Command line flags override the config file (only if explicitly set)
			flags := cmd.Flags()
			if flags.Changed("path") {
				cfg.UseSinglePath(path)
			}
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("limit") {
				cfg.DefaultLimit = limit
			}
			if flags.Changed("safe-mode") {
				cfg.SafeMode = safeMode
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.LogLevel = level
			}

			if err := cfg.Finalize(); err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			log.Printf("dirpager - paginated directory listing")
			if p := cfg.GetConfigFilePath(); p != "" {
				log.Printf("Config file: %s", p)
			}
			log.Printf("Serving %d folder(s) (default limit %d, safe mode %v):", len(cfg.Folders), cfg.DefaultLimit, cfg.SafeMode)
			for i, f := range cfg.Folders {
				if f.GitRef != "" {
					log.Printf("  [%d] %s -> %s (git ref: %s)", i, f.Alias, f.Path, f.GitRef)
				} else {
					log.Printf("  [%d] %s -> %s", i, f.Alias, f.Path)
				}
			}
			log.Printf("Server starting at: http://localhost:%d", cfg.Port)

			gin.SetMode(gin.ReleaseMode)
			r := handler.NewRouter(cfg, logger)

			addr := fmt.Sprintf(":%d", cfg.Port)
			if err := r.Run(addr); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "Configuration file path")
	flags.StringVarP(&path, "path", "p", "", "Serve this directory only")
	flags.IntVar(&port, "port", 0, "HTTP server port")
	flags.IntVar(&limit, "limit", 0, "Default page size (negative for unlimited)")
	flags.BoolVar(&safeMode, "safe-mode", true, "Skip entries that cannot be stat'ed")

	return cmd
}
