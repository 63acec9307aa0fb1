package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/kakeru/folio/internal"
	"github.com/kakeru/folio/internal/content"
	"github.com/kakeru/folio/internal/mcpserver"
	"github.com/kakeru/folio/internal/sitemap"
	pkgconfig "github.com/kakeru/folio/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func generateSitemap(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	snap, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	out := cmd.String("out")
	if out == "" {
		out = cfg.Site.SitemapPath
	}

	n, err := sitemap.WriteFile(content.NewStore(snap), cfg.Site.BaseURL, out)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s with %d entries\n", out, n)
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	snap, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	return mcpserver.New(content.NewStore(snap)).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:   "folio",
		Usage:  "Localized portfolio and blog site with newsletter, contact form and live content reload",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "sitemap",
				Usage:  "Generate sitemap.xml from the content store",
				Action: generateSitemap,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output path (defaults to site.sitemap_path)",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the content tools over MCP on stdin/stdout",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
