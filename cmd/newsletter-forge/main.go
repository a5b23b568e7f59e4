// Package main provides the CLI entry point for newsletter-forge.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/lepinkainen/newsletter-forge/internal/config"
	"github.com/lepinkainen/newsletter-forge/internal/newsletter"
	"github.com/lepinkainen/newsletter-forge/pkg/feed"
	httputil "github.com/lepinkainen/newsletter-forge/pkg/http"
	"github.com/lepinkainen/newsletter-forge/pkg/preview"
)

// CLI structure
var CLI struct {
	Config  string `help:"Configuration file path" default:"config.yaml"`
	EnvFile string `help:"Environment file loaded before reading NEWSLETTER_* variables" default:".env"`
	Debug   bool   `help:"Enable debug logging" default:"false"`

	Generate struct {
		Output  string `help:"Output directory (overrides output_dir)" short:"o"`
		Strict  bool   `help:"Abort on the first post with malformed content"`
		Offline bool   `help:"Render from the stored feed snapshot instead of fetching"`
	} `cmd:"generate" default:"1" help:"Regenerate the newsletter archive."`

	Preview struct {
		Index   int  `help:"Print the archive page of post N (0-based, oldest first) to stdout" default:"-1"`
		Offline bool `help:"Preview the stored feed snapshot instead of fetching"`
	} `cmd:"preview" help:"Preview archive posts interactively."`
}

func main() {
	// Parse CLI with Kong YAML configuration file loading
	ctx := kong.Parse(&CLI,
		kong.Name("newsletter-forge"),
		kong.Description("Builds the static 1:55 newsletter archive from its RSS feed."),
		kong.Configuration(kongyaml.Loader, "config.yaml", "~/.newsletter-forge/config.yaml"),
	)

	if CLI.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelInfo)
	}

	cfg, err := config.Load(config.Options{ConfigFile: CLI.Config, EnvFile: CLI.EnvFile})
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch ctx.Command() {
	case "generate":
		if CLI.Generate.Output != "" {
			cfg.OutputDir = CLI.Generate.Output
		}
		cfg.Strict = cfg.Strict || CLI.Generate.Strict
		err = generate(runCtx, cfg, CLI.Generate.Offline)

	case "preview":
		err = previewPosts(runCtx, cfg, CLI.Preview.Offline, CLI.Preview.Index)

	default:
		panic(ctx.Command())
	}

	if err != nil {
		slog.Error("Failed", "command", ctx.Command(), "error", err)
		stop()
		os.Exit(1)
	}
}

// newGenerator validates the configuration and wires the generator with its snapshot store.
// The returned close function must be called when done.
func newGenerator(cfg *config.Config, offline bool) (*newsletter.Generator, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	feed.SetTemplateOverrideFS(os.DirFS(cfg.TemplatesDir))

	httpConfig := httputil.DefaultConfig()
	httpConfig.Timeout = cfg.Timeout
	if cfg.UserAgent != "" {
		httpConfig.UserAgent = cfg.UserAgent
	}

	opts := newsletter.Options{
		FeedURL:     cfg.FeedURL,
		OutputDir:   cfg.OutputDir,
		SiteURL:     cfg.SiteURL,
		Strict:      cfg.Strict,
		Offline:     offline,
		ArchiveFeed: cfg.ArchiveFeed && cfg.SiteURL != "",
		HTTP:        httpConfig,
	}

	closeFn := func() {}
	store, err := newsletter.OpenSnapshotStore(cfg.Cache.Path, cfg.Cache.TTL)
	if err != nil {
		if offline {
			return nil, nil, err
		}
		slog.Warn("Feed snapshots disabled", "path", cfg.Cache.Path, "error", err)
	} else {
		opts.Snapshots = store
		closeFn = func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close snapshot store", "error", err)
			}
		}
	}

	return newsletter.NewGenerator(opts), closeFn, nil
}

func generate(ctx context.Context, cfg *config.Config, offline bool) error {
	gen, closeFn, err := newGenerator(cfg, offline)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	for _, s := range result.Skipped {
		slog.Warn("Post not written", "path", s.Path, "error", s.Err)
	}
	slog.Info("Archive generated", "dir", cfg.OutputDir, "written", len(result.Written), "skipped", len(result.Skipped))
	return nil
}

func previewPosts(ctx context.Context, cfg *config.Config, offline bool, index int) error {
	gen, closeFn, err := newGenerator(cfg, offline)
	if err != nil {
		return err
	}
	defer closeFn()

	posts, err := gen.LoadPosts(ctx)
	if err != nil {
		return err
	}

	// If index is specified, output the page directly to stdout
	if index >= 0 {
		if index >= len(posts) {
			return fmt.Errorf("index %d out of range, feed has %d posts", index, len(posts))
		}
		page, err := newsletter.Transform(posts[index])
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(page)
		return err
	}

	return preview.Run(posts, cfg.FeedURL)
}
