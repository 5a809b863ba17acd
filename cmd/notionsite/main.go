package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"notionsite/internal/build"
	"notionsite/internal/domain/config"
	domainerr "notionsite/internal/domain/errors"
	"notionsite/internal/logger"
	"notionsite/internal/notion"
	"notionsite/internal/seed"
	"notionsite/internal/serve"
	"notionsite/internal/weekly"
)

type CLI struct {
	Config   string `help:"Path to site.yaml. A missing file is fine." default:"site.yaml" type:"path"`
	LogLevel string `help:"Log level: debug, info, warn or error. Overrides LOG_LEVEL."`

	Build  BuildCmd  `cmd:"" help:"Generate the static site into the public directory."`
	Seed   SeedCmd   `cmd:"" help:"Create an article from the next unused keyword."`
	Weekly WeeklyCmd `cmd:"" help:"Create this week's Top 5 article from the products."`
	Serve  ServeCmd  `cmd:"" help:"Build, serve the public directory and rebuild on template changes."`
}

// Globals is what every command receives.
type Globals struct {
	Ctx context.Context
	Cfg config.Config
	Log *logger.Logger
}

func (g *Globals) source() notion.Source {
	return notion.NewClient(notion.Options{
		BaseURL: g.Cfg.Notion.APIURL,
		Token:   g.Cfg.Notion.Token,
		Version: g.Cfg.Notion.Version,
		Timeout: g.Cfg.Notion.Timeout,
		Logger:  g.Log,
	})
}

type BuildCmd struct{}

func (c *BuildCmd) Run(g *Globals) error {
	if err := g.Cfg.ValidateFor(config.CmdBuild); err != nil {
		return err
	}
	b := &build.Builder{Cfg: g.Cfg, Source: g.source(), Log: g.Log}
	res, err := b.Run(g.Ctx)
	if err != nil {
		return err
	}
	if n := len(res.Warnings); n > 0 {
		g.Log.Warn("records with problems", "count", n)
	}
	return nil
}

type SeedCmd struct{}

func (c *SeedCmd) Run(g *Globals) error {
	if err := g.Cfg.ValidateFor(config.CmdSeed); err != nil {
		return err
	}
	s := &seed.Seeder{
		Source:     g.source(),
		KeywordsDB: g.Cfg.Notion.KeywordsDB,
		ArticlesDB: g.Cfg.Notion.ArticlesDB,
		Log:        g.Log,
	}
	_, err := s.Run(g.Ctx)
	return err
}

type WeeklyCmd struct{}

func (c *WeeklyCmd) Run(g *Globals) error {
	if err := g.Cfg.ValidateFor(config.CmdWeekly); err != nil {
		return err
	}
	d := &weekly.Digest{
		Source:     g.source(),
		ArticlesDB: g.Cfg.Notion.ArticlesDB,
		ProductsDB: g.Cfg.Notion.ProductsDB,
		Log:        g.Log,
	}
	_, err := d.Run(g.Ctx)
	return err
}

type ServeCmd struct {
	Addr      string `help:"Listen address." default:":8080"`
	Templates string `help:"Template override directory to watch. Defaults to build.template_dir." type:"path"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg := g.Cfg
	if c.Templates != "" {
		cfg.Build.TemplateDir = c.Templates
	}
	if err := cfg.ValidateFor(config.CmdServe); err != nil {
		return err
	}
	src := g.source()

	s, err := serve.New(serve.Options{
		PublicDir: cfg.Build.PublicDir,
		WatchDir:  cfg.Build.TemplateDir,
		Log:       g.Log,
		Rebuild: func(ctx context.Context) error {
			run := cfg
			run.Build.Now = time.Now()
			_, err := (&build.Builder{Cfg: run, Source: src, Log: g.Log}).Run(ctx)
			return err
		},
	})
	if err != nil {
		return err
	}
	defer s.Close()
	return s.ListenAndServe(g.Ctx, c.Addr)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("notionsite"),
		kong.Description("Static site generator, seeder and weekly digest for a Notion-backed affiliate site."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err.Error())
		os.Exit(2)
	}
	log := logger.New(cfg.Log.Level)
	if cli.LogLevel != "" {
		log.SetLevel(cli.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&Globals{Ctx: ctx, Cfg: cfg, Log: log})
	switch {
	case err == nil:
	case errors.Is(err, domainerr.ErrInvalid):
		fmt.Fprintln(os.Stderr, err.Error())
		stop()
		os.Exit(2)
	default:
		log.Error(kctx.Command()+" failed", "err", err)
		stop()
		os.Exit(1)
	}
}
