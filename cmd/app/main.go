package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"alplotlib/internal/config"
	"alplotlib/internal/db"
	"alplotlib/internal/logger"
	"alplotlib/internal/posts"
	"alplotlib/internal/server"
	"alplotlib/internal/services"
	"alplotlib/internal/web"
	"alplotlib/internal/web/pages/landing"

	"github.com/alecthomas/kong"
)

var CLI struct {
	Serve struct{} `cmd:"" default:"1" help:"Serve the blog over HTTP"`

	Render struct {
		Variant string `help:"Landing page variant to render (full or minimal); defaults to SITE_VARIANT"`
	} `cmd:"" help:"Write the landing page document to stdout"`

	Import struct {
		Dir string `arg:"" optional:"" help:"Directory of Markdown posts; defaults to POSTS_DIR" type:"path"`
	} `cmd:"" help:"Copy posts from a directory into the database"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("alplotlib"),
		kong.Description("Alplotlib blog server"))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// render owns stdout for the document.
	logOut := os.Stdout
	if kctx.Command() == "render" {
		logOut = os.Stderr
	}
	log := logger.New(logOut, cfg.InstanceName, level)
	logger.Install(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "serve":
		err = serve(ctx, cfg, log)
	case "render":
		err = render(ctx, cfg, CLI.Render.Variant, log)
	case "import", "import <dir>":
		err = importPosts(ctx, cfg, CLI.Import.Dir, log)
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}
	if err != nil {
		log.Error("Command failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	svc, err := services.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv, err := server.New(cfg, svc, log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// render writes the landing page as a static document, for hosting the
// page without the server.
func render(ctx context.Context, cfg config.Config, variant string, log *slog.Logger) error {
	if variant == "" {
		variant = cfg.Variant
	}
	pageCfg, err := landing.Variant(variant)
	if err != nil {
		return err
	}
	cfg.WatchPosts = false
	svc, err := services.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	doc := web.Layout(web.SiteName, landing.Page(pageCfg, posts.List(svc.Summaries)))
	return doc.Render(ctx, os.Stdout)
}

func importPosts(ctx context.Context, cfg config.Config, dir string, log *slog.Logger) error {
	if cfg.DatabaseURL == "" {
		return errors.New("import needs DATABASE_URL")
	}
	if dir == "" {
		dir = cfg.PostsDir
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := db.NewPostStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	files := posts.NewFileSource(dir)
	n := 0
	for sum, err := range files.Summaries(ctx) {
		if err != nil {
			return err
		}
		_, body, err := files.Markdown(ctx, sum.Slug)
		if err != nil {
			return err
		}
		if err := store.UpsertPost(ctx, sum, string(body)); err != nil {
			return err
		}
		log.Info("Imported post", logger.Slug(sum.Slug))
		n++
	}
	log.Info("Import finished", logger.Dir(dir), "posts", n)
	return nil
}
