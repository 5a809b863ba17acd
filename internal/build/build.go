// Package build turns the Articles and Products collections into the static
// site under the public directory.
package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"notionsite/internal/app"
	"notionsite/internal/domain/config"
	"notionsite/internal/domain/content"
	"notionsite/internal/domain/site"
	"notionsite/internal/feed"
	"notionsite/internal/index"
	"notionsite/internal/ingest"
	"notionsite/internal/links"
	"notionsite/internal/logger"
	"notionsite/internal/notion"
	"notionsite/internal/preset"
	"notionsite/internal/related"
	"notionsite/internal/render"
)

type Builder struct {
	Cfg    config.Config
	Source notion.Source
	Log    *logger.Logger
}

type Result struct {
	Articles    int
	Unpublished int
	Written     int
	Pruned      []string
	Warnings    []ingest.Warning
}

// staticAssets are copied from the assets directory when present.
var staticAssets = []struct{ src, dst string }{
	{"styles.css", "css/styles.css"},
	{"favicon.ico", "img/favicon.ico"},
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	log := b.Log
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "build", "run", uuid.NewString())

	products := map[string]content.Product{}
	if db := b.Cfg.Notion.ProductsDB; db != "" {
		recs, err := notion.QueryAll(ctx, b.Source, db)
		if err != nil {
			return nil, fmt.Errorf("fetch products: %w", err)
		}
		products = ingest.Products(recs)
		log.Info("products fetched", "count", len(products))
	}

	recs, err := notion.QueryAll(ctx, b.Source, b.Cfg.Notion.ArticlesDB)
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}
	ing := ingest.Articles(recs)
	for _, w := range ing.Warns {
		log.Debug("record warning", "record", w.Record, "msg", w.Msg)
	}
	log.Info("articles fetched", "records", len(recs), "published", len(ing.Articles), "unpublished", ing.Unpublished)

	st, err := index.Open(index.OpenOptions{Path: b.Cfg.Build.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer st.Close()

	metas := make([]content.ArticleMeta, 0, len(ing.Articles))
	for _, a := range ing.Articles {
		metas = append(metas, a.Meta)
	}
	if err := st.Rebuild(metas); err != nil {
		return nil, fmt.Errorf("rebuild index: %w", err)
	}

	md := render.NewMarkdownRenderer()
	shell, err := render.LoadShell(b.Cfg.Build.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("load templates(%s): %w", b.Cfg.Build.TemplateDir, err)
	}
	tpl := render.NewShellRenderer(shell, b.siteView(), md)

	outDir := b.Cfg.Build.PublicDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir public: %w", err)
	}
	previous, err := st.Fingerprints()
	if err != nil {
		return nil, fmt.Errorf("read fingerprints: %w", err)
	}
	out := newOutput(outDir, previous)

	if err := b.buildAll(ctx, st, md, tpl, out, ing.Articles, products); err != nil {
		return nil, err
	}

	pruned, err := out.prune()
	if err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}
	if err := st.ReplaceFingerprints(out.current); err != nil {
		return nil, fmt.Errorf("save fingerprints: %w", err)
	}
	log.Info("build complete", "dir", outDir, "files", len(out.current), "written", out.written, "pruned", len(pruned))

	return &Result{
		Articles:    len(ing.Articles),
		Unpublished: ing.Unpublished,
		Written:     out.written,
		Pruned:      pruned,
		Warnings:    ing.Warns,
	}, nil
}

func (b *Builder) siteView() render.Site {
	s := b.Cfg.Site
	return render.Site{
		Name:          s.Name,
		URL:           strings.TrimRight(s.SiteURL, "/"),
		Tagline:       s.Tagline,
		ContactEmail:  s.ContactEmail,
		AnalyticsID:   s.AnalyticsID,
		SkimlinksID:   b.Cfg.Affiliate.SkimlinksID,
		NewsletterURL: s.NewsletterURL,
		Year:          b.Cfg.Build.Now.Year(),
	}
}

func (b *Builder) buildAll(
	ctx context.Context,
	st *index.Store,
	md *render.MarkdownRenderer,
	tpl *render.ShellRenderer,
	out *output,
	arts []content.Article,
	products map[string]content.Product,
) error {
	if err := b.buildArticles(ctx, md, tpl, out, arts, products); err != nil {
		return fmt.Errorf("build articles: %w", err)
	}

	if err := b.buildIndex(ctx, st, tpl, out); err != nil {
		return fmt.Errorf("build article index: %w", err)
	}

	if err := b.buildHome(ctx, st, tpl, out); err != nil {
		return fmt.Errorf("build home: %w", err)
	}

	if err := b.buildLegal(ctx, tpl, out); err != nil {
		return fmt.Errorf("build legal pages: %w", err)
	}

	if err := b.buildNotFound(ctx, tpl, out); err != nil {
		return fmt.Errorf("build 404: %w", err)
	}

	if err := b.buildFeeds(st, out, arts); err != nil {
		return fmt.Errorf("build feeds: %w", err)
	}

	if err := b.buildVerification(out); err != nil {
		return fmt.Errorf("build verification: %w", err)
	}

	if err := b.copyStaticAssets(out); err != nil {
		return fmt.Errorf("copy static assets: %w", err)
	}
	return nil
}

func (b *Builder) buildArticles(
	ctx context.Context,
	md *render.MarkdownRenderer,
	tpl *render.ShellRenderer,
	out *output,
	arts []content.Article,
	products map[string]content.Product,
) error {
	siteURL := b.Cfg.Site.SiteURL
	rw := links.Rewriter{
		AmazonTag:   b.Cfg.Affiliate.AmazonTag,
		SkimlinksID: b.Cfg.Affiliate.SkimlinksID,
	}

	all := make([]content.ArticleMeta, 0, len(arts))
	for _, a := range arts {
		all = append(all, a.Meta)
	}

	for _, a := range arts {
		meta := a.Meta
		route := site.Article(meta.Slug)

		page := render.ArticlePage{
			Meta:      meta,
			Canonical: route.URL(siteURL),
			Products:  ingest.Resolve(products, a.ProductIDs),
			Links:     rw,
			Preset:    preset.For(meta.Title),
			Related:   related.Rank(meta, all, b.Cfg.Build.RelatedSize),
		}
		if limit := b.Cfg.Build.MaxProducts; limit > 0 && len(page.Products) > limit {
			page.Products = page.Products[:limit]
		}

		if strings.TrimSpace(a.Body) != "" {
			res, err := md.Render([]byte(a.Body))
			if err != nil {
				return fmt.Errorf("markdown render(%s): %w", meta.Slug, err)
			}
			page.BodyHTML = string(res.HTML)
			page.TOC = res.Headings
		}

		htmlBytes, err := tpl.RenderArticle(ctx, page)
		if err != nil {
			return fmt.Errorf("render article(%s): %w", meta.Slug, err)
		}
		if err := out.write(route.OutPath, htmlBytes); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildIndex(ctx context.Context, st *index.Store, tpl render.Renderer, out *output) error {
	items, err := st.List(index.ListOptions{})
	if err != nil {
		return err
	}
	route := site.Index()
	htmlBytes, err := tpl.RenderList(ctx, render.ListPage{
		Canonical: route.URL(b.Cfg.Site.SiteURL),
		Items:     items,
	})
	if err != nil {
		return err
	}
	return out.write(route.OutPath, htmlBytes)
}

func (b *Builder) buildHome(ctx context.Context, st *index.Store, tpl render.Renderer, out *output) error {
	items, err := st.Latest(b.Cfg.Build.HomeSize)
	if err != nil {
		return err
	}
	route := site.Home()
	htmlBytes, err := tpl.RenderHome(ctx, render.HomePage{
		Canonical: route.URL(b.Cfg.Site.SiteURL),
		Items:     items,
	})
	if err != nil {
		return err
	}
	return out.write(route.OutPath, htmlBytes)
}

func (b *Builder) buildLegal(ctx context.Context, tpl *render.ShellRenderer, out *output) error {
	pages, err := tpl.LegalPages()
	if err != nil {
		return err
	}
	for _, p := range pages {
		route := site.Legal(p.Slug)
		p.Canonical = route.URL(b.Cfg.Site.SiteURL)
		htmlBytes, err := tpl.RenderLegal(ctx, p)
		if err != nil {
			return fmt.Errorf("render %s: %w", p.Slug, err)
		}
		if err := out.write(route.OutPath, htmlBytes); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildNotFound(ctx context.Context, tpl render.Renderer, out *output) error {
	route := site.NotFound()
	htmlBytes, err := tpl.RenderNotFound(ctx, render.NotFoundPage{
		Canonical: route.URL(b.Cfg.Site.SiteURL),
	})
	if err != nil {
		return err
	}
	return out.write(route.OutPath, htmlBytes)
}

func (b *Builder) buildFeeds(st *index.Store, out *output, arts []content.Article) error {
	siteURL := strings.TrimRight(b.Cfg.Site.SiteURL, "/")

	if err := out.write(site.Robots().OutPath, feed.Robots(siteURL)); err != nil {
		return err
	}

	rb := app.RouteBuilder{Index: st}
	routes, err := rb.BuildSitemapRoutes()
	if err != nil {
		return err
	}
	lastmod := make(map[string]time.Time, len(arts))
	for _, a := range arts {
		t := a.Meta.Updated
		if t.IsZero() {
			t = a.Meta.Date
		}
		lastmod[site.Article(a.Meta.Slug).OutPath] = t
	}
	sm, err := feed.Sitemap(siteURL, routes, lastmod)
	if err != nil {
		return fmt.Errorf("sitemap: %w", err)
	}
	if err := out.write(site.Sitemap().OutPath, sm); err != nil {
		return err
	}

	items, err := st.List(index.ListOptions{})
	if err != nil {
		return err
	}
	rss, err := feed.RSS(siteURL, feed.Channel{
		Title:       b.Cfg.Site.Name,
		Link:        site.Home().URL(siteURL),
		Description: b.Cfg.Site.Tagline,
		Language:    b.Cfg.Site.Language,
	}, items)
	if err != nil {
		return fmt.Errorf("rss: %w", err)
	}
	return out.write(site.RSS().OutPath, rss)
}

// buildVerification writes <key>.txt containing the key. Keys that are not
// a plain file name are refused.
func (b *Builder) buildVerification(out *output) error {
	key := strings.TrimSpace(b.Cfg.Site.VerificationKey)
	if key == "" {
		return nil
	}
	if key != filepath.Base(key) || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("verification key %q is not a file name", key)
	}
	return out.write(site.Verification(key).OutPath, []byte(key))
}

func (b *Builder) copyStaticAssets(out *output) error {
	for _, a := range staticAssets {
		data, err := os.ReadFile(filepath.Join(b.Cfg.Build.AssetsDir, a.src))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		if err := out.write(site.Asset(a.dst).OutPath, data); err != nil {
			return err
		}
	}
	return nil
}
