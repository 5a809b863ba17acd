package render

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

//go:embed defaults/*.html
var defaultFS embed.FS

// ShellParts are the overridable fragment files, in document order.
var ShellParts = []string{"head.html", "nav.html", "footer.html"}

// Shell is the page frame every output page shares.
type Shell struct {
	Head   string
	Nav    string
	Footer string
}

// LoadShell reads head.html, nav.html and footer.html from dir, falling
// back to the embedded default for any that do not exist. An empty dir
// yields the defaults.
func LoadShell(dir string) (Shell, error) {
	parts := make([]string, len(ShellParts))
	for i, name := range ShellParts {
		s, err := readPart(dir, name)
		if err != nil {
			return Shell{}, err
		}
		parts[i] = s
	}
	return Shell{Head: parts[0], Nav: parts[1], Footer: parts[2]}, nil
}

func readPart(dir, name string) (string, error) {
	if dir != "" {
		b, err := os.ReadFile(filepath.Join(dir, name))
		switch {
		case err == nil:
			return string(b), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("read template %s: %w", name, err)
		}
	}
	b, err := defaultFS.ReadFile("defaults/" + name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ShellRenderer renders pages by placeholder substitution. Nothing it is
// given is escaped.
type ShellRenderer struct {
	shell Shell
	site  Site
	md    *MarkdownRenderer
}

func NewShellRenderer(shell Shell, site Site, md *MarkdownRenderer) *ShellRenderer {
	if md == nil {
		md = NewMarkdownRenderer()
	}
	return &ShellRenderer{shell: shell, site: site, md: md}
}

// Layout wraps p in the shell. Placeholders are substituted in the head,
// nav and footer only; the body is copied through.
func (r *ShellRenderer) Layout(p Page) []byte {
	og := p.OG
	if og.Title == "" {
		og.Title = p.Title
	}
	if og.Description == "" {
		og.Description = p.Description
	}
	if og.Type == "" {
		og.Type = "website"
	}

	year := strconv.Itoa(r.site.Year)
	head := strings.NewReplacer(
		"{{TITLE}}", p.Title,
		"{{DESC}}", p.Description,
		"{{CANONICAL}}", p.Canonical,
		"{{OG_TITLE}}", og.Title,
		"{{OG_DESC}}", og.Description,
		"{{OG_IMAGE}}", og.Image,
		"{{OG_TYPE}}", og.Type,
		"{{JSONLD}}", p.JSONLD,
		"{{ANALYTICS}}", r.analytics(),
		"{{GA4}}", r.site.AnalyticsID,
		"{{SKIM}}", r.site.SkimlinksID,
		"{{SITE_NAME}}", r.site.Name,
		"{{YEAR}}", year,
	)
	chrome := strings.NewReplacer(
		"{{SITE_NAME}}", r.site.Name,
		"{{YEAR}}", year,
	)

	var b strings.Builder
	b.Grow(len(r.shell.Head) + len(r.shell.Nav) + len(p.Body) + len(r.shell.Footer))
	b.WriteString(head.Replace(r.shell.Head))
	b.WriteString(chrome.Replace(r.shell.Nav))
	b.WriteString(p.Body)
	b.WriteString(chrome.Replace(r.shell.Footer))
	return []byte(b.String())
}

func (r *ShellRenderer) analytics() string {
	var b strings.Builder
	if id := r.site.AnalyticsID; id != "" {
		fmt.Fprintf(&b, "    <script async src=\"https://www.googletagmanager.com/gtag/js?id=%s\"></script>\n", id)
		fmt.Fprintf(&b, "    <script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config','%s');</script>\n", id)
	}
	if id := r.site.SkimlinksID; id != "" {
		fmt.Fprintf(&b, "    <script type=\"text/javascript\" src=\"https://s.skimresources.com/js/%s.skimlinks.js\"></script>\n", id)
	}
	return b.String()
}

func (r *ShellRenderer) title(t string) string {
	if t == "" {
		return r.site.Name
	}
	return t + " — " + r.site.Name
}

func (r *ShellRenderer) RenderArticle(ctx context.Context, page ArticlePage) ([]byte, error) {
	m := page.Meta
	desc := m.Description
	if desc == "" {
		desc = Describe(page.BodyHTML, DescriptionWidth)
	}

	var b strings.Builder
	b.WriteString(`<main class="container"><article>`)
	fmt.Fprintf(&b, "<h1>%s</h1>", m.Title)
	if !m.Date.IsZero() {
		fmt.Fprintf(&b, `<p class="muted small"><time datetime="%s">%s</time></p>`, m.Date.Format("2006-01-02"), m.Date.Format("Jan 2, 2006"))
	}
	if m.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>", m.Description)
	}
	b.WriteString(TOC(page.TOC))
	if page.BodyHTML != "" {
		fmt.Fprintf(&b, "\n<div class=\"article-body\">\n%s</div>", page.BodyHTML)
	}
	b.WriteString(ProductGrid(page.Products, page.Links))
	b.WriteString(page.Preset.HTML)
	b.WriteString(FAQSection(page.Preset.FAQ))
	b.WriteString(RelatedList(page.Related))
	b.WriteString(Newsletter(r.site.NewsletterURL))
	b.WriteString(`<hr/><p><em>Disclosure:</em> We may earn a commission when you buy via links on our site.</p>`)
	b.WriteString("</article></main>")

	ld, err := ArticleJSONLD(r.site, page, desc)
	if err != nil {
		return nil, fmt.Errorf("json-ld %s: %w", m.Slug, err)
	}
	image := m.Cover
	if image == "" {
		for _, p := range page.Products {
			if p.Image != "" {
				image = p.Image
				break
			}
		}
	}
	return r.Layout(Page{
		Title:       r.title(m.Title),
		Description: desc,
		Canonical:   page.Canonical,
		Body:        b.String(),
		JSONLD:      ld,
		OG: OpenGraph{
			Title: m.Title,
			Image: image,
			Type:  "article",
		},
	}), nil
}

func (r *ShellRenderer) RenderList(ctx context.Context, page ListPage) ([]byte, error) {
	body := `<main class="container"><h1>Articles &amp; Guides</h1>` + ArticleList(page.Items) + `</main>`
	return r.Layout(Page{
		Title:       r.site.Name + " Articles",
		Description: "All " + r.site.Name + " guides and product roundups.",
		Canonical:   page.Canonical,
		Body:        body,
	}), nil
}

func (r *ShellRenderer) RenderHome(ctx context.Context, page HomePage) ([]byte, error) {
	var b strings.Builder
	b.WriteString(Hero())
	if len(page.Items) > 0 {
		b.WriteString(`<main class="container"><h2>Latest Guides</h2>`)
		b.WriteString(ArticleList(page.Items))
		b.WriteString(Newsletter(r.site.NewsletterURL))
		b.WriteString(`</main>`)
	}
	title := r.site.Name
	if r.site.Tagline != "" {
		title += " — " + r.site.Tagline
	}
	ld, err := WebsiteJSONLD(r.site)
	if err != nil {
		return nil, err
	}
	return r.Layout(Page{
		Title:       title,
		Description: "Expert, no-fluff car audio picks.",
		Canonical:   page.Canonical,
		Body:        b.String(),
		JSONLD:      ld,
	}), nil
}

func (r *ShellRenderer) RenderLegal(ctx context.Context, page LegalPage) ([]byte, error) {
	body := fmt.Sprintf("<main class=\"container\"><h1>%s</h1>\n%s</main>", page.Title, page.HTML)
	return r.Layout(Page{
		Title:       r.title(page.Title),
		Description: page.Title,
		Canonical:   page.Canonical,
		Body:        body,
	}), nil
}

func (r *ShellRenderer) RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error) {
	body := `<main class="container"><h1>Page Not Found</h1>` +
		`<p>The page you were looking for does not exist or has moved.</p>` +
		`<p><a class="btn" href="/articles/index.html">Browse all articles</a></p></main>`
	return r.Layout(Page{
		Title:       r.title("Page Not Found"),
		Description: "Page not found.",
		Canonical:   page.Canonical,
		Body:        body,
	}), nil
}

// DescriptionWidth is the display width meta descriptions are cut to.
const DescriptionWidth = 160

// truncateWidth cuts s to width display columns, ending in an ellipsis when
// anything was dropped.
func truncateWidth(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
