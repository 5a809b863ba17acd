package render

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"notionsite/internal/domain/content"
	"notionsite/internal/preset"
)

var testSite = Site{
	Name:         "AutoSoundHQ",
	URL:          "https://example.test",
	Tagline:      "The Easiest Way to Choose Car Audio",
	ContactEmail: "hello@example.test",
	AnalyticsID:  "G-TEST",
	Year:         2031,
}

type prefixRewriter struct{}

func (prefixRewriter) Rewrite(raw, name string) string { return "https://aff.test/?u=" + raw }

func newTestRenderer(t *testing.T) *ShellRenderer {
	t.Helper()
	shell, err := LoadShell("")
	if err != nil {
		t.Fatalf("LoadShell: %v", err)
	}
	return NewShellRenderer(shell, testSite, nil)
}

func parse(t *testing.T, b []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestLayoutSubstitutesShellOnly(t *testing.T) {
	r := newTestRenderer(t)
	out := string(r.Layout(Page{
		Title:       "Hello — AutoSoundHQ",
		Description: "desc & more",
		Canonical:   "https://example.test/x.html",
		Body:        "<main>literal {{TITLE}}</main>",
		OG:          OpenGraph{Image: "https://img.test/a.jpg"},
	}))

	for _, want := range []string{
		"<title>Hello — AutoSoundHQ</title>",
		`<meta name="description" content="desc & more"/>`,
		`<link rel="canonical" href="https://example.test/x.html" />`,
		`<meta property="og:title" content="Hello — AutoSoundHQ" />`,
		`<meta property="og:image" content="https://img.test/a.jpg" />`,
		`<meta property="og:type" content="website" />`,
		"gtag/js?id=G-TEST",
		"<main>literal {{TITLE}}</main>",
		"© 2031 AutoSoundHQ.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(out, "skimlinks") {
		t.Error("skimlinks script rendered without a publisher id")
	}
}

func TestLoadShellOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "nav.html"), []byte("<nav>custom {{SITE_NAME}}</nav>"), 0o644); err != nil {
		t.Fatal(err)
	}
	shell, err := LoadShell(dir)
	if err != nil {
		t.Fatalf("LoadShell: %v", err)
	}
	def, _ := LoadShell("")
	if shell.Head != def.Head || shell.Footer != def.Footer {
		t.Fatal("missing overrides should fall back to defaults")
	}
	out := string(NewShellRenderer(shell, testSite, nil).Layout(Page{Title: "t"}))
	if !strings.Contains(out, "<nav>custom AutoSoundHQ</nav>") {
		t.Fatalf("nav override not used:\n%s", out)
	}
}

func samplePage() ArticlePage {
	return ArticlePage{
		Meta: content.ArticleMeta{
			Slug:    "tune-amp-gain",
			Title:   "How to Tune Amp Gain",
			Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Updated: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC),
		},
		Canonical: "https://example.test/articles/tune-amp-gain.html",
		BodyHTML:  "<h2 id=\"intro\">Intro</h2>\n<p>Gain is   not a volume knob. Set it with a test tone.</p>\n",
		Products: []content.Product{
			{ID: "p1", Name: "Kicker CX600.4", Brand: "Kicker", Link: "https://shop.test/cx", Image: "https://img.test/cx.jpg"},
			{ID: "p2"},
		},
		Links:   prefixRewriter{},
		Preset:  preset.For("How to Tune Amp Gain"),
		Related: []content.ArticleMeta{{Slug: "install-amp", Title: "Install a New Amp"}},
	}
}

func TestRenderArticle(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.RenderArticle(context.Background(), samplePage())
	if err != nil {
		t.Fatalf("RenderArticle: %v", err)
	}
	doc := parse(t, out)

	if got := doc.Find("title").Text(); got != "How to Tune Amp Gain — AutoSoundHQ" {
		t.Errorf("title = %q", got)
	}
	desc, _ := doc.Find(`meta[name="description"]`).Attr("content")
	if desc != "Gain is not a volume knob. Set it with a test tone." {
		t.Errorf("derived description = %q", desc)
	}
	if img, _ := doc.Find(`meta[property="og:image"]`).Attr("content"); img != "https://img.test/cx.jpg" {
		t.Errorf("og:image = %q", img)
	}
	if got := doc.Find("article.card").Length(); got != 2 {
		t.Errorf("cards = %d", got)
	}
	first, _ := doc.Find("article.card a").First().Attr("href")
	if first != "https://aff.test/?u=https://shop.test/cx" {
		t.Errorf("card link = %q", first)
	}
	if got := doc.Find("article.card h3").Last().Text(); got != "Product" {
		t.Errorf("unnamed product heading = %q", got)
	}
	if got := doc.Find("section.guide-content h2").Text(); got != "How to Tune a Car Amplifier" {
		t.Errorf("preset heading = %q", got)
	}
	if href, _ := doc.Find("section.related a").Attr("href"); href != "/articles/install-amp.html" {
		t.Errorf("related href = %q", href)
	}

	var types []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v struct {
			Type string `json:"@type"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			t.Errorf("json-ld: %v", err)
		}
		types = append(types, v.Type)
	})
	if strings.Join(types, ",") != "Article,FAQPage,HowTo" {
		t.Errorf("json-ld types = %v", types)
	}
}

func TestRenderArticleIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	a, err := r.RenderArticle(context.Background(), samplePage())
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.RenderArticle(context.Background(), samplePage())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same input rendered differently")
	}
}

func TestRenderListAndHome(t *testing.T) {
	r := newTestRenderer(t)
	items := []content.ArticleMeta{
		{Slug: "b", Title: "B", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "a", Title: "A"},
	}
	out, _ := r.RenderList(context.Background(), ListPage{Items: items})
	doc := parse(t, out)
	if got := doc.Find("ul.article-list li").Length(); got != 2 {
		t.Fatalf("list items = %d", got)
	}
	if href, _ := doc.Find("ul.article-list a").First().Attr("href"); href != "/articles/b.html" {
		t.Fatalf("first href = %q", href)
	}

	empty, _ := r.RenderList(context.Background(), ListPage{})
	if !strings.Contains(string(empty), "No published articles yet.") {
		t.Fatal("empty list placeholder missing")
	}

	home, _ := r.RenderHome(context.Background(), HomePage{Items: items[:1]})
	doc = parse(t, home)
	if got := doc.Find("title").Text(); got != "AutoSoundHQ — The Easiest Way to Choose Car Audio" {
		t.Fatalf("home title = %q", got)
	}
	if doc.Find("section.hero").Length() != 1 {
		t.Fatal("hero missing")
	}
}

func TestLegalPages(t *testing.T) {
	r := newTestRenderer(t)
	pages, err := r.LegalPages()
	if err != nil {
		t.Fatalf("LegalPages: %v", err)
	}
	if len(pages) != 5 {
		t.Fatalf("pages = %d", len(pages))
	}
	var contact LegalPage
	for _, p := range pages {
		if p.Title == "" || p.HTML == "" {
			t.Errorf("%s: empty page", p.Slug)
		}
		if p.Slug == "contact" {
			contact = p
		}
	}
	if !strings.Contains(contact.HTML, `href="mailto:hello@example.test"`) {
		t.Fatalf("contact html = %s", contact.HTML)
	}
	out, _ := r.RenderLegal(context.Background(), contact)
	if got := parse(t, out).Find("main h1").Text(); got != "Contact" {
		t.Fatalf("legal h1 = %q", got)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		width int
		want  string
	}{
		{"first non-empty paragraph", "<p> </p><p>Hello\n  world</p><p>second</p>", 160, "Hello world"},
		{"no paragraph", "<h2>Only a heading</h2>", 160, ""},
		{"empty", "", 160, ""},
		{"truncated", "<p>abcdefghij</p>", 5, "abcd…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.html, tt.width); got != tt.want {
				t.Fatalf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdownHeadings(t *testing.T) {
	res, err := NewMarkdownRenderer().Render([]byte("## Set the Gain\n\ntext\n\n## Filters\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Headings) != 2 || res.Headings[0].ID != "set-the-gain" || res.Headings[1].Text != "Filters" {
		t.Fatalf("headings = %+v", res.Headings)
	}
	if toc := TOC(res.Headings); !strings.Contains(toc, `href="#filters"`) {
		t.Fatalf("toc = %q", toc)
	}
}
