package render

import (
	"fmt"
	"html"
	"strings"

	"notionsite/internal/domain/content"
	"notionsite/internal/domain/site"
	"notionsite/internal/preset"
)

// ProductGrid renders the "Top Picks" cards. Links go through rw; a nil rw
// leaves them as they are.
func ProductGrid(products []content.Product, rw LinkRewriter) string {
	if len(products) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<h2>Top Picks</h2><div class="grid">`)
	for _, p := range products {
		link := p.Link
		if rw != nil {
			link = rw.Rewrite(p.Link, p.Name)
		} else if link == "" {
			link = "#"
		}
		name := p.Name
		if name == "" {
			name = "Product"
		}

		b.WriteString("\n<article class=\"card\">")
		if p.Image != "" {
			fmt.Fprintf(&b, "\n  <img src=\"%s\" alt=\"%s\" loading=\"lazy\" />", p.Image, name)
		}
		fmt.Fprintf(&b, "\n  <h3>%s</h3>", name)
		if specs := p.Specs(); specs != "" {
			fmt.Fprintf(&b, "\n  <p>%s</p>", specs)
		}
		if p.PriceText != "" {
			fmt.Fprintf(&b, "\n  <p class=\"price\">%s</p>", p.PriceText)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "\n  <p>%s</p>", truncateWidth(p.Description, 200))
		}
		fmt.Fprintf(&b, "\n  <p><a href=\"%s\" target=\"_blank\" rel=\"sponsored noopener\">View</a></p>", link)
		if p.Pros != "" {
			fmt.Fprintf(&b, "\n  <p><small>Pros: %s</small></p>", p.Pros)
		}
		if p.Cons != "" {
			fmt.Fprintf(&b, "\n  <p><small>Cons: %s</small></p>", p.Cons)
		}
		b.WriteString("\n</article>")
	}
	b.WriteString("\n</div>")
	return b.String()
}

// FAQSection renders the visible counterpart of the FAQPage data.
func FAQSection(faq []preset.FAQ) string {
	if len(faq) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n<section class=\"faq\">\n  <h2>FAQ</h2>")
	for _, f := range faq {
		fmt.Fprintf(&b, "\n  <p><strong>%s</strong> %s</p>", f.Question, f.Answer)
	}
	b.WriteString("\n</section>")
	return b.String()
}

func RelatedList(items []content.ArticleMeta) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n<section class=\"related\">\n  <h2>Related Guides</h2>\n  <ul>")
	for _, m := range items {
		fmt.Fprintf(&b, "\n    <li><a href=\"%s\">%s</a></li>", site.Article(m.Slug).URLPath(), m.Title)
	}
	b.WriteString("\n  </ul>\n</section>")
	return b.String()
}

// ArticleList renders items in the order given.
func ArticleList(items []content.ArticleMeta) string {
	if len(items) == 0 {
		return `<ul class="article-list"><li>No published articles yet.</li></ul>`
	}
	var b strings.Builder
	b.WriteString(`<ul class="article-list">`)
	for _, m := range items {
		fmt.Fprintf(&b, "\n  <li><a href=\"%s\">%s</a>", site.Article(m.Slug).URLPath(), m.Title)
		if !m.Date.IsZero() {
			fmt.Fprintf(&b, ` <time datetime="%s">%s</time>`, m.Date.Format("2006-01-02"), m.Date.Format("Jan 2, 2006"))
		}
		b.WriteString("</li>")
	}
	b.WriteString("\n</ul>")
	return b.String()
}

func TOC(heads []Heading) string {
	var items []Heading
	for _, h := range heads {
		if h.Level == 2 && h.ID != "" {
			items = append(items, h)
		}
	}
	if len(items) < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n<nav class=\"toc\"><p><strong>On this page</strong></p><ul>")
	for _, h := range items {
		fmt.Fprintf(&b, "<li><a href=\"#%s\">%s</a></li>", h.ID, html.EscapeString(h.Text))
	}
	b.WriteString("</ul></nav>")
	return b.String()
}

func Hero() string {
	return `<section class="hero"><div class="container">
        <h1>Upgrade Your Car's Sound—Without Guesswork</h1>
        <p>We compare speakers, subs, amps, and head units across budgets and use-cases. Every pick links to trusted retailers. You buy, we may earn a commission.</p>
        <p><a class="btn" href="/articles/index.html">Browse Top Picks</a></p>
      </div></section>`
}

// Newsletter is the sign-up embed, or "" when no embed URL is configured.
func Newsletter(embedURL string) string {
	if strings.TrimSpace(embedURL) == "" {
		return ""
	}
	return fmt.Sprintf("\n<section class=\"newsletter\">\n  <h2>Get the weekly picks</h2>\n  <iframe src=\"%s\" width=\"100%%\" height=\"320\" frameborder=\"0\" scrolling=\"no\" loading=\"lazy\"></iframe>\n</section>", embedURL)
}
