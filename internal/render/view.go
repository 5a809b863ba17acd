package render

import (
	"notionsite/internal/domain/content"
	"notionsite/internal/preset"
)

// Site is the per-build data every page shares.
type Site struct {
	Name          string
	URL           string
	Tagline       string
	ContactEmail  string
	AnalyticsID   string
	SkimlinksID   string
	NewsletterURL string
	Year          int
}

// Page is the input of the shell: everything is trusted HTML and is
// substituted verbatim.
type Page struct {
	Title       string
	Description string
	Canonical   string
	Body        string
	JSONLD      string
	OG          OpenGraph
}

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

type ArticlePage struct {
	Meta      content.ArticleMeta
	Canonical string
	// BodyHTML is the rendered markdown body, possibly empty.
	BodyHTML string
	TOC      []Heading
	Products []content.Product
	Links    LinkRewriter
	Preset   preset.Preset
	Related  []content.ArticleMeta
}

// LinkRewriter turns a product link into its affiliate form.
type LinkRewriter interface {
	Rewrite(raw, productName string) string
}

type ListPage struct {
	Canonical string
	Items     []content.ArticleMeta
}

type HomePage struct {
	Canonical string
	Items     []content.ArticleMeta
}

type LegalPage struct {
	Slug      string
	Title     string
	Canonical string
	HTML      string
}

type NotFoundPage struct {
	Canonical string
}
