package app

import (
	"notionsite/internal/domain/content"
	"notionsite/internal/domain/site"
	"notionsite/internal/index"
)

// RouteBuilder derives the routes of a build from the index.
type RouteBuilder struct {
	Index *index.Store
}

func (rb *RouteBuilder) BuildArticleRoutes(articles []content.ArticleMeta) []site.Route {
	routes := make([]site.Route, 0, len(articles))
	for _, m := range articles {
		routes = append(routes, site.Article(m.Slug))
	}
	return routes
}

func (rb *RouteBuilder) BuildLegalRoutes() []site.Route {
	routes := make([]site.Route, 0, len(site.LegalSlugs))
	for _, slug := range site.LegalSlugs {
		routes = append(routes, site.Legal(slug))
	}
	return routes
}

// BuildSitemapRoutes lists every indexable page: home, the article index,
// each indexed article newest first, then the legal pages.
func (rb *RouteBuilder) BuildSitemapRoutes() ([]site.Route, error) {
	metas, err := rb.Index.List(index.ListOptions{})
	if err != nil {
		return nil, err
	}
	routes := []site.Route{site.Home(), site.Index()}
	routes = append(routes, rb.BuildArticleRoutes(metas)...)
	routes = append(routes, rb.BuildLegalRoutes()...)
	return routes, nil
}
