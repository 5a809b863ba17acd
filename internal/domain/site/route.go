package site

import (
	"fmt"
	"path"
	"strings"
)

type RouteKind string

const (
	RouteHome         RouteKind = "home"
	RouteIndex        RouteKind = "index"
	RouteArticle      RouteKind = "article"
	RouteLegal        RouteKind = "legal"
	RouteRSS          RouteKind = "rss"
	RouteSitemap      RouteKind = "sitemap"
	RouteRobots       RouteKind = "robots"
	RouteNotFound     RouteKind = "404"
	RouteVerification RouteKind = "verification"
	RouteAsset        RouteKind = "asset"
)

// LegalSlugs are the static pages, in sitemap order.
var LegalSlugs = []string{"about", "contact", "disclosure", "privacy", "terms"}

// Route is a logical page and where it lands under the output root. OutPath
// always uses forward slashes.
type Route struct {
	Kind    RouteKind
	Slug    string
	OutPath string
}

func Home() Route     { return Route{Kind: RouteHome, OutPath: "index.html"} }
func Index() Route    { return Route{Kind: RouteIndex, OutPath: "articles/index.html"} }
func NotFound() Route { return Route{Kind: RouteNotFound, OutPath: "404.html"} }
func Robots() Route   { return Route{Kind: RouteRobots, OutPath: "robots.txt"} }
func Sitemap() Route  { return Route{Kind: RouteSitemap, OutPath: "sitemap.xml"} }
func RSS() Route      { return Route{Kind: RouteRSS, OutPath: "feed.xml"} }

func Article(slug string) Route {
	return Route{Kind: RouteArticle, Slug: slug, OutPath: path.Join("articles", slug+".html")}
}

func Legal(slug string) Route {
	return Route{Kind: RouteLegal, Slug: slug, OutPath: slug + ".html"}
}

func Verification(key string) Route {
	return Route{Kind: RouteVerification, Slug: key, OutPath: key + ".txt"}
}

func Asset(rel string) Route {
	return Route{Kind: RouteAsset, OutPath: path.Join("assets", rel)}
}

// URLPath is the site-absolute path of the route; the home page is "/".
func (r Route) URLPath() string {
	if r.Kind == RouteHome {
		return "/"
	}
	return "/" + r.OutPath
}

// URL joins the route onto the canonical site URL.
func (r Route) URL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + r.URLPath()
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.OutPath != "" {
		parts = append(parts, fmt.Sprintf("out=%s", r.OutPath))
	}
	return strings.Join(parts, " ")
}
