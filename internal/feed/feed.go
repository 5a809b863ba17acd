// Package feed writes the machine-readable outputs of a build: robots.txt,
// sitemap.xml and the RSS 2.0 feed.
package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notionsite/internal/domain/content"
	"notionsite/internal/domain/site"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// MaxItems caps the number of entries in feed.xml.
const MaxItems = 50

func Robots(siteURL string) []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s\n", site.Sitemap().URL(siteURL)))
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap lists routes in the order given. lastmod is keyed by route
// OutPath; routes without an entry carry no <lastmod>.
func Sitemap(siteURL string, routes []site.Route, lastmod map[string]time.Time) ([]byte, error) {
	set := urlset{XMLNS: sitemapNS, URLs: make([]sitemapURL, 0, len(routes))}
	for _, r := range routes {
		u := sitemapURL{Loc: r.URL(siteURL)}
		if t, ok := lastmod[r.OutPath]; ok && !t.IsZero() {
			u.LastMod = t.UTC().Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, u)
	}
	return marshal(set)
}

// Channel is the feed-level metadata.
type Channel struct {
	Title       string
	Link        string
	Description string
	Language    string
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description,omitempty"`
	PubDate     string  `xml:"pubDate,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// GUID is the stable item id of an article URL: a UUIDv5 in the URL
// namespace, so it survives rebuilds.
func GUID(articleURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(articleURL)).String()
}

// RSS renders items, expected newest first, as an RSS 2.0 document.
// lastBuildDate is the newest item date so an unchanged site yields an
// unchanged feed.
func RSS(siteURL string, ch Channel, items []content.ArticleMeta) ([]byte, error) {
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	out := rss{
		Version: "2.0",
		Channel: rssChannel{
			Title:       ch.Title,
			Link:        ch.Link,
			Description: ch.Description,
			Language:    ch.Language,
			Items:       make([]rssItem, 0, len(items)),
		},
	}
	var newest time.Time
	for _, m := range items {
		link := site.Article(m.Slug).URL(siteURL)
		it := rssItem{
			Title:       m.Title,
			Link:        link,
			Description: m.Description,
			GUID:        rssGUID{Value: GUID(link)},
		}
		if !m.Date.IsZero() {
			it.PubDate = m.Date.UTC().Format(time.RFC1123Z)
			if m.Date.After(newest) {
				newest = m.Date
			}
		}
		out.Channel.Items = append(out.Channel.Items, it)
	}
	if !newest.IsZero() {
		out.Channel.LastBuildDate = newest.UTC().Format(time.RFC1123Z)
	}
	return marshal(out)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
