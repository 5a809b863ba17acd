// Package links rewrites outbound product links for affiliate tracking.
package links

import (
	"net/url"
	"strings"
)

const skimlinksRedirect = "https://go.skimresources.com/"

// Retailers pass through untouched; they have their own programs.
var Retailers = []string{
	"crutchfield.com",
	"bestbuy.com",
	"walmart.com",
	"sonicelectronix.com",
}

type Rewriter struct {
	AmazonTag   string
	SkimlinksID string
}

// Rewrite returns the link a product card should point at. An empty link
// becomes "#"; a link that does not parse as an absolute URL is returned
// as-is.
func (rw Rewriter) Rewrite(raw, productName string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "#"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.ToLower(u.Hostname())

	switch {
	case isAmazon(host):
		return rw.amazon(u, productName)
	case isRetailer(host):
		return raw
	case rw.SkimlinksID != "":
		q := url.Values{}
		q.Set("id", rw.SkimlinksID)
		q.Set("xs", "1")
		q.Set("url", raw)
		return skimlinksRedirect + "?" + encodeOrdered(q, "id", "xs", "url")
	}
	return raw
}

func (rw Rewriter) amazon(u *url.URL, productName string) string {
	if rw.AmazonTag == "" {
		return u.String()
	}
	if name := strings.TrimSpace(productName); name != "" {
		q := url.Values{}
		q.Set("k", name)
		q.Set("tag", rw.AmazonTag)
		return "https://www.amazon.com/s?" + encodeOrdered(q, "k", "tag")
	}
	q := u.Query()
	q.Set("tag", rw.AmazonTag)
	u.RawQuery = q.Encode()
	return u.String()
}

// isAmazon matches amazon.<tld> and its subdomains: www.amazon.com,
// smile.amazon.co.uk, amazon.de.
func isAmazon(host string) bool {
	labels := strings.Split(host, ".")
	for _, l := range labels[:len(labels)-1] {
		if l == "amazon" {
			return true
		}
	}
	return false
}

func isRetailer(host string) bool {
	for _, r := range Retailers {
		if host == r || strings.HasSuffix(host, "."+r) {
			return true
		}
	}
	return false
}

// encodeOrdered is url.Values.Encode with a fixed key order instead of a
// sorted one.
func encodeOrdered(q url.Values, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(q.Get(k)))
	}
	return strings.Join(parts, "&")
}
