// Package weekly creates the "Top 5" article of the week from the Products
// collection.
package weekly

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"notionsite/internal/domain/content"
	"notionsite/internal/extract"
	"notionsite/internal/ingest"
	"notionsite/internal/logger"
	"notionsite/internal/notion"
)

var ErrNoTitleProperty = errors.New("articles database has no title property")

// Categories rotate one per calendar week, in this order.
var Categories = []string{
	"Coaxial Speakers",
	"Component Speakers",
	"4-Channel Amps",
	"Powered Subs",
	"Head Units",
	"Subwoofers",
}

// PickSize is how many products the digest lists.
const PickSize = 5

const week = 7 * 24 * time.Hour

// CategoryFor returns the category of the week containing t. Weeks are
// counted from the Unix epoch.
func CategoryFor(t time.Time) string {
	secs := int64(week / time.Second)
	weeks := t.Unix() / secs
	if t.Unix()%secs < 0 {
		weeks--
	}
	n := int64(len(Categories))
	return Categories[((weeks%n)+n)%n]
}

var leadingSize = regexp.MustCompile(`^\d{1,2}("|in| inch)`)

// DetectCategory guesses the category of a product from its name when the
// collection has none.
func DetectCategory(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "component"):
		return "Component Speakers"
	case strings.Contains(n, "coax"):
		return "Coaxial Speakers"
	case strings.Contains(n, "4-channel"), strings.Contains(n, "4 channel"), strings.Contains(n, "x4"):
		return "4-Channel Amps"
	case strings.Contains(n, "powered sub"), strings.Contains(n, "under-seat"), strings.Contains(n, "pwe-"):
		return "Powered Subs"
	case strings.Contains(n, "head unit"), strings.Contains(n, "receiver"), strings.Contains(n, "carplay"), strings.Contains(n, "dmx"):
		return "Head Units"
	case strings.Contains(n, "subwoofer"), leadingSize.MatchString(n):
		return "Subwoofers"
	}
	return "Coaxial Speakers"
}

// Pick selects up to PickSize products in category, cheapest first with
// unpriced products last. When none is in category it picks from all of
// them; matched reports which happened.
func Pick(products []content.Product, category string) (picks []content.Product, matched bool) {
	var pool []content.Product
	for _, p := range products {
		if categoryOf(p) == category {
			pool = append(pool, p)
		}
	}
	matched = len(pool) > 0
	if !matched {
		pool = append(pool, products...)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.HasPrice != b.HasPrice {
			return a.HasPrice
		}
		return a.Price < b.Price
	})
	return pool[:min(PickSize, len(pool))], matched
}

func categoryOf(p content.Product) string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return c
	}
	return DetectCategory(p.Name)
}

func Title(category string, now time.Time) string {
	return fmt.Sprintf("Top 5 %s — Week of %s", category, now.Format("Jan 02, 2006"))
}

func Description(category string, matched bool) string {
	from := "our latest inventory"
	if matched {
		from = category
	}
	return fmt.Sprintf("Our updated %s picks this week. Curated from %s based on value, performance, and availability.",
		strings.ToLower(category), from)
}

type Digest struct {
	Source     notion.Source
	ArticlesDB string
	ProductsDB string
	Log        *logger.Logger
	// Now picks the week and stamps the article. Defaults to time.Now.
	Now func() time.Time
}

type Result struct {
	Category string
	Title    string
	Picks    []content.Product
	// Matched is false when the picks came from the whole catalog.
	Matched bool
	PageID  string
}

func (d *Digest) Run(ctx context.Context) (*Result, error) {
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "weekly")
	now := d.now()

	db, err := d.Source.RetrieveDatabase(ctx, d.ArticlesDB)
	if err != nil {
		return nil, fmt.Errorf("retrieve articles schema: %w", err)
	}
	cols, ok := extract.ArticleColumns(db.Properties)
	if !ok {
		return nil, ErrNoTitleProperty
	}

	recs, err := notion.QueryAll(ctx, d.Source, d.ProductsDB)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	products := make([]content.Product, 0, len(recs))
	for _, rec := range recs {
		if rec.Archived {
			continue
		}
		products = append(products, ingest.MapProduct(rec))
	}

	category := CategoryFor(now)
	picks, matched := Pick(products, category)
	res := &Result{
		Category: category,
		Title:    Title(category, now),
		Picks:    picks,
		Matched:  matched,
	}
	log.Info("weekly picks", "category", category, "products", len(products), "picked", len(picks), "matched", matched)

	props := map[string]notion.PropertyValue{
		cols.Title: notion.TitleValue(res.Title),
	}
	if cols.Description != "" {
		props[cols.Description] = cols.TextValue(Description(category, matched))
	}
	if name, ok := statusOption(cols); ok {
		props[cols.Status] = cols.StatusValue(name)
	}
	if cols.Published != "" {
		props[cols.Published] = notion.CheckboxValue(true)
	}
	if cols.Date != "" {
		props[cols.Date] = notion.DateOnlyValue(now)
	}
	if cols.Products != "" {
		ids := make([]string, 0, len(picks))
		for _, p := range picks {
			ids = append(ids, p.ID)
		}
		props[cols.Products] = notion.RelationValue(ids)
	}

	page, err := d.Source.CreatePage(ctx, d.ArticlesDB, props)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	res.PageID = page.ID
	log.Info("created weekly article", "id", page.ID, "title", res.Title)
	return res, nil
}

// statusOption picks what to write to the status column. Select columns
// accept a new "Published" option; status columns only take an existing one,
// so a status column without a published option is left unset.
func statusOption(cols extract.Columns) (string, bool) {
	if cols.Status == "" {
		return "", false
	}
	if name, ok := cols.PublishedOption(); ok {
		return name, true
	}
	if cols.StatusType == notion.TypeStatus {
		return "", false
	}
	return "Published", true
}

func (d *Digest) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}
