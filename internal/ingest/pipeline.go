package ingest

import (
	"notionsite/internal/domain/content"
	"notionsite/internal/notion"
)

// Warning is a recoverable per-record problem. The record is still used
// (with empty fields) unless the message says it was skipped.
type Warning struct {
	Record string
	Msg    string
}

// Result is the published subset of an Articles collection.
type Result struct {
	Articles    []content.Article
	Unpublished int
	Warns       []Warning
}

// Articles maps every record, drops unpublished and archived ones and
// enforces unique slugs: the first record keeps a slug, later ones are
// skipped with a warning. Input order is preserved.
func Articles(records []notion.Record) Result {
	var res Result
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		if rec.Archived {
			res.Unpublished++
			continue
		}
		a, warns := MapArticle(rec)
		if !a.Published {
			res.Unpublished++
			continue
		}
		res.Warns = append(res.Warns, warns...)

		if _, dup := seen[a.Meta.Slug]; dup {
			res.Warns = append(res.Warns, Warning{Record: rec.ID, Msg: "duplicate slug, skipped: " + a.Meta.Slug})
			continue
		}
		seen[a.Meta.Slug] = struct{}{}
		res.Articles = append(res.Articles, a)
	}
	return res
}

// Products builds the id-keyed product lookup.
func Products(records []notion.Record) map[string]content.Product {
	out := make(map[string]content.Product, len(records))
	for _, rec := range records {
		if rec.ID == "" || rec.Archived {
			continue
		}
		out[rec.ID] = MapProduct(rec)
	}
	return out
}

// Resolve returns the products behind ids in relation order. Unknown ids are
// skipped.
func Resolve(lookup map[string]content.Product, ids []string) []content.Product {
	out := make([]content.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := lookup[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
