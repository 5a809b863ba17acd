package ingest

import (
	"strconv"
	"strings"
	"unicode"

	"notionsite/internal/domain/content"
	"notionsite/internal/extract"
	"notionsite/internal/notion"
)

// UntitledSlug is used when neither the slug column nor the title yields a
// usable slug.
const UntitledSlug = "untitled"

// MapArticle reads one Articles record. Missing or mistyped properties come
// back empty and are reported as warnings; it never fails.
func MapArticle(rec notion.Record) (content.Article, []Warning) {
	props := rec.Properties
	fields := extract.ArticleFields

	title := extract.Lookup(props, fields.Title)
	if title == "" {
		title = extract.TitleText(props)
	}

	var warns []Warning
	if strings.TrimSpace(title) == "" {
		warns = append(warns, Warning{Record: rec.ID, Msg: "title is empty"})
	}

	meta := content.ArticleMeta{
		ID:          rec.ID,
		Title:       title,
		Slug:        ResolveSlug(extract.Lookup(props, fields.Slug), title),
		Description: extract.Lookup(props, fields.Description),
		Updated:     rec.LastEditedTime,
		Cover:       extract.Lookup(props, fields.Cover),
	}
	if _, p, ok := extract.Find(props, fields.Date); ok {
		if t, ok := extract.Time(p); ok {
			meta.Date = t
		} else {
			warns = append(warns, Warning{Record: rec.ID, Msg: "unreadable publish date"})
		}
	}
	if _, p, ok := extract.Find(props, fields.Tags); ok {
		meta.Tags = extract.Names(p)
	}
	meta.Normalize()

	a := content.Article{
		Meta:      meta,
		Published: IsPublished(props),
		Status:    extract.Lookup(props, fields.Status),
		Body:      extract.Lookup(props, fields.Body),
	}
	if _, p, ok := extract.Find(props, fields.Products); ok {
		a.ProductIDs = extract.IDs(p)
	}
	return a, warns
}

// IsPublished is true when a published checkbox is ticked or the status text
// is exactly "published", ignoring case. Either signal is enough.
func IsPublished(props map[string]notion.Property) bool {
	if _, p, ok := extract.Find(props, extract.ArticleFields.Published); ok && extract.Bool(p) {
		return true
	}
	return strings.EqualFold(extract.Lookup(props, extract.ArticleFields.Status), "published")
}

// MapProduct reads one Products record.
func MapProduct(rec notion.Record) content.Product {
	props := rec.Properties
	fields := extract.ProductFields

	p := content.Product{
		ID:          rec.ID,
		Name:        extract.Lookup(props, fields.Name),
		Brand:       extract.Lookup(props, fields.Brand),
		Category:    extract.Lookup(props, fields.Category),
		Image:       extract.Lookup(props, fields.Image),
		Link:        strings.TrimSpace(extract.Lookup(props, fields.Link)),
		Description: extract.Lookup(props, fields.Description),
		PriceText:   extract.Lookup(props, fields.PriceBucket),
		Size:        extract.Lookup(props, fields.Size),
		RMS:         extract.Lookup(props, fields.RMS),
		Impedance:   extract.Lookup(props, fields.Impedance),
		Sensitivity: extract.Lookup(props, fields.Sensitivity),
		Pros:        extract.Lookup(props, fields.Pros),
		Cons:        extract.Lookup(props, fields.Cons),
	}
	if p.Name == "" {
		p.Name = extract.TitleText(props)
	}
	if _, prop, ok := extract.Find(props, fields.Price); ok {
		p.Price, p.HasPrice = extract.Number(prop)
	}
	if p.PriceText == "" && p.HasPrice {
		p.PriceText = "$" + strconv.FormatFloat(p.Price, 'f', 2, 64)
	}
	return p
}

// MapKeyword reads one Keywords record.
func MapKeyword(rec notion.Record) content.Keyword {
	kw := content.Keyword{
		ID:    rec.ID,
		Title: strings.TrimSpace(extract.TitleText(rec.Properties)),
	}
	if _, p, ok := extract.Find(rec.Properties, extract.KeywordFields.Used); ok {
		kw.Used = extract.Bool(p)
	}
	return kw
}

// ResolveSlug prefers the explicit slug column, trimmed and otherwise kept
// as the author wrote it. An explicit slug that is not a single URL-safe path
// segment goes through Slugify; when nothing survives, the title is used.
func ResolveSlug(explicit, title string) string {
	s := strings.TrimSpace(explicit)
	if s == "" {
		return Slugify(title)
	}
	if safeSegment(s) {
		return s
	}
	if slug := Slugify(s); slug != UntitledSlug {
		return slug
	}
	return Slugify(title)
}

func safeSegment(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || unicode.IsSpace(r) || strings.ContainsRune(`/\?#%`, r) {
			return false
		}
	}
	return true
}

// Slugify lower-cases s, collapses every run outside [a-z0-9] into a single
// hyphen and trims hyphens from both ends. It returns UntitledSlug rather
// than "". Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastDash := false

	for _, r := range strings.ToLower(s) {
		switch {
		case ('a' <= r && r <= 'z') || ('0' <= r && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return UntitledSlug
	}
	return out
}
